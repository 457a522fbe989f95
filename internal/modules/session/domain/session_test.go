package domain_test

import (
	"testing"
	"time"

	"abaterm/internal/modules/session/domain"
)

func TestPercentageDerivation(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name    string
		correct int
		wrong   int
		want    float64
		ok      bool
		band    domain.PercentBand
		label   string
	}{
		{"no trials", 0, 0, 0, false, domain.BandNone, "—"},
		{"exact high boundary", 8, 2, 80, true, domain.BandHigh, "80%"},
		{"mid band", 7, 3, 70, true, domain.BandMid, "70%"},
		{"low band", 2, 3, 40, true, domain.BandLow, "40%"},
		{"exact mid boundary", 1, 1, 50, true, domain.BandMid, "50%"},
		{"all correct", 5, 0, 100, true, domain.BandHigh, "100%"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			p := domain.Program{CorrectCount: tc.correct, IncorrectCount: tc.wrong}
			got, ok := p.Percentage()
			if ok != tc.ok || got != tc.want {
				t.Fatalf("percentage = %.1f ok=%v, want %.1f ok=%v", got, ok, tc.want, tc.ok)
			}
			if p.Band() != tc.band {
				t.Fatalf("band = %v, want %v", p.Band(), tc.band)
			}
			if p.PercentLabel() != tc.label {
				t.Fatalf("label = %q, want %q", p.PercentLabel(), tc.label)
			}
		})
	}
}

func TestValidateRequiresNamesAndPrograms(t *testing.T) {
	t.Parallel()
	s := domain.Session{}
	if err := s.Validate(); err == nil {
		t.Fatal("empty session must fail validation")
	}
	s.StudentName = "Alessandra G"
	if err := s.Validate(); err == nil {
		t.Fatal("missing therapist must fail validation")
	}
	s.TherapistName = "Celeste M"
	if err := s.Validate(); err == nil {
		t.Fatal("empty program list must fail validation")
	}
	s.Programs = []domain.Program{{ID: "p1", Name: "Ecoicas"}}
	if err := s.Validate(); err != nil {
		t.Fatalf("complete session must validate: %v", err)
	}
	s.StudentName = "   "
	if err := s.Validate(); err == nil {
		t.Fatal("whitespace-only student must fail validation")
	}
}

func TestIntervalSchedules(t *testing.T) {
	t.Parallel()
	for _, sched := range []string{domain.ScheduleFixedInterval, domain.ScheduleVariableInterval} {
		if !domain.IsIntervalSchedule(sched) {
			t.Fatalf("%s should be interval-based", sched)
		}
	}
	for _, sched := range []string{domain.ScheduleFixedRatio, domain.ScheduleVariableRatio, ""} {
		if domain.IsIntervalSchedule(sched) {
			t.Fatalf("%s should not be interval-based", sched)
		}
	}
}

func TestLocalDateUsesLocalDay(t *testing.T) {
	t.Parallel()
	// 23:30 in UTC-5 is already the next day in UTC; the rendered date must
	// stay on the local day.
	lima := time.FixedZone("lima", -5*3600)
	late := time.Date(2026, 8, 27, 23, 30, 0, 0, lima)
	if got := domain.LocalDate(late); got != "2026-08-27" {
		t.Fatalf("local date drifted to %s", got)
	}
	if got := domain.ClockTime(late); got != "23:30" {
		t.Fatalf("clock time = %s", got)
	}
}
