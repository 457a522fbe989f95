package domain_test

import (
	"testing"

	"abaterm/internal/modules/catalog/domain"
)

func TestFilterProgramsIsCaseInsensitiveSubstring(t *testing.T) {
	t.Parallel()
	c := domain.Fallback()

	got := c.FilterPrograms("imit")
	if len(got) != 1 || got[0] != "Imitación Motora" {
		t.Fatalf("filter = %v", got)
	}
	if got := c.FilterPrograms("ECOICAS"); len(got) != 1 {
		t.Fatalf("upper-case term should match, got %v", got)
	}
	if got := c.FilterPrograms(""); len(got) != len(c.Programs) {
		t.Fatalf("empty term must return everything, got %d", len(got))
	}
	if got := c.FilterPrograms("zzz"); len(got) != 0 {
		t.Fatalf("no match expected, got %v", got)
	}
}

func TestHasExactProgramIgnoresCase(t *testing.T) {
	t.Parallel()
	c := domain.Fallback()
	if !c.HasExactProgram("imitación motora") {
		t.Fatal("case-insensitive exact match expected")
	}
	if c.HasExactProgram("Imitación") {
		t.Fatal("prefix is not an exact match")
	}
}

func TestFallbackIsDegradedAndNonEmpty(t *testing.T) {
	t.Parallel()
	c := domain.Fallback()
	if !c.Degraded {
		t.Fatal("fallback catalog must be flagged degraded")
	}
	if c.Empty() {
		t.Fatal("fallback catalog must carry entries")
	}
}
