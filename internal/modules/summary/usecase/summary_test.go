package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	sessiondomain "abaterm/internal/modules/session/domain"
	"abaterm/internal/modules/summary/service"
	"abaterm/internal/modules/summary/usecase"
)

type fakeSummarizer struct {
	name      string
	available bool
	text      string
	err       error
	calls     int
}

func (f *fakeSummarizer) Name() string    { return f.name }
func (f *fakeSummarizer) Available() bool { return f.available }

func (f *fakeSummarizer) Summarize(_ context.Context, _ sessiondomain.Session) (string, error) {
	f.calls++
	return f.text, f.err
}

type fakeSource struct {
	session sessiondomain.Session
}

func (f *fakeSource) Snapshot() sessiondomain.Session { return f.session }

func TestGeneratePrefersPluginOverGemini(t *testing.T) {
	t.Parallel()

	plugin := &fakeSummarizer{name: "resumen-local", available: true, text: "Resumen del plugin."}
	gemini := &fakeSummarizer{name: "gemini", available: true, text: "Resumen de Gemini."}
	interactor := usecase.NewInteractor(service.NewSummaryService(plugin, gemini), &fakeSource{})

	output := interactor.Generate(context.Background())

	if output.Failed {
		t.Fatalf("unexpected failure: %q", output.Text)
	}
	if output.Text != "Resumen del plugin." || output.Backend != "resumen-local" {
		t.Errorf("output = %+v", output)
	}
	if gemini.calls != 0 {
		t.Error("gemini should not be called when a plugin is available")
	}
}

func TestGenerateFallsBackToGeminiWhenPluginUnavailable(t *testing.T) {
	t.Parallel()

	plugin := &fakeSummarizer{name: "resumen-local", available: false}
	gemini := &fakeSummarizer{name: "gemini", available: true, text: "Resumen de Gemini."}
	interactor := usecase.NewInteractor(service.NewSummaryService(plugin, gemini), &fakeSource{})

	output := interactor.Generate(context.Background())

	if output.Failed || output.Backend != "gemini" {
		t.Errorf("output = %+v", output)
	}
	if plugin.calls != 0 {
		t.Error("unavailable plugin should not be called")
	}
}

func TestGenerateWithoutBackendsDegradesSoftly(t *testing.T) {
	t.Parallel()

	interactor := usecase.NewInteractor(service.NewSummaryService(), &fakeSource{})

	if interactor.Ready() {
		t.Error("Ready should be false with no backends")
	}
	output := interactor.Generate(context.Background())
	if !output.Failed {
		t.Fatal("expected failed output")
	}
	if !strings.Contains(output.Text, "API key") {
		t.Errorf("message should steer the user to configuration, got %q", output.Text)
	}
}

func TestGenerateBackendErrorDegradesSoftly(t *testing.T) {
	t.Parallel()

	gemini := &fakeSummarizer{name: "gemini", available: true, err: errors.New("boom")}
	interactor := usecase.NewInteractor(service.NewSummaryService(gemini), &fakeSource{})

	output := interactor.Generate(context.Background())

	if !output.Failed {
		t.Fatal("expected failed output")
	}
	if output.Backend != "gemini" {
		t.Errorf("backend = %q", output.Backend)
	}
	if !strings.Contains(output.Text, "asistente inteligente") {
		t.Errorf("unexpected message %q", output.Text)
	}
}
