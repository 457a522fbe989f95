package out_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	out "abaterm/internal/modules/session/adapter/out"
	"abaterm/internal/modules/session/domain"
	apperrors "abaterm/internal/platform/errors"
)

func sampleSession() domain.Session {
	return domain.Session{
		StudentName:   "Alessandra G",
		TherapistName: "Celeste M",
		Date:          "2026-08-27",
		StartTime:     "09:00",
		EndTime:       "10:30",
		Programs: []domain.Program{
			{ID: "p1", Name: "Imitación Motora", CorrectCount: 7, IncorrectCount: 3},
		},
	}
}

func TestSubmitWithoutEndpointMakesNoNetworkCall(t *testing.T) {
	t.Parallel()
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		called = true
	}))
	defer server.Close()

	submitter := out.NewSheetSubmitter(server.URL, false)
	result := submitter.Submit(context.Background(), sampleSession())
	if result.Succeeded {
		t.Fatal("unconfigured endpoint must fail")
	}
	if !strings.Contains(result.Message, "configurar") {
		t.Fatalf("expected configuration message, got %q", result.Message)
	}
	if !errors.Is(result.Err, apperrors.ErrEndpointUnset) {
		t.Fatalf("err = %v, want ErrEndpointUnset", result.Err)
	}
	if called {
		t.Fatal("no request may be sent when the endpoint is unset")
	}
}

func TestSubmitSendsEnvelopeAndAcceptsSuccess(t *testing.T) {
	t.Parallel()
	var gotContentType string
	var gotBody map[string]json.RawMessage
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	defer server.Close()

	result := out.NewSheetSubmitter(server.URL, true).Submit(context.Background(), sampleSession())
	if !result.Succeeded {
		t.Fatalf("expected success, got %+v", result)
	}
	if gotContentType != "text/plain;charset=utf-8" {
		t.Fatalf("content type = %q", gotContentType)
	}
	if string(gotBody["requestType"]) != `"SAVE_SESSION"` {
		t.Fatalf("requestType = %s", gotBody["requestType"])
	}
	var payload domain.Session
	if err := json.Unmarshal(gotBody["payload"], &payload); err != nil {
		t.Fatalf("payload did not round-trip: %v", err)
	}
	if payload.StudentName != "Alessandra G" || len(payload.Programs) != 1 {
		t.Fatalf("unexpected payload %+v", payload)
	}
}

func TestSubmitTreatsHTMLReplyAsPermissionError(t *testing.T) {
	t.Parallel()
	// Status 200 but HTML content: the permissions message must win over the
	// status code.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<html><body>Se requiere acceso</body></html>"))
	}))
	defer server.Close()

	result := out.NewSheetSubmitter(server.URL, true).Submit(context.Background(), sampleSession())
	if result.Succeeded {
		t.Fatal("html reply must fail")
	}
	if !strings.Contains(result.Message, "permisos") {
		t.Fatalf("expected permissions message, got %q", result.Message)
	}
	if !errors.Is(result.Err, apperrors.ErrPermissionDenied) {
		t.Fatalf("err = %v, want ErrPermissionDenied", result.Err)
	}
}

func TestSubmitEmbedsStatusOnTransportFailure(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	result := out.NewSheetSubmitter(server.URL, true).Submit(context.Background(), sampleSession())
	if result.Succeeded || !strings.Contains(result.Message, "502") {
		t.Fatalf("expected status in message, got %+v", result)
	}
	if !errors.Is(result.Err, apperrors.ErrTransport) {
		t.Fatalf("err = %v, want ErrTransport", result.Err)
	}
}

func TestSubmitFailsClosedOnUnexpectedReplyShape(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name string
		body string
		want string
	}{
		{"legacy result shape", `{"result":"success"}`, "Error desconocido"},
		{"explicit rejection with message", `{"success":false,"message":"hoja llena"}`, "hoja llena"},
		{"error field fallback", `{"success":false,"error":"fila inválida"}`, "fila inválida"},
		{"not json", `ok`, "Error desconocido"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(tc.body))
			}))
			defer server.Close()

			result := out.NewSheetSubmitter(server.URL, true).Submit(context.Background(), sampleSession())
			if result.Succeeded {
				t.Fatalf("shape %q must not succeed", tc.body)
			}
			if !strings.Contains(result.Message, tc.want) {
				t.Fatalf("message = %q, want substring %q", result.Message, tc.want)
			}
			if !errors.Is(result.Err, apperrors.ErrEndpointRejected) {
				t.Fatalf("err = %v, want ErrEndpointRejected", result.Err)
			}
		})
	}
}

func TestSubmitMapsConnectionFailureToConnectivityMessage(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close() // connection refused from here on

	result := out.NewSheetSubmitter(server.URL, true).Submit(context.Background(), sampleSession())
	if result.Succeeded || !strings.Contains(result.Message, "conexión") {
		t.Fatalf("expected connectivity message, got %+v", result)
	}
	if !errors.Is(result.Err, apperrors.ErrTransport) {
		t.Fatalf("err = %v, want ErrTransport", result.Err)
	}
}
