package out_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	out "abaterm/internal/modules/catalog/adapter/out"
)

func TestFetchReturnsRemoteListsOnWellFormedReply(t *testing.T) {
	t.Parallel()
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"programs":["Ecoicas","Mandos"],"students":["Alessandra G"],"therapists":["Celeste M"]}`))
	}))
	defer server.Close()

	catalog := out.NewSheetFetcher(server.URL, true).Fetch(context.Background())
	if catalog.Degraded {
		t.Fatal("successful fetch must not be degraded")
	}
	if len(catalog.Programs) != 2 || catalog.Programs[1] != "Mandos" {
		t.Fatalf("programs = %v", catalog.Programs)
	}
	if len(catalog.Students) != 1 || len(catalog.Therapists) != 1 {
		t.Fatalf("unexpected lists %+v", catalog)
	}
	if gotQuery == "" || gotQuery[0] != 't' {
		t.Fatalf("cache-busting parameter missing, query = %q", gotQuery)
	}
}

func TestFetchDefaultsMissingFieldsToEmptyLists(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"programs":["Ecoicas"]}`))
	}))
	defer server.Close()

	catalog := out.NewSheetFetcher(server.URL, true).Fetch(context.Background())
	if catalog.Degraded {
		t.Fatal("missing fields are not a failure")
	}
	if catalog.Students == nil || catalog.Therapists == nil {
		t.Fatal("missing fields must decode to empty, not nil")
	}
	if len(catalog.Students) != 0 || len(catalog.Therapists) != 0 {
		t.Fatalf("unexpected lists %+v", catalog)
	}
}

func TestFetchAllEmptyListsIsStillNotDegraded(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	catalog := out.NewSheetFetcher(server.URL, true).Fetch(context.Background())
	if catalog.Degraded {
		t.Fatal("an empty but well-formed reply is a warning, not degradation")
	}
	if !catalog.Empty() {
		t.Fatalf("expected empty catalog, got %+v", catalog)
	}
}

func TestFetchDecodesReplyWithoutContentTypeHeader(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Suppress the header entirely, sniffing included.
		w.Header()["Content-Type"] = nil
		_, _ = w.Write([]byte(`{"programs":["Ecoicas"]}`))
	}))
	defer server.Close()

	catalog := out.NewSheetFetcher(server.URL, true).Fetch(context.Background())
	if catalog.Degraded {
		t.Fatal("a missing content-type header is not a failure")
	}
	if len(catalog.Programs) != 1 || catalog.Programs[0] != "Ecoicas" {
		t.Fatalf("programs = %v", catalog.Programs)
	}
}

func TestFetchFallsBackOnEveryFailurePath(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"html reply", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte("<html></html>"))
		}},
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
		}},
		{"malformed json", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"programs":`))
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			server := httptest.NewServer(tc.handler)
			defer server.Close()

			catalog := out.NewSheetFetcher(server.URL, true).Fetch(context.Background())
			if !catalog.Degraded {
				t.Fatal("expected degraded fallback")
			}
			if len(catalog.Programs) == 0 {
				t.Fatal("fallback must carry the built-in program list")
			}
		})
	}
}

func TestFetchUnreachableEndpointNeverPanics(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()

	catalog := out.NewSheetFetcher(server.URL, true).Fetch(context.Background())
	if !catalog.Degraded {
		t.Fatal("dead endpoint must degrade")
	}
}

func TestFetchUnconfiguredEndpointSkipsNetwork(t *testing.T) {
	t.Parallel()
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		called = true
	}))
	defer server.Close()

	catalog := out.NewSheetFetcher(server.URL, false).Fetch(context.Background())
	if !catalog.Degraded || called {
		t.Fatalf("unconfigured endpoint must fall back without a request (degraded=%v called=%v)", catalog.Degraded, called)
	}
}
