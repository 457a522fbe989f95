package out

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"abaterm/internal/modules/catalog/domain"
	catalogout "abaterm/internal/modules/catalog/port/out"
)

const fetchTimeout = 15 * time.Second

// configReply is the GET contract: three optional arrays of strings.
type configReply struct {
	Programs   []string `json:"programs"`
	Students   []string `json:"students"`
	Therapists []string `json:"therapists"`
}

// SheetFetcher reads the option lists from the Apps Script endpoint.
type SheetFetcher struct {
	endpointURL string
	configured  bool
	client      *http.Client
	now         func() time.Time
}

func NewSheetFetcher(endpointURL string, configured bool) catalogout.Fetcher {
	return &SheetFetcher{
		endpointURL: endpointURL,
		configured:  configured,
		client:      &http.Client{Timeout: fetchTimeout},
		now:         time.Now,
	}
}

// Fetch returns the remote catalog, or the fallback on any failure. Nothing
// here throws past the boundary; a dead endpoint degrades silently.
func (f *SheetFetcher) Fetch(ctx context.Context) domain.Catalog {
	if !f.configured {
		return domain.Fallback()
	}

	// The t parameter busts any intermediary cache between the client and
	// the script.
	url := fmt.Sprintf("%s?t=%d", f.endpointURL, f.now().UnixMilli())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return domain.Fallback()
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return domain.Fallback()
	}
	defer resp.Body.Close()

	// Only an explicit non-JSON content type (the script's HTML login page)
	// degrades; a reply without the header still gets decoded.
	if ct := resp.Header.Get("Content-Type"); ct != "" && !strings.Contains(ct, "application/json") {
		return domain.Fallback()
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return domain.Fallback()
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.Fallback()
	}
	var reply configReply
	if err := json.Unmarshal(raw, &reply); err != nil {
		return domain.Fallback()
	}

	return domain.Catalog{
		Programs:   emptyIfNil(reply.Programs),
		Students:   emptyIfNil(reply.Students),
		Therapists: emptyIfNil(reply.Therapists),
		Degraded:   false,
	}
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
