package service

import (
	"context"
	"sync"

	"abaterm/internal/modules/catalog/domain"
	catalogout "abaterm/internal/modules/catalog/port/out"
)

// CatalogService loads and caches the option lists. The fetch happens once
// per run; Reload forces a fresh one. The cache is shared across the event
// loop and background commands, so access goes through the mutex.
type CatalogService struct {
	fetcher catalogout.Fetcher

	mu     sync.Mutex
	cached *domain.Catalog
}

func NewCatalogService(fetcher catalogout.Fetcher) *CatalogService {
	return &CatalogService{fetcher: fetcher}
}

// Load returns the cached catalog, fetching it on first use. Concurrent
// first-use callers share one fetch.
func (s *CatalogService) Load(ctx context.Context) domain.Catalog {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cached == nil {
		catalog := s.fetcher.Fetch(ctx)
		s.cached = &catalog
	}
	return *s.cached
}

// Reload fetches a fresh catalog and replaces the cache. The fetch runs
// outside the lock so readers are not held up by a slow endpoint.
func (s *CatalogService) Reload(ctx context.Context) domain.Catalog {
	catalog := s.fetcher.Fetch(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cached = &catalog
	return catalog
}
