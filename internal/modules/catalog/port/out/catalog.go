package out

import (
	"context"

	"abaterm/internal/modules/catalog/domain"
)

// Fetcher retrieves the option lists from the remote sheet. It never fails:
// every error path inside the adapter resolves to the fallback catalog with
// Degraded set.
type Fetcher interface {
	Fetch(ctx context.Context) domain.Catalog
}
