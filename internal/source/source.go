// Package source defines the adapter boundary between the loader core and
// the upstream restaurant APIs. Each upstream gets its own subpackage that
// translates its response shape into the unified menu-item schema.
package source

import (
	"context"

	"github.com/mittagsplan/loader/internal/core/domain"
)

// Item pairs a validated menu item with its source-assigned stable ID.
// IDs are deterministic composites (restaurant slug plus source
// identifiers or the item name), so re-running against unchanged upstream
// data produces identical IDs.
type Item struct {
	ID       string
	MenuItem domain.MenuItem
}

// Source translates one upstream API into unified menu items.
// The aggregator holds a fixed set of these and never special-cases an
// upstream outside its own adapter.
type Source interface {
	// Name identifies the source in logs and metrics.
	Name() string

	// Load fetches and maps today's menu items in upstream order.
	// A returned error is transient (HTTP failure, malformed payload) and
	// retryable by the caller's policy; per-record data-quality problems
	// are logged and skipped inside the adapter instead.
	Load(ctx context.Context) ([]Item, error)
}
