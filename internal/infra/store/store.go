// Package store declares the capability interfaces the loader core
// consumes: a document store for menu entries and a key/value metadata
// store for build-scoped state such as cached tokens. Both are injected
// by the surrounding content pipeline; the core never manages their
// persistence directly.
package store

import (
	"context"
	"errors"

	"github.com/mittagsplan/loader/internal/core/domain"
)

// ErrNotFound is returned when a metadata key doesn't exist.
var ErrNotFound = errors.New("key not found")

// MetaStore is a key/value metadata store scoped to the build.
type MetaStore interface {
	// Get retrieves the value for a key, or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set stores a value under a key, overwriting any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes a key; deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

// DocumentStore receives the unified menu entries.
type DocumentStore interface {
	// Set upserts an entry under its stable ID.
	Set(ctx context.Context, entry domain.Entry) error
}
