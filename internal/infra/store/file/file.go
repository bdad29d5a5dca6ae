// Package file implements a document store backed by the static site's
// content directory: one JSON file per entry, keyed by the entry ID.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mittagsplan/loader/internal/core/domain"
)

// DocumentStore writes entries under a content directory. Entry IDs
// contain "/" separators which map to subdirectories. An entry whose
// digest matches the file already on disk is left untouched, so unchanged
// upstream data produces no spurious file modifications.
type DocumentStore struct {
	dir string
}

func NewDocumentStore(dir string) *DocumentStore {
	return &DocumentStore{dir: dir}
}

func (s *DocumentStore) Set(ctx context.Context, entry domain.Entry) error {
	path := s.path(entry.ID)

	if existing, err := os.ReadFile(path); err == nil {
		var prev domain.Entry
		if json.Unmarshal(existing, &prev) == nil && prev.Digest == entry.Digest {
			return nil
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create content dir: %w", err)
	}

	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal entry %s: %w", entry.ID, err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write entry %s: %w", entry.ID, err)
	}
	return nil
}

func (s *DocumentStore) path(id string) string {
	// IDs are built from slugs and sanitized names; keep the mapping safe
	// against anything that would escape the content dir.
	clean := strings.ReplaceAll(id, "..", "")
	return filepath.Join(s.dir, filepath.FromSlash(clean)+".json")
}
