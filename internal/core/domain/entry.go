package domain

import (
	"encoding/json"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Entry is one document-store record: a validated menu item under a
// stable composite ID with a digest used to detect change across runs.
type Entry struct {
	ID     string   `json:"id"`
	Data   MenuItem `json:"data"`
	Digest string   `json:"digest"`
}

// NewEntry builds a store entry for a validated item. The digest is
// computed over the item's canonical JSON encoding, so re-running against
// unchanged upstream data yields an identical digest.
func NewEntry(id string, item MenuItem) Entry {
	return Entry{ID: id, Data: item, Digest: digest(item)}
}

func digest(item MenuItem) string {
	// Struct field order fixes the encoding, making the hash deterministic.
	data, err := json.Marshal(item)
	if err != nil {
		// MenuItem contains no unmarshalable types; keep the signature clean.
		panic(fmt.Sprintf("marshal menu item: %v", err))
	}
	return fmt.Sprintf("%016x", xxhash.Sum64(data))
}
