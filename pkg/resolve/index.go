package resolve

import (
	"github.com/screenline/sdnscreen/pkg/reference"
)

// NameIndex maps canonical name strings to the uids of every entity known
// under that name. It is built once from the entity and alias tables and is
// immutable afterwards, so it is safe to share across concurrent readers.
//
// The index is multi-valued: when a primary name and an alias (or two
// aliases of different entities) normalize to the same string, all candidate
// uids are kept and surfaced to the caller instead of the last write
// silently winning.
type NameIndex struct {
	entries map[string][]int64
	// names preserves insertion order (entities before aliases, table order
	// within each) so fuzzy scans are deterministic.
	names []string
}

// BuildNameIndex constructs the index from the entity and alias tables.
// Rows whose composed name normalizes to the empty string are skipped; they
// cannot participate in matching.
func BuildNameIndex(entities []reference.Entity, aliases []reference.Alias) *NameIndex {
	ix := &NameIndex{entries: make(map[string][]int64, len(entities)+len(aliases))}
	for _, e := range entities {
		ix.add(Normalize(e.FullName()), e.UID)
	}
	for _, a := range aliases {
		ix.add(Normalize(a.FullName()), a.EntityUID)
	}
	return ix
}

func (ix *NameIndex) add(canonical string, uid int64) {
	if canonical == "" {
		return
	}
	uids, exists := ix.entries[canonical]
	for _, known := range uids {
		if known == uid {
			return
		}
	}
	ix.entries[canonical] = append(uids, uid)
	if !exists {
		ix.names = append(ix.names, canonical)
	}
}

// Lookup returns the candidate uids recorded for a canonical name. A nil
// result means the name is absent from the index.
func (ix *NameIndex) Lookup(canonical string) []int64 {
	return ix.entries[canonical]
}

// Names returns every canonical name in the index in insertion order. The
// returned slice is shared; callers must not modify it.
func (ix *NameIndex) Names() []string {
	return ix.names
}

// Len returns the number of distinct canonical names in the index.
func (ix *NameIndex) Len() int {
	return len(ix.names)
}
