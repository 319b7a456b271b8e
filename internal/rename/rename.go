// Package rename plans and applies collision-free file renames that bring a
// site tree onto the canonical naming convention.
package rename

import "sort"

// Mapping records planned renames as old root-relative path -> new
// root-relative path. Keys and values are each unique: the planner resolves
// collisions before a mapping is returned, and a path never maps to itself.
// A path absent from the mapping is unchanged.
type Mapping map[string]string

// Sorted returns the mapping entries ordered by path depth, deepest first.
// Applying in this order means a file is never moved while an ancestor
// directory rename is still pending. Equal depths are ordered by source path
// for deterministic logs.
func (m Mapping) Sorted() []Entry {
	entries := make([]Entry, 0, len(m))
	for src, dst := range m {
		entries = append(entries, Entry{Source: src, Target: dst})
	}
	sort.Slice(entries, func(i, j int) bool {
		di, dj := depth(entries[i].Source), depth(entries[j].Source)
		if di != dj {
			return di > dj
		}
		return entries[i].Source < entries[j].Source
	})
	return entries
}

// Entry is one planned rename.
type Entry struct {
	Source string
	Target string
}

func depth(rel string) int {
	n := 0
	for _, c := range rel {
		if c == '/' {
			n++
		}
	}
	return n
}
