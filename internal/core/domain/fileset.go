package domain

import (
	"iter"
	"maps"
	"slices"
	"strings"
)

// DefaultExclusionPrefixes is the resolver's default exclusion set.
var DefaultExclusionPrefixes = []string{"/usr/share"}

// FileSet is a set of absolute host paths.
type FileSet map[string]struct{}

// NewFileSet creates a FileSet holding the given paths.
func NewFileSet(paths ...string) FileSet {
	s := make(FileSet, len(paths))
	for _, p := range paths {
		s[p] = struct{}{}
	}
	return s
}

// Add inserts a path.
func (s FileSet) Add(path string) {
	s[path] = struct{}{}
}

// Contains reports whether path is in the set.
func (s FileSet) Contains(path string) bool {
	_, ok := s[path]
	return ok
}

// Union inserts every path of other into s.
func (s FileSet) Union(other FileSet) {
	for p := range other {
		s[p] = struct{}{}
	}
}

// Len returns the number of paths.
func (s FileSet) Len() int {
	return len(s)
}

// Sorted returns the paths in lexical order.
func (s FileSet) Sorted() []string {
	return slices.Sorted(maps.Keys(s))
}

// All yields the paths in lexical order so that tree builds are repeatable.
func (s FileSet) All() iter.Seq[string] {
	return slices.Values(s.Sorted())
}

// Filter returns a new FileSet holding the paths for which keep returns true.
func (s FileSet) Filter(keep func(string) bool) FileSet {
	res := make(FileSet, len(s))
	for p := range s {
		if keep(p) {
			res[p] = struct{}{}
		}
	}
	return res
}

// HasAnyPrefix reports whether path starts with any of the prefixes.
func HasAnyPrefix(path string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
