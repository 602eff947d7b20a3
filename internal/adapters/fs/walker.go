// Package fs provides file system adapters for materializing, hashing and
// verifying root trees.
package fs

import (
	"io/fs"
	"iter"
	"path/filepath"

	"go.trai.ch/mkroot/internal/core/domain"
)

// Entry is a single filesystem entry produced by a Walker.
type Entry struct {
	// Path is the host path of the entry, rooted at the walk root.
	Path string
	// Type holds the entry's type bits.
	Type fs.FileMode
}

// IsDir reports whether the entry is a directory.
func (e Entry) IsDir() bool { return e.Type.IsDir() }

// IsSymlink reports whether the entry is a symbolic link.
func (e Entry) IsSymlink() bool { return e.Type&fs.ModeSymlink != 0 }

// Walker provides file walking functionality.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// Walk yields every entry below root in lexical order, root itself
// excluded. Symlinks are yielded, never followed. Entries whose path starts
// with one of the exclude prefixes are skipped together with their subtree.
func (w *Walker) Walk(root string, exclude []string) iter.Seq2[Entry, error] {
	return func(yield func(Entry, error) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				yield(Entry{Path: path}, err)
				return filepath.SkipAll
			}
			if path == root {
				return nil
			}

			if domain.HasAnyPrefix(path, exclude) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			if !yield(Entry{Path: path, Type: d.Type()}, nil) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}
