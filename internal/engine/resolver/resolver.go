// Package resolver computes the host files required by a set of packages.
package resolver

import (
	"fmt"
	"os"
	"slices"

	"go.trai.ch/mkroot/internal/core/domain"
	"go.trai.ch/mkroot/internal/core/ports"
	"go.trai.ch/zerr"
)

// Resolver implements ports.DependencyResolver over a package database.
//
// Records are memoized per package for the lifetime of the Resolver, so
// profiles resolved by the same instance share database lookups and file
// checks. Memo entries only reflect the resolver-level exclusion set; the
// per-request filters are applied to the union.
type Resolver struct {
	db         ports.PackageDatabase
	exclusions []string
	memo       map[domain.PackageName]*entry
}

type entry struct {
	files        domain.FileSet
	dependencies []domain.OrGroup
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithExclusionPrefixes replaces the default exclusion set. Files under any
// of the prefixes are never returned.
func WithExclusionPrefixes(prefixes []string) Option {
	return func(r *Resolver) {
		r.exclusions = slices.Clone(prefixes)
	}
}

// New creates a Resolver reading from db.
func New(db ports.PackageDatabase, opts ...Option) *Resolver {
	r := &Resolver{
		db:         db,
		exclusions: slices.Clone(domain.DefaultExclusionPrefixes),
		memo:       make(map[domain.PackageName]*entry),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the union of the file sets of req.Names.
//
// With req.Recursive set, only the first alternative of every dependency
// OR-group is followed. Packages whose first alternative is not the one
// installed on the host can therefore miss files.
func (r *Resolver) Resolve(req ports.ResolveRequest) (domain.FileSet, error) {
	w := walk{
		resolver:  r,
		recursive: req.Recursive,
		skip:      make(map[domain.PackageName]struct{}, len(req.ExcludePackages)),
		visited:   make(map[domain.PackageName]struct{}),
		result:    domain.NewFileSet(),
	}
	for _, name := range req.ExcludePackages {
		w.skip[name] = struct{}{}
	}

	for _, name := range req.Names {
		if err := w.visit(name); err != nil {
			return nil, err
		}
	}

	result := w.result
	if len(req.IncludePrefixes) > 0 {
		result = result.Filter(func(p string) bool {
			return domain.HasAnyPrefix(p, req.IncludePrefixes)
		})
	}
	if len(req.ExcludeFilePrefixes) > 0 {
		result = result.Filter(func(p string) bool {
			return !domain.HasAnyPrefix(p, req.ExcludeFilePrefixes)
		})
	}

	return result, nil
}

// walk is the state of one depth-first traversal.
type walk struct {
	resolver  *Resolver
	recursive bool
	skip      map[domain.PackageName]struct{}
	visited   map[domain.PackageName]struct{}
	result    domain.FileSet
}

func (w *walk) visit(name domain.PackageName) error {
	if _, ok := w.skip[name]; ok {
		return nil
	}
	if _, ok := w.visited[name]; ok {
		return nil
	}
	// Marked before descending so dependency cycles terminate.
	w.visited[name] = struct{}{}

	e, err := w.resolver.lookup(name)
	if err != nil {
		return err
	}
	w.result.Union(e.files)

	if !w.recursive {
		return nil
	}
	for _, group := range e.dependencies {
		first, ok := group.First()
		if !ok {
			continue
		}
		if err := w.visit(first); err != nil {
			return err
		}
	}
	return nil
}

func (r *Resolver) lookup(name domain.PackageName) (*entry, error) {
	if e, ok := r.memo[name]; ok {
		return e, nil
	}

	if !r.db.Exists(name) {
		// An unreadable database must not pass for a missing package.
		if c, ok := r.db.(ports.LoadChecker); ok {
			if err := c.Err(); err != nil {
				return nil, zerr.With(err, "package", name.String())
			}
		}
		return nil, missingPackage(name)
	}
	rec, err := r.db.Get(name)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read package record"), "package", name.String())
	}

	e := &entry{files: domain.NewFileSet()}
	// A package that is not unpacked contributes nothing, not even its
	// dependencies.
	if rec.Installed {
		e.dependencies = rec.Dependencies
		for _, path := range rec.InstalledFiles {
			if r.keep(path) {
				e.files.Add(path)
			}
		}
	}

	r.memo[name] = e
	return e, nil
}

// keep reports whether an installed file belongs in a file set: outside the
// exclusion set, present on the host and not a directory.
func (r *Resolver) keep(path string) bool {
	if domain.HasAnyPrefix(path, r.exclusions) {
		return false
	}
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

func missingPackage(name domain.PackageName) error {
	err := zerr.Wrap(domain.ErrMissingPackage, fmt.Sprintf("package %q is not in the package database", name))
	return zerr.With(err, "package", name.String())
}
