package ports

import "go.trai.ch/mkroot/internal/core/domain"

// ResolveRequest describes one file-set closure query.
type ResolveRequest struct {
	// Names are the packages to resolve.
	Names []domain.PackageName

	// ExcludePackages contribute no files and are not traversed.
	ExcludePackages []domain.PackageName

	// Recursive expands the first alternative of every dependency OR-group.
	Recursive bool

	// IncludePrefixes, when non-empty, keeps only files under one of them.
	IncludePrefixes []string

	// ExcludeFilePrefixes drops files under any of them.
	ExcludeFilePrefixes []string
}

// DependencyResolver computes the host files required by a set of packages.
//
//go:generate go run go.uber.org/mock/mockgen -source=resolver.go -destination=mocks/mock_resolver.go -package=mocks
type DependencyResolver interface {
	// Resolve returns the union of the file sets of the requested packages.
	Resolve(req ResolveRequest) (domain.FileSet, error)
}
