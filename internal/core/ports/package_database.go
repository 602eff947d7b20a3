// Package ports defines the core interfaces for the application.
package ports

import "go.trai.ch/mkroot/internal/core/domain"

// PackageDatabase is a read-only view over installed package metadata.
//
//go:generate go run go.uber.org/mock/mockgen -source=package_database.go -destination=mocks/mock_package_database.go -package=mocks
type PackageDatabase interface {
	// Exists reports whether name is known to the database.
	Exists(name domain.PackageName) bool

	// Get returns the record for name. Querying an unknown name is an error,
	// never an empty record.
	Get(name domain.PackageName) (*domain.PackageRecord, error)
}

// LoadChecker is implemented by package databases whose backing store can
// fail to load. Err returns that failure, or nil once the store is readable.
type LoadChecker interface {
	Err() error
}
