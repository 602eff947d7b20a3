package ports

import "go.trai.ch/mkroot/internal/core/domain"

// BuildInfoStore persists the last build outcome per profile.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type BuildInfoStore interface {
	// Get retrieves the build info for a profile.
	// Returns nil, nil if not found.
	Get(profile string) (*domain.BuildInfo, error)

	// Put stores the build info.
	Put(info domain.BuildInfo) error
}

// BuildInfoStoreOpener opens the store persisted at path.
type BuildInfoStoreOpener func(path string) (BuildInfoStore, error)
