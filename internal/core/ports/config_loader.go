package ports

import "go.trai.ch/mkroot/internal/core/domain"

// ConfigLoader defines the interface for loading the build configuration.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration file at path. Relative profile
	// destinations are resolved against target.
	Load(path, target string) (*domain.Config, error)
}
