package ports

import "context"

// Fetcher downloads remote archives.
//
//go:generate go run go.uber.org/mock/mockgen -source=fetcher.go -destination=mocks/mock_fetcher.go -package=mocks
type Fetcher interface {
	// Fetch stores the content at url in dest unless dest already exists.
	Fetch(ctx context.Context, url, dest string) error
}
