package ports

// Verifier defines the interface for verifying file existence.
//
//go:generate go run go.uber.org/mock/mockgen -source=verifier.go -destination=mocks/mock_verifier.go -package=mocks
type Verifier interface {
	// Missing returns the host paths that do not exist, in input order.
	Missing(paths []string) ([]string, error)
}
