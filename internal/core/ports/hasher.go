package ports

// Hasher computes content digests of materialized trees.
//
//go:generate go run go.uber.org/mock/mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// ComputeTreeHash digests every entry below root and returns the hash
	// together with the number of entries hashed.
	ComputeTreeHash(root string) (string, int, error)
}
