package ports

import (
	"context"

	"go.trai.ch/mkroot/internal/core/domain"
)

// TreeOptions holds per-operation overrides for a Tree.
type TreeOptions struct {
	// Mountpoint replaces the tree's own mountpoint for one operation.
	Mountpoint string
}

// TreeOption is a functional option for a single tree operation.
type TreeOption func(*TreeOptions)

// WithMountpoint expresses an operation's paths relative to mountpoint.
func WithMountpoint(mountpoint string) TreeOption {
	return func(o *TreeOptions) {
		o.Mountpoint = mountpoint
	}
}

// Tree is a destination root filesystem being materialized.
// Every path is absolute and prefixed by the active mountpoint.
//
//go:generate go run go.uber.org/mock/mockgen -source=tree.go -destination=mocks/mock_tree.go -package=mocks
type Tree interface {
	// Root returns the host directory the tree lives in.
	Root() string

	// Path maps a tree path to its host location.
	Path(path string, opts ...TreeOption) (string, error)

	// Mkdir creates a directory and its missing ancestors.
	Mkdir(path string, opts ...TreeOption) error

	// Touch creates an empty regular file if absent.
	Touch(path string, opts ...TreeOption) error

	// Install places the file behind source at path.
	Install(path, source string, opts ...TreeOption) error

	// Symlink writes a literal symbolic link at path.
	Symlink(path, target string, opts ...TreeOption) error

	// Write stores contents at path with a fixed modification time.
	Write(path string, contents []byte, opts ...TreeOption) error

	// CopyFromHost replicates a host path or glob into the tree.
	CopyFromHost(path string, exclude []string, opts ...TreeOption) error

	// ExtractArchive verifies and unpacks an archive into the tree.
	ExtractArchive(ctx context.Context, archive domain.ArchiveDescriptor, opts ...TreeOption) error
}

// TreeFactory creates trees. Creating a tree wipes its destination.
type TreeFactory interface {
	// NewTree creates an empty tree at destinationRoot.
	NewTree(destinationRoot, mountpoint string, mode domain.LinkMode) (Tree, error)
}
