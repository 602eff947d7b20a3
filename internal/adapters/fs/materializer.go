package fs

import (
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/mkroot/internal/core/domain"
	"go.trai.ch/mkroot/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

var (
	_ ports.Tree        = (*Materializer)(nil)
	_ ports.TreeFactory = (*Factory)(nil)
)

// Materializer owns one destination tree on the host.
type Materializer struct {
	root       string
	mountpoint string
	mode       domain.LinkMode
	fetcher    ports.Fetcher
	walker     *Walker
}

// Factory creates Materializers that download archives through a Fetcher.
type Factory struct {
	fetcher ports.Fetcher
	walker  *Walker
}

// NewFactory creates a new Factory.
func NewFactory(fetcher ports.Fetcher, walker *Walker) *Factory {
	return &Factory{fetcher: fetcher, walker: walker}
}

// NewTree implements ports.TreeFactory.
func (f *Factory) NewTree(destinationRoot, mountpoint string, mode domain.LinkMode) (ports.Tree, error) {
	return NewMaterializer(destinationRoot, mountpoint, mode, f.fetcher, f.walker)
}

// NewMaterializer wipes destinationRoot and recreates it empty.
//
// The previous tree is first renamed to a sibling "<root>.stale-*"
// directory and removed afterwards, so an interrupted wipe never leaves a
// stale tree at destinationRoot.
func NewMaterializer(
	destinationRoot, mountpoint string,
	mode domain.LinkMode,
	fetcher ports.Fetcher,
	walker *Walker,
) (*Materializer, error) {
	root, err := filepath.Abs(destinationRoot)
	if err != nil {
		return nil, fsError(err, "failed to resolve destination root", destinationRoot)
	}
	if root == "/" {
		return nil, zerr.With(fsError(os.ErrInvalid, "refusing to wipe the host root", root), "reason", "destination is /")
	}

	if err := wipe(root); err != nil {
		return nil, err
	}

	return &Materializer{
		root:       root,
		mountpoint: NormalizeMountpoint(mountpoint),
		mode:       mode,
		fetcher:    fetcher,
		walker:     walker,
	}, nil
}

func wipe(root string) error {
	parent := filepath.Dir(root)
	if err := os.MkdirAll(parent, dirPerm); err != nil {
		return fsError(err, "failed to create destination parent", parent)
	}

	// Leftovers of an earlier interrupted wipe.
	siblings, err := os.ReadDir(parent)
	if err != nil {
		return fsError(err, "failed to read destination parent", parent)
	}
	stalePrefix := filepath.Base(root) + ".stale-"
	for _, sibling := range siblings {
		if !strings.HasPrefix(sibling.Name(), stalePrefix) {
			continue
		}
		dir := filepath.Join(parent, sibling.Name())
		if err := os.RemoveAll(dir); err != nil {
			return fsError(err, "failed to remove stale tree", dir)
		}
	}

	if _, err := os.Lstat(root); err == nil {
		stale, err := os.MkdirTemp(parent, stalePrefix)
		if err != nil {
			return fsError(err, "failed to create stale directory", root)
		}
		if err := os.Rename(root, filepath.Join(stale, "tree")); err != nil {
			return fsError(err, "failed to move old tree aside", root)
		}
		if err := os.RemoveAll(stale); err != nil {
			return fsError(err, "failed to remove old tree", stale)
		}
	} else if !os.IsNotExist(err) {
		return fsError(err, "failed to stat destination root", root)
	}

	if err := os.MkdirAll(root, dirPerm); err != nil {
		return fsError(err, "failed to create destination root", root)
	}
	return nil
}

// Root implements ports.Tree.
func (m *Materializer) Root() string {
	return m.root
}

// Mountpoint returns the tree's normalized mountpoint.
func (m *Materializer) Mountpoint() string {
	return m.mountpoint
}

// Path implements ports.Tree.
func (m *Materializer) Path(path string, opts ...ports.TreeOption) (string, error) {
	o := treeOptions(m.mountpoint, opts)
	return mapPath(m.root, o.Mountpoint, path)
}

// Mkdir implements ports.Tree.
func (m *Materializer) Mkdir(path string, opts ...ports.TreeOption) error {
	dest, err := m.Path(path, opts...)
	if err != nil {
		return err
	}
	return mkdirAt(dest, path)
}

// Touch implements ports.Tree.
func (m *Materializer) Touch(path string, opts ...ports.TreeOption) error {
	dest, err := m.Path(path, opts...)
	if err != nil {
		return err
	}
	if err := mkdirAt(filepath.Dir(dest), path); err != nil {
		return err
	}

	f, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY, filePerm) //nolint:gosec // dest is inside the tree
	if err != nil {
		return fsError(err, "failed to touch file", path)
	}
	if err := f.Close(); err != nil {
		return fsError(err, "failed to touch file", path)
	}
	return nil
}

func mkdirAt(dest, path string) error {
	if err := os.MkdirAll(dest, dirPerm); err != nil {
		return fsError(err, "failed to create directory", path)
	}
	return nil
}

// clearEntry removes a non-directory entry at dest so it can be replaced.
func clearEntry(dest, path string) error {
	info, err := os.Lstat(dest)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fsError(err, "failed to stat destination", path)
	}
	if info.IsDir() {
		return nil
	}
	if err := os.Remove(dest); err != nil {
		return fsError(err, "failed to replace existing entry", path)
	}
	return nil
}

// prepare creates the parent of dest and clears any entry at dest.
func prepare(dest, path string) error {
	if err := mkdirAt(filepath.Dir(dest), path); err != nil {
		return err
	}
	return clearEntry(dest, path)
}
