package fs

import (
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"go.trai.ch/mkroot/internal/core/domain"
	"go.trai.ch/mkroot/internal/core/ports"
	"go.trai.ch/zerr"
)

// CopyFromHost implements ports.Tree. The host path is also the tree path,
// so it must lie below the operation's mountpoint.
//
// Paths containing glob metacharacters are expanded first and must match at
// least one entry. Directories are walked, skipping subtrees under any
// exclude prefix. A symlink whose resolved target stays within the
// mountpoint is reproduced literally; any other symlink is replaced by the
// content it points to.
func (m *Materializer) CopyFromHost(path string, exclude []string, opts ...ports.TreeOption) error {
	o := treeOptions(m.mountpoint, opts)

	matches := []string{path}
	if strings.ContainsAny(path, "*?[") {
		var err error
		matches, err = filepath.Glob(path)
		if err != nil {
			return zerr.With(zerr.Wrap(err, "failed to glob path"), "path", path)
		}
		if len(matches) == 0 {
			return zerr.With(domain.ErrNoGlobMatches, "path", path)
		}
	}

	for _, match := range matches {
		if domain.HasAnyPrefix(match, exclude) {
			continue
		}
		if err := m.copyPath(match, exclude, o.Mountpoint); err != nil {
			return err
		}
	}
	return nil
}

func (m *Materializer) copyPath(path string, exclude []string, mountpoint string) error {
	info, err := os.Lstat(path)
	if err != nil {
		return installError(err, "failed to stat host path", path, path)
	}

	switch {
	case info.Mode()&os.ModeSymlink != 0:
		return m.copySymlink(path, mountpoint)
	case info.IsDir():
		if err := m.Mkdir(path, ports.WithMountpoint(mountpoint)); err != nil {
			return err
		}
		for entry, err := range m.walker.Walk(path, exclude) {
			if err != nil {
				return installError(err, "failed to walk host directory", entry.Path, entry.Path)
			}
			if err := m.copyEntry(entry, mountpoint); err != nil {
				return err
			}
		}
		return nil
	default:
		return m.Install(path, path, ports.WithMountpoint(mountpoint))
	}
}

func (m *Materializer) copyEntry(entry Entry, mountpoint string) error {
	switch {
	case entry.IsSymlink():
		return m.copySymlink(entry.Path, mountpoint)
	case entry.IsDir():
		return m.Mkdir(entry.Path, ports.WithMountpoint(mountpoint))
	default:
		return m.Install(entry.Path, entry.Path, ports.WithMountpoint(mountpoint))
	}
}

func (m *Materializer) copySymlink(path, mountpoint string) error {
	return m.placeSymlink(path, path, mountpoint, map[string]bool{})
}

// placeSymlink materializes the host symlink hostPath at the tree path
// treePath. The link is classified by its fully resolved target: within the
// mountpoint it is recreated, otherwise the content it resolves to is copied.
// seen holds the resolved directories being deep-copied on the current chain.
func (m *Materializer) placeSymlink(treePath, hostPath, mountpoint string, seen map[string]bool) error {
	text, err := os.Readlink(hostPath)
	if err != nil {
		return installError(err, "failed to read symlink", treePath, hostPath)
	}

	resolved, err := filepath.EvalSymlinks(hostPath)
	if err != nil {
		// A dangling link is kept only when it points into the mountpoint.
		target := text
		if !filepath.IsAbs(target) {
			target = filepath.Join(filepath.Dir(hostPath), target)
		}
		if WithinMountpoint(target, mountpoint) {
			return m.Symlink(treePath, text, ports.WithMountpoint(mountpoint))
		}
		return installError(err, "failed to resolve symlink target", treePath, hostPath)
	}

	if WithinMountpoint(resolved, mountpoint) {
		// Relative text is only meaningful at the link's own host location.
		if treePath != hostPath && !filepath.IsAbs(text) {
			text = resolved
		}
		return m.Symlink(treePath, text, ports.WithMountpoint(mountpoint))
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return installError(err, "failed to resolve symlink target", treePath, resolved)
	}
	if !info.IsDir() {
		return m.Install(treePath, resolved, ports.WithMountpoint(mountpoint))
	}
	return m.copyDirContents(treePath, resolved, mountpoint, seen)
}

// copyDirContents deep-copies the resolved host directory src so that it
// appears at the tree path dst. Nested symlinks are classified the same way
// as top-level ones.
func (m *Materializer) copyDirContents(dst, src, mountpoint string, seen map[string]bool) error {
	if seen[src] {
		return installError(syscall.ELOOP, "symlink cycle in host directory", dst, src)
	}
	seen[src] = true
	defer delete(seen, src)

	if err := m.Mkdir(dst, ports.WithMountpoint(mountpoint)); err != nil {
		return err
	}

	for entry, err := range m.walker.Walk(src, nil) {
		if err != nil {
			return installError(err, "failed to walk host directory", dst, entry.Path)
		}
		rel, err := filepath.Rel(src, entry.Path)
		if err != nil {
			return installError(err, "failed to relativize path", dst, entry.Path)
		}
		treePath := filepath.Join(dst, rel)

		switch {
		case entry.IsSymlink():
			err = m.placeSymlink(treePath, entry.Path, mountpoint, seen)
		case entry.IsDir():
			err = m.Mkdir(treePath, ports.WithMountpoint(mountpoint))
		default:
			err = m.Install(treePath, entry.Path, ports.WithMountpoint(mountpoint))
		}
		if err != nil {
			return err
		}
	}
	return nil
}
