package fs

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/mkroot/internal/core/domain"
	"go.trai.ch/mkroot/internal/core/ports"
	"go.trai.ch/zerr"
)

// maxSymlinkHops bounds symlink chains, matching the kernel's ELOOP limit.
const maxSymlinkHops = 40

// Install implements ports.Tree. The source's symlink chain is followed to
// its final target; a directory becomes an empty directory in the tree.
func (m *Materializer) Install(path, source string, opts ...ports.TreeOption) error {
	dest, err := m.Path(path, opts...)
	if err != nil {
		return err
	}
	return m.installAt(dest, path, source)
}

func (m *Materializer) installAt(dest, path, source string) error {
	resolved, info, err := followChain(source)
	if err != nil {
		return installError(err, "failed to resolve install source", path, source)
	}

	if info.IsDir() {
		return mkdirAt(dest, path)
	}
	if !info.Mode().IsRegular() {
		return installError(fs.ErrInvalid, "install source is not a regular file", path, source)
	}

	if err := prepare(dest, path); err != nil {
		return zerr.With(err, "source", source)
	}

	switch m.mode {
	case domain.LinkModeHardlink:
		if err := os.Link(resolved, dest); err != nil {
			return installError(err, "failed to hardlink file", path, source)
		}
	case domain.LinkModeCopy:
		if err := copyFile(resolved, dest, info); err != nil {
			return installError(err, "failed to copy file", path, source)
		}
	default:
		return zerr.With(domain.ErrInvalidLinkMode, "link_mode", m.mode.String())
	}
	return nil
}

// followChain resolves source through every symlink hop. Relative link
// targets are interpreted against the directory holding the link.
func followChain(source string) (string, fs.FileInfo, error) {
	current := source
	for range maxSymlinkHops {
		info, err := os.Lstat(current)
		if err != nil {
			return "", nil, err
		}
		if info.Mode()&fs.ModeSymlink == 0 {
			return current, info, nil
		}

		target, err := os.Readlink(current)
		if err != nil {
			return "", nil, err
		}
		if !filepath.IsAbs(target) {
			target = filepath.Join(filepath.Dir(current), target)
		}
		current = target
	}
	return "", nil, zerr.With(zerr.New("too many levels of symbolic links"), "path", source)
}

// copyFile copies a regular file preserving its permission bits and
// modification time.
func copyFile(src, dest string, info fs.FileInfo) error {
	in, err := os.Open(src) //nolint:gosec // src comes from the resolved file set
	if err != nil {
		return err
	}
	defer func() {
		_ = in.Close()
	}()

	out, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm()) //nolint:gosec // dest is inside the tree
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	// OpenFile applies the umask.
	if err := os.Chmod(dest, info.Mode().Perm()); err != nil {
		return err
	}
	return os.Chtimes(dest, info.ModTime(), info.ModTime())
}
