package fs

import (
	"bytes"
	"io"
	"io/fs"
	"os"
	"time"

	"go.trai.ch/mkroot/internal/core/ports"
	"golang.org/x/sys/unix"
)

// Epoch is the modification time given to written files and symlinks so
// that trees are reproducible.
var Epoch = time.Unix(0, 0)

// Symlink implements ports.Tree. The target is written literally and never
// validated.
func (m *Materializer) Symlink(path, target string, opts ...ports.TreeOption) error {
	dest, err := m.Path(path, opts...)
	if err != nil {
		return err
	}
	return symlinkAt(dest, path, target)
}

func symlinkAt(dest, path, target string) error {
	if err := prepare(dest, path); err != nil {
		return err
	}
	if err := os.Symlink(target, dest); err != nil {
		return fsError(err, "failed to create symlink", path)
	}

	epoch := unix.NsecToTimeval(Epoch.UnixNano())
	if err := unix.Lutimes(dest, []unix.Timeval{epoch, epoch}); err != nil {
		return fsError(err, "failed to reset symlink times", path)
	}
	return nil
}

// Write implements ports.Tree.
func (m *Materializer) Write(path string, contents []byte, opts ...ports.TreeOption) error {
	dest, err := m.Path(path, opts...)
	if err != nil {
		return err
	}
	return writeAt(dest, path, bytes.NewReader(contents), filePerm)
}

// writeAt streams r into dest with the given permission bits and resets the
// modification time to Epoch. An existing entry at dest is replaced rather
// than written through.
func writeAt(dest, path string, r io.Reader, perm fs.FileMode) error {
	if err := prepare(dest, path); err != nil {
		return err
	}

	f, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_EXCL, perm) //nolint:gosec // dest is inside the tree
	if err != nil {
		return fsError(err, "failed to create file", path)
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		return fsError(err, "failed to write file", path)
	}
	if err := f.Close(); err != nil {
		return fsError(err, "failed to write file", path)
	}

	if err := os.Chmod(dest, perm); err != nil {
		return fsError(err, "failed to set file mode", path)
	}
	if err := os.Chtimes(dest, Epoch, Epoch); err != nil {
		return fsError(err, "failed to reset file times", path)
	}
	return nil
}
