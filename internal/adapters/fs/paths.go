package fs

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	"go.trai.ch/mkroot/internal/core/domain"
	"go.trai.ch/mkroot/internal/core/ports"
	"go.trai.ch/zerr"
)

// NormalizeMountpoint returns mountpoint with exactly one trailing slash.
// An empty mountpoint is the filesystem root.
func NormalizeMountpoint(mountpoint string) string {
	trimmed := strings.TrimRight(mountpoint, "/")
	return trimmed + "/"
}

// WithinMountpoint reports whether the absolute path target lies at or
// below mountpoint once normalized. It is the single predicate deciding
// whether a host symlink can be kept literally inside a tree.
func WithinMountpoint(target, mountpoint string) bool {
	if !path.IsAbs(target) {
		return false
	}
	mp := NormalizeMountpoint(mountpoint)
	clean := path.Clean(target)
	return clean+"/" == mp || strings.HasPrefix(clean, mp)
}

// mapPath maps an absolute tree path below mountpoint into root. The path
// /x/y under mountpoint /x/ maps to root/y.
func mapPath(root, mountpoint, p string) (string, error) {
	mp := NormalizeMountpoint(mountpoint)
	if !WithinMountpoint(p, mp) {
		outside := zerr.With(domain.ErrPathOutsideMountpoint, "path", p)
		return "", zerr.With(outside, "mountpoint", mp)
	}

	clean := path.Clean(p)
	if clean+"/" == mp {
		return root, nil
	}
	return root + clean[len(mp)-1:], nil
}

func treeOptions(mountpoint string, opts []ports.TreeOption) ports.TreeOptions {
	o := ports.TreeOptions{Mountpoint: mountpoint}
	for _, opt := range opts {
		opt(&o)
	}
	o.Mountpoint = NormalizeMountpoint(o.Mountpoint)
	return o
}

// noSymlinkParents rejects dest when a directory between root and dest is a
// symlink.
func noSymlinkParents(root, dest, p string) error {
	rel, err := filepath.Rel(root, filepath.Dir(dest))
	if err != nil || rel == "." {
		return nil
	}

	current := root
	for part := range strings.SplitSeq(rel, string(filepath.Separator)) {
		current = filepath.Join(current, part)
		info, err := os.Lstat(current)
		if os.IsNotExist(err) {
			return nil
		}
		if err != nil {
			return fsError(err, "failed to stat parent directory", p)
		}
		if info.Mode()&os.ModeSymlink != 0 {
			outside := zerr.With(domain.ErrPathOutsideMountpoint, "path", p)
			return zerr.With(outside, "reason", "parent is a symlink")
		}
	}
	return nil
}
