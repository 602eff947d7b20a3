package fs

import (
	"archive/tar"
	"context"
	"errors"
	"io"
	"os"
	"path"
	"strings"

	"go.trai.ch/mkroot/internal/core/domain"
	"go.trai.ch/mkroot/internal/core/ports"
	"go.trai.ch/zerr"
)

// ExtractArchive implements ports.Tree.
//
// The archive is fetched into its cache path when absent and its checksum is
// verified before a single member is written. Members are kept when their
// normalized name starts with the strip prefix, which is then replaced by
// the mountpoint.
func (m *Materializer) ExtractArchive(ctx context.Context, archive domain.ArchiveDescriptor, opts ...ports.TreeOption) error {
	o := treeOptions(m.mountpoint, opts)

	if archive.CachePath == "" {
		return zerr.With(zerr.With(domain.ErrInvalidConfig, "reason", "archive has no cache path"), "url", archive.URL)
	}
	if err := m.fetcher.Fetch(ctx, archive.URL, archive.CachePath); err != nil {
		return err
	}
	if err := verifyChecksum(archive.CachePath, archive.Checksum); err != nil {
		return zerr.With(err, "url", archive.URL)
	}

	f, err := os.Open(archive.CachePath)
	if err != nil {
		return fsError(err, "failed to open archive", archive.CachePath)
	}
	defer func() {
		_ = f.Close()
	}()

	stream, _, err := decompress(f)
	if err != nil {
		return zerr.With(fsError(err, "failed to decompress archive", archive.CachePath), "url", archive.URL)
	}
	defer func() {
		_ = stream.Close()
	}()

	x := extraction{
		tree:       m,
		mountpoint: o.Mountpoint,
		strip:      normalizeMember(archive.StripPrefix),
		exclude:    archive.Exclude,
	}

	tr := tar.NewReader(stream)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return zerr.With(fsError(err, "failed to read archive member", archive.CachePath), "url", archive.URL)
		}

		if err := x.member(hdr, tr); err != nil {
			return zerr.With(err, "archive", archive.CachePath)
		}
	}
}

type extraction struct {
	tree       *Materializer
	mountpoint string
	strip      string
	exclude    []string
}

// normalizeMember strips the leading "./" and "/" tar writers emit.
func normalizeMember(name string) string {
	for {
		switch {
		case strings.HasPrefix(name, "./"):
			name = name[2:]
		case strings.HasPrefix(name, "/"):
			name = name[1:]
		default:
			return name
		}
	}
}

// treePath rewrites a member name into a tree path below the mountpoint.
// Members outside the strip prefix report false.
func (x *extraction) treePath(name string) (string, bool, error) {
	name = normalizeMember(name)
	if name == strings.TrimSuffix(x.strip, "/") {
		name = x.strip
	}
	if !strings.HasPrefix(name, x.strip) {
		return "", false, nil
	}

	p := path.Clean(x.mountpoint + name[len(x.strip):])
	if !WithinMountpoint(p, x.mountpoint) {
		outside := zerr.With(domain.ErrPathOutsideMountpoint, "member", name)
		return "", false, zerr.With(outside, "mountpoint", x.mountpoint)
	}
	return p, true, nil
}

func (x *extraction) member(hdr *tar.Header, r io.Reader) error {
	p, ok, err := x.treePath(hdr.Name)
	if err != nil || !ok {
		return err
	}
	if domain.HasAnyPrefix(p, x.exclude) {
		return nil
	}

	opt := ports.WithMountpoint(x.mountpoint)
	dest, err := x.tree.Path(p, opt)
	if err != nil {
		return err
	}
	if err := noSymlinkParents(x.tree.root, dest, p); err != nil {
		return err
	}

	switch hdr.Typeflag {
	case tar.TypeDir:
		if err := mkdirAt(dest, p); err != nil {
			return err
		}
		// The owner keeps write access so later members can land inside.
		if err := os.Chmod(dest, memberMode(hdr)|0o700); err != nil {
			return fsError(err, "failed to set directory mode", p)
		}
		return nil
	case tar.TypeSymlink:
		return symlinkAt(dest, p, hdr.Linkname)
	case tar.TypeReg:
		return writeAt(dest, p, r, memberMode(hdr))
	case tar.TypeLink:
		return x.hardlink(dest, p, hdr.Linkname)
	default:
		// Devices, fifos and other special members have no place in a jail.
		return nil
	}
}

// memberMode keeps the permission and special mode bits of a member and
// drops its file type bits.
func memberMode(hdr *tar.Header) os.FileMode {
	const keep = os.ModePerm | os.ModeSetuid | os.ModeSetgid | os.ModeSticky
	return hdr.FileInfo().Mode() & keep
}

// hardlink reproduces a tar hard link between two extracted members.
func (x *extraction) hardlink(dest, p, linkname string) error {
	target, ok, err := x.treePath(linkname)
	if err != nil {
		return err
	}
	if !ok {
		return zerr.With(fsError(os.ErrNotExist, "hard link target outside strip prefix", p), "target", linkname)
	}

	src, err := x.tree.Path(target, ports.WithMountpoint(x.mountpoint))
	if err != nil {
		return err
	}
	if err := noSymlinkParents(x.tree.root, src, target); err != nil {
		return err
	}
	if err := prepare(dest, p); err != nil {
		return err
	}
	if err := os.Link(src, dest); err != nil {
		return zerr.With(fsError(err, "failed to link archive member", p), "target", linkname)
	}
	return nil
}
