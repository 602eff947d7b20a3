package fs_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/mkroot/internal/adapters/fs"
	"go.trai.ch/mkroot/internal/core/domain"
	"go.trai.ch/mkroot/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestNewMaterializer_WipesDestination(t *testing.T) {
	parent := t.TempDir()
	root := filepath.Join(parent, "root")
	writeHostFile(t, filepath.Join(root, "old", "file"), "stale", 0o600)
	require.NoError(t, os.MkdirAll(root+".stale-leftover", 0o750))

	fetcher := mocks.NewMockFetcher(gomock.NewController(t))
	m, err := fs.NewMaterializer(root, "/", domain.LinkModeCopy, fetcher, fs.NewWalker())
	require.NoError(t, err)
	assert.Equal(t, root, m.Root())

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Empty(t, entries)

	siblings, err := os.ReadDir(parent)
	require.NoError(t, err)
	require.Len(t, siblings, 1)
	assert.Equal(t, "root", siblings[0].Name())
}

func TestNewMaterializer_WipesStaleSiblingsOfBracketedRoot(t *testing.T) {
	parent := t.TempDir()
	root := filepath.Join(parent, "jail[1]")
	require.NoError(t, os.MkdirAll(root+".stale-leftover", 0o750))
	require.NoError(t, os.MkdirAll(filepath.Join(parent, "other.stale-keep"), 0o750))

	fetcher := mocks.NewMockFetcher(gomock.NewController(t))
	_, err := fs.NewMaterializer(root, "/", domain.LinkModeCopy, fetcher, fs.NewWalker())
	require.NoError(t, err)

	siblings, err := os.ReadDir(parent)
	require.NoError(t, err)
	names := make([]string, 0, len(siblings))
	for _, s := range siblings {
		names = append(names, s.Name())
	}
	assert.ElementsMatch(t, []string{"jail[1]", "other.stale-keep"}, names)
}

func TestNewMaterializer_RefusesHostRoot(t *testing.T) {
	_, err := fs.NewMaterializer("/", "/", domain.LinkModeCopy, nil, fs.NewWalker())
	require.ErrorIs(t, err, domain.ErrFilesystem)
}

func TestMaterializer_MkdirAndTouch(t *testing.T) {
	m, _ := newTree(t, "/", domain.LinkModeCopy)

	require.NoError(t, m.Mkdir("/tmp"))
	require.NoError(t, m.Mkdir("/tmp"))
	require.NoError(t, m.Touch("/etc/ld.so.cache"))

	info, err := os.Stat(filepath.Join(m.Root(), "tmp"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	info, err = os.Stat(filepath.Join(m.Root(), "etc", "ld.so.cache"))
	require.NoError(t, err)
	assert.True(t, info.Mode().IsRegular())
	assert.Zero(t, info.Size())

	// Touch leaves existing content alone.
	require.NoError(t, m.Write("/etc/hostname", []byte("jail\n")))
	require.NoError(t, m.Touch("/etc/hostname"))
	assert.Equal(t, "jail\n", readTreeFile(t, m, "/etc/hostname"))
}

func TestMaterializer_InstallHardlink(t *testing.T) {
	host := t.TempDir()
	src := filepath.Join(host, "libc.so.6")
	writeHostFile(t, src, "elf", 0o644)

	m, _ := newTree(t, "/", domain.LinkModeHardlink)
	require.NoError(t, m.Install("/lib/libc.so.6", src))

	srcInfo, err := os.Stat(src)
	require.NoError(t, err)
	destInfo, err := os.Stat(filepath.Join(m.Root(), "lib", "libc.so.6"))
	require.NoError(t, err)
	assert.True(t, os.SameFile(srcInfo, destInfo))
}

func TestMaterializer_InstallCopyPreservesModeAndTime(t *testing.T) {
	host := t.TempDir()
	src := filepath.Join(host, "java")
	writeHostFile(t, src, "#!/bin/sh\n", 0o755)
	stamp := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, os.Chtimes(src, stamp, stamp))

	m, _ := newTree(t, "/", domain.LinkModeCopy)
	require.NoError(t, m.Install("/usr/bin/java", src))

	srcInfo, err := os.Stat(src)
	require.NoError(t, err)
	destInfo, err := os.Stat(filepath.Join(m.Root(), "usr", "bin", "java"))
	require.NoError(t, err)

	assert.False(t, os.SameFile(srcInfo, destInfo))
	assert.Equal(t, os.FileMode(0o755), destInfo.Mode().Perm())
	assert.True(t, destInfo.ModTime().Equal(stamp))
	assert.Equal(t, "#!/bin/sh\n", readTreeFile(t, m, "/usr/bin/java"))
}

func TestMaterializer_InstallFollowsSymlinkChain(t *testing.T) {
	host := t.TempDir()
	writeHostFile(t, filepath.Join(host, "real", "libz.so.1.2.13"), "zlib", 0o644)
	require.NoError(t, os.Symlink("real/libz.so.1.2.13", filepath.Join(host, "libz.so.1")))
	require.NoError(t, os.Symlink(filepath.Join(host, "libz.so.1"), filepath.Join(host, "libz.so")))

	m, _ := newTree(t, "/", domain.LinkModeCopy)
	require.NoError(t, m.Install("/lib/libz.so", filepath.Join(host, "libz.so")))

	info, err := os.Lstat(filepath.Join(m.Root(), "lib", "libz.so"))
	require.NoError(t, err)
	assert.True(t, info.Mode().IsRegular())
	assert.Equal(t, "zlib", readTreeFile(t, m, "/lib/libz.so"))
}

func TestMaterializer_InstallDirectorySource(t *testing.T) {
	host := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(host, "share"), 0o750))

	m, _ := newTree(t, "/", domain.LinkModeHardlink)
	require.NoError(t, m.Install("/usr/share", filepath.Join(host, "share")))

	info, err := os.Stat(filepath.Join(m.Root(), "usr", "share"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestMaterializer_InstallReplacesExisting(t *testing.T) {
	host := t.TempDir()
	src := filepath.Join(host, "new")
	writeHostFile(t, src, "new", 0o644)

	m, _ := newTree(t, "/", domain.LinkModeCopy)
	require.NoError(t, m.Symlink("/bin/sh", "dash"))
	require.NoError(t, m.Install("/bin/sh", src))

	info, err := os.Lstat(filepath.Join(m.Root(), "bin", "sh"))
	require.NoError(t, err)
	assert.True(t, info.Mode().IsRegular())
	assert.Equal(t, "new", readTreeFile(t, m, "/bin/sh"))
}

func TestMaterializer_InstallMissingSource(t *testing.T) {
	m, _ := newTree(t, "/", domain.LinkModeCopy)

	err := m.Install("/bin/ghost", "/nonexistent/ghost")
	require.ErrorIs(t, err, domain.ErrFilesystem)
	assert.Contains(t, err.Error(), "failed to resolve install source")
}

func TestMaterializer_Symlink(t *testing.T) {
	m, _ := newTree(t, "/", domain.LinkModeCopy)

	require.NoError(t, m.Symlink("/usr/bin/python", "python3"))
	require.NoError(t, m.Symlink("/usr/bin/python", "python3.11"))
	require.NoError(t, m.Symlink("/dangling", "/does/not/exist"))

	link := filepath.Join(m.Root(), "usr", "bin", "python")
	target, err := os.Readlink(link)
	require.NoError(t, err)
	assert.Equal(t, "python3.11", target)

	info, err := os.Lstat(link)
	require.NoError(t, err)
	assert.Equal(t, int64(0), info.ModTime().Unix())

	target, err = os.Readlink(filepath.Join(m.Root(), "dangling"))
	require.NoError(t, err)
	assert.Equal(t, "/does/not/exist", target)
}

func TestMaterializer_WriteFixesModificationTime(t *testing.T) {
	m, _ := newTree(t, "/", domain.LinkModeCopy)

	require.NoError(t, m.Write("/etc/passwd", []byte("root:x:0:0::/:/bin/sh\n")))
	require.NoError(t, m.Write("/etc/group", []byte(strings.Repeat("g", 4096))))

	for _, name := range []string{"passwd", "group"} {
		info, err := os.Stat(filepath.Join(m.Root(), "etc", name))
		require.NoError(t, err)
		assert.True(t, info.ModTime().Equal(fs.Epoch), name)
		assert.Equal(t, int64(0), info.ModTime().Unix(), name)
	}
	assert.Equal(t, "root:x:0:0::/:/bin/sh\n", readTreeFile(t, m, "/etc/passwd"))
}

func TestMaterializer_WriteDoesNotFollowExistingSymlink(t *testing.T) {
	host := t.TempDir()
	victim := filepath.Join(host, "victim")
	writeHostFile(t, victim, "untouched", 0o644)

	m, _ := newTree(t, "/", domain.LinkModeCopy)
	require.NoError(t, m.Symlink("/etc/passwd", victim))
	require.NoError(t, m.Write("/etc/passwd", []byte("jail")))

	data, err := os.ReadFile(victim)
	require.NoError(t, err)
	assert.Equal(t, "untouched", string(data))
	assert.Equal(t, "jail", readTreeFile(t, m, "/etc/passwd"))
}
