package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.trai.ch/mkroot/internal/adapters/fs"
	"go.trai.ch/mkroot/internal/core/domain"
	"go.trai.ch/mkroot/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newTree(t *testing.T, mountpoint string, mode domain.LinkMode) (*fs.Materializer, *mocks.MockFetcher) {
	t.Helper()
	ctrl := gomock.NewController(t)
	fetcher := mocks.NewMockFetcher(ctrl)

	m, err := fs.NewMaterializer(filepath.Join(t.TempDir(), "root"), mountpoint, mode, fetcher, fs.NewWalker())
	require.NoError(t, err)
	return m, fetcher
}

func writeHostFile(t *testing.T, path, contents string, perm os.FileMode) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(contents), perm))
	require.NoError(t, os.Chmod(path, perm))
}

func readTreeFile(t *testing.T, m *fs.Materializer, path string) string {
	t.Helper()
	dest, err := m.Path(path)
	require.NoError(t, err)
	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	return string(data)
}
