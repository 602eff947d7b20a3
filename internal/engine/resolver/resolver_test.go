package resolver_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/mkroot/internal/adapters/dpkg"
	"go.trai.ch/mkroot/internal/core/domain"
	"go.trai.ch/mkroot/internal/core/ports"
	"go.trai.ch/mkroot/internal/core/ports/mocks"
	"go.trai.ch/mkroot/internal/engine/resolver"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

// host creates files below a temporary directory and returns the directory.
func host(t *testing.T, files ...string) string {
	t.Helper()
	root := t.TempDir()
	for _, f := range files {
		path := filepath.Join(root, f)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, []byte(f), 0o600))
	}
	return root
}

type pkg struct {
	files        []string
	dependencies [][]string
	notInstalled bool
}

// database returns a PackageDatabase mock serving pkgs. Paths are joined
// onto root.
func database(ctrl *gomock.Controller, root string, pkgs map[string]pkg) *mocks.MockPackageDatabase {
	db := mocks.NewMockPackageDatabase(ctrl)
	db.EXPECT().Exists(gomock.Any()).DoAndReturn(func(name domain.PackageName) bool {
		_, ok := pkgs[name.String()]
		return ok
	}).AnyTimes()
	db.EXPECT().Get(gomock.Any()).DoAndReturn(func(name domain.PackageName) (*domain.PackageRecord, error) {
		p := pkgs[name.String()]
		rec := &domain.PackageRecord{Name: name, Installed: !p.notInstalled}
		for _, f := range p.files {
			rec.InstalledFiles = append(rec.InstalledFiles, filepath.Join(root, f))
		}
		for _, group := range p.dependencies {
			rec.Dependencies = append(rec.Dependencies, domain.PackageNames(group...))
		}
		return rec, nil
	}).AnyTimes()
	return db
}

func paths(root string, rel ...string) domain.FileSet {
	set := domain.NewFileSet()
	for _, r := range rel {
		set.Add(filepath.Join(root, r))
	}
	return set
}

func TestResolve_NonRecursive(t *testing.T) {
	ctrl := gomock.NewController(t)
	root := host(t, "lib/libc.so.6", "lib/libgcc_s.so.1")
	db := database(ctrl, root, map[string]pkg{
		"libc6":     {files: []string{"lib", "lib/libc.so.6"}, dependencies: [][]string{{"libgcc-s1"}}},
		"libgcc-s1": {files: []string{"lib/libgcc_s.so.1"}},
	})

	set, err := resolver.New(db).Resolve(ports.ResolveRequest{
		Names: domain.PackageNames("libc6"),
	})
	require.NoError(t, err)
	assert.Equal(t, paths(root, "lib/libc.so.6"), set)
}

func TestResolve_RecursiveIsSuperset(t *testing.T) {
	ctrl := gomock.NewController(t)
	root := host(t, "lib/libc.so.6", "lib/libgcc_s.so.1", "lib/libz.so.1")
	db := database(ctrl, root, map[string]pkg{
		"zlib1g":    {files: []string{"lib/libz.so.1"}, dependencies: [][]string{{"libc6"}}},
		"libc6":     {files: []string{"lib/libc.so.6"}, dependencies: [][]string{{"libgcc-s1"}}},
		"libgcc-s1": {files: []string{"lib/libgcc_s.so.1"}, dependencies: [][]string{{"libc6"}}},
	})

	r := resolver.New(db)
	flat, err := r.Resolve(ports.ResolveRequest{Names: domain.PackageNames("zlib1g")})
	require.NoError(t, err)
	deep, err := r.Resolve(ports.ResolveRequest{Names: domain.PackageNames("zlib1g"), Recursive: true})
	require.NoError(t, err)

	for p := range flat {
		assert.True(t, deep.Contains(p), "recursive result misses %s", p)
	}
	assert.Equal(t, paths(root, "lib/libz.so.1", "lib/libc.so.6", "lib/libgcc_s.so.1"), deep)
}

func TestResolve_Deterministic(t *testing.T) {
	ctrl := gomock.NewController(t)
	root := host(t, "a", "b", "c", "d")
	pkgs := map[string]pkg{
		"a": {files: []string{"a"}, dependencies: [][]string{{"b"}, {"c"}}},
		"b": {files: []string{"b"}, dependencies: [][]string{{"d"}}},
		"c": {files: []string{"c"}, dependencies: [][]string{{"d"}}},
		"d": {files: []string{"d"}},
	}
	req := ports.ResolveRequest{Names: domain.PackageNames("a"), Recursive: true}

	first, err := resolver.New(database(ctrl, root, pkgs)).Resolve(req)
	require.NoError(t, err)
	second, err := resolver.New(database(ctrl, root, pkgs)).Resolve(req)
	require.NoError(t, err)

	assert.Equal(t, first.Sorted(), second.Sorted())
	assert.Equal(t, 4, first.Len())
}

func TestResolve_ExclusionsAndDirectories(t *testing.T) {
	ctrl := gomock.NewController(t)
	root := host(t, "usr/bin/tool", "usr/share/doc/tool/README", "usr/lib/tool/plugin.so")
	db := database(ctrl, root, map[string]pkg{
		"tool": {files: []string{
			"usr", "usr/bin", "usr/bin/tool",
			"usr/share", "usr/share/doc/tool/README",
			"usr/lib/tool", "usr/lib/tool/plugin.so",
			"usr/lib/tool/missing.so",
		}},
	})

	r := resolver.New(db, resolver.WithExclusionPrefixes([]string{filepath.Join(root, "usr/share")}))
	set, err := r.Resolve(ports.ResolveRequest{Names: domain.PackageNames("tool")})
	require.NoError(t, err)

	assert.Equal(t, paths(root, "usr/bin/tool", "usr/lib/tool/plugin.so"), set)
	for p := range set {
		info, err := os.Stat(p)
		require.NoError(t, err)
		assert.False(t, info.IsDir())
	}
}

func TestResolve_DefaultExclusions(t *testing.T) {
	ctrl := gomock.NewController(t)
	db := mocks.NewMockPackageDatabase(ctrl)
	db.EXPECT().Exists(domain.NewPackageName("doc")).Return(true)
	db.EXPECT().Get(domain.NewPackageName("doc")).Return(&domain.PackageRecord{
		Name:           domain.NewPackageName("doc"),
		Installed:      true,
		InstalledFiles: []string{"/usr/share/doc", "/usr/share/common-licenses/GPL-3"},
	}, nil)

	set, err := resolver.New(db).Resolve(ports.ResolveRequest{Names: domain.PackageNames("doc")})
	require.NoError(t, err)
	assert.Equal(t, 0, set.Len())
}

func TestResolve_FirstAlternativeOnly(t *testing.T) {
	ctrl := gomock.NewController(t)
	root := host(t, "bin/app", "lib/first.so", "lib/second.so")
	db := database(ctrl, root, map[string]pkg{
		"app":    {files: []string{"bin/app"}, dependencies: [][]string{{"first", "second"}}},
		"first":  {files: []string{"lib/first.so"}},
		"second": {files: []string{"lib/second.so"}},
	})

	set, err := resolver.New(db).Resolve(ports.ResolveRequest{
		Names:     domain.PackageNames("app"),
		Recursive: true,
	})
	require.NoError(t, err)

	assert.True(t, set.Contains(filepath.Join(root, "lib/first.so")))
	assert.False(t, set.Contains(filepath.Join(root, "lib/second.so")))
}

func TestResolve_MissingPackage(t *testing.T) {
	ctrl := gomock.NewController(t)
	root := host(t, "bin/app")
	db := database(ctrl, root, map[string]pkg{
		"app": {files: []string{"bin/app"}, dependencies: [][]string{{"ghost"}}},
	})

	tests := []struct {
		name      string
		req       ports.ResolveRequest
		wantError bool
	}{
		{"requested", ports.ResolveRequest{Names: domain.PackageNames("nope")}, true},
		{"transitive", ports.ResolveRequest{Names: domain.PackageNames("app"), Recursive: true}, true},
		{"transitive not followed", ports.ResolveRequest{Names: domain.PackageNames("app")}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := resolver.New(db).Resolve(tt.req)
			if !tt.wantError {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, domain.ErrMissingPackage)

			var zErr *zerr.Error
			require.ErrorAs(t, err, &zErr)
			assert.NotEmpty(t, zErr.Metadata()["package"])
		})
	}
}

func TestResolve_MissingPackageNamesIt(t *testing.T) {
	ctrl := gomock.NewController(t)
	db := database(ctrl, t.TempDir(), map[string]pkg{})

	_, err := resolver.New(db).Resolve(ports.ResolveRequest{Names: domain.PackageNames("openjdk-17")})
	require.Error(t, err)
	assert.ErrorContains(t, err, "openjdk-17")
}

func TestResolve_ExcludedPackagesNotTraversed(t *testing.T) {
	ctrl := gomock.NewController(t)
	root := host(t, "bin/app", "bin/perl", "lib/libperl.so")
	db := database(ctrl, root, map[string]pkg{
		"app":     {files: []string{"bin/app"}, dependencies: [][]string{{"perl"}}},
		"perl":    {files: []string{"bin/perl"}, dependencies: [][]string{{"libperl"}}},
		"libperl": {files: []string{"lib/libperl.so"}},
	})

	set, err := resolver.New(db).Resolve(ports.ResolveRequest{
		Names:           domain.PackageNames("app"),
		ExcludePackages: domain.PackageNames("perl"),
		Recursive:       true,
	})
	require.NoError(t, err)
	assert.Equal(t, paths(root, "bin/app"), set)
}

func TestResolve_NotInstalledContributesNothing(t *testing.T) {
	ctrl := gomock.NewController(t)
	root := host(t, "bin/app", "bin/stale", "lib/dep.so")
	db := database(ctrl, root, map[string]pkg{
		"app":   {files: []string{"bin/app"}, dependencies: [][]string{{"stale"}}},
		"stale": {files: []string{"bin/stale"}, dependencies: [][]string{{"dep"}}, notInstalled: true},
		"dep":   {files: []string{"lib/dep.so"}},
	})

	set, err := resolver.New(db).Resolve(ports.ResolveRequest{
		Names:     domain.PackageNames("app"),
		Recursive: true,
	})
	require.NoError(t, err)
	assert.Equal(t, paths(root, "bin/app"), set)
}

func TestResolve_PrefixFilters(t *testing.T) {
	ctrl := gomock.NewController(t)
	root := host(t, "usr/lib/jvm/bin/java", "usr/lib/jvm/docs/index.html", "etc/java/security")
	db := database(ctrl, root, map[string]pkg{
		"jdk": {files: []string{"usr/lib/jvm/bin/java", "usr/lib/jvm/docs/index.html", "etc/java/security"}},
	})

	set, err := resolver.New(db).Resolve(ports.ResolveRequest{
		Names:               domain.PackageNames("jdk"),
		IncludePrefixes:     []string{filepath.Join(root, "usr/lib/jvm")},
		ExcludeFilePrefixes: []string{filepath.Join(root, "usr/lib/jvm/docs")},
	})
	require.NoError(t, err)
	assert.Equal(t, paths(root, "usr/lib/jvm/bin/java"), set)
}

func TestResolve_FiltersDoNotLeakThroughMemo(t *testing.T) {
	ctrl := gomock.NewController(t)
	root := host(t, "bin/a", "lib/a.so")
	db := mocks.NewMockPackageDatabase(ctrl)
	db.EXPECT().Exists(domain.NewPackageName("a")).Return(true).Times(1)
	db.EXPECT().Get(domain.NewPackageName("a")).Return(&domain.PackageRecord{
		Name:           domain.NewPackageName("a"),
		Installed:      true,
		InstalledFiles: []string{filepath.Join(root, "bin/a"), filepath.Join(root, "lib/a.so")},
	}, nil).Times(1)

	r := resolver.New(db)
	narrow, err := r.Resolve(ports.ResolveRequest{
		Names:           domain.PackageNames("a"),
		IncludePrefixes: []string{filepath.Join(root, "bin")},
	})
	require.NoError(t, err)
	full, err := r.Resolve(ports.ResolveRequest{Names: domain.PackageNames("a")})
	require.NoError(t, err)

	assert.Equal(t, 1, narrow.Len())
	assert.Equal(t, 2, full.Len())
}

func TestResolve_UnreadableDatabase(t *testing.T) {
	db := dpkg.NewDatabase(filepath.Join(t.TempDir(), "missing"))

	_, err := resolver.New(db).Resolve(ports.ResolveRequest{Names: domain.PackageNames("libc6")})
	require.ErrorIs(t, err, domain.ErrPackageDatabaseUnavailable)
	assert.NotErrorIs(t, err, domain.ErrMissingPackage)
}
