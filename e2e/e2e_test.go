//go:build e2e

package e2e_test

import (
	"archive/tar"
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/rogpeppe/go-internal/testscript"
)

var mkrootBinary string

func TestMain(m *testing.M) {
	tmpDir, err := os.MkdirTemp("", "mkroot-e2e-*")
	if err != nil {
		panic(err)
	}

	mkrootBinary = filepath.Join(tmpDir, "mkroot")

	//nolint:gosec // Building binary with static arguments, not user input
	cmd := exec.Command("go", "build", "-o", mkrootBinary, "./cmd/mkroot")
	cmd.Dir = ".."
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		panic("failed to build mkroot binary: " + err.Error())
	}

	exitCode := m.Run()

	_ = os.RemoveAll(tmpDir)

	os.Exit(exitCode)
}

func TestScripts(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir:   "testdata",
		Setup: setupE2E,
		Cmds: map[string]func(ts *testscript.TestScript, neg bool, args []string){
			"expand": expandCmd,
		},
	})
}

func setupE2E(env *testscript.Env) error {
	env.Setenv("NO_COLOR", "1")
	env.Setenv("CI", "true")

	binDir := filepath.Dir(mkrootBinary)
	currentPath := env.Getenv("PATH")
	env.Setenv("PATH", binDir+string(os.PathListSeparator)+currentPath)

	homeDir := filepath.Join(env.WorkDir, ".home")
	if err := os.MkdirAll(homeDir, 0o750); err != nil {
		return err
	}
	env.Setenv("HOME", homeDir)

	host := filepath.Join(env.WorkDir, "host")
	if err := writeHost(host); err != nil {
		return err
	}
	adminDir := filepath.Join(env.WorkDir, "dpkg")
	if err := writeAdminDir(adminDir, host); err != nil {
		return err
	}
	env.Setenv("HOST", host)
	env.Setenv("MKROOT_DPKG_ADMINDIR", adminDir)

	archive := filepath.Join(env.WorkDir, "app.tar.gz")
	sum, err := writeArchive(archive)
	if err != nil {
		return err
	}
	env.Setenv("ARCHIVE_URL", "file://"+archive)
	env.Setenv("ARCHIVE_SUM", "sha256:"+sum)

	return nil
}

// writeHost lays out the files the fake package database points at.
func writeHost(host string) error {
	files := map[string]string{
		"bin/tool":             "#!/bin/sh\necho tool\n",
		"lib/libfoo.so":        "libfoo",
		"usr/share/doc/foo":    "docs",
		"etc/tool/tool.conf":   "verbose = true\n",
		"etc/tool/skip.conf":   "skipped\n",
		"opt/unpacked/payload": "not installed",
	}
	for rel, contents := range files {
		path := filepath.Join(host, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			return err
		}
		if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
			return err
		}
	}
	return nil
}

// writeAdminDir writes a dpkg status database: tool depends on libfoo, and
// libfoo depends on a half-removed package.
func writeAdminDir(adminDir, host string) error {
	status := `Package: tool
Status: install ok installed
Architecture: amd64
Depends: libfoo (>= 1.0) | libfoo-compat

Package: libfoo
Status: install ok installed
Architecture: amd64
Multi-Arch: same
Depends: removed

Package: removed
Status: deinstall ok config-files
Architecture: amd64
`
	lists := map[string][]string{
		"tool.list":         {"/.", host + "/bin", host + "/bin/tool"},
		"libfoo:amd64.list": {"/.", host + "/lib", host + "/lib/libfoo.so", host + "/usr/share/doc/foo"},
		"removed.list":      {"/.", host + "/opt/unpacked/payload"},
	}

	if err := os.MkdirAll(filepath.Join(adminDir, "info"), 0o750); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(adminDir, "status"), []byte(status), 0o600); err != nil {
		return err
	}
	for name, lines := range lists {
		contents := strings.Join(lines, "\n") + "\n"
		if err := os.WriteFile(filepath.Join(adminDir, "info", name), []byte(contents), 0o600); err != nil {
			return err
		}
	}
	return nil
}

// writeArchive writes a gzipped tar with a single top-level directory and
// returns its SHA-256.
func writeArchive(path string) (string, error) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)

	members := []struct {
		name     string
		contents string
	}{
		{"app-1.0/README", "hello from the archive\n"},
		{"app-1.0/bin/app", "#!/bin/sh\n"},
		{"app-1.0/src/main.c", "int main(void) { return 0; }\n"},
	}
	for _, m := range members {
		hdr := &tar.Header{
			Name:     m.name,
			Mode:     0o644,
			Size:     int64(len(m.contents)),
			Typeflag: tar.TypeReg,
		}
		if err := tw.WriteHeader(hdr); err != nil {
			return "", err
		}
		if _, err := tw.Write([]byte(m.contents)); err != nil {
			return "", err
		}
	}
	if err := tw.Close(); err != nil {
		return "", err
	}
	if err := gz.Close(); err != nil {
		return "", err
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		return "", err
	}
	sum := sha256.Sum256(buf.Bytes())
	return hex.EncodeToString(sum[:]), nil
}

// expandCmd rewrites a file in place, substituting $VARS from the script
// environment.
func expandCmd(ts *testscript.TestScript, neg bool, args []string) {
	if neg {
		ts.Fatalf("unsupported: ! expand")
	}
	if len(args) != 1 {
		ts.Fatalf("usage: expand file")
	}
	path := ts.MkAbs(args[0])
	expanded := os.Expand(ts.ReadFile(args[0]), ts.Getenv)
	ts.Check(os.WriteFile(path, []byte(expanded), 0o600))
}
