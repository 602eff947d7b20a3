// Package dpkg implements the package database on top of the Debian dpkg
// administrative directory.
package dpkg

import (
	"bufio"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.trai.ch/mkroot/internal/core/domain"
	"go.trai.ch/zerr"
)

// DefaultAdminDir is the dpkg administrative directory on Debian hosts.
const DefaultAdminDir = "/var/lib/dpkg"

// Database implements ports.PackageDatabase. The status file is read on
// first use and the result is kept for the lifetime of the process.
type Database struct {
	adminDir string

	once      sync.Once
	loadErr   error
	packages  map[domain.PackageName]stanza
	providers map[domain.PackageName][]domain.PackageName
}

// NewDatabase creates a database reading from adminDir.
func NewDatabase(adminDir string) *Database {
	return &Database{adminDir: adminDir}
}

// Exists reports whether name is a known package or a virtual package
// provided by one. It is false when the status file cannot be read.
func (d *Database) Exists(name domain.PackageName) bool {
	if err := d.load(); err != nil {
		return false
	}
	if _, ok := d.packages[name]; ok {
		return true
	}
	_, ok := d.providers[name]
	return ok
}

// Err implements ports.LoadChecker. It reports why the status file could
// not be loaded.
func (d *Database) Err() error {
	return d.load()
}

// Get returns the record for name. A virtual package yields an installed
// record without files whose single dependency group lists its providers.
func (d *Database) Get(name domain.PackageName) (*domain.PackageRecord, error) {
	if err := d.load(); err != nil {
		return nil, err
	}

	pkg, ok := d.packages[name]
	if !ok {
		providers, virtual := d.providers[name]
		if !virtual {
			return nil, zerr.With(domain.ErrMissingPackage, "package", name.String())
		}
		return &domain.PackageRecord{
			Name:         name,
			Installed:    true,
			Dependencies: []domain.OrGroup{providers},
		}, nil
	}

	record := &domain.PackageRecord{
		Name:         pkg.name,
		Installed:    pkg.installed,
		Dependencies: pkg.dependencies,
	}
	if !pkg.installed {
		return record, nil
	}

	files, err := d.readFileList(pkg)
	if err != nil {
		return nil, err
	}
	record.InstalledFiles = files

	return record, nil
}

// unavailable wraps a failure to read the admin dir so that it matches
// domain.ErrPackageDatabaseUnavailable.
func unavailable(err error, msg, path string) error {
	joined := errors.Join(domain.ErrPackageDatabaseUnavailable, err)
	return zerr.With(zerr.Wrap(joined, msg), "path", path)
}

func (d *Database) load() error {
	d.once.Do(func() {
		path := filepath.Join(d.adminDir, "status")
		f, err := os.Open(path) //nolint:gosec // admin dir is operator supplied
		if err != nil {
			d.loadErr = unavailable(err, "failed to read dpkg status file", path)
			return
		}
		defer func() {
			_ = f.Close()
		}()

		stanzas, err := parseStatus(f)
		if err != nil {
			d.loadErr = unavailable(err, "failed to parse dpkg status file", path)
			return
		}

		d.packages = make(map[domain.PackageName]stanza, len(stanzas))
		d.providers = make(map[domain.PackageName][]domain.PackageName)
		for _, s := range stanzas {
			// Multi-arch installs share a name; an installed stanza wins.
			if existing, ok := d.packages[s.name]; ok && existing.installed {
				continue
			}
			d.packages[s.name] = s
			if !s.installed {
				continue
			}
			for _, p := range s.provides {
				d.providers[p] = append(d.providers[p], s.name)
			}
		}
	})
	return d.loadErr
}

// readFileList reads info/<name>.list, falling back to the
// architecture-qualified info/<name>:<arch>.list.
func (d *Database) readFileList(pkg stanza) ([]string, error) {
	candidates := []string{filepath.Join(d.adminDir, "info", pkg.name.String()+".list")}
	if pkg.arch != "" {
		candidates = append(candidates,
			filepath.Join(d.adminDir, "info", pkg.name.String()+":"+pkg.arch+".list"))
	}

	for _, path := range candidates {
		files, err := readList(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			listErr := unavailable(err, "failed to read dpkg file list", path)
			return nil, zerr.With(listErr, "package", pkg.name.String())
		}
		return files, nil
	}

	return nil, nil
}

func readList(path string) ([]string, error) {
	f, err := os.Open(path) //nolint:gosec // path is derived from the admin dir
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()

	var files []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		// The list always starts with "/." for the package root.
		if line == "" || line == "/." {
			continue
		}
		files = append(files, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return files, nil
}
