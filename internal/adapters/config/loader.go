// Package config provides the configuration loader for mkroot.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/mkroot/internal/core/domain"
	"go.trai.ch/mkroot/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultFilename is the config file looked up when none is given.
	DefaultFilename = "mkroot.yaml"

	defaultArchiveCache = ".mkroot-cache"
	supportedVersion    = "1"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	logger ports.Logger
}

// NewLoader creates a new Loader.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{logger: logger}
}

// Load reads the configuration file at path. Relative profile destinations
// are resolved against target, the archive cache against the config file.
func (l *Loader) Load(configPath, target string) (*domain.Config, error) {
	data, err := os.ReadFile(configPath) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.With(zerr.Wrap(errors.Join(domain.ErrConfigReadFailed, err), "failed to read config file"), "path", configPath)
	}

	var rootfile Rootfile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&rootfile); err != nil && !errors.Is(err, io.EOF) {
		return nil, zerr.With(zerr.Wrap(errors.Join(domain.ErrConfigParseFailed, err), "failed to parse config file"), "path", configPath)
	}

	cfg, err := build(&rootfile, filepath.Dir(configPath), target)
	if err != nil {
		return nil, zerr.With(err, "path", configPath)
	}

	for i := range cfg.Profiles {
		p := &cfg.Profiles[i]
		if len(p.Packages) == 0 && len(p.Steps) == 0 {
			l.logger.Warn(fmt.Sprintf("profile %q has no packages or steps, its tree will be empty", p.Name))
		}
	}

	return cfg, nil
}

func build(rf *Rootfile, configDir, target string) (*domain.Config, error) {
	if rf.Version != "" && rf.Version != supportedVersion {
		return nil, invalid("unsupported config version", "version", rf.Version)
	}

	exclusions := rf.ExcludeFilePrefixes
	if exclusions == nil {
		exclusions = domain.DefaultExclusionPrefixes
	}
	if err := requireAbsolute(exclusions, "excludeFilePrefixes"); err != nil {
		return nil, err
	}

	cacheDir := rf.ArchiveCache
	if cacheDir == "" {
		cacheDir = defaultArchiveCache
	}
	if !filepath.IsAbs(cacheDir) {
		cacheDir = filepath.Join(configDir, cacheDir)
	}

	cfg := &domain.Config{
		ExclusionPrefixes: exclusions,
		Profiles:          make([]domain.Profile, 0, len(rf.Profiles)),
	}

	seen := make(map[string]bool, len(rf.Profiles))
	for i := range rf.Profiles {
		dto := &rf.Profiles[i]
		if dto.Name == "" {
			return nil, invalid("profile name is empty", "index", i)
		}
		if seen[dto.Name] {
			return nil, invalid("duplicate profile name", "profile", dto.Name)
		}
		seen[dto.Name] = true

		profile, err := buildProfile(dto, cacheDir, target)
		if err != nil {
			return nil, zerr.With(err, "profile", dto.Name)
		}
		cfg.Profiles = append(cfg.Profiles, profile)
	}

	return cfg, nil
}

func buildProfile(dto *ProfileDTO, cacheDir, target string) (domain.Profile, error) {
	destination := dto.Destination
	if destination == "" {
		destination = dto.Name
	}
	if !filepath.IsAbs(destination) {
		destination = filepath.Join(target, destination)
	}

	mountpoint := dto.Mountpoint
	if mountpoint == "" {
		mountpoint = "/"
	}
	if !path.IsAbs(mountpoint) {
		return domain.Profile{}, invalid("mountpoint must be absolute", "mountpoint", mountpoint)
	}

	recursive := true
	if dto.Recursive != nil {
		recursive = *dto.Recursive
	}

	for field, paths := range map[string][]string{
		"includePrefixes": dto.IncludePrefixes,
		"excludePrefixes": dto.ExcludePrefixes,
		"verify":          dto.Verify,
	} {
		if err := requireAbsolute(paths, field); err != nil {
			return domain.Profile{}, err
		}
	}

	profile := domain.Profile{
		Name:            dto.Name,
		Destination:     filepath.Clean(destination),
		Mountpoint:      mountpoint,
		Packages:        domain.PackageNames(dto.Packages...),
		ExcludePackages: domain.PackageNames(dto.ExcludePackages...),
		Recursive:       recursive,
		IncludePrefixes: dto.IncludePrefixes,
		ExcludePrefixes: dto.ExcludePrefixes,
		Verify:          dto.Verify,
		Steps:           make([]domain.Step, 0, len(dto.Steps)),
	}

	for i := range dto.Steps {
		step, err := buildStep(&dto.Steps[i], cacheDir)
		if err != nil {
			return domain.Profile{}, zerr.With(err, "step", i)
		}
		profile.Steps = append(profile.Steps, step)
	}

	return profile, nil
}

func buildStep(dto *StepDTO, cacheDir string) (domain.Step, error) {
	var steps []domain.Step

	if dto.Mkdir != "" {
		steps = append(steps, domain.Step{Kind: domain.StepMkdir, Path: dto.Mkdir})
	}
	if dto.Touch != "" {
		steps = append(steps, domain.Step{Kind: domain.StepTouch, Path: dto.Touch})
	}
	if dto.Install != nil {
		source := dto.Install.Source
		if source == "" {
			source = dto.Install.Path
		}
		steps = append(steps, domain.Step{Kind: domain.StepInstall, Path: dto.Install.Path, Source: source})
	}
	if dto.Symlink != nil {
		if dto.Symlink.Target == "" {
			return domain.Step{}, invalid("symlink target is empty", "path", dto.Symlink.Path)
		}
		steps = append(steps, domain.Step{Kind: domain.StepSymlink, Path: dto.Symlink.Path, Target: dto.Symlink.Target})
	}
	if dto.Write != nil {
		steps = append(steps, domain.Step{Kind: domain.StepWrite, Path: dto.Write.Path, Contents: dto.Write.Contents})
	}
	if dto.Copy != nil {
		steps = append(steps, domain.Step{Kind: domain.StepCopy, Path: dto.Copy.Path, Exclude: dto.Copy.Exclude})
	}
	if dto.Archive != nil {
		archive, err := buildArchive(dto.Archive, cacheDir)
		if err != nil {
			return domain.Step{}, err
		}
		steps = append(steps, domain.Step{Kind: domain.StepArchive, Archive: archive})
	}

	if len(steps) != 1 {
		return domain.Step{}, invalid("step must have exactly one action", "actions", len(steps))
	}

	step := steps[0]
	step.Mountpoint = dto.Mountpoint
	if step.Mountpoint != "" && !path.IsAbs(step.Mountpoint) {
		return domain.Step{}, invalid("mountpoint must be absolute", "mountpoint", step.Mountpoint)
	}

	if step.Kind != domain.StepArchive && !path.IsAbs(step.Path) {
		return domain.Step{}, invalid("step path must be absolute", "path", step.Path)
	}
	if step.Kind == domain.StepInstall && !filepath.IsAbs(step.Source) {
		return domain.Step{}, invalid("install source must be absolute", "source", step.Source)
	}
	if err := requireAbsolute(step.Exclude, "exclude"); err != nil {
		return domain.Step{}, err
	}

	return step, nil
}

func buildArchive(dto *ArchiveDTO, cacheDir string) (*domain.ArchiveDescriptor, error) {
	if dto.URL == "" {
		return nil, invalid("archive url is empty")
	}
	if strings.TrimSpace(dto.Checksum) == "" {
		return nil, invalid("archive checksum is empty", "url", dto.URL)
	}

	checksum, err := domain.ParseChecksum(dto.Checksum)
	if err != nil {
		return nil, zerr.With(err, "url", dto.URL)
	}

	if err := requireAbsolute(dto.Exclude, "exclude"); err != nil {
		return nil, err
	}

	return &domain.ArchiveDescriptor{
		URL:         dto.URL,
		Checksum:    checksum,
		StripPrefix: dto.StripPrefix,
		Exclude:     dto.Exclude,
		CachePath:   filepath.Join(cacheDir, cacheName(dto.URL)),
	}, nil
}

// cacheName derives a stable cache file name from the archive URL.
func cacheName(rawURL string) string {
	base := "archive"
	if u, err := url.Parse(rawURL); err == nil {
		if b := path.Base(u.Path); b != "." && b != "/" {
			base = b
		}
	}
	return fmt.Sprintf("%016x-%s", xxhash.Sum64String(rawURL), base)
}

func requireAbsolute(paths []string, field string) error {
	for _, p := range paths {
		if !path.IsAbs(p) {
			return invalid("path must be absolute", "field", field, "value", p)
		}
	}
	return nil
}

// invalid builds an ErrInvalidConfig with a reason and key/value metadata.
func invalid(reason string, kv ...any) error {
	err := zerr.With(domain.ErrInvalidConfig, "reason", reason)
	for i := 0; i+1 < len(kv); i += 2 {
		err = zerr.With(err, fmt.Sprint(kv[i]), kv[i+1])
	}
	return err
}
