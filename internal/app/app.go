// Package app implements the application layer for mkroot.
package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"go.trai.ch/mkroot/internal/core/domain"
	"go.trai.ch/mkroot/internal/core/ports"
	"go.trai.ch/mkroot/internal/engine/builder"
	"go.trai.ch/mkroot/internal/engine/resolver"
	"go.trai.ch/zerr"
)

// TargetEnv names the build target in the passthrough command's environment.
const TargetEnv = "MKROOT_TARGET"

// BuildOptions holds the options for a build run.
type BuildOptions struct {
	// ConfigPath is the mkroot.yaml to load.
	ConfigPath string
	// Target is the directory relative profile destinations live in.
	Target string
	// LinkMode selects hardlinks or copies for every tree.
	LinkMode domain.LinkMode
	// Profiles restricts the run to the named profiles.
	Profiles []string
	// Passthrough is run in Target once every profile is built.
	Passthrough []string
}

// ResolveOptions holds the options for a resolve query.
type ResolveOptions struct {
	Packages        []string
	ExcludePackages []string
	Recursive       bool
	IncludePrefixes []string
	ExcludePrefixes []string
}

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	database     ports.PackageDatabase
	builder      *builder.Builder
	hasher       ports.Hasher
	openStore    ports.BuildInfoStoreOpener
	executor     ports.Executor
	logger       ports.Logger
	telemetry    ports.Telemetry
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	database ports.PackageDatabase,
	b *builder.Builder,
	hasher ports.Hasher,
	openStore ports.BuildInfoStoreOpener,
	executor ports.Executor,
	logger ports.Logger,
	telemetry ports.Telemetry,
) *App {
	return &App{
		configLoader: loader,
		database:     database,
		builder:      b,
		hasher:       hasher,
		openStore:    openStore,
		executor:     executor,
		logger:       logger,
		telemetry:    telemetry,
	}
}

// Build materializes the configured profiles, records their manifests and
// runs the passthrough command.
func (a *App) Build(ctx context.Context, opts BuildOptions) error {
	target, err := filepath.Abs(opts.Target)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to resolve target"), "target", opts.Target)
	}

	// 1. Load the configuration
	cfg, err := a.configLoader.Load(opts.ConfigPath, target)
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	// 2. One resolver per run, its memo is shared by every profile
	res := resolver.New(a.database, resolver.WithExclusionPrefixes(cfg.ExclusionPrefixes))

	// 3. Build the trees
	results, err := a.builder.Build(ctx, res, cfg.Profiles,
		builder.WithOnly(opts.Profiles...),
		builder.WithLinkMode(opts.LinkMode),
	)
	if err != nil {
		return errors.Join(domain.ErrBuildFailed, err)
	}

	// 4. Record manifests
	if err := a.record(ctx, target, results); err != nil {
		return err
	}

	// 5. Hand the finished trees to the passthrough command
	if len(opts.Passthrough) > 0 {
		env := []string{TargetEnv + "=" + target}
		if err := a.executor.Execute(ctx, opts.Passthrough, target, env); err != nil {
			return err
		}
	}

	return nil
}

func (a *App) record(ctx context.Context, target string, results []builder.Result) error {
	store, err := a.openStore(filepath.Join(target, domain.ManifestFilename))
	if err != nil {
		return err
	}

	for _, r := range results {
		if err := a.recordProfile(ctx, store, r); err != nil {
			return zerr.With(err, "profile", r.Profile)
		}
	}
	return nil
}

func (a *App) recordProfile(ctx context.Context, store ports.BuildInfoStore, r builder.Result) (err error) {
	_, vertex := a.telemetry.Record(ctx, "manifest "+r.Profile)
	defer func() { vertex.Complete(err) }()

	hash, count, err := a.hasher.ComputeTreeHash(r.Root)
	if err != nil {
		return err
	}

	prev, err := store.Get(r.Profile)
	if err != nil {
		return err
	}

	switch {
	case prev == nil:
		a.logger.Info(fmt.Sprintf("profile %q built: %d entries, hash %s", r.Profile, count, hash))
	case prev.TreeHash == hash:
		vertex.Cached()
		a.logger.Info(fmt.Sprintf("profile %q unchanged since %s", r.Profile, prev.Timestamp.Format(time.RFC3339)))
	default:
		a.logger.Info(fmt.Sprintf("profile %q changed: %d entries, hash %s (was %s)", r.Profile, count, hash, prev.TreeHash))
	}

	return store.Put(domain.BuildInfo{
		Profile:   r.Profile,
		TreeHash:  hash,
		FileCount: count,
		Timestamp: time.Now().UTC(),
	})
}

// Resolve returns the sorted file set of the given packages using the
// default exclusion set.
func (a *App) Resolve(opts ResolveOptions) ([]string, error) {
	res := resolver.New(a.database)
	files, err := res.Resolve(ports.ResolveRequest{
		Names:               domain.PackageNames(opts.Packages...),
		ExcludePackages:     domain.PackageNames(opts.ExcludePackages...),
		Recursive:           opts.Recursive,
		IncludePrefixes:     opts.IncludePrefixes,
		ExcludeFilePrefixes: opts.ExcludePrefixes,
	})
	if err != nil {
		return nil, err
	}
	return files.Sorted(), nil
}

// Close flushes the telemetry session.
func (a *App) Close() error {
	return a.telemetry.Close()
}
