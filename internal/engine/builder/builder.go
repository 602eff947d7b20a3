// Package builder materializes configured profiles into root trees.
package builder

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"go.trai.ch/mkroot/internal/core/domain"
	"go.trai.ch/mkroot/internal/core/ports"
	"go.trai.ch/zerr"
)

// Options configures a build run.
type Options struct {
	// Only restricts the run to the named profiles. Empty means all.
	Only []string

	// LinkMode selects how files are installed into every tree.
	LinkMode domain.LinkMode
}

// Option is a functional option for Build.
type Option func(*Options)

// WithOnly restricts the run to the named profiles.
func WithOnly(names ...string) Option {
	return func(o *Options) {
		o.Only = append(o.Only, names...)
	}
}

// WithLinkMode selects the link mode of every tree in the run.
func WithLinkMode(mode domain.LinkMode) Option {
	return func(o *Options) {
		o.LinkMode = mode
	}
}

// Result describes one built profile.
type Result struct {
	Profile string
	// Root is the host directory holding the tree.
	Root string
	// Files is the number of resolved package files installed.
	Files int
}

// Builder runs profiles one after the other.
type Builder struct {
	factory   ports.TreeFactory
	verifier  ports.Verifier
	logger    ports.Logger
	tracer    ports.Tracer
	telemetry ports.Telemetry
}

// NewBuilder creates a new Builder.
func NewBuilder(
	factory ports.TreeFactory,
	verifier ports.Verifier,
	logger ports.Logger,
	tracer ports.Tracer,
	telemetry ports.Telemetry,
) *Builder {
	return &Builder{
		factory:   factory,
		verifier:  verifier,
		logger:    logger,
		tracer:    tracer,
		telemetry: telemetry,
	}
}

// Build materializes profiles in declaration order using res for package
// resolution. The first failure aborts the run.
func (b *Builder) Build(
	ctx context.Context,
	res ports.DependencyResolver,
	profiles []domain.Profile,
	opts ...Option,
) ([]Result, error) {
	options := &Options{}
	for _, opt := range opts {
		opt(options)
	}

	selected, err := selectProfiles(profiles, options.Only)
	if err != nil {
		return nil, err
	}

	ctx, span := b.tracer.Start(ctx, "build")
	defer span.End()

	names := make([]string, len(selected))
	for i := range selected {
		names[i] = selected[i].Name
	}
	b.tracer.EmitPlan(ctx, names)

	results := make([]Result, 0, len(selected))
	for i := range selected {
		if err := ctx.Err(); err != nil {
			span.RecordError(err)
			return results, err
		}

		result, err := b.buildProfile(ctx, res, &selected[i], options.LinkMode)
		if err != nil {
			err = zerr.With(zerr.Wrap(err, "failed to build profile"), "profile", selected[i].Name)
			span.RecordError(err)
			return results, err
		}
		results = append(results, result)
	}

	return results, nil
}

// selectProfiles keeps declaration order and fails on unknown names before
// any tree is touched.
func selectProfiles(profiles []domain.Profile, only []string) ([]domain.Profile, error) {
	if len(only) == 0 {
		return profiles, nil
	}

	for _, name := range only {
		if !slices.ContainsFunc(profiles, func(p domain.Profile) bool { return p.Name == name }) {
			return nil, zerr.With(domain.ErrUnknownProfile, "profile", name)
		}
	}

	selected := make([]domain.Profile, 0, len(only))
	for i := range profiles {
		if slices.Contains(only, profiles[i].Name) {
			selected = append(selected, profiles[i])
		}
	}
	return selected, nil
}

func (b *Builder) buildProfile(
	ctx context.Context,
	res ports.DependencyResolver,
	profile *domain.Profile,
	mode domain.LinkMode,
) (result Result, err error) {
	ctx, vertex := b.telemetry.Record(ctx, "profile "+profile.Name)
	defer func() { vertex.Complete(err) }()

	ctx, span := b.tracer.Start(ctx, "profile")
	defer span.End()
	span.SetAttribute("profile", profile.Name)
	span.SetAttribute("destination", profile.Destination)
	span.SetAttribute("link_mode", mode.String())
	defer func() { span.RecordError(err) }()

	b.logger.Info(fmt.Sprintf("building profile %q in %s", profile.Name, profile.Destination))

	files, err := res.Resolve(ports.ResolveRequest{
		Names:               profile.Packages,
		ExcludePackages:     profile.ExcludePackages,
		Recursive:           profile.Recursive,
		IncludePrefixes:     profile.IncludePrefixes,
		ExcludeFilePrefixes: profile.ExcludePrefixes,
	})
	if err != nil {
		return Result{}, err
	}
	span.SetAttribute("files", files.Len())
	vertex.Log(domain.LogLevelInfo, fmt.Sprintf("resolved %d files from %d packages", files.Len(), len(profile.Packages)))

	tree, err := b.factory.NewTree(profile.Destination, profile.Mountpoint, mode)
	if err != nil {
		return Result{}, err
	}

	for file := range files.All() {
		if err := tree.Install(file, file); err != nil {
			return Result{}, err
		}
	}

	for i := range profile.Steps {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		step := &profile.Steps[i]
		if err := runStep(ctx, tree, step); err != nil {
			err = zerr.With(zerr.Wrap(err, "step failed"), "step", i)
			return Result{}, zerr.With(err, "kind", string(step.Kind))
		}
	}

	if err := b.verify(tree, profile.Verify); err != nil {
		return Result{}, err
	}

	b.logger.Info(fmt.Sprintf("profile %q: installed %d files and ran %d steps", profile.Name, files.Len(), len(profile.Steps)))

	return Result{
		Profile: profile.Name,
		Root:    tree.Root(),
		Files:   files.Len(),
	}, nil
}

func runStep(ctx context.Context, tree ports.Tree, step *domain.Step) error {
	var opts []ports.TreeOption
	if step.Mountpoint != "" {
		opts = append(opts, ports.WithMountpoint(step.Mountpoint))
	}

	switch step.Kind {
	case domain.StepMkdir:
		return tree.Mkdir(step.Path, opts...)
	case domain.StepTouch:
		return tree.Touch(step.Path, opts...)
	case domain.StepInstall:
		return tree.Install(step.Path, step.Source, opts...)
	case domain.StepSymlink:
		return tree.Symlink(step.Path, step.Target, opts...)
	case domain.StepWrite:
		return tree.Write(step.Path, []byte(step.Contents), opts...)
	case domain.StepCopy:
		return tree.CopyFromHost(step.Path, step.Exclude, opts...)
	case domain.StepArchive:
		if step.Archive == nil {
			return zerr.With(domain.ErrInvalidConfig, "reason", "archive step without archive")
		}
		return tree.ExtractArchive(ctx, *step.Archive, opts...)
	default:
		return zerr.With(domain.ErrInvalidConfig, "reason", "unknown step kind")
	}
}

// verify fails when any of the required tree paths is absent.
func (b *Builder) verify(tree ports.Tree, required []string) error {
	if len(required) == 0 {
		return nil
	}

	hostPaths := make([]string, len(required))
	treePaths := make(map[string]string, len(required))
	for i, p := range required {
		hostPath, err := tree.Path(p)
		if err != nil {
			return err
		}
		hostPaths[i] = hostPath
		treePaths[hostPath] = p
	}

	missing, err := b.verifier.Missing(hostPaths)
	if err != nil {
		return err
	}
	if len(missing) == 0 {
		return nil
	}

	names := make([]string, len(missing))
	for i, m := range missing {
		names[i] = treePaths[m]
	}
	return zerr.With(domain.ErrIncompleteTree, "missing", strings.Join(names, ", "))
}
