package domain

// StepKind enumerates the explicit operations a profile can perform.
type StepKind string

const (
	// StepMkdir creates a directory.
	StepMkdir StepKind = "mkdir"
	// StepTouch creates an empty file.
	StepTouch StepKind = "touch"
	// StepInstall installs a host file at a tree path.
	StepInstall StepKind = "install"
	// StepSymlink writes a literal symbolic link.
	StepSymlink StepKind = "symlink"
	// StepWrite writes literal content.
	StepWrite StepKind = "write"
	// StepCopy replicates a host path or glob.
	StepCopy StepKind = "copy"
	// StepArchive extracts a verified archive.
	StepArchive StepKind = "archive"
)

// Step is one explicit operation on a profile's tree. Only the fields
// relevant to Kind are set.
type Step struct {
	Kind StepKind

	// Path is the tree path the step operates on.
	Path string

	// Source is the host file installed by StepInstall.
	Source string

	// Target is the link text of StepSymlink.
	Target string

	// Contents is the text written by StepWrite.
	Contents string

	// Exclude lists prefixes skipped by StepCopy.
	Exclude []string

	// Archive describes the archive of StepArchive.
	Archive *ArchiveDescriptor

	// Mountpoint overrides the tree's mountpoint for this step when set.
	Mountpoint string
}

// Profile describes one independently materialized tree.
type Profile struct {
	// Name identifies the profile on the command line and in manifests.
	Name string

	// Destination is the host directory the tree is built in.
	Destination string

	// Mountpoint is the path prefix tree operations are expressed against.
	Mountpoint string

	// Packages are resolved into the tree's base file set.
	Packages []PackageName

	// ExcludePackages contribute no files and are not traversed.
	ExcludePackages []PackageName

	// Recursive expands dependencies of Packages.
	Recursive bool

	// IncludePrefixes, when non-empty, keeps only files under one of them.
	IncludePrefixes []string

	// ExcludePrefixes drops resolved files under any of them.
	ExcludePrefixes []string

	// Steps run in order after the resolved files are installed.
	Steps []Step

	// Verify lists tree paths that must exist once the profile is built.
	Verify []string
}

// Config is the whole build configuration.
type Config struct {
	// ExclusionPrefixes is the resolver-level exclusion set.
	ExclusionPrefixes []string

	// Profiles are built in declaration order.
	Profiles []Profile
}
