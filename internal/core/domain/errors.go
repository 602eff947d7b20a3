package domain

import "go.trai.ch/zerr"

var (
	// ErrMissingPackage is returned when a requested or transitively required package
	// is not present in the package database.
	ErrMissingPackage = zerr.New("missing package")

	// ErrPackageDatabaseUnavailable is returned when the package database cannot be read.
	ErrPackageDatabaseUnavailable = zerr.New("package database unavailable")

	// ErrPathOutsideMountpoint is returned when a tree operation receives a path that is
	// not prefixed by the active mountpoint.
	ErrPathOutsideMountpoint = zerr.New("path is outside mountpoint")

	// ErrChecksumMismatch is returned when an archive's content hash disagrees with the
	// pinned checksum.
	ErrChecksumMismatch = zerr.New("checksum mismatch")

	// ErrUnsupportedChecksum is returned when a checksum uses an unknown algorithm prefix.
	ErrUnsupportedChecksum = zerr.New("unsupported checksum algorithm")

	// ErrFilesystem is returned when a directory creation, link, copy or write fails.
	ErrFilesystem = zerr.New("filesystem operation failed")

	// ErrFetchFailed is returned when an archive cannot be downloaded.
	ErrFetchFailed = zerr.New("failed to fetch archive")

	// ErrNoGlobMatches is returned when a host copy pattern matches nothing.
	ErrNoGlobMatches = zerr.New("pattern matched no host paths")

	// ErrIncompleteTree is returned when a required path is missing after materialization.
	ErrIncompleteTree = zerr.New("materialized tree is incomplete")

	// ErrUnknownProfile is returned when a requested profile is not configured.
	ErrUnknownProfile = zerr.New("unknown profile")

	// ErrInvalidConfig is returned when the profile configuration fails validation.
	ErrInvalidConfig = zerr.New("invalid configuration")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidLinkMode is returned when a link mode string is not recognized.
	ErrInvalidLinkMode = zerr.New("invalid link mode, expected 'hardlink' or 'copy'")

	// ErrStoreReadFailed is returned when the manifest store cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read build manifest")

	// ErrStoreWriteFailed is returned when the manifest store cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write build manifest")

	// ErrPassthroughFailed is returned when the post-build command exits unsuccessfully.
	ErrPassthroughFailed = zerr.New("post-build command failed")

	// ErrBuildFailed is returned when building the root trees fails.
	ErrBuildFailed = zerr.New("build failed")
)
