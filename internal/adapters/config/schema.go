package config

// Rootfile represents the structure of the mkroot.yaml configuration file.
type Rootfile struct {
	Version             string       `yaml:"version"`
	ArchiveCache        string       `yaml:"archiveCache"`
	ExcludeFilePrefixes []string     `yaml:"excludeFilePrefixes"`
	Profiles            []ProfileDTO `yaml:"profiles"`
}

// ProfileDTO represents a profile definition in the configuration.
type ProfileDTO struct {
	Name            string    `yaml:"name"`
	Destination     string    `yaml:"destination"`
	Mountpoint      string    `yaml:"mountpoint"`
	Packages        []string  `yaml:"packages"`
	ExcludePackages []string  `yaml:"excludePackages"`
	Recursive       *bool     `yaml:"recursive"`
	IncludePrefixes []string  `yaml:"includePrefixes"`
	ExcludePrefixes []string  `yaml:"excludePrefixes"`
	Verify          []string  `yaml:"verify"`
	Steps           []StepDTO `yaml:"steps"`
}

// StepDTO holds exactly one action plus an optional mountpoint override.
type StepDTO struct {
	Mkdir      string      `yaml:"mkdir"`
	Touch      string      `yaml:"touch"`
	Install    *InstallDTO `yaml:"install"`
	Symlink    *SymlinkDTO `yaml:"symlink"`
	Write      *WriteDTO   `yaml:"write"`
	Copy       *CopyDTO    `yaml:"copy"`
	Archive    *ArchiveDTO `yaml:"archive"`
	Mountpoint string      `yaml:"mountpoint"`
}

// InstallDTO installs Source at Path. Source defaults to Path.
type InstallDTO struct {
	Path   string `yaml:"path"`
	Source string `yaml:"source"`
}

// SymlinkDTO writes a link at Path pointing to Target.
type SymlinkDTO struct {
	Path   string `yaml:"path"`
	Target string `yaml:"target"`
}

// WriteDTO writes Contents at Path.
type WriteDTO struct {
	Path     string `yaml:"path"`
	Contents string `yaml:"contents"`
}

// CopyDTO copies a host path or glob.
type CopyDTO struct {
	Path    string   `yaml:"path"`
	Exclude []string `yaml:"exclude"`
}

// ArchiveDTO pins a remote archive.
type ArchiveDTO struct {
	URL         string   `yaml:"url"`
	Checksum    string   `yaml:"checksum"`
	StripPrefix string   `yaml:"stripPrefix"`
	Exclude     []string `yaml:"exclude"`
}
