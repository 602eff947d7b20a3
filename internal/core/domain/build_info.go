package domain

import "time"

// ManifestFilename is the build manifest written into every build target.
const ManifestFilename = ".mkroot-state.json"

// BuildInfo records the outcome of building one profile.
type BuildInfo struct {
	Profile   string    `json:"profile,omitzero"`
	TreeHash  string    `json:"tree_hash,omitzero"`
	FileCount int       `json:"file_count,omitzero"`
	Timestamp time.Time `json:"timestamp,omitzero"`
}
