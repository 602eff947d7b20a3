package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// LinkMode selects how regular files are installed into a tree.
type LinkMode int

const (
	// LinkModeHardlink adds a second directory entry for the host file.
	LinkModeHardlink LinkMode = iota
	// LinkModeCopy duplicates the file content. Needed across filesystem
	// boundaries or when the tree must be mutated independently of the host.
	LinkModeCopy
)

// String returns the configuration spelling of the mode.
func (m LinkMode) String() string {
	switch m {
	case LinkModeCopy:
		return "copy"
	default:
		return "hardlink"
	}
}

// ParseLinkMode parses "hardlink" (or "link") and "copy".
func ParseLinkMode(s string) (LinkMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "hardlink", "link", "":
		return LinkModeHardlink, nil
	case "copy":
		return LinkModeCopy, nil
	default:
		return LinkModeHardlink, zerr.With(ErrInvalidLinkMode, "link_mode", s)
	}
}
