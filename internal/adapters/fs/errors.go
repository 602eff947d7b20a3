package fs

import (
	"errors"

	"go.trai.ch/mkroot/internal/core/domain"
	"go.trai.ch/zerr"
)

// fsError wraps a host filesystem failure so that it matches
// domain.ErrFilesystem and carries the tree path.
func fsError(err error, msg, path string) error {
	return zerr.With(zerr.Wrap(errors.Join(domain.ErrFilesystem, err), msg), "path", path)
}

// installError is fsError for operations reading from a host source.
func installError(err error, msg, path, source string) error {
	return zerr.With(fsError(err, msg, path), "source", source)
}
