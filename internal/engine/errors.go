package engine

import (
	"errors"

	"github.com/jakoblorz/vscpp/internal/manifest"
)

// Sentinel errors for the engine package. They describe problems with the
// request; any other error returned by the engine is a filesystem failure.
var (
	// ErrMissingName indicates an operation was called without a unit name.
	ErrMissingName = errors.New("a unit name is required")

	// ErrInvalidName indicates a unit name that cannot be used as a file name.
	ErrInvalidName = errors.New("invalid unit name")

	// ErrUnitNotFound indicates the unit has no source artifact.
	ErrUnitNotFound = errors.New("unit not found")

	// ErrUnitExists indicates a rename would overwrite another unit's files.
	ErrUnitExists = errors.New("unit already exists")

	// ErrInvalidProfile indicates an unknown build profile.
	ErrInvalidProfile = errors.New("invalid build profile")

	// ErrNoManifest indicates the project has no makefile.
	ErrNoManifest = manifest.ErrNoManifest
)

// IsUserError reports whether err describes a bad request rather than a
// filesystem failure. Callers report user errors and carry on.
func IsUserError(err error) bool {
	for _, target := range []error{
		ErrMissingName,
		ErrInvalidName,
		ErrUnitNotFound,
		ErrUnitExists,
		ErrInvalidProfile,
		ErrNoManifest,
		manifest.ErrNoUnitList,
		manifest.ErrNoFlagsLine,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
