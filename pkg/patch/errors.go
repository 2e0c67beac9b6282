package patch

import "errors"

var (
	// ErrUnsupportedDirection is returned when a migration is requested
	// from a newer version to an older one. Downgrades are not supported.
	ErrUnsupportedDirection = errors.New("unsupported migration direction")
	// ErrMissingStep is returned when no candidate migrates forward from
	// some intermediate version.
	ErrMissingStep = errors.New("missing migration step")
	// ErrDuplicateStep is returned by ValidateCatalog when two migrations
	// start from the same version.
	ErrDuplicateStep = errors.New("duplicate migration step")
	// ErrMalformedMigration is returned by ValidateCatalog when a
	// migration does not advance its version.
	ErrMalformedMigration = errors.New("malformed migration")
	// ErrNotImplemented marks patch logic that exists only as a stub.
	ErrNotImplemented = errors.New("not implemented")
)
