package zipsearch

import "errors"

// Load errors. Any of these during construction aborts initialization and
// leaves the engine unusable.
var (
	ErrDuplicateZipcode  = errors.New("zipsearch: duplicate zipcode in catalog")
	ErrInvalidRecord     = errors.New("zipsearch: structurally invalid record")
	ErrInvalidMagic      = errors.New("zipsearch: invalid snapshot magic number")
	ErrInvalidVersion    = errors.New("zipsearch: unsupported snapshot version")
	ErrChecksumFailed    = errors.New("zipsearch: snapshot checksum verification failed")
	ErrTruncatedSnapshot = errors.New("zipsearch: snapshot file is truncated")
	ErrCorruptSnapshot   = errors.New("zipsearch: snapshot payload is corrupted")
)

// Validation errors. The caller supplied an invalid or insufficient request
// and may retry with corrected input.
var (
	ErrInvalidQuery       = errors.New("zipsearch: query has no identifying field")
	ErrNegativeRadius     = errors.New("zipsearch: radius must not be negative")
	ErrRadiusWithoutPoint = errors.New("zipsearch: radius requires both lat and lng")
	ErrInvalidCoordinates = errors.New("zipsearch: coordinates out of range")
)

// State errors.
var (
	ErrEngineClosed   = errors.New("zipsearch: engine is closed")
	ErrEngineNotReady = errors.New("zipsearch: engine is not ready")
)
