// Package status defines the error kinds the domain services surface.
// Transport layers are expected to map these onto their own response codes;
// nothing in here knows about HTTP.
package status

import "errors"

var (
	// ErrNotFound means a referenced entity is absent.
	ErrNotFound = errors.New("not found")
	// ErrInvalidOperation means the operation is structurally impossible,
	// like following yourself.
	ErrInvalidOperation = errors.New("invalid operation")
	// ErrPermissionDenied means acting on a resource owned by someone else.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrUnsupportedMediaType means the file extension is outside the
	// accepted image and video formats.
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	// ErrConflict means a uniqueness constraint was violated and the
	// operation could not absorb it as a no-op.
	ErrConflict = errors.New("conflict")
)
