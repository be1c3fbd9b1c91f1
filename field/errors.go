package field

import "errors"

var (
	// ErrNoSurface is returned by Mount when no drawing surface is available.
	ErrNoSurface = errors.New("field: no drawing surface")
	// ErrSurfaceLost means the surface stopped accepting frames. The field
	// stops its frame loop and may be remounted.
	ErrSurfaceLost = errors.New("field: drawing surface lost")
	// ErrNotMounted is returned by operations that need a mounted field.
	ErrNotMounted = errors.New("field: not mounted")
	// ErrAlreadyMounted is returned by Mount on a mounted field.
	ErrAlreadyMounted = errors.New("field: already mounted")
	// ErrInvalidViewport is returned for non-positive viewport sizes.
	ErrInvalidViewport = errors.New("field: invalid viewport size")
)
