package img2paint

import "errors"

var (
	// ErrInvalidGeometry is returned when an image, texture or canvas is
	// empty or when two buffers that must match in size do not.
	ErrInvalidGeometry = errors.New("invalid geometry")

	// ErrInvalidParameter is returned for out of range numeric options such
	// as a negative stroke count or a non-positive brush size.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrBucketRange is returned when an orientation bucket falls outside
	// the brush atlas.
	ErrBucketRange = errors.New("orientation bucket out of range")
)
