package apng

import (
	"fmt"

	"github.com/pkg/errors"

	"badc0de.net/pkg/go-apng/chunk"
)

// FormatError reports input that is not a well-formed (A)PNG stream.
type FormatError string

func (e FormatError) Error() string { return "apng: invalid format: " + string(e) }

var (
	// ErrNotAnimated is returned when decoding a buffer without a PNG
	// signature, without an acTL chunk, or without any frames.
	ErrNotAnimated = FormatError("not an animated image")

	// ErrNoFrames is returned by Assemble when no images are passed.
	ErrNoFrames = errors.New("apng: no frames to assemble")
)

// DimensionError is returned by Assemble when an image's header does not
// match the size of the first image.
type DimensionError struct {
	Index                 int
	Width, Height         uint32
	WantWidth, WantHeight uint32
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("apng: image %d is %dx%d; want %dx%d", e.Index, e.Width, e.Height, e.WantWidth, e.WantHeight)
}

// IsFormatError reports whether err, or any error it wraps, is caused by
// malformed input rather than by the caller or by I/O.
func IsFormatError(err error) bool {
	var fe FormatError
	var te *chunk.TruncatedError
	var ce *chunk.ChecksumError
	return errors.As(err, &fe) || errors.As(err, &te) || errors.As(err, &ce)
}
