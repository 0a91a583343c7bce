package apng

import (
	"fmt"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"badc0de.net/pkg/go-apng/chunk"
)

// DecodeOptions configure DecodeAnimationWithOptions.
type DecodeOptions struct {
	// VerifyCRC rejects chunks whose stored checksum is wrong.
	VerifyCRC bool
}

// Validate returns ErrNotAnimated unless b starts with the PNG signature
// and contains an acTL chunk.
func Validate(b []byte) error {
	if !chunk.HasSignature(b) {
		return ErrNotAnimated
	}
	found := false
	err := chunk.Walk(b, func(c chunk.Chunk) bool {
		found = c.Type == chunk.ACTL
		return !found
	})
	if !found {
		if err != nil {
			glog.V(1).Infof("apng: no acTL before %v", err)
		}
		return ErrNotAnimated
	}
	return nil
}

// Decode splits an APNG stream into one standalone PNG stream per frame.
func Decode(b []byte) ([][]byte, error) {
	a, err := DecodeAnimation(b)
	if err != nil {
		return nil, err
	}
	return a.Images()
}

// DecodeAnimation partitions an APNG stream into its frames and the chunks
// needed to rebuild each frame as a still image.
func DecodeAnimation(b []byte) (*Animation, error) {
	return DecodeAnimationWithOptions(b, nil)
}

// DecodeAnimationWithOptions is DecodeAnimation with options; nil opts is
// the same as DecodeAnimation.
//
// Chunks are taken in stream order: an fcTL chunk opens a new frame, and
// the IDAT and fdAT chunks that follow it until the next fcTL belong to
// that frame. IDAT chunks before the first fcTL form a default image that
// is not part of the animation and are not returned.
func DecodeAnimationWithOptions(b []byte, opts *DecodeOptions) (*Animation, error) {
	if opts == nil {
		opts = &DecodeOptions{}
	}
	if err := Validate(b); err != nil {
		return nil, err
	}

	a := &Animation{}
	var open *Frame // Frame collecting data chunks; nil before the first fcTL.
	w := chunk.NewWalker(b)
	for w.Next() {
		c := w.Chunk()
		if opts.VerifyCRC {
			if err := chunk.Verify(b, c); err != nil {
				return nil, errors.Wrap(err, "apng: decoding")
			}
		}
		p := c.Payload(b)

		switch c.Type {
		case chunk.IHDR:
			if len(p) < 8 {
				return nil, FormatError(fmt.Sprintf("IHDR too short: got %d bytes", len(p)))
			}
			a.header = clone(p)
			a.Width = chunk.Uint32(p[0:4])
			a.Height = chunk.Uint32(p[4:8])
		case chunk.ACTL:
			actl, err := parseAnimationControl(p)
			if err != nil {
				return nil, err
			}
			a.NumFrames = actl.NumFrames
			a.NumPlays = actl.NumPlays
		case chunk.FCTL:
			fctl, err := parseFrameControl(p)
			if err != nil {
				return nil, err
			}
			if open != nil {
				a.Frames = append(a.Frames, open)
			}
			open = &Frame{FrameControl: fctl, Delay: fctl.Delay()}
			a.PlayTime += open.Delay
			glog.V(2).Infof("apng: frame seq %d, %dx%d+%d+%d, delay %v", fctl.SequenceNumber, fctl.Width, fctl.Height, fctl.XOffset, fctl.YOffset, open.Delay)
		case chunk.FDAT:
			if len(p) < seqLen {
				return nil, FormatError(fmt.Sprintf("fdAT too short: got %d bytes", len(p)))
			}
			if open != nil {
				open.Data = append(open.Data, clone(p[seqLen:]))
			}
		case chunk.IDAT:
			if open != nil {
				open.Data = append(open.Data, clone(p))
			}
		case chunk.IEND:
			a.post = append(a.post, c.Bytes(b)...)
		default:
			a.pre = append(a.pre, c.Bytes(b)...)
		}
	}
	if err := w.Err(); err != nil {
		return nil, errors.Wrap(err, "apng: decoding")
	}
	if open != nil {
		a.Frames = append(a.Frames, open)
	}

	if len(a.Frames) == 0 {
		return nil, ErrNotAnimated
	}
	if a.header == nil {
		return nil, FormatError("missing IHDR chunk")
	}
	if int64(a.NumFrames) != int64(len(a.Frames)) {
		glog.Warningf("apng: acTL declares %d frames, found %d", a.NumFrames, len(a.Frames))
	}
	return a, nil
}

func clone(b []byte) []byte {
	c := make([]byte, len(b))
	copy(c, b)
	return c
}
