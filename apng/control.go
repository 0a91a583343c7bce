package apng

import (
	"fmt"
	"io"
	"time"

	"badc0de.net/pkg/go-apng/chunk"
)

// DisposeOp says how the frame's region of the output buffer is treated
// before the next frame is rendered.
type DisposeOp uint8

const (
	DisposeOpNone       DisposeOp = 0 // Leave the output buffer as is.
	DisposeOpBackground DisposeOp = 1 // Clear the region to fully transparent black.
	DisposeOpPrevious   DisposeOp = 2 // Restore the region to its previous contents.
)

func (d DisposeOp) String() string {
	switch d {
	case DisposeOpNone:
		return "none"
	case DisposeOpBackground:
		return "background"
	case DisposeOpPrevious:
		return "previous"
	}
	return fmt.Sprintf("DisposeOp(%d)", uint8(d))
}

// BlendOp says how the frame's pixels are combined with the output buffer.
type BlendOp uint8

const (
	BlendOpSource BlendOp = 0 // Overwrite the region, alpha included.
	BlendOpOver   BlendOp = 1 // Alpha-composite over the region.
)

func (b BlendOp) String() string {
	switch b {
	case BlendOpSource:
		return "source"
	case BlendOpOver:
		return "over"
	}
	return fmt.Sprintf("BlendOp(%d)", uint8(b))
}

// ParseDisposeOp returns the DisposeOp whose String is s.
func ParseDisposeOp(s string) (DisposeOp, error) {
	for d := DisposeOpNone; d <= DisposeOpPrevious; d++ {
		if d.String() == s {
			return d, nil
		}
	}
	return 0, fmt.Errorf("apng: unknown dispose op %q", s)
}

// ParseBlendOp returns the BlendOp whose String is s.
func ParseBlendOp(s string) (BlendOp, error) {
	for b := BlendOpSource; b <= BlendOpOver; b++ {
		if b.String() == s {
			return b, nil
		}
	}
	return 0, fmt.Errorf("apng: unknown blend op %q", s)
}

const (
	actlLen = 8
	fctlLen = 26
	seqLen  = 4
)

// AnimationControl is the acTL chunk.
type AnimationControl struct {
	NumFrames uint32 // Number of frames; not the number of sequence numbers.
	NumPlays  uint32 // Times to loop the animation. 0 loops forever.
}

func (c *AnimationControl) payload() []byte {
	buf := make([]byte, actlLen)
	chunk.PutUint32(buf[0:4], c.NumFrames)
	chunk.PutUint32(buf[4:8], c.NumPlays)
	return buf
}

// WriteTo encodes the acTL chunk to the io.Writer. This supports the
// io.WriterTo interface.
func (c *AnimationControl) WriteTo(w io.Writer) (int64, error) {
	return chunk.WriteTo(w, chunk.ACTL, c.payload())
}

func parseAnimationControl(p []byte) (AnimationControl, error) {
	if len(p) < actlLen {
		return AnimationControl{}, FormatError(fmt.Sprintf("acTL too short: got %d bytes, want %d", len(p), actlLen))
	}
	return AnimationControl{
		NumFrames: chunk.Uint32(p[0:4]),
		NumPlays:  chunk.Uint32(p[4:8]),
	}, nil
}

// FrameControl is the fcTL chunk.
type FrameControl struct {
	SequenceNumber uint32    // Shared by fcTL and fdAT chunks, starting from 0.
	Width          uint32    // Width of the following frame.
	Height         uint32    // Height of the following frame.
	XOffset        uint32    // X position at which to render the following frame.
	YOffset        uint32    // Y position at which to render the following frame.
	DelayNum       uint16    // Frame delay fraction numerator.
	DelayDen       uint16    // Frame delay fraction denominator; 0 means 100.
	DisposeOp      DisposeOp // Disposal done after rendering this frame.
	BlendOp        BlendOp   // How this frame is rendered.
}

func (c *FrameControl) payload() []byte {
	buf := make([]byte, fctlLen)
	chunk.PutUint32(buf[0:4], c.SequenceNumber)
	chunk.PutUint32(buf[4:8], c.Width)
	chunk.PutUint32(buf[8:12], c.Height)
	chunk.PutUint32(buf[12:16], c.XOffset)
	chunk.PutUint32(buf[16:20], c.YOffset)
	chunk.PutUint16(buf[20:22], c.DelayNum)
	chunk.PutUint16(buf[22:24], c.DelayDen)
	buf[24] = byte(c.DisposeOp)
	buf[25] = byte(c.BlendOp)
	return buf
}

// WriteTo encodes the fcTL chunk to the io.Writer. This supports the
// io.WriterTo interface.
func (c *FrameControl) WriteTo(w io.Writer) (int64, error) {
	return chunk.WriteTo(w, chunk.FCTL, c.payload())
}

func parseFrameControl(p []byte) (FrameControl, error) {
	if len(p) < fctlLen {
		return FrameControl{}, FormatError(fmt.Sprintf("fcTL too short: got %d bytes, want %d", len(p), fctlLen))
	}
	return FrameControl{
		SequenceNumber: chunk.Uint32(p[0:4]),
		Width:          chunk.Uint32(p[4:8]),
		Height:         chunk.Uint32(p[8:12]),
		XOffset:        chunk.Uint32(p[12:16]),
		YOffset:        chunk.Uint32(p[16:20]),
		DelayNum:       chunk.Uint16(p[20:22]),
		DelayDen:       chunk.Uint16(p[22:24]),
		DisposeOp:      DisposeOp(p[24]),
		BlendOp:        BlendOp(p[25]),
	}, nil
}

const (
	// minDelay is the longest delay still treated as "as fast as possible",
	// which readers commonly replace with defaultDelay.
	minDelay     = 10 * time.Millisecond
	defaultDelay = 100 * time.Millisecond
)

// Delay returns how long the frame is shown, normalized the way common
// readers do it: a zero denominator means hundredths of a second, and any
// delay of 10ms or less is shown for 100ms. So 5/0 is 50ms, and 1/0 is
// 100ms.
func (c *FrameControl) Delay() time.Duration {
	den := c.DelayDen
	if den == 0 {
		den = 100
	}
	d := time.Duration(c.DelayNum) * time.Second / time.Duration(den)
	if d <= minDelay {
		return defaultDelay
	}
	return d
}

// frameDataPayload prefixes data with the fdAT sequence number.
func frameDataPayload(seq uint32, data []byte) []byte {
	buf := make([]byte, seqLen+len(data))
	chunk.PutUint32(buf[0:seqLen], seq)
	copy(buf[seqLen:], data)
	return buf
}

// sequence hands out sequence numbers for fcTL and fdAT chunks.
type sequence uint32

func (s *sequence) next() uint32 {
	n := uint32(*s)
	*s++
	return n
}
