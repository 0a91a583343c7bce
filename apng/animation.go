package apng

import (
	"bytes"
	"time"

	"github.com/pkg/errors"

	"badc0de.net/pkg/go-apng/chunk"
)

// Frame is one frame of a decoded animation.
type Frame struct {
	FrameControl

	// Delay is FrameControl.Delay, computed once at decode time.
	Delay time.Duration

	// Data holds the frame's compressed image data fragments, in stream
	// order, without fdAT sequence numbers. Each fragment is a copy.
	Data [][]byte
}

// Size returns the total length of the frame's image data.
func (f *Frame) Size() int {
	n := 0
	for _, d := range f.Data {
		n += len(d)
	}
	return n
}

// Animation is the result of partitioning an APNG stream.
type Animation struct {
	Width, Height uint32 // From IHDR.
	NumFrames     uint32 // As declared by acTL.
	NumPlays      uint32 // As declared by acTL; 0 loops forever.

	// PlayTime is the sum of the normalized frame delays.
	PlayTime time.Duration

	Frames []*Frame

	header []byte // IHDR payload; template, never mutated.
	pre    []byte // Whole chunks replayed before image data.
	post   []byte // Whole chunks replayed after image data (IEND).
}

// SequenceNumbers returns the fcTL sequence number of each frame.
func (a *Animation) SequenceNumbers() []uint32 {
	seqs := make([]uint32, len(a.Frames))
	for i, f := range a.Frames {
		seqs[i] = f.SequenceNumber
	}
	return seqs
}

// Image returns frame i as a standalone PNG stream: the IHDR chunk with the
// frame's own width and height, the auxiliary chunks found in the
// animation, the frame's data as IDAT chunks, and the trailing chunks.
//
// Each call builds its own header, so Image may be called concurrently.
func (a *Animation) Image(i int) ([]byte, error) {
	if i < 0 || i >= len(a.Frames) {
		return nil, errors.Errorf("apng: frame %d out of range [0, %d)", i, len(a.Frames))
	}
	f := a.Frames[i]

	header := make([]byte, len(a.header))
	copy(header, a.header)
	chunk.PutUint32(header[0:4], f.Width)
	chunk.PutUint32(header[4:8], f.Height)

	buf := &bytes.Buffer{}
	buf.Grow(len(chunk.Signature) + len(header) + len(a.pre) + f.Size() + 12*(len(f.Data)+1) + len(a.post))
	cw := chunk.NewWriter(buf)
	cw.WriteSignature()
	cw.WriteChunk(chunk.IHDR, header)
	cw.WriteRaw(a.pre)
	for _, d := range f.Data {
		cw.WriteChunk(chunk.IDAT, d)
	}
	cw.WriteRaw(a.post)
	if err := cw.Err(); err != nil {
		return nil, errors.Wrapf(err, "apng: building frame %d", i)
	}
	return buf.Bytes(), nil
}

// Images returns every frame as a standalone PNG stream, in stream order.
func (a *Animation) Images() ([][]byte, error) {
	images := make([][]byte, len(a.Frames))
	for i := range a.Frames {
		img, err := a.Image(i)
		if err != nil {
			return nil, err
		}
		images[i] = img
	}
	return images, nil
}
