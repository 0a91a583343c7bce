package chunk

import (
	"bytes"

	"github.com/golang/glog"
)

// Signature is the 8-byte sequence every PNG stream starts with.
const Signature = "\x89PNG\r\n\x1a\n"

const (
	headerLen = 8  // Length and type fields.
	overhead  = 12 // Length, type and CRC fields.
)

// HasSignature reports whether b starts with the PNG signature.
func HasSignature(b []byte) bool {
	return bytes.HasPrefix(b, []byte(Signature))
}

// Chunk describes one chunk found by a Walker.
//
// It does not hold any bytes. The accessors slice the buffer that was
// walked, so the descriptor can be used to compute any absolute sub-range
// of the chunk.
type Chunk struct {
	Type   Type
	Offset int    // Offset of the length field in the walked buffer.
	Length uint32 // Declared payload length.
}

// End returns the offset just past the chunk's CRC.
func (c Chunk) End() int {
	return c.Offset + overhead + int(c.Length)
}

// Payload returns the chunk's payload within b. The result aliases b; its
// capacity is clipped so appending to it never overwrites the CRC.
func (c Chunk) Payload(b []byte) []byte {
	start := c.Offset + headerLen
	end := start + int(c.Length)
	return b[start:end:end]
}

// Bytes returns the whole chunk within b, from length field to CRC.
func (c Chunk) Bytes(b []byte) []byte {
	return b[c.Offset:c.End():c.End()]
}

// StoredCRC returns the checksum recorded after the payload.
func (c Chunk) StoredCRC(b []byte) uint32 {
	return Uint32(b[c.End()-4:])
}

// Walker scans the chunks of a buffer that starts with a PNG signature.
//
// Use Next to advance, then Chunk to inspect the current chunk:
//
//	w := chunk.NewWalker(b)
//	for w.Next() {
//		c := w.Chunk()
//		...
//	}
//	if err := w.Err(); err != nil {
//		...
//	}
//
// Stopping early is done by not calling Next again. The walk also ends
// after an IEND chunk has been returned, or at the end of the buffer. The
// walker does not verify checksums; see Verify.
type Walker struct {
	b    []byte
	off  int
	cur  Chunk
	done bool
	err  error
}

// NewWalker returns a walker positioned at the first chunk after the
// signature. The signature itself is not checked; see HasSignature.
func NewWalker(b []byte) *Walker {
	return &Walker{b: b, off: len(Signature)}
}

// Next advances to the next chunk. It returns false when the walk is over
// or a chunk runs past the end of the buffer, in which case Err is set.
func (w *Walker) Next() bool {
	if w.done || w.err != nil {
		return false
	}
	if w.off >= len(w.b) {
		w.done = true
		return false
	}

	have := len(w.b) - w.off
	if have < headerLen {
		w.err = &TruncatedError{Offset: w.off, Need: overhead, Have: have}
		return false
	}
	length := Uint32(w.b[w.off:])
	if uint64(length)+overhead > uint64(have) {
		w.err = &TruncatedError{Offset: w.off, Need: int(uint64(length) + overhead), Have: have}
		return false
	}

	w.cur = Chunk{
		Type:   BytesToTag(w.b, w.off+4, 4),
		Offset: w.off,
		Length: length,
	}
	glog.V(3).Infof("chunk: %s at %d, %d bytes", w.cur.Type, w.cur.Offset, w.cur.Length)

	w.off = w.cur.End()
	if w.cur.Type == IEND {
		w.done = true
		if w.off < len(w.b) {
			glog.V(2).Infof("chunk: ignoring %d bytes after IEND", len(w.b)-w.off)
		}
	}
	return true
}

// Chunk returns the chunk found by the latest call to Next.
func (w *Walker) Chunk() Chunk {
	return w.cur
}

// Err returns the error that ended the walk, if any.
func (w *Walker) Err() error {
	return w.err
}

// Walk calls visit for each chunk of b until visit returns false or the walk
// ends. It returns the walker's error.
func Walk(b []byte, visit func(Chunk) bool) error {
	w := NewWalker(b)
	for w.Next() {
		if !visit(w.Chunk()) {
			return nil
		}
	}
	return w.Err()
}

// Verify checks the CRC stored in chunk c of b.
func Verify(b []byte, c Chunk) error {
	want := Checksum(b, c.Offset+4, 4+int(c.Length))
	if got := c.StoredCRC(b); got != want {
		return &ChecksumError{Type: c.Type, Offset: c.Offset, Got: got, Want: want}
	}
	return nil
}
