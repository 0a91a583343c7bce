package chunk

import (
	"io"
)

const maxPayload = 1<<31 - 1

func check(t Type, payload []byte) error {
	if err := t.Valid(); err != nil {
		return err
	}
	if len(payload) > maxPayload {
		return &SizeError{Type: t, Size: len(payload)}
	}
	return nil
}

// Make returns a self-contained chunk of type t: the payload length, the
// type, the payload and the CRC over type and payload. The result is always
// len(payload)+12 bytes long.
func Make(t Type, payload []byte) ([]byte, error) {
	if err := check(t, payload); err != nil {
		return nil, err
	}
	n := len(payload)
	b := make([]byte, n+overhead)
	PutUint32(b[0:4], uint32(n))
	copy(b[4:8], t)
	copy(b[8:8+n], payload)
	PutUint32(b[8+n:], Checksum(b, 4, 4+n))
	return b, nil
}

// WriteTo encodes a chunk of type t to the io.Writer without building it in
// memory first.
func WriteTo(w io.Writer, t Type, payload []byte) (int64, error) {
	if err := check(t, payload); err != nil {
		return 0, err
	}
	header := [headerLen]byte{}
	footer := [4]byte{}
	PutUint32(header[0:4], uint32(len(payload)))
	copy(header[4:8], t)
	PutUint32(footer[:], CRC(t, payload))

	hl, err := w.Write(header[:])
	if err != nil {
		return int64(hl), err
	}
	bl, err := w.Write(payload)
	if err != nil {
		return int64(hl + bl), err
	}
	fl, err := w.Write(footer[:])
	return int64(hl + bl + fl), err
}

// Writer writes a signature and a sequence of chunks to an io.Writer.
//
// The first error stops all further writes and is reported by Err, so a
// caller can emit a whole stream and check once at the end.
type Writer struct {
	w   io.Writer
	n   int64
	err error
}

// NewWriter returns a Writer that writes to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// WriteSignature writes the 8-byte PNG signature.
func (cw *Writer) WriteSignature() {
	cw.WriteRaw([]byte(Signature))
}

// WriteChunk writes one chunk of type t.
func (cw *Writer) WriteChunk(t Type, payload []byte) {
	if cw.err != nil {
		return
	}
	n, err := WriteTo(cw.w, t, payload)
	cw.n += n
	cw.err = err
}

// WriteRaw writes already-encoded chunk bytes verbatim.
func (cw *Writer) WriteRaw(b []byte) {
	if cw.err != nil || len(b) == 0 {
		return
	}
	n, err := cw.w.Write(b)
	cw.n += int64(n)
	cw.err = err
}

// N returns the number of bytes written so far.
func (cw *Writer) N() int64 {
	return cw.n
}

// Err returns the first error encountered while writing.
func (cw *Writer) Err() error {
	return cw.err
}
