package chunk

import (
	"fmt"
)

// TruncatedError is returned when a chunk's header or declared payload
// extends past the end of the buffer.
type TruncatedError struct {
	Offset int // Start of the chunk's length field.
	Need   int // Bytes the chunk requires from Offset.
	Have   int // Bytes available from Offset.
}

func (e *TruncatedError) Error() string {
	return fmt.Sprintf("chunk: truncated chunk at offset %d: need %d bytes, have %d", e.Offset, e.Need, e.Have)
}

// ChecksumError is returned by Verify when the stored CRC does not match the
// chunk's type and payload.
type ChecksumError struct {
	Type   Type
	Offset int
	Got    uint32 // Stored in the chunk.
	Want   uint32 // Computed over type and payload.
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("chunk: bad %s checksum at offset %d: got %08x, want %08x", e.Type, e.Offset, e.Got, e.Want)
}

// TypeError is returned when writing a chunk with a malformed type.
type TypeError struct {
	Type Type
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("chunk: invalid chunk type %q; want 4 printable ASCII characters", string(e.Type))
}

// SizeError is returned when a payload does not fit the 31-bit length field.
type SizeError struct {
	Type Type
	Size int
}

func (e *SizeError) Error() string {
	return fmt.Sprintf("chunk: %s payload too large: %d bytes", e.Type, e.Size)
}
