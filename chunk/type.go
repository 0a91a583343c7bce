package chunk

// Type is the 4-character ASCII tag identifying a chunk.
//
// The case of each letter encodes chunk properties in PNG; Critical and
// Public report two of them, but routing is always done on the full tag.
type Type string

// Chunk types known to this module.
const (
	IHDR Type = "IHDR" // Image header; first chunk of a stream.
	PLTE Type = "PLTE" // Palette.
	IDAT Type = "IDAT" // Image data.
	IEND Type = "IEND" // Terminal chunk.
	TRNS Type = "tRNS" // Transparency.
	ACTL Type = "acTL" // APNG animation control.
	FCTL Type = "fcTL" // APNG frame control.
	FDAT Type = "fdAT" // APNG frame data.
)

// BytesToTag returns the n bytes of b starting at off as a chunk type.
func BytesToTag(b []byte, off, n int) Type {
	return Type(b[off : off+n])
}

// Bytes returns the tag as a byte sequence, one byte per character.
func (t Type) Bytes() []byte {
	return []byte(t)
}

// Valid returns a *TypeError unless t is exactly 4 printable ASCII
// characters.
func (t Type) Valid() error {
	if len(t) != 4 {
		return &TypeError{Type: t}
	}
	for i := 0; i < len(t); i++ {
		if t[i] <= ' ' || t[i] > '~' {
			return &TypeError{Type: t}
		}
	}
	return nil
}

// Critical reports whether the ancillary bit (bit 5 of the first byte) is
// clear, i.e. whether a decoder must understand the chunk.
func (t Type) Critical() bool {
	return len(t) > 0 && t[0]&0x20 == 0
}

// Public reports whether the private bit (bit 5 of the second byte) is
// clear.
func (t Type) Public() bool {
	return len(t) > 1 && t[1]&0x20 == 0
}

func (t Type) String() string {
	return string(t)
}
