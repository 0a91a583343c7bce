package chunk

import (
	"encoding/binary"
)

// IntToBytes encodes v into n big-endian bytes, most significant byte first.
//
// n is between 1 and 4. Bits of v that do not fit into n bytes are dropped.
func IntToBytes(v uint32, n int) []byte {
	b := make([]byte, n)
	for i := n - 1; i >= 0; i-- {
		b[i] = byte(v)
		v >>= 8
	}
	return b
}

// BytesToInt decodes n big-endian bytes of b starting at off as an unsigned
// integer. It is the inverse of IntToBytes.
func BytesToInt(b []byte, off, n int) uint32 {
	var v uint32
	for _, c := range b[off : off+n] {
		v = v<<8 | uint32(c)
	}
	return v
}

// Uint32 reads a big-endian uint32 from the start of b.
func Uint32(b []byte) uint32 {
	return binary.BigEndian.Uint32(b)
}

// Uint16 reads a big-endian uint16 from the start of b.
func Uint16(b []byte) uint16 {
	return binary.BigEndian.Uint16(b)
}

// PutUint32 writes v to the start of b, big-endian.
func PutUint32(b []byte, v uint32) {
	binary.BigEndian.PutUint32(b, v)
}

// PutUint16 writes v to the start of b, big-endian.
func PutUint16(b []byte, v uint16) {
	binary.BigEndian.PutUint16(b, v)
}
