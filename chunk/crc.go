package chunk

import (
	"hash/crc32"
)

// table is the 256-entry lookup table for the reflected polynomial
// 0xEDB88320. crc32.IEEE is the same polynomial PNG uses.
var table = crc32.MakeTable(crc32.IEEE)

// Checksum returns the CRC-32 of length bytes of b, starting at start.
//
// The range must lie within b. The running value starts at 0xFFFFFFFF and
// the result is complemented, as required for chunk checksums.
func Checksum(b []byte, start, length int) uint32 {
	return crc32.Checksum(b[start:start+length], table)
}

// CRC returns the checksum that a chunk of type t carrying payload stores
// after its payload.
func CRC(t Type, payload []byte) uint32 {
	crc := crc32.Update(0, table, []byte(t))
	return crc32.Update(crc, table, payload)
}
