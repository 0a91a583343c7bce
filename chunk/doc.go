// Package chunk reads and writes the chunk stream of PNG-style containers.
//
// A chunk is a 4-byte big-endian payload length, a 4-byte ASCII type, the
// payload itself, and a CRC-32 computed over the type and the payload. The
// stream follows an 8-byte signature and is terminated by an IEND chunk.
//
// No meaning is assigned to chunks beyond framing; this is the task of
// readers for an individual format, such as package apng.
//
// For format details, see:
//
// https://www.w3.org/TR/PNG/#5DataRep
package chunk
