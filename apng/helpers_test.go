package apng

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"badc0de.net/pkg/go-apng/chunk"
)

type testChunk struct {
	typ     chunk.Type
	payload []byte
}

// build returns a PNG stream made of the passed chunks.
func build(t *testing.T, chunks ...testChunk) []byte {
	t.Helper()
	buf := &bytes.Buffer{}
	cw := chunk.NewWriter(buf)
	cw.WriteSignature()
	for _, c := range chunks {
		cw.WriteChunk(c.typ, c.payload)
	}
	if err := cw.Err(); err != nil {
		t.Fatalf("building stream: %v", err)
	}
	return buf.Bytes()
}

// ihdr returns an IHDR payload for an 8-bit RGBA image.
func ihdr(width, height uint32) []byte {
	p := make([]byte, 13)
	chunk.PutUint32(p[0:4], width)
	chunk.PutUint32(p[4:8], height)
	p[8] = 8 // bit depth
	p[9] = 6 // truecolor with alpha
	return p
}

// simpleStill returns a stream with one IHDR, one IDAT per data fragment
// and an IEND chunk.
func simpleStill(t *testing.T, width, height uint32, data ...[]byte) []byte {
	t.Helper()
	chunks := []testChunk{{chunk.IHDR, ihdr(width, height)}}
	for _, d := range data {
		chunks = append(chunks, testChunk{chunk.IDAT, d})
	}
	chunks = append(chunks, testChunk{chunk.IEND, nil})
	return build(t, chunks...)
}

type walked struct {
	typ     chunk.Type
	payload []byte
}

func walkAll(t *testing.T, b []byte) []walked {
	t.Helper()
	var out []walked
	if err := chunk.Walk(b, func(c chunk.Chunk) bool {
		out = append(out, walked{c.Type, c.Payload(b)})
		return true
	}); err != nil {
		t.Fatalf("walking: %v", err)
	}
	return out
}

// encodePNG encodes a solid-colored RGBA image with image/png.
func encodePNG(t *testing.T, w, h int, c color.NRGBA) []byte {
	t.Helper()
	m := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			m.SetNRGBA(x, y, c)
		}
	}
	m.SetNRGBA(0, 0, color.NRGBA{A: 0xFF})
	buf := &bytes.Buffer{}
	if err := png.Encode(buf, m); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

// splitIDAT rewrites every IDAT chunk of b as two IDAT chunks. The zlib
// stream spans IDAT chunks, so the image stays decodable.
func splitIDAT(t *testing.T, b []byte) []byte {
	t.Helper()
	var chunks []testChunk
	for _, c := range walkAll(t, b) {
		if c.typ == chunk.IDAT && len(c.payload) > 1 {
			half := len(c.payload) / 2
			chunks = append(chunks, testChunk{chunk.IDAT, c.payload[:half]}, testChunk{chunk.IDAT, c.payload[half:]})
			continue
		}
		chunks = append(chunks, testChunk{c.typ, c.payload})
	}
	return build(t, chunks...)
}
