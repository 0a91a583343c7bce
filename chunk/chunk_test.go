package chunk

import (
	"bytes"
	"errors"
	"testing"

	"github.com/bradfitz/iter"

	"badc0de.net/pkg/go-apng/ttesting"
)

func stream(t *testing.T, chunks ...[]byte) []byte {
	t.Helper()
	b := []byte(Signature)
	for _, c := range chunks {
		b = append(b, c...)
	}
	return b
}

func mustMake(t *testing.T, typ Type, payload []byte) []byte {
	t.Helper()
	b, err := Make(typ, payload)
	if err != nil {
		t.Fatalf("Make(%q): %v", typ, err)
	}
	return b
}

func TestChecksumIEND(t *testing.T) {
	ttesting.AssertEqualUint32(t, "CRC", CRC(IEND, nil), 0xAE426082)
	ttesting.AssertEqualUint32(t, "Checksum", Checksum([]byte("xxIENDyy"), 2, 4), 0xAE426082)

	first := Checksum([]byte("IEND"), 0, 4)
	for range iter.N(3) {
		ttesting.AssertEqualUint32(t, "repeated", Checksum([]byte("IEND"), 0, 4), first)
	}
}

func TestIntCodec(t *testing.T) {
	ttesting.AssertEqualBytes(t, "4 bytes", IntToBytes(0xFFFFFFFE, 4), []byte{0xFF, 0xFF, 0xFF, 0xFE})
	ttesting.AssertEqualBytes(t, "2 bytes", IntToBytes(0x1234, 2), []byte{0x12, 0x34})
	ttesting.AssertEqualBytes(t, "1 byte", IntToBytes(0x1FF, 1), []byte{0xFF})

	b := []byte{0, 0x80, 0, 0, 1, 0x05}
	ttesting.AssertEqualUint32(t, "unsigned msb", BytesToInt(b, 1, 4), 0x80000001)
	ttesting.AssertEqualUint32(t, "16-bit", BytesToInt(b, 4, 2), 0x0105)
	ttesting.AssertEqualUint32(t, "max", BytesToInt(IntToBytes(0xFFFFFFFF, 4), 0, 4), 0xFFFFFFFF)
}

func TestTag(t *testing.T) {
	b := []byte("..fdAT..")
	ttesting.AssertEqualString(t, "BytesToTag", string(BytesToTag(b, 2, 4)), "fdAT")
	ttesting.AssertEqualBytes(t, "Bytes", ACTL.Bytes(), []byte{'a', 'c', 'T', 'L'})

	if !IHDR.Critical() || FCTL.Critical() {
		t.Errorf("Critical: IHDR=%v fcTL=%v; want true, false", IHDR.Critical(), FCTL.Critical())
	}
	if !TRNS.Public() {
		t.Errorf("tRNS.Public() = false; want true")
	}

	for _, bad := range []Type{"", "IHD", "IHDRX", "IH R", "IH\x00R"} {
		var te *TypeError
		if err := bad.Valid(); !errors.As(err, &te) {
			t.Errorf("Type(%q).Valid() = %v; want *TypeError", string(bad), err)
		}
	}
}

func TestMake(t *testing.T) {
	payload := []byte{1, 2, 3}
	b := mustMake(t, IDAT, payload)

	ttesting.AssertEqualInt(t, "len", len(b), len(payload)+12)
	ttesting.AssertEqualUint32(t, "length field", Uint32(b), 3)
	ttesting.AssertEqualString(t, "type", string(b[4:8]), "IDAT")
	ttesting.AssertEqualBytes(t, "payload", b[8:11], payload)
	ttesting.AssertEqualUint32(t, "crc", Uint32(b[11:]), CRC(IDAT, payload))

	again := mustMake(t, IDAT, payload)
	ttesting.AssertEqualBytes(t, "deterministic", again, b)

	iend := mustMake(t, IEND, nil)
	ttesting.AssertEqualBytes(t, "IEND", iend, []byte{0, 0, 0, 0, 'I', 'E', 'N', 'D', 0xAE, 0x42, 0x60, 0x82})

	if _, err := Make("bad", nil); err == nil {
		t.Errorf("Make with 3-character type succeeded")
	}
}

func TestWriteToMatchesMake(t *testing.T) {
	payload := []byte("hello")
	buf := &bytes.Buffer{}
	n, err := WriteTo(buf, Type("tEXt"), payload)
	if err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	ttesting.AssertEqualInt(t, "n", int(n), len(payload)+12)
	ttesting.AssertEqualBytes(t, "bytes", buf.Bytes(), mustMake(t, "tEXt", payload))
}

func TestWriter(t *testing.T) {
	buf := &bytes.Buffer{}
	cw := NewWriter(buf)
	cw.WriteSignature()
	cw.WriteChunk(IDAT, []byte{9})
	cw.WriteRaw(mustMake(t, IEND, nil))
	if err := cw.Err(); err != nil {
		t.Fatalf("Writer: %v", err)
	}
	want := stream(t, mustMake(t, IDAT, []byte{9}), mustMake(t, IEND, nil))
	ttesting.AssertEqualBytes(t, "stream", buf.Bytes(), want)
	ttesting.AssertEqualInt(t, "N", int(cw.N()), len(want))

	cw.WriteChunk("no", nil)
	if cw.Err() == nil {
		t.Errorf("Writer accepted a bad type")
	}
	cw.WriteChunk(IEND, nil)
	ttesting.AssertEqualInt(t, "N after error", int(cw.N()), len(want))
}

func TestWalker(t *testing.T) {
	b := stream(t,
		mustMake(t, IHDR, make([]byte, 13)),
		mustMake(t, IDAT, []byte{1, 2}),
		mustMake(t, IDAT, nil),
		mustMake(t, IEND, nil),
		mustMake(t, "tEXt", []byte("after end")),
	)

	var got []Chunk
	w := NewWalker(b)
	for w.Next() {
		got = append(got, w.Chunk())
	}
	if err := w.Err(); err != nil {
		t.Fatalf("Err: %v", err)
	}

	want := []Chunk{
		{Type: IHDR, Offset: 8, Length: 13},
		{Type: IDAT, Offset: 33, Length: 2},
		{Type: IDAT, Offset: 47, Length: 0},
		{Type: IEND, Offset: 59, Length: 0},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d chunks %+v; want %d", len(got), got, len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("chunk %d: got %+v; want %+v", i, got[i], want[i])
		}
	}
	ttesting.AssertEqualBytes(t, "payload", got[1].Payload(b), []byte{1, 2})
	ttesting.AssertEqualBytes(t, "bytes", got[1].Bytes(b), mustMake(t, IDAT, []byte{1, 2}))
	ttesting.AssertEqualUint32(t, "stored crc", got[3].StoredCRC(b), 0xAE426082)
}

func TestWalkStopsEarly(t *testing.T) {
	b := stream(t,
		mustMake(t, IHDR, make([]byte, 13)),
		mustMake(t, ACTL, make([]byte, 8)),
		mustMake(t, IDAT, nil),
	)
	var seen []Type
	err := Walk(b, func(c Chunk) bool {
		seen = append(seen, c.Type)
		return c.Type != ACTL
	})
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	ttesting.AssertEqualInt(t, "visited", len(seen), 2)
}

func TestWalkEmptyAndTruncated(t *testing.T) {
	if err := Walk([]byte(Signature), func(Chunk) bool {
		t.Errorf("visited a chunk of a signature-only buffer")
		return true
	}); err != nil {
		t.Errorf("Walk(signature only) = %v; want nil", err)
	}

	full := stream(t, mustMake(t, IDAT, []byte{1, 2, 3, 4}))
	for _, cut := range []int{len(Signature) + 3, len(full) - 1} {
		var te *TruncatedError
		err := Walk(full[:cut], func(Chunk) bool { return true })
		if !errors.As(err, &te) {
			t.Errorf("Walk(cut at %d) = %v; want *TruncatedError", cut, err)
			continue
		}
		ttesting.AssertEqualInt(t, "offset", te.Offset, len(Signature))
	}
}

func TestVerify(t *testing.T) {
	b := stream(t, mustMake(t, IDAT, []byte{1, 2, 3}))
	w := NewWalker(b)
	if !w.Next() {
		t.Fatalf("no chunk: %v", w.Err())
	}
	c := w.Chunk()
	if err := Verify(b, c); err != nil {
		t.Errorf("Verify(good) = %v", err)
	}

	b[len(Signature)+8]++
	var ce *ChecksumError
	if err := Verify(b, c); !errors.As(err, &ce) {
		t.Errorf("Verify(corrupt) = %v; want *ChecksumError", err)
	}
}
