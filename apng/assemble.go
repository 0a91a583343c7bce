package apng

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"badc0de.net/pkg/go-apng/chunk"
)

// MediaType is the media type of an assembled animation.
const MediaType = "image/apng"

// Delay is a frame delay fraction, in seconds.
type Delay struct {
	Num, Den uint16
}

// DefaultDelay shows each frame for a tenth of a second.
var DefaultDelay = Delay{Num: 1, Den: 10}

// DelayFromDuration returns the delay fraction closest to d, in milliseconds
// when d fits and in hundredths of a second otherwise.
func DelayFromDuration(d time.Duration) Delay {
	if d < 0 {
		d = 0
	}
	if ms := d / time.Millisecond; ms <= 0xFFFF {
		return Delay{Num: uint16(ms), Den: 1000}
	}
	cs := d / (10 * time.Millisecond)
	if cs > 0xFFFF {
		cs = 0xFFFF
	}
	return Delay{Num: uint16(cs), Den: 100}
}

func (d Delay) String() string {
	return fmt.Sprintf("%d/%d", d.Num, d.Den)
}

// ParseDelay parses a delay written either as a "num/den" fraction of a
// second or as a whole number of milliseconds.
func ParseDelay(s string) (Delay, error) {
	s = strings.TrimSpace(s)
	if num, den, ok := strings.Cut(s, "/"); ok {
		n, err := strconv.ParseUint(strings.TrimSpace(num), 10, 16)
		if err != nil {
			return Delay{}, errors.Wrapf(err, "apng: bad delay numerator in %q", s)
		}
		d, err := strconv.ParseUint(strings.TrimSpace(den), 10, 16)
		if err != nil {
			return Delay{}, errors.Wrapf(err, "apng: bad delay denominator in %q", s)
		}
		return Delay{Num: uint16(n), Den: uint16(d)}, nil
	}
	ms, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return Delay{}, errors.Wrapf(err, "apng: bad delay %q", s)
	}
	return DelayFromDuration(time.Duration(ms) * time.Millisecond), nil
}

// Options configure Assemble.
//
// The zero value is usable, but note that the zero DisposeOp is
// DisposeOpNone; start from DefaultOptions to get the usual defaults.
type Options struct {
	// NumPlays is the loop count; 0 loops forever.
	NumPlays uint32

	// Width and Height go into every fcTL chunk. When zero, the size
	// recorded in the first image's IHDR chunk is used.
	Width, Height uint32

	// Delays holds per-frame delays. Frames without an entry use
	// DefaultDelay.
	Delays []Delay

	DisposeOp DisposeOp
	BlendOp   BlendOp

	// DropAuxiliary discards chunks of the first image other than IHDR,
	// IDAT and IEND instead of copying them into the animation.
	DropAuxiliary bool
}

// DefaultOptions returns the options used when Assemble is passed nil.
func DefaultOptions() *Options {
	return &Options{
		DisposeOp: DisposeOpBackground,
		BlendOp:   BlendOpSource,
	}
}

func (o *Options) frameControl(i int, width, height uint32) FrameControl {
	d := DefaultDelay
	if i < len(o.Delays) {
		d = o.Delays[i]
	}
	return FrameControl{
		Width:     width,
		Height:    height,
		DelayNum:  d.Num,
		DelayDen:  d.Den,
		DisposeOp: o.DisposeOp,
		BlendOp:   o.BlendOp,
	}
}

// still holds the chunks harvested from one input PNG.
type still struct {
	header        []byte
	width, height uint32
	data          [][]byte
	pre, post     []rawChunk // Auxiliary chunks before and after image data.
	end           []byte
	hasEnd        bool
}

type rawChunk struct {
	typ     chunk.Type
	payload []byte
}

// harvest walks a still PNG stream and collects its chunks. Animation
// chunks of an input that is itself an APNG are skipped.
func harvest(b []byte) (*still, error) {
	if !chunk.HasSignature(b) {
		return nil, FormatError("missing PNG signature")
	}
	s := &still{}
	w := chunk.NewWalker(b)
	for w.Next() {
		c := w.Chunk()
		p := c.Payload(b)
		switch c.Type {
		case chunk.IHDR:
			if len(p) < 8 {
				return nil, FormatError(fmt.Sprintf("IHDR too short: got %d bytes", len(p)))
			}
			s.header = p
			s.width = chunk.Uint32(p[0:4])
			s.height = chunk.Uint32(p[4:8])
		case chunk.IDAT:
			s.data = append(s.data, p)
		case chunk.IEND:
			s.end = p
			s.hasEnd = true
		case chunk.ACTL, chunk.FCTL, chunk.FDAT:
			glog.V(2).Infof("apng: skipping %s chunk of input image", c.Type)
		default:
			if len(s.data) == 0 {
				s.pre = append(s.pre, rawChunk{c.Type, p})
			} else {
				s.post = append(s.post, rawChunk{c.Type, p})
			}
		}
	}
	if err := w.Err(); err != nil {
		return nil, err
	}
	if s.header == nil {
		return nil, FormatError("missing IHDR chunk")
	}
	if len(s.data) == 0 {
		return nil, FormatError("no IDAT chunks")
	}
	return s, nil
}

// pixelFormat returns the IHDR fields after width and height: bit depth,
// color type, compression, filter and interlace method.
func (s *still) pixelFormat() []byte {
	return s.header[8:]
}

func (s *still) auxiliary(t chunk.Type) []byte {
	for _, c := range s.pre {
		if c.typ == t {
			return c.payload
		}
	}
	return nil
}

// Assemble builds an animation out of still PNG streams, one frame per
// image, and returns the encoded APNG.
//
// The first image supplies the IHDR and IEND chunks and doubles as the
// default image shown by readers that do not understand animation. Each
// later image contributes only its IDAT chunks, rewritten as fdAT chunks.
// All images must have the same size and the same IHDR pixel format. A nil
// opts means DefaultOptions.
func Assemble(images [][]byte, opts *Options) ([]byte, error) {
	buf := &bytes.Buffer{}
	if _, err := AssembleTo(buf, images, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// AssembleTo is like Assemble, but writes the animation to w. It returns
// the number of bytes written.
func AssembleTo(w io.Writer, images [][]byte, opts *Options) (int64, error) {
	if len(images) == 0 {
		return 0, ErrNoFrames
	}
	if opts == nil {
		opts = DefaultOptions()
	}

	first, err := harvest(images[0])
	if err != nil {
		return 0, errors.Wrap(err, "apng: reading image 0")
	}
	if !first.hasEnd {
		return 0, errors.Wrap(FormatError("missing IEND chunk"), "apng: reading image 0")
	}
	width, height := opts.Width, opts.Height
	if width == 0 {
		width = first.width
	}
	if height == 0 {
		height = first.height
	}
	glog.V(1).Infof("apng: assembling %d frames of %dx%d", len(images), width, height)

	var seq sequence
	cw := chunk.NewWriter(w)
	cw.WriteSignature()
	cw.WriteChunk(chunk.IHDR, first.header)
	actl := AnimationControl{NumFrames: uint32(len(images)), NumPlays: opts.NumPlays}
	cw.WriteChunk(chunk.ACTL, actl.payload())
	if !opts.DropAuxiliary {
		for _, c := range first.pre {
			cw.WriteChunk(c.typ, c.payload)
		}
	}

	fctl := opts.frameControl(0, width, height)
	fctl.SequenceNumber = seq.next()
	cw.WriteChunk(chunk.FCTL, fctl.payload())
	for _, d := range first.data {
		cw.WriteChunk(chunk.IDAT, d)
	}

	for i := 1; i < len(images); i++ {
		img, err := harvest(images[i])
		if err != nil {
			return cw.N(), errors.Wrapf(err, "apng: reading image %d", i)
		}
		if img.width != first.width || img.height != first.height {
			return cw.N(), &DimensionError{
				Index:      i,
				Width:      img.width,
				Height:     img.height,
				WantWidth:  first.width,
				WantHeight: first.height,
			}
		}
		if f, want := img.pixelFormat(), first.pixelFormat(); !bytes.Equal(f, want) {
			return cw.N(), FormatError(fmt.Sprintf("image %d: IHDR pixel format % x does not match image 0 (% x)", i, f, want))
		}
		if plte := img.auxiliary(chunk.PLTE); plte != nil && !bytes.Equal(plte, first.auxiliary(chunk.PLTE)) {
			glog.Warningf("apng: image %d has its own palette; frames share the palette of image 0", i)
		}

		fctl := opts.frameControl(i, width, height)
		fctl.SequenceNumber = seq.next()
		cw.WriteChunk(chunk.FCTL, fctl.payload())
		for _, d := range img.data {
			cw.WriteChunk(chunk.FDAT, frameDataPayload(seq.next(), d))
		}
		glog.V(2).Infof("apng: frame %d: %d fdAT chunks, next sequence number %d", i, len(img.data), seq)
	}

	if !opts.DropAuxiliary {
		for _, c := range first.post {
			cw.WriteChunk(c.typ, c.payload)
		}
	}
	cw.WriteChunk(chunk.IEND, first.end)
	if err := cw.Err(); err != nil {
		return cw.N(), errors.Wrap(err, "apng: writing animation")
	}
	return cw.N(), nil
}
