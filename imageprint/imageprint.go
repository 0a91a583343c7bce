// Package imageprint prints images on terminal. UNSUPPORTED debug package.
//
// This package has an API with no stability guarantees.
package imageprint

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	ic "image/color"
	"image/png"
	"io"

	"github.com/gookit/color"
	"github.com/pkg/errors"
)

// Mode selects how Print draws pixels.
type Mode int

const (
	Mode24bit Mode = iota
	Mode256Color
	ModeNoColor
	ModeITerm
	ModeRasTerm
)

// Options configure Print and PrintPNG.
type Options struct {
	Mode Mode

	// Blanks draws every pixel as two spaces with a coloured background,
	// instead of as a brightness glyph.
	Blanks bool

	// Quantizer is used when a sixel terminal needs a paletted image.
	Quantizer Quantizer

	// Name is reported to terminals that display inline files.
	Name string
}

func glyph(cR, cG, cB uint32, blanks bool) string {
	if blanks {
		return "  "
	}
	a := ((cR + cG + cB) / 3) >> 8
	switch {
	case a < 32:
		return ".."
	case a < 64:
		return "--"
	case a < 128:
		return "=="
	default:
		return "##"
	}
}

func shade(w io.Writer, col ic.Color, mode Mode, blanks bool) {
	cR, cG, cB, cA := col.RGBA()
	if cA == 0 {
		fmt.Fprint(w, "\x1b[0m  ")
		return
	}
	g := glyph(cR, cG, cB, blanks)
	switch mode {
	case ModeNoColor:
		fmt.Fprint(w, g)
	case Mode256Color:
		fmt.Fprint(w, color.RGB(uint8(cR>>8), uint8(cG>>8), uint8(cB>>8), true).Sprint(g))
	default:
		fmt.Fprintf(w, "\x1b[48;2;%d;%d;%dm%s\x1b[0m", uint8(cR>>8), uint8(cG>>8), uint8(cB>>8), g)
	}
}

func printText(w io.Writer, i image.Image, mode Mode, blanks bool) {
	for y := i.Bounds().Min.Y; y < i.Bounds().Max.Y; y++ {
		for x := i.Bounds().Min.X; x < i.Bounds().Max.X; x++ {
			shade(w, i.At(x, y), mode, blanks)
		}
		if mode != ModeNoColor {
			fmt.Fprint(w, "\x1b[0m")
		}
		fmt.Fprint(w, "\n")
	}
}

// Print256Color draws an image using 256color'd ascii art.
func Print256Color(w io.Writer, i image.Image, blanks bool) {
	printText(w, i, Mode256Color, blanks)
}

// Print24bit draws an image using 24bit color escape sequences by changing background.
func Print24bit(w io.Writer, i image.Image, blanks bool) {
	printText(w, i, Mode24bit, blanks)
}

// PrintNoColor draws an image without using color escape sequences. Only makes sense with blanks=false.
func PrintNoColor(w io.Writer, i image.Image, blanks bool) {
	printText(w, i, ModeNoColor, blanks)
}

// PrintITerm draws an image using iTerm2's escape sequences. Nothing is
// drawn on other terminals.
//
// https://www.iterm2.com/documentation-images.html
func PrintITerm(w io.Writer, i image.Image, fn string) error {
	if !isTermItermWez() {
		return nil
	}
	name := base64.StdEncoding.EncodeToString([]byte(fn))
	b := &bytes.Buffer{}
	bEnc := base64.NewEncoder(base64.StdEncoding, b)
	if err := png.Encode(bEnc, i); err != nil {
		return errors.Wrap(err, "encoding image for iterm")
	}
	bEnc.Close()
	_, err := fmt.Fprintf(w, "\n\033]1337;File=name=%s;inline=1;size=%d,width=%dpx;height=%dpx:%s\a\n", name, b.Len(), i.Bounds().Size().X, i.Bounds().Size().Y, b.String())
	return err
}

// Print draws an image in the passed mode.
func Print(w io.Writer, i image.Image, opts Options) error {
	switch opts.Mode {
	case ModeITerm:
		return PrintITerm(w, i, opts.Name)
	case ModeRasTerm:
		return PrintRasTerm(w, i, opts.Quantizer)
	default:
		printText(w, i, opts.Mode, opts.Blanks)
		return nil
	}
}

// PrintPNG decodes a PNG stream and draws it the way Print does.
func PrintPNG(w io.Writer, b []byte, opts Options) error {
	i, err := png.Decode(bytes.NewReader(b))
	if err != nil {
		return errors.Wrapf(err, "imageprint: decoding %q", opts.Name)
	}
	return Print(w, i, opts)
}
