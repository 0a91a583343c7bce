package imageprint

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"badc0de.net/pkg/go-apng/ttesting"
)

func testImage() *image.NRGBA {
	i := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	i.Set(0, 0, color.NRGBA{0, 0, 0, 255})
	i.Set(1, 0, color.NRGBA{255, 255, 255, 255})
	i.Set(2, 0, color.NRGBA{100, 100, 100, 255})
	// Second row stays transparent.
	return i
}

func TestPrintNoColor(t *testing.T) {
	b := &bytes.Buffer{}
	PrintNoColor(b, testImage(), false)
	lines := strings.Split(b.String(), "\n")
	ttesting.AssertEqualInt(t, "lines", len(lines), 3)
	ttesting.AssertEqualString(t, "opaque row", lines[0], "..##==")
	ttesting.AssertEqualString(t, "transparent row", lines[1], strings.Repeat("\x1b[0m  ", 3))
}

func TestPrint24bit(t *testing.T) {
	b := &bytes.Buffer{}
	Print24bit(b, testImage(), true)
	row := strings.Split(b.String(), "\n")[0]
	if !strings.HasPrefix(row, "\x1b[48;2;0;0;0m  \x1b[0m\x1b[48;2;255;255;255m  ") {
		t.Errorf("unexpected 24 bit row %q", row)
	}
}

func TestPrintPNG(t *testing.T) {
	enc := &bytes.Buffer{}
	if err := png.Encode(enc, testImage()); err != nil {
		t.Fatal(err)
	}
	b := &bytes.Buffer{}
	if err := PrintPNG(b, enc.Bytes(), Options{Mode: ModeNoColor}); err != nil {
		t.Fatalf("PrintPNG: %v", err)
	}
	ttesting.AssertEqualString(t, "first row", strings.Split(b.String(), "\n")[0], "..##==")

	if err := PrintPNG(b, []byte("not a png"), Options{Name: "junk"}); err == nil {
		t.Errorf("PrintPNG of junk: want error")
	}
}

func TestQuantizers(t *testing.T) {
	for _, name := range []string{"gogif", "mediancut"} {
		q, err := ParseQuantizer(name)
		if err != nil {
			t.Fatalf("ParseQuantizer(%q): %v", name, err)
		}
		ttesting.AssertEqualString(t, "name", q.String(), name)

		i := testImage()
		p := Paletted(i, q)
		if p.Bounds() != i.Bounds() {
			t.Errorf("%s: bounds %v, want %v", name, p.Bounds(), i.Bounds())
		}
		if len(p.Palette) == 0 {
			t.Errorf("%s: empty palette", name)
		}
	}
	if _, err := ParseQuantizer("octree"); err == nil {
		t.Errorf("ParseQuantizer(octree): want error")
	}
}
