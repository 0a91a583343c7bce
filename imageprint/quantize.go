package imageprint

import (
	"fmt"
	"image"
	ic "image/color"
	"image/draw"

	"github.com/andybons/gogif"
	"github.com/ericpauley/go-quantize/quantize"
)

// Quantizer picks the palette algorithm used for paletted output.
type Quantizer int

const (
	// QuantizerGogif is gogif's median cut, limited to 64 colours.
	QuantizerGogif Quantizer = iota
	// QuantizerMedianCut is go-quantize's median cut, with up to 256
	// colours and a transparent entry.
	QuantizerMedianCut
)

var quantizerNames = map[string]Quantizer{
	"gogif":     QuantizerGogif,
	"mediancut": QuantizerMedianCut,
}

// ParseQuantizer maps a -quantizer flag value to a Quantizer.
func ParseQuantizer(s string) (Quantizer, error) {
	q, ok := quantizerNames[s]
	if !ok {
		return 0, fmt.Errorf("imageprint: unknown quantizer %q", s)
	}
	return q, nil
}

func (q Quantizer) String() string {
	for name, v := range quantizerNames {
		if v == q {
			return name
		}
	}
	return fmt.Sprintf("Quantizer(%d)", int(q))
}

// Paletted converts an image to a paletted one with the passed quantizer.
func Paletted(i image.Image, q Quantizer) *image.Paletted {
	switch q {
	case QuantizerMedianCut:
		quantizer := quantize.MedianCutQuantizer{AddTransparent: true}
		palette := quantizer.Quantize(make(ic.Palette, 0, 256), i)
		palettedImage := image.NewPaletted(i.Bounds(), palette)
		draw.Draw(palettedImage, i.Bounds(), i, i.Bounds().Min, draw.Src)
		return palettedImage
	default:
		palettedImage := image.NewPaletted(i.Bounds(), nil)
		quantizer := gogif.MedianCutQuantizer{NumColor: 64}
		quantizer.Quantize(palettedImage, i.Bounds(), i, image.Point{})
		return palettedImage
	}
}
