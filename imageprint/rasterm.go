//go:build !windows

package imageprint

import (
	"fmt"
	"image"
	"io"

	"github.com/BourgeoisBear/rasterm"
)

func isTermItermWez() bool {
	return rasterm.IsTermItermWez()
}

// PrintRasTerm draws an image using the RasTerm library.
//
// This should enable drawing in Kitty, iTerm2, WezTerm and sixel capable
// terminals. On other terminals nothing is drawn.
func PrintRasTerm(w io.Writer, i image.Image, q Quantizer) error {
	var err error
	switch {
	case rasterm.IsTermKitty():
		err = rasterm.Settings{}.KittyWriteImage(w, i)
	case rasterm.IsTermItermWez():
		err = rasterm.Settings{}.ItermWriteImage(w, i)
	default:
		capable, cerr := rasterm.IsSixelCapable()
		if !capable || cerr != nil {
			return nil
		}
		err = rasterm.Settings{}.SixelWriteImage(w, Paletted(i, q))
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(w, "\n")
	return err
}
