package main

import (
	"bytes"
	"image"
	"image/png"
	"os"

	"github.com/nfnt/resize"
	"github.com/pkg/errors"

	"badc0de.net/pkg/go-apng/imageprint"
)

func out(b []byte, name string) error {
	img, err := png.Decode(bytes.NewReader(b))
	if err != nil {
		return errors.Wrapf(err, "decoding %s for printing", name)
	}
	opts, err := printOptions(name)
	if err != nil {
		return err
	}
	if *downsize {
		img = fit(img, opts.Mode)
	}
	return imageprint.Print(os.Stdout, img, opts)
}

// fit shrinks img to the terminal. Pixel sizes are preferred when the
// renderer draws real images; text renderers use two columns per pixel.
func fit(img image.Image, mode imageprint.Mode) image.Image {
	termSize, err := GetTermSize()
	if err != nil {
		return img
	}
	if termSize.XPixel != 0 && termSize.YPixel != 0 && (mode == imageprint.ModeRasTerm || mode == imageprint.ModeITerm) {
		return resize.Thumbnail(termSize.XPixel/2, termSize.YPixel/2, img, resize.Lanczos3)
	}
	if termSize.Cols == 0 || termSize.Rows == 0 {
		return img
	}
	return resize.Thumbnail(termSize.Cols/2, termSize.Rows, img, resize.Lanczos3)
}
