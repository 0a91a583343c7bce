// Command apngtool assembles still PNG images into an animated PNG, and
// unpacks animated PNGs into still images.
//
//	apngtool -mode=assemble -out=anim.png [-delays=delays.txt] frame1.png frame2.png ...
//	apngtool -mode=unpack -out_prefix=frame_ anim.png
//	apngtool -mode=info anim.png
//
// Inputs can be local paths, names found under -search_path, or HTTP(S)
// URLs.
package main

import (
	"flag"

	"badc0de.net/pkg/flagutil/v1"
	"github.com/common-nighthawk/go-figure"
	"github.com/golang/glog"

	"badc0de.net/pkg/go-apng/imageprint"
	"badc0de.net/pkg/go-apng/paths"
)

var (
	mode      = flag.String("mode", "assemble", "what to do: assemble, unpack or info")
	outPath   = flag.String("out", "anim.png", "where -mode=assemble writes the animation")
	outPrefix = flag.String("out_prefix", "frame_", "prefix of the files written by -mode=unpack; the frame index and .png are appended")

	plays      = flag.Uint("plays", 0, "number of times the animation plays; 0 loops forever")
	width      = flag.Uint("width", 0, "frame width written to fcTL; 0 takes it from the first image")
	height     = flag.Uint("height", 0, "frame height written to fcTL; 0 takes it from the first image")
	delaysPath = flag.String("delays", "", "file with one delay per line, as num/den seconds or as milliseconds")
	delay      = flag.String("delay", "1/10", "delay of frames not listed in -delays")
	dispose    = flag.String("dispose", "background", "dispose op of every frame: none, background or previous")
	blend      = flag.String("blend", "source", "blend op of every frame: source or over")
	dropAux    = flag.Bool("drop_aux", false, "whether to drop the first image's chunks other than IHDR, IDAT and IEND")

	verify   = flag.Bool("verify", false, "whether to check chunk checksums when unpacking")
	parallel = flag.Int("parallel", 4, "how many files to read or write at once")

	printFrames = flag.Bool("print", false, "whether to print unpacked frames on the terminal")
	rasterm     = flag.Bool("rasterm", false, "whether to print with rasterm (kitty, iterm, sixel)")
	iterm       = flag.Bool("iterm", false, "whether to print with iterm escape code instead of 24 bit")
	col256      = flag.Bool("col256", false, "whether to use 256 col instead of 24 bit")
	col         = flag.Bool("col", true, "whether to use color at all")
	blanks      = flag.Bool("blanks", true, "whether to just use colored blanks instead of some bad ascii art")
	downsize    = flag.Bool("downsize", true, "whether to shrink printed frames to fit the terminal")
	quantizer   = flag.String("quantizer", "gogif", "palette algorithm for sixel output: gogif or mediancut")

	banner = flag.Bool("banner", false, "whether to print a banner before doing anything")
)

func main() {
	paths.SetupSearchPathFlag()
	flagutil.Parse()
	flag.Set("logtostderr", "true")

	if *banner {
		figure.NewFigure("apngtool", "", true).Print()
	}

	var err error
	switch *mode {
	case "assemble":
		err = assembleMain(flag.Args())
	case "unpack":
		err = unpackMain(flag.Args())
	case "info":
		err = infoMain(flag.Args())
	default:
		glog.Exitf("unknown -mode=%q; want assemble, unpack or info", *mode)
	}
	if err != nil {
		glog.Exitf("%s: %v", *mode, err)
	}
}

func printOptions(name string) (imageprint.Options, error) {
	q, err := imageprint.ParseQuantizer(*quantizer)
	if err != nil {
		return imageprint.Options{}, err
	}
	opts := imageprint.Options{Blanks: *blanks, Quantizer: q, Name: name}
	switch {
	case *rasterm:
		opts.Mode = imageprint.ModeRasTerm
	case !*col:
		opts.Mode = imageprint.ModeNoColor
	case *iterm:
		opts.Mode = imageprint.ModeITerm
	case *col256:
		opts.Mode = imageprint.Mode256Color
	default:
		opts.Mode = imageprint.Mode24bit
	}
	return opts, nil
}
