package main

import (
	"bufio"
	"bytes"
	"math"
	"os"
	"strings"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"badc0de.net/pkg/go-apng/apng"
	"badc0de.net/pkg/go-apng/paths"
)

func assembleMain(inputs []string) error {
	if len(inputs) == 0 {
		return errors.New("no input images; pass them as arguments")
	}
	images, err := readAll(inputs, *parallel)
	if err != nil {
		return err
	}

	opts, err := assembleOptions(len(images))
	if err != nil {
		return err
	}

	f, err := os.Create(*outPath)
	if err != nil {
		return errors.Wrap(err, "creating output")
	}
	w := bufio.NewWriter(f)
	n, err := apng.AssembleTo(w, images, opts)
	if err == nil {
		err = w.Flush()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(*outPath)
		return errors.Wrapf(err, "writing %s", *outPath)
	}
	glog.Infof("wrote %d frames, %d bytes to %s", len(images), n, *outPath)
	return nil
}

// readAll reads every input, at most parallel at a time, keeping the order
// of the arguments.
func readAll(inputs []string, parallel int) ([][]byte, error) {
	images := make([][]byte, len(inputs))
	g := &errgroup.Group{}
	if parallel > 0 {
		g.SetLimit(parallel)
	}
	for i, name := range inputs {
		i, name := i, name
		g.Go(func() error {
			b, err := paths.ReadFile(name)
			if err != nil {
				return err
			}
			glog.V(1).Infof("read %s: %d bytes", name, len(b))
			images[i] = b
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return images, nil
}

func assembleOptions(frames int) (*apng.Options, error) {
	for _, f := range []struct {
		name string
		v    uint
	}{{"-plays", *plays}, {"-width", *width}, {"-height", *height}} {
		if uint64(f.v) > math.MaxUint32 {
			return nil, errors.Errorf("%s=%d does not fit in 32 bits", f.name, f.v)
		}
	}

	opts := apng.DefaultOptions()
	opts.NumPlays = uint32(*plays)
	opts.Width = uint32(*width)
	opts.Height = uint32(*height)
	opts.DropAuxiliary = *dropAux

	var err error
	if opts.DisposeOp, err = apng.ParseDisposeOp(*dispose); err != nil {
		return nil, err
	}
	if opts.BlendOp, err = apng.ParseBlendOp(*blend); err != nil {
		return nil, err
	}

	def, err := apng.ParseDelay(*delay)
	if err != nil {
		return nil, errors.Wrap(err, "-delay")
	}
	var listed []apng.Delay
	if *delaysPath != "" {
		b, err := paths.ReadFile(*delaysPath)
		if err != nil {
			return nil, err
		}
		if listed, err = parseDelays(b); err != nil {
			return nil, errors.Wrapf(err, "parsing %s", *delaysPath)
		}
		if len(listed) > frames {
			glog.Warningf("%s lists %d delays for %d frames; ignoring the rest", *delaysPath, len(listed), frames)
		}
	}
	opts.Delays = make([]apng.Delay, frames)
	for i := range opts.Delays {
		if i < len(listed) {
			opts.Delays[i] = listed[i]
		} else {
			opts.Delays[i] = def
		}
	}
	return opts, nil
}

// parseDelays reads one delay per line. Blank lines and lines starting
// with # are skipped.
func parseDelays(b []byte) ([]apng.Delay, error) {
	var delays []apng.Delay
	s := bufio.NewScanner(bytes.NewReader(b))
	for line := 1; s.Scan(); line++ {
		text := strings.TrimSpace(s.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		d, err := apng.ParseDelay(text)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", line)
		}
		delays = append(delays, d)
	}
	return delays, s.Err()
}
