package main

import (
	"fmt"
	"os"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"badc0de.net/pkg/go-apng/apng"
	"badc0de.net/pkg/go-apng/paths"
)

func decodeInput(inputs []string) (*apng.Animation, error) {
	if len(inputs) != 1 {
		return nil, errors.Errorf("want exactly one input animation, got %d", len(inputs))
	}
	b, err := paths.ReadFile(inputs[0])
	if err != nil {
		return nil, err
	}
	a, err := apng.DecodeAnimationWithOptions(b, &apng.DecodeOptions{VerifyCRC: *verify})
	if err != nil {
		return nil, errors.Wrapf(err, "decoding %s", inputs[0])
	}
	return a, nil
}

func frameName(prefix string, i int) string {
	return fmt.Sprintf("%s%03d.png", prefix, i)
}

func unpackMain(inputs []string) error {
	a, err := decodeInput(inputs)
	if err != nil {
		return err
	}
	images, err := a.Images()
	if err != nil {
		return err
	}

	g := &errgroup.Group{}
	if *parallel > 0 {
		g.SetLimit(*parallel)
	}
	for i, img := range images {
		i, img := i, img
		g.Go(func() error {
			name := frameName(*outPrefix, i)
			if err := os.WriteFile(name, img, 0644); err != nil {
				return errors.Wrapf(err, "writing frame %d", i)
			}
			glog.V(1).Infof("wrote %s: %d bytes", name, len(img))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	glog.Infof("wrote %d frames to %s*.png", len(images), *outPrefix)

	if *printFrames {
		for i, img := range images {
			if err := out(img, frameName(*outPrefix, i)); err != nil {
				return err
			}
		}
	}
	return nil
}
