package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"badc0de.net/pkg/go-apng/apng"
)

func infoMain(inputs []string) error {
	a, err := decodeInput(inputs)
	if err != nil {
		return err
	}
	printInfo(os.Stdout, a)
	return nil
}

func printInfo(w io.Writer, a *apng.Animation) {
	fmt.Fprintf(w, "%dx%d, %d frames (acTL says %d), %d plays, play time %v\n", a.Width, a.Height, len(a.Frames), a.NumFrames, a.NumPlays, a.PlayTime)
	tw := tabwriter.NewWriter(w, 0, 8, 1, ' ', 0)
	fmt.Fprintln(tw, "frame\tseq\tsize\toffset\tdelay\tdispose\tblend\tbytes")
	for i, f := range a.Frames {
		fmt.Fprintf(tw, "%d\t%d\t%dx%d\t+%d+%d\t%v\t%v\t%v\t%d\n", i, f.SequenceNumber, f.Width, f.Height, f.XOffset, f.YOffset, f.Delay, f.DisposeOp, f.BlendOp, f.Size())
	}
	tw.Flush()
}
