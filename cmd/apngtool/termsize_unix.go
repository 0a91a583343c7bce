//go:build aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris

package main

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strconv"

	"github.com/golang/glog"
	"golang.org/x/crypto/ssh/terminal"
	"golang.org/x/sys/unix"
)

type TermSize struct {
	Rows, Cols     uint
	XPixel, YPixel uint
}

var windowSizeReply = regexp.MustCompile(`\[4;(\d+);(\d+)t`)

func GetTermSize() (TermSize, error) {
	f, err := os.OpenFile("/dev/tty", unix.O_NOCTTY|unix.O_CLOEXEC|unix.O_NDELAY|unix.O_RDWR, 0666)
	if err == nil {
		defer f.Close()
		sz, err := unix.IoctlGetWinsize(int(f.Fd()), unix.TIOCGWINSZ)
		if err == nil {
			if sz.Xpixel == 0 && sz.Ypixel == 0 && os.Getenv("TERM") == "xterm-kitty" {
				askPixelSize(f, sz)
			}
			return TermSize{Rows: uint(sz.Row), Cols: uint(sz.Col), XPixel: uint(sz.Xpixel), YPixel: uint(sz.Ypixel)}, nil
		}
	}
	w, h, err := terminal.GetSize(0)
	if err != nil {
		return TermSize{}, err
	}
	return TermSize{Rows: uint(h), Cols: uint(w)}, nil
}

// askPixelSize fills in the window size in pixels with the terminal's
// reply to CSI 14 t, which is <ESC>[4;<height>;<width>t.
//
// https://sw.kovidgoyal.net/kitty/graphics-protocol/#getting-the-window-size
func askPixelSize(f *os.File, sz *unix.Winsize) {
	state, err := terminal.MakeRaw(int(f.Fd()))
	if err != nil {
		return
	}
	defer terminal.Restore(int(f.Fd()), state)

	fmt.Fprint(f, "\033[14t")
	s, err := bufio.NewReader(f).ReadString('t')
	if err != nil {
		glog.V(1).Infof("no reply to window size query: %v", err)
		return
	}
	m := windowSizeReply.FindStringSubmatch(s)
	if len(m) != 3 {
		glog.V(1).Infof("unexpected reply to window size query: %q", s)
		return
	}
	height, errH := strconv.Atoi(m[1])
	width, errW := strconv.Atoi(m[2])
	if errH == nil && errW == nil {
		sz.Xpixel = uint16(width)
		sz.Ypixel = uint16(height)
	}
}
