// Package paths locates and opens the images the apng tools work on.
//
// A name is either an http:// or https:// URL, a path that can be opened as
// given, or a file name looked up in the directories listed in -search_path.
package paths

import (
	"io"
	"os"
	"strings"

	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// ReadSeekCloser is what Open returns.
type ReadSeekCloser interface {
	io.ReadCloser
	io.Seeker
}

// Find locates the passed file name and returns a path or URL it can be
// opened at. URLs are returned unchanged. An empty string is returned when
// the file cannot be found.
//
// For example, with -search_path=testdata:frames, "a.png" may return
// "frames/a.png".
func Find(fileName string) string {
	if IsURL(fileName) {
		return fileName
	}
	for _, path := range getPossiblePathsImp(fileName) {
		if f, err := os.Open(path); err == nil {
			f.Close()
			glog.V(1).Infof("paths.Find(%q)=%s", fileName, path)
			return path
		}
	}
	return ""
}

// Open locates the passed file in the same locations that Find would look,
// and opens it. If Find returns an empty string, an error wrapping
// os.ErrNotExist is returned.
func Open(fileName string) (ReadSeekCloser, error) {
	if IsURL(fileName) {
		return openHTTPImp(fileName)
	}
	return openImp(fileName)
}

// ReadFile opens the passed file the way Open does and returns its contents.
func ReadFile(fileName string) ([]byte, error) {
	f, err := Open(fileName)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	b, err := io.ReadAll(f)
	if err != nil {
		return nil, errors.Wrapf(err, "paths.ReadFile(%q)", fileName)
	}
	return b, nil
}

// IsURL reports whether the name is fetched over HTTP rather than looked up
// on disk.
func IsURL(name string) bool {
	return strings.HasPrefix(name, "http://") || strings.HasPrefix(name, "https://")
}
