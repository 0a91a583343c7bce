package paths

import (
	"bytes"
	"io"
	"net/http"
	"os"
	"sync"

	"github.com/golang/glog"
	"github.com/pkg/errors"
)

var (
	cache     map[string][]byte
	cacheLock sync.Mutex

	// Client is used for fetching URLs.
	Client = http.DefaultClient
)

// openHTTPImp fetches the URL, or returns the body fetched by an earlier
// call. Only successful responses are cached.
func openHTTPImp(url string) (ReadSeekCloser, error) {
	cacheLock.Lock()
	if b, ok := cache[url]; ok {
		cacheLock.Unlock()
		glog.V(2).Infof("paths: %q served from cache", url)
		return &bytesReaderWithDummyClose{bytes.NewReader(b)}, nil
	}
	cacheLock.Unlock()

	glog.V(1).Infof("paths: fetching %q", url)
	response, err := Client.Get(url)
	if err != nil {
		return nil, errors.Wrapf(err, "paths.Open(%q): failed to fetch", url)
	}
	defer response.Body.Close()
	if response.StatusCode != http.StatusOK {
		e := os.ErrInvalid
		if response.StatusCode == http.StatusNotFound {
			e = os.ErrNotExist
		}
		return nil, errors.Wrapf(e, "paths.Open(%q): http response.StatusCode=%v, want 200", url, response.StatusCode)
	}

	buf := &bytes.Buffer{}
	if _, err := io.Copy(buf, response.Body); err != nil {
		return nil, errors.Wrap(err, "copying response to seekable buffer")
	}

	cacheLock.Lock()
	if cache == nil {
		cache = make(map[string][]byte)
	}
	cache[url] = buf.Bytes()
	cacheLock.Unlock()

	return &bytesReaderWithDummyClose{bytes.NewReader(buf.Bytes())}, nil
}

// ClearCache forgets every fetched URL.
func ClearCache() {
	cacheLock.Lock()
	cache = nil
	cacheLock.Unlock()
}

type bytesReaderWithDummyClose struct {
	*bytes.Reader
}

func (bytesReaderWithDummyClose) Close() error {
	return nil
}
