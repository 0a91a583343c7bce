package paths

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/bradfitz/iter"

	"badc0de.net/pkg/go-apng/ttesting"
)

func TestFindSearchPath(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "frame.png"), []byte("frame"), 0644); err != nil {
		t.Fatal(err)
	}

	SetSearchPath(filepath.Join(dir, "missing") + string(filepath.ListSeparator) + dir)
	defer SetSearchPath("")

	ttesting.AssertEqualString(t, "found", Find("frame.png"), filepath.Join(dir, "frame.png"))
	ttesting.AssertEqualString(t, "not found", Find("other.png"), "")

	b, err := ReadFile("frame.png")
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	ttesting.AssertEqualString(t, "contents", string(b), "frame")
}

func TestOpenMissing(t *testing.T) {
	SetSearchPath(t.TempDir())
	defer SetSearchPath("")

	_, err := Open("nope.png")
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Open of missing file: got %v, want os.ErrNotExist", err)
	}
}

func TestOpenHTTP(t *testing.T) {
	ClearCache()
	defer ClearCache()

	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		if r.URL.Path != "/frame.png" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, "remote frame")
	}))
	defer srv.Close()

	url := srv.URL + "/frame.png"
	ttesting.AssertEqualString(t, "find url", Find(url), url)

	for range iter.N(3) {
		b, err := ReadFile(url)
		if err != nil {
			t.Fatalf("ReadFile(%q): %v", url, err)
		}
		ttesting.AssertEqualString(t, "body", string(b), "remote frame")
	}
	ttesting.AssertEqualInt(t, "fetches", int(atomic.LoadInt32(&hits)), 1)

	_, err := Open(srv.URL + "/missing.png")
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Open of 404 url: got %v, want os.ErrNotExist", err)
	}
	_, err = Open(srv.URL + "/missing.png")
	if err == nil {
		t.Errorf("404 response was cached")
	}
	ttesting.AssertEqualInt(t, "fetches after 404s", int(atomic.LoadInt32(&hits)), 3)
}

func TestSearchPathFlag(t *testing.T) {
	defer SetSearchPath("")
	v := searchPathValue{}
	if err := v.Set("a" + string(filepath.ListSeparator) + "b"); err != nil {
		t.Fatal(err)
	}
	dirs := searchDirs()
	ttesting.AssertEqualInt(t, "dirs", len(dirs), 2)
	ttesting.AssertEqualString(t, "first dir", dirs[0], "a")
	ttesting.AssertEqualString(t, "string", v.String(), "a"+string(filepath.ListSeparator)+"b")
}
