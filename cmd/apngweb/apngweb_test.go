package main

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"badc0de.net/pkg/go-apng/ttesting"
)

func TestServesIndexCompressed(t *testing.T) {
	srv := httptest.NewServer(newHandler())
	defer srv.Close()

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/", nil)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Accept-Encoding", "gzip")
	resp, err := http.DefaultTransport.RoundTrip(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	ttesting.AssertEqualInt(t, "status", resp.StatusCode, http.StatusOK)
	ttesting.AssertEqualString(t, "encoding", resp.Header.Get("Content-Encoding"), "gzip")
}

func TestUnknownRoute(t *testing.T) {
	srv := httptest.NewServer(newHandler())
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/nope", "image/png", strings.NewReader("x"))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	ttesting.AssertEqualInt(t, "status", resp.StatusCode, http.StatusNotFound)
}
