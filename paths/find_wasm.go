//go:build js && wasm

package paths

// getPossiblePathsImp returns the name unchanged. Inside the browser there
// is no filesystem to search.
func getPossiblePathsImp(fileName string) []string {
	return []string{fileName}
}

// openImp fetches the name relative to the page over HTTP.
func openImp(fileName string) (ReadSeekCloser, error) {
	return openHTTPImp(fileName)
}
