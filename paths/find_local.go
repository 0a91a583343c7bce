//go:build !js && !wasm

package paths

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// getPossiblePathsImp lists the candidate locations of fileName: the name
// itself, followed by the name joined to each -search_path directory.
//
// This is the local filesystem, native binary implementation.
func getPossiblePathsImp(fileName string) []string {
	paths := []string{fileName}
	if filepath.IsAbs(fileName) {
		return paths
	}
	for _, dir := range searchDirs() {
		paths = append(paths, filepath.Join(dir, fileName))
	}
	return paths
}

func openImp(fileName string) (ReadSeekCloser, error) {
	path := Find(fileName)
	if path == "" {
		return nil, errors.Wrapf(os.ErrNotExist, "paths.Open(%q): not found in %q", fileName, getPossiblePathsImp(fileName))
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "paths.Open(%q)", fileName)
	}
	return f, nil
}
