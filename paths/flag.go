package paths

import (
	"flag"
	"path/filepath"
	"sync"
)

var (
	searchPath     string
	searchPathLock sync.RWMutex
)

// SetupSearchPathFlag registers -search_path, a list of directories
// separated by the OS path list separator that Find looks in.
func SetupSearchPathFlag() {
	flag.Var(searchPathValue{}, "search_path", "Directories to look for input images in, separated by "+string(filepath.ListSeparator))
}

// SetSearchPath replaces the list of directories Find looks in.
func SetSearchPath(path string) {
	searchPathLock.Lock()
	defer searchPathLock.Unlock()
	searchPath = path
}

func searchDirs() []string {
	searchPathLock.RLock()
	defer searchPathLock.RUnlock()
	if searchPath == "" {
		return nil
	}
	return filepath.SplitList(searchPath)
}

type searchPathValue struct{}

func (searchPathValue) String() string {
	searchPathLock.RLock()
	defer searchPathLock.RUnlock()
	return searchPath
}

func (searchPathValue) Set(s string) error {
	SetSearchPath(s)
	return nil
}
