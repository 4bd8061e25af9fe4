package cryptox

import (
	"os"
	"strings"
	"sync"
)

var (
	pepperMu   sync.RWMutex
	pepperPath string
	pepperOnce sync.Once
	pepper     string
)

// SetPepperPath configures where the password pepper is read from. Must be
// called before the first hash or verify; later calls are ignored once the
// pepper has been loaded.
func SetPepperPath(path string) {
	pepperMu.Lock()
	defer pepperMu.Unlock()
	pepperPath = path
}

// GetPepper returns the process-wide password pepper. A missing or
// unreadable pepper file degrades to an empty pepper rather than failing
// hashing outright.
func GetPepper() string {
	pepperOnce.Do(func() {
		pepperMu.RLock()
		path := pepperPath
		pepperMu.RUnlock()

		if path == "" {
			return
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return
		}
		pepper = strings.TrimSpace(string(data))
	})
	return pepper
}
