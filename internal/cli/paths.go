package cli

import (
	"os"
	"path/filepath"
)

// cacheDir returns the directory for the local render cache, honoring
// XDG_CACHE_HOME and falling back to the platform user cache directory.
func cacheDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, appName), nil
}
