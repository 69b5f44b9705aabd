package platform

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// DownloadsDir returns the user's standard Downloads directory.
func DownloadsDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "resolve user home directory failed")
	}
	return filepath.Join(home, "Downloads"), nil
}
