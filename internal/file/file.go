package file

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// ExpandPath expands a path to avoid `~`.
func ExpandPath(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "getting user home dir")
	}
	return filepath.Join(home, path[2:]), nil
}

// CreateDirectoryIfNotExist creates the given directory and any missing parents.
func CreateDirectoryIfNotExist(path string) error {
	info, err := os.Stat(path)
	if err == nil {
		if !info.IsDir() {
			return errors.Errorf("path exists but is not a directory (%s)", path)
		}
		return nil
	}
	if !os.IsNotExist(err) {
		return errors.Wrap(err, "getting os stats")
	}
	if err := os.MkdirAll(path, 0755); err != nil {
		return errors.Wrap(err, "creating directory")
	}
	return nil
}
