package sink

import (
	"os"
	"path/filepath"

	"github.com/echoplot/echoplot/pkg/errors"
)

// WriteFile writes data to dir/name and returns the full path. dir must be an
// existing, writable directory. On failure nothing is left behind.
func WriteFile(dir, name string, data []byte) (string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeIO, err, "output directory %s", dir)
	}
	if !info.IsDir() {
		return "", errors.New(errors.ErrCodeIO, "output path %s is not a directory", dir)
	}

	path := filepath.Join(dir, name)
	tmp, err := os.CreateTemp(dir, "."+name+".*.tmp")
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeIO, err, "create %s", path)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", errors.Wrap(errors.ErrCodeIO, err, "write %s", path)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", errors.Wrap(errors.ErrCodeIO, err, "write %s", path)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return "", errors.Wrap(errors.ErrCodeIO, err, "write %s", path)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return "", errors.Wrap(errors.ErrCodeIO, err, "write %s", path)
	}
	return path, nil
}
