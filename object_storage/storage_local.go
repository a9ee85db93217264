package object_storage

import (
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

type localStorage struct {
	root string
}

func NewLocalStorage(root string) localStorage {
	return localStorage{root: root}
}

func (l localStorage) GetUrl(filename string) string {
	return filepath.Join(l.root, filename)
}

// Upload writes to a temporary file in the target directory and renames it
// into place, so readers see either the old file or the complete new one.
func (l localStorage) Upload(filename string, content io.ReadCloser) error {
	defer content.Close()

	target := l.GetUrl(filename)
	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, "creating %s", dir)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(target)+".*")
	if err != nil {
		return errors.Wrapf(err, "writing %s", target)
	}
	tmpName := tmp.Name()
	cleanup := func() {
		tmp.Close()
		os.Remove(tmpName)
	}
	if _, err := io.Copy(tmp, content); err != nil {
		cleanup()
		return errors.Wrapf(err, "writing %s", target)
	}
	if err := tmp.Chmod(0644); err != nil {
		cleanup()
		return errors.Wrapf(err, "writing %s", target)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.Wrapf(err, "writing %s", target)
	}
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return errors.Wrapf(err, "writing %s", target)
	}
	return nil
}
