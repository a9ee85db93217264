package object_storage

import (
	"io"
)

// StorageInterface is where a rendered dashboard gets published.
type StorageInterface interface {
	Upload(filename string, content io.ReadCloser) error
	GetUrl(filename string) string
}
