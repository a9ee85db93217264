package object_storage

import (
	"fmt"

	"github.com/Tureright/performance-test-k6/config"
)

const (
	localStorageProvider = "local"
	nexusStorageProvider = "nexus"
	gcpStorageProvider   = "gcp"
)

var allStorageProviders = []string{localStorageProvider, nexusStorageProvider, gcpStorageProvider}

func NewStorage(c *config.DashboardConfig) (StorageInterface, error) {
	storageProvider := c.ObjectStorage.Provider
	if storageProvider == "" {
		storageProvider = localStorageProvider
	}
	switch storageProvider {
	case localStorageProvider:
		return NewLocalStorage(c.ResultsDir), nil
	case nexusStorageProvider:
		return NewNexusStorage(c), nil
	case gcpStorageProvider:
		gs, err := NewGcpStorage(c)
		if err != nil {
			return nil, err
		}
		return gs, nil
	default:
		return nil, fmt.Errorf("Unknown storage type %s, valid storage types are %v", storageProvider, allStorageProviders)
	}
}
