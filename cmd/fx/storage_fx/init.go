package storage_fx

import (
	"go.uber.org/fx"

	"tripdeck/internal/config"
	"tripdeck/internal/services"
	"tripdeck/internal/storage"
)

var Module = fx.Provide(
	provideFileStore, provideObjectStore, services.NewImageService)

func provideFileStore(cfg *config.Config) (*storage.FileStore, error) {
	return storage.NewFileStore(cfg)
}

func provideObjectStore(fs *storage.FileStore) storage.ObjectStore {
	return fs
}
