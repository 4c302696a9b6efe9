package storage

import (
	"fmt"

	"lingo-quiz/internal/config"
	"lingo-quiz/internal/domain"
)

const (
	ProviderLocal = "local"
	ProviderMinio = "minio"
)

// NewFileStorage builds the provider selected by cfg.Provider. An empty provider means local.
func NewFileStorage(cfg config.StorageConfig) (domain.FileStorage, error) {
	switch cfg.Provider {
	case "", ProviderLocal:
		return NewLocalStorage(cfg.Local), nil
	case ProviderMinio:
		return NewMinioStorage(cfg.Minio)
	default:
		return nil, fmt.Errorf("unknown storage provider %q", cfg.Provider)
	}
}
