package factory

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/stoik/phishing-detector/internal/adapters/storage"
	"github.com/stoik/phishing-detector/internal/config"
)

// StorageFactory creates the submission store based on configuration
type StorageFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewStorageFactory creates a new storage factory
func NewStorageFactory(cfg *config.Config, logger *zap.Logger) *StorageFactory {
	return &StorageFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateStore opens the configured database and initializes its schema
func (f *StorageFactory) CreateStore() (*storage.SQLStore, error) {
	storageCfg := f.cfg.GetStorage()

	var (
		store *storage.SQLStore
		err   error
	)
	switch storageCfg.Type {
	case "sqlite":
		if err := os.MkdirAll(filepath.Dir(storageCfg.SQLitePath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create SQLite directory: %w", err)
		}
		store, err = storage.NewSQLiteStore(storageCfg.SQLitePath)
	case "postgres":
		store, err = storage.NewPostgresStore(storageCfg.PostgresDSN)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", storageCfg.Type)
	}
	if err != nil {
		return nil, err
	}

	if err := store.InitSchema(); err != nil {
		store.Close()
		return nil, err
	}

	f.logger.Info("Storage initialized", zap.String("type", storageCfg.Type))
	return store, nil
}
