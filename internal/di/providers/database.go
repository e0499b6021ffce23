package providers

import (
	"path/filepath"

	"github.com/samber/do/v2"

	"github.com/myscribe/myscribe-server/internal/config"
	"github.com/myscribe/myscribe-server/internal/logger"
	"github.com/myscribe/myscribe-server/internal/metadata/cache"
	"github.com/myscribe/myscribe-server/internal/store/sqlite"
)

// StoreHandle wraps the store with shutdown capability.
type StoreHandle struct {
	*sqlite.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore provides the sqlite store.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	dbPath := filepath.Join(cfg.Data.BasePath, "myscribe.db")
	db, err := sqlite.Open(dbPath, log.Logger)
	if err != nil {
		return nil, err
	}

	log.Info("Database initialized", "path", dbPath)
	return &StoreHandle{Store: db}, nil
}

// CacheHandle wraps the metadata cache with shutdown capability.
type CacheHandle struct {
	*cache.Cache
}

// Shutdown implements do.Shutdownable.
func (h *CacheHandle) Shutdown() error {
	return h.Close()
}

// ProvideSearchCache provides the catalog search result cache.
func ProvideSearchCache(i do.Injector) (*CacheHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	cachePath := filepath.Join(cfg.Data.BasePath, "cache")
	c, err := cache.Open(cachePath, log.Logger)
	if err != nil {
		return nil, err
	}

	log.Info("Metadata cache initialized", "path", cachePath)
	return &CacheHandle{Cache: c}, nil
}
