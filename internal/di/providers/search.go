package providers

import (
	"context"
	"path/filepath"

	"github.com/samber/do/v2"

	"github.com/myscribe/myscribe-server/internal/config"
	"github.com/myscribe/myscribe-server/internal/logger"
	"github.com/myscribe/myscribe-server/internal/search"
)

// SearchIndexHandle wraps the search index with shutdown capability.
type SearchIndexHandle struct {
	*search.SearchIndex
}

// Shutdown implements do.Shutdownable.
func (h *SearchIndexHandle) Shutdown() error {
	return h.SearchIndex.Close()
}

// ProvideSearchIndex provides the bleve book index and wires it into the
// store so saved books are indexed as they land.
func ProvideSearchIndex(i do.Injector) (*SearchIndexHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)

	index, err := search.NewSearchIndex(search.Options{
		DataPath: filepath.Join(cfg.Data.BasePath, "search"),
		Logger:   log.Logger,
	})
	if err != nil {
		return nil, err
	}

	storeHandle.SetSearchIndexer(index)

	// A rebuilt index starts empty; backfill it from the store.
	count, err := index.DocumentCount()
	if err == nil && count == 0 {
		if err := reindexBooks(storeHandle, index); err != nil {
			log.Warn("Search index backfill failed", "error", err)
		}
	}

	return &SearchIndexHandle{SearchIndex: index}, nil
}

func reindexBooks(h *StoreHandle, index *search.SearchIndex) error {
	ctx := context.Background()
	books, err := h.ListBooks(ctx)
	if err != nil {
		return err
	}
	if len(books) == 0 {
		return nil
	}
	return index.IndexBooks(ctx, books)
}
