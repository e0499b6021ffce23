package providers

import (
	"github.com/samber/do/v2"

	"github.com/myscribe/myscribe-server/internal/config"
	"github.com/myscribe/myscribe-server/internal/logger"
	"github.com/myscribe/myscribe-server/internal/metadata/googlebooks"
	"github.com/myscribe/myscribe-server/internal/metadata/wikipedia"
)

// ProvideCatalogClient provides the Google Books client.
func ProvideCatalogClient(i do.Injector) (*googlebooks.Client, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	return googlebooks.New(log.Logger, cfg.Catalog.GoogleBooksAPIKey), nil
}

// ProvideWikipediaClient provides the Wikipedia enrichment client. The
// client is disabled when no Custom Search credentials are configured.
func ProvideWikipediaClient(i do.Injector) (*wikipedia.Client, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	client := wikipedia.New(log.Logger, cfg.Catalog.SearchEngineID, cfg.Catalog.SearchEngineKey)
	if !client.Enabled() {
		log.Info("Wikipedia enrichment disabled, no Custom Search credentials")
	}
	return client, nil
}
