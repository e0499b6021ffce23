// Package di provides dependency injection configuration for the MyScribe server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/myscribe/myscribe-server/internal/config"
	"github.com/myscribe/myscribe-server/internal/di/providers"
	"github.com/myscribe/myscribe-server/internal/logger"
	"github.com/myscribe/myscribe-server/internal/metadata/googlebooks"
	"github.com/myscribe/myscribe-server/internal/metadata/wikipedia"
	"github.com/myscribe/myscribe-server/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)

	// Storage layer
	do.Provide(injector, providers.ProvideStore)
	do.Provide(injector, providers.ProvideSearchCache)
	do.Provide(injector, providers.ProvideSearchIndex)

	// Metadata layer
	do.Provide(injector, providers.ProvideCatalogClient)
	do.Provide(injector, providers.ProvideWikipediaClient)

	// Business services
	do.Provide(injector, providers.ProvideProfileService)
	do.Provide(injector, providers.ProvideResolverService)
	do.Provide(injector, providers.ProvideShelfService)
	do.Provide(injector, providers.ProvideProgressService)
	do.Provide(injector, providers.ProvideCalibrationService)

	// Conversation layer
	do.Provide(injector, providers.ProvideFlow)
	do.Provide(injector, providers.ProvideRouter)

	// Workers
	do.Provide(injector, providers.ProvideBackupJob)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)
	do.Provide(injector, providers.ProvideMDNSService)

	return injector
}

// Bootstrap initializes all shared services. This triggers lazy
// initialization of everything the entrypoints rely on except the
// conversation layer, which needs a transport registered first.
func Bootstrap(injector *do.RootScope) error {
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*providers.CacheHandle](injector)
	_ = do.MustInvoke[*providers.SearchIndexHandle](injector)
	_ = do.MustInvoke[*googlebooks.Client](injector)
	_ = do.MustInvoke[*wikipedia.Client](injector)

	_ = do.MustInvoke[*service.ProfileService](injector)
	_ = do.MustInvoke[*service.ResolverService](injector)
	_ = do.MustInvoke[*service.ShelfService](injector)
	_ = do.MustInvoke[*service.ProgressService](injector)
	_ = do.MustInvoke[*service.CalibrationService](injector)

	_ = do.MustInvoke[*providers.BackupJob](injector)

	return nil
}
