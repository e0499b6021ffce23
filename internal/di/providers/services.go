package providers

import (
	"github.com/samber/do/v2"

	"github.com/myscribe/myscribe-server/internal/config"
	"github.com/myscribe/myscribe-server/internal/logger"
	"github.com/myscribe/myscribe-server/internal/metadata/googlebooks"
	"github.com/myscribe/myscribe-server/internal/metadata/wikipedia"
	"github.com/myscribe/myscribe-server/internal/service"
)

// ProvideProfileService provides the user profile service.
func ProvideProfileService(i do.Injector) (*service.ProfileService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)
	return service.NewProfileService(storeHandle.Store, log.Logger), nil
}

// ProvideResolverService provides the book resolver.
func ProvideResolverService(i do.Injector) (*service.ResolverService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	cacheHandle := do.MustInvoke[*CacheHandle](i)
	catalog := do.MustInvoke[*googlebooks.Client](i)
	wiki := do.MustInvoke[*wikipedia.Client](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewResolverService(
		storeHandle.Store,
		catalog,
		wiki,
		cacheHandle.Cache,
		cfg.Catalog.MaxResults,
		log.Logger,
	), nil
}

// ProvideShelfService provides the shelf service.
func ProvideShelfService(i do.Injector) (*service.ShelfService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)
	return service.NewShelfService(storeHandle.Store, log.Logger), nil
}

// ProvideProgressService provides the reading progress service.
func ProvideProgressService(i do.Injector) (*service.ProgressService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)
	return service.NewProgressService(storeHandle.Store, log.Logger), nil
}

// ProvideCalibrationService provides the reading speed calibration service.
func ProvideCalibrationService(i do.Injector) (*service.CalibrationService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)
	return service.NewCalibrationService(storeHandle.Store, log.Logger), nil
}
