package providers

import (
	"github.com/samber/do/v2"

	"github.com/myscribe/myscribe-server/internal/bot"
	"github.com/myscribe/myscribe-server/internal/logger"
	"github.com/myscribe/myscribe-server/internal/service"
)

// ProvideFlow provides the conversation flow. The transport-specific
// bot.Sender must be registered by the entrypoint before the flow is
// invoked.
func ProvideFlow(i do.Injector) (*bot.Flow, error) {
	profile := do.MustInvoke[*service.ProfileService](i)
	resolver := do.MustInvoke[*service.ResolverService](i)
	shelf := do.MustInvoke[*service.ShelfService](i)
	progress := do.MustInvoke[*service.ProgressService](i)
	calibration := do.MustInvoke[*service.CalibrationService](i)
	sender := do.MustInvoke[bot.Sender](i)
	log := do.MustInvoke[*logger.Logger](i)

	return bot.NewFlow(profile, resolver, shelf, progress, calibration, sender, log.Logger), nil
}

// ProvideRouter provides the dispatcher over the flow.
func ProvideRouter(i do.Injector) (*bot.Router, error) {
	flow := do.MustInvoke[*bot.Flow](i)
	log := do.MustInvoke[*logger.Logger](i)
	return bot.NewRouter(flow, log.Logger), nil
}
