//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"
	"quranbot/internal"
	"quranbot/internal/controllers"
	"quranbot/internal/providers"
	"quranbot/internal/quran"
	"quranbot/internal/services"
	"quranbot/internal/state"
	"quranbot/internal/structures"
	"quranbot/internal/twitter"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,

		quran.NewClient,
		twitter.NewPublisher,
		state.NewFileManager,
		services.NewPostingService,
		services.NewScheduler,
		controllers.NewHealthController,
		internal.NewApp,
	)

	return nil, nil
}
