//go:build wireinject
// +build wireinject

package di

import (
	"AstroFeed/pkg/config"
	"AstroFeed/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,
		ProvideCache,

		// Ephemeris chain
		ProvideSources,
		ProvideResolver,

		// Feed pipeline
		ProvideOracle,
		ProvideGenerator,
		ProvideWeeklyPipeline,

		// Persistence and transport
		ProvideFeedStore,
		ProvideKafkaProducer,
		ProvideFeedPublisher,

		// HTTP surface
		ProvideFeedHub,
		ProvideHandler,

		ProvideApp,
	)
	return &server.App{}, nil
}
