//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"TradeDeck/pkg/config"
	"TradeDeck/pkg/server"
)

// InitializeApp wires the whole application graph from configuration.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,
		ProvideCache,
		ProvideTradeSource,
		ProvideStatusSource,
		ProvideSignalSource,
		ProvideAggregator,
		ProvideRefresher,
		ProvideBotClient,
		ProvideAdvisorClient,
		ProvideLimiter,
		ProvideHandler,
		ProvideHTTPServer,
		ProvideApp,
	)
	return nil, nil
}
