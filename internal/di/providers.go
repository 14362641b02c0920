package di

import (
	"TradeDeck/internal/domain/repository"
	apihandler "TradeDeck/internal/handler/api"
	repoimpl "TradeDeck/internal/repository"
	"TradeDeck/internal/service/advisor"
	"TradeDeck/internal/service/botapi"
	"TradeDeck/internal/service/ratelimit"
	"TradeDeck/internal/usecase"
	"TradeDeck/pkg/cache"
	"TradeDeck/pkg/config"
	xhttp "TradeDeck/pkg/http"
	"TradeDeck/pkg/logger"
	"TradeDeck/pkg/metrics"
	"TradeDeck/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*logger.Logger, error) {
	return logger.New(&logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
}

// ProvideMetrics creates the Prometheus recorder.
func ProvideMetrics() *metrics.Recorder {
	return metrics.New()
}

// ProvideCache selects the snapshot cache backend. Redis when enabled,
// in-process memory otherwise.
func ProvideCache(cfg *config.Config) (cache.Service, error) {
	if cfg.Cache.Redis.Enabled {
		return cache.NewRedisCache(
			cache.WithRedisHost(cfg.Cache.Redis.Host),
			cache.WithRedisPort(cfg.Cache.Redis.Port),
			cache.WithRedisPassword(cfg.Cache.Redis.Password),
			cache.WithRedisDB(cfg.Cache.Redis.DB),
		)
	}
	return cache.NewMemoryCache(), nil
}

// newSource binds one configured feed to its retrieval backend.
func newSource(sc config.SourceConfig, client *xhttp.Client) interface {
	repository.TradeSource
	repository.StatusSource
	repository.SignalSource
} {
	if sc.Type == "static" {
		return repoimpl.NewStaticSource(sc.Path)
	}
	return repoimpl.NewAPISource(client, sc.URL)
}

// ProvideTradeSource creates the trade feed source.
func ProvideTradeSource(cfg *config.Config) repository.TradeSource {
	return newSource(cfg.Sources.Trades, xhttp.NewClient(xhttp.WithTimeout(cfg.Sources.Timeout)))
}

// ProvideStatusSource creates the status feed source.
func ProvideStatusSource(cfg *config.Config) repository.StatusSource {
	return newSource(cfg.Sources.Statuses, xhttp.NewClient(xhttp.WithTimeout(cfg.Sources.Timeout)))
}

// ProvideSignalSource creates the signal feed source.
func ProvideSignalSource(cfg *config.Config) repository.SignalSource {
	return newSource(cfg.Sources.Signals, xhttp.NewClient(xhttp.WithTimeout(cfg.Sources.Timeout)))
}

// ProvideAggregator wires the snapshot aggregator.
func ProvideAggregator(
	cfg *config.Config,
	trades repository.TradeSource,
	statuses repository.StatusSource,
	signals repository.SignalSource,
	rec *metrics.Recorder,
	log *logger.Logger,
) *usecase.DashboardAggregator {
	return usecase.NewDashboardAggregator(trades, statuses, signals, cfg.Refresh.Subsystems, rec, log)
}

// ProvideRefresher wires the periodic refresh loop.
func ProvideRefresher(cfg *config.Config, agg *usecase.DashboardAggregator, c cache.Service, log *logger.Logger) *usecase.Refresher {
	return usecase.NewRefresher(agg, c, cfg.Refresh.Interval, cfg.Cache.SnapshotTTL, log)
}

// ProvideBotClient creates the bot control client.
func ProvideBotClient(cfg *config.Config) *botapi.Client {
	return botapi.New(cfg.Bot.BaseURL, cfg.Bot.Timeout)
}

// ProvideAdvisorClient creates the AI advisor client.
func ProvideAdvisorClient(cfg *config.Config) *advisor.Client {
	return advisor.New(cfg.Advisor.URL, cfg.Advisor.Timeout)
}

// ProvideLimiter creates the control rate limiter.
func ProvideLimiter() *ratelimit.Limiter {
	return ratelimit.New()
}

// ProvideHandler creates the API handler.
func ProvideHandler(
	cfg *config.Config,
	agg *usecase.DashboardAggregator,
	c cache.Service,
	bot *botapi.Client,
	adv *advisor.Client,
	limiter *ratelimit.Limiter,
	log *logger.Logger,
) xhttp.Handler {
	return apihandler.NewDashboardHandler(agg, c, cfg.Cache.SnapshotTTL, bot, adv, limiter, log)
}

// ProvideHTTPServer creates the HTTP server.
func ProvideHTTPServer(cfg *config.Config, log *logger.Logger, handler xhttp.Handler) *xhttp.Server {
	opts := []xhttp.ServerOption{
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
	}
	if !cfg.Metrics.Enabled {
		opts = append(opts, xhttp.WithMetricsPath(""))
	} else if cfg.Metrics.Path != "" {
		opts = append(opts, xhttp.WithMetricsPath(cfg.Metrics.Path))
	}
	return xhttp.NewServer(log, handler, opts...)
}

// ProvideApp assembles the application.
func ProvideApp(
	cfg *config.Config,
	log *logger.Logger,
	refresher *usecase.Refresher,
	httpServer *xhttp.Server,
	c cache.Service,
) *server.App {
	return server.NewApp(cfg, log, refresher, httpServer, c)
}
