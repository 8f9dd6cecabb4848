package di

import (
	"fmt"
	"io"
	"time"

	"AstroFeed/internal/domain/models"
	"AstroFeed/internal/domain/repository"
	"AstroFeed/internal/handler/api"
	internalrepo "AstroFeed/internal/repository"
	"AstroFeed/internal/service/horizons"
	"AstroFeed/internal/service/miriade"
	"AstroFeed/internal/service/ratelimit"
	"AstroFeed/internal/service/stars"
	"AstroFeed/internal/usecase"
	pkgcache "AstroFeed/pkg/cache"
	"AstroFeed/pkg/config"
	xhttp "AstroFeed/pkg/http"
	pkgkafka "AstroFeed/pkg/kafka"
	applogger "AstroFeed/pkg/logger"
	"AstroFeed/pkg/metrics"
	"AstroFeed/pkg/server"
)

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	return applogger.New(&applogger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideCache builds the ephemeris cache per config. The memory
// backend needs no external service and is the default.
func ProvideCache(cfg *config.Config) (pkgcache.Service, error) {
	switch cfg.Cache.Type {
	case "memory":
		return pkgcache.NewMemoryCache(), nil
	case "redis":
		return pkgcache.NewRedisCache(
			pkgcache.WithRedisAddr(fmt.Sprintf("%s:%d", cfg.Cache.Redis.Host, cfg.Cache.Redis.Port)),
			pkgcache.WithRedisPassword(cfg.Cache.Redis.Password),
			pkgcache.WithRedisDB(cfg.Cache.Redis.DB),
			pkgcache.WithRedisPrefix(cfg.Cache.Prefix),
		)
	case "layered":
		redisCache, err := pkgcache.NewRedisCache(
			pkgcache.WithRedisAddr(fmt.Sprintf("%s:%d", cfg.Cache.Redis.Host, cfg.Cache.Redis.Port)),
			pkgcache.WithRedisPassword(cfg.Cache.Redis.Password),
			pkgcache.WithRedisDB(cfg.Cache.Redis.DB),
			pkgcache.WithRedisPrefix(cfg.Cache.Prefix),
		)
		if err != nil {
			return nil, err
		}
		return pkgcache.NewLayeredCache(redisCache), nil
	default:
		return nil, fmt.Errorf("unknown cache type %q", cfg.Cache.Type)
	}
}

// ProvideSources builds the ephemeris chain in configured priority
// order.
func ProvideSources(cfg *config.Config) ([]repository.EphemerisSource, error) {
	available := map[string]repository.EphemerisSource{
		"horizons":    horizons.New(cfg.Providers.Horizons.BaseURL, cfg.Providers.Horizons.Timeout),
		"miriade":     miriade.New(cfg.Providers.Miriade.BaseURL, cfg.Providers.Miriade.Timeout),
		"fixed_stars": stars.NewProvider(),
	}

	var chain []repository.EphemerisSource
	for _, name := range cfg.Providers.Order {
		src, ok := available[name]
		if !ok {
			return nil, fmt.Errorf("unknown provider %q in providers.order", name)
		}
		chain = append(chain, src)
	}
	return chain, nil
}

// ProvideResolver assembles the rate-limited, cached resolver.
func ProvideResolver(
	sources []repository.EphemerisSource,
	c pkgcache.Service,
	m repository.Metrics,
	log *applogger.Logger,
	cfg *config.Config,
) *usecase.Resolver {
	rates := map[string]usecase.RateSpec{
		"horizons": {Capacity: cfg.Providers.Horizons.RateCapacity, RefillSec: cfg.Providers.Horizons.RateRefill},
		"miriade":  {Capacity: cfg.Providers.Miriade.RateCapacity, RefillSec: cfg.Providers.Miriade.RateRefill},
	}
	return usecase.NewResolver(sources, ratelimit.New(), c, cfg.Cache.TTL, rates, m, log)
}

// ProvideOracle loads narration tables, disabled entirely when the
// feature is off.
func ProvideOracle(cfg *config.Config, log *applogger.Logger) *usecase.Oracle {
	if !cfg.Feeds.Oracle {
		return nil
	}
	return usecase.NewOracle(cfg.Feeds.OracleDir, log)
}

// ProvideGenerator creates the transit generator.
func ProvideGenerator(r *usecase.Resolver, o *usecase.Oracle, m repository.Metrics, log *applogger.Logger) *usecase.TransitGenerator {
	return usecase.NewTransitGenerator(r, o, m, log)
}

// ProvideWeeklyPipeline creates the weekly worker pool.
func ProvideWeeklyPipeline(g *usecase.TransitGenerator, m repository.Metrics, log *applogger.Logger, cfg *config.Config) *usecase.WeeklyPipeline {
	return usecase.NewWeeklyPipeline(g, cfg.Feeds.WeeklyWorkers, m, log)
}

// ProvideFeedStore creates the JSON file store.
func ProvideFeedStore(cfg *config.Config) (repository.FeedStore, error) {
	return internalrepo.NewFeedFileStore(cfg.Feeds.OutputDir)
}

// ProvideKafkaProducer creates the Kafka producer, or nil when Kafka is
// disabled.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if !cfg.Kafka.Enabled {
		return nil, nil
	}
	return pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithMaxAttempts(cfg.Kafka.MaxAttempts),
		pkgkafka.WithWriteTimeout(cfg.Kafka.WriteTimeout),
	)
}

// ProvideFeedPublisher wraps the producer, or returns nil when Kafka is
// disabled.
func ProvideFeedPublisher(producer *pkgkafka.Producer, cfg *config.Config) repository.FeedPublisher {
	if producer == nil {
		return nil
	}
	return internalrepo.NewKafkaFeedPublisher(producer, cfg.Kafka.Topic)
}

// ProvideFeedHub creates the websocket hub.
func ProvideFeedHub(log *applogger.Logger) *api.FeedHub {
	return api.NewFeedHub(log)
}

// ProvideHandler creates the HTTP route handler.
func ProvideHandler(
	log *applogger.Logger,
	store repository.FeedStore,
	gen *usecase.TransitGenerator,
	hub *api.FeedHub,
	cfg *config.Config,
) xhttp.Handler {
	observer := models.Observer{Lat: cfg.Observer.Lat, Lon: cfg.Observer.Lon}
	return api.NewFeedsHandler(log, store, gen, observer, hub)
}

// ProvideApp assembles the application server.
func ProvideApp(
	cfg *config.Config,
	log *applogger.Logger,
	gen *usecase.TransitGenerator,
	weekly *usecase.WeeklyPipeline,
	store repository.FeedStore,
	publisher repository.FeedPublisher,
	hub *api.FeedHub,
	handler xhttp.Handler,
	c pkgcache.Service,
	producer *pkgkafka.Producer,
) *server.App {
	closers := []io.Closer{c}
	if producer != nil {
		closers = append(closers, producer)

		// Ship aggregated warn/error batches alongside the feeds.
		log.AddCollector(&applogger.CollectionConfig{
			TimeInterval:   30 * time.Second,
			CountThreshold: 64,
			Topic:          cfg.Kafka.LogsTopic,
			Publisher:      producer,
		})
	}
	return server.New(cfg, log, gen, weekly, store, publisher, hub, handler, closers...)
}
