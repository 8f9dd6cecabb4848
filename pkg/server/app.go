package server

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"AstroFeed/internal/domain/models"
	domrepo "AstroFeed/internal/domain/repository"
	"AstroFeed/internal/handler/api"
	"AstroFeed/internal/usecase"
	"AstroFeed/pkg/config"
	xhttp "AstroFeed/pkg/http"
	applogger "AstroFeed/pkg/logger"
	"AstroFeed/pkg/util"
)

// App owns the service lifecycle: the feed scheduler, the HTTP API,
// the websocket hub, and graceful shutdown of infrastructure clients.
type App struct {
	cfg       *config.Config
	log       *applogger.Logger
	gen       *usecase.TransitGenerator
	weekly    *usecase.WeeklyPipeline
	store     domrepo.FeedStore
	publisher domrepo.FeedPublisher // nil when Kafka is disabled
	hub       *api.FeedHub
	handler   xhttp.Handler
	server    *xhttp.Server
	closers   []io.Closer

	lastDaily  time.Time
	lastWeekly time.Time
}

// New creates the application. publisher may be nil; closers are shut
// down last, in order.
func New(
	cfg *config.Config,
	log *applogger.Logger,
	gen *usecase.TransitGenerator,
	weekly *usecase.WeeklyPipeline,
	store domrepo.FeedStore,
	publisher domrepo.FeedPublisher,
	hub *api.FeedHub,
	handler xhttp.Handler,
	closers ...io.Closer,
) *App {
	return &App{
		cfg:       cfg,
		log:       log,
		gen:       gen,
		weekly:    weekly,
		store:     store,
		publisher: publisher,
		hub:       hub,
		handler:   handler,
		closers:   closers,
	}
}

func (a *App) observer() models.Observer {
	return models.Observer{Lat: a.cfg.Observer.Lat, Lon: a.cfg.Observer.Lon}
}

func (a *App) options() usecase.GeneratorOptions {
	return usecase.GeneratorOptions{
		Observer:  a.observer(),
		Harmonics: a.cfg.Feeds.Harmonics,
		Oracle:    a.cfg.Feeds.Oracle,
	}
}

// Run starts the scheduler and HTTP server and blocks until a shutdown
// signal arrives.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a.server = xhttp.NewServer(a.handler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
		xhttp.WithLogger(a.log),
	)
	if err := a.server.Start(); err != nil {
		return err
	}

	go a.schedule(ctx)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.log.Info("shutdown signal received")
	cancel()
	return a.shutdown()
}

// RunOnce generates, stores, and publishes a single feed (or a week of
// them) and returns. Used by the CLI one-shot modes.
func (a *App) RunOnce(ctx context.Context, mode string, ts time.Time) error {
	if mode == "weekly" {
		return a.generateWeek(ctx, ts)
	}
	_, err := a.dispatch(ctx, mode, util.AlignForMode(ts, mode))
	return err
}

// schedule drives periodic regeneration. The "now" feed refreshes every
// interval; daily and weekly refresh when their period rolls over.
func (a *App) schedule(ctx context.Context) {
	a.tick(ctx, time.Now().UTC())

	ticker := time.NewTicker(a.cfg.Feeds.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case t := <-ticker.C:
			a.tick(ctx, t.UTC())
		}
	}
}

func (a *App) tick(ctx context.Context, now time.Time) {
	if _, err := a.dispatch(ctx, "now", util.AlignForMode(now, "now")); err != nil {
		a.log.Error("now feed failed", applogger.Error(err))
	}

	day := util.StartOfDay(now)
	if !day.Equal(a.lastDaily) {
		if _, err := a.dispatch(ctx, "daily", day); err != nil {
			a.log.Error("daily feed failed", applogger.Error(err))
		} else {
			a.lastDaily = day
		}
	}

	week := util.StartOfWeek(now)
	if !week.Equal(a.lastWeekly) {
		if err := a.generateWeek(ctx, now); err != nil {
			a.log.Error("weekly feeds failed", applogger.Error(err))
		} else {
			a.lastWeekly = week
		}
	}
}

// dispatch generates one feed, persists it, publishes it, and pushes it
// to websocket subscribers. Publishing is best-effort.
func (a *App) dispatch(ctx context.Context, mode string, ts time.Time) (*models.Feed, error) {
	feed, err := a.gen.Generate(ctx, mode, ts, a.options())
	if err != nil {
		return nil, err
	}

	path, err := a.store.Save(ctx, feed)
	if err != nil {
		return nil, err
	}
	a.log.Info("feed stored",
		applogger.String("mode", mode),
		applogger.String("path", path),
	)

	if a.publisher != nil {
		if err := a.publisher.Publish(ctx, feed); err != nil {
			a.log.Warn("feed publish failed", applogger.Error(err))
		}
	}
	if a.hub != nil {
		a.hub.Broadcast(feed)
	}
	return feed, nil
}

func (a *App) generateWeek(ctx context.Context, ts time.Time) error {
	feeds, err := a.weekly.Run(ctx, ts, a.options())
	if err != nil {
		return err
	}
	for _, feed := range feeds {
		if _, err := a.store.Save(ctx, feed); err != nil {
			return err
		}
		if a.publisher != nil {
			if err := a.publisher.Publish(ctx, feed); err != nil {
				a.log.Warn("feed publish failed", applogger.Error(err))
			}
		}
	}
	if a.hub != nil && len(feeds) > 0 {
		a.hub.Broadcast(feeds[len(feeds)-1])
	}
	return nil
}

func (a *App) shutdown() error {
	if a.hub != nil {
		a.hub.Close()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if a.server != nil {
		if err := a.server.Stop(shutdownCtx); err != nil {
			a.log.Error("http shutdown error", applogger.Error(err))
		}
	}

	// Flush the log collector before its publisher is closed.
	a.log.RemoveCollector()

	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			a.log.Warn("close error", applogger.Error(err))
		}
	}

	a.log.Info("shutdown complete")
	return nil
}
