package api

import (
	"time"

	models "AstroFeed/internal/domain/models"
	domrepo "AstroFeed/internal/domain/repository"
	"AstroFeed/internal/usecase"
	xhttp "AstroFeed/pkg/http"
	xlogger "AstroFeed/pkg/logger"
	"AstroFeed/pkg/util"

	"github.com/labstack/echo/v4"
)

// FeedsHandler serves the feed read API and on-demand computation.
type FeedsHandler struct {
	logger   *xlogger.Logger
	store    domrepo.FeedStore
	gen      *usecase.TransitGenerator
	observer models.Observer
	hub      *FeedHub
}

func NewFeedsHandler(logger *xlogger.Logger, store domrepo.FeedStore, gen *usecase.TransitGenerator, observer models.Observer, hub *FeedHub) *FeedsHandler {
	return &FeedsHandler{
		logger:   logger,
		store:    store,
		gen:      gen,
		observer: observer,
		hub:      hub,
	}
}

func (h *FeedsHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/feed", h.Feed)
	g.GET("/transits/:body", h.Transit)
	g.GET("/aspects", h.Aspects)
	g.GET("/houses", h.Houses)
	g.POST("/compute", h.Compute)

	if h.hub != nil {
		e.GET("/ws/feed", h.hub.Serve)
	}
}

// Feed returns the latest stored feed for a mode (default "now").
func (h *FeedsHandler) Feed(c echo.Context) error {
	mode := c.QueryParam("mode")
	if mode == "" {
		mode = "now"
	}
	switch mode {
	case "now", "daily", "weekly":
	default:
		return xhttp.BadRequestResponse(c, []xhttp.ValidationError{{
			Code:    "ERR_ONEOF",
			Field:   "mode",
			Message: "mode must be one of: now, daily, weekly",
		}})
	}

	feed, err := h.store.Latest(c.Request().Context(), mode)
	if err != nil {
		return xhttp.NotFoundResponse(c, "no feed generated yet for mode "+mode)
	}
	return xhttp.SuccessResponse(c, feed)
}

// Transit returns one body's record from the latest "now" feed.
func (h *FeedsHandler) Transit(c echo.Context) error {
	body := c.Param("body")

	feed, err := h.store.Latest(c.Request().Context(), "now")
	if err != nil {
		return xhttp.NotFoundResponse(c, "no feed generated yet")
	}

	t, ok := feed.Transits[body]
	if !ok {
		return xhttp.NotFoundResponse(c, "body not in feed: "+body)
	}
	return xhttp.SuccessResponse(c, t)
}

// Aspects returns the aspect list from the latest "now" feed,
// optionally filtered by participant body.
func (h *FeedsHandler) Aspects(c echo.Context) error {
	feed, err := h.store.Latest(c.Request().Context(), "now")
	if err != nil {
		return xhttp.NotFoundResponse(c, "no feed generated yet")
	}

	if body := c.QueryParam("body"); body != "" {
		filtered := feed.Aspects[:0:0]
		for _, a := range feed.Aspects {
			if a.BodyA == body || a.BodyB == body {
				filtered = append(filtered, a)
			}
		}
		return xhttp.SuccessResponse(c, filtered)
	}
	return xhttp.SuccessResponse(c, feed.Aspects)
}

// Houses computes cusps for an arbitrary timestamp and observer.
func (h *FeedsHandler) Houses(c echo.Context) error {
	req := &models.HousesRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	ts, ok := util.ParseTime(req.Timestamp)
	if !ok {
		return xhttp.BadRequestResponse(c, []xhttp.ValidationError{{
			Code:    "ERR_FORMAT",
			Field:   "ts",
			Message: "ts must be RFC3339 or unix seconds",
		}})
	}

	observer := h.observer
	if req.Lat != nil {
		observer.Lat = *req.Lat
	}
	if req.Lon != nil {
		observer.Lon = *req.Lon
	}

	res := usecase.ComputeHouses(ts, observer, req.System)
	return xhttp.SuccessResponse(c, res)
}

// Compute generates a feed on demand for the requested timestamp. The
// result is returned but not stored.
func (h *FeedsHandler) Compute(c echo.Context) error {
	start := time.Now()
	req := &models.ComputeRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	ts, ok := util.ParseTime(req.Timestamp)
	if !ok {
		return xhttp.BadRequestResponse(c, []xhttp.ValidationError{{
			Code:    "ERR_FORMAT",
			Field:   "timestamp",
			Message: "timestamp must be RFC3339 or unix seconds",
		}})
	}

	observer := h.observer
	if req.Lat != nil {
		observer.Lat = *req.Lat
	}
	if req.Lon != nil {
		observer.Lon = *req.Lon
	}

	feed, err := h.gen.Generate(c.Request().Context(), "now", ts, usecase.GeneratorOptions{
		Observer:  observer,
		Harmonics: req.Harmonics,
		Oracle:    req.Oracle,
		Bodies:    req.Bodies,
	})
	if err != nil {
		h.logger.Error("compute usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}

	h.logger.Info("on-demand compute",
		xlogger.Time("timestamp", ts),
		xlogger.Duration("duration_ms", time.Since(start)),
	)
	return xhttp.SuccessResponse(c, feed)
}
