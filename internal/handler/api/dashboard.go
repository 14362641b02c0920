package api

import (
	"errors"
	"time"

	"github.com/labstack/echo/v4"

	"TradeDeck/internal/domain/models"
	"TradeDeck/internal/market"
	"TradeDeck/internal/service/advisor"
	"TradeDeck/internal/service/botapi"
	"TradeDeck/internal/service/ratelimit"
	"TradeDeck/internal/usecase"
	"TradeDeck/pkg/cache"
	xhttp "TradeDeck/pkg/http"
	"TradeDeck/pkg/logger"
)

// Control actions get a small per-client budget so a stuck UI cannot
// hammer the bot with restarts.
const (
	controlBurst  = 5
	controlRefill = 0.2 // one token every 5s
)

// DashboardHandler serves the dashboard API. Reads come from the cached
// snapshot; bot control and AI signal generation are relayed to their
// backends unmodified.
type DashboardHandler struct {
	agg     *usecase.DashboardAggregator
	cache   cache.Service
	ttl     time.Duration
	bot     *botapi.Client
	advisor *advisor.Client
	limiter *ratelimit.Limiter
	log     *logger.Logger
}

// NewDashboardHandler creates the API handler.
func NewDashboardHandler(
	agg *usecase.DashboardAggregator,
	c cache.Service,
	snapshotTTL time.Duration,
	bot *botapi.Client,
	adv *advisor.Client,
	limiter *ratelimit.Limiter,
	log *logger.Logger,
) *DashboardHandler {
	return &DashboardHandler{
		agg:     agg,
		cache:   c,
		ttl:     snapshotTTL,
		bot:     bot,
		advisor: adv,
		limiter: limiter,
		log:     log,
	}
}

// RegisterRoutes registers API routes on the Echo instance.
func (h *DashboardHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/dashboard-data", h.getDashboardData)
	g.GET("/market-status", h.getMarketStatus)
	g.GET("/health", h.getHealth)
	g.POST("/control", h.postControl)
	g.POST("/kite-callback", h.postKiteCallback)
	g.POST("/ai-signals", h.postAISignals)
}

// getDashboardData serves the latest snapshot. A cache miss (cold start or
// expired TTL) triggers a synchronous refresh so the endpoint always answers.
func (h *DashboardHandler) getDashboardData(c echo.Context) error {
	ctx := c.Request().Context()

	var snap models.DashboardSnapshot
	err := h.cache.Get(ctx, usecase.SnapshotKey, &snap)
	if err == nil {
		return xhttp.SuccessResponse(c, snap)
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		h.log.Warn("snapshot cache read failed", logger.Error(err))
	}

	fresh := h.agg.Refresh(ctx)
	if err := h.cache.Set(ctx, usecase.SnapshotKey, fresh, h.ttl); err != nil {
		h.log.Warn("snapshot cache write failed", logger.Error(err))
	}
	return xhttp.SuccessResponse(c, fresh)
}

func (h *DashboardHandler) getMarketStatus(c echo.Context) error {
	now := time.Now().In(market.Location())
	return xhttp.SuccessResponse(c, map[string]interface{}{
		"market_open": market.IsOpen(now),
		"server_time": now.Format(time.RFC3339),
	})
}

// getHealth reports this service and the bot backend. The bot being down
// degrades the payload, not the status code.
func (h *DashboardHandler) getHealth(c echo.Context) error {
	botOK := true
	if err := h.bot.Health(c.Request().Context()); err != nil {
		botOK = false
		h.log.Debug("bot health probe failed", logger.Error(err))
	}
	return xhttp.SuccessResponse(c, map[string]interface{}{
		"status": "ok",
		"bot_ok": botOK,
	})
}

// ControlRequest is the bot control payload.
type ControlRequest struct {
	Action string `json:"action" validate:"required,oneof=start stop restart"`
}

func (h *DashboardHandler) postControl(c echo.Context) error {
	var req ControlRequest
	if verr := xhttp.ReadAndValidateRequest(c, &req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	if !h.limiter.Allow(c.RealIP(), controlBurst, controlRefill) {
		return xhttp.AppErrorResponse(c, xhttp.TooManyRequestsError("too many control requests"))
	}

	msg, err := h.bot.Control(c.Request().Context(), req.Action)
	if err != nil {
		h.log.Error("bot control failed", logger.String("action", req.Action), logger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.BadGatewayErrorf("bot %s failed", req.Action).WithError(err))
	}

	h.log.Info("bot control dispatched", logger.String("action", req.Action))
	return xhttp.SuccessResponse(c, map[string]string{"message": msg})
}

// KiteCallbackRequest carries the broker auth token to relay.
type KiteCallbackRequest struct {
	RequestToken string `json:"request_token" validate:"required"`
}

func (h *DashboardHandler) postKiteCallback(c echo.Context) error {
	var req KiteCallbackRequest
	if verr := xhttp.ReadAndValidateRequest(c, &req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	msg, err := h.bot.KiteCallback(c.Request().Context(), req.RequestToken)
	if err != nil {
		h.log.Error("kite callback relay failed", logger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.BadGatewayError("kite callback failed").WithError(err))
	}
	return xhttp.SuccessResponse(c, map[string]string{"message": msg})
}

func (h *DashboardHandler) postAISignals(c echo.Context) error {
	report, err := h.advisor.Generate(c.Request().Context())
	if err != nil {
		h.log.Error("advisor generation failed", logger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.BadGatewayError("signal generation failed").WithError(err))
	}
	return xhttp.SuccessResponse(c, report)
}
