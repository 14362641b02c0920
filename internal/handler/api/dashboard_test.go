package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TradeDeck/internal/domain/models"
	"TradeDeck/internal/service/advisor"
	"TradeDeck/internal/service/botapi"
	"TradeDeck/internal/service/ratelimit"
	"TradeDeck/internal/usecase"
	"TradeDeck/pkg/cache"
	"TradeDeck/pkg/logger"
)

type countingSources struct {
	fetches atomic.Int64
}

func (s *countingSources) FetchTrades(context.Context) ([]models.RawTrade, error) {
	s.fetches.Add(1)
	return []models.RawTrade{{Ticker: "RELIANCE", Quantity: 1, Price: json.RawMessage(`100`), PnL: json.RawMessage(`5`)}}, nil
}

func (s *countingSources) FetchStatuses(context.Context) ([]models.RawStatus, error) {
	return []models.RawStatus{{Name: "Trading Bot", State: "connected"}}, nil
}

func (s *countingSources) FetchSignals(context.Context) ([]json.RawMessage, error) {
	return nil, nil
}

type noopMetrics struct{}

func (noopMetrics) RecordSourceError(string)      {}
func (noopMetrics) RecordSignalsDiscarded(int)    {}
func (noopMetrics) RecordRefreshDuration(float64) {}
func (noopMetrics) SetMarketOpen(bool)            {}
func (noopMetrics) SetSubsystemUp(string, bool)   {}

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func newTestHandler(t *testing.T, botURL, advisorURL string) (*DashboardHandler, *countingSources) {
	t.Helper()

	log, err := logger.New(&logger.Config{Level: "error", Output: "stderr"})
	require.NoError(t, err)

	src := &countingSources{}
	agg := usecase.NewDashboardAggregator(src, src, src, []string{"Trading Bot"}, noopMetrics{}, log)

	h := NewDashboardHandler(
		agg,
		cache.NewMemoryCache(),
		time.Minute,
		botapi.New(botURL, time.Second),
		advisor.New(advisorURL, time.Second),
		ratelimit.New(),
		log,
	)
	return h, src
}

func serve(h *DashboardHandler, req *http.Request) *httptest.ResponseRecorder {
	e := echo.New()
	h.RegisterRoutes(e)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestGetDashboardData(t *testing.T) {
	h, src := newTestHandler(t, "http://unused", "http://unused")

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard-data", nil)
	rec := serve(h, req)

	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, http.StatusOK, env.Status)

	var snap models.DashboardSnapshot
	require.NoError(t, json.Unmarshal(env.Data, &snap))
	require.Len(t, snap.Trades, 1)
	assert.Equal(t, "RELIANCE", snap.Trades[0].Ticker)
	assert.True(t, snap.BotRunning)
	assert.Equal(t, int64(1), src.fetches.Load())

	// Second request is served from the snapshot cache.
	rec = serve(h, httptest.NewRequest(http.MethodGet, "/api/dashboard-data", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(1), src.fetches.Load())
}

func TestGetMarketStatus(t *testing.T) {
	h, _ := newTestHandler(t, "http://unused", "http://unused")

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/api/market-status", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	env := decodeEnvelope(t, rec)
	var body struct {
		MarketOpen *bool  `json:"market_open"`
		ServerTime string `json:"server_time"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &body))
	require.NotNil(t, body.MarketOpen)
	assert.NotEmpty(t, body.ServerTime)
}

func TestPostControl(t *testing.T) {
	var gotAction string
	bot := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/control", r.URL.Path)
		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		gotAction = body["action"]
		json.NewEncoder(w).Encode(map[string]string{"message": "bot started"})
	}))
	defer bot.Close()

	h, _ := newTestHandler(t, bot.URL, "http://unused")

	req := httptest.NewRequest(http.MethodPost, "/api/control", strings.NewReader(`{"action":"start"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := serve(h, req)

	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, http.StatusOK, env.Status)
	assert.Equal(t, "start", gotAction)

	var body map[string]string
	require.NoError(t, json.Unmarshal(env.Data, &body))
	assert.Equal(t, "bot started", body["message"])
}

func TestPostControlRejectsUnknownAction(t *testing.T) {
	h, _ := newTestHandler(t, "http://unused", "http://unused")

	req := httptest.NewRequest(http.MethodPost, "/api/control", strings.NewReader(`{"action":"explode"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := serve(h, req)

	env := decodeEnvelope(t, rec)
	assert.Equal(t, http.StatusBadRequest, env.Status)
}

func TestPostControlRateLimited(t *testing.T) {
	bot := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"message": "ok"})
	}))
	defer bot.Close()

	h, _ := newTestHandler(t, bot.URL, "http://unused")

	var last envelope
	for i := 0; i < controlBurst+1; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/control", strings.NewReader(`{"action":"start"}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		last = decodeEnvelope(t, serve(h, req))
	}

	assert.Equal(t, http.StatusTooManyRequests, last.Status)
}

func TestPostKiteCallback(t *testing.T) {
	bot := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/kite-callback", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]string{"message": "session created"})
	}))
	defer bot.Close()

	h, _ := newTestHandler(t, bot.URL, "http://unused")

	req := httptest.NewRequest(http.MethodPost, "/api/kite-callback", strings.NewReader(`{"request_token":"tok123"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := serve(h, req)

	env := decodeEnvelope(t, rec)
	assert.Equal(t, http.StatusOK, env.Status)
}

func TestPostKiteCallbackRequiresToken(t *testing.T) {
	h, _ := newTestHandler(t, "http://unused", "http://unused")

	req := httptest.NewRequest(http.MethodPost, "/api/kite-callback", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := serve(h, req)

	env := decodeEnvelope(t, rec)
	assert.Equal(t, http.StatusBadRequest, env.Status)
}

func TestPostAISignals(t *testing.T) {
	adv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/generate", r.URL.Path)
		json.NewEncoder(w).Encode(models.AdvisorReport{
			MarketOutlook: "BULLISH",
			OutlookReason: "broad momentum",
			Recommendations: []models.AdvisorRecommendation{
				{Title: "RELIANCE", Action: "BUY"},
			},
		})
	}))
	defer adv.Close()

	h, _ := newTestHandler(t, "http://unused", adv.URL)

	rec := serve(h, httptest.NewRequest(http.MethodPost, "/api/ai-signals", nil))
	env := decodeEnvelope(t, rec)
	require.Equal(t, http.StatusOK, env.Status)

	var report models.AdvisorReport
	require.NoError(t, json.Unmarshal(env.Data, &report))
	assert.Equal(t, "BULLISH", report.MarketOutlook)
	require.Len(t, report.Recommendations, 1)
	assert.Equal(t, "BUY", report.Recommendations[0].Action)
}

func TestPostAISignalsUpstreamDown(t *testing.T) {
	h, _ := newTestHandler(t, "http://unused", "http://127.0.0.1:1")

	rec := serve(h, httptest.NewRequest(http.MethodPost, "/api/ai-signals", nil))
	env := decodeEnvelope(t, rec)
	assert.Equal(t, http.StatusBadGateway, env.Status)
}
