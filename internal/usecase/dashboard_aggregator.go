package usecase

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"TradeDeck/internal/domain/models"
	"TradeDeck/internal/domain/repository"
	"TradeDeck/internal/market"
	"TradeDeck/internal/services/normalize"
	"TradeDeck/pkg/logger"
	"TradeDeck/pkg/util"
)

const (
	sourceTrades   = "trades"
	sourceStatuses = "statuses"
	sourceSignals  = "signals"
)

// DashboardAggregator assembles one consistent DashboardSnapshot per
// refresh cycle from three independent upstream retrievals. Failures
// degrade the affected source to empty; Refresh never returns an error.
type DashboardAggregator struct {
	trades     repository.TradeSource
	statuses   repository.StatusSource
	signals    repository.SignalSource
	subsystems []string
	metrics    repository.Metrics
	log        *logger.Logger
	now        func() time.Time
}

// NewDashboardAggregator creates a new aggregator. The first subsystem name
// is treated as the bot process when deriving BotRunning.
func NewDashboardAggregator(
	trades repository.TradeSource,
	statuses repository.StatusSource,
	signals repository.SignalSource,
	subsystems []string,
	metrics repository.Metrics,
	log *logger.Logger,
) *DashboardAggregator {
	return &DashboardAggregator{
		trades:     trades,
		statuses:   statuses,
		signals:    signals,
		subsystems: subsystems,
		metrics:    metrics,
		log:        log,
		now:        time.Now,
	}
}

// WithClock overrides the time source. Tests use this to pin the instant.
func (a *DashboardAggregator) WithClock(now func() time.Time) *DashboardAggregator {
	a.now = now
	return a
}

// Refresh issues the three retrievals concurrently, normalizes each result,
// and returns a fully assembled snapshot. Each retrieval writes only its own
// slot; the slots are joined after all three settle. A failed retrieval is
// logged, counted, and degraded to an empty sequence so the snapshot is
// always well formed, even when every source is down.
func (a *DashboardAggregator) Refresh(ctx context.Context) *models.DashboardSnapshot {
	start := a.now()

	var (
		rawTrades   []models.RawTrade
		rawStatuses []models.RawStatus
		rawSignals  []json.RawMessage
		tradesErr   error
		statusesErr error
		signalsErr  error
	)

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		rawTrades, tradesErr = a.trades.FetchTrades(ctx)
	}()
	go func() {
		defer wg.Done()
		rawStatuses, statusesErr = a.statuses.FetchStatuses(ctx)
	}()
	go func() {
		defer wg.Done()
		rawSignals, signalsErr = a.signals.FetchSignals(ctx)
	}()
	wg.Wait()

	var degraded []string
	for _, slot := range []struct {
		name string
		err  error
	}{
		{sourceStatuses, statusesErr},
		{sourceTrades, tradesErr},
		{sourceSignals, signalsErr},
	} {
		if slot.err == nil {
			continue
		}
		degraded = append(degraded, slot.name)
		a.metrics.RecordSourceError(slot.name)
		a.log.Warn("source degraded to empty",
			logger.String("source", slot.name),
			logger.Error(slot.err),
		)
	}
	if tradesErr != nil {
		rawTrades = nil
	}
	if statusesErr != nil {
		rawStatuses = nil
	}
	if signalsErr != nil {
		rawSignals = nil
	}

	statuses := normalize.Statuses(rawStatuses, a.subsystems)
	trades := normalize.Trades(rawTrades)
	signals, discarded := a.classifySignals(rawSignals)

	snap := &models.DashboardSnapshot{
		Statuses:     statuses,
		Trades:       trades,
		Signals:      signals,
		MarketOpen:   market.IsOpen(a.now()),
		BotRunning:   a.botRunning(statuses),
		LatestSignal: latestSignal(signals),
		GeneratedAt:  start,
		Diagnostics: models.Diagnostics{
			DegradedSources:  degraded,
			DiscardedSignals: discarded,
		},
	}

	a.metrics.SetMarketOpen(snap.MarketOpen)
	for _, st := range statuses {
		a.metrics.SetSubsystemUp(st.Name, st.State == models.StateConnected)
	}
	a.metrics.RecordSignalsDiscarded(discarded)
	a.metrics.RecordRefreshDuration(a.now().Sub(start).Seconds())

	return snap
}

// classifySignals resolves each raw record, dropping the ones that match no
// known variant and surfacing their count as a diagnostic.
func (a *DashboardAggregator) classifySignals(raws []json.RawMessage) ([]models.Signal, int) {
	signals := make([]models.Signal, 0, len(raws))
	discarded := 0
	for _, raw := range raws {
		sig, err := normalize.Signal(raw)
		if err != nil {
			discarded++
			a.log.Debug("signal record dropped", logger.Error(err))
			continue
		}
		signals = append(signals, sig)
	}
	return signals, discarded
}

func (a *DashboardAggregator) botRunning(statuses []models.Status) bool {
	if len(a.subsystems) == 0 {
		return false
	}
	bot := a.subsystems[0]
	for _, st := range statuses {
		if st.Name == bot {
			return st.State == models.StateConnected
		}
	}
	return false
}

// latestSignal picks the most recently generated signal, preferring
// parseable generated_at timestamps and falling back to source order.
func latestSignal(signals []models.Signal) *models.SignalSummary {
	if len(signals) == 0 {
		return nil
	}

	best := signals[len(signals)-1]
	bestAt, bestOK := util.ParseTime(best.GeneratedAt())
	for _, sig := range signals {
		at, ok := util.ParseTime(sig.GeneratedAt())
		if !ok {
			continue
		}
		if !bestOK || at.After(bestAt) {
			best, bestAt, bestOK = sig, at, true
		}
	}

	summary := &models.SignalSummary{GeneratedAt: best.GeneratedAt()}
	switch best.Kind {
	case models.KindStock:
		summary.Label = best.Stock.Instrument
		summary.Action = best.Stock.Signal
	case models.KindOption:
		summary.Label = best.Option.Symbol
		summary.Action = best.Option.Action
	}
	return summary
}
