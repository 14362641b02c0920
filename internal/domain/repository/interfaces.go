package repository

import (
	"context"
	"encoding/json"

	"TradeDeck/internal/domain/models"
)

// TradeSource retrieves the raw trade log, chronological oldest-first.
type TradeSource interface {
	FetchTrades(ctx context.Context) ([]models.RawTrade, error)
}

// StatusSource retrieves raw bot/status records, chronological oldest-first.
type StatusSource interface {
	FetchStatuses(ctx context.Context) ([]models.RawStatus, error)
}

// SignalSource retrieves raw signal records in either historical shape;
// classification happens at the aggregation boundary.
type SignalSource interface {
	FetchSignals(ctx context.Context) ([]json.RawMessage, error)
}

type Metrics interface {
	RecordSourceError(source string)
	RecordSignalsDiscarded(n int)
	RecordRefreshDuration(seconds float64)
	SetMarketOpen(open bool)
	SetSubsystemUp(name string, up bool)
}
