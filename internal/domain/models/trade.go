package models

import "encoding/json"

type Side string

const (
	SideBuy  Side = "Buy"
	SideSell Side = "Sell"
)

type Outcome string

const (
	OutcomeProfit Outcome = "profit"
	OutcomeLoss   Outcome = "loss"
)

// Trade is the canonical executed-trade entity shown on the dashboard.
// Instances are built fresh each refresh cycle and never mutated.
type Trade struct {
	Ticker  string  `json:"ticker"`
	Side    Side    `json:"side"`
	Price   string  `json:"price"` // two-decimal display string
	PnL     string  `json:"pnl"`   // upstream display string, passed through
	Outcome Outcome `json:"outcome"`
}

// RawTrade is one record from the upstream trade log. Numeric fields that
// historically arrive as either numbers or numeric strings are kept raw and
// interpreted by the normalizer.
type RawTrade struct {
	Ticker        string          `json:"ticker"`
	TradingSymbol string          `json:"tradingsymbol"`
	Quantity      float64         `json:"quantity"`
	Price         json.RawMessage `json:"price"`
	PnL           json.RawMessage `json:"pnl"`
}

// Instrument returns the best available instrument identifier.
func (r RawTrade) Instrument() string {
	if r.Ticker != "" {
		return r.Ticker
	}
	return r.TradingSymbol
}
