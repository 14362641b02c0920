package normalize

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/shopspring/decimal"

	"TradeDeck/internal/domain/models"
)

// MissingTicker is the sentinel used when a raw trade has no instrument.
const MissingTicker = "N/A"

// Trade maps one raw trade record to the canonical entity. It is total:
// missing numeric fields default to zero and a missing instrument becomes
// the sentinel ticker.
func Trade(raw models.RawTrade) models.Trade {
	ticker := raw.Instrument()
	if ticker == "" {
		ticker = MissingTicker
	}

	side := models.SideSell
	if raw.Quantity > 0 {
		side = models.SideBuy
	}

	price := "0.00"
	if s, ok := rawNumber(raw.Price); ok {
		if d, err := decimal.NewFromString(s); err == nil {
			price = d.StringFixed(2)
		}
	}

	pnl := "0.00"
	if s, ok := rawNumber(raw.PnL); ok && s != "" {
		pnl = s
	}

	// Non-numeric P/L reads as zero and therefore profit. Historical data
	// depends on this; do not tighten.
	outcome := models.OutcomeProfit
	if d, err := decimal.NewFromString(pnl); err == nil && d.IsNegative() {
		outcome = models.OutcomeLoss
	}

	return models.Trade{
		Ticker:  ticker,
		Side:    side,
		Price:   price,
		PnL:     pnl,
		Outcome: outcome,
	}
}

// Trades normalizes a raw sequence element-wise and reverses it: upstream
// order is oldest-first, presentation order is newest-first.
func Trades(raws []models.RawTrade) []models.Trade {
	out := make([]models.Trade, len(raws))
	for i, raw := range raws {
		out[len(raws)-1-i] = Trade(raw)
	}
	return out
}

// rawNumber renders a JSON scalar that may be a number or a numeric string
// as its display text. Returns false for absent or null values.
func rawNumber(raw json.RawMessage) (string, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", false
	}
	if raw[0] == '"' {
		s, err := strconv.Unquote(string(raw))
		if err != nil {
			return "", false
		}
		return s, true
	}
	return string(raw), true
}
