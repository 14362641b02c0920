package normalize

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"TradeDeck/internal/domain/models"
)

func rawTradeJSON(t *testing.T, s string) models.RawTrade {
	t.Helper()
	var raw models.RawTrade
	assert.NoError(t, json.Unmarshal([]byte(s), &raw))
	return raw
}

func TestTrade(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want models.Trade
	}{
		{
			name: "buy with numeric fields",
			in:   `{"ticker":"RELIANCE","quantity":10,"price":2500.5,"pnl":150.25}`,
			want: models.Trade{Ticker: "RELIANCE", Side: models.SideBuy, Price: "2500.50", PnL: "150.25", Outcome: models.OutcomeProfit},
		},
		{
			name: "sell with negative pnl",
			in:   `{"ticker":"INFY","quantity":-5,"price":1500,"pnl":-75.5}`,
			want: models.Trade{Ticker: "INFY", Side: models.SideSell, Price: "1500.00", PnL: "-75.5", Outcome: models.OutcomeLoss},
		},
		{
			name: "string numerics pass through",
			in:   `{"ticker":"TCS","quantity":1,"price":"3500.123","pnl":"42.00"}`,
			want: models.Trade{Ticker: "TCS", Side: models.SideBuy, Price: "3500.12", PnL: "42.00", Outcome: models.OutcomeProfit},
		},
		{
			name: "non numeric pnl reads as profit",
			in:   `{"ticker":"SBIN","quantity":2,"price":800,"pnl":"pending"}`,
			want: models.Trade{Ticker: "SBIN", Side: models.SideBuy, Price: "800.00", PnL: "pending", Outcome: models.OutcomeProfit},
		},
		{
			name: "zero pnl is profit",
			in:   `{"ticker":"HDFC","quantity":3,"price":1600,"pnl":0}`,
			want: models.Trade{Ticker: "HDFC", Side: models.SideBuy, Price: "1600.00", PnL: "0", Outcome: models.OutcomeProfit},
		},
		{
			name: "zero quantity is sell",
			in:   `{"ticker":"ITC","quantity":0,"price":440,"pnl":1}`,
			want: models.Trade{Ticker: "ITC", Side: models.SideSell, Price: "440.00", PnL: "1", Outcome: models.OutcomeProfit},
		},
		{
			name: "tradingsymbol fallback",
			in:   `{"tradingsymbol":"NIFTY25JUN","quantity":1,"price":120,"pnl":5}`,
			want: models.Trade{Ticker: "NIFTY25JUN", Side: models.SideBuy, Price: "120.00", PnL: "5", Outcome: models.OutcomeProfit},
		},
		{
			name: "empty record gets defaults",
			in:   `{}`,
			want: models.Trade{Ticker: MissingTicker, Side: models.SideSell, Price: "0.00", PnL: "0.00", Outcome: models.OutcomeProfit},
		},
		{
			name: "null numerics get defaults",
			in:   `{"ticker":"X","quantity":1,"price":null,"pnl":null}`,
			want: models.Trade{Ticker: "X", Side: models.SideBuy, Price: "0.00", PnL: "0.00", Outcome: models.OutcomeProfit},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Trade(rawTradeJSON(t, tt.in)))
		})
	}
}

func TestTradeTickerWinsOverTradingSymbol(t *testing.T) {
	raw := rawTradeJSON(t, `{"ticker":"A","tradingsymbol":"B","quantity":1,"price":1,"pnl":1}`)
	assert.Equal(t, "A", Trade(raw).Ticker)
}

func TestTradesReversesOrder(t *testing.T) {
	raws := []models.RawTrade{
		rawTradeJSON(t, `{"ticker":"OLD","quantity":1,"price":1,"pnl":1}`),
		rawTradeJSON(t, `{"ticker":"MID","quantity":1,"price":1,"pnl":1}`),
		rawTradeJSON(t, `{"ticker":"NEW","quantity":1,"price":1,"pnl":1}`),
	}

	out := Trades(raws)

	assert.Len(t, out, 3)
	assert.Equal(t, "NEW", out[0].Ticker)
	assert.Equal(t, "MID", out[1].Ticker)
	assert.Equal(t, "OLD", out[2].Ticker)
}

func TestTradesEmpty(t *testing.T) {
	assert.Empty(t, Trades(nil))
	assert.Empty(t, Trades([]models.RawTrade{}))
}
