package normalize

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TradeDeck/internal/domain/models"
)

func TestSignalClassifiesOptionBySymbol(t *testing.T) {
	raw := json.RawMessage(`{
		"symbol": "NIFTY2561224500CE",
		"type": "CE",
		"entry": 120.5,
		"stoploss": 95,
		"targets": [140, 160],
		"expiry": "2025-06-12",
		"confidence": 0.8,
		"hold_till": "2025-06-11T15:00:00Z",
		"reasoning": "momentum breakout",
		"action": "BUY"
	}`)

	sig, err := Signal(raw)
	require.NoError(t, err)

	assert.Equal(t, models.KindOption, sig.Kind)
	require.NotNil(t, sig.Option)
	assert.Nil(t, sig.Stock)
	assert.Equal(t, "NIFTY2561224500CE", sig.Option.Symbol)
	assert.Equal(t, "CE", sig.Option.OptionType)
	assert.Equal(t, 120.5, sig.Option.EntryPrice)
	assert.Equal(t, []float64{140, 160}, sig.Option.Targets)
	assert.Equal(t, "BUY", sig.Option.Action)
}

func TestSignalClassifiesStockByInstrument(t *testing.T) {
	raw := json.RawMessage(`{
		"instrument": "RELIANCE",
		"trend": "UP",
		"signal": "BUY",
		"confidence": 0.72,
		"reasoning": "strong technicals",
		"technicalScore": 8.1,
		"profitTargets": {"description": "staged exit", "targets": [2600, 2700]}
	}`)

	sig, err := Signal(raw)
	require.NoError(t, err)

	assert.Equal(t, models.KindStock, sig.Kind)
	require.NotNil(t, sig.Stock)
	assert.Nil(t, sig.Option)
	assert.Equal(t, "RELIANCE", sig.Stock.Instrument)
	assert.Equal(t, "UP", sig.Stock.Trend)
	assert.Equal(t, "BUY", sig.Stock.Signal)
	require.NotNil(t, sig.Stock.ProfitTargets)
	assert.Equal(t, []float64{2600, 2700}, sig.Stock.ProfitTargets.Targets)
}

func TestSignalInstrumentWinsOverSymbol(t *testing.T) {
	// Records carrying both identifiers are stock shaped; symbol only wins
	// when instrument is absent.
	raw := json.RawMessage(`{"instrument":"TCS","symbol":"TCS25JUN","trend":"UP","signal":"HOLD","confidence":0.5,"reasoning":"r"}`)

	sig, err := Signal(raw)
	require.NoError(t, err)
	assert.Equal(t, models.KindStock, sig.Kind)
}

func TestSignalLegacyOptionShape(t *testing.T) {
	// Early option records carried no symbol, only type and entry.
	raw := json.RawMessage(`{"type":"PE","entry":88.0,"stoploss":70,"targets":[110],"confidence":0.6,"reasoning":"r","action":"SELL"}`)

	sig, err := Signal(raw)
	require.NoError(t, err)
	assert.Equal(t, models.KindOption, sig.Kind)
	assert.Equal(t, "PE", sig.Option.OptionType)
	assert.Equal(t, 88.0, sig.Option.EntryPrice)
}

func TestSignalUnclassifiable(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty object", `{}`},
		{"unrelated fields", `{"foo":1,"bar":"x"}`},
		{"type without entry", `{"type":"CE"}`},
		{"entry without type", `{"entry":100}`},
		{"not an object", `[1,2,3]`},
		{"not json", `nonsense`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Signal(json.RawMessage(tt.raw))
			require.Error(t, err)

			var cerr *ClassificationError
			assert.True(t, errors.As(err, &cerr))
		})
	}
}

func TestSignalMalformedVariantPayload(t *testing.T) {
	// Discriminates as option but the payload does not decode.
	raw := json.RawMessage(`{"symbol":"X","entry":"not a number"}`)

	_, err := Signal(raw)
	require.Error(t, err)

	var cerr *ClassificationError
	require.True(t, errors.As(err, &cerr))
	assert.NotNil(t, cerr.Unwrap())
}

func TestSignalConfidencePassedThroughUnclamped(t *testing.T) {
	raw := json.RawMessage(`{"instrument":"X","trend":"UP","signal":"BUY","confidence":87.0,"reasoning":"r"}`)

	sig, err := Signal(raw)
	require.NoError(t, err)
	assert.Equal(t, 87.0, sig.Confidence())
}
