package normalize

import (
	"encoding/json"
	"fmt"

	"TradeDeck/internal/domain/models"
)

// ClassificationError reports a raw signal record that matches no known
// variant. Record-level: callers drop the record and continue.
type ClassificationError struct {
	Reason string
	Err    error
}

func (e *ClassificationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("classify signal: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("classify signal: %s", e.Reason)
}

func (e *ClassificationError) Unwrap() error { return e.Err }

// Signal resolves one untyped signal record into the closed
// {stock, option} union. Upstream producers evolved from a flat stock shape
// to a dual stock/option shape without ever adding a discriminant tag, so
// the variant is inferred structurally. Checked in order, first match wins:
//
//  1. a "symbol" field and no "instrument" field -> option
//  2. an "instrument" field                      -> stock
//  3. legacy: both "type" and "entry" fields     -> option
//
// Anything else fails classification. Confidence is passed through
// unclamped; out-of-range values are a data-quality concern downstream.
func Signal(raw json.RawMessage) (models.Signal, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return models.Signal{}, &ClassificationError{Reason: "not a JSON object", Err: err}
	}

	_, hasSymbol := fields["symbol"]
	_, hasInstrument := fields["instrument"]
	_, hasType := fields["type"]
	_, hasEntry := fields["entry"]

	switch {
	case hasSymbol && !hasInstrument:
		return decodeOption(raw)
	case hasInstrument:
		return decodeStock(raw)
	case hasType && hasEntry:
		return decodeOption(raw)
	default:
		return models.Signal{}, &ClassificationError{Reason: "matches neither stock nor option shape"}
	}
}

func decodeStock(raw json.RawMessage) (models.Signal, error) {
	var s models.StockSignal
	if err := json.Unmarshal(raw, &s); err != nil {
		return models.Signal{}, &ClassificationError{Reason: "malformed stock signal", Err: err}
	}
	return models.Signal{Kind: models.KindStock, Stock: &s}, nil
}

func decodeOption(raw json.RawMessage) (models.Signal, error) {
	var o models.OptionSignal
	if err := json.Unmarshal(raw, &o); err != nil {
		return models.Signal{}, &ClassificationError{Reason: "malformed option signal", Err: err}
	}
	return models.Signal{Kind: models.KindOption, Option: &o}, nil
}
