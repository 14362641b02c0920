package models

type SignalKind string

const (
	KindStock  SignalKind = "stock"
	KindOption SignalKind = "option"
)

// ProfitTargets describes staged exit levels for a stock signal.
type ProfitTargets struct {
	Description string    `json:"description,omitempty"`
	Targets     []float64 `json:"targets,omitempty"`
}

// StockSignal is the equity-oriented signal shape.
type StockSignal struct {
	Instrument           string         `json:"instrument"`
	Trend                string         `json:"trend"`  // UP | DOWN
	Signal               string         `json:"signal"` // BUY | HOLD | AVOID
	Confidence           float64        `json:"confidence"`
	Reasoning            string         `json:"reasoning"`
	TechnicalScore       float64        `json:"technicalScore,omitempty"`
	TimeHorizon          string         `json:"timeHorizon,omitempty"`
	ExitConditions       string         `json:"exitConditions,omitempty"`
	TrailStopLevel       float64        `json:"trailStopLevel,omitempty"`
	ProfitTargets        *ProfitTargets `json:"profitTargets,omitempty"`
	SpecificInstructions []string       `json:"specificInstructions,omitempty"`
	LifecycleStatus      string         `json:"status,omitempty"` // live | dry_run
	GeneratedAt          string         `json:"generated_at,omitempty"`
}

// OptionSignal is the derivatives-oriented signal shape.
type OptionSignal struct {
	Symbol          string    `json:"symbol"`
	OptionType      string    `json:"type"` // CE | PE
	EntryPrice      float64   `json:"entry"`
	StoplossPrice   float64   `json:"stoploss"`
	Targets         []float64 `json:"targets"`
	Expiry          string    `json:"expiry"`
	Confidence      float64   `json:"confidence"`
	HoldTill        string    `json:"hold_till"`
	Reasoning       string    `json:"reasoning"`
	Action          string    `json:"action"`
	LifecycleStatus string    `json:"status,omitempty"` // live | dry_run
	GeneratedAt     string    `json:"generated_at,omitempty"`
}

// Signal is the closed union over the two historical signal shapes. Exactly
// one of Stock/Option is set, matching Kind. Raw records are classified once
// at ingestion; downstream code never re-inspects the raw shape.
type Signal struct {
	Kind   SignalKind    `json:"kind"`
	Stock  *StockSignal  `json:"stock,omitempty"`
	Option *OptionSignal `json:"option,omitempty"`
}

// Confidence returns the variant's confidence score, unclamped.
func (s Signal) Confidence() float64 {
	switch s.Kind {
	case KindStock:
		return s.Stock.Confidence
	case KindOption:
		return s.Option.Confidence
	}
	return 0
}

// GeneratedAt returns the variant's generation timestamp string, if any.
func (s Signal) GeneratedAt() string {
	switch s.Kind {
	case KindStock:
		return s.Stock.GeneratedAt
	case KindOption:
		return s.Option.GeneratedAt
	}
	return ""
}
