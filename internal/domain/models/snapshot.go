package models

import "time"

// SignalSummary is the one-line latest-signal digest shown in the header.
type SignalSummary struct {
	Label       string `json:"label"`
	Action      string `json:"action"`
	GeneratedAt string `json:"generated_at,omitempty"`
}

// Diagnostics carries soft-failure information for one refresh cycle.
type Diagnostics struct {
	DegradedSources  []string `json:"degraded_sources,omitempty"`
	DiscardedSignals int      `json:"discarded_signals,omitempty"`
}

// DashboardSnapshot is the single consistent view assembled each refresh
// cycle. It fully replaces the previous snapshot; consumers read it as-is.
// Statuses follow the configured canonical subsystem order, trades are
// newest-first, signals keep source order.
type DashboardSnapshot struct {
	Statuses     []Status       `json:"statuses"`
	Trades       []Trade        `json:"trades"`
	Signals      []Signal       `json:"signals"`
	MarketOpen   bool           `json:"market_open"`
	BotRunning   bool           `json:"bot_running"`
	LatestSignal *SignalSummary `json:"latest_signal,omitempty"`
	GeneratedAt  time.Time      `json:"generated_at"`
	Diagnostics  Diagnostics    `json:"diagnostics"`
}

// AdvisorReport is the fixed schema returned by the external AI signal
// generator. Treated as an opaque fact; never produced locally.
type AdvisorReport struct {
	MarketOutlook   string                  `json:"marketOutlook"`
	OutlookReason   string                  `json:"outlookReason"`
	Recommendations []AdvisorRecommendation `json:"recommendations"`
}

type AdvisorRecommendation struct {
	Title  string `json:"title"`
	Action string `json:"action"`
}
