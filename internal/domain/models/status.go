package models

type StatusState string

const (
	StateConnected    StatusState = "connected"
	StateDisconnected StatusState = "disconnected"
	// StateWarning is reserved for future producer states; no current
	// upstream value maps to it.
	StateWarning StatusState = "warning"
)

// Status is the derived health of one monitored subsystem.
type Status struct {
	Name  string      `json:"name"`
	State StatusState `json:"state"`
}

// RawStatus is one record from the bot's append-only status log,
// chronological oldest-first.
type RawStatus struct {
	Name      string `json:"name"`
	State     string `json:"state"`
	Timestamp string `json:"timestamp,omitempty"`
}
