package normalize

import (
	"strings"

	"TradeDeck/internal/domain/models"
)

// Status derives the state of one subsystem from the raw status log. The log
// is append-only oldest-first, so the last matching record is the current
// one. No record, or an unrecognized state, means disconnected; a failed
// fetch is handled by passing an empty log.
func Status(records []models.RawStatus, subsystem string) models.Status {
	state := models.StateDisconnected

	for i := len(records) - 1; i >= 0; i-- {
		if records[i].Name != subsystem {
			continue
		}
		switch strings.ToLower(records[i].State) {
		case "connected", "running":
			state = models.StateConnected
		}
		// models.StateWarning has no upstream mapping yet.
		break
	}

	return models.Status{Name: subsystem, State: state}
}

// Statuses derives one Status per requested subsystem, preserving the
// caller's canonical order.
func Statuses(records []models.RawStatus, subsystems []string) []models.Status {
	out := make([]models.Status, len(subsystems))
	for i, name := range subsystems {
		out[i] = Status(records, name)
	}
	return out
}
