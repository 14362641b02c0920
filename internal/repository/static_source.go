package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"TradeDeck/internal/domain/models"
)

// StaticSource retrieves one upstream feed from a JSON snapshot file on
// disk. Used by deployments that export periodic snapshots instead of
// exposing the bot's REST API. The file is re-read on every fetch so an
// updated snapshot is picked up on the next cycle.
type StaticSource struct {
	path string
}

// NewStaticSource creates a file-backed source for one snapshot path.
func NewStaticSource(path string) *StaticSource {
	return &StaticSource{path: path}
}

func (s *StaticSource) FetchTrades(_ context.Context) ([]models.RawTrade, error) {
	var out []models.RawTrade
	if err := s.read(&out); err != nil {
		return nil, fmt.Errorf("fetch trades: %w", err)
	}
	return out, nil
}

func (s *StaticSource) FetchStatuses(_ context.Context) ([]models.RawStatus, error) {
	var out []models.RawStatus
	if err := s.read(&out); err != nil {
		return nil, fmt.Errorf("fetch statuses: %w", err)
	}
	return out, nil
}

func (s *StaticSource) FetchSignals(_ context.Context) ([]json.RawMessage, error) {
	var out []json.RawMessage
	if err := s.read(&out); err != nil {
		return nil, fmt.Errorf("fetch signals: %w", err)
	}
	return out, nil
}

func (s *StaticSource) read(dest interface{}) error {
	b, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("read snapshot: %w", err)
	}
	if err := json.Unmarshal(b, dest); err != nil {
		return fmt.Errorf("parse snapshot: %w", err)
	}
	return nil
}
