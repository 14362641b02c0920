package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"TradeDeck/internal/domain/models"
	xhttp "TradeDeck/pkg/http"
)

// APISource retrieves one upstream feed from a REST endpoint returning a
// bare JSON array. A single instance serves a single feed; the configured
// source type decides which interface it is bound to.
type APISource struct {
	client *xhttp.Client
	url    string
}

// NewAPISource creates a REST-backed source for one feed URL.
func NewAPISource(client *xhttp.Client, url string) *APISource {
	return &APISource{client: client, url: url}
}

func (s *APISource) FetchTrades(ctx context.Context) ([]models.RawTrade, error) {
	var out []models.RawTrade
	if err := s.client.GetJSON(ctx, s.url, &out); err != nil {
		return nil, fmt.Errorf("fetch trades: %w", err)
	}
	return out, nil
}

func (s *APISource) FetchStatuses(ctx context.Context) ([]models.RawStatus, error) {
	var out []models.RawStatus
	if err := s.client.GetJSON(ctx, s.url, &out); err != nil {
		return nil, fmt.Errorf("fetch statuses: %w", err)
	}
	return out, nil
}

func (s *APISource) FetchSignals(ctx context.Context) ([]json.RawMessage, error) {
	var out []json.RawMessage
	if err := s.client.GetJSON(ctx, s.url, &out); err != nil {
		return nil, fmt.Errorf("fetch signals: %w", err)
	}
	return out, nil
}
