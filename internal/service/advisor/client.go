package advisor

import (
	"context"
	"fmt"
	"time"

	"TradeDeck/internal/domain/models"
	xhttp "TradeDeck/pkg/http"
)

// Client calls the external AI signal generator. The generator is a black
// box with a fixed response schema; nothing is interpreted locally.
type Client struct {
	url    string
	client *xhttp.Client
}

// New creates an advisor client.
func New(url string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		url:    url,
		client: xhttp.NewClient(xhttp.WithTimeout(timeout)),
	}
}

// Generate requests a fresh market outlook and recommendations.
func (c *Client) Generate(ctx context.Context) (*models.AdvisorReport, error) {
	var report models.AdvisorReport
	if err := c.client.PostJSON(ctx, c.url+"/generate", nil, &report); err != nil {
		return nil, fmt.Errorf("generate signals: %w", err)
	}
	return &report, nil
}
