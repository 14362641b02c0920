package botapi

import (
	"context"
	"fmt"
	"time"

	xhttp "TradeDeck/pkg/http"
)

// Client talks to the trading bot's control surface: start/stop/restart
// actions, the Kite auth callback relay, and a liveness probe. These are
// opaque external calls; the dashboard core never depends on them.
type Client struct {
	baseURL string
	client  *xhttp.Client
}

// New creates a bot control client.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		client:  xhttp.NewClient(xhttp.WithTimeout(timeout)),
	}
}

type messageResponse struct {
	Message string `json:"message"`
}

// Control dispatches a start/stop/restart action and returns the bot's
// acknowledgement message.
func (c *Client) Control(ctx context.Context, action string) (string, error) {
	var resp messageResponse
	payload := map[string]string{"action": action}
	if err := c.client.PostJSON(ctx, c.baseURL+"/control", payload, &resp); err != nil {
		return "", fmt.Errorf("control %s: %w", action, err)
	}
	return resp.Message, nil
}

// KiteCallback relays the broker auth request token to the bot so it can
// complete its session handshake.
func (c *Client) KiteCallback(ctx context.Context, requestToken string) (string, error) {
	var resp messageResponse
	payload := map[string]string{"request_token": requestToken}
	if err := c.client.PostJSON(ctx, c.baseURL+"/kite-callback", payload, &resp); err != nil {
		return "", fmt.Errorf("kite callback: %w", err)
	}
	return resp.Message, nil
}

// Health probes the bot backend.
func (c *Client) Health(ctx context.Context) error {
	var resp struct {
		Status string `json:"status"`
	}
	if err := c.client.GetJSON(ctx, c.baseURL+"/health", &resp); err != nil {
		return fmt.Errorf("health: %w", err)
	}
	if resp.Status != "ok" {
		return fmt.Errorf("health: status %q", resp.Status)
	}
	return nil
}
