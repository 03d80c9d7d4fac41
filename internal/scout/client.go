// Package scout asks an external text-generation service for a short
// narrative "scout report" per player. Entirely optional: an unconfigured
// or failing service leaves the card's story empty.
package scout

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

type Client struct {
	endpoint string
	client   *http.Client
}

// New returns a client for the given endpoint. An empty endpoint yields a
// disabled client whose Report always returns "".
func New(endpoint string) *Client {
	return &Client{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 20 * time.Second},
	}
}

func (c *Client) Enabled() bool {
	return c != nil && c.endpoint != ""
}

type reportRequest struct {
	Name         string `json:"name"`
	Role         string `json:"role"`
	BattingStyle string `json:"batting_style"`
	BowlingStyle string `json:"bowling_style"`
	FormNumber   int    `json:"form_number"`
}

type reportResponse struct {
	Report string `json:"report"`
}

// Report fetches a narrative for the player's stat line.
func (c *Client) Report(ctx context.Context, name, role, batting, bowling string, form int) (string, error) {
	if !c.Enabled() {
		return "", nil
	}
	body, err := json.Marshal(reportRequest{
		Name:         name,
		Role:         role,
		BattingStyle: batting,
		BowlingStyle: bowling,
		FormNumber:   form,
	})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("scout service returned status %d", resp.StatusCode)
	}
	var out reportResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decoding scout response: %w", err)
	}
	return out.Report, nil
}
