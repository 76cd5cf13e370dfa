package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

// Client calls the platform (Next.js) balance APIs using the player's JWT.
type Client struct {
	baseURL      string
	gameName     string
	gameProvider string
	http         *http.Client
}

func NewClient(baseURL, gameName, gameProvider string) *Client {
	if baseURL == "" {
		baseURL = "http://localhost:3000"
	}
	if gameName == "" {
		gameName = "Goal Ladder"
	}
	if gameProvider == "" {
		gameProvider = "Crypto LATAM"
	}
	return &Client{
		baseURL:      baseURL,
		gameName:     gameName,
		gameProvider: gameProvider,
		http:         &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) authHeader(token string) string {
	return "Bearer " + token
}

// do sends payload (nil for GET) and decodes the JSON response into out.
// Non-200 responses return the platform's error message.
func (c *Client) do(ctx context.Context, method, path, token string, payload, out interface{}) (int, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return 0, err
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return 0, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", c.authHeader(token))
	resp, err := c.http.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		var data struct {
			Error string `json:"error"`
		}
		_ = json.Unmarshal(respBody, &data)
		return resp.StatusCode, fmt.Errorf("platform: %s", data.Error)
	}
	if out != nil {
		_ = json.Unmarshal(respBody, out)
	}
	return resp.StatusCode, nil
}

// GetBalance returns the player's balances. Token = JWT from platform.
func (c *Client) GetBalance(ctx context.Context, token string) (map[string]interface{}, int, error) {
	var data struct {
		Balances map[string]interface{} `json:"balances"`
	}
	status, err := c.do(ctx, http.MethodGet, "/api/balance", token, nil, &data)
	if err != nil {
		return nil, status, err
	}
	return data.Balances, status, nil
}

func (c *Client) payload(currency string, amount decimal.Decimal) map[string]interface{} {
	return map[string]interface{}{
		"currency":     currency,
		"amount":       amount.InexactFloat64(),
		"gameName":     c.gameName,
		"gameProvider": c.gameProvider,
	}
}

// Bet debits a stake (session stake or boost). Returns the platform betId.
func (c *Client) Bet(ctx context.Context, token, currency string, amount decimal.Decimal) (betID string, status int, err error) {
	var data struct {
		BetID string `json:"betId"`
	}
	status, err = c.do(ctx, http.MethodPost, "/api/balance/bet", token, c.payload(currency, amount), &data)
	if err != nil {
		return "", status, err
	}
	return data.BetID, status, nil
}

// Win credits a line payout.
func (c *Client) Win(ctx context.Context, token, currency string, amount decimal.Decimal) (status int, err error) {
	return c.do(ctx, http.MethodPost, "/api/balance/win", token, c.payload(currency, amount), nil)
}

// Rollback refunds a bet.
func (c *Client) Rollback(ctx context.Context, token, betID string) (status int, err error) {
	return c.do(ctx, http.MethodPost, "/api/balance/rollback", token, map[string]interface{}{"betId": betID}, nil)
}
