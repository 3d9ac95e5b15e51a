package faucet

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gridrush/tictactoe-agent/internal/apperror"
)

const requestTimeout = 15 * time.Second

// Client asks an external faucet service to send funds. One request
// per call, no retries; a timeout is treated the same as a failure.
type Client struct {
	endpoint string
	client   *http.Client
}

func New(endpoint string) *Client {
	return &Client{
		endpoint: endpoint,
		client:   &http.Client{Timeout: requestTimeout},
	}
}

type fundsRequest struct {
	Token  string `json:"token"`
	Amount int    `json:"amount"`
}

type fundsResponse struct {
	Tx string `json:"tx"`
}

// RequestFunds asks the faucet for the given token/amount pair and
// returns the transaction reference.
func (that *Client) RequestFunds(ctx context.Context, token string, amount int) (string, error) {
	body, err := json.Marshal(fundsRequest{Token: token, Amount: amount})
	if err != nil {
		return "", fmt.Errorf("failed to marshal faucet request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, that.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build faucet request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := that.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", apperror.ErrCapabilityFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: faucet returned status %d", apperror.ErrCapabilityFailed, resp.StatusCode)
	}

	var parsed fundsResponse
	if err = json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode faucet response: %w", err)
	}

	if parsed.Tx == "" {
		return "", fmt.Errorf("%w: faucet returned no transaction reference", apperror.ErrCapabilityFailed)
	}

	return parsed.Tx, nil
}
