package announcer

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

// Client posts a celebratory message through an external publishing
// service. Invoked at most once per decision point.
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

type announcementRequest struct {
	Text string `json:"text"`
}

type announcementResponse struct {
	Confirmation string `json:"confirmation"`
}

// PostAnnouncement publishes the text and returns the service's
// confirmation identifier.
func (that *Client) PostAnnouncement(ctx context.Context, text string) (string, error) {
	body, err := json.Marshal(announcementRequest{Text: text})
	if err != nil {
		return "", fmt.Errorf("failed to marshal announcement: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, that.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build announcement request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := that.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", apperror.ErrCapabilityFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: announcer returned status %d", apperror.ErrCapabilityFailed, resp.StatusCode)
	}

	var parsed announcementResponse
	if err = json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode announcement response: %w", err)
	}

	return parsed.Confirmation, nil
}
