package nodeclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/lws/gateway/internal/model"
)

// AuthHeader carries the node's shared secret on every request.
const AuthHeader = "X-NODE-AUTH"

// maxBodySize bounds how much of a node response is read.
const maxBodySize = 1 << 20

// truncatedMarker ends a StatusError body cut at maxBodySize.
const truncatedMarker = " [truncated]"

// ErrDecode is returned when a 2xx management response cannot be decoded.
var ErrDecode = errors.New("decode node response")

// StatusError is returned for any non-2xx node response. Body holds the
// response text verbatim up to maxBodySize; longer bodies are cut there and
// end with truncatedMarker.
type StatusError struct {
	StatusCode int
	Body       string
	Truncated  bool
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("node returned %d: %s", e.StatusCode, e.Body)
}

// Client talks to the management API exposed by fleet nodes.
type Client struct {
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates a node client whose requests time out after timeout.
func NewClient(timeout time.Duration, logger zerolog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger.With().Str("component", "node-client").Logger(),
	}
}

// GetConfiguration performs the enrollment handshake against
// {baseURL}/management and decodes the node's capacity metadata.
func (c *Client) GetConfiguration(ctx context.Context, baseURL, key string) (*model.NodeConfiguration, error) {
	body, err := c.get(ctx, baseURL, "/management", key)
	if err != nil {
		return nil, err
	}

	var cfg model.NodeConfiguration
	if err := json.Unmarshal(body, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return &cfg, nil
}

// Alive probes {baseURL}/management/alive. A nil error means the node
// answered 2xx.
func (c *Client) Alive(ctx context.Context, baseURL, key string) error {
	_, err := c.get(ctx, baseURL, "/management/alive", key)
	return err
}

func (c *Client) get(ctx context.Context, baseURL, path, key string) ([]byte, error) {
	url := strings.TrimRight(baseURL, "/") + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request %s: %w", url, err)
	}
	req.Header.Set(AuthHeader, key)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("read response from %s: %w", url, err)
	}
	truncated := len(body) > maxBodySize
	if truncated {
		body = body[:maxBodySize]
	}

	c.logger.Debug().
		Str("url", url).
		Int("status", resp.StatusCode).
		Bool("truncated", truncated).
		Msg("node responded")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		statusErr := &StatusError{StatusCode: resp.StatusCode, Body: string(body), Truncated: truncated}
		if truncated {
			statusErr.Body += truncatedMarker
		}
		return nil, statusErr
	}
	return body, nil
}
