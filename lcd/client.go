// Package lcd is the JSON-over-HTTP client for the chain's light client
// daemon. Every call takes a context and addresses the chain carried by the
// client's immutable chain.Context; callers switching networks construct a
// new client. No call retries automatically: outgoing transactions are
// financial operations and every retry is user-initiated.
package lcd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/terra-community/station-core/chain"
)

var log zerolog.Logger

func init() {
	out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	log = zerolog.New(out).With().Timestamp().Str("component", "lcd").Logger()
}

// DefaultTimeout bounds every request. The backend has no server-side
// deadline for us, so an unresponsive node would otherwise hang until the
// user cancels.
const DefaultTimeout = 15 * time.Second

const blockHeightHeader = "block-height"

// Client queries one chain's LCD endpoint.
type Client struct {
	chain      chain.Context
	httpClient *http.Client

	// lastHeight is the highest block height observed in responses; it is
	// echoed on subsequent requests so a load-balanced backend never serves
	// us data older than what we have already seen.
	lastHeight atomic.Int64
}

// NewClient creates a client for the given chain with the default timeout.
func NewClient(chainCtx chain.Context) *Client {
	return NewClientWithTimeout(chainCtx, DefaultTimeout)
}

// NewClientWithTimeout creates a client with an explicit request timeout.
func NewClientWithTimeout(chainCtx chain.Context, timeout time.Duration) *Client {
	return &Client{
		chain:      chainCtx,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Chain returns the context this client is addressed to.
func (c *Client) Chain() chain.Context { return c.chain }

// APIError is a non-2xx response from the backend. Message holds whatever
// human-readable text the backend embedded in the body; Body keeps the raw
// payload for the error parser.
type APIError struct {
	StatusCode int
	Message    string
	Body       []byte
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("lcd: status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("lcd: status %d", e.StatusCode)
}

type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	fullURL := c.chain.LCD + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.chain.LCD+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	if h := c.lastHeight.Load(); h > 0 {
		req.Header.Set(blockHeightHeader, strconv.FormatInt(h, 10))
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Debug().Err(err).Str("url", req.URL.String()).Msg("request failed")
		return fmt.Errorf("lcd request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	log.Debug().
		Str("method", req.Method).
		Str("path", req.URL.Path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("request")

	if h := resp.Header.Get(blockHeightHeader); h != "" {
		c.observeHeight(h)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Body: body}
		var parsed errorBody
		if json.Unmarshal(body, &parsed) == nil {
			if parsed.Message != "" {
				apiErr.Message = parsed.Message
			} else {
				apiErr.Message = parsed.Error
			}
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *Client) observeHeight(h string) {
	height, err := strconv.ParseInt(h, 10, 64)
	if err != nil {
		return
	}
	for {
		prev := c.lastHeight.Load()
		if height <= prev || c.lastHeight.CompareAndSwap(prev, height) {
			return
		}
	}
}
