package servicetoken

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"
)

// DefaultTimeout bounds a token exchange when none is configured.
const DefaultTimeout = 15 * time.Second

// Response is the token endpoint's answer, unparsed.
type Response struct {
	StatusCode int    `json:"status_code"`
	Body       string `json:"body"`
}

// Client posts token requests to a platform's token endpoint.
type Client struct {
	httpClient *http.Client
	timeout    time.Duration
}

// NewClient returns a Client whose exchanges give up after timeout.
func NewClient(timeout time.Duration) (*Client, error) {
	if timeout <= 0 {
		return nil, fmt.Errorf("%w: timeout must be positive, got %s", ErrInvalidArgument, timeout)
	}
	hc := cleanhttp.DefaultClient()
	hc.Timeout = timeout
	return &Client{
		httpClient: hc,
		timeout:    timeout,
	}, nil
}

// Timeout returns the bound applied to each exchange.
func (c *Client) Timeout() time.Duration {
	return c.timeout
}

// Exchange sends payload to tokenURL as a form POST and returns whatever the
// server answered, 4xx and 5xx included. Only failures to complete the
// request at all (timeout, DNS, refused connection, TLS) are errors, wrapped
// in ErrNetwork. There is no retry.
func (c *Client) Exchange(ctx context.Context, tokenURL string, payload Payload) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL, strings.NewReader(payload.Values().Encode()))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create token request: %w", ErrInvalidArgument, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNetwork, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read token response: %w", ErrNetwork, err)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Body:       string(body),
	}, nil
}
