package directory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	contractx "github.com/cmos-collections/callcore/agent/contract"
)

const maxResponseSizeBytes = 1 << 20

type Config struct {
	BaseURL string        `envconfig:"BASE_URL" split_words:"true" required:"true"`
	APIKey  string        `envconfig:"API_KEY" split_words:"true" required:"true"`
	Timeout time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"10s"`
}

type Option func(*Client)

func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// Client looks up account records in the collections directory over HTTP.
// NotFound and transient failures stay distinguishable so the orchestrator
// can choose different retry wording; the client never retries internally.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

var _ contractx.AccountDirectory = (*Client)(nil)

func NewClient(cfg Config, opts ...Option) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, errors.New("directory base url is required")
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid directory url: %w", err)
	}

	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errors.New("directory api key is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	c := &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c, nil
}

func MustNew(cfg Config, opts ...Option) *Client {
	c, err := NewClient(cfg, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

type lookupResponse struct {
	Success bool                     `json:"success"`
	Data    *contractx.AccountRecord `json:"data"`
	Error   string                   `json:"error"`
}

// Lookup fetches the account record for a reference number. Unknown
// references return contract.ErrAccountNotFound; network and backend
// failures wrap contract.ErrDirectoryUnavailable.
func (c *Client) Lookup(ctx context.Context, referenceNumber string) (*contractx.AccountRecord, error) {
	ref := strings.TrimSpace(referenceNumber)
	if ref == "" {
		return nil, errors.New("reference number is empty")
	}

	endpoint := c.baseURL + "/accounts/" + url.PathEscape(ref)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build lookup request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", contractx.ErrDirectoryUnavailable, err.Error())
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSizeBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %s", contractx.ErrDirectoryUnavailable, err.Error())
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, contractx.ErrAccountNotFound
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: http status=%d", contractx.ErrDirectoryUnavailable, resp.StatusCode)
	}

	var parsed lookupResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("%w: decode response: %s", contractx.ErrDirectoryUnavailable, err.Error())
	}
	if !parsed.Success || parsed.Data == nil {
		return nil, contractx.ErrAccountNotFound
	}
	return parsed.Data, nil
}
