// internal/adapter/source/client.go

package source

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"vizdash/internal/domain/record"
)

// DataPath is the read-only endpoint serving the full dataset
const DataPath = "/api/v1/data"

// Client reads the dataset from a remote dashboard backend. It implements
// record.Source and never reports upstream failures: a failed fetch is logged
// and yields an empty dataset.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

// WithTimeout bounds each fetch. Non-positive values keep the default.
func WithTimeout(d time.Duration) Option {
	return func(cl *Client) {
		if d > 0 {
			cl.httpClient = &http.Client{Timeout: d, Transport: cl.httpClient.Transport}
		}
	}
}

// NewClient creates a client for the backend at baseURL
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type dataResponse struct {
	Data []record.Record `json:"data"`
}

// FindAll fetches the dataset once. It returns an empty slice and a nil error
// on any failure.
func (c *Client) FindAll(ctx context.Context) ([]record.Record, error) {
	records, err := c.fetch(ctx)
	if err != nil {
		zap.L().Warn("error while fetching data",
			zap.String("url", c.baseURL+DataPath),
			zap.Error(err),
		)
		return []record.Record{}, nil
	}
	return records, nil
}

func (c *Client) fetch(ctx context.Context) ([]record.Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+DataPath, nil)
	if err != nil {
		return nil, eris.Wrap(err, "source: build request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "source: request")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, eris.Errorf("source: unexpected status %d", resp.StatusCode)
	}

	var body dataResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, eris.Wrap(err, "source: decode body")
	}
	if body.Data == nil {
		return []record.Record{}, nil
	}
	return body.Data, nil
}
