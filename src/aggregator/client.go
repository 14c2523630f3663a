package aggregator

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"banksync-server/src/util"

	"go.uber.org/zap"
)

const (
	DefaultTimeout = 30 * time.Second
	maxBodyBytes   = 10 << 20
)

// Credentials identify this service to the aggregator.
type Credentials struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
}

// ValidateCredentials checks that all credentials are present and that the base
// URL declares an http or https scheme.
func ValidateCredentials(c Credentials) error {
	if strings.TrimSpace(c.BaseURL) == "" {
		return &ConfigurationError{Field: "base URL", Reason: "is required"}
	}
	if strings.TrimSpace(c.ClientID) == "" {
		return &ConfigurationError{Field: "client id", Reason: "is required"}
	}
	if strings.TrimSpace(c.ClientSecret) == "" {
		return &ConfigurationError{Field: "client secret", Reason: "is required"}
	}
	if !util.ValidateBaseURL(c.BaseURL) {
		return &ConfigurationError{Field: "base URL", Reason: "must declare an http or https scheme"}
	}
	return nil
}

// Client talks to the aggregator REST API. It holds no token; every call takes
// the bearer token of the current run.
type Client struct {
	creds      Credentials
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(creds Credentials, timeout time.Duration, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		creds:      creds,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := strings.TrimRight(strings.TrimSpace(c.creds.BaseURL), "/") + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

func (c *Client) getJSON(ctx context.Context, token, resource, path string, query url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(path, query), nil)
	if err != nil {
		return &RemoteFetchError{Resource: resource, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &RemoteFetchError{Resource: resource, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return &RemoteFetchError{Resource: resource, StatusCode: resp.StatusCode, Err: err}
	}

	c.logger.Debug("aggregator request",
		zap.String("resource", resource),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &RemoteFetchError{Resource: resource, StatusCode: resp.StatusCode, Body: string(body)}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &RemoteFetchError{Resource: resource, StatusCode: resp.StatusCode, Err: fmt.Errorf("decoding response: %w", err)}
	}
	return nil
}
