package hdfc

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"payment-gateway-service/internal/domain"
	"payment-gateway-service/internal/infra/metrics"
)

// apiVersion is pinned per the upstream order-status documentation.
const apiVersion = "2023-06-30"

// Config holds the merchant credentials and endpoints for the bank gateway.
type Config struct {
	BaseURL    string // environment base, e.g. https://smartgateway.hdfcbank.com
	APIKey     string
	MerchantID string
	ClientID   string // payment_page_client_id
	Timeout    time.Duration
}

// Client talks to the hosted-checkout gateway: session creation, order-status
// polling and refunds. It is stateless; every operation is one outbound HTTPS
// call with a bounded timeout and no retries; callers surface failures and
// let the human-facing flow retry.
type Client struct {
	cfg  Config
	http *http.Client
	ids  *IDGenerator
}

// NewClient fails fast on missing credentials; a half-configured client must
// never reach the wiring stage.
func NewClient(cfg Config) (*Client, error) {
	if cfg.MerchantID == "" {
		return nil, errors.New("merchant id is required")
	}
	if cfg.APIKey == "" {
		return nil, errors.New("api key is required")
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil || cfg.BaseURL == "" {
		return nil, fmt.Errorf("invalid base url %q", cfg.BaseURL)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 7 * time.Second
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
		ids:  NewIDGenerator(),
	}, nil
}

func (c *Client) Name() string { return "hdfc-smartgateway" }

func (c *Client) endpoint(path string) string { return c.cfg.BaseURL + path }

func (c *Client) authHeader() string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(c.cfg.APIKey+":"))
}

// do runs one gateway call and decodes a 2xx JSON body into out. Any non-2xx
// response is a hard failure carrying the verbatim body for diagnostics.
func (c *Client) do(ctx context.Context, method, path string, body any, customerID string, out any) error {
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s body: %w", path, err)
		}
		rdr = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path), rdr)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", c.authHeader())
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("version", apiVersion)
	req.Header.Set("x-merchantid", c.cfg.MerchantID)
	if customerID != "" {
		req.Header.Set("x-customerid", customerID)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.ObserveGatewayRequest(path, "error", time.Since(start))
		return fmt.Errorf("gateway %s: %w", path, err)
	}
	defer resp.Body.Close()
	metrics.ObserveGatewayRequest(path, fmt.Sprintf("%d", resp.StatusCode), time.Since(start))

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s response: %w", path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &domain.UpstreamError{Endpoint: path, StatusCode: resp.StatusCode, Body: string(raw)}
	}
	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decode %s response: %w", path, err)
		}
	}
	return nil
}
