package storefront

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	contractx "github.com/tanpawarit/research-commerce-assistant/agent/contract"
)

const (
	defaultTimeout       = 10 * time.Second
	defaultAPIVersion    = "2024-07"
	accessTokenHeader    = "X-Shopify-Access-Token"
	maxResponseSizeBytes = 8 << 20
)

var _ contractx.Storefront = (*Client)(nil)

type Config struct {
	StoreURL    string        `envconfig:"STORE_URL" split_words:"true"`
	AccessToken string        `envconfig:"PASSWORD"`
	APIKey      string        `envconfig:"API_KEY" split_words:"true"`
	APIVersion  string        `envconfig:"API_VERSION" split_words:"true" default:"2024-07"`
	Timeout     time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"10s"`
}

// Option customizes Client.
type Option func(*Client)

func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// Client talks to the public catalog endpoint of any store and to the admin
// API of the configured store.
type Client struct {
	storeDomain string
	accessToken string
	apiVersion  string
	timeout     time.Duration
	httpClient  *http.Client
}

func New(cfg Config, opts ...Option) *Client {
	apiVersion := strings.TrimSpace(cfg.APIVersion)
	if apiVersion == "" {
		apiVersion = defaultAPIVersion
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	c := &Client{
		storeDomain: NormalizeStoreURL(cfg.StoreURL),
		accessToken: strings.TrimSpace(cfg.AccessToken),
		apiVersion:  apiVersion,
		timeout:     timeout,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{}
	}
	return c
}

// StoreDomain is the configured admin store host, normalized.
func (c *Client) StoreDomain() string {
	return c.storeDomain
}

// NormalizeStoreURL strips the scheme and surrounding slashes from a store URL.
func NormalizeStoreURL(raw string) string {
	s := strings.TrimSpace(raw)
	lower := strings.ToLower(s)
	for _, scheme := range []string{"https://", "http://"} {
		if strings.HasPrefix(lower, scheme) {
			s = s[len(scheme):]
			break
		}
	}
	return strings.Trim(s, "/")
}

// PublicProductsURL is the anonymous catalog endpoint for storeURL.
func PublicProductsURL(storeURL string, limit int) string {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	return "https://" + NormalizeStoreURL(storeURL) + "/products.json?" + q.Encode()
}

func (c *Client) adminURL(resource string, limit int, extra url.Values) string {
	q := url.Values{}
	for k, v := range extra {
		q[k] = v
	}
	q.Set("limit", strconv.Itoa(limit))
	return fmt.Sprintf("https://%s/admin/api/%s/%s.json?%s", c.storeDomain, c.apiVersion, resource, q.Encode())
}

type productsEnvelope struct {
	Products []contractx.Product `json:"products"`
}

type ordersEnvelope struct {
	Orders []contractx.Order `json:"orders"`
}

func (c *Client) PublicProducts(ctx context.Context, storeURL string, limit int) ([]contractx.Product, error) {
	if NormalizeStoreURL(storeURL) == "" {
		return nil, fmt.Errorf("%w: store url is required", contractx.ErrConfiguration)
	}

	var env productsEnvelope
	if err := c.getJSON(ctx, PublicProductsURL(storeURL, limit), nil, &env); err != nil {
		return nil, err
	}
	return nonNilProducts(env.Products), nil
}

func (c *Client) PrivateProducts(ctx context.Context, limit int) ([]contractx.Product, error) {
	headers, err := c.adminHeaders()
	if err != nil {
		return nil, err
	}

	var env productsEnvelope
	if err := c.getJSON(ctx, c.adminURL("products", limit, nil), headers, &env); err != nil {
		return nil, err
	}
	return nonNilProducts(env.Products), nil
}

func (c *Client) PrivateOrders(ctx context.Context, limit int) ([]contractx.Order, error) {
	headers, err := c.adminHeaders()
	if err != nil {
		return nil, err
	}

	var env ordersEnvelope
	extra := url.Values{"status": []string{"any"}}
	if err := c.getJSON(ctx, c.adminURL("orders", limit, extra), headers, &env); err != nil {
		return nil, err
	}
	if env.Orders == nil {
		return []contractx.Order{}, nil
	}
	return env.Orders, nil
}

func (c *Client) adminHeaders() (http.Header, error) {
	if c.storeDomain == "" {
		return nil, fmt.Errorf("%w: SHOPIFY_STORE_URL is not set", contractx.ErrConfiguration)
	}
	if c.accessToken == "" {
		return nil, fmt.Errorf("%w: SHOPIFY_PASSWORD access token is not set", contractx.ErrConfiguration)
	}
	h := http.Header{}
	h.Set(accessTokenHeader, c.accessToken)
	return h, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, headers http.Header, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("%w: build request: %v", contractx.ErrNetwork, err)
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header[k] = v
	}

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%w: request to %s timed out after %s", contractx.ErrNetwork, redact(endpoint), c.timeout)
		}
		return fmt.Errorf("%w: execute request: %v", contractx.ErrNetwork, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSizeBytes))
	if err != nil {
		return fmt.Errorf("%w: read response: %v", contractx.ErrNetwork, err)
	}

	log.Debug().
		Str("url", redact(endpoint)).
		Int("status", resp.StatusCode).
		Int("bytes", len(raw)).
		Dur("elapsed", time.Since(started)).
		Msg("storefront request")

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("%w: http status=%d body=%s", contractx.ErrNetwork, resp.StatusCode, truncate(string(raw), 512))
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: decode response: %v", contractx.ErrParse, err)
	}
	return nil
}

func nonNilProducts(products []contractx.Product) []contractx.Product {
	if products == nil {
		return []contractx.Product{}
	}
	return products
}

// redact drops the query string so limits and cursors stay out of logs.
func redact(endpoint string) string {
	if i := strings.IndexByte(endpoint, '?'); i >= 0 {
		return endpoint[:i]
	}
	return endpoint
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
