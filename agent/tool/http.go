package tool

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	contractx "github.com/tanpawarit/research-commerce-assistant/agent/contract"
)

const (
	defaultLookupTimeout = 15 * time.Second
	maxResponseSizeBytes = 4 << 20
	userAgent            = "research-commerce-assistant/1.0"
)

// Option customizes a lookup.
type Option func(*httpLookup)

func WithHTTPClient(client *http.Client) Option {
	return func(l *httpLookup) {
		if client != nil {
			l.httpClient = client
		}
	}
}

func WithBaseURL(baseURL string) Option {
	return func(l *httpLookup) {
		if baseURL != "" {
			l.baseURL = baseURL
		}
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(l *httpLookup) {
		if timeout > 0 {
			l.timeout = timeout
		}
	}
}

// httpLookup carries the transport shared by every lookup.
type httpLookup struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
}

func newHTTPLookup(baseURL string, opts []Option) httpLookup {
	l := httpLookup{
		baseURL: baseURL,
		timeout: defaultLookupTimeout,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&l)
		}
	}
	if l.httpClient == nil {
		l.httpClient = &http.Client{}
	}
	return l
}

func (l httpLookup) do(ctx context.Context, req *http.Request) ([]byte, error) {
	req.Header.Set("User-Agent", userAgent)

	resp, err := l.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: request timed out after %s", contractx.ErrNetwork, l.timeout)
		}
		return nil, fmt.Errorf("%w: execute request: %v", contractx.ErrNetwork, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSizeBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", contractx.ErrNetwork, err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("%w: http status=%d body=%s", contractx.ErrNetwork, resp.StatusCode, truncate(string(raw), 256))
	}
	return raw, nil
}

func truncate(s string, n int) string {
	if len([]rune(s)) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
