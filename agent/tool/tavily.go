package tool

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	contractx "github.com/tanpawarit/research-commerce-assistant/agent/contract"
)

const (
	SourceWeb        = "Web"
	defaultTavilyURL = "https://api.tavily.com"
	noWebResult      = "No web search results were found"
)

type TavilyConfig struct {
	APIKey     string `envconfig:"API_KEY" split_words:"true"`
	BaseURL    string `envconfig:"BASE_URL" split_words:"true" default:"https://api.tavily.com"`
	MaxResults int    `envconfig:"MAX_RESULTS" split_words:"true" default:"3"`
}

// Tavily runs a web search through the Tavily API.
type Tavily struct {
	httpLookup
	apiKey     string
	maxResults int
}

var _ contractx.Lookup = (*Tavily)(nil)

func NewTavily(cfg TavilyConfig, opts ...Option) *Tavily {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultTavilyURL
	}
	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 3
	}
	return &Tavily{
		httpLookup: newHTTPLookup(baseURL, opts),
		apiKey:     strings.TrimSpace(cfg.APIKey),
		maxResults: maxResults,
	}
}

func (t *Tavily) Name() string {
	return SourceWeb
}

type tavilyRequest struct {
	Query       string `json:"query"`
	MaxResults  int    `json:"max_results"`
	SearchDepth string `json:"search_depth"`
}

type tavilyResponse struct {
	Results []struct {
		Title   string  `json:"title"`
		URL     string  `json:"url"`
		Content string  `json:"content"`
		Score   float64 `json:"score"`
	} `json:"results"`
}

func (t *Tavily) Run(ctx context.Context, query string) (string, error) {
	if t.apiKey == "" {
		return "", fmt.Errorf("%w: TAVILY_API_KEY is not set", contractx.ErrConfiguration)
	}

	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	body, err := json.Marshal(tavilyRequest{
		Query:       query,
		MaxResults:  t.maxResults,
		SearchDepth: "basic",
	})
	if err != nil {
		return "", fmt.Errorf("%w: marshal tavily request: %v", contractx.ErrValidation, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+"/search", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: build tavily request: %v", contractx.ErrNetwork, err)
	}
	req.Header.Set("Authorization", "Bearer "+t.apiKey)
	req.Header.Set("Content-Type", "application/json")

	raw, err := t.do(ctx, req)
	if err != nil {
		return "", err
	}

	var parsed tavilyResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("%w: decode tavily response: %v", contractx.ErrParse, err)
	}

	blocks := make([]string, 0, len(parsed.Results))
	for _, r := range parsed.Results {
		blocks = append(blocks, fmt.Sprintf("Title: %s\nURL: %s\nContent: %s", r.Title, r.URL, strings.TrimSpace(r.Content)))
	}
	if len(blocks) == 0 {
		return noWebResult, nil
	}
	return strings.Join(blocks, "\n\n"), nil
}
