package tool

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	contractx "github.com/tanpawarit/research-commerce-assistant/agent/contract"
)

const (
	SourceWikipedia     = "Wikipedia"
	defaultWikipediaURL = "https://en.wikipedia.org/w/api.php"
	noWikipediaResult   = "No good Wikipedia Search Result was found"
)

type WikipediaConfig struct {
	TopK        int `envconfig:"TOP_K" split_words:"true" default:"3"`
	MaxDocChars int `envconfig:"MAX_DOC_CHARS" split_words:"true" default:"4000"`
}

// Wikipedia searches article titles and returns their plain-text intros.
type Wikipedia struct {
	httpLookup
	topK        int
	maxDocChars int
}

var _ contractx.Lookup = (*Wikipedia)(nil)

func NewWikipedia(cfg WikipediaConfig, opts ...Option) *Wikipedia {
	topK := cfg.TopK
	if topK <= 0 {
		topK = 3
	}
	maxChars := cfg.MaxDocChars
	if maxChars <= 0 {
		maxChars = 4000
	}
	return &Wikipedia{
		httpLookup:  newHTTPLookup(defaultWikipediaURL, opts),
		topK:        topK,
		maxDocChars: maxChars,
	}
}

func (w *Wikipedia) Name() string {
	return SourceWikipedia
}

type wikiResponse struct {
	Query struct {
		Pages []wikiPage `json:"pages"`
	} `json:"query"`
	Error *struct {
		Code string `json:"code"`
		Info string `json:"info"`
	} `json:"error"`
}

type wikiPage struct {
	Title   string `json:"title"`
	Index   int    `json:"index"`
	Extract string `json:"extract"`
}

func (w *Wikipedia) Run(ctx context.Context, query string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	q := url.Values{}
	q.Set("action", "query")
	q.Set("format", "json")
	q.Set("formatversion", "2")
	q.Set("generator", "search")
	q.Set("gsrsearch", query)
	q.Set("gsrlimit", strconv.Itoa(w.topK))
	q.Set("prop", "extracts")
	q.Set("exintro", "1")
	q.Set("explaintext", "1")
	q.Set("exlimit", "max")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, w.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("%w: build wikipedia request: %v", contractx.ErrNetwork, err)
	}

	raw, err := w.do(ctx, req)
	if err != nil {
		return "", err
	}

	var parsed wikiResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("%w: decode wikipedia response: %v", contractx.ErrParse, err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("%w: wikipedia %s: %s", contractx.ErrNetwork, parsed.Error.Code, parsed.Error.Info)
	}

	pages := parsed.Query.Pages
	sort.SliceStable(pages, func(i, j int) bool { return pages[i].Index < pages[j].Index })

	summaries := make([]string, 0, len(pages))
	for _, p := range pages {
		extract := strings.TrimSpace(p.Extract)
		if extract == "" {
			continue
		}
		summaries = append(summaries, fmt.Sprintf("Page: %s\nSummary: %s", p.Title, extract))
	}
	if len(summaries) == 0 {
		return noWikipediaResult, nil
	}
	return truncate(strings.Join(summaries, "\n\n"), w.maxDocChars), nil
}
