package tool

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	contractx "github.com/tanpawarit/research-commerce-assistant/agent/contract"
)

const (
	SourceArxiv       = "Arxiv"
	defaultArxivURL   = "https://export.arxiv.org/api/query"
	noArxivResult     = "No good Arxiv Result was found"
	maxArxivQueryRune = 300
)

type ArxivConfig struct {
	TopK        int `envconfig:"TOP_K" split_words:"true" default:"3"`
	MaxDocChars int `envconfig:"MAX_DOC_CHARS" split_words:"true" default:"4000"`
}

// Arxiv queries the arXiv export API and renders paper abstracts.
type Arxiv struct {
	httpLookup
	topK        int
	maxDocChars int
}

var _ contractx.Lookup = (*Arxiv)(nil)

func NewArxiv(cfg ArxivConfig, opts ...Option) *Arxiv {
	topK := cfg.TopK
	if topK <= 0 {
		topK = 3
	}
	maxChars := cfg.MaxDocChars
	if maxChars <= 0 {
		maxChars = 4000
	}
	return &Arxiv{
		httpLookup:  newHTTPLookup(defaultArxivURL, opts),
		topK:        topK,
		maxDocChars: maxChars,
	}
}

func (a *Arxiv) Name() string {
	return SourceArxiv
}

type atomFeed struct {
	Entries []atomEntry `xml:"entry"`
}

type atomEntry struct {
	Title     string       `xml:"title"`
	Summary   string       `xml:"summary"`
	Published string       `xml:"published"`
	Authors   []atomAuthor `xml:"author"`
}

type atomAuthor struct {
	Name string `xml:"name"`
}

func (a *Arxiv) Run(ctx context.Context, query string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	q := url.Values{}
	q.Set("search_query", truncate(query, maxArxivQueryRune))
	q.Set("start", "0")
	q.Set("max_results", strconv.Itoa(a.topK))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("%w: build arxiv request: %v", contractx.ErrNetwork, err)
	}

	raw, err := a.do(ctx, req)
	if err != nil {
		return "", err
	}

	var feed atomFeed
	if err := xml.Unmarshal(raw, &feed); err != nil {
		return "", fmt.Errorf("%w: decode arxiv feed: %v", contractx.ErrParse, err)
	}

	docs := make([]string, 0, len(feed.Entries))
	for _, e := range feed.Entries {
		authors := make([]string, 0, len(e.Authors))
		for _, au := range e.Authors {
			authors = append(authors, collapseSpace(au.Name))
		}
		docs = append(docs, fmt.Sprintf("Published: %s\nTitle: %s\nAuthors: %s\nSummary: %s",
			publishedDate(e.Published),
			collapseSpace(e.Title),
			strings.Join(authors, ", "),
			collapseSpace(e.Summary),
		))
	}
	if len(docs) == 0 {
		return noArxivResult, nil
	}
	return truncate(strings.Join(docs, "\n\n"), a.maxDocChars), nil
}

// publishedDate keeps the YYYY-MM-DD part of an Atom timestamp.
func publishedDate(ts string) string {
	ts = strings.TrimSpace(ts)
	if len(ts) >= 10 {
		return ts[:10]
	}
	return ts
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
