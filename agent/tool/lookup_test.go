package tool

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	contractx "github.com/tanpawarit/research-commerce-assistant/agent/contract"
)

func TestWikipediaRun(t *testing.T) {
	t.Parallel()

	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("gsrsearch")
		fmt.Fprint(w, `{"query":{"pages":[
			{"title":"Generative AI","index":2,"extract":"Generative AI creates content."},
			{"title":"Healthcare","index":1,"extract":"Healthcare is care."},
			{"title":"Stub","index":3,"extract":""}
		]}}`)
	}))
	t.Cleanup(server.Close)

	w := NewWikipedia(WikipediaConfig{}, WithBaseURL(server.URL), WithHTTPClient(server.Client()))
	out, err := w.Run(context.Background(), "generative ai healthcare")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if gotQuery != "generative ai healthcare" {
		t.Fatalf("gsrsearch = %q", gotQuery)
	}
	want := "Page: Healthcare\nSummary: Healthcare is care.\n\nPage: Generative AI\nSummary: Generative AI creates content."
	if out != want {
		t.Fatalf("Run() = %q, want %q", out, want)
	}
}

func TestWikipediaNoResults(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"batchcomplete":true}`)
	}))
	t.Cleanup(server.Close)

	w := NewWikipedia(WikipediaConfig{}, WithBaseURL(server.URL))
	out, err := w.Run(context.Background(), "zzzzqqq")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if out != noWikipediaResult {
		t.Fatalf("Run() = %q", out)
	}
}

func TestWikipediaTruncatesToMaxDocChars(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"query":{"pages":[{"title":"Long","index":1,"extract":%q}]}}`, strings.Repeat("a", 500))
	}))
	t.Cleanup(server.Close)

	w := NewWikipedia(WikipediaConfig{MaxDocChars: 50}, WithBaseURL(server.URL))
	out, err := w.Run(context.Background(), "long")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len([]rune(out)) != 50 {
		t.Fatalf("expected 50 runes, got %d", len([]rune(out)))
	}
}

func TestArxivRun(t *testing.T) {
	t.Parallel()

	var gotMax string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMax = r.URL.Query().Get("max_results")
		w.Header().Set("Content-Type", "application/atom+xml")
		fmt.Fprint(w, `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <entry>
    <title>Diffusion Models
      in Medical Imaging</title>
    <summary>  We survey diffusion models.  </summary>
    <published>2023-03-14T17:59:59Z</published>
    <author><name>Ada Lovelace</name></author>
    <author><name>Alan Turing</name></author>
  </entry>
</feed>`)
	}))
	t.Cleanup(server.Close)

	a := NewArxiv(ArxivConfig{}, WithBaseURL(server.URL))
	out, err := a.Run(context.Background(), "diffusion medical")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if gotMax != "3" {
		t.Fatalf("max_results = %q, want 3", gotMax)
	}
	want := "Published: 2023-03-14\nTitle: Diffusion Models in Medical Imaging\nAuthors: Ada Lovelace, Alan Turing\nSummary: We survey diffusion models."
	if out != want {
		t.Fatalf("Run() = %q, want %q", out, want)
	}
}

func TestArxivNoResultsAndBadFeed(t *testing.T) {
	t.Parallel()

	var body atomic.Value
	body.Store(`<feed xmlns="http://www.w3.org/2005/Atom"></feed>`)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, body.Load().(string))
	}))
	t.Cleanup(server.Close)

	a := NewArxiv(ArxivConfig{}, WithBaseURL(server.URL))
	out, err := a.Run(context.Background(), "nothing")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if out != noArxivResult {
		t.Fatalf("Run() = %q", out)
	}

	body.Store(`<feed><entry>`)
	if _, err := a.Run(context.Background(), "broken"); !errors.Is(err, contractx.ErrParse) {
		t.Fatalf("Run() error = %v, want ErrParse", err)
	}
}

func TestTavilyRun(t *testing.T) {
	t.Parallel()

	var gotReq tavilyRequest
	var gotAuth, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		fmt.Fprint(w, `{"query":"q","results":[{"title":"A","url":"https://a.example","content":" alpha ","score":0.9},{"title":"B","url":"https://b.example","content":"beta","score":0.5}]}`)
	}))
	t.Cleanup(server.Close)

	tv := NewTavily(TavilyConfig{APIKey: "tvly-key", BaseURL: server.URL + "/"})
	out, err := tv.Run(context.Background(), "genai healthcare")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if gotAuth != "Bearer tvly-key" || gotPath != "/search" {
		t.Fatalf("unexpected request: auth=%q path=%q", gotAuth, gotPath)
	}
	if gotReq.Query != "genai healthcare" || gotReq.MaxResults != 3 {
		t.Fatalf("unexpected body: %#v", gotReq)
	}
	want := "Title: A\nURL: https://a.example\nContent: alpha\n\nTitle: B\nURL: https://b.example\nContent: beta"
	if out != want {
		t.Fatalf("Run() = %q, want %q", out, want)
	}
}

func TestTavilyRequiresKey(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	t.Cleanup(server.Close)

	tv := NewTavily(TavilyConfig{BaseURL: server.URL})
	if _, err := tv.Run(context.Background(), "q"); !errors.Is(err, contractx.ErrConfiguration) {
		t.Fatalf("Run() error = %v, want ErrConfiguration", err)
	}
	if calls.Load() != 0 {
		t.Fatal("expected no request without api key")
	}
}

func TestLookupNon2xx(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	t.Cleanup(server.Close)

	w := NewWikipedia(WikipediaConfig{}, WithBaseURL(server.URL))
	if _, err := w.Run(context.Background(), "q"); !errors.Is(err, contractx.ErrNetwork) {
		t.Fatalf("Run() error = %v, want ErrNetwork", err)
	}
}
