package tool

import (
	"testing"
)

func TestBuildSourcesOrder(t *testing.T) {
	t.Parallel()

	sources := BuildSources(SourcesConfig{})
	if len(sources) != 3 {
		t.Fatalf("expected 3 sources, got %d", len(sources))
	}
	want := []string{SourceWikipedia, SourceArxiv, SourceWeb}
	for i, s := range sources {
		if s.Name() != want[i] {
			t.Fatalf("sources[%d].Name() = %q, want %q", i, s.Name(), want[i])
		}
	}
}

func TestLookupDefaults(t *testing.T) {
	t.Parallel()

	w := NewWikipedia(WikipediaConfig{})
	if w.topK != 3 || w.maxDocChars != 4000 || w.timeout != defaultLookupTimeout {
		t.Fatalf("unexpected wikipedia defaults: %d %d %s", w.topK, w.maxDocChars, w.timeout)
	}
	if w.baseURL != defaultWikipediaURL {
		t.Fatalf("unexpected wikipedia url: %s", w.baseURL)
	}

	tv := NewTavily(TavilyConfig{})
	if tv.baseURL != defaultTavilyURL || tv.maxResults != 3 {
		t.Fatalf("unexpected tavily defaults: %s %d", tv.baseURL, tv.maxResults)
	}
}
