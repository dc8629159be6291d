package tool

import (
	contractx "github.com/tanpawarit/research-commerce-assistant/agent/contract"
)

type SourcesConfig struct {
	Wikipedia WikipediaConfig
	Arxiv     ArxivConfig
	Tavily    TavilyConfig
}

// BuildSources returns the research lookups in prompt order:
// Wikipedia, Arxiv, Web.
func BuildSources(cfg SourcesConfig, opts ...Option) []contractx.Lookup {
	return []contractx.Lookup{
		NewWikipedia(cfg.Wikipedia, opts...),
		NewArxiv(cfg.Arxiv, opts...),
		NewTavily(cfg.Tavily, opts...),
	}
}
