package prompt

import (
	_ "embed"
	"strings"
)

// Template variables of the research prompt.
const (
	VarWikipedia = "wiki_result"
	VarArxiv     = "arxiv_result"
	VarWeb       = "tavily_result"
)

var (
	//go:embed template/research.txt
	researchRaw string
)

// PromptSet holds loaded prompt content.
type PromptSet struct {
	Research string
}

// LoadPromptSet returns a PromptSet with trimmed prompt strings.
func LoadPromptSet() PromptSet {
	return PromptSet{
		Research: strings.TrimSpace(researchRaw),
	}
}
