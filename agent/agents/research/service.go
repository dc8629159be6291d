package research

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
	"github.com/rs/zerolog/log"
	contractx "github.com/tanpawarit/research-commerce-assistant/agent/contract"
	promptx "github.com/tanpawarit/research-commerce-assistant/agent/prompt"
	toolx "github.com/tanpawarit/research-commerce-assistant/agent/tool"
	"golang.org/x/sync/errgroup"
)

// templateVars maps each lookup to its placeholder in the research prompt.
var templateVars = map[string]string{
	toolx.SourceWikipedia: promptx.VarWikipedia,
	toolx.SourceArxiv:     promptx.VarArxiv,
	toolx.SourceWeb:       promptx.VarWeb,
}

type Summarizer struct {
	sources []contractx.Lookup
	runner  compose.Runnable[map[string]any, *schema.Message]
}

func New(
	ctx context.Context,
	chatModel einomodel.BaseChatModel,
	sources []contractx.Lookup,
	promptTemplate string,
) (*Summarizer, error) {
	if chatModel == nil {
		return nil, errors.New("chat model is required")
	}
	if strings.TrimSpace(promptTemplate) == "" {
		return nil, errors.New("research prompt is required")
	}

	covered := make(map[string]bool, len(templateVars))
	for _, src := range sources {
		if src == nil {
			return nil, errors.New("nil research source")
		}
		v, ok := templateVars[src.Name()]
		if !ok {
			return nil, fmt.Errorf("research source %q has no prompt placeholder", src.Name())
		}
		covered[v] = true
	}
	if len(covered) != len(templateVars) {
		return nil, fmt.Errorf("research needs %d distinct sources, got %d", len(templateVars), len(covered))
	}

	runner, err := compileSummaryGraph(ctx, chatModel, promptTemplate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", contractx.ErrUpstream, err)
	}

	return &Summarizer{
		sources: sources,
		runner:  runner,
	}, nil
}

// Summarize queries every source and asks the model to summarize the
// combined text. A failure of any source aborts the whole run.
func (s *Summarizer) Summarize(ctx context.Context, query string) (contractx.ResearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return contractx.ResearchResult{}, fmt.Errorf("%w: research query is required", contractx.ErrValidation)
	}

	texts, err := s.lookupAll(ctx, query)
	if err != nil {
		return contractx.ResearchResult{}, err
	}

	vars := make(map[string]any, len(s.sources))
	sources := make(contractx.Sources, 0, len(s.sources))
	for i, src := range s.sources {
		vars[templateVars[src.Name()]] = texts[i]
		sources = append(sources, contractx.Source{Name: src.Name(), Text: texts[i]})
	}

	started := time.Now()
	msg, err := s.runner.Invoke(ctx, vars)
	if err != nil {
		return contractx.ResearchResult{}, fmt.Errorf("%w: summary completion: %w", contractx.ErrUpstream, err)
	}
	if msg == nil || strings.TrimSpace(msg.Content) == "" {
		return contractx.ResearchResult{}, fmt.Errorf("%w: summary completion returned no content", contractx.ErrUpstream)
	}
	log.Ctx(ctx).Debug().Dur("elapsed", time.Since(started)).Msg("summary completion done")

	return contractx.ResearchResult{
		Summary: strings.TrimSpace(msg.Content),
		Sources: sources,
	}, nil
}

// Run is Summarize with the result folded into an Outcome.
func (s *Summarizer) Run(ctx context.Context, query string) contractx.Outcome[contractx.ResearchResult] {
	res, err := s.Summarize(ctx, query)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("kind", string(contractx.KindOf(err))).Msg("research failed")
		return contractx.Failed[contractx.ResearchResult](err)
	}
	return contractx.Succeeded(res)
}

func (s *Summarizer) lookupAll(ctx context.Context, query string) ([]string, error) {
	texts := make([]string, len(s.sources))

	eg, egCtx := errgroup.WithContext(ctx)
	for i, src := range s.sources {
		i, src := i, src
		eg.Go(func() error {
			started := time.Now()
			text, err := src.Run(egCtx, query)
			if err != nil {
				return fmt.Errorf("%w: %s lookup: %w", contractx.ErrUpstream, src.Name(), err)
			}
			log.Ctx(ctx).Debug().
				Str("source", src.Name()).
				Int("chars", len(text)).
				Dur("elapsed", time.Since(started)).
				Msg("lookup done")
			texts[i] = text
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return texts, nil
}
