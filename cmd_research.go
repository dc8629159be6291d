package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/tanpawarit/research-commerce-assistant/agent/agents/research"
	contractx "github.com/tanpawarit/research-commerce-assistant/agent/contract"
	"github.com/tanpawarit/research-commerce-assistant/agent/llm"
	"github.com/tanpawarit/research-commerce-assistant/agent/notes"
	promptx "github.com/tanpawarit/research-commerce-assistant/agent/prompt"
	toolx "github.com/tanpawarit/research-commerce-assistant/agent/tool"
	configx "github.com/tanpawarit/research-commerce-assistant/pkg/config"
	groqx "github.com/tanpawarit/research-commerce-assistant/pkg/groq"
)

var researchCmd = &cobra.Command{
	Use:   "research <query...>",
	Short: "Summarize a topic from Wikipedia, arXiv and web search",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runResearch,
}

func runResearch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	query := strings.TrimSpace(strings.Join(args, " "))

	groqCfg, err := configx.New[groqx.Config]("GROQ")
	if err != nil {
		return err
	}
	chatModel, err := llm.NewChatModel(ctx, *groqCfg)
	if err != nil {
		return err
	}

	var sourcesCfg toolx.SourcesConfig
	wiki, err := configx.New[toolx.WikipediaConfig]("WIKIPEDIA")
	if err != nil {
		return err
	}
	arxiv, err := configx.New[toolx.ArxivConfig]("ARXIV")
	if err != nil {
		return err
	}
	tavily, err := configx.New[toolx.TavilyConfig]("TAVILY")
	if err != nil {
		return err
	}
	sourcesCfg.Wikipedia, sourcesCfg.Arxiv, sourcesCfg.Tavily = *wiki, *arxiv, *tavily

	summarizer, err := research.New(ctx, chatModel, toolx.BuildSources(sourcesCfg), promptx.LoadPromptSet().Research)
	if err != nil {
		return err
	}

	log.Ctx(ctx).Info().Str("query", query).Msg("research started")
	out := summarizer.Run(ctx, query)
	if !out.OK() {
		log.Ctx(ctx).Error().Err(out.Err).Str("kind", string(contractx.KindOf(out.Err))).Msg("research failed")
		return fmt.Errorf("research failed: %w", out.Err)
	}

	printResearch(cmd.OutOrStdout(), out.Value)

	_, err = saveNote(ctx, cmd.OutOrStdout(), notes.Note{
		Title:        researchNoteTitle(query),
		Summary:      out.Value.Summary,
		Sources:      out.Value.Sources,
		BusinessData: map[string]any{},
	})
	return err
}

func researchNoteTitle(query string) string {
	return "Research_" + query
}

func printResearch(w io.Writer, res contractx.ResearchResult) {
	fmt.Fprintf(w, "Summary:\n%s\n", res.Summary)
	fmt.Fprintln(w, "\nSources:")
	for _, src := range res.Sources {
		fmt.Fprintf(w, "\n[%s]\n%s\n", src.Name, src.Text)
	}
}
