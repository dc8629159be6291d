package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	contractx "github.com/tanpawarit/research-commerce-assistant/agent/contract"
	"github.com/tanpawarit/research-commerce-assistant/agent/llm"
	configx "github.com/tanpawarit/research-commerce-assistant/pkg/config"
	groqx "github.com/tanpawarit/research-commerce-assistant/pkg/groq"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify the LLM configuration against the provider",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, err := configx.New[groqx.Config]("GROQ")
		if err != nil {
			return err
		}
		if err := llm.Validate(*cfg); err != nil {
			return err
		}

		info, err := groqx.CheckModel(ctx, *cfg)
		if err != nil {
			return fmt.Errorf("%w: %v", contractx.ErrUpstream, err)
		}
		log.Ctx(ctx).Info().Str("model", info.ID).Msg("model reachable")
		fmt.Fprintf(cmd.OutOrStdout(), "model %s is available (owned by %s)\n", info.ID, info.OwnedBy)
		return nil
	},
}
