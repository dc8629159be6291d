package main

import (
	"context"
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	configx "github.com/tanpawarit/research-commerce-assistant/pkg/config"
	logx "github.com/tanpawarit/research-commerce-assistant/pkg/logger"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:   "assistant",
	Short: "Research topics and analyze Shopify stores",
	Long: `assistant summarizes research topics from Wikipedia, arXiv and web search,
and builds sales and inventory reports for Shopify stores.

Every result is saved as a markdown note under NOTES_DIR.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configx.SetEnvFile(envFile)

		logCfg, err := configx.New[logx.Config]("LOG")
		if err != nil {
			return err
		}
		logx.Init(*logCfg)

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		logger := log.Logger.With().
			Str("run_id", uuid.NewString()).
			Str("command", cmd.CommandPath()).
			Logger()
		cmd.SetContext(logger.WithContext(ctx))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env", "", "Path to an env file (default: ./.env when present)")

	storeCmd.AddCommand(storePublicCmd, storePrivateCmd)
	rootCmd.AddCommand(researchCmd, storeCmd, checkCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
