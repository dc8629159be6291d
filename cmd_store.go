package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/tanpawarit/research-commerce-assistant/agent/agents/commerce"
	contractx "github.com/tanpawarit/research-commerce-assistant/agent/contract"
	"github.com/tanpawarit/research-commerce-assistant/agent/notes"
	"github.com/tanpawarit/research-commerce-assistant/agent/storefront"
	configx "github.com/tanpawarit/research-commerce-assistant/pkg/config"
)

const (
	defaultStoreLimit = 10
	maxStoreLimit     = 50
)

var storeLimit int

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Analyze a Shopify store",
	Long: `Build a sales and inventory report for a Shopify store.

Available subcommands:
  public  - Scrape the anonymous product catalog of any store
  private - Read orders and products of the configured store`,
}

var storePublicCmd = &cobra.Command{
	Use:   "public <url>",
	Short: "Analyze the public catalog of a store",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStore(cmd, contractx.StoreRequest{
			Mode:     contractx.ModePublic,
			StoreURL: args[0],
			Limit:    storeLimit,
		})
	},
}

var storePrivateCmd = &cobra.Command{
	Use:   "private",
	Short: "Analyze the configured store through the admin API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStore(cmd, contractx.StoreRequest{
			Mode:  contractx.ModePrivate,
			Limit: storeLimit,
		})
	},
}

func init() {
	storeCmd.PersistentFlags().IntVar(&storeLimit, "limit", defaultStoreLimit, fmt.Sprintf("Number of items to fetch (1-%d)", maxStoreLimit))
}

func validateStoreLimit(limit int) error {
	if limit < 1 || limit > maxStoreLimit {
		return fmt.Errorf("%w: --limit must be between 1 and %d, got %d", contractx.ErrValidation, maxStoreLimit, limit)
	}
	return nil
}

func storeNoteHeader(req contractx.StoreRequest) (title, summary string) {
	if req.Mode == contractx.ModePublic {
		return "Public Store Report", "Public scrape for " + req.StoreURL
	}
	return "Private Shopify Report", "Private Shopify stats"
}

func runStore(cmd *cobra.Command, req contractx.StoreRequest) error {
	ctx := cmd.Context()
	if err := validateStoreLimit(req.Limit); err != nil {
		return err
	}

	shopCfg, err := configx.New[storefront.Config]("SHOPIFY")
	if err != nil {
		return err
	}
	agent, err := commerce.New(ctx, storefront.New(*shopCfg))
	if err != nil {
		return err
	}

	out := agent.Analyze(ctx, req)
	if !out.OK() {
		log.Ctx(ctx).Warn().Err(out.Err).Str("kind", string(contractx.KindOf(out.Err))).Msg("store analysis failed, saving error payload")
	}

	if err := printJSON(cmd.OutOrStdout(), out); err != nil {
		return err
	}

	title, summary := storeNoteHeader(req)
	_, err = saveNote(ctx, cmd.OutOrStdout(), notes.Note{
		Title:        title,
		Summary:      summary,
		BusinessData: out,
	})
	return err
}

func printJSON(w io.Writer, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	_, err := w.Write(buf.Bytes())
	return err
}
