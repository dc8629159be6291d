package commerce

import (
	"context"
	"errors"
	"fmt"

	"github.com/cloudwego/eino/compose"
	"github.com/rs/zerolog/log"
	contractx "github.com/tanpawarit/research-commerce-assistant/agent/contract"
)

// Agent builds storefront reports. Analyze never returns a Go error: every
// failure comes back inside the Outcome.
type Agent struct {
	storefront  contractx.Storefront
	graphRunner compose.Runnable[contractx.StoreRequest, contractx.Report]
}

func New(ctx context.Context, storefront contractx.Storefront) (*Agent, error) {
	if storefront == nil {
		return nil, errors.New("storefront client is required")
	}

	a := &Agent{
		storefront: storefront,
	}

	runner, err := a.compileAnalyzeGraph(ctx)
	if err != nil {
		return nil, err
	}
	a.graphRunner = runner

	return a, nil
}

func (a *Agent) Analyze(ctx context.Context, req contractx.StoreRequest) contractx.Outcome[contractx.Report] {
	logger := log.Ctx(ctx).With().
		Str("mode", string(req.Mode)).
		Int("limit", req.Limit).
		Logger()

	out, err := a.graphRunner.Invoke(ctx, req)
	if err != nil {
		cause := stepCause(err)
		logger.Error().Err(err).Str("kind", string(contractx.KindOf(cause))).Msg("store analysis failed")
		return contractx.Failed[contractx.Report](fmt.Errorf("Shopify API error: %w", cause))
	}

	logger.Info().
		Str("store", out.Store).
		Int("products", len(out.TopProducts)).
		Int("alerts", len(out.InventoryAlerts)).
		Stringer("total_sales", out.TotalSales).
		Msg("store analysis complete")
	return contractx.Succeeded(out)
}
