package commercenode

import (
	"context"
	"fmt"

	contractx "github.com/tanpawarit/research-commerce-assistant/agent/contract"
	storefrontx "github.com/tanpawarit/research-commerce-assistant/agent/storefront"
)

func FetchPublic(ctx context.Context, in *GraphState, storefront contractx.Storefront) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	products, err := storefront.PublicProducts(ctx, in.StoreURL, in.Limit)
	if err != nil {
		return nil, err
	}
	in.Store = storefrontx.NormalizeStoreURL(in.StoreURL)
	in.Products = products
	return in, nil
}
