package commercenode

import (
	"context"
	"fmt"

	contractx "github.com/tanpawarit/research-commerce-assistant/agent/contract"
)

// FetchPrivate loads orders, then products, from the configured admin store.
func FetchPrivate(ctx context.Context, in *GraphState, storefront contractx.Storefront) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	orders, err := storefront.PrivateOrders(ctx, in.Limit)
	if err != nil {
		return nil, err
	}
	products, err := storefront.PrivateProducts(ctx, in.Limit)
	if err != nil {
		return nil, err
	}

	in.Store = storefront.StoreDomain()
	in.Orders = orders
	in.Products = products
	return in, nil
}
