package contract

import "context"

// Lookup is one external knowledge source queried by the research summarizer.
type Lookup interface {
	Name() string
	Run(ctx context.Context, query string) (string, error)
}

// Storefront fetches catalog and order data from a Shopify-compatible store.
type Storefront interface {
	PublicProducts(ctx context.Context, storeURL string, limit int) ([]Product, error)
	PrivateProducts(ctx context.Context, limit int) ([]Product, error)
	PrivateOrders(ctx context.Context, limit int) ([]Order, error)
	StoreDomain() string
}
