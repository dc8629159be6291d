// Package report turns raw storefront records into inventory and sales rollups.
package report

import (
	"fmt"

	"github.com/shopspring/decimal"
	contractx "github.com/tanpawarit/research-commerce-assistant/agent/contract"
)

// LowStockThreshold is the fixed policy: a tracked variant with fewer units
// than this raises an alert.
const LowStockThreshold = 10

// PublicNote accompanies public reports.
const PublicNote = "Sales data is private and not available via public endpoints."

// Build aggregates products and orders into a Report. Orders are ignored in
// public mode.
func Build(products []contractx.Product, orders []contractx.Order, mode contractx.Mode, store string) contractx.Report {
	r := contractx.Report{
		Mode:            mode,
		Store:           store,
		TopProducts:     TopProducts(products),
		InventoryAlerts: InventoryAlerts(products),
	}

	switch mode {
	case contractx.ModePrivate:
		r.TotalSales = contractx.SalesOf(TotalSales(orders))
	default:
		r.TotalSales = contractx.NoSales()
		r.Products = Summaries(products)
		r.Note = PublicNote
	}
	return r
}

// TopProducts lists titles in source order, keeping duplicates and nulls.
func TopProducts(products []contractx.Product) []*string {
	titles := make([]*string, 0, len(products))
	for _, p := range products {
		titles = append(titles, p.Title)
	}
	return titles
}

func InventoryAlerts(products []contractx.Product) []string {
	alerts := []string{}
	for _, p := range products {
		for _, v := range p.Variants {
			if v.InventoryQuantity == nil || *v.InventoryQuantity >= LowStockThreshold {
				continue
			}
			alerts = append(alerts, fmt.Sprintf("%s (variant %s) low: %d left", p.TitleText(), v.Title, *v.InventoryQuantity))
		}
	}
	return alerts
}

// TotalSales sums order totals; missing or non-numeric totals count as zero.
func TotalSales(orders []contractx.Order) decimal.Decimal {
	total := decimal.Zero
	for _, o := range orders {
		total = total.Add(o.TotalPrice.Decimal())
	}
	return total
}

// Summaries builds the public listing from each product's first variant.
func Summaries(products []contractx.Product) []contractx.ProductSummary {
	out := make([]contractx.ProductSummary, 0, len(products))
	for _, p := range products {
		s := contractx.ProductSummary{
			Title:       p.Title,
			Handle:      p.Handle,
			ProductType: p.ProductType,
			Vendor:      p.Vendor,
		}
		if len(p.Variants) > 0 {
			first := p.Variants[0]
			if first.Price != "" {
				price := first.Price
				s.Price = &price
			}
			s.Inventory = contractx.InventoryLevel{Quantity: first.InventoryQuantity}
		}
		out = append(out, s)
	}
	return out
}
