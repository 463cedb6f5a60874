package pricing

import (
	"github.com/shopspring/decimal"

	"storefront-api/internal/config"
	"storefront-api/internal/model"
)

// Quote is the full price breakdown of an order, rounded to 2 decimal places.
type Quote struct {
	ItemsPrice    float64
	ShippingPrice float64
	TaxPrice      float64
	TotalPrice    float64
}

// ItemsPrice is the sum of price*qty over the snapshot items. All arithmetic
// runs on decimals so that 0.1+0.2 style float drift never reaches an order.
func ItemsPrice(items []model.OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		price := decimal.NewFromFloat(item.Price)
		total = total.Add(price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total.Round(2)
}

// QuoteWithBreakdown prices an order whose shipping and tax were supplied by
// the caller; only itemsPrice and the grand total are recomputed.
func QuoteWithBreakdown(items []model.OrderItem, shippingPrice, taxPrice float64) Quote {
	itemsPrice := ItemsPrice(items)
	shipping := decimal.NewFromFloat(shippingPrice).Round(2)
	tax := decimal.NewFromFloat(taxPrice).Round(2)
	total := itemsPrice.Add(shipping).Add(tax).Round(2)

	return Quote{
		ItemsPrice:    itemsPrice.InexactFloat64(),
		ShippingPrice: shipping.InexactFloat64(),
		TaxPrice:      tax.InexactFloat64(),
		TotalPrice:    total.InexactFloat64(),
	}
}

// QuoteFromRules prices an order entirely server-side: flat-rate shipping
// waived above the configured threshold, tax as a fraction of the items price.
func QuoteFromRules(items []model.OrderItem, rules config.Pricing) Quote {
	itemsPrice := ItemsPrice(items)

	shipping := decimal.NewFromFloat(rules.FlatShipping)
	if itemsPrice.GreaterThan(decimal.NewFromFloat(rules.FreeShippingOver)) {
		shipping = decimal.Zero
	}

	tax := itemsPrice.Mul(decimal.NewFromFloat(rules.TaxRate)).Round(2)
	total := itemsPrice.Add(shipping).Add(tax).Round(2)

	return Quote{
		ItemsPrice:    itemsPrice.InexactFloat64(),
		ShippingPrice: shipping.InexactFloat64(),
		TaxPrice:      tax.InexactFloat64(),
		TotalPrice:    total.InexactFloat64(),
	}
}

// Amount renders a price the way the payment provider wants it: a plain
// decimal string with two places, e.g. "26.00".
func Amount(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}
