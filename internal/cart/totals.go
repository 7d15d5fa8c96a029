package cart

import "github.com/shopspring/decimal"

var (
	// ShippingThreshold is the subtotal from which shipping is free.
	ShippingThreshold = decimal.NewFromInt(300)
	ShippingFee       = decimal.NewFromInt(50)
	// FallbackPrice is charged for lines whose product is not in the catalog.
	FallbackPrice = decimal.RequireFromString("54.95")
)

func ShippingFor(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.GreaterThanOrEqual(ShippingThreshold) {
		return decimal.Zero
	}
	return ShippingFee
}
