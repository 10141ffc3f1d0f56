package services

import (
	"time"

	"github.com/shopspring/decimal"

	"salonmarket-backend/models"
)

var hundred = decimal.NewFromInt(100)

// PriceQuote is the effective price of a service at an instant.
// DiscountPercentage and PromotionID are nil when no promotion applies.
type PriceQuote struct {
	BasePrice          decimal.Decimal `json:"basePrice"`
	DiscountPercentage *int            `json:"discountPercentage"`
	FinalPrice         decimal.Decimal `json:"finalPrice"`
	PromotionID        *string         `json:"promotionId,omitempty"`
}

// ResolvePrice applies the promotion active at the given time, if any, to the service's
// base price. The result is rounded half-up to two decimal places.
func ResolvePrice(service models.Service, promotions []models.Promotion, at time.Time) PriceQuote {
	return QuoteFromCatalog(service, NewPromotionCatalog(promotions, at))
}

// QuoteFromCatalog prices a service against an already partitioned catalog.
func QuoteFromCatalog(service models.Service, catalog *PromotionCatalog) PriceQuote {
	quote := PriceQuote{
		BasePrice:  service.Price,
		FinalPrice: service.Price,
	}
	active := catalog.Active()
	if active == nil {
		return quote
	}

	d := active.DiscountPercentage
	id := active.ID.String()
	quote.DiscountPercentage = &d
	quote.PromotionID = &id
	quote.FinalPrice = ApplyDiscount(service.Price, d)
	return quote
}

// ApplyDiscount returns price * (1 - percentage/100) rounded half-up to cents.
func ApplyDiscount(price decimal.Decimal, percentage int) decimal.Decimal {
	factor := hundred.Sub(decimal.NewFromInt(int64(percentage)))
	return price.Mul(factor).Div(hundred).Round(2)
}
