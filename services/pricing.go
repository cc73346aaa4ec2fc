package services

import (
	"context"
	"errors"

	"github.com/quickprint-campus/quickprint-api/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MoneyScale is the number of decimal places kept for rates, item costs and totals
const MoneyScale = 2

// RateTable holds the four per-page prices of a shop
type RateTable struct {
	BWSingle    decimal.Decimal `json:"bw_single_price"`
	BWDuplex    decimal.Decimal `json:"bw_duplex_price"`
	ColorSingle decimal.Decimal `json:"color_single_price"`
	ColorDuplex decimal.Decimal `json:"color_duplex_price"`
}

// DefaultRates returns the rates charged by shops that have not configured pricing
func DefaultRates() RateTable {
	return RateTable{
		BWSingle:    decimal.RequireFromString("1.00"),
		BWDuplex:    decimal.RequireFromString("0.80"),
		ColorSingle: decimal.RequireFromString("5.00"),
		ColorDuplex: decimal.RequireFromString("4.00"),
	}
}

// RateFor selects the per-page rate for a color/duplex combination
func (r RateTable) RateFor(isColor, isDuplex bool) decimal.Decimal {
	switch {
	case isColor && isDuplex:
		return r.ColorDuplex
	case isColor:
		return r.ColorSingle
	case isDuplex:
		return r.BWDuplex
	default:
		return r.BWSingle
	}
}

func ratesOf(p *models.ShopPricing) RateTable {
	return RateTable{
		BWSingle:    p.BWSinglePrice,
		BWDuplex:    p.BWDuplexPrice,
		ColorSingle: p.ColorSinglePrice,
		ColorDuplex: p.ColorDuplexPrice,
	}
}

// PricingSource tells whether a rate table came from storage or the built-in default
type PricingSource int

const (
	PricingDefault PricingSource = iota
	PricingConfigured
)

// ResolvedPricing is the result of resolving a shop's rates
type ResolvedPricing struct {
	Source PricingSource
	Rates  RateTable
	// Pricing is the persisted row; zero valued (ID 0) when Source is PricingDefault
	Pricing models.ShopPricing
}

// IsDefault reports whether the shop has no configured pricing
func (r ResolvedPricing) IsDefault() bool {
	return r.Source == PricingDefault
}

func configuredPricing(p models.ShopPricing) ResolvedPricing {
	return ResolvedPricing{Source: PricingConfigured, Rates: ratesOf(&p), Pricing: p}
}

func defaultPricing(shopID uint) ResolvedPricing {
	rates := DefaultRates()
	return ResolvedPricing{
		Source: PricingDefault,
		Rates:  rates,
		Pricing: models.ShopPricing{
			ShopID:           shopID,
			BWSinglePrice:    rates.BWSingle,
			BWDuplexPrice:    rates.BWDuplex,
			ColorSinglePrice: rates.ColorSingle,
			ColorDuplexPrice: rates.ColorDuplex,
		},
	}
}

// ResolvePricing looks up the rate table for shopID, falling back to DefaultRates.
// A missing row is not an error; only storage failures are returned.
func ResolvePricing(ctx context.Context, db *gorm.DB, shopID uint) (ResolvedPricing, error) {
	var pricing models.ShopPricing
	err := db.WithContext(ctx).Where("shop_id = ?", shopID).First(&pricing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return defaultPricing(shopID), nil
	}
	if err != nil {
		return ResolvedPricing{}, storageErr("resolve pricing", err)
	}
	return configuredPricing(pricing), nil
}

// LineItem is a requested order item before it is priced
type LineItem struct {
	FileURL     string             `json:"file_url" binding:"required"`
	FileName    string             `json:"file_name" binding:"required"`
	Copies      int                `json:"copies"`
	PageCount   int                `json:"page_count"`
	IsColor     bool               `json:"is_color"`
	IsDuplex    bool               `json:"is_duplex"`
	Orientation models.Orientation `json:"orientation"`
}

// ItemCost is the price of a single line item: rate * pages * copies
func ItemCost(item LineItem, rates RateTable) decimal.Decimal {
	rate := rates.RateFor(item.IsColor, item.IsDuplex)
	return rate.Mul(decimal.NewFromInt(int64(item.PageCount))).
		Mul(decimal.NewFromInt(int64(item.Copies))).
		RoundBank(MoneyScale)
}

// PriceItems computes each item's cost and the order total.
// Costs are rounded half-even to MoneyScale before summing.
func PriceItems(items []LineItem, rates RateTable) ([]decimal.Decimal, decimal.Decimal, error) {
	if len(items) == 0 {
		return nil, decimal.Zero, newValidationError("items", "an order needs at least one item")
	}

	costs := make([]decimal.Decimal, len(items))
	total := decimal.Zero
	for i, item := range items {
		if item.PageCount <= 0 {
			return nil, decimal.Zero, newValidationError("items.page_count", "item %d: page_count must be positive, got %d", i, item.PageCount)
		}
		if item.Copies <= 0 {
			return nil, decimal.Zero, newValidationError("items.copies", "item %d: copies must be positive, got %d", i, item.Copies)
		}
		costs[i] = ItemCost(item, rates)
		total = total.Add(costs[i])
	}
	return costs, total.RoundBank(MoneyScale), nil
}
