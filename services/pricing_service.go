package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/quickprint-campus/quickprint-api/models"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RatesInput carries a shop's requested rates. Omitted fields take the
// corresponding default rate, so applying it always replaces all four rates.
type RatesInput struct {
	BWSingle    *decimal.Decimal `json:"bw_single_price"`
	BWDuplex    *decimal.Decimal `json:"bw_duplex_price"`
	ColorSingle *decimal.Decimal `json:"color_single_price"`
	ColorDuplex *decimal.Decimal `json:"color_duplex_price"`
}

// RateTable validates the input and resolves it into a complete rate table
func (in RatesInput) RateTable() (RateTable, error) {
	defaults := DefaultRates()
	var rates RateTable
	var err error
	if rates.BWSingle, err = rateOrDefault("bw_single_price", in.BWSingle, defaults.BWSingle); err != nil {
		return RateTable{}, err
	}
	if rates.BWDuplex, err = rateOrDefault("bw_duplex_price", in.BWDuplex, defaults.BWDuplex); err != nil {
		return RateTable{}, err
	}
	if rates.ColorSingle, err = rateOrDefault("color_single_price", in.ColorSingle, defaults.ColorSingle); err != nil {
		return RateTable{}, err
	}
	if rates.ColorDuplex, err = rateOrDefault("color_duplex_price", in.ColorDuplex, defaults.ColorDuplex); err != nil {
		return RateTable{}, err
	}
	return rates, nil
}

func rateOrDefault(field string, value *decimal.Decimal, def decimal.Decimal) (decimal.Decimal, error) {
	if value == nil {
		return def, nil
	}
	if value.IsNegative() {
		return decimal.Zero, newValidationError(field, "must not be negative, got %s", value.String())
	}
	return value.RoundBank(MoneyScale), nil
}

// PricingService manages shop rate tables
type PricingService struct {
	db         *gorm.DB
	logger     *zap.Logger
	authorizer Authorizer
}

// NewPricingService creates a pricing service backed by db.
// A nil authorizer permits everything.
func NewPricingService(db *gorm.DB, logger *zap.Logger, authorizer Authorizer) *PricingService {
	if authorizer == nil {
		authorizer = AllowAll{}
	}
	return &PricingService{db: db, logger: logger, authorizer: authorizer}
}

var pricingServiceInstance *PricingService

// InitPricingService initializes the shared pricing service
func InitPricingService(db *gorm.DB, logger *zap.Logger, authorizer Authorizer) *PricingService {
	pricingServiceInstance = NewPricingService(db, logger, authorizer)
	return pricingServiceInstance
}

// GetPricingService returns the initialized pricing service instance
func GetPricingService() *PricingService {
	return pricingServiceInstance
}

// Get returns the shop's configured rates or the defaults. It never reports NotFound.
func (s *PricingService) Get(ctx context.Context, shopID uint) (ResolvedPricing, error) {
	return ResolvePricing(ctx, s.db, shopID)
}

// Create stores the first rate table of a shop. It fails with ErrAlreadyExists
// when the shop already has one; use Update to change it.
func (s *PricingService) Create(ctx context.Context, shopID uint, in RatesInput) (ResolvedPricing, error) {
	rates, err := s.prepare(ctx, shopID, in)
	if err != nil {
		return ResolvedPricing{}, err
	}

	var pricing models.ShopPricing
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireUser(tx, "shop", shopID); err != nil {
			return err
		}
		var count int64
		if err := tx.Model(&models.ShopPricing{}).Where("shop_id = ?", shopID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("pricing for shop %d: %w", shopID, ErrAlreadyExists)
		}
		pricing = newShopPricing(shopID, rates)
		return createPricing(tx, &pricing)
	})
	if err != nil {
		return ResolvedPricing{}, storageErr("create pricing", err)
	}

	s.logger.Info("shop pricing created", zap.Uint("shop_id", shopID), zap.Uint("pricing_id", pricing.ID))
	return configuredPricing(pricing), nil
}

// Update replaces all four rates of a shop, creating the rate table if absent
func (s *PricingService) Update(ctx context.Context, shopID uint, in RatesInput) (ResolvedPricing, error) {
	rates, err := s.prepare(ctx, shopID, in)
	if err != nil {
		return ResolvedPricing{}, err
	}

	var pricing models.ShopPricing
	created := false
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireUser(tx, "shop", shopID); err != nil {
			return err
		}
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("shop_id = ?", shopID).First(&pricing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			created = true
			pricing = newShopPricing(shopID, rates)
			return createPricing(tx, &pricing)
		}
		if err != nil {
			return err
		}

		pricing.BWSinglePrice = rates.BWSingle
		pricing.BWDuplexPrice = rates.BWDuplex
		pricing.ColorSinglePrice = rates.ColorSingle
		pricing.ColorDuplexPrice = rates.ColorDuplex
		return tx.Model(&models.ShopPricing{}).Where("id = ?", pricing.ID).Updates(map[string]interface{}{
			"bw_single_price":    rates.BWSingle,
			"bw_duplex_price":    rates.BWDuplex,
			"color_single_price": rates.ColorSingle,
			"color_duplex_price": rates.ColorDuplex,
		}).Error
	})
	if err != nil {
		return ResolvedPricing{}, storageErr("update pricing", err)
	}

	s.logger.Info("shop pricing updated", zap.Uint("shop_id", shopID), zap.Bool("created", created))
	return configuredPricing(pricing), nil
}

func (s *PricingService) prepare(ctx context.Context, shopID uint, in RatesInput) (RateTable, error) {
	if shopID == 0 {
		return RateTable{}, newValidationError("shop_id", "is required")
	}
	if err := s.authorizer.Authorize(ctx, ActionConfigurePrice, Resource{ShopID: shopID}); err != nil {
		return RateTable{}, fmt.Errorf("%w: %s: %v", ErrForbidden, ActionConfigurePrice, err)
	}
	return in.RateTable()
}

func newShopPricing(shopID uint, rates RateTable) models.ShopPricing {
	return models.ShopPricing{
		ShopID:           shopID,
		BWSinglePrice:    rates.BWSingle,
		BWDuplexPrice:    rates.BWDuplex,
		ColorSinglePrice: rates.ColorSingle,
		ColorDuplexPrice: rates.ColorDuplex,
	}
}

// createPricing inserts the row, mapping a unique index violation from a
// concurrent create to ErrAlreadyExists
func createPricing(tx *gorm.DB, pricing *models.ShopPricing) error {
	err := tx.Create(pricing).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("pricing for shop %d: %w", pricing.ShopID, ErrAlreadyExists)
	}
	return err
}
