package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ShopPricing is a shop's per-page rate table. A shop has at most one.
type ShopPricing struct {
	ID               uint            `gorm:"primaryKey" json:"id"`
	ShopID           uint            `gorm:"not null;uniqueIndex" json:"shop_id"` // foreign key to users table
	Shop             *User           `gorm:"foreignKey:ShopID" json:"-"`
	BWSinglePrice    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"bw_single_price"`
	BWDuplexPrice    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"bw_duplex_price"`
	ColorSinglePrice decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"color_single_price"`
	ColorDuplexPrice decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"color_duplex_price"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// TableName specifies the table name for the ShopPricing model
func (ShopPricing) TableName() string {
	return "shop_pricing"
}
