package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle state of an order
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusCompleted  OrderStatus = "COMPLETED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

// Valid reports whether s is a known order status
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// ItemStatus is the print state of a single order item
type ItemStatus string

const (
	ItemStatusPending ItemStatus = "PENDING"
	ItemStatusPrinted ItemStatus = "PRINTED"
)

// Valid reports whether s is a known item status
func (s ItemStatus) Valid() bool {
	return s == ItemStatusPending || s == ItemStatusPrinted
}

// Orientation is informational only; it does not affect price
type Orientation string

const (
	OrientationPortrait  Orientation = "PORTRAIT"
	OrientationLandscape Orientation = "LANDSCAPE"
)

// Valid reports whether o is a known orientation
func (o Orientation) Valid() bool {
	return o == OrientationPortrait || o == OrientationLandscape
}

// Order is a print job placed by a student against a shop
type Order struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	UserID      uint            `gorm:"not null;index" json:"user_id"` // placing student
	User        *User           `gorm:"foreignKey:UserID" json:"-"`
	ShopID      uint            `gorm:"not null;index" json:"shop_id"` // receiving shop
	Shop        *User           `gorm:"foreignKey:ShopID" json:"-"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_amount"` // computed at creation, never recomputed
	Status      OrderStatus     `gorm:"size:20;not null;default:'PENDING'" json:"status"`
	Items       []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// OrderItem is one file to print within an order
type OrderItem struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	OrderID     uint            `gorm:"not null;index" json:"order_id"`
	FileURL     string          `gorm:"type:text;not null" json:"file_url"`
	FileName    string          `gorm:"size:255;not null" json:"file_name"`
	Copies      int             `gorm:"not null;check:copies > 0" json:"copies"`
	PageCount   int             `gorm:"not null;default:1;check:page_count > 0" json:"page_count"`
	IsColor     bool            `gorm:"not null;default:false" json:"is_color"`
	IsDuplex    bool            `gorm:"not null;default:false" json:"is_duplex"`
	Orientation Orientation     `gorm:"size:20;not null;default:'PORTRAIT'" json:"orientation"`
	Status      ItemStatus      `gorm:"size:20;not null;default:'PENDING'" json:"status"`
	Cost        decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"cost"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// TableName specifies the table name for the OrderItem model
func (OrderItem) TableName() string {
	return "order_items"
}

// AllModels lists every model in migration order
func AllModels() []interface{} {
	return []interface{}{&User{}, &ShopPricing{}, &Order{}, &OrderItem{}}
}
