package models

import (
	"time"

	"gorm.io/gorm"
)

// User roles. A user places orders as a student or receives them as a shop.
const (
	RoleStudent   = "student"
	RoleShopOwner = "shop_owner"
)

// User represents a student or a print shop owner.
// Role is advisory; nothing in the data model enforces it.
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Phone     string         `gorm:"size:50" json:"phone"`
	Role      string         `gorm:"size:20;not null;default:'student'" json:"role"` // "student" or "shop_owner"
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}

// ValidRole reports whether role is one of the known user roles
func ValidRole(role string) bool {
	return role == RoleStudent || role == RoleShopOwner
}
