package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserTableName(t *testing.T) {
	user := User{}
	assert.Equal(t, "users", user.TableName(), "Table name should be 'users'")
}

func TestUserStructFields(t *testing.T) {
	user := User{
		Name:  "Print Hub",
		Phone: "555-0100",
		Role:  RoleShopOwner,
	}

	assert.Equal(t, "Print Hub", user.Name, "Name should be set correctly")
	assert.Equal(t, "555-0100", user.Phone, "Phone should be set correctly")
	assert.Equal(t, "shop_owner", user.Role, "Role should be set correctly")
}

func TestUserDefaultValues(t *testing.T) {
	user := User{
		Name: "New Student",
	}

	assert.Equal(t, "New Student", user.Name, "Name should be set")
	assert.Equal(t, "", user.Role, "Role should be empty string by default in Go struct")
}

func TestValidRole(t *testing.T) {
	tests := []struct {
		name  string
		role  string
		valid bool
	}{
		{"student role", "student", true},
		{"shop owner role", "shop_owner", true},
		{"unknown role", "technician", false},
		{"empty role", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, ValidRole(tt.role))
		})
	}
}
