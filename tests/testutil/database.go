package testutil

import (
	"testing"

	"github.com/quickprint-campus/quickprint-api/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDB opens a migrated in-memory SQLite database.
// The pool is limited to one connection because every new connection to
// ":memory:" would otherwise see its own empty database.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

// CreateUser inserts a user with the given role
func CreateUser(t *testing.T, db *gorm.DB, name, role string) *models.User {
	t.Helper()

	user := &models.User{Name: name, Phone: "555-0100", Role: role}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create user %q: %v", name, err)
	}
	return user
}

// CreateStudentAndShop inserts one student and one shop owner
func CreateStudentAndShop(t *testing.T, db *gorm.DB) (student, shop *models.User) {
	t.Helper()
	return CreateUser(t, db, "Test Student", models.RoleStudent), CreateUser(t, db, "Campus Print Shop", models.RoleShopOwner)
}
