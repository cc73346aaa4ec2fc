package services

import (
	"context"
	"errors"
	"strings"

	"github.com/quickprint-campus/quickprint-api/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CreateUserInput describes a new student or shop owner
type CreateUserInput struct {
	Name  string
	Phone string
	Role  string
}

// UserService stores the students and shops that orders refer to
type UserService struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewUserService creates a user service backed by db
func NewUserService(db *gorm.DB, logger *zap.Logger) *UserService {
	return &UserService{db: db, logger: logger}
}

var userServiceInstance *UserService

// InitUserService initializes the shared user service
func InitUserService(db *gorm.DB, logger *zap.Logger) *UserService {
	userServiceInstance = NewUserService(db, logger)
	return userServiceInstance
}

// GetUserService returns the initialized user service instance
func GetUserService() *UserService {
	return userServiceInstance
}

// CreateUser stores a user. Role defaults to student.
func (s *UserService) CreateUser(ctx context.Context, in CreateUserInput) (*models.User, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, newValidationError("name", "is required")
	}
	role := in.Role
	if role == "" {
		role = models.RoleStudent
	}
	if !models.ValidRole(role) {
		return nil, newValidationError("role", "unknown role %q", role)
	}

	user := models.User{Name: name, Phone: strings.TrimSpace(in.Phone), Role: role}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, storageErr("create user", err)
	}

	s.logger.Info("user created", zap.Uint("user_id", user.ID), zap.String("role", user.Role))
	return &user, nil
}

// GetUser returns the user with the given id
func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("user", id)
	}
	if err != nil {
		return nil, storageErr("get user", err)
	}
	return &user, nil
}
