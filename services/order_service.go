package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/quickprint-campus/quickprint-api/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CreateOrderInput is a student's order against a shop
type CreateOrderInput struct {
	UserID uint
	ShopID uint
	Items  []LineItem
}

// OrderService is the only component that mutates orders and their items
type OrderService struct {
	db         *gorm.DB
	logger     *zap.Logger
	metrics    *Metrics
	authorizer Authorizer
}

// OrderServiceOption configures an OrderService
type OrderServiceOption func(*OrderService)

// WithOrderAuthorizer sets the capability check run before status changes
func WithOrderAuthorizer(a Authorizer) OrderServiceOption {
	return func(s *OrderService) { s.authorizer = a }
}

// WithOrderMetrics sets the metrics the service records to
func WithOrderMetrics(m *Metrics) OrderServiceOption {
	return func(s *OrderService) { s.metrics = m }
}

// NewOrderService creates an order service backed by db
func NewOrderService(db *gorm.DB, logger *zap.Logger, opts ...OrderServiceOption) *OrderService {
	s := &OrderService{
		db:         db,
		logger:     logger,
		metrics:    GetMetrics(),
		authorizer: AllowAll{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var orderServiceInstance *OrderService

// InitOrderService initializes the shared order service
func InitOrderService(db *gorm.DB, logger *zap.Logger, opts ...OrderServiceOption) *OrderService {
	orderServiceInstance = NewOrderService(db, logger, opts...)
	return orderServiceInstance
}

// GetOrderService returns the initialized order service instance
func GetOrderService() *OrderService {
	return orderServiceInstance
}

// CreateOrder prices the items against the shop's rates and stores the order
// and its items in one transaction. The order and every item start PENDING.
func (s *OrderService) CreateOrder(ctx context.Context, in CreateOrderInput) (*models.Order, error) {
	if in.UserID == 0 {
		return nil, newValidationError("user_id", "is required")
	}
	if in.ShopID == 0 {
		return nil, newValidationError("shop_id", "is required")
	}
	items, err := normalizeItems(in.Items)
	if err != nil {
		return nil, err
	}

	var order models.Order
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireUser(tx, "user", in.UserID); err != nil {
			return err
		}
		if err := requireUser(tx, "shop", in.ShopID); err != nil {
			return err
		}

		pricing, err := ResolvePricing(ctx, tx, in.ShopID)
		if err != nil {
			return err
		}
		costs, total, err := PriceItems(items, pricing.Rates)
		if err != nil {
			return err
		}

		order = models.Order{
			UserID:      in.UserID,
			ShopID:      in.ShopID,
			TotalAmount: total,
			Status:      models.OrderStatusPending,
			Items:       make([]models.OrderItem, len(items)),
		}
		for i, item := range items {
			order.Items[i] = models.OrderItem{
				FileURL:     item.FileURL,
				FileName:    item.FileName,
				Copies:      item.Copies,
				PageCount:   item.PageCount,
				IsColor:     item.IsColor,
				IsDuplex:    item.IsDuplex,
				Orientation: item.Orientation,
				Status:      models.ItemStatusPending,
				Cost:        costs[i],
			}
		}

		// Items are inserted with the order in this transaction
		return tx.Create(&order).Error
	})
	if err != nil {
		return nil, storageErr("create order", err)
	}

	s.metrics.orderCreated(order.TotalAmount)
	s.logger.Info("order created",
		zap.Uint("order_id", order.ID),
		zap.Uint("user_id", order.UserID),
		zap.Uint("shop_id", order.ShopID),
		zap.Int("items", len(order.Items)),
		zap.String("total_amount", order.TotalAmount.StringFixed(MoneyScale)),
	)
	return &order, nil
}

// GetOrder returns the order with its items
func (s *OrderService) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).Preload("Items", orderedItems).First(&order, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("order", id)
	}
	if err != nil {
		return nil, storageErr("get order", err)
	}
	return &order, nil
}

// ListOrdersByShop returns every order placed with a shop, newest first
func (s *OrderService) ListOrdersByShop(ctx context.Context, shopID uint) ([]models.Order, error) {
	orders := []models.Order{}
	err := s.db.WithContext(ctx).
		Preload("Items", orderedItems).
		Where("shop_id = ?", shopID).
		Order("created_at DESC").Order("id DESC").
		Find(&orders).Error
	if err != nil {
		return nil, storageErr("list orders", err)
	}
	return orders, nil
}

// SetOrderStatus changes the order status and fans it out to the items
func (s *OrderService) SetOrderStatus(ctx context.Context, id uint, status models.OrderStatus) (*models.Order, error) {
	if !status.Valid() {
		return nil, newValidationError("status", "unknown order status %q", status)
	}
	if err := s.authorize(ctx, ActionSetOrderStatus, Resource{OrderID: id}); err != nil {
		return nil, err
	}

	var order models.Order
	var changed int
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockOrder(tx, id, &order); err != nil {
			return err
		}
		if err := tx.Where("order_id = ?", id).Order("id").Find(&order.Items).Error; err != nil {
			return err
		}

		items := ApplyOrderStatus(&order, status)
		changed = len(items)
		if err := updateOrderStatus(tx, order.ID, order.Status); err != nil {
			return err
		}
		for _, item := range items {
			if err := updateItemStatus(tx, item.ID, item.Status); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, storageErr("set order status", err)
	}

	s.metrics.orderStatusChanged(string(status), TriggerExplicit)
	s.logger.Info("order status changed",
		zap.Uint("order_id", id),
		zap.String("status", string(status)),
		zap.Int("items_updated", changed),
	)
	return &order, nil
}

// SetItemStatus changes one item's status. When that leaves every item of the
// order PRINTED and the order is not COMPLETED, the order is completed too.
func (s *OrderService) SetItemStatus(ctx context.Context, itemID uint, status models.ItemStatus) (*models.OrderItem, error) {
	if !status.Valid() {
		return nil, newValidationError("status", "unknown item status %q", status)
	}
	if err := s.authorize(ctx, ActionSetItemStatus, Resource{ItemID: itemID}); err != nil {
		return nil, err
	}

	var item models.OrderItem
	var order models.Order
	autoCompleted := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.First(&item, itemID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("item", itemID)
		}
		if err != nil {
			return err
		}

		// Concurrent item updates on the same order serialize on this lock,
		// so exactly one of them observes the last item being printed.
		if err := lockOrder(tx, item.OrderID, &order); err != nil {
			return err
		}

		item.Status = status
		if err := updateItemStatus(tx, item.ID, status); err != nil {
			return err
		}

		if err := tx.Where("order_id = ?", order.ID).Order("id").Find(&order.Items).Error; err != nil {
			return err
		}
		if !ShouldAutoComplete(&order) {
			return nil
		}
		autoCompleted = true
		order.Status = models.OrderStatusCompleted
		return updateOrderStatus(tx, order.ID, order.Status)
	})
	if err != nil {
		return nil, storageErr("set item status", err)
	}

	s.metrics.ItemStatusChanges.WithLabelValues(string(status)).Inc()
	s.logger.Info("item status changed",
		zap.Uint("item_id", itemID),
		zap.Uint("order_id", item.OrderID),
		zap.String("status", string(status)),
	)
	if autoCompleted {
		s.metrics.orderStatusChanged(string(models.OrderStatusCompleted), TriggerFanIn)
		s.logger.Info("order auto-completed", zap.Uint("order_id", order.ID))
	}
	return &item, nil
}

func (s *OrderService) authorize(ctx context.Context, action Action, resource Resource) error {
	if err := s.authorizer.Authorize(ctx, action, resource); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrForbidden, action, err)
	}
	return nil
}

// lockOrder loads the order row FOR UPDATE. SQLite ignores the locking clause.
func lockOrder(tx *gorm.DB, id uint, order *models.Order) error {
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(order, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound("order", id)
	}
	return err
}

func updateOrderStatus(tx *gorm.DB, id uint, status models.OrderStatus) error {
	return tx.Model(&models.Order{}).Where("id = ?", id).Update("status", status).Error
}

func updateItemStatus(tx *gorm.DB, id uint, status models.ItemStatus) error {
	return tx.Model(&models.OrderItem{}).Where("id = ?", id).Update("status", status).Error
}

func requireUser(tx *gorm.DB, resource string, id uint) error {
	var count int64
	if err := tx.Model(&models.User{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return notFound(resource, id)
	}
	return nil
}

func orderedItems(db *gorm.DB) *gorm.DB {
	return db.Order("id")
}

// normalizeItems applies defaults and rejects malformed items
func normalizeItems(items []LineItem) ([]LineItem, error) {
	if len(items) == 0 {
		return nil, newValidationError("items", "an order needs at least one item")
	}
	out := make([]LineItem, len(items))
	for i, item := range items {
		if item.FileURL == "" {
			return nil, newValidationError("items.file_url", "item %d: is required", i)
		}
		if item.FileName == "" {
			return nil, newValidationError("items.file_name", "item %d: is required", i)
		}
		if item.Orientation == "" {
			item.Orientation = models.OrientationPortrait
		}
		if !item.Orientation.Valid() {
			return nil, newValidationError("items.orientation", "item %d: unknown orientation %q", i, item.Orientation)
		}
		out[i] = item
	}
	return out, nil
}
