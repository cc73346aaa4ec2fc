package services

import "context"

// Action names an operation that mutates orders or pricing
type Action string

const (
	ActionSetOrderStatus Action = "order.set_status"
	ActionSetItemStatus  Action = "item.set_status"
	ActionConfigurePrice Action = "pricing.configure"
)

// Resource identifies what an Action targets
type Resource struct {
	OrderID uint
	ItemID  uint
	ShopID  uint
}

// Authorizer decides whether the caller in ctx may perform action on resource.
// Returning a non-nil error rejects the operation; services wrap it with ErrForbidden.
type Authorizer interface {
	Authorize(ctx context.Context, action Action, resource Resource) error
}

// AllowAll permits every operation. The API has no authentication yet.
type AllowAll struct{}

func (AllowAll) Authorize(context.Context, Action, Resource) error {
	return nil
}
