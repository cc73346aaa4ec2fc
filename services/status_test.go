package services

import (
	"testing"

	"github.com/quickprint-campus/quickprint-api/models"
	"github.com/stretchr/testify/assert"
)

func orderWithItems(status models.OrderStatus, items ...models.ItemStatus) *models.Order {
	order := &models.Order{ID: 1, Status: status}
	for i, s := range items {
		order.Items = append(order.Items, models.OrderItem{ID: uint(i + 1), OrderID: 1, Status: s})
	}
	return order
}

func itemStatuses(order *models.Order) []models.ItemStatus {
	out := make([]models.ItemStatus, len(order.Items))
	for i, item := range order.Items {
		out[i] = item.Status
	}
	return out
}

func TestApplyOrderStatus_CompletedMarksItemsPrinted(t *testing.T) {
	order := orderWithItems(models.OrderStatusProcessing, models.ItemStatusPending, models.ItemStatusPrinted)

	changed := ApplyOrderStatus(order, models.OrderStatusCompleted)

	assert.Equal(t, models.OrderStatusCompleted, order.Status)
	assert.Equal(t, []models.ItemStatus{"PRINTED", "PRINTED"}, itemStatuses(order))
	assert.Len(t, changed, 1, "only the pending item changes")
	assert.Equal(t, uint(1), changed[0].ID)
}

func TestApplyOrderStatus_CompletedIsIdempotent(t *testing.T) {
	order := orderWithItems(models.OrderStatusPending, models.ItemStatusPending, models.ItemStatusPending)

	ApplyOrderStatus(order, models.OrderStatusCompleted)
	first := itemStatuses(order)
	changed := ApplyOrderStatus(order, models.OrderStatusCompleted)

	assert.Empty(t, changed)
	assert.Equal(t, first, itemStatuses(order))
	assert.Equal(t, models.OrderStatusCompleted, order.Status)
}

func TestApplyOrderStatus_PendingResetsItems(t *testing.T) {
	order := orderWithItems(models.OrderStatusCompleted, models.ItemStatusPrinted, models.ItemStatusPrinted, models.ItemStatusPending)

	changed := ApplyOrderStatus(order, models.OrderStatusPending)

	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, []models.ItemStatus{"PENDING", "PENDING", "PENDING"}, itemStatuses(order))
	assert.Len(t, changed, 2)
}

func TestApplyOrderStatus_NoFanOut(t *testing.T) {
	for _, status := range []models.OrderStatus{models.OrderStatusProcessing, models.OrderStatusCancelled} {
		t.Run(string(status), func(t *testing.T) {
			order := orderWithItems(models.OrderStatusPending, models.ItemStatusPrinted, models.ItemStatusPending)

			changed := ApplyOrderStatus(order, status)

			assert.Nil(t, changed)
			assert.Equal(t, status, order.Status)
			assert.Equal(t, []models.ItemStatus{"PRINTED", "PENDING"}, itemStatuses(order))
		})
	}
}

func TestAllPrinted(t *testing.T) {
	assert.False(t, AllPrinted(nil))
	assert.False(t, AllPrinted(orderWithItems("", models.ItemStatusPrinted, models.ItemStatusPending).Items))
	assert.True(t, AllPrinted(orderWithItems("", models.ItemStatusPrinted, models.ItemStatusPrinted).Items))
}

func TestShouldAutoComplete(t *testing.T) {
	tests := []struct {
		name  string
		order *models.Order
		want  bool
	}{
		{"all printed, pending order", orderWithItems(models.OrderStatusPending, "PRINTED", "PRINTED"), true},
		{"all printed, processing order", orderWithItems(models.OrderStatusProcessing, "PRINTED"), true},
		{"all printed, cancelled order", orderWithItems(models.OrderStatusCancelled, "PRINTED"), true},
		{"all printed, already completed", orderWithItems(models.OrderStatusCompleted, "PRINTED"), false},
		{"sibling pending", orderWithItems(models.OrderStatusProcessing, "PRINTED", "PENDING"), false},
		{"no items", orderWithItems(models.OrderStatusPending), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShouldAutoComplete(tt.order))
		})
	}
}
