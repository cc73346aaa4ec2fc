package services

import "github.com/quickprint-campus/quickprint-api/models"

// ApplyOrderStatus sets the order status and fans it out to the items.
// PENDING resets every item to PENDING, COMPLETED marks every item PRINTED,
// other statuses leave the items untouched. It returns the items whose status changed.
func ApplyOrderStatus(order *models.Order, status models.OrderStatus) []*models.OrderItem {
	order.Status = status

	var target models.ItemStatus
	switch status {
	case models.OrderStatusPending:
		target = models.ItemStatusPending
	case models.OrderStatusCompleted:
		target = models.ItemStatusPrinted
	default:
		return nil
	}

	var changed []*models.OrderItem
	for i := range order.Items {
		if order.Items[i].Status != target {
			order.Items[i].Status = target
			changed = append(changed, &order.Items[i])
		}
	}
	return changed
}

// AllPrinted reports whether every item has been printed. An order without items is never all printed.
func AllPrinted(items []models.OrderItem) bool {
	if len(items) == 0 {
		return false
	}
	for _, item := range items {
		if item.Status != models.ItemStatusPrinted {
			return false
		}
	}
	return true
}

// ShouldAutoComplete reports whether the fan-in rule completes the order:
// all items are printed and the order is not already COMPLETED.
// CANCELLED and PROCESSING orders are completed too.
func ShouldAutoComplete(order *models.Order) bool {
	return order.Status != models.OrderStatusCompleted && AllPrinted(order.Items)
}
