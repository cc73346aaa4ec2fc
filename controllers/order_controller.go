package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/quickprint-campus/quickprint-api/models"
	"github.com/quickprint-campus/quickprint-api/services"
)

// CreateOrderItemRequest is one file in a create order request
type CreateOrderItemRequest struct {
	FileURL     string `json:"file_url" binding:"required"`
	FileName    string `json:"file_name" binding:"required"`
	Copies      int    `json:"copies" binding:"required,gt=0"`
	PageCount   *int   `json:"page_count" binding:"omitempty,gt=0"` // defaults to 1
	IsColor     bool   `json:"is_color"`
	IsDuplex    bool   `json:"is_duplex"`
	Orientation string `json:"orientation" binding:"omitempty,oneof=PORTRAIT LANDSCAPE"`
}

// CreateOrderRequest represents the request body for creating an order
type CreateOrderRequest struct {
	UserID uint                     `json:"user_id" binding:"required"`
	ShopID uint                     `json:"shop_id" binding:"required"`
	Items  []CreateOrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// UpdateOrderStatusRequest represents the request body for changing an order status
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateItemStatusRequest represents the request body for changing an item status
type UpdateItemStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// CreateOrder handles POST /api/v1/orders - prices and stores a new order
func CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	items := make([]services.LineItem, len(req.Items))
	for i, item := range req.Items {
		pageCount := 1
		if item.PageCount != nil {
			pageCount = *item.PageCount
		}
		items[i] = services.LineItem{
			FileURL:     item.FileURL,
			FileName:    item.FileName,
			Copies:      item.Copies,
			PageCount:   pageCount,
			IsColor:     item.IsColor,
			IsDuplex:    item.IsDuplex,
			Orientation: models.Orientation(item.Orientation),
		}
	}

	order, err := services.GetOrderService().CreateOrder(c.Request.Context(), services.CreateOrderInput{
		UserID: req.UserID,
		ShopID: req.ShopID,
		Items:  items,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    order,
	})
}

// GetOrder handles GET /api/v1/orders/:id
func GetOrder(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	order, err := services.GetOrderService().GetOrder(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// ListShopOrders handles GET /api/v1/orders/shop/:shop_id - lists a shop's orders, newest first
func ListShopOrders(c *gin.Context) {
	shopID, ok := parseID(c, "shop_id")
	if !ok {
		return
	}

	orders, err := services.GetOrderService().ListOrdersByShop(c.Request.Context(), shopID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    orders,
		"count":   len(orders),
	})
}

// UpdateOrderStatus handles PATCH /api/v1/orders/:id/status
func UpdateOrderStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	order, err := services.GetOrderService().SetOrderStatus(c.Request.Context(), id, models.OrderStatus(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// UpdateItemStatus handles PATCH /api/v1/orders/items/:item_id/status
func UpdateItemStatus(c *gin.Context) {
	itemID, ok := parseID(c, "item_id")
	if !ok {
		return
	}

	var req UpdateItemStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	item, err := services.GetOrderService().SetItemStatus(c.Request.Context(), itemID, models.ItemStatus(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    item,
	})
}
