package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/quickprint-campus/quickprint-api/models"
	"github.com/quickprint-campus/quickprint-api/services"
)

// PricingResponse is a shop's rate table. Default tables have id 0 and is_default true.
type PricingResponse struct {
	models.ShopPricing
	IsDefault bool `json:"is_default"`
}

func pricingResponse(p services.ResolvedPricing) PricingResponse {
	return PricingResponse{ShopPricing: p.Pricing, IsDefault: p.IsDefault()}
}

// GetShopPricing handles GET /api/v1/pricing/shop/:shop_id - never 404s, unconfigured shops get the defaults
func GetShopPricing(c *gin.Context) {
	shopID, ok := parseID(c, "shop_id")
	if !ok {
		return
	}

	pricing, err := services.GetPricingService().Get(c.Request.Context(), shopID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    pricingResponse(pricing),
	})
}

// CreateShopPricing handles POST /api/v1/pricing/shop/:shop_id - fails with 409 when pricing exists
func CreateShopPricing(c *gin.Context) {
	shopID, ok := parseID(c, "shop_id")
	if !ok {
		return
	}

	var req services.RatesInput
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	pricing, err := services.GetPricingService().Create(c.Request.Context(), shopID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    pricingResponse(pricing),
	})
}

// UpdateShopPricing handles PUT /api/v1/pricing/shop/:shop_id - replaces all rates, creating them if absent
func UpdateShopPricing(c *gin.Context) {
	shopID, ok := parseID(c, "shop_id")
	if !ok {
		return
	}

	var req services.RatesInput
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	pricing, err := services.GetPricingService().Update(c.Request.Context(), shopID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    pricingResponse(pricing),
	})
}
