package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/quickprint-campus/quickprint-api/models"
	"github.com/quickprint-campus/quickprint-api/services"
	"github.com/quickprint-campus/quickprint-api/tests/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// setupTestRouter creates a test router with gin in test mode
func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// setupServices points the shared services at a fresh database
func setupServices(t *testing.T, opts ...services.OrderServiceOption) *gorm.DB {
	t.Helper()
	db := testutil.NewTestDB(t)
	logger := zap.NewNop()
	services.InitUserService(db, logger)
	services.InitPricingService(db, logger, nil)
	services.InitOrderService(db, logger, append([]services.OrderServiceOption{services.WithOrderMetrics(services.NewMetrics(nil))}, opts...)...)
	return db
}

// orderRouter registers the order and pricing routes the way main does
func orderRouter() *gin.Engine {
	router := setupTestRouter()
	router.POST("/orders", CreateOrder)
	router.GET("/orders/shop/:shop_id", ListShopOrders)
	router.GET("/orders/:id", GetOrder)
	router.PATCH("/orders/:id/status", UpdateOrderStatus)
	router.PATCH("/orders/items/:item_id/status", UpdateItemStatus)
	router.GET("/pricing/shop/:shop_id", GetShopPricing)
	router.POST("/pricing/shop/:shop_id", CreateShopPricing)
	router.PUT("/pricing/shop/:shop_id", UpdateShopPricing)
	router.POST("/users", CreateUser)
	router.GET("/users/:id", GetUser)
	return router
}

func doJSON(t *testing.T, router http.Handler, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response), "body: %s", w.Body.String())
	return w, response
}

func errorCode(t *testing.T, response map[string]interface{}) string {
	t.Helper()
	assert.False(t, response["success"].(bool))
	errorData, ok := response["error"].(map[string]interface{})
	require.True(t, ok, "response has no error object: %v", response)
	return errorData["code"].(string)
}

// assertMoney compares a decimal serialized as a JSON string
func assertMoney(t *testing.T, want string, got interface{}) {
	t.Helper()
	s, ok := got.(string)
	require.True(t, ok, "want a decimal string, got %T", got)
	assert.True(t, decimal.RequireFromString(want).Equal(decimal.RequireFromString(s)), "want %s got %s", want, s)
}

func createStudentAndShop(t *testing.T, db *gorm.DB) (*models.User, *models.User) {
	t.Helper()
	return testutil.CreateStudentAndShop(t, db)
}
