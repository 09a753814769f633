package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"shipping-admin-service/internal/models"
	"shipping-admin-service/internal/services"
)

func TestPreviewBundlePricing(t *testing.T) {
	handler := NewBundleVariantHandler(nil)
	router := setupTestRouter()
	router.POST("/bundle-variants/preview", handler.PreviewBundlePricing)

	t.Run("percentage discount", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/bundle-variants/preview", jsonBody(t, map[string]interface{}{
			"unit_price": 100, "quantity": 3, "pricing_type": "percentage_discount", "discount_percentage": 10,
		}))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var resp struct {
			Data models.BundlePricing `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Data.BundlePrice.Equal(decimal.NewFromInt(270)))
		assert.True(t, resp.Data.Savings.Equal(decimal.NewFromInt(30)))
	})

	t.Run("quantity below two", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/bundle-variants/preview", jsonBody(t, map[string]interface{}{
			"unit_price": 100, "quantity": 1, "pricing_type": "fixed_price", "fixed_price": 90,
		}))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
	})
}

func TestCalculateOrderTotals(t *testing.T) {
	charges := new(MockOrderChargeRepository)
	taxes := new(MockTaxConfigurationRepository)
	charges.On("ListEnabled", mock.Anything, testTenant).Return([]models.OrderCharge{{
		ID: uuid.New(), Name: "COD Handling", Code: "cod_fee", Type: models.ChargeTypeFixed,
		Amount: decimal.NewFromInt(30), ApplyTo: models.ApplyToCODOnly, IsEnabled: true,
	}}, nil)
	taxes.On("ListEnabled", mock.Anything, testTenant).Return([]models.TaxConfiguration{}, nil)

	handler := NewOrderChargeHandler(
		services.NewOrderChargeService(charges, nil),
		services.NewOrderTotalsCalculator(charges, taxes),
	)
	router := setupTestRouter()
	router.POST("/order-charges/calculate", handler.CalculateOrderTotals)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/order-charges/calculate", jsonBody(t, map[string]interface{}{
		"subtotal": 500, "discount": 0, "shipping": 40, "payment_method": "cod",
	}))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp struct {
		Data models.OrderTotals `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Data.ChargesTotal.Equal(decimal.NewFromInt(30)))
	assert.True(t, resp.Data.Total.Equal(decimal.NewFromInt(570)), resp.Data.Total.String())
}

func TestCalculateOrderTotals_MissingPaymentMethod(t *testing.T) {
	handler := NewOrderChargeHandler(nil, nil)
	router := setupTestRouter()
	router.POST("/order-charges/calculate", handler.CalculateOrderTotals)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/order-charges/calculate", bytes.NewBufferString(`{"subtotal": 100}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListOrderCharges_EmptyIsArray(t *testing.T) {
	charges := new(MockOrderChargeRepository)
	charges.On("List", mock.Anything, testTenant).Return([]models.OrderCharge(nil), nil)

	handler := NewOrderChargeHandler(services.NewOrderChargeService(charges, nil), nil)
	router := setupTestRouter()
	router.GET("/order-charges", handler.ListOrderCharges)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/order-charges", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"data":[]}`, w.Body.String())
}

func TestHealthEndpoints(t *testing.T) {
	router := setupTestRouter()
	health := NewHealthHandler(nil, nil, nil)
	router.GET("/health", HealthCheck)
	router.GET("/livez", health.Liveness)
	router.GET("/readyz", health.Readiness)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodGet, "/livez", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodGet, "/readyz", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	checks := resp["checks"].(map[string]interface{})
	assert.Equal(t, "disabled", checks["redis"])
	assert.Equal(t, "disabled", checks["nats"])
}

func TestRespondServiceError(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{models.ValidationErrorf("bad"), http.StatusBadRequest},
		{services.ErrWeightSlabNotFound, http.StatusNotFound},
		{services.ErrRateExists, http.StatusConflict},
		{services.ErrSKUExists, http.StatusConflict},
		{services.ErrNoWeightSlabs, http.StatusUnprocessableEntity},
		{services.ErrCODNotAvailable, http.StatusUnprocessableEntity},
		{services.ErrDefaultRequired, http.StatusUnprocessableEntity},
		{services.ErrDefaultConflict, http.StatusConflict},
		{services.ErrPrimaryConflict, http.StatusConflict},
		{assert.AnError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			gin.SetMode(gin.TestMode)
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			respondServiceError(c, tt.err)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestRespondServiceError_ConcurrentUpdateIsRetryable(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	respondServiceError(c, fmt.Errorf("set default: %w", services.ErrDefaultConflict))

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "1", w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), "CONCURRENT_UPDATE")
}
