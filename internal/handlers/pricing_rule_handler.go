package handlers

import (
	"github.com/gin-gonic/gin"
	"shipping-admin-service/internal/models"
	"shipping-admin-service/internal/services"
)

// OrderChargeHandler handles order charge requests and order totals evaluation
type OrderChargeHandler struct {
	service    *services.OrderChargeService
	calculator *services.OrderTotalsCalculator
}

// NewOrderChargeHandler creates a new order charge handler
func NewOrderChargeHandler(service *services.OrderChargeService, calculator *services.OrderTotalsCalculator) *OrderChargeHandler {
	return &OrderChargeHandler{service: service, calculator: calculator}
}

// ListOrderCharges handles GET /api/v1/order-charges
func (h *OrderChargeHandler) ListOrderCharges(c *gin.Context) {
	charges, err := h.service.List(c.Request.Context(), getTenantID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if charges == nil {
		charges = []models.OrderCharge{}
	}
	respondOK(c, charges)
}

// GetOrderCharge handles GET /api/v1/order-charges/:id
func (h *OrderChargeHandler) GetOrderCharge(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	charge, err := h.service.Get(c.Request.Context(), getTenantID(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, charge)
}

// CreateOrderCharge handles POST /api/v1/order-charges
func (h *OrderChargeHandler) CreateOrderCharge(c *gin.Context) {
	var req models.OrderChargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	charge, err := h.service.Create(c.Request.Context(), getTenantID(c), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, charge)
}

// UpdateOrderCharge handles PUT /api/v1/order-charges/:id
func (h *OrderChargeHandler) UpdateOrderCharge(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req models.OrderChargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	charge, err := h.service.Update(c.Request.Context(), getTenantID(c), id, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, charge)
}

// DeleteOrderCharge handles DELETE /api/v1/order-charges/:id
func (h *OrderChargeHandler) DeleteOrderCharge(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), getTenantID(c), id); err != nil {
		respondServiceError(c, err)
		return
	}
	respondMessage(c, "Order charge deleted", nil)
}

// ToggleOrderCharge handles PATCH /api/v1/order-charges/:id/toggle
func (h *OrderChargeHandler) ToggleOrderCharge(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	charge, err := h.service.Toggle(c.Request.Context(), getTenantID(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, charge)
}

// UpdatePriorities handles POST /api/v1/order-charges/update-priority
func (h *OrderChargeHandler) UpdatePriorities(c *gin.Context) {
	var req models.UpdatePriorityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if err := h.service.UpdatePriorities(c.Request.Context(), getTenantID(c), req); err != nil {
		respondServiceError(c, err)
		return
	}
	respondMessage(c, "Priorities updated", nil)
}

// CalculateOrderTotals handles POST /api/v1/order-charges/calculate
// @Summary Apply order charges and taxes to an order
// @Tags Order Charges
// @Accept json
// @Produce json
// @Param request body models.OrderTotalsRequest true "Order amounts"
// @Success 200 {object} models.SuccessResponse
// @Router /api/v1/order-charges/calculate [post]
func (h *OrderChargeHandler) CalculateOrderTotals(c *gin.Context) {
	var req models.OrderTotalsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	totals, err := h.calculator.Calculate(c.Request.Context(), getTenantID(c), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, totals)
}

// TaxConfigurationHandler handles tax rule requests
type TaxConfigurationHandler struct {
	service *services.TaxConfigurationService
}

// NewTaxConfigurationHandler creates a new tax configuration handler
func NewTaxConfigurationHandler(service *services.TaxConfigurationService) *TaxConfigurationHandler {
	return &TaxConfigurationHandler{service: service}
}

func (h *TaxConfigurationHandler) ListTaxConfigurations(c *gin.Context) {
	taxes, err := h.service.List(c.Request.Context(), getTenantID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if taxes == nil {
		taxes = []models.TaxConfiguration{}
	}
	respondOK(c, taxes)
}

func (h *TaxConfigurationHandler) GetTaxConfiguration(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	tax, err := h.service.Get(c.Request.Context(), getTenantID(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, tax)
}

func (h *TaxConfigurationHandler) CreateTaxConfiguration(c *gin.Context) {
	var req models.TaxConfigurationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	tax, err := h.service.Create(c.Request.Context(), getTenantID(c), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, tax)
}

func (h *TaxConfigurationHandler) UpdateTaxConfiguration(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req models.TaxConfigurationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	tax, err := h.service.Update(c.Request.Context(), getTenantID(c), id, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, tax)
}

func (h *TaxConfigurationHandler) DeleteTaxConfiguration(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), getTenantID(c), id); err != nil {
		respondServiceError(c, err)
		return
	}
	respondMessage(c, "Tax configuration deleted", nil)
}

func (h *TaxConfigurationHandler) ToggleTaxConfiguration(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	tax, err := h.service.Toggle(c.Request.Context(), getTenantID(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, tax)
}
