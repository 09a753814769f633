package handlers

import (
	"github.com/gin-gonic/gin"
	"shipping-admin-service/internal/models"
	"shipping-admin-service/internal/services"
)

// WarehouseHandler handles warehouse HTTP requests
type WarehouseHandler struct {
	service *services.WarehouseService
}

// NewWarehouseHandler creates a new warehouse handler
func NewWarehouseHandler(service *services.WarehouseService) *WarehouseHandler {
	return &WarehouseHandler{service: service}
}

// ListWarehouses handles GET /api/v1/shipping/warehouses
func (h *WarehouseHandler) ListWarehouses(c *gin.Context) {
	params := listParams(c)
	warehouses, total, err := h.service.List(c.Request.Context(), getTenantID(c), params)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, models.NewPage(warehouses, len(warehouses), total, params.Page, params.PerPage))
}

// GetWarehouse handles GET /api/v1/shipping/warehouses/:id
func (h *WarehouseHandler) GetWarehouse(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	warehouse, err := h.service.Get(c.Request.Context(), getTenantID(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, warehouse)
}

// CreateWarehouse handles POST /api/v1/shipping/warehouses
// @Summary Create a warehouse
// @Description The first warehouse of a tenant becomes its default
// @Tags Warehouses
// @Accept json
// @Produce json
// @Param request body models.CreateWarehouseRequest true "Warehouse"
// @Success 201 {object} models.SuccessResponse
// @Router /api/v1/shipping/warehouses [post]
func (h *WarehouseHandler) CreateWarehouse(c *gin.Context) {
	var req models.CreateWarehouseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	warehouse, err := h.service.Create(c.Request.Context(), getTenantID(c), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, warehouse)
}

// UpdateWarehouse handles PUT /api/v1/shipping/warehouses/:id
func (h *WarehouseHandler) UpdateWarehouse(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req models.UpdateWarehouseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	warehouse, err := h.service.Update(c.Request.Context(), getTenantID(c), id, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, warehouse)
}

// DeleteWarehouse handles DELETE /api/v1/shipping/warehouses/:id
func (h *WarehouseHandler) DeleteWarehouse(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), getTenantID(c), id); err != nil {
		respondServiceError(c, err)
		return
	}
	respondMessage(c, "Warehouse deleted", nil)
}

// SetDefaultWarehouse handles POST /api/v1/shipping/warehouses/:id/set-default
func (h *WarehouseHandler) SetDefaultWarehouse(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	warehouse, err := h.service.SetDefault(c.Request.Context(), getTenantID(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondMessage(c, "Default warehouse updated", warehouse)
}
