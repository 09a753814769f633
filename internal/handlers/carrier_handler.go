package handlers

import (
	"github.com/gin-gonic/gin"
	"shipping-admin-service/internal/models"
	"shipping-admin-service/internal/services"
)

// CarrierHandler handles multi-carrier configuration requests.
// Credentials are never returned unmasked.
type CarrierHandler struct {
	service *services.CarrierService
}

// NewCarrierHandler creates a new carrier handler
func NewCarrierHandler(service *services.CarrierService) *CarrierHandler {
	return &CarrierHandler{service: service}
}

// ListCarriers handles GET /api/v1/shipping/multi-carrier/carriers
func (h *CarrierHandler) ListCarriers(c *gin.Context) {
	configs, err := h.service.List(c.Request.Context(), getTenantID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	responses := make([]models.CarrierConfigResponse, 0, len(configs))
	for i := range configs {
		responses = append(responses, configs[i].ToResponse())
	}
	respondOK(c, responses)
}

// ToggleCarrier handles POST /api/v1/shipping/multi-carrier/carriers/:id/toggle
func (h *CarrierHandler) ToggleCarrier(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	config, err := h.service.Toggle(c.Request.Context(), getTenantID(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, config.ToResponse())
}

// UpdateCarrierConfig handles PUT /api/v1/shipping/multi-carrier/carriers/:id/config
func (h *CarrierHandler) UpdateCarrierConfig(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req models.UpdateCarrierConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	config, err := h.service.UpdateConfig(c.Request.Context(), getTenantID(c), id, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, config.ToResponse())
}

// UpdateCarrierCredentials handles PUT /api/v1/shipping/multi-carrier/carriers/:id/credentials
// @Summary Replace carrier credentials
// @Description Values may be gcp-secret://name references resolved at test time
// @Tags Carriers
// @Accept json
// @Produce json
// @Param request body models.UpdateCarrierCredentialsRequest true "Credentials"
// @Success 200 {object} models.SuccessResponse
// @Router /api/v1/shipping/multi-carrier/carriers/{id}/credentials [put]
func (h *CarrierHandler) UpdateCarrierCredentials(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req models.UpdateCarrierCredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	config, err := h.service.UpdateCredentials(c.Request.Context(), getTenantID(c), id, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, config.ToResponse())
}

// TestCarrierConnection handles POST /api/v1/shipping/multi-carrier/carriers/:id/test
func (h *CarrierHandler) TestCarrierConnection(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	config, err := h.service.TestConnection(c.Request.Context(), getTenantID(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondMessage(c, config.StatusMessage, config.ToResponse())
}

// SyncFromConfig handles POST /api/v1/shipping/multi-carrier/sync-from-config
func (h *CarrierHandler) SyncFromConfig(c *gin.Context) {
	created, err := h.service.SyncFromConfig(c.Request.Context(), getTenantID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"created": created})
}
