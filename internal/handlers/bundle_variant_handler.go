package handlers

import (
	"github.com/gin-gonic/gin"
	"shipping-admin-service/internal/models"
	"shipping-admin-service/internal/services"
)

// BundleVariantHandler handles product bundle requests
type BundleVariantHandler struct {
	service *services.BundleVariantService
}

// NewBundleVariantHandler creates a new bundle variant handler
func NewBundleVariantHandler(service *services.BundleVariantService) *BundleVariantHandler {
	return &BundleVariantHandler{service: service}
}

// ListBundleVariants handles GET /api/v1/products/:productId/bundle-variants
func (h *BundleVariantHandler) ListBundleVariants(c *gin.Context) {
	productID, ok := parseUUIDParam(c, "productId")
	if !ok {
		return
	}
	variants, err := h.service.ListByProduct(c.Request.Context(), getTenantID(c), productID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if variants == nil {
		variants = []models.BundleVariant{}
	}
	respondOK(c, variants)
}

// CreateBundleVariant handles POST /api/v1/products/:productId/bundle-variants
func (h *BundleVariantHandler) CreateBundleVariant(c *gin.Context) {
	productID, ok := parseUUIDParam(c, "productId")
	if !ok {
		return
	}
	var req models.BundleVariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	variant, err := h.service.Create(c.Request.Context(), getTenantID(c), productID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, variant)
}

// GetBundleVariant handles GET /api/v1/bundle-variants/:id
func (h *BundleVariantHandler) GetBundleVariant(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	variant, err := h.service.Get(c.Request.Context(), getTenantID(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, variant)
}

// UpdateBundleVariant handles PUT /api/v1/bundle-variants/:id
func (h *BundleVariantHandler) UpdateBundleVariant(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req models.BundleVariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	variant, err := h.service.Update(c.Request.Context(), getTenantID(c), id, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, variant)
}

// DeleteBundleVariant handles DELETE /api/v1/bundle-variants/:id
func (h *BundleVariantHandler) DeleteBundleVariant(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), getTenantID(c), id); err != nil {
		respondServiceError(c, err)
		return
	}
	respondMessage(c, "Bundle variant deleted", nil)
}

// PreviewBundlePricing handles POST /api/v1/bundle-variants/preview.
// Nothing is stored.
// @Summary Preview bundle pricing
// @Tags Bundles
// @Accept json
// @Produce json
// @Param request body models.BundlePricingInput true "Pricing input"
// @Success 200 {object} models.SuccessResponse
// @Router /api/v1/bundle-variants/preview [post]
func (h *BundleVariantHandler) PreviewBundlePricing(c *gin.Context) {
	var in models.BundlePricingInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBindError(c, err)
		return
	}
	pricing, err := services.ComputeBundlePricing(&in)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, pricing)
}
