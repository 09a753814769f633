package handlers

import (
	"github.com/gin-gonic/gin"
	"shipping-admin-service/internal/models"
	"shipping-admin-service/internal/services"
)

// ShippingHandler serves the pincode, rate, settings and quote endpoints
type ShippingHandler struct {
	pincodes   *services.PincodeService
	resolver   *services.ZoneResolver
	rates      *services.RateService
	settings   *services.SettingsService
	calculator *services.ShippingCalculator
	analytics  *services.AnalyticsService
}

// NewShippingHandler creates a new shipping handler
func NewShippingHandler(
	pincodes *services.PincodeService,
	resolver *services.ZoneResolver,
	rates *services.RateService,
	settings *services.SettingsService,
	calculator *services.ShippingCalculator,
	analytics *services.AnalyticsService,
) *ShippingHandler {
	return &ShippingHandler{
		pincodes:   pincodes,
		resolver:   resolver,
		rates:      rates,
		settings:   settings,
		calculator: calculator,
		analytics:  analytics,
	}
}

// ==================== Pincodes ====================

// ListPincodes handles GET /api/v1/shipping/pincodes
// @Summary List pincode zone mappings
// @Tags Pincodes
// @Produce json
// @Param page query int false "Page"
// @Param per_page query int false "Page size"
// @Param search query string false "Pincode, city or state"
// @Param zone query string false "Zone A-E"
// @Param state query string false "State"
// @Success 200 {object} models.SuccessResponse
// @Router /api/v1/shipping/pincodes [get]
func (h *ShippingHandler) ListPincodes(c *gin.Context) {
	params := listParams(c)
	filter := models.PincodeFilter{
		ListParams: params,
		Zone:       models.Zone(c.Query("zone")),
		State:      c.Query("state"),
	}

	zones, total, err := h.pincodes.List(c.Request.Context(), getTenantID(c), filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, models.NewPage(zones, len(zones), total, params.Page, params.PerPage))
}

// GetPincode handles GET /api/v1/shipping/pincodes/:id
func (h *ShippingHandler) GetPincode(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	zone, err := h.pincodes.Get(c.Request.Context(), getTenantID(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, zone)
}

// CreatePincode handles POST /api/v1/shipping/pincodes
// @Summary Map a pincode to a zone
// @Tags Pincodes
// @Accept json
// @Produce json
// @Param request body models.PincodeZoneRequest true "Pincode mapping"
// @Success 201 {object} models.SuccessResponse
// @Router /api/v1/shipping/pincodes [post]
func (h *ShippingHandler) CreatePincode(c *gin.Context) {
	var req models.PincodeZoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	zone, err := h.pincodes.Create(c.Request.Context(), getTenantID(c), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, zone)
}

// UpdatePincode handles PUT /api/v1/shipping/pincodes/:id
func (h *ShippingHandler) UpdatePincode(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req models.PincodeZoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	zone, err := h.pincodes.Update(c.Request.Context(), getTenantID(c), id, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, zone)
}

// DeletePincode handles DELETE /api/v1/shipping/pincodes/:id
func (h *ShippingHandler) DeletePincode(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.pincodes.Delete(c.Request.Context(), getTenantID(c), id); err != nil {
		respondServiceError(c, err)
		return
	}
	respondMessage(c, "Pincode deleted", nil)
}

// ResolvePincode handles GET /api/v1/shipping/pincodes/resolve/:pincode
// @Summary Resolve a pincode to its zone
// @Tags Pincodes
// @Produce json
// @Param pincode path string true "6-digit pincode"
// @Success 200 {object} models.SuccessResponse
// @Failure 422 {object} models.ErrorResponse
// @Router /api/v1/shipping/pincodes/resolve/{pincode} [get]
func (h *ShippingHandler) ResolvePincode(c *gin.Context) {
	tenantID := getTenantID(c)
	settings, err := h.settings.Get(c.Request.Context(), tenantID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	zone, err := h.resolver.Resolve(c.Request.Context(), tenantID, c.Param("pincode"), settings.FallbackZone)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{
		"pincode":                zone.Pincode,
		"zone":                   zone.Zone,
		"zone_name":              zone.Zone.DisplayName(),
		"city":                   zone.City,
		"state":                  zone.State,
		"cod_available":          zone.CODAvailable,
		"expected_delivery_days": zone.ExpectedDeliveryDays,
		"zone_multiplier":        zone.ZoneMultiplier,
		"is_fallback":            zone.IsFallback,
	})
}

// ==================== Weight slabs ====================

// ListWeightSlabs handles GET /api/v1/shipping/weight-slabs
func (h *ShippingHandler) ListWeightSlabs(c *gin.Context) {
	slabs, err := h.rates.ListSlabs(c.Request.Context(), getTenantID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if slabs == nil {
		slabs = []models.WeightSlab{}
	}
	respondOK(c, slabs)
}

// GetWeightSlab handles GET /api/v1/shipping/weight-slabs/:id
func (h *ShippingHandler) GetWeightSlab(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	slab, err := h.rates.GetSlab(c.Request.Context(), getTenantID(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, slab)
}

// CreateWeightSlab handles POST /api/v1/shipping/weight-slabs
func (h *ShippingHandler) CreateWeightSlab(c *gin.Context) {
	var req models.WeightSlabRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	slab, err := h.rates.CreateSlab(c.Request.Context(), getTenantID(c), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, slab)
}

// UpdateWeightSlab handles PUT /api/v1/shipping/weight-slabs/:id
func (h *ShippingHandler) UpdateWeightSlab(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req models.WeightSlabRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	slab, err := h.rates.UpdateSlab(c.Request.Context(), getTenantID(c), id, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, slab)
}

// DeleteWeightSlab handles DELETE /api/v1/shipping/weight-slabs/:id.
// The slab's zone rates are removed with it.
func (h *ShippingHandler) DeleteWeightSlab(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.rates.DeleteSlab(c.Request.Context(), getTenantID(c), id); err != nil {
		respondServiceError(c, err)
		return
	}
	respondMessage(c, "Weight slab deleted", nil)
}

// ==================== Zone rates ====================

// ListZones handles GET /api/v1/shipping/zones
func (h *ShippingHandler) ListZones(c *gin.Context) {
	zones, err := h.rates.ListZones(c.Request.Context(), getTenantID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, zones)
}

// CreateZoneRate handles POST /api/v1/shipping/zones
// @Summary Create the rate for a weight slab and zone
// @Tags Zones
// @Accept json
// @Produce json
// @Param request body models.ZoneRateRequest true "Zone rate"
// @Success 201 {object} models.SuccessResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /api/v1/shipping/zones [post]
func (h *ShippingHandler) CreateZoneRate(c *gin.Context) {
	var req models.ZoneRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	rate, err := h.rates.CreateZoneRate(c.Request.Context(), getTenantID(c), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, rate)
}

// UpdateZoneRate handles PUT /api/v1/shipping/zones/:id
func (h *ShippingHandler) UpdateZoneRate(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req models.ZoneRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	rate, err := h.rates.UpdateZoneRate(c.Request.Context(), getTenantID(c), id, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, rate)
}

// DeleteZoneRate handles DELETE /api/v1/shipping/zones/:id
func (h *ShippingHandler) DeleteZoneRate(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.rates.DeleteZoneRate(c.Request.Context(), getTenantID(c), id); err != nil {
		respondServiceError(c, err)
		return
	}
	respondMessage(c, "Zone rate deleted", nil)
}

// ==================== Free shipping ====================

// ListFreeShippingThresholds handles GET /api/v1/shipping/free-shipping-thresholds
func (h *ShippingHandler) ListFreeShippingThresholds(c *gin.Context) {
	thresholds, err := h.rates.ListThresholds(c.Request.Context(), getTenantID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, thresholds)
}

// UpsertFreeShippingThreshold handles POST /api/v1/shipping/free-shipping-thresholds
func (h *ShippingHandler) UpsertFreeShippingThreshold(c *gin.Context) {
	var req models.FreeShippingThresholdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	threshold, err := h.rates.UpsertThreshold(c.Request.Context(), getTenantID(c), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, threshold)
}

// ResetFreeShippingThreshold handles DELETE /api/v1/shipping/free-shipping-thresholds/:zone
func (h *ShippingHandler) ResetFreeShippingThreshold(c *gin.Context) {
	threshold, err := h.rates.ResetThreshold(c.Request.Context(), getTenantID(c), models.Zone(c.Param("zone")))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondMessage(c, "Threshold reverted to default", threshold)
}

// ==================== Settings ====================

// GetSettings handles GET /api/v1/shipping/settings
func (h *ShippingHandler) GetSettings(c *gin.Context) {
	settings, err := h.settings.Get(c.Request.Context(), getTenantID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, settings)
}

// UpdateSettings handles PUT /api/v1/shipping/settings
func (h *ShippingHandler) UpdateSettings(c *gin.Context) {
	var req models.UpdateShippingSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	settings, err := h.settings.Update(c.Request.Context(), getTenantID(c), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, settings)
}

// ==================== Quotes and analytics ====================

// TestCalculation handles POST /api/v1/shipping/test-calculation
// @Summary Quote shipping for a parcel
// @Tags Shipping
// @Accept json
// @Produce json
// @Param request body models.ShippingCalculationRequest true "Parcel and route"
// @Success 200 {object} models.SuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 422 {object} models.ErrorResponse
// @Router /api/v1/shipping/test-calculation [post]
func (h *ShippingHandler) TestCalculation(c *gin.Context) {
	var req models.ShippingCalculationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	result, err := h.calculator.Calculate(c.Request.Context(), getTenantID(c), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, result)
}

// GetAnalytics handles GET /api/v1/shipping/analytics
func (h *ShippingHandler) GetAnalytics(c *gin.Context) {
	summary, err := h.analytics.Summary(c.Request.Context(), getTenantID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, summary)
}
