package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"shipping-admin-service/internal/models"
	"shipping-admin-service/internal/repository"
)

// notConfiguredMessage is shown for slabs without a rate in the resolved zone
const notConfiguredMessage = "Not configured"

// ShippingCalculator produces shipping quotes from the rate configuration
type ShippingCalculator struct {
	resolver *ZoneResolver
	settings *SettingsService
	rates    *RateService
	slabRepo repository.WeightSlabRepository
	rateRepo repository.ZoneRateRepository
	logger   *logrus.Entry
}

// NewShippingCalculator creates a shipping calculator
func NewShippingCalculator(
	resolver *ZoneResolver,
	settings *SettingsService,
	rates *RateService,
	slabRepo repository.WeightSlabRepository,
	rateRepo repository.ZoneRateRepository,
	logger *logrus.Logger,
) *ShippingCalculator {
	return &ShippingCalculator{
		resolver: resolver,
		settings: settings,
		rates:    rates,
		slabRepo: slabRepo,
		rateRepo: rateRepo,
		logger:   logger.WithField("component", "shipping_calculator"),
	}
}

// Calculate quotes every weight slab for the delivery pincode's zone
func (c *ShippingCalculator) Calculate(ctx context.Context, tenantID string, req models.ShippingCalculationRequest) (*models.ShippingCalculation, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	settings, err := c.settings.Get(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	dest, err := c.resolver.Resolve(ctx, tenantID, req.DeliveryPincode, settings.FallbackZone)
	if err != nil {
		if errors.Is(err, ErrPincodeNotServiceable) {
			shippingQuotesTotal.WithLabelValues("none", "not_serviceable").Inc()
		}
		return nil, err
	}
	if req.PaymentMethod == models.PaymentMethodCOD && !dest.CODAvailable {
		shippingQuotesTotal.WithLabelValues(string(dest.Zone), "cod_unavailable").Inc()
		return nil, ErrCODNotAvailable
	}

	slabs, err := c.slabRepo.List(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list weight slabs: %w", err)
	}
	if len(slabs) == 0 {
		shippingQuotesTotal.WithLabelValues(string(dest.Zone), "no_slabs").Inc()
		return nil, ErrNoWeightSlabs
	}

	zoneRates, err := c.rateRepo.ListByZone(ctx, tenantID, dest.Zone)
	if err != nil {
		return nil, fmt.Errorf("failed to list zone rates: %w", err)
	}
	ratesBySlab := make(map[uuid.UUID]models.ZoneRate, len(zoneRates))
	for _, r := range zoneRates {
		ratesBySlab[r.ShippingWeightSlabID] = r
	}

	threshold, err := c.rates.ThresholdForZone(ctx, tenantID, dest.Zone)
	if err != nil {
		return nil, err
	}

	dimensional := DimensionalWeight(req.Dimensions, settings.VolumetricDivisor)
	chargeable := ChargeableWeight(req.Weight, dimensional)
	multiplier := dest.ZoneMultiplier
	if !multiplier.IsPositive() {
		multiplier = decimal.NewFromInt(1)
	}

	options := make([]models.ShippingOption, 0, len(slabs))
	for _, slab := range slabs {
		billable := RoundUpToIncrement(chargeable, slab.BaseWeight)
		option := models.ShippingOption{
			WeightSlabID:   slab.ID,
			Courier:        slab.CourierName,
			BillableWeight: billable,
		}

		rate, ok := ratesBySlab[slab.ID]
		if !ok {
			option.ErrorMessage = notConfiguredMessage
			shippingOptionsUnconfigured.WithLabelValues(string(dest.Zone)).Inc()
			options = append(options, option)
			continue
		}

		option.Available = true
		option.BaseCost = BaseShippingCost(rate, slab.BaseWeight, billable, multiplier)
		option.FinalCost = option.BaseCost
		if QualifiesForFreeShipping(threshold, req.OrderValue) {
			option.FinalCost = decimal.Zero
			option.IsFreeShipping = true
		}
		if req.PaymentMethod == models.PaymentMethodCOD {
			option.CODCharge = CODCharge(rate, req.OrderValue)
		}
		option.TotalCost = option.FinalCost.Add(option.CODCharge)
		options = append(options, option)
	}

	sortOptions(options)

	billable := RoundUpToIncrement(chargeable, slabs[0].BaseWeight)
	if len(options) > 0 && options[0].Available {
		options[0].Recommended = true
		billable = options[0].BillableWeight
	}

	outcome := "quoted"
	if len(options) == 0 || !options[0].Available {
		outcome = "not_configured"
	}
	shippingQuotesTotal.WithLabelValues(string(dest.Zone), outcome).Inc()

	result := &models.ShippingCalculation{
		Zone:                  dest.Zone,
		ZoneName:              dest.Zone.DisplayName(),
		GrossWeight:           req.Weight,
		DimensionalWeight:     dimensional,
		BillableWeight:        billable,
		ShippingOptions:       options,
		FreeShippingThreshold: threshold.Threshold,
		FreeShippingEnabled:   threshold.Enabled,
		DeliveryEstimate:      deliveryEstimate(dest.ExpectedDeliveryDays),
		ExpectedDeliveryDays:  dest.ExpectedDeliveryDays,
		CODAvailable:          dest.CODAvailable,
		IsFallbackZone:        dest.IsFallback,
	}

	if pickup, err := c.resolver.Resolve(ctx, tenantID, req.PickupPincode, ""); err == nil {
		result.PickupZone = pickup.Zone
	}

	c.logger.WithFields(logrus.Fields{
		"tenant_id":        tenantID,
		"zone":             dest.Zone,
		"billable_weight":  billable.String(),
		"options":          len(options),
		"is_fallback_zone": dest.IsFallback,
	}).Debug("shipping quote calculated")

	return result, nil
}

// BaseShippingCost is fwd_rate plus excess weight over the slab base at aw_rate,
// scaled by the pincode's zone multiplier and rounded to paise.
func BaseShippingCost(rate models.ZoneRate, baseWeight, billable, multiplier decimal.Decimal) decimal.Decimal {
	excess := decimal.Max(decimal.Zero, billable.Sub(baseWeight))
	cost := rate.FwdRate.Add(excess.Mul(rate.AWRate))
	return cost.Mul(multiplier).Round(2)
}

// QualifiesForFreeShipping applies the inclusive threshold boundary
func QualifiesForFreeShipping(t *models.FreeShippingThreshold, orderValue decimal.Decimal) bool {
	return t != nil && t.Enabled && orderValue.GreaterThanOrEqual(t.Threshold)
}

// CODCharge is the flat COD charge plus the percentage of order value
func CODCharge(rate models.ZoneRate, orderValue decimal.Decimal) decimal.Decimal {
	pct := orderValue.Mul(rate.CODPercentage).Div(decimal.NewFromInt(100))
	return rate.CODCharges.Add(pct).Round(2)
}

// sortOptions puts available options first, cheapest first
func sortOptions(options []models.ShippingOption) {
	sort.SliceStable(options, func(i, j int) bool {
		a, b := options[i], options[j]
		if a.Available != b.Available {
			return a.Available
		}
		return a.TotalCost.LessThan(b.TotalCost)
	})
}

func deliveryEstimate(days int) string {
	switch {
	case days <= 0:
		return ""
	case days == 1:
		return "1 business day"
	}
	return fmt.Sprintf("%d-%d business days", days, days+2)
}
