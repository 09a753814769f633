package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"shipping-admin-service/internal/models"
	"shipping-admin-service/internal/repository"
)

// SlabCoverage reports which zones have a rate for one weight slab
type SlabCoverage struct {
	WeightSlabID uuid.UUID            `json:"weight_slab_id"`
	CourierName  string               `json:"courier_name"`
	BaseWeight   decimal.Decimal      `json:"base_weight"`
	Zones        map[models.Zone]bool `json:"zones"`
	Configured   int                  `json:"configured"`
}

// ZoneStats aggregates one zone
type ZoneStats struct {
	Zone           models.Zone     `json:"zone"`
	ZoneName       string          `json:"zone_name"`
	PincodeCount   int64           `json:"pincode_count"`
	RateCount      int             `json:"rate_count"`
	AverageFwdRate decimal.Decimal `json:"average_fwd_rate"`
}

// ShippingAnalytics is the rate configuration overview
type ShippingAnalytics struct {
	TotalPincodes      int64           `json:"total_pincodes"`
	TotalWeightSlabs   int             `json:"total_weight_slabs"`
	TotalRates         int             `json:"total_rates"`
	CoveragePercentage decimal.Decimal `json:"coverage_percentage"`
	Coverage           []SlabCoverage  `json:"coverage"`
	Zones              []ZoneStats     `json:"zones"`
	CheapestZone       *models.Zone    `json:"cheapest_zone"`
	MostExpensiveZone  *models.Zone    `json:"most_expensive_zone"`
}

// AnalyticsService summarizes the rate table and pincode coverage
type AnalyticsService struct {
	pincodes repository.PincodeRepository
	slabs    repository.WeightSlabRepository
	rates    repository.ZoneRateRepository
}

// NewAnalyticsService creates an analytics service
func NewAnalyticsService(pincodes repository.PincodeRepository, slabs repository.WeightSlabRepository, rates repository.ZoneRateRepository) *AnalyticsService {
	return &AnalyticsService{
		pincodes: pincodes,
		slabs:    slabs,
		rates:    rates,
	}
}

// Summary builds the analytics overview for a tenant
func (s *AnalyticsService) Summary(ctx context.Context, tenantID string) (*ShippingAnalytics, error) {
	counts, err := s.pincodes.CountByZone(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to count pincodes: %w", err)
	}
	slabs, err := s.slabs.List(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list weight slabs: %w", err)
	}
	rates, err := s.rates.List(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list zone rates: %w", err)
	}
	return BuildAnalytics(counts, slabs, rates), nil
}

// BuildAnalytics computes the overview from already loaded data. Zones
// without rates are excluded from the cheapest and most expensive ranking.
func BuildAnalytics(counts map[models.Zone]int64, slabs []models.WeightSlab, rates []models.ZoneRate) *ShippingAnalytics {
	configured := make(map[uuid.UUID]map[models.Zone]bool, len(slabs))
	fwdSum := make(map[models.Zone]decimal.Decimal)
	rateCount := make(map[models.Zone]int)
	for _, r := range rates {
		if configured[r.ShippingWeightSlabID] == nil {
			configured[r.ShippingWeightSlabID] = make(map[models.Zone]bool)
		}
		configured[r.ShippingWeightSlabID][r.Zone] = true
		fwdSum[r.Zone] = fwdSum[r.Zone].Add(r.FwdRate)
		rateCount[r.Zone]++
	}

	result := &ShippingAnalytics{
		TotalWeightSlabs:   len(slabs),
		TotalRates:         len(rates),
		CoveragePercentage: decimal.Zero,
		Coverage:           make([]SlabCoverage, 0, len(slabs)),
		Zones:              make([]ZoneStats, 0, len(models.AllZones)),
	}

	covered := 0
	for _, slab := range slabs {
		row := SlabCoverage{
			WeightSlabID: slab.ID,
			CourierName:  slab.CourierName,
			BaseWeight:   slab.BaseWeight,
			Zones:        make(map[models.Zone]bool, len(models.AllZones)),
		}
		for _, z := range models.AllZones {
			ok := configured[slab.ID][z]
			row.Zones[z] = ok
			if ok {
				row.Configured++
			}
		}
		covered += row.Configured
		result.Coverage = append(result.Coverage, row)
	}
	if cells := len(slabs) * len(models.AllZones); cells > 0 {
		result.CoveragePercentage = decimal.NewFromInt(int64(covered)).
			Div(decimal.NewFromInt(int64(cells))).
			Mul(hundred).
			Round(2)
	}

	var cheapest, priciest *ZoneStats
	for _, z := range models.AllZones {
		stats := ZoneStats{
			Zone:           z,
			ZoneName:       z.DisplayName(),
			PincodeCount:   counts[z],
			RateCount:      rateCount[z],
			AverageFwdRate: decimal.Zero,
		}
		result.TotalPincodes += counts[z]
		if stats.RateCount > 0 {
			stats.AverageFwdRate = fwdSum[z].Div(decimal.NewFromInt(int64(stats.RateCount))).Round(2)
		}
		result.Zones = append(result.Zones, stats)
	}

	for i := range result.Zones {
		stats := &result.Zones[i]
		if stats.RateCount == 0 {
			continue
		}
		if cheapest == nil || stats.AverageFwdRate.LessThan(cheapest.AverageFwdRate) {
			cheapest = stats
		}
		if priciest == nil || stats.AverageFwdRate.GreaterThan(priciest.AverageFwdRate) {
			priciest = stats
		}
	}
	if cheapest != nil {
		z := cheapest.Zone
		result.CheapestZone = &z
	}
	if priciest != nil {
		z := priciest.Zone
		result.MostExpensiveZone = &z
	}
	return result
}
