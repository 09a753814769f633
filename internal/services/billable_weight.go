package services

import (
	"github.com/shopspring/decimal"
	"shipping-admin-service/internal/models"
)

// DefaultVolumetricDivisor is the cm³/kg divisor used when none is configured
const DefaultVolumetricDivisor = 5000

// dimensionalWeightPlaces is the precision dimensional weight is computed,
// compared and reported at
const dimensionalWeightPlaces = 4

// DimensionalWeight returns L×W×H / divisor in kilograms rounded to four
// decimal places, or zero without dimensions
func DimensionalWeight(d *models.Dimensions, divisor int) decimal.Decimal {
	if d == nil || d.IsZero() {
		return decimal.Zero
	}
	if divisor <= 0 {
		divisor = DefaultVolumetricDivisor
	}
	volume := d.Length.Mul(d.Width).Mul(d.Height)
	return volume.Div(decimal.NewFromInt(int64(divisor))).Round(dimensionalWeightPlaces)
}

// ChargeableWeight returns the larger of gross and dimensional weight
func ChargeableWeight(gross, dimensional decimal.Decimal) decimal.Decimal {
	return decimal.Max(gross, dimensional)
}

// RoundUpToIncrement rounds weight up to the next multiple of increment.
// A non-positive increment leaves weight unchanged.
func RoundUpToIncrement(weight, increment decimal.Decimal) decimal.Decimal {
	if !increment.IsPositive() {
		return weight
	}
	steps := weight.Div(increment).Ceil()
	if steps.IsZero() {
		steps = decimal.NewFromInt(1)
	}
	return steps.Mul(increment)
}

// BillableWeight combines gross and dimensional weight for one slab increment
func BillableWeight(gross decimal.Decimal, d *models.Dimensions, divisor int, increment decimal.Decimal) decimal.Decimal {
	return RoundUpToIncrement(ChargeableWeight(gross, DimensionalWeight(d, divisor)), increment)
}
