package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"shipping-admin-service/internal/models"
	"shipping-admin-service/internal/repository"
)

const testTenant = "tenant-1"

type calculatorFixture struct {
	pincodes   *MockPincodeRepository
	slabs      *MockWeightSlabRepository
	rates      *MockZoneRateRepository
	thresholds *MockFreeShippingRepository
	settings   *MockSettingsRepository
	calculator *ShippingCalculator
}

func newCalculatorFixture(fallback models.Zone) *calculatorFixture {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	f := &calculatorFixture{
		pincodes:   new(MockPincodeRepository),
		slabs:      new(MockWeightSlabRepository),
		rates:      new(MockZoneRateRepository),
		thresholds: new(MockFreeShippingRepository),
		settings:   new(MockSettingsRepository),
	}
	f.settings.On("GetOrCreate", mock.Anything, testTenant, mock.Anything).Return(&models.ShippingSettings{
		TenantID:          testTenant,
		VolumetricDivisor: 5000,
		FallbackZone:      fallback,
		Currency:          "INR",
	}, nil)

	resolver := NewZoneResolver(f.pincodes, nil, logger)
	settingsService := NewSettingsService(f.settings, models.ShippingSettings{}, nil)
	rateService := NewRateService(f.slabs, f.rates, f.thresholds, dec("499"), nil)
	f.calculator = NewShippingCalculator(resolver, settingsService, rateService, f.slabs, f.rates, logger)
	return f
}

func zoneA(pincode string) *models.PincodeZone {
	return &models.PincodeZone{
		Pincode:              pincode,
		Zone:                 models.ZoneA,
		City:                 "Mumbai",
		CODAvailable:         true,
		ExpectedDeliveryDays: 2,
		ZoneMultiplier:       decimal.NewFromInt(1),
	}
}

func zoneARate(slabID uuid.UUID) models.ZoneRate {
	return models.ZoneRate{
		ID:                   uuid.New(),
		ShippingWeightSlabID: slabID,
		Zone:                 models.ZoneA,
		FwdRate:              dec("40"),
		RTORate:              dec("35"),
		AWRate:               dec("30"),
		CODCharges:           dec("25"),
		CODPercentage:        dec("1.5"),
	}
}

func TestShippingCalculator_SameCityFreeShipping(t *testing.T) {
	f := newCalculatorFixture("")
	slab := models.WeightSlab{ID: uuid.New(), CourierName: "Standard", BaseWeight: dec("0.5")}

	f.pincodes.On("GetByPincode", mock.Anything, testTenant, "400020").Return(zoneA("400020"), nil)
	f.pincodes.On("GetByPincode", mock.Anything, testTenant, "400001").Return(zoneA("400001"), nil)
	f.slabs.On("List", mock.Anything, testTenant).Return([]models.WeightSlab{slab}, nil)
	f.rates.On("ListByZone", mock.Anything, testTenant, models.ZoneA).Return([]models.ZoneRate{zoneARate(slab.ID)}, nil)
	f.thresholds.On("GetByZone", mock.Anything, testTenant, models.ZoneA).Return(&models.FreeShippingThreshold{
		Zone: models.ZoneA, Threshold: dec("500"), Enabled: true,
	}, nil)

	result, err := f.calculator.Calculate(context.Background(), testTenant, models.ShippingCalculationRequest{
		PickupPincode:   "400001",
		DeliveryPincode: "400020",
		Weight:          dec("1.5"),
		OrderValue:      dec("999"),
		Dimensions:      dims("20", "14", "5"),
	})

	require.NoError(t, err)
	assert.Equal(t, models.ZoneA, result.Zone)
	assert.Equal(t, models.ZoneA, result.PickupZone)
	assert.Equal(t, "Same City", result.ZoneName)
	assert.True(t, result.DimensionalWeight.Equal(dec("0.28")))
	assert.True(t, result.BillableWeight.Equal(dec("1.5")))
	assert.True(t, result.CODAvailable)
	assert.False(t, result.IsFallbackZone)
	assert.Equal(t, "2-4 business days", result.DeliveryEstimate)

	require.Len(t, result.ShippingOptions, 1)
	option := result.ShippingOptions[0]
	assert.True(t, option.Available)
	assert.True(t, option.Recommended)
	assert.True(t, option.IsFreeShipping)
	// 40 + (1.5 - 0.5) * 30
	assert.True(t, option.BaseCost.Equal(dec("70")), "base cost %s", option.BaseCost)
	assert.True(t, option.FinalCost.IsZero())
	assert.True(t, option.TotalCost.IsZero())
}

func TestShippingCalculator_ReportsDimensionalWeightAtFourPlaces(t *testing.T) {
	f := newCalculatorFixture("")
	slab := models.WeightSlab{ID: uuid.New(), CourierName: "Standard", BaseWeight: dec("0.5")}

	f.pincodes.On("GetByPincode", mock.Anything, testTenant, "400020").Return(zoneA("400020"), nil)
	f.pincodes.On("GetByPincode", mock.Anything, testTenant, "400001").Return(zoneA("400001"), nil)
	f.slabs.On("List", mock.Anything, testTenant).Return([]models.WeightSlab{slab}, nil)
	f.rates.On("ListByZone", mock.Anything, testTenant, models.ZoneA).Return([]models.ZoneRate{zoneARate(slab.ID)}, nil)
	f.thresholds.On("GetByZone", mock.Anything, testTenant, models.ZoneA).Return(nil, repository.ErrNotFound)

	result, err := f.calculator.Calculate(context.Background(), testTenant, models.ShippingCalculationRequest{
		PickupPincode:   "400001",
		DeliveryPincode: "400020",
		Weight:          dec("1"),
		OrderValue:      dec("100"),
		Dimensions:      dims("33.3", "21.7", "9.1"),
	})

	require.NoError(t, err)
	// 6575.751 / 5000 = 1.3151502
	assert.Equal(t, "1.3152", result.DimensionalWeight.String())
	assert.True(t, result.BillableWeight.Equal(dec("1.5")))
}

func TestShippingCalculator_FreeShippingBoundaryIsInclusive(t *testing.T) {
	threshold := &models.FreeShippingThreshold{Zone: models.ZoneB, Threshold: dec("500"), Enabled: true}

	assert.True(t, QualifiesForFreeShipping(threshold, dec("500")))
	assert.True(t, QualifiesForFreeShipping(threshold, dec("500.01")))
	assert.False(t, QualifiesForFreeShipping(threshold, dec("499.99")))

	threshold.Enabled = false
	assert.False(t, QualifiesForFreeShipping(threshold, dec("10000")))
	assert.False(t, QualifiesForFreeShipping(nil, dec("10000")))
}

func TestShippingCalculator_CODChargeAddedAfterFreeShipping(t *testing.T) {
	f := newCalculatorFixture("")
	slab := models.WeightSlab{ID: uuid.New(), CourierName: "Standard", BaseWeight: dec("0.5")}

	f.pincodes.On("GetByPincode", mock.Anything, testTenant, mock.Anything).Return(zoneA("400020"), nil)
	f.slabs.On("List", mock.Anything, testTenant).Return([]models.WeightSlab{slab}, nil)
	f.rates.On("ListByZone", mock.Anything, testTenant, models.ZoneA).Return([]models.ZoneRate{zoneARate(slab.ID)}, nil)
	f.thresholds.On("GetByZone", mock.Anything, testTenant, models.ZoneA).Return(&models.FreeShippingThreshold{
		Zone: models.ZoneA, Threshold: dec("500"), Enabled: true,
	}, nil)

	result, err := f.calculator.Calculate(context.Background(), testTenant, models.ShippingCalculationRequest{
		PickupPincode:   "400001",
		DeliveryPincode: "400020",
		Weight:          dec("0.4"),
		OrderValue:      dec("1000"),
		PaymentMethod:   models.PaymentMethodCOD,
	})

	require.NoError(t, err)
	option := result.ShippingOptions[0]
	assert.True(t, option.IsFreeShipping)
	assert.True(t, option.FinalCost.IsZero())
	// 25 + 1000 * 1.5%
	assert.True(t, option.CODCharge.Equal(dec("40")), "cod charge %s", option.CODCharge)
	assert.True(t, option.TotalCost.Equal(dec("40")))
}

func TestShippingCalculator_UnconfiguredSlabReportedNotDefaulted(t *testing.T) {
	f := newCalculatorFixture("")
	configured := models.WeightSlab{ID: uuid.New(), CourierName: "Express", BaseWeight: dec("0.5")}
	missing := models.WeightSlab{ID: uuid.New(), CourierName: "Economy", BaseWeight: dec("1")}

	f.pincodes.On("GetByPincode", mock.Anything, testTenant, mock.Anything).Return(zoneA("400020"), nil)
	f.slabs.On("List", mock.Anything, testTenant).Return([]models.WeightSlab{missing, configured}, nil)
	f.rates.On("ListByZone", mock.Anything, testTenant, models.ZoneA).Return([]models.ZoneRate{zoneARate(configured.ID)}, nil)
	f.thresholds.On("GetByZone", mock.Anything, testTenant, models.ZoneA).Return(nil, repository.ErrNotFound)

	result, err := f.calculator.Calculate(context.Background(), testTenant, models.ShippingCalculationRequest{
		PickupPincode:   "400001",
		DeliveryPincode: "400020",
		Weight:          dec("1"),
		OrderValue:      dec("100"),
	})

	require.NoError(t, err)
	require.Len(t, result.ShippingOptions, 2)
	assert.Equal(t, "Express", result.ShippingOptions[0].Courier)
	assert.True(t, result.ShippingOptions[0].Recommended)
	assert.True(t, result.ShippingOptions[0].BaseCost.Equal(dec("55")))

	unconfigured := result.ShippingOptions[1]
	assert.Equal(t, "Economy", unconfigured.Courier)
	assert.False(t, unconfigured.Available)
	assert.Equal(t, "Not configured", unconfigured.ErrorMessage)
	assert.True(t, unconfigured.BaseCost.IsZero())
	assert.False(t, result.FreeShippingEnabled)
	assert.True(t, result.FreeShippingThreshold.Equal(dec("499")))
}

func TestShippingCalculator_ZoneMultiplierScalesBaseCost(t *testing.T) {
	rate := zoneARate(uuid.New())
	cost := BaseShippingCost(rate, dec("0.5"), dec("1"), dec("1.2"))
	// (40 + 0.5 * 30) * 1.2
	assert.True(t, cost.Equal(dec("66")), "cost %s", cost)
}

func TestShippingCalculator_Failures(t *testing.T) {
	t.Run("unmapped pincode without fallback", func(t *testing.T) {
		f := newCalculatorFixture("")
		f.pincodes.On("GetByPincode", mock.Anything, testTenant, "799001").Return(nil, repository.ErrNotFound)

		_, err := f.calculator.Calculate(context.Background(), testTenant, models.ShippingCalculationRequest{
			PickupPincode: "400001", DeliveryPincode: "799001", Weight: dec("1"), OrderValue: dec("100"),
		})
		assert.ErrorIs(t, err, ErrPincodeNotServiceable)
	})

	t.Run("no weight slabs", func(t *testing.T) {
		f := newCalculatorFixture("")
		f.pincodes.On("GetByPincode", mock.Anything, testTenant, mock.Anything).Return(zoneA("400020"), nil)
		f.slabs.On("List", mock.Anything, testTenant).Return([]models.WeightSlab{}, nil)

		_, err := f.calculator.Calculate(context.Background(), testTenant, models.ShippingCalculationRequest{
			PickupPincode: "400001", DeliveryPincode: "400020", Weight: dec("1"), OrderValue: dec("100"),
		})
		assert.ErrorIs(t, err, ErrNoWeightSlabs)
	})

	t.Run("cod to non-cod pincode", func(t *testing.T) {
		f := newCalculatorFixture("")
		dest := zoneA("400020")
		dest.CODAvailable = false
		f.pincodes.On("GetByPincode", mock.Anything, testTenant, mock.Anything).Return(dest, nil)

		_, err := f.calculator.Calculate(context.Background(), testTenant, models.ShippingCalculationRequest{
			PickupPincode: "400001", DeliveryPincode: "400020", Weight: dec("1"), OrderValue: dec("100"),
			PaymentMethod: models.PaymentMethodCOD,
		})
		assert.ErrorIs(t, err, ErrCODNotAvailable)
	})

	t.Run("invalid request", func(t *testing.T) {
		f := newCalculatorFixture("")
		_, err := f.calculator.Calculate(context.Background(), testTenant, models.ShippingCalculationRequest{
			PickupPincode: "400001", DeliveryPincode: "40002", Weight: dec("1"),
		})
		assert.True(t, errors.Is(err, models.ErrValidation))
	})
}

func TestShippingCalculator_FallbackZone(t *testing.T) {
	f := newCalculatorFixture(models.ZoneD)
	slab := models.WeightSlab{ID: uuid.New(), CourierName: "Standard", BaseWeight: dec("0.5")}
	rate := zoneARate(slab.ID)
	rate.Zone = models.ZoneD

	f.pincodes.On("GetByPincode", mock.Anything, testTenant, mock.Anything).Return(nil, repository.ErrNotFound)
	f.slabs.On("List", mock.Anything, testTenant).Return([]models.WeightSlab{slab}, nil)
	f.rates.On("ListByZone", mock.Anything, testTenant, models.ZoneD).Return([]models.ZoneRate{rate}, nil)
	f.thresholds.On("GetByZone", mock.Anything, testTenant, models.ZoneD).Return(nil, repository.ErrNotFound)

	result, err := f.calculator.Calculate(context.Background(), testTenant, models.ShippingCalculationRequest{
		PickupPincode: "400001", DeliveryPincode: "799001", Weight: dec("0.5"), OrderValue: dec("100"),
	})

	require.NoError(t, err)
	assert.Equal(t, models.ZoneD, result.Zone)
	assert.True(t, result.IsFallbackZone)
	assert.False(t, result.CODAvailable)
	assert.Equal(t, 7, result.ExpectedDeliveryDays)
	assert.Empty(t, result.PickupZone)
}
