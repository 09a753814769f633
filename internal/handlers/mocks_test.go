package handlers

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"shipping-admin-service/internal/models"
	"shipping-admin-service/internal/repository"
)

// MockPincodeRepository is a mock implementation of PincodeRepository
type MockPincodeRepository struct {
	mock.Mock
}

var _ repository.PincodeRepository = (*MockPincodeRepository)(nil)

func (m *MockPincodeRepository) List(ctx context.Context, tenantID string, filter models.PincodeFilter) ([]models.PincodeZone, int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]models.PincodeZone), args.Get(1).(int64), args.Error(2)
}

func (m *MockPincodeRepository) ListAll(ctx context.Context, tenantID string) ([]models.PincodeZone, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]models.PincodeZone), args.Error(1)
}

func (m *MockPincodeRepository) GetByID(ctx context.Context, tenantID string, id uuid.UUID) (*models.PincodeZone, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PincodeZone), args.Error(1)
}

func (m *MockPincodeRepository) GetByPincode(ctx context.Context, tenantID, pincode string) (*models.PincodeZone, error) {
	args := m.Called(ctx, tenantID, pincode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PincodeZone), args.Error(1)
}

func (m *MockPincodeRepository) Create(ctx context.Context, zone *models.PincodeZone) error {
	return m.Called(ctx, zone).Error(0)
}

func (m *MockPincodeRepository) Update(ctx context.Context, zone *models.PincodeZone) error {
	return m.Called(ctx, zone).Error(0)
}

func (m *MockPincodeRepository) Delete(ctx context.Context, tenantID string, id uuid.UUID) error {
	return m.Called(ctx, tenantID, id).Error(0)
}

func (m *MockPincodeRepository) Upsert(ctx context.Context, zones []models.PincodeZone) error {
	return m.Called(ctx, zones).Error(0)
}

func (m *MockPincodeRepository) CountByZone(ctx context.Context, tenantID string) (map[models.Zone]int64, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(map[models.Zone]int64), args.Error(1)
}

// MockWeightSlabRepository is a mock implementation of WeightSlabRepository
type MockWeightSlabRepository struct {
	mock.Mock
}

var _ repository.WeightSlabRepository = (*MockWeightSlabRepository)(nil)

func (m *MockWeightSlabRepository) List(ctx context.Context, tenantID string) ([]models.WeightSlab, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]models.WeightSlab), args.Error(1)
}

func (m *MockWeightSlabRepository) GetByID(ctx context.Context, tenantID string, id uuid.UUID) (*models.WeightSlab, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WeightSlab), args.Error(1)
}

func (m *MockWeightSlabRepository) Create(ctx context.Context, slab *models.WeightSlab) error {
	return m.Called(ctx, slab).Error(0)
}

func (m *MockWeightSlabRepository) Update(ctx context.Context, slab *models.WeightSlab) error {
	return m.Called(ctx, slab).Error(0)
}

func (m *MockWeightSlabRepository) Delete(ctx context.Context, tenantID string, id uuid.UUID) error {
	return m.Called(ctx, tenantID, id).Error(0)
}

// MockZoneRateRepository is a mock implementation of ZoneRateRepository
type MockZoneRateRepository struct {
	mock.Mock
}

var _ repository.ZoneRateRepository = (*MockZoneRateRepository)(nil)

func (m *MockZoneRateRepository) List(ctx context.Context, tenantID string) ([]models.ZoneRate, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]models.ZoneRate), args.Error(1)
}

func (m *MockZoneRateRepository) GetByID(ctx context.Context, tenantID string, id uuid.UUID) (*models.ZoneRate, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ZoneRate), args.Error(1)
}

func (m *MockZoneRateRepository) FindBySlabAndZone(ctx context.Context, tenantID string, slabID uuid.UUID, zone models.Zone) (*models.ZoneRate, error) {
	args := m.Called(ctx, tenantID, slabID, zone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ZoneRate), args.Error(1)
}

func (m *MockZoneRateRepository) ListByZone(ctx context.Context, tenantID string, zone models.Zone) ([]models.ZoneRate, error) {
	args := m.Called(ctx, tenantID, zone)
	return args.Get(0).([]models.ZoneRate), args.Error(1)
}

func (m *MockZoneRateRepository) Create(ctx context.Context, rate *models.ZoneRate) error {
	return m.Called(ctx, rate).Error(0)
}

func (m *MockZoneRateRepository) Update(ctx context.Context, rate *models.ZoneRate) error {
	return m.Called(ctx, rate).Error(0)
}

func (m *MockZoneRateRepository) Delete(ctx context.Context, tenantID string, id uuid.UUID) error {
	return m.Called(ctx, tenantID, id).Error(0)
}

// MockFreeShippingRepository is a mock implementation of FreeShippingRepository
type MockFreeShippingRepository struct {
	mock.Mock
}

var _ repository.FreeShippingRepository = (*MockFreeShippingRepository)(nil)

func (m *MockFreeShippingRepository) List(ctx context.Context, tenantID string) ([]models.FreeShippingThreshold, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]models.FreeShippingThreshold), args.Error(1)
}

func (m *MockFreeShippingRepository) GetByZone(ctx context.Context, tenantID string, zone models.Zone) (*models.FreeShippingThreshold, error) {
	args := m.Called(ctx, tenantID, zone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FreeShippingThreshold), args.Error(1)
}

func (m *MockFreeShippingRepository) Upsert(ctx context.Context, threshold *models.FreeShippingThreshold) error {
	return m.Called(ctx, threshold).Error(0)
}

func (m *MockFreeShippingRepository) Delete(ctx context.Context, tenantID string, zone models.Zone) error {
	return m.Called(ctx, tenantID, zone).Error(0)
}

// MockSettingsRepository is a mock implementation of SettingsRepository
type MockSettingsRepository struct {
	mock.Mock
}

var _ repository.SettingsRepository = (*MockSettingsRepository)(nil)

func (m *MockSettingsRepository) GetOrCreate(ctx context.Context, tenantID string, defaults models.ShippingSettings) (*models.ShippingSettings, error) {
	args := m.Called(ctx, tenantID, defaults)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ShippingSettings), args.Error(1)
}

func (m *MockSettingsRepository) Update(ctx context.Context, settings *models.ShippingSettings) error {
	return m.Called(ctx, settings).Error(0)
}

// MockOrderChargeRepository is a mock implementation of OrderChargeRepository
type MockOrderChargeRepository struct {
	mock.Mock
}

var _ repository.OrderChargeRepository = (*MockOrderChargeRepository)(nil)

func (m *MockOrderChargeRepository) List(ctx context.Context, tenantID string) ([]models.OrderCharge, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]models.OrderCharge), args.Error(1)
}

func (m *MockOrderChargeRepository) ListEnabled(ctx context.Context, tenantID string) ([]models.OrderCharge, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]models.OrderCharge), args.Error(1)
}

func (m *MockOrderChargeRepository) GetByID(ctx context.Context, tenantID string, id uuid.UUID) (*models.OrderCharge, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.OrderCharge), args.Error(1)
}

func (m *MockOrderChargeRepository) Create(ctx context.Context, charge *models.OrderCharge) error {
	return m.Called(ctx, charge).Error(0)
}

func (m *MockOrderChargeRepository) Update(ctx context.Context, charge *models.OrderCharge) error {
	return m.Called(ctx, charge).Error(0)
}

func (m *MockOrderChargeRepository) Delete(ctx context.Context, tenantID string, id uuid.UUID) error {
	return m.Called(ctx, tenantID, id).Error(0)
}

func (m *MockOrderChargeRepository) UpdatePriorities(ctx context.Context, tenantID string, updates []models.PriorityUpdate) error {
	return m.Called(ctx, tenantID, updates).Error(0)
}

// MockTaxConfigurationRepository is a mock implementation of TaxConfigurationRepository
type MockTaxConfigurationRepository struct {
	mock.Mock
}

var _ repository.TaxConfigurationRepository = (*MockTaxConfigurationRepository)(nil)

func (m *MockTaxConfigurationRepository) List(ctx context.Context, tenantID string) ([]models.TaxConfiguration, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]models.TaxConfiguration), args.Error(1)
}

func (m *MockTaxConfigurationRepository) ListEnabled(ctx context.Context, tenantID string) ([]models.TaxConfiguration, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]models.TaxConfiguration), args.Error(1)
}

func (m *MockTaxConfigurationRepository) GetByID(ctx context.Context, tenantID string, id uuid.UUID) (*models.TaxConfiguration, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TaxConfiguration), args.Error(1)
}

func (m *MockTaxConfigurationRepository) Create(ctx context.Context, tax *models.TaxConfiguration) error {
	return m.Called(ctx, tax).Error(0)
}

func (m *MockTaxConfigurationRepository) Update(ctx context.Context, tax *models.TaxConfiguration) error {
	return m.Called(ctx, tax).Error(0)
}

func (m *MockTaxConfigurationRepository) Delete(ctx context.Context, tenantID string, id uuid.UUID) error {
	return m.Called(ctx, tenantID, id).Error(0)
}
