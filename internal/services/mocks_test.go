package services

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
	args := m.Called(ctx, zone)
	if args.Error(0) == nil {
		zone.ID = uuid.New()
	}
	return args.Error(0)
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
	args := m.Called(ctx, rate)
	if args.Error(0) == nil {
		rate.ID = uuid.New()
	}
	return args.Error(0)
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

// MockWarehouseRepository is a mock implementation of WarehouseRepository
type MockWarehouseRepository struct {
	mock.Mock
}

var _ repository.WarehouseRepository = (*MockWarehouseRepository)(nil)

func (m *MockWarehouseRepository) List(ctx context.Context, tenantID string, params models.ListParams) ([]models.Warehouse, int64, error) {
	args := m.Called(ctx, tenantID, params)
	return args.Get(0).([]models.Warehouse), args.Get(1).(int64), args.Error(2)
}

func (m *MockWarehouseRepository) GetByID(ctx context.Context, tenantID string, id uuid.UUID) (*models.Warehouse, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Warehouse), args.Error(1)
}

func (m *MockWarehouseRepository) GetDefault(ctx context.Context, tenantID string) (*models.Warehouse, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Warehouse), args.Error(1)
}

func (m *MockWarehouseRepository) Count(ctx context.Context, tenantID string) (int64, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockWarehouseRepository) Create(ctx context.Context, warehouse *models.Warehouse) error {
	args := m.Called(ctx, warehouse)
	if args.Error(0) == nil {
		warehouse.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *MockWarehouseRepository) Update(ctx context.Context, warehouse *models.Warehouse) error {
	return m.Called(ctx, warehouse).Error(0)
}

func (m *MockWarehouseRepository) Delete(ctx context.Context, tenantID string, id uuid.UUID) error {
	return m.Called(ctx, tenantID, id).Error(0)
}

func (m *MockWarehouseRepository) ClearDefault(ctx context.Context, tenantID string) error {
	return m.Called(ctx, tenantID).Error(0)
}

func (m *MockWarehouseRepository) MarkDefault(ctx context.Context, tenantID string, id uuid.UUID) error {
	return m.Called(ctx, tenantID, id).Error(0)
}

func (m *MockWarehouseRepository) OldestExcept(ctx context.Context, tenantID string, id uuid.UUID) (*models.Warehouse, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Warehouse), args.Error(1)
}

// WithTransaction runs fn against the mock itself
func (m *MockWarehouseRepository) WithTransaction(ctx context.Context, fn func(repo repository.WarehouseRepository) error) error {
	return fn(m)
}

// MockCarrierConfigRepository is a mock implementation of CarrierConfigRepository
type MockCarrierConfigRepository struct {
	mock.Mock
}

var _ repository.CarrierConfigRepository = (*MockCarrierConfigRepository)(nil)

func (m *MockCarrierConfigRepository) List(ctx context.Context, tenantID string) ([]models.CarrierConfig, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]models.CarrierConfig), args.Error(1)
}

func (m *MockCarrierConfigRepository) GetByID(ctx context.Context, tenantID string, id uuid.UUID) (*models.CarrierConfig, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CarrierConfig), args.Error(1)
}

func (m *MockCarrierConfigRepository) Update(ctx context.Context, config *models.CarrierConfig) error {
	return m.Called(ctx, config).Error(0)
}

func (m *MockCarrierConfigRepository) CreateMissing(ctx context.Context, configs []models.CarrierConfig) (int64, error) {
	args := m.Called(ctx, configs)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCarrierConfigRepository) ClearPrimary(ctx context.Context, tenantID string) error {
	return m.Called(ctx, tenantID).Error(0)
}

// WithTransaction runs fn against the mock itself
func (m *MockCarrierConfigRepository) WithTransaction(ctx context.Context, fn func(repo repository.CarrierConfigRepository) error) error {
	return fn(m)
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

// MockPublisher records published events
type MockPublisher struct {
	mock.Mock
}

var _ EventPublisher = (*MockPublisher)(nil)

func (m *MockPublisher) Publish(ctx context.Context, tenantID, eventType, entityID, action string, data interface{}) error {
	return m.Called(ctx, tenantID, eventType, entityID, action, data).Error(0)
}

// MockPincodeCache is a mock implementation of PincodeLookupCache
type MockPincodeCache struct {
	mock.Mock
}

var _ PincodeLookupCache = (*MockPincodeCache)(nil)

func (m *MockPincodeCache) Get(ctx context.Context, tenantID, pincode string) (*models.PincodeZone, error) {
	args := m.Called(ctx, tenantID, pincode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PincodeZone), args.Error(1)
}

func (m *MockPincodeCache) Set(ctx context.Context, tenantID string, zone *models.PincodeZone) error {
	return m.Called(ctx, tenantID, zone).Error(0)
}

func (m *MockPincodeCache) Invalidate(ctx context.Context, tenantID string, pincodes ...string) error {
	return m.Called(ctx, tenantID, pincodes).Error(0)
}

func (m *MockPincodeCache) InvalidateAll(ctx context.Context, tenantID string) error {
	return m.Called(ctx, tenantID).Error(0)
}
