package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"shipping-admin-service/internal/models"
)

// WeightSlabRepository defines the interface for weight slab persistence
type WeightSlabRepository interface {
	List(ctx context.Context, tenantID string) ([]models.WeightSlab, error)
	GetByID(ctx context.Context, tenantID string, id uuid.UUID) (*models.WeightSlab, error)
	Create(ctx context.Context, slab *models.WeightSlab) error
	Update(ctx context.Context, slab *models.WeightSlab) error
	Delete(ctx context.Context, tenantID string, id uuid.UUID) error
}

// ZoneRateRepository defines the interface for zone rate persistence
type ZoneRateRepository interface {
	List(ctx context.Context, tenantID string) ([]models.ZoneRate, error)
	GetByID(ctx context.Context, tenantID string, id uuid.UUID) (*models.ZoneRate, error)
	FindBySlabAndZone(ctx context.Context, tenantID string, slabID uuid.UUID, zone models.Zone) (*models.ZoneRate, error)
	ListByZone(ctx context.Context, tenantID string, zone models.Zone) ([]models.ZoneRate, error)
	Create(ctx context.Context, rate *models.ZoneRate) error
	Update(ctx context.Context, rate *models.ZoneRate) error
	Delete(ctx context.Context, tenantID string, id uuid.UUID) error
}

type weightSlabRepository struct {
	db *gorm.DB
}

// NewWeightSlabRepository creates a new weight slab repository
func NewWeightSlabRepository(db *gorm.DB) WeightSlabRepository {
	return &weightSlabRepository{db: db}
}

func (r *weightSlabRepository) List(ctx context.Context, tenantID string) ([]models.WeightSlab, error) {
	var slabs []models.WeightSlab
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("courier_name ASC, base_weight ASC").
		Find(&slabs).Error
	return slabs, err
}

func (r *weightSlabRepository) GetByID(ctx context.Context, tenantID string, id uuid.UUID) (*models.WeightSlab, error) {
	var slab models.WeightSlab
	err := r.db.WithContext(ctx).
		Preload("Rates").
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&slab).Error
	if err != nil {
		return nil, translate(err)
	}
	return &slab, nil
}

func (r *weightSlabRepository) Create(ctx context.Context, slab *models.WeightSlab) error {
	return translate(r.db.WithContext(ctx).Create(slab).Error)
}

func (r *weightSlabRepository) Update(ctx context.Context, slab *models.WeightSlab) error {
	return translate(r.db.WithContext(ctx).Omit("Rates").Save(slab).Error)
}

// Delete removes the slab and every rate that references it
func (r *weightSlabRepository) Delete(ctx context.Context, tenantID string, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tenant_id = ? AND shipping_weight_slab_id = ?", tenantID, id).
			Delete(&models.ZoneRate{}).Error; err != nil {
			return err
		}
		return affected(tx.Where("tenant_id = ? AND id = ?", tenantID, id).Delete(&models.WeightSlab{}))
	})
}

type zoneRateRepository struct {
	db *gorm.DB
}

// NewZoneRateRepository creates a new zone rate repository
func NewZoneRateRepository(db *gorm.DB) ZoneRateRepository {
	return &zoneRateRepository{db: db}
}

func (r *zoneRateRepository) List(ctx context.Context, tenantID string) ([]models.ZoneRate, error) {
	var rates []models.ZoneRate
	err := r.db.WithContext(ctx).
		Preload("WeightSlab").
		Where("tenant_id = ?", tenantID).
		Order("zone ASC, created_at ASC").
		Find(&rates).Error
	return rates, err
}

func (r *zoneRateRepository) GetByID(ctx context.Context, tenantID string, id uuid.UUID) (*models.ZoneRate, error) {
	var rate models.ZoneRate
	err := r.db.WithContext(ctx).
		Preload("WeightSlab").
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&rate).Error
	if err != nil {
		return nil, translate(err)
	}
	return &rate, nil
}

func (r *zoneRateRepository) FindBySlabAndZone(ctx context.Context, tenantID string, slabID uuid.UUID, zone models.Zone) (*models.ZoneRate, error) {
	var rate models.ZoneRate
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND shipping_weight_slab_id = ? AND zone = ?", tenantID, slabID, zone).
		First(&rate).Error
	if err != nil {
		return nil, translate(err)
	}
	return &rate, nil
}

func (r *zoneRateRepository) ListByZone(ctx context.Context, tenantID string, zone models.Zone) ([]models.ZoneRate, error) {
	var rates []models.ZoneRate
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND zone = ?", tenantID, zone).
		Find(&rates).Error
	return rates, err
}

func (r *zoneRateRepository) Create(ctx context.Context, rate *models.ZoneRate) error {
	return translate(r.db.WithContext(ctx).Omit("WeightSlab").Create(rate).Error)
}

func (r *zoneRateRepository) Update(ctx context.Context, rate *models.ZoneRate) error {
	return translate(r.db.WithContext(ctx).Omit("WeightSlab").Save(rate).Error)
}

func (r *zoneRateRepository) Delete(ctx context.Context, tenantID string, id uuid.UUID) error {
	return affected(r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Delete(&models.ZoneRate{}))
}
