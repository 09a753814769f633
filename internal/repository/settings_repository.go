package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"shipping-admin-service/internal/models"
)

// FreeShippingRepository defines the interface for free shipping thresholds
type FreeShippingRepository interface {
	List(ctx context.Context, tenantID string) ([]models.FreeShippingThreshold, error)
	GetByZone(ctx context.Context, tenantID string, zone models.Zone) (*models.FreeShippingThreshold, error)
	Upsert(ctx context.Context, threshold *models.FreeShippingThreshold) error
	Delete(ctx context.Context, tenantID string, zone models.Zone) error
}

// SettingsRepository defines the interface for per-tenant shipping settings
type SettingsRepository interface {
	GetOrCreate(ctx context.Context, tenantID string, defaults models.ShippingSettings) (*models.ShippingSettings, error)
	Update(ctx context.Context, settings *models.ShippingSettings) error
}

type freeShippingRepository struct {
	db *gorm.DB
}

// NewFreeShippingRepository creates a new free shipping threshold repository
func NewFreeShippingRepository(db *gorm.DB) FreeShippingRepository {
	return &freeShippingRepository{db: db}
}

func (r *freeShippingRepository) List(ctx context.Context, tenantID string) ([]models.FreeShippingThreshold, error) {
	var thresholds []models.FreeShippingThreshold
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("zone ASC").
		Find(&thresholds).Error
	return thresholds, err
}

func (r *freeShippingRepository) GetByZone(ctx context.Context, tenantID string, zone models.Zone) (*models.FreeShippingThreshold, error) {
	var threshold models.FreeShippingThreshold
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND zone = ?", tenantID, zone).
		First(&threshold).Error
	if err != nil {
		return nil, translate(err)
	}
	return &threshold, nil
}

func (r *freeShippingRepository) Upsert(ctx context.Context, threshold *models.FreeShippingThreshold) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "tenant_id"}, {Name: "zone"}},
		DoUpdates: clause.AssignmentColumns([]string{"threshold", "enabled", "updated_at"}),
	}).Create(threshold).Error
}

func (r *freeShippingRepository) Delete(ctx context.Context, tenantID string, zone models.Zone) error {
	return affected(r.db.WithContext(ctx).
		Where("tenant_id = ? AND zone = ?", tenantID, zone).
		Delete(&models.FreeShippingThreshold{}))
}

type settingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository creates a new shipping settings repository
func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

// GetOrCreate returns the tenant's settings, creating them from defaults on first use
func (r *settingsRepository) GetOrCreate(ctx context.Context, tenantID string, defaults models.ShippingSettings) (*models.ShippingSettings, error) {
	var settings models.ShippingSettings
	err := r.db.WithContext(ctx).Where("tenant_id = ?", tenantID).First(&settings).Error
	if err == nil {
		return &settings, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	settings = defaults
	settings.TenantID = tenantID
	err = r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "tenant_id"}}, DoNothing: true}).
		Create(&settings).Error
	if err != nil {
		return nil, err
	}
	// A concurrent request may have won the insert
	if err := r.db.WithContext(ctx).Where("tenant_id = ?", tenantID).First(&settings).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *settingsRepository) Update(ctx context.Context, settings *models.ShippingSettings) error {
	return r.db.WithContext(ctx).Save(settings).Error
}
