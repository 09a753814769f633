package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"shipping-admin-service/internal/models"
)

// CarrierConfigRepository defines the interface for carrier configuration persistence
type CarrierConfigRepository interface {
	List(ctx context.Context, tenantID string) ([]models.CarrierConfig, error)
	GetByID(ctx context.Context, tenantID string, id uuid.UUID) (*models.CarrierConfig, error)
	Update(ctx context.Context, config *models.CarrierConfig) error
	CreateMissing(ctx context.Context, configs []models.CarrierConfig) (int64, error)
	ClearPrimary(ctx context.Context, tenantID string) error
	WithTransaction(ctx context.Context, fn func(repo CarrierConfigRepository) error) error
}

type carrierConfigRepository struct {
	db *gorm.DB
}

// NewCarrierConfigRepository creates a new carrier config repository
func NewCarrierConfigRepository(db *gorm.DB) CarrierConfigRepository {
	return &carrierConfigRepository{db: db}
}

func (r *carrierConfigRepository) List(ctx context.Context, tenantID string) ([]models.CarrierConfig, error) {
	var configs []models.CarrierConfig
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("is_primary DESC, is_active DESC, name ASC").
		Find(&configs).Error
	return configs, err
}

func (r *carrierConfigRepository) GetByID(ctx context.Context, tenantID string, id uuid.UUID) (*models.CarrierConfig, error) {
	var config models.CarrierConfig
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&config).Error
	if err != nil {
		return nil, translate(err)
	}
	return &config, nil
}

func (r *carrierConfigRepository) Update(ctx context.Context, config *models.CarrierConfig) error {
	return translate(r.db.WithContext(ctx).Save(config).Error)
}

// CreateMissing inserts configs whose (tenant, code) does not exist yet
func (r *carrierConfigRepository) CreateMissing(ctx context.Context, configs []models.CarrierConfig) (int64, error) {
	if len(configs) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "tenant_id"}, {Name: "code"}},
			DoNothing: true,
		}).
		Create(&configs)
	return result.RowsAffected, result.Error
}

// ClearPrimary locks the tenant's carriers before unsetting is_primary so a
// concurrent promotion waits for this transaction to commit
func (r *carrierConfigRepository) ClearPrimary(ctx context.Context, tenantID string) error {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&models.CarrierConfig{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("tenant_id = ?", tenantID).
		Pluck("id", &ids).Error
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Model(&models.CarrierConfig{}).
		Where("tenant_id = ? AND is_primary = ?", tenantID, true).
		Update("is_primary", false).Error
}

func (r *carrierConfigRepository) WithTransaction(ctx context.Context, fn func(repo CarrierConfigRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&carrierConfigRepository{db: tx})
	})
}
