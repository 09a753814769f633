package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"shipping-admin-service/internal/models"
)

// OrderChargeRepository defines the interface for order charge persistence
type OrderChargeRepository interface {
	List(ctx context.Context, tenantID string) ([]models.OrderCharge, error)
	ListEnabled(ctx context.Context, tenantID string) ([]models.OrderCharge, error)
	GetByID(ctx context.Context, tenantID string, id uuid.UUID) (*models.OrderCharge, error)
	Create(ctx context.Context, charge *models.OrderCharge) error
	Update(ctx context.Context, charge *models.OrderCharge) error
	Delete(ctx context.Context, tenantID string, id uuid.UUID) error
	UpdatePriorities(ctx context.Context, tenantID string, updates []models.PriorityUpdate) error
}

// TaxConfigurationRepository defines the interface for tax rule persistence
type TaxConfigurationRepository interface {
	List(ctx context.Context, tenantID string) ([]models.TaxConfiguration, error)
	ListEnabled(ctx context.Context, tenantID string) ([]models.TaxConfiguration, error)
	GetByID(ctx context.Context, tenantID string, id uuid.UUID) (*models.TaxConfiguration, error)
	Create(ctx context.Context, tax *models.TaxConfiguration) error
	Update(ctx context.Context, tax *models.TaxConfiguration) error
	Delete(ctx context.Context, tenantID string, id uuid.UUID) error
}

type orderChargeRepository struct {
	db *gorm.DB
}

// NewOrderChargeRepository creates a new order charge repository
func NewOrderChargeRepository(db *gorm.DB) OrderChargeRepository {
	return &orderChargeRepository{db: db}
}

func (r *orderChargeRepository) List(ctx context.Context, tenantID string) ([]models.OrderCharge, error) {
	var charges []models.OrderCharge
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("priority ASC, code ASC").
		Find(&charges).Error
	return charges, err
}

func (r *orderChargeRepository) ListEnabled(ctx context.Context, tenantID string) ([]models.OrderCharge, error) {
	var charges []models.OrderCharge
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND is_enabled = ?", tenantID, true).
		Order("priority ASC, code ASC").
		Find(&charges).Error
	return charges, err
}

func (r *orderChargeRepository) GetByID(ctx context.Context, tenantID string, id uuid.UUID) (*models.OrderCharge, error) {
	var charge models.OrderCharge
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&charge).Error
	if err != nil {
		return nil, translate(err)
	}
	return &charge, nil
}

func (r *orderChargeRepository) Create(ctx context.Context, charge *models.OrderCharge) error {
	return translate(r.db.WithContext(ctx).Create(charge).Error)
}

func (r *orderChargeRepository) Update(ctx context.Context, charge *models.OrderCharge) error {
	return translate(r.db.WithContext(ctx).Save(charge).Error)
}

func (r *orderChargeRepository) Delete(ctx context.Context, tenantID string, id uuid.UUID) error {
	return affected(r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Delete(&models.OrderCharge{}))
}

// UpdatePriorities applies every update or none
func (r *orderChargeRepository) UpdatePriorities(ctx context.Context, tenantID string, updates []models.PriorityUpdate) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, u := range updates {
			result := tx.Model(&models.OrderCharge{}).
				Where("tenant_id = ? AND id = ?", tenantID, u.ID).
				Update("priority", u.Priority)
			if err := affected(result); err != nil {
				return err
			}
		}
		return nil
	})
}

type taxConfigurationRepository struct {
	db *gorm.DB
}

// NewTaxConfigurationRepository creates a new tax configuration repository
func NewTaxConfigurationRepository(db *gorm.DB) TaxConfigurationRepository {
	return &taxConfigurationRepository{db: db}
}

func (r *taxConfigurationRepository) List(ctx context.Context, tenantID string) ([]models.TaxConfiguration, error) {
	var taxes []models.TaxConfiguration
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("priority ASC, code ASC").
		Find(&taxes).Error
	return taxes, err
}

func (r *taxConfigurationRepository) ListEnabled(ctx context.Context, tenantID string) ([]models.TaxConfiguration, error) {
	var taxes []models.TaxConfiguration
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND is_enabled = ?", tenantID, true).
		Order("priority ASC, code ASC").
		Find(&taxes).Error
	return taxes, err
}

func (r *taxConfigurationRepository) GetByID(ctx context.Context, tenantID string, id uuid.UUID) (*models.TaxConfiguration, error) {
	var tax models.TaxConfiguration
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&tax).Error
	if err != nil {
		return nil, translate(err)
	}
	return &tax, nil
}

func (r *taxConfigurationRepository) Create(ctx context.Context, tax *models.TaxConfiguration) error {
	return translate(r.db.WithContext(ctx).Create(tax).Error)
}

func (r *taxConfigurationRepository) Update(ctx context.Context, tax *models.TaxConfiguration) error {
	return translate(r.db.WithContext(ctx).Save(tax).Error)
}

func (r *taxConfigurationRepository) Delete(ctx context.Context, tenantID string, id uuid.UUID) error {
	return affected(r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Delete(&models.TaxConfiguration{}))
}
