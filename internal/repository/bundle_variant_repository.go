package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"shipping-admin-service/internal/models"
)

// BundleVariantRepository defines the interface for bundle variant persistence
type BundleVariantRepository interface {
	ListByProduct(ctx context.Context, tenantID string, productID uuid.UUID) ([]models.BundleVariant, error)
	GetByID(ctx context.Context, tenantID string, id uuid.UUID) (*models.BundleVariant, error)
	Create(ctx context.Context, variant *models.BundleVariant) error
	Update(ctx context.Context, variant *models.BundleVariant) error
	Delete(ctx context.Context, tenantID string, id uuid.UUID) error
}

type bundleVariantRepository struct {
	db *gorm.DB
}

// NewBundleVariantRepository creates a new bundle variant repository
func NewBundleVariantRepository(db *gorm.DB) BundleVariantRepository {
	return &bundleVariantRepository{db: db}
}

func (r *bundleVariantRepository) ListByProduct(ctx context.Context, tenantID string, productID uuid.UUID) ([]models.BundleVariant, error) {
	var variants []models.BundleVariant
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND product_id = ?", tenantID, productID).
		Order("sort_order ASC, quantity ASC").
		Find(&variants).Error
	return variants, err
}

func (r *bundleVariantRepository) GetByID(ctx context.Context, tenantID string, id uuid.UUID) (*models.BundleVariant, error) {
	var variant models.BundleVariant
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&variant).Error
	if err != nil {
		return nil, translate(err)
	}
	return &variant, nil
}

func (r *bundleVariantRepository) Create(ctx context.Context, variant *models.BundleVariant) error {
	return translate(r.db.WithContext(ctx).Create(variant).Error)
}

func (r *bundleVariantRepository) Update(ctx context.Context, variant *models.BundleVariant) error {
	return translate(r.db.WithContext(ctx).Save(variant).Error)
}

func (r *bundleVariantRepository) Delete(ctx context.Context, tenantID string, id uuid.UUID) error {
	return affected(r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Delete(&models.BundleVariant{}))
}
