package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"shipping-admin-service/internal/models"
)

// WarehouseRepository defines the interface for warehouse persistence.
// Default-flag changes are composed inside WithTransaction. Count and
// ClearDefault lock the tenant's rows so concurrent default changes queue
// behind each other; idx_warehouse_tenant_default rejects whatever slips past.
type WarehouseRepository interface {
	List(ctx context.Context, tenantID string, params models.ListParams) ([]models.Warehouse, int64, error)
	GetByID(ctx context.Context, tenantID string, id uuid.UUID) (*models.Warehouse, error)
	GetDefault(ctx context.Context, tenantID string) (*models.Warehouse, error)
	Count(ctx context.Context, tenantID string) (int64, error)
	Create(ctx context.Context, warehouse *models.Warehouse) error
	Update(ctx context.Context, warehouse *models.Warehouse) error
	Delete(ctx context.Context, tenantID string, id uuid.UUID) error
	ClearDefault(ctx context.Context, tenantID string) error
	MarkDefault(ctx context.Context, tenantID string, id uuid.UUID) error
	OldestExcept(ctx context.Context, tenantID string, id uuid.UUID) (*models.Warehouse, error)
	WithTransaction(ctx context.Context, fn func(repo WarehouseRepository) error) error
}

type warehouseRepository struct {
	db *gorm.DB
}

// NewWarehouseRepository creates a new warehouse repository
func NewWarehouseRepository(db *gorm.DB) WarehouseRepository {
	return &warehouseRepository{db: db}
}

func (r *warehouseRepository) List(ctx context.Context, tenantID string, params models.ListParams) ([]models.Warehouse, int64, error) {
	var warehouses []models.Warehouse
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Warehouse{}).Where("tenant_id = ?", tenantID)
	if params.Search != "" {
		like := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(code) LIKE ? OR LOWER(city) LIKE ?", like, like, like)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("is_default DESC, name ASC").
		Limit(params.PerPage).
		Offset(params.Offset()).
		Find(&warehouses).Error

	return warehouses, total, err
}

func (r *warehouseRepository) GetByID(ctx context.Context, tenantID string, id uuid.UUID) (*models.Warehouse, error) {
	var warehouse models.Warehouse
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&warehouse).Error
	if err != nil {
		return nil, translate(err)
	}
	return &warehouse, nil
}

func (r *warehouseRepository) GetDefault(ctx context.Context, tenantID string) (*models.Warehouse, error) {
	var warehouse models.Warehouse
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND is_default = ?", tenantID, true).
		First(&warehouse).Error
	if err != nil {
		return nil, translate(err)
	}
	return &warehouse, nil
}

func (r *warehouseRepository) Count(ctx context.Context, tenantID string) (int64, error) {
	ids, err := r.lockTenant(ctx, tenantID)
	return int64(len(ids)), err
}

// lockTenant takes row locks on every warehouse of the tenant.
// FOR UPDATE cannot be combined with COUNT, so ids are plucked instead.
func (r *warehouseRepository) lockTenant(ctx context.Context, tenantID string) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&models.Warehouse{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("tenant_id = ?", tenantID).
		Pluck("id", &ids).Error
	return ids, err
}

func (r *warehouseRepository) Create(ctx context.Context, warehouse *models.Warehouse) error {
	return translate(r.db.WithContext(ctx).Create(warehouse).Error)
}

func (r *warehouseRepository) Update(ctx context.Context, warehouse *models.Warehouse) error {
	return translate(r.db.WithContext(ctx).Save(warehouse).Error)
}

func (r *warehouseRepository) Delete(ctx context.Context, tenantID string, id uuid.UUID) error {
	return affected(r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Delete(&models.Warehouse{}))
}

func (r *warehouseRepository) ClearDefault(ctx context.Context, tenantID string) error {
	if _, err := r.lockTenant(ctx, tenantID); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Model(&models.Warehouse{}).
		Where("tenant_id = ? AND is_default = ?", tenantID, true).
		Update("is_default", false).Error
}

func (r *warehouseRepository) MarkDefault(ctx context.Context, tenantID string, id uuid.UUID) error {
	return affected(r.db.WithContext(ctx).Model(&models.Warehouse{}).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Update("is_default", true))
}

func (r *warehouseRepository) OldestExcept(ctx context.Context, tenantID string, id uuid.UUID) (*models.Warehouse, error) {
	var warehouse models.Warehouse
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id <> ?", tenantID, id).
		Order("is_active DESC, created_at ASC").
		First(&warehouse).Error
	if err != nil {
		return nil, translate(err)
	}
	return &warehouse, nil
}

func (r *warehouseRepository) WithTransaction(ctx context.Context, fn func(repo WarehouseRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&warehouseRepository{db: tx})
	})
}
