package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"shipping-admin-service/internal/models"
)

// PincodeRepository defines the interface for pincode zone persistence
type PincodeRepository interface {
	List(ctx context.Context, tenantID string, filter models.PincodeFilter) ([]models.PincodeZone, int64, error)
	ListAll(ctx context.Context, tenantID string) ([]models.PincodeZone, error)
	GetByID(ctx context.Context, tenantID string, id uuid.UUID) (*models.PincodeZone, error)
	GetByPincode(ctx context.Context, tenantID, pincode string) (*models.PincodeZone, error)
	Create(ctx context.Context, zone *models.PincodeZone) error
	Update(ctx context.Context, zone *models.PincodeZone) error
	Delete(ctx context.Context, tenantID string, id uuid.UUID) error
	Upsert(ctx context.Context, zones []models.PincodeZone) error
	CountByZone(ctx context.Context, tenantID string) (map[models.Zone]int64, error)
}

type pincodeRepository struct {
	db *gorm.DB
}

// NewPincodeRepository creates a new pincode repository
func NewPincodeRepository(db *gorm.DB) PincodeRepository {
	return &pincodeRepository{db: db}
}

func (r *pincodeRepository) List(ctx context.Context, tenantID string, filter models.PincodeFilter) ([]models.PincodeZone, int64, error) {
	var zones []models.PincodeZone
	var total int64

	query := r.db.WithContext(ctx).Model(&models.PincodeZone{}).Where("tenant_id = ?", tenantID)
	if filter.Zone != "" {
		query = query.Where("zone = ?", filter.Zone)
	}
	if filter.State != "" {
		query = query.Where("LOWER(state) = ?", strings.ToLower(filter.State))
	}
	if filter.Search != "" {
		like := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("pincode LIKE ? OR LOWER(city) LIKE ? OR LOWER(state) LIKE ?", like, like, like)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("pincode ASC").
		Limit(filter.PerPage).
		Offset(filter.Offset()).
		Find(&zones).Error

	return zones, total, err
}

func (r *pincodeRepository) ListAll(ctx context.Context, tenantID string) ([]models.PincodeZone, error) {
	var zones []models.PincodeZone
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("pincode ASC").
		Find(&zones).Error
	return zones, err
}

func (r *pincodeRepository) GetByID(ctx context.Context, tenantID string, id uuid.UUID) (*models.PincodeZone, error) {
	var zone models.PincodeZone
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&zone).Error
	if err != nil {
		return nil, translate(err)
	}
	return &zone, nil
}

func (r *pincodeRepository) GetByPincode(ctx context.Context, tenantID, pincode string) (*models.PincodeZone, error) {
	var zone models.PincodeZone
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND pincode = ?", tenantID, pincode).
		First(&zone).Error
	if err != nil {
		return nil, translate(err)
	}
	return &zone, nil
}

func (r *pincodeRepository) Create(ctx context.Context, zone *models.PincodeZone) error {
	return translate(r.db.WithContext(ctx).Create(zone).Error)
}

func (r *pincodeRepository) Update(ctx context.Context, zone *models.PincodeZone) error {
	return translate(r.db.WithContext(ctx).Save(zone).Error)
}

func (r *pincodeRepository) Delete(ctx context.Context, tenantID string, id uuid.UUID) error {
	return affected(r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Delete(&models.PincodeZone{}))
}

// Upsert inserts or updates rows keyed on (tenant_id, pincode) in batches
func (r *pincodeRepository) Upsert(ctx context.Context, zones []models.PincodeZone) error {
	if len(zones) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "tenant_id"}, {Name: "pincode"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"zone", "city", "state", "region", "is_metro", "is_remote",
			"cod_available", "expected_delivery_days", "zone_multiplier", "updated_at",
		}),
	}).CreateInBatches(zones, 500).Error
}

func (r *pincodeRepository) CountByZone(ctx context.Context, tenantID string) (map[models.Zone]int64, error) {
	var rows []struct {
		Zone  models.Zone
		Count int64
	}
	err := r.db.WithContext(ctx).Model(&models.PincodeZone{}).
		Select("zone, COUNT(*) AS count").
		Where("tenant_id = ?", tenantID).
		Group("zone").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[models.Zone]int64, len(rows))
	for _, row := range rows {
		counts[row.Zone] = row.Count
	}
	return counts, nil
}
