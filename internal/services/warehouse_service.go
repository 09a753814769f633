package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"shipping-admin-service/internal/events"
	"shipping-admin-service/internal/models"
	"shipping-admin-service/internal/repository"
)

// ErrWarehouseCodeExists is returned when a warehouse code is already taken
var ErrWarehouseCodeExists = errors.New("a warehouse with this code already exists")

// WarehouseService keeps exactly one default warehouse per tenant
type WarehouseService struct {
	repo      repository.WarehouseRepository
	publisher EventPublisher
}

// NewWarehouseService creates a warehouse service
func NewWarehouseService(repo repository.WarehouseRepository, publisher EventPublisher) *WarehouseService {
	return &WarehouseService{
		repo:      repo,
		publisher: publisherOrNoop(publisher),
	}
}

// List returns a page of warehouses
func (s *WarehouseService) List(ctx context.Context, tenantID string, params models.ListParams) ([]models.Warehouse, int64, error) {
	return s.repo.List(ctx, tenantID, params)
}

// Get returns one warehouse
func (s *WarehouseService) Get(ctx context.Context, tenantID string, id uuid.UUID) (*models.Warehouse, error) {
	return s.repo.GetByID(ctx, tenantID, id)
}

// Create stores a warehouse. The tenant's first warehouse always becomes the default.
func (s *WarehouseService) Create(ctx context.Context, tenantID string, req models.CreateWarehouseRequest) (*models.Warehouse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	warehouse := req.ToWarehouse(tenantID)

	first := false
	err := s.repo.WithTransaction(ctx, func(repo repository.WarehouseRepository) error {
		count, err := repo.Count(ctx, tenantID)
		if err != nil {
			return err
		}
		if count == 0 {
			warehouse.IsDefault = true
			first = true
		}
		if warehouse.IsDefault && count > 0 {
			if err := repo.ClearDefault(ctx, tenantID); err != nil {
				return err
			}
		}
		return repo.Create(ctx, warehouse)
	})
	if err != nil {
		// With no rows to lock, two first warehouses race on idx_warehouse_tenant_default
		if errors.Is(err, repository.ErrDuplicate) && first {
			return nil, ErrDefaultConflict
		}
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrWarehouseCodeExists
		}
		return nil, fmt.Errorf("failed to create warehouse: %w", err)
	}

	if warehouse.IsDefault {
		_ = s.publisher.Publish(ctx, tenantID, events.DefaultWarehouseChanged, warehouse.ID.String(), "created", warehouse)
	}
	return warehouse, nil
}

// Update applies a partial update. Unsetting is_default on the current
// default is rejected; setting it moves the default here.
func (s *WarehouseService) Update(ctx context.Context, tenantID string, id uuid.UUID, req models.UpdateWarehouseRequest) (*models.Warehouse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var updated *models.Warehouse
	becameDefault := false
	err := s.repo.WithTransaction(ctx, func(repo repository.WarehouseRepository) error {
		warehouse, err := repo.GetByID(ctx, tenantID, id)
		if err != nil {
			return err
		}
		if req.IsDefault != nil {
			switch {
			case !*req.IsDefault && warehouse.IsDefault:
				return ErrDefaultRequired
			case *req.IsDefault && !warehouse.IsDefault:
				if err := repo.ClearDefault(ctx, tenantID); err != nil {
					return err
				}
				warehouse.IsDefault = true
				becameDefault = true
			}
		}
		req.ApplyTo(warehouse)
		if err := repo.Update(ctx, warehouse); err != nil {
			return err
		}
		updated = warehouse
		return nil
	})
	if becameDefault && errors.Is(err, repository.ErrDuplicate) {
		return nil, ErrDefaultConflict
	}
	if err != nil {
		return nil, err
	}

	if becameDefault {
		_ = s.publisher.Publish(ctx, tenantID, events.DefaultWarehouseChanged, updated.ID.String(), "updated", updated)
	}
	return updated, nil
}

// SetDefault makes id the only default warehouse
func (s *WarehouseService) SetDefault(ctx context.Context, tenantID string, id uuid.UUID) (*models.Warehouse, error) {
	var warehouse *models.Warehouse
	err := s.repo.WithTransaction(ctx, func(repo repository.WarehouseRepository) error {
		w, err := repo.GetByID(ctx, tenantID, id)
		if err != nil {
			return err
		}
		if err := repo.ClearDefault(ctx, tenantID); err != nil {
			return err
		}
		if err := repo.MarkDefault(ctx, tenantID, id); err != nil {
			return err
		}
		w.IsDefault = true
		warehouse = w
		return nil
	})
	if errors.Is(err, repository.ErrDuplicate) {
		return nil, ErrDefaultConflict
	}
	if err != nil {
		return nil, err
	}

	_ = s.publisher.Publish(ctx, tenantID, events.DefaultWarehouseChanged, id.String(), "set_default", warehouse)
	return warehouse, nil
}

// Delete removes a warehouse. Deleting the default promotes the oldest remaining one.
func (s *WarehouseService) Delete(ctx context.Context, tenantID string, id uuid.UUID) error {
	var promoted *models.Warehouse
	err := s.repo.WithTransaction(ctx, func(repo repository.WarehouseRepository) error {
		warehouse, err := repo.GetByID(ctx, tenantID, id)
		if err != nil {
			return err
		}
		if err := repo.Delete(ctx, tenantID, id); err != nil {
			return err
		}
		if !warehouse.IsDefault {
			return nil
		}

		next, err := repo.OldestExcept(ctx, tenantID, id)
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := repo.MarkDefault(ctx, tenantID, next.ID); err != nil {
			return err
		}
		next.IsDefault = true
		promoted = next
		return nil
	})
	if errors.Is(err, repository.ErrDuplicate) {
		return ErrDefaultConflict
	}
	if err != nil {
		return err
	}

	if promoted != nil {
		_ = s.publisher.Publish(ctx, tenantID, events.DefaultWarehouseChanged, promoted.ID.String(), "promoted", promoted)
	}
	return nil
}
