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

// ErrCodeExists is returned when a charge or tax code is already in use
var ErrCodeExists = errors.New("a rule with this code already exists")

// OrderChargeService manages order-level charges
type OrderChargeService struct {
	repo      repository.OrderChargeRepository
	publisher EventPublisher
}

// NewOrderChargeService creates an order charge service
func NewOrderChargeService(repo repository.OrderChargeRepository, publisher EventPublisher) *OrderChargeService {
	return &OrderChargeService{repo: repo, publisher: publisherOrNoop(publisher)}
}

func (s *OrderChargeService) List(ctx context.Context, tenantID string) ([]models.OrderCharge, error) {
	return s.repo.List(ctx, tenantID)
}

func (s *OrderChargeService) Get(ctx context.Context, tenantID string, id uuid.UUID) (*models.OrderCharge, error) {
	return s.repo.GetByID(ctx, tenantID, id)
}

func (s *OrderChargeService) Create(ctx context.Context, tenantID string, req models.OrderChargeRequest) (*models.OrderCharge, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	charge := &models.OrderCharge{TenantID: tenantID}
	req.CopyTo(charge)

	if err := s.repo.Create(ctx, charge); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrCodeExists
		}
		return nil, fmt.Errorf("failed to create order charge: %w", err)
	}
	s.changed(ctx, tenantID, charge.ID, "created", charge)
	return charge, nil
}

func (s *OrderChargeService) Update(ctx context.Context, tenantID string, id uuid.UUID, req models.OrderChargeRequest) (*models.OrderCharge, error) {
	charge, err := s.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	req.CopyTo(charge)

	if err := s.repo.Update(ctx, charge); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrCodeExists
		}
		return nil, fmt.Errorf("failed to update order charge: %w", err)
	}
	s.changed(ctx, tenantID, charge.ID, "updated", charge)
	return charge, nil
}

func (s *OrderChargeService) Delete(ctx context.Context, tenantID string, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, tenantID, id); err != nil {
		return err
	}
	s.changed(ctx, tenantID, id, "deleted", nil)
	return nil
}

// Toggle flips is_enabled
func (s *OrderChargeService) Toggle(ctx context.Context, tenantID string, id uuid.UUID) (*models.OrderCharge, error) {
	charge, err := s.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	charge.IsEnabled = !charge.IsEnabled
	if err := s.repo.Update(ctx, charge); err != nil {
		return nil, fmt.Errorf("failed to toggle order charge: %w", err)
	}
	s.changed(ctx, tenantID, charge.ID, "toggled", charge)
	return charge, nil
}

// UpdatePriorities reorders charges in a single transaction
func (s *OrderChargeService) UpdatePriorities(ctx context.Context, tenantID string, req models.UpdatePriorityRequest) error {
	if len(req.Charges) == 0 {
		return models.ValidationErrorf("charges cannot be empty")
	}
	if err := s.repo.UpdatePriorities(ctx, tenantID, req.Charges); err != nil {
		return err
	}
	s.changed(ctx, tenantID, uuid.Nil, "reordered", req.Charges)
	return nil
}

func (s *OrderChargeService) changed(ctx context.Context, tenantID string, id uuid.UUID, action string, data interface{}) {
	entityID := ""
	if id != uuid.Nil {
		entityID = id.String()
	}
	_ = s.publisher.Publish(ctx, tenantID, events.OrderChargeChanged, entityID, action, data)
}

// TaxConfigurationService manages order-level tax rules
type TaxConfigurationService struct {
	repo      repository.TaxConfigurationRepository
	publisher EventPublisher
}

// NewTaxConfigurationService creates a tax configuration service
func NewTaxConfigurationService(repo repository.TaxConfigurationRepository, publisher EventPublisher) *TaxConfigurationService {
	return &TaxConfigurationService{repo: repo, publisher: publisherOrNoop(publisher)}
}

func (s *TaxConfigurationService) List(ctx context.Context, tenantID string) ([]models.TaxConfiguration, error) {
	return s.repo.List(ctx, tenantID)
}

func (s *TaxConfigurationService) Get(ctx context.Context, tenantID string, id uuid.UUID) (*models.TaxConfiguration, error) {
	return s.repo.GetByID(ctx, tenantID, id)
}

func (s *TaxConfigurationService) Create(ctx context.Context, tenantID string, req models.TaxConfigurationRequest) (*models.TaxConfiguration, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	tax := &models.TaxConfiguration{TenantID: tenantID}
	req.CopyTo(tax)

	if err := s.repo.Create(ctx, tax); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrCodeExists
		}
		return nil, fmt.Errorf("failed to create tax configuration: %w", err)
	}
	_ = s.publisher.Publish(ctx, tenantID, events.TaxConfigurationChanged, tax.ID.String(), "created", tax)
	return tax, nil
}

func (s *TaxConfigurationService) Update(ctx context.Context, tenantID string, id uuid.UUID, req models.TaxConfigurationRequest) (*models.TaxConfiguration, error) {
	tax, err := s.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	req.CopyTo(tax)

	if err := s.repo.Update(ctx, tax); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrCodeExists
		}
		return nil, fmt.Errorf("failed to update tax configuration: %w", err)
	}
	_ = s.publisher.Publish(ctx, tenantID, events.TaxConfigurationChanged, tax.ID.String(), "updated", tax)
	return tax, nil
}

func (s *TaxConfigurationService) Delete(ctx context.Context, tenantID string, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, tenantID, id); err != nil {
		return err
	}
	_ = s.publisher.Publish(ctx, tenantID, events.TaxConfigurationChanged, id.String(), "deleted", nil)
	return nil
}

// Toggle flips is_enabled
func (s *TaxConfigurationService) Toggle(ctx context.Context, tenantID string, id uuid.UUID) (*models.TaxConfiguration, error) {
	tax, err := s.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	tax.IsEnabled = !tax.IsEnabled
	if err := s.repo.Update(ctx, tax); err != nil {
		return nil, fmt.Errorf("failed to toggle tax configuration: %w", err)
	}
	_ = s.publisher.Publish(ctx, tenantID, events.TaxConfigurationChanged, tax.ID.String(), "toggled", tax)
	return tax, nil
}
