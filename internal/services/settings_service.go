package services

import (
	"context"
	"fmt"

	"shipping-admin-service/internal/events"
	"shipping-admin-service/internal/models"
	"shipping-admin-service/internal/repository"
)

// SettingsService reads and updates per-tenant calculator settings
type SettingsService struct {
	repo      repository.SettingsRepository
	defaults  models.ShippingSettings
	publisher EventPublisher
}

// NewSettingsService creates a settings service seeded with defaults for new tenants
func NewSettingsService(repo repository.SettingsRepository, defaults models.ShippingSettings, publisher EventPublisher) *SettingsService {
	if defaults.VolumetricDivisor <= 0 {
		defaults.VolumetricDivisor = DefaultVolumetricDivisor
	}
	if defaults.Currency == "" {
		defaults.Currency = "INR"
	}
	return &SettingsService{
		repo:      repo,
		defaults:  defaults,
		publisher: publisherOrNoop(publisher),
	}
}

// Get returns the tenant's settings
func (s *SettingsService) Get(ctx context.Context, tenantID string) (*models.ShippingSettings, error) {
	settings, err := s.repo.GetOrCreate(ctx, tenantID, s.defaults)
	if err != nil {
		return nil, fmt.Errorf("failed to load shipping settings: %w", err)
	}
	if settings.VolumetricDivisor <= 0 {
		settings.VolumetricDivisor = s.defaults.VolumetricDivisor
	}
	return settings, nil
}

// Update applies a partial settings update
func (s *SettingsService) Update(ctx context.Context, tenantID string, req models.UpdateShippingSettingsRequest) (*models.ShippingSettings, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	settings, err := s.Get(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if req.VolumetricDivisor != nil {
		settings.VolumetricDivisor = *req.VolumetricDivisor
	}
	if req.FallbackZone != nil {
		settings.FallbackZone = *req.FallbackZone
	}
	if req.Currency != nil {
		settings.Currency = *req.Currency
	}

	if err := s.repo.Update(ctx, settings); err != nil {
		return nil, fmt.Errorf("failed to update shipping settings: %w", err)
	}
	_ = s.publisher.Publish(ctx, tenantID, events.SettingsUpdated, settings.ID.String(), "updated", settings)
	return settings, nil
}
