package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"shipping-admin-service/internal/events"
	"shipping-admin-service/internal/models"
	"shipping-admin-service/internal/repository"
)

// RateService manages the zone rate table and free shipping thresholds
type RateService struct {
	slabs            repository.WeightSlabRepository
	rates            repository.ZoneRateRepository
	thresholds       repository.FreeShippingRepository
	defaultThreshold decimal.Decimal
	publisher        EventPublisher
}

// NewRateService creates a rate service. defaultThreshold is reported for
// zones without an admin override.
func NewRateService(
	slabs repository.WeightSlabRepository,
	rates repository.ZoneRateRepository,
	thresholds repository.FreeShippingRepository,
	defaultThreshold decimal.Decimal,
	publisher EventPublisher,
) *RateService {
	return &RateService{
		slabs:            slabs,
		rates:            rates,
		thresholds:       thresholds,
		defaultThreshold: defaultThreshold,
		publisher:        publisherOrNoop(publisher),
	}
}

// ListZones returns every zone with its configured rates
func (s *RateService) ListZones(ctx context.Context, tenantID string) ([]models.ZoneRates, error) {
	rates, err := s.rates.List(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list zone rates: %w", err)
	}

	byZone := make(map[models.Zone][]models.ZoneRate)
	for _, rate := range rates {
		byZone[rate.Zone] = append(byZone[rate.Zone], rate)
	}

	zones := make([]models.ZoneRates, 0, len(models.AllZones))
	for _, z := range models.AllZones {
		zr := byZone[z]
		if zr == nil {
			zr = []models.ZoneRate{}
		}
		zones = append(zones, models.ZoneRates{Zone: z, ZoneName: z.DisplayName(), Rates: zr})
	}
	return zones, nil
}

// CreateZoneRate adds the rate for a (slab, zone) pair. A second rate for the
// same pair is rejected with ErrRateExists.
func (s *RateService) CreateZoneRate(ctx context.Context, tenantID string, req models.ZoneRateRequest) (*models.ZoneRate, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.slabs.GetByID(ctx, tenantID, req.ShippingWeightSlabID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWeightSlabNotFound
		}
		return nil, fmt.Errorf("failed to load weight slab: %w", err)
	}

	existing, err := s.rates.FindBySlabAndZone(ctx, tenantID, req.ShippingWeightSlabID, req.Zone)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing rate: %w", err)
	}
	if existing != nil {
		return nil, ErrRateExists
	}

	rate := req.NewZoneRate(tenantID)
	if err := s.rates.Create(ctx, rate); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrRateExists
		}
		return nil, fmt.Errorf("failed to create zone rate: %w", err)
	}

	_ = s.publisher.Publish(ctx, tenantID, events.ZoneRateCreated, rate.ID.String(), "created", rate)
	return rate, nil
}

// UpdateZoneRate updates the money fields of an existing rate. The (slab, zone)
// pair of a rate never changes.
func (s *RateService) UpdateZoneRate(ctx context.Context, tenantID string, id uuid.UUID, req models.ZoneRateRequest) (*models.ZoneRate, error) {
	rate, err := s.rates.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	req.ShippingWeightSlabID = rate.ShippingWeightSlabID
	req.Zone = rate.Zone
	if err := req.Validate(); err != nil {
		return nil, err
	}
	req.ApplyTo(rate)

	if err := s.rates.Update(ctx, rate); err != nil {
		return nil, fmt.Errorf("failed to update zone rate: %w", err)
	}

	_ = s.publisher.Publish(ctx, tenantID, events.ZoneRateUpdated, rate.ID.String(), "updated", rate)
	return rate, nil
}

// DeleteZoneRate removes a rate
func (s *RateService) DeleteZoneRate(ctx context.Context, tenantID string, id uuid.UUID) error {
	if err := s.rates.Delete(ctx, tenantID, id); err != nil {
		return err
	}
	_ = s.publisher.Publish(ctx, tenantID, events.ZoneRateDeleted, id.String(), "deleted", nil)
	return nil
}

// ListThresholds returns one entry per zone, filling system defaults
func (s *RateService) ListThresholds(ctx context.Context, tenantID string) ([]models.FreeShippingThreshold, error) {
	stored, err := s.thresholds.List(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list free shipping thresholds: %w", err)
	}

	byZone := make(map[models.Zone]models.FreeShippingThreshold, len(stored))
	for _, t := range stored {
		byZone[t.Zone] = t
	}

	result := make([]models.FreeShippingThreshold, 0, len(models.AllZones))
	for _, z := range models.AllZones {
		if t, ok := byZone[z]; ok {
			t.ZoneName = z.DisplayName()
			t.HasCustomValue = true
			result = append(result, t)
			continue
		}
		result = append(result, s.defaultFor(z))
	}
	return result, nil
}

// ThresholdForZone returns the effective free shipping rule for zone
func (s *RateService) ThresholdForZone(ctx context.Context, tenantID string, zone models.Zone) (*models.FreeShippingThreshold, error) {
	t, err := s.thresholds.GetByZone(ctx, tenantID, zone)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			def := s.defaultFor(zone)
			return &def, nil
		}
		return nil, fmt.Errorf("failed to load free shipping threshold: %w", err)
	}
	t.ZoneName = zone.DisplayName()
	t.HasCustomValue = true
	return t, nil
}

// UpsertThreshold stores an admin override for one zone
func (s *RateService) UpsertThreshold(ctx context.Context, tenantID string, req models.FreeShippingThresholdRequest) (*models.FreeShippingThreshold, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	current, err := s.ThresholdForZone(ctx, tenantID, req.Zone)
	if err != nil {
		return nil, err
	}

	t := &models.FreeShippingThreshold{
		TenantID:  tenantID,
		Zone:      req.Zone,
		Threshold: current.Threshold,
		Enabled:   current.Enabled,
	}
	if req.Threshold != nil {
		t.Threshold = *req.Threshold
	}
	if req.Enabled != nil {
		t.Enabled = *req.Enabled
	}

	if err := s.thresholds.Upsert(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to save free shipping threshold: %w", err)
	}
	t.ZoneName = req.Zone.DisplayName()
	t.HasCustomValue = true

	_ = s.publisher.Publish(ctx, tenantID, events.FreeShippingUpdated, string(req.Zone), "upserted", t)
	return t, nil
}

// ResetThreshold drops the override so the zone reverts to the system default
func (s *RateService) ResetThreshold(ctx context.Context, tenantID string, zone models.Zone) (*models.FreeShippingThreshold, error) {
	if !zone.IsValid() {
		return nil, models.ValidationErrorf("zone must be one of A, B, C, D, E")
	}
	if err := s.thresholds.Delete(ctx, tenantID, zone); err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to reset free shipping threshold: %w", err)
	}
	def := s.defaultFor(zone)
	_ = s.publisher.Publish(ctx, tenantID, events.FreeShippingUpdated, string(zone), "reset", def)
	return &def, nil
}

func (s *RateService) defaultFor(zone models.Zone) models.FreeShippingThreshold {
	return models.FreeShippingThreshold{
		Zone:           zone,
		ZoneName:       zone.DisplayName(),
		Threshold:      s.defaultThreshold,
		Enabled:        false,
		HasCustomValue: false,
	}
}

// ListSlabs returns the tenant's weight slabs
func (s *RateService) ListSlabs(ctx context.Context, tenantID string) ([]models.WeightSlab, error) {
	return s.slabs.List(ctx, tenantID)
}

// GetSlab returns a weight slab with its rates
func (s *RateService) GetSlab(ctx context.Context, tenantID string, id uuid.UUID) (*models.WeightSlab, error) {
	return s.slabs.GetByID(ctx, tenantID, id)
}

func (s *RateService) CreateSlab(ctx context.Context, tenantID string, req models.WeightSlabRequest) (*models.WeightSlab, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	slab := &models.WeightSlab{
		TenantID:    tenantID,
		CourierName: req.CourierName,
		BaseWeight:  *req.BaseWeight,
	}
	if err := s.slabs.Create(ctx, slab); err != nil {
		return nil, fmt.Errorf("failed to create weight slab: %w", err)
	}
	return slab, nil
}

func (s *RateService) UpdateSlab(ctx context.Context, tenantID string, id uuid.UUID, req models.WeightSlabRequest) (*models.WeightSlab, error) {
	slab, err := s.slabs.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	slab.CourierName = req.CourierName
	slab.BaseWeight = *req.BaseWeight
	slab.Rates = nil
	if err := s.slabs.Update(ctx, slab); err != nil {
		return nil, fmt.Errorf("failed to update weight slab: %w", err)
	}
	return slab, nil
}

// DeleteSlab removes a slab together with all of its zone rates
func (s *RateService) DeleteSlab(ctx context.Context, tenantID string, id uuid.UUID) error {
	if err := s.slabs.Delete(ctx, tenantID, id); err != nil {
		return err
	}
	_ = s.publisher.Publish(ctx, tenantID, events.ZoneRateDeleted, id.String(), "slab_deleted", nil)
	return nil
}
