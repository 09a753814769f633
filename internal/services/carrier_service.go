package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"shipping-admin-service/internal/events"
	"shipping-admin-service/internal/models"
	"shipping-admin-service/internal/repository"
)

// CredentialResolver turns a stored credential value into the real secret
type CredentialResolver interface {
	Resolve(ctx context.Context, ref string) (string, error)
}

// CarrierService manages a tenant's courier integrations with at most one primary
type CarrierService struct {
	repo      repository.CarrierConfigRepository
	resolver  CredentialResolver
	publisher EventPublisher
	logger    *logrus.Entry
	now       func() time.Time
}

// NewCarrierService creates a carrier service. resolver may be nil, in which
// case secret references cannot be tested.
func NewCarrierService(repo repository.CarrierConfigRepository, resolver CredentialResolver, publisher EventPublisher, logger *logrus.Logger) *CarrierService {
	return &CarrierService{
		repo:      repo,
		resolver:  resolver,
		publisher: publisherOrNoop(publisher),
		logger:    logger.WithField("component", "carrier_service"),
		now:       time.Now,
	}
}

// List returns the tenant's carriers, seeding them from the templates on first use
func (s *CarrierService) List(ctx context.Context, tenantID string) ([]models.CarrierConfig, error) {
	configs, err := s.repo.List(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if len(configs) > 0 {
		return configs, nil
	}
	if _, err := s.SyncFromConfig(ctx, tenantID); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, tenantID)
}

// SyncFromConfig creates a carrier for every template the tenant lacks and
// returns how many were created
func (s *CarrierService) SyncFromConfig(ctx context.Context, tenantID string) (int64, error) {
	configs := make([]models.CarrierConfig, 0, len(models.CarrierTemplates))
	for _, tpl := range models.CarrierTemplates {
		configs = append(configs, models.CarrierConfig{
			TenantID: tenantID,
			Code:     tpl.Code,
			Name:     tpl.Name,
			APIMode:  models.APIModeTest,
			Status:   models.CarrierStatusNotConfigured,
		})
	}
	created, err := s.repo.CreateMissing(ctx, configs)
	if err != nil {
		return 0, fmt.Errorf("failed to sync carriers: %w", err)
	}
	if created > 0 {
		s.logger.WithFields(logrus.Fields{"tenant_id": tenantID, "created": created}).Info("carriers synced from templates")
	}
	return created, nil
}

// Toggle flips is_active. Deactivating the primary carrier also clears primary.
func (s *CarrierService) Toggle(ctx context.Context, tenantID string, id uuid.UUID) (*models.CarrierConfig, error) {
	config, err := s.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	config.IsActive = !config.IsActive
	clearedPrimary := false
	if !config.IsActive && config.IsPrimary {
		config.IsPrimary = false
		clearedPrimary = true
	}
	if err := s.repo.Update(ctx, config); err != nil {
		return nil, fmt.Errorf("failed to update carrier: %w", err)
	}
	if clearedPrimary {
		_ = s.publisher.Publish(ctx, tenantID, events.PrimaryCarrierChanged, config.ID.String(), "cleared", config.ToResponse())
	}
	return config, nil
}

// UpdateConfig changes api mode and/or primary flag. Becoming primary
// requires an active carrier and unsets every other primary in the same transaction.
func (s *CarrierService) UpdateConfig(ctx context.Context, tenantID string, id uuid.UUID, req models.UpdateCarrierConfigRequest) (*models.CarrierConfig, error) {
	if req.APIMode != nil && *req.APIMode != models.APIModeTest && *req.APIMode != models.APIModeLive {
		return nil, models.ValidationErrorf("api_mode must be test or live")
	}

	var updated *models.CarrierConfig
	primaryChanged := false
	err := s.repo.WithTransaction(ctx, func(repo repository.CarrierConfigRepository) error {
		config, err := repo.GetByID(ctx, tenantID, id)
		if err != nil {
			return err
		}
		if req.APIMode != nil {
			config.APIMode = *req.APIMode
		}
		if req.IsPrimary != nil && *req.IsPrimary != config.IsPrimary {
			if *req.IsPrimary {
				if !config.IsActive {
					return ErrCarrierInactive
				}
				if err := repo.ClearPrimary(ctx, tenantID); err != nil {
					return err
				}
			}
			config.IsPrimary = *req.IsPrimary
			primaryChanged = true
		}
		if err := repo.Update(ctx, config); err != nil {
			return err
		}
		updated = config
		return nil
	})
	if primaryChanged && errors.Is(err, repository.ErrDuplicate) {
		return nil, ErrPrimaryConflict
	}
	if err != nil {
		return nil, err
	}

	if primaryChanged {
		_ = s.publisher.Publish(ctx, tenantID, events.PrimaryCarrierChanged, updated.ID.String(), "updated", updated.ToResponse())
	}
	return updated, nil
}

// SetPrimary makes id the only primary carrier
func (s *CarrierService) SetPrimary(ctx context.Context, tenantID string, id uuid.UUID) (*models.CarrierConfig, error) {
	primary := true
	return s.UpdateConfig(ctx, tenantID, id, models.UpdateCarrierConfigRequest{IsPrimary: &primary})
}

// UpdateCredentials replaces the credential set after checking every key
// against the carrier's template. The carrier must be retested afterwards.
func (s *CarrierService) UpdateCredentials(ctx context.Context, tenantID string, id uuid.UUID, req models.UpdateCarrierCredentialsRequest) (*models.CarrierConfig, error) {
	config, err := s.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	tpl, ok := models.FindCarrierTemplate(config.Code)
	if !ok {
		return nil, ErrUnknownCarrier
	}

	var unknown []string
	credentials := make(map[string]string, len(req.Credentials))
	for k, v := range req.Credentials {
		if !tpl.AllowsCredential(k) {
			unknown = append(unknown, k)
			continue
		}
		if v = strings.TrimSpace(v); v != "" {
			credentials[k] = v
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, models.ValidationErrorf("unknown credential keys for %s: %s", config.Code, strings.Join(unknown, ", "))
	}

	config.Credentials = models.NewCredentials(credentials)
	config.Status = models.CarrierStatusNotConfigured
	config.StatusMessage = ""
	if err := s.repo.Update(ctx, config); err != nil {
		return nil, fmt.Errorf("failed to update carrier credentials: %w", err)
	}
	return config, nil
}

// TestConnection checks that every required credential is present and that
// secret references resolve, then stores the outcome on the carrier.
func (s *CarrierService) TestConnection(ctx context.Context, tenantID string, id uuid.UUID) (*models.CarrierConfig, error) {
	config, err := s.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	tpl, ok := models.FindCarrierTemplate(config.Code)
	if !ok {
		return nil, ErrUnknownCarrier
	}

	status, message := s.checkCredentials(ctx, tpl, config.Credentials.Data())
	now := s.now().UTC()
	config.Status = status
	config.StatusMessage = message
	config.LastTestedAt = &now
	if err := s.repo.Update(ctx, config); err != nil {
		return nil, fmt.Errorf("failed to store carrier status: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"tenant_id": tenantID,
		"carrier":   config.Code,
		"status":    status,
	}).Info("carrier connection tested")
	return config, nil
}

func (s *CarrierService) checkCredentials(ctx context.Context, tpl models.CarrierTemplate, credentials map[string]string) (models.CarrierStatus, string) {
	var missing []string
	for _, key := range tpl.RequiredCredentials {
		if credentials[key] == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) == len(tpl.RequiredCredentials) {
		return models.CarrierStatusNotConfigured, "no credentials configured"
	}
	if len(missing) > 0 {
		return models.CarrierStatusError, "missing required credentials: " + strings.Join(missing, ", ")
	}

	for _, key := range tpl.RequiredCredentials {
		value := credentials[key]
		if !strings.HasPrefix(value, models.SecretRefPrefix) {
			continue
		}
		if s.resolver == nil {
			return models.CarrierStatusError, fmt.Sprintf("%s references a secret but secret manager is not configured", key)
		}
		resolved, err := s.resolver.Resolve(ctx, value)
		if err != nil {
			return models.CarrierStatusError, fmt.Sprintf("%s: %v", key, err)
		}
		if resolved == "" {
			return models.CarrierStatusError, fmt.Sprintf("%s: secret is empty", key)
		}
	}
	return models.CarrierStatusConnected, "credentials verified"
}
