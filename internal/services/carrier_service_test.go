package services

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"shipping-admin-service/internal/events"
	"shipping-admin-service/internal/models"
	"shipping-admin-service/internal/repository"
)

// MockCredentialResolver is a mock implementation of CredentialResolver
type MockCredentialResolver struct {
	mock.Mock
}

var _ CredentialResolver = (*MockCredentialResolver)(nil)

func (m *MockCredentialResolver) Resolve(ctx context.Context, ref string) (string, error) {
	args := m.Called(ctx, ref)
	return args.String(0), args.Error(1)
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func carrier(code models.CarrierCode, active, primary bool, creds map[string]string) *models.CarrierConfig {
	return &models.CarrierConfig{
		ID:          uuid.New(),
		TenantID:    testTenant,
		Code:        code,
		IsActive:    active,
		IsPrimary:   primary,
		Status:      models.CarrierStatusNotConfigured,
		Credentials: models.NewCredentials(creds),
	}
}

func TestCarrierService_ListSeedsTemplates(t *testing.T) {
	repo := new(MockCarrierConfigRepository)
	service := NewCarrierService(repo, nil, nil, quietLogger())

	seeded := []models.CarrierConfig{*carrier(models.CarrierShiprocket, false, false, nil)}
	repo.On("List", mock.Anything, testTenant).Return([]models.CarrierConfig{}, nil).Once()
	repo.On("CreateMissing", mock.Anything, mock.MatchedBy(func(configs []models.CarrierConfig) bool {
		return len(configs) == len(models.CarrierTemplates) && configs[0].Status == models.CarrierStatusNotConfigured
	})).Return(int64(len(models.CarrierTemplates)), nil)
	repo.On("List", mock.Anything, testTenant).Return(seeded, nil).Once()

	configs, err := service.List(context.Background(), testTenant)
	require.NoError(t, err)
	assert.Len(t, configs, 1)
	repo.AssertExpectations(t)
}

func TestCarrierService_ToggleOffClearsPrimary(t *testing.T) {
	repo := new(MockCarrierConfigRepository)
	publisher := new(MockPublisher)
	service := NewCarrierService(repo, nil, publisher, quietLogger())
	config := carrier(models.CarrierDelhivery, true, true, nil)

	repo.On("GetByID", mock.Anything, testTenant, config.ID).Return(config, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(c *models.CarrierConfig) bool {
		return !c.IsActive && !c.IsPrimary
	})).Return(nil)
	publisher.On("Publish", mock.Anything, testTenant, events.PrimaryCarrierChanged, config.ID.String(), "cleared", mock.Anything).Return(nil)

	updated, err := service.Toggle(context.Background(), testTenant, config.ID)
	require.NoError(t, err)
	assert.False(t, updated.IsActive)
	assert.False(t, updated.IsPrimary)
	publisher.AssertExpectations(t)
}

func TestCarrierService_SetPrimary(t *testing.T) {
	t.Run("inactive carrier is rejected", func(t *testing.T) {
		repo := new(MockCarrierConfigRepository)
		service := NewCarrierService(repo, nil, nil, quietLogger())
		config := carrier(models.CarrierDTDC, false, false, nil)
		repo.On("GetByID", mock.Anything, testTenant, config.ID).Return(config, nil)

		_, err := service.SetPrimary(context.Background(), testTenant, config.ID)
		assert.ErrorIs(t, err, ErrCarrierInactive)
		repo.AssertNotCalled(t, "ClearPrimary", mock.Anything, mock.Anything)
	})

	t.Run("active carrier clears other primaries", func(t *testing.T) {
		repo := new(MockCarrierConfigRepository)
		service := NewCarrierService(repo, nil, nil, quietLogger())
		config := carrier(models.CarrierDTDC, true, false, nil)
		repo.On("GetByID", mock.Anything, testTenant, config.ID).Return(config, nil)
		repo.On("ClearPrimary", mock.Anything, testTenant).Return(nil)
		repo.On("Update", mock.Anything, config).Return(nil)

		updated, err := service.SetPrimary(context.Background(), testTenant, config.ID)
		require.NoError(t, err)
		assert.True(t, updated.IsPrimary)
		repo.AssertExpectations(t)
	})

	t.Run("concurrent promotion hits the primary index", func(t *testing.T) {
		repo := new(MockCarrierConfigRepository)
		service := NewCarrierService(repo, nil, nil, quietLogger())
		config := carrier(models.CarrierDTDC, true, false, nil)
		repo.On("GetByID", mock.Anything, testTenant, config.ID).Return(config, nil)
		repo.On("ClearPrimary", mock.Anything, testTenant).Return(nil)
		repo.On("Update", mock.Anything, config).Return(repository.ErrDuplicate)

		_, err := service.SetPrimary(context.Background(), testTenant, config.ID)
		assert.ErrorIs(t, err, ErrPrimaryConflict)
	})
}

func TestCarrierService_UpdateConfigRejectsUnknownMode(t *testing.T) {
	service := NewCarrierService(new(MockCarrierConfigRepository), nil, nil, quietLogger())
	mode := models.APIMode("staging")

	_, err := service.UpdateConfig(context.Background(), testTenant, uuid.New(), models.UpdateCarrierConfigRequest{APIMode: &mode})
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestCarrierService_UpdateCredentials(t *testing.T) {
	t.Run("unknown keys are rejected", func(t *testing.T) {
		repo := new(MockCarrierConfigRepository)
		service := NewCarrierService(repo, nil, nil, quietLogger())
		config := carrier(models.CarrierShiprocket, true, false, nil)
		repo.On("GetByID", mock.Anything, testTenant, config.ID).Return(config, nil)

		_, err := service.UpdateCredentials(context.Background(), testTenant, config.ID, models.UpdateCarrierCredentialsRequest{
			Credentials: map[string]string{"email": "ops@example.com", "token": "x", "api_secret": "y"},
		})
		require.ErrorIs(t, err, models.ErrValidation)
		assert.Contains(t, err.Error(), "api_secret, token")
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("known keys reset status", func(t *testing.T) {
		repo := new(MockCarrierConfigRepository)
		service := NewCarrierService(repo, nil, nil, quietLogger())
		config := carrier(models.CarrierShiprocket, true, false, nil)
		config.Status = models.CarrierStatusConnected
		repo.On("GetByID", mock.Anything, testTenant, config.ID).Return(config, nil)
		repo.On("Update", mock.Anything, config).Return(nil)

		updated, err := service.UpdateCredentials(context.Background(), testTenant, config.ID, models.UpdateCarrierCredentialsRequest{
			Credentials: map[string]string{"email": " ops@example.com ", "password": "secret", "channel_id": ""},
		})
		require.NoError(t, err)
		assert.Equal(t, models.CarrierStatusNotConfigured, updated.Status)
		assert.Equal(t, map[string]string{"email": "ops@example.com", "password": "secret"}, updated.Credentials.Data())
	})
}

func TestCarrierService_TestConnection(t *testing.T) {
	tests := []struct {
		name     string
		creds    map[string]string
		resolve  func(r *MockCredentialResolver)
		status   models.CarrierStatus
		contains string
	}{
		{
			name:     "no credentials",
			creds:    nil,
			status:   models.CarrierStatusNotConfigured,
			contains: "no credentials",
		},
		{
			name:     "partial credentials",
			creds:    map[string]string{"email": "ops@example.com"},
			status:   models.CarrierStatusError,
			contains: "password",
		},
		{
			name:     "plain credentials",
			creds:    map[string]string{"email": "ops@example.com", "password": "pw"},
			status:   models.CarrierStatusConnected,
			contains: "verified",
		},
		{
			name:  "secret reference resolves",
			creds: map[string]string{"email": "ops@example.com", "password": "gcp-secret://shiprocket-pw"},
			resolve: func(r *MockCredentialResolver) {
				r.On("Resolve", mock.Anything, "gcp-secret://shiprocket-pw").Return("pw", nil)
			},
			status: models.CarrierStatusConnected,
		},
		{
			name:  "secret reference fails",
			creds: map[string]string{"email": "ops@example.com", "password": "gcp-secret://missing"},
			resolve: func(r *MockCredentialResolver) {
				r.On("Resolve", mock.Anything, "gcp-secret://missing").Return("", errors.New("secret not found"))
			},
			status:   models.CarrierStatusError,
			contains: "secret not found",
		},
	}

	fixed := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockCarrierConfigRepository)
			resolver := new(MockCredentialResolver)
			if tt.resolve != nil {
				tt.resolve(resolver)
			}
			service := NewCarrierService(repo, resolver, nil, quietLogger())
			service.now = func() time.Time { return fixed }

			config := carrier(models.CarrierShiprocket, true, false, tt.creds)
			repo.On("GetByID", mock.Anything, testTenant, config.ID).Return(config, nil)
			repo.On("Update", mock.Anything, config).Return(nil)

			updated, err := service.TestConnection(context.Background(), testTenant, config.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.status, updated.Status)
			assert.Contains(t, updated.StatusMessage, tt.contains)
			require.NotNil(t, updated.LastTestedAt)
			assert.Equal(t, fixed, *updated.LastTestedAt)
			resolver.AssertExpectations(t)
		})
	}
}

func TestCarrierService_TestConnectionWithoutResolver(t *testing.T) {
	repo := new(MockCarrierConfigRepository)
	service := NewCarrierService(repo, nil, nil, quietLogger())
	config := carrier(models.CarrierDTDC, true, false, map[string]string{
		"api_key":       "gcp-secret://dtdc-key",
		"customer_code": "C123",
	})
	repo.On("GetByID", mock.Anything, testTenant, config.ID).Return(config, nil)
	repo.On("Update", mock.Anything, config).Return(nil)

	updated, err := service.TestConnection(context.Background(), testTenant, config.ID)
	require.NoError(t, err)
	assert.Equal(t, models.CarrierStatusError, updated.Status)
	assert.Contains(t, updated.StatusMessage, "secret manager is not configured")
}
