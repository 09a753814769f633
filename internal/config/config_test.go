package config

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"shipping-admin-service/internal/models"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DB_HOST", "db")
	t.Setenv("ENVIRONMENT", "development")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "db", cfg.Database.Host)
	assert.Equal(t, 5000, cfg.Shipping.VolumetricDivisor)
	assert.Equal(t, models.Zone(""), cfg.Shipping.FallbackZone)
	assert.True(t, cfg.Shipping.FreeShippingThreshold.Equal(decimal.NewFromInt(499)))
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("VOLUMETRIC_DIVISOR", "4000")
	t.Setenv("FALLBACK_ZONE", "d")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://admin.example.com, https://ops.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 4000, cfg.Shipping.VolumetricDivisor)
	assert.Equal(t, models.ZoneD, cfg.Shipping.FallbackZone)
	assert.Equal(t, []string{"https://admin.example.com", "https://ops.example.com"}, cfg.Server.AllowedOrigins)

	settings := cfg.DefaultSettings()
	assert.Equal(t, 4000, settings.VolumetricDivisor)
	assert.Equal(t, models.ZoneD, settings.FallbackZone)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{"invalid fallback zone", map[string]string{"FALLBACK_ZONE": "Z"}, "FALLBACK_ZONE"},
		{"zero divisor", map[string]string{"VOLUMETRIC_DIVISOR": "0"}, "VOLUMETRIC_DIVISOR"},
		{"production without jwt secret", map[string]string{"ENVIRONMENT": "production"}, "JWT_SECRET"},
		{"bad threshold", map[string]string{"FREE_SHIPPING_THRESHOLD": "abc"}, "FREE_SHIPPING_THRESHOLD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
