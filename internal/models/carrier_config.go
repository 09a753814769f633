package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// CarrierCode identifies a courier integration
type CarrierCode string

const (
	CarrierShiprocket  CarrierCode = "shiprocket"
	CarrierDelhivery   CarrierCode = "delhivery"
	CarrierBlueDart    CarrierCode = "bluedart"
	CarrierDTDC        CarrierCode = "dtdc"
	CarrierEcomExpress CarrierCode = "ecom_express"
	CarrierXpressbees  CarrierCode = "xpressbees"
)

// APIMode selects the carrier sandbox or production endpoint
type APIMode string

const (
	APIModeTest APIMode = "test"
	APIModeLive APIMode = "live"
)

// CarrierStatus is the result of the last connection test
type CarrierStatus string

const (
	CarrierStatusNotConfigured CarrierStatus = "not_configured"
	CarrierStatusConnected     CarrierStatus = "connected"
	CarrierStatusError         CarrierStatus = "error"
)

// SecretRefPrefix marks a credential value stored in Secret Manager
const SecretRefPrefix = "gcp-secret://"

// CarrierConfig is a tenant's configuration of one courier integration
type CarrierConfig struct {
	ID            uuid.UUID                              `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	TenantID      string                                 `gorm:"type:varchar(255);not null;uniqueIndex:idx_carrier_config_tenant_code;uniqueIndex:idx_carrier_config_tenant_primary,where:is_primary = true" json:"-"`
	Code          CarrierCode                            `gorm:"type:varchar(50);not null;uniqueIndex:idx_carrier_config_tenant_code" json:"code"`
	Name          string                                 `gorm:"type:varchar(255);not null" json:"name"`
	APIMode       APIMode                                `gorm:"type:varchar(10);default:'test'" json:"api_mode"`
	IsActive      bool                                   `gorm:"not null" json:"is_active"`
	IsPrimary     bool                                   `gorm:"not null" json:"is_primary"`
	Status        CarrierStatus                          `gorm:"type:varchar(20);default:'not_configured'" json:"status"`
	StatusMessage string                                 `gorm:"type:text" json:"status_message,omitempty"`
	Credentials   datatypes.JSONType[map[string]string] `gorm:"type:jsonb" json:"-"`
	LastTestedAt  *time.Time                             `json:"last_tested_at,omitempty"`
	CreatedAt     time.Time                              `json:"created_at"`
	UpdatedAt     time.Time                              `json:"updated_at"`
}

func (CarrierConfig) TableName() string {
	return "carrier_configs"
}

// NewCredentials wraps a credential map for storage
func NewCredentials(values map[string]string) datatypes.JSONType[map[string]string] {
	if values == nil {
		values = map[string]string{}
	}
	return datatypes.NewJSONType(values)
}

// CarrierConfigResponse hides credential values
type CarrierConfigResponse struct {
	ID                  uuid.UUID         `json:"id"`
	Code                CarrierCode       `json:"code"`
	Name                string            `json:"name"`
	APIMode             APIMode           `json:"api_mode"`
	IsActive            bool              `json:"is_active"`
	IsPrimary           bool              `json:"is_primary"`
	Status              CarrierStatus     `json:"status"`
	StatusMessage       string            `json:"status_message,omitempty"`
	Credentials         map[string]string `json:"credentials"`
	RequiredCredentials []string          `json:"required_credentials"`
	LastTestedAt        *time.Time        `json:"last_tested_at,omitempty"`
	CreatedAt           time.Time         `json:"created_at"`
	UpdatedAt           time.Time         `json:"updated_at"`
}

// ToResponse masks every credential that is not a secret reference
func (c *CarrierConfig) ToResponse() CarrierConfigResponse {
	masked := make(map[string]string)
	for k, v := range c.Credentials.Data() {
		masked[k] = maskCredential(v)
	}
	var required []string
	if tpl, ok := FindCarrierTemplate(c.Code); ok {
		required = tpl.RequiredCredentials
	}
	return CarrierConfigResponse{
		ID:                  c.ID,
		Code:                c.Code,
		Name:                c.Name,
		APIMode:             c.APIMode,
		IsActive:            c.IsActive,
		IsPrimary:           c.IsPrimary,
		Status:              c.Status,
		StatusMessage:       c.StatusMessage,
		Credentials:         masked,
		RequiredCredentials: required,
		LastTestedAt:        c.LastTestedAt,
		CreatedAt:           c.CreatedAt,
		UpdatedAt:           c.UpdatedAt,
	}
}

func maskCredential(v string) string {
	if strings.HasPrefix(v, SecretRefPrefix) {
		return v
	}
	if len(v) <= 4 {
		return "****"
	}
	return "****" + v[len(v)-4:]
}

// UpdateCarrierConfigRequest sets mode or primary flag
type UpdateCarrierConfigRequest struct {
	APIMode   *APIMode `json:"api_mode"`
	IsPrimary *bool    `json:"is_primary"`
}

// UpdateCarrierCredentialsRequest replaces the credential set
type UpdateCarrierCredentialsRequest struct {
	Credentials map[string]string `json:"credentials" binding:"required"`
}

// CarrierTemplate describes a supported courier integration
type CarrierTemplate struct {
	Code                CarrierCode `json:"code"`
	Name                string      `json:"name"`
	RequiredCredentials []string    `json:"required_credentials"`
	OptionalCredentials []string    `json:"optional_credentials,omitempty"`
}

// AllowsCredential reports whether key belongs to the template
func (t CarrierTemplate) AllowsCredential(key string) bool {
	for _, k := range t.RequiredCredentials {
		if k == key {
			return true
		}
	}
	for _, k := range t.OptionalCredentials {
		if k == key {
			return true
		}
	}
	return false
}

// CarrierTemplates are the couriers a tenant can enable
var CarrierTemplates = []CarrierTemplate{
	{Code: CarrierShiprocket, Name: "Shiprocket", RequiredCredentials: []string{"email", "password"}, OptionalCredentials: []string{"channel_id", "pickup_location_id"}},
	{Code: CarrierDelhivery, Name: "Delhivery", RequiredCredentials: []string{"api_token", "pickup_location"}, OptionalCredentials: []string{"client_name"}},
	{Code: CarrierBlueDart, Name: "Blue Dart", RequiredCredentials: []string{"license_key", "login_id", "customer_code"}},
	{Code: CarrierDTDC, Name: "DTDC", RequiredCredentials: []string{"api_key", "customer_code"}},
	{Code: CarrierEcomExpress, Name: "Ecom Express", RequiredCredentials: []string{"username", "password"}},
	{Code: CarrierXpressbees, Name: "Xpressbees", RequiredCredentials: []string{"email", "password"}, OptionalCredentials: []string{"business_name"}},
}

// FindCarrierTemplate looks up a template by code
func FindCarrierTemplate(code CarrierCode) (CarrierTemplate, bool) {
	for _, t := range CarrierTemplates {
		if t.Code == code {
			return t, true
		}
	}
	return CarrierTemplate{}, false
}
