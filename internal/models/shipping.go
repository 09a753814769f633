package models

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrValidation marks request validation failures
var ErrValidation = errors.New("validation failed")

// ValidationErrorf builds an error wrapping ErrValidation
func ValidationErrorf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

var pincodePattern = regexp.MustCompile(`^[1-9][0-9]{5}$`)

// ValidatePincode checks the 6-digit postal code format
func ValidatePincode(pincode string) error {
	if !pincodePattern.MatchString(pincode) {
		return ValidationErrorf("pincode %q must be a 6-digit postal code", pincode)
	}
	return nil
}

// PincodeZone maps a postal code to its shipping zone
type PincodeZone struct {
	ID                   uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	TenantID             string          `gorm:"type:varchar(255);not null;uniqueIndex:idx_pincode_zone_tenant_pincode" json:"-"`
	Pincode              string          `gorm:"type:varchar(6);not null;uniqueIndex:idx_pincode_zone_tenant_pincode" json:"pincode"`
	Zone                 Zone            `gorm:"type:varchar(1);not null;index" json:"zone"`
	City                 string          `gorm:"type:varchar(100)" json:"city,omitempty"`
	State                string          `gorm:"type:varchar(100);index" json:"state,omitempty"`
	Region               string          `gorm:"type:varchar(100)" json:"region,omitempty"`
	IsMetro              bool            `gorm:"default:false" json:"is_metro"`
	IsRemote             bool            `gorm:"default:false" json:"is_remote"`
	CODAvailable         bool            `gorm:"not null" json:"cod_available"`
	ExpectedDeliveryDays int             `gorm:"default:5" json:"expected_delivery_days"`
	ZoneMultiplier       decimal.Decimal `gorm:"type:decimal(6,3);default:1" json:"zone_multiplier"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`

	// IsFallback is set on synthetic entries produced for unmapped pincodes
	IsFallback bool `gorm:"-" json:"is_fallback,omitempty"`
}

func (PincodeZone) TableName() string {
	return "pincode_zones"
}

// PincodeZoneRequest is the create/update payload for a pincode mapping
type PincodeZoneRequest struct {
	Pincode              string           `json:"pincode"`
	Zone                 Zone             `json:"zone"`
	City                 string           `json:"city"`
	State                string           `json:"state"`
	Region               string           `json:"region"`
	IsMetro              bool             `json:"is_metro"`
	IsRemote             bool             `json:"is_remote"`
	CODAvailable         *bool            `json:"cod_available"`
	ExpectedDeliveryDays *int             `json:"expected_delivery_days"`
	ZoneMultiplier       *decimal.Decimal `json:"zone_multiplier"`
}

// Validate checks the payload and fills form defaults
func (r *PincodeZoneRequest) Validate() error {
	if err := ValidatePincode(r.Pincode); err != nil {
		return err
	}
	if r.Zone == "" {
		r.Zone = ZoneD
	}
	if !r.Zone.IsValid() {
		return ValidationErrorf("zone must be one of A, B, C, D, E")
	}
	if r.CODAvailable == nil {
		cod := true
		r.CODAvailable = &cod
	}
	if r.ExpectedDeliveryDays == nil {
		days := 5
		r.ExpectedDeliveryDays = &days
	}
	if *r.ExpectedDeliveryDays < 1 {
		return ValidationErrorf("expected_delivery_days must be at least 1")
	}
	if r.ZoneMultiplier == nil {
		one := decimal.NewFromInt(1)
		r.ZoneMultiplier = &one
	}
	if !r.ZoneMultiplier.IsPositive() {
		return ValidationErrorf("zone_multiplier must be greater than 0")
	}
	return nil
}

// Apply copies the validated payload onto p
func (r *PincodeZoneRequest) Apply(p *PincodeZone) {
	p.Pincode = r.Pincode
	p.Zone = r.Zone
	p.City = r.City
	p.State = r.State
	p.Region = r.Region
	p.IsMetro = r.IsMetro
	p.IsRemote = r.IsRemote
	p.CODAvailable = *r.CODAvailable
	p.ExpectedDeliveryDays = *r.ExpectedDeliveryDays
	p.ZoneMultiplier = *r.ZoneMultiplier
}

// PincodeFilter narrows pincode listings
type PincodeFilter struct {
	ListParams
	Zone  Zone
	State string
}

// WeightSlab is a courier's minimum billable weight unit
type WeightSlab struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	TenantID    string          `gorm:"type:varchar(255);not null;index" json:"-"`
	CourierName string          `gorm:"type:varchar(100);not null" json:"courier_name"`
	BaseWeight  decimal.Decimal `gorm:"type:decimal(8,3);not null" json:"base_weight"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	Rates []ZoneRate `gorm:"foreignKey:ShippingWeightSlabID;constraint:OnDelete:CASCADE" json:"rates,omitempty"`
}

func (WeightSlab) TableName() string {
	return "shipping_weight_slabs"
}

// WeightSlabRequest is the create/update payload for a weight slab
type WeightSlabRequest struct {
	CourierName string           `json:"courier_name"`
	BaseWeight  *decimal.Decimal `json:"base_weight"`
}

// Validate checks the payload and fills form defaults
func (r *WeightSlabRequest) Validate() error {
	if r.CourierName == "" {
		r.CourierName = "Standard"
	}
	if r.BaseWeight == nil {
		half := decimal.RequireFromString("0.5")
		r.BaseWeight = &half
	}
	if !r.BaseWeight.IsPositive() {
		return ValidationErrorf("base_weight must be greater than 0")
	}
	return nil
}

// ZoneRate is the price row for one (weight slab, zone) pair
type ZoneRate struct {
	ID                   uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	TenantID             string          `gorm:"type:varchar(255);not null;index" json:"-"`
	ShippingWeightSlabID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_zone_rate_slab_zone" json:"shipping_weight_slab_id"`
	Zone                 Zone            `gorm:"type:varchar(1);not null;uniqueIndex:idx_zone_rate_slab_zone" json:"zone"`
	FwdRate              decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"fwd_rate"`
	RTORate              decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"rto_rate"`
	AWRate               decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"aw_rate"`
	CODCharges           decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"cod_charges"`
	CODPercentage        decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"cod_percentage"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`

	WeightSlab *WeightSlab `gorm:"foreignKey:ShippingWeightSlabID" json:"weight_slab,omitempty"`
}

func (ZoneRate) TableName() string {
	return "shipping_zone_rates"
}

// ZoneRateRequest is the create/update payload for a zone rate.
// Omitted money fields take the admin form defaults on create.
type ZoneRateRequest struct {
	ShippingWeightSlabID uuid.UUID        `json:"shipping_weight_slab_id"`
	Zone                 Zone             `json:"zone"`
	FwdRate              *decimal.Decimal `json:"fwd_rate"`
	RTORate              *decimal.Decimal `json:"rto_rate"`
	AWRate               *decimal.Decimal `json:"aw_rate"`
	CODCharges           *decimal.Decimal `json:"cod_charges"`
	CODPercentage        *decimal.Decimal `json:"cod_percentage"`
}

// Validate checks identifiers and money fields
func (r *ZoneRateRequest) Validate() error {
	if r.ShippingWeightSlabID == uuid.Nil {
		return ValidationErrorf("shipping_weight_slab_id is required")
	}
	if !r.Zone.IsValid() {
		return ValidationErrorf("zone must be one of A, B, C, D, E")
	}
	for name, v := range map[string]*decimal.Decimal{
		"fwd_rate":       r.FwdRate,
		"rto_rate":       r.RTORate,
		"aw_rate":        r.AWRate,
		"cod_charges":    r.CODCharges,
		"cod_percentage": r.CODPercentage,
	} {
		if v != nil && v.IsNegative() {
			return ValidationErrorf("%s cannot be negative", name)
		}
	}
	if r.CODPercentage != nil && r.CODPercentage.GreaterThan(decimal.NewFromInt(100)) {
		return ValidationErrorf("cod_percentage cannot exceed 100")
	}
	return nil
}

// NewZoneRate builds a rate row, using defaults for omitted fields
func (r *ZoneRateRequest) NewZoneRate(tenantID string) *ZoneRate {
	return &ZoneRate{
		TenantID:             tenantID,
		ShippingWeightSlabID: r.ShippingWeightSlabID,
		Zone:                 r.Zone,
		FwdRate:              valueOr(r.FwdRate, 50),
		RTORate:              valueOr(r.RTORate, 40),
		AWRate:               valueOr(r.AWRate, 30),
		CODCharges:           valueOr(r.CODCharges, 20),
		CODPercentage:        valueOr(r.CODPercentage, 2),
	}
}

// ApplyTo updates only the fields present in the payload
func (r *ZoneRateRequest) ApplyTo(rate *ZoneRate) {
	if r.FwdRate != nil {
		rate.FwdRate = *r.FwdRate
	}
	if r.RTORate != nil {
		rate.RTORate = *r.RTORate
	}
	if r.AWRate != nil {
		rate.AWRate = *r.AWRate
	}
	if r.CODCharges != nil {
		rate.CODCharges = *r.CODCharges
	}
	if r.CODPercentage != nil {
		rate.CODPercentage = *r.CODPercentage
	}
}

func valueOr(v *decimal.Decimal, def int64) decimal.Decimal {
	if v != nil {
		return *v
	}
	return decimal.NewFromInt(def)
}

// ZoneRates groups a zone's configured rates for the rate table view
type ZoneRates struct {
	Zone     Zone       `json:"zone"`
	ZoneName string     `json:"zone_name"`
	Rates    []ZoneRate `json:"rates"`
}

// FreeShippingThreshold is the per-zone free shipping rule
type FreeShippingThreshold struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"-"`
	TenantID  string          `gorm:"type:varchar(255);not null;uniqueIndex:idx_free_shipping_tenant_zone" json:"-"`
	Zone      Zone            `gorm:"type:varchar(1);not null;uniqueIndex:idx_free_shipping_tenant_zone" json:"zone"`
	Threshold decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"threshold"`
	Enabled   bool            `gorm:"default:false" json:"enabled"`
	CreatedAt time.Time       `json:"-"`
	UpdatedAt time.Time       `json:"-"`

	ZoneName       string `gorm:"-" json:"zone_name"`
	HasCustomValue bool   `gorm:"-" json:"has_custom_value"`
}

func (FreeShippingThreshold) TableName() string {
	return "free_shipping_thresholds"
}

// FreeShippingThresholdRequest upserts one zone's rule
type FreeShippingThresholdRequest struct {
	Zone      Zone             `json:"zone"`
	Threshold *decimal.Decimal `json:"threshold"`
	Enabled   *bool            `json:"enabled"`
}

// Validate checks zone and threshold
func (r *FreeShippingThresholdRequest) Validate() error {
	if !r.Zone.IsValid() {
		return ValidationErrorf("zone must be one of A, B, C, D, E")
	}
	if r.Threshold != nil && r.Threshold.IsNegative() {
		return ValidationErrorf("threshold cannot be negative")
	}
	return nil
}

// ShippingSettings holds per-tenant calculator settings
type ShippingSettings struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	TenantID          string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"-"`
	VolumetricDivisor int       `gorm:"default:5000" json:"volumetric_divisor"`
	FallbackZone      Zone      `gorm:"type:varchar(1)" json:"fallback_zone"`
	Currency          string    `gorm:"type:varchar(3);default:'INR'" json:"currency"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (ShippingSettings) TableName() string {
	return "shipping_settings"
}

// UpdateShippingSettingsRequest is a partial settings update
type UpdateShippingSettingsRequest struct {
	VolumetricDivisor *int    `json:"volumetric_divisor"`
	FallbackZone      *Zone   `json:"fallback_zone"`
	Currency          *string `json:"currency"`
}

// Validate checks the settings payload
func (r *UpdateShippingSettingsRequest) Validate() error {
	if r.VolumetricDivisor != nil && *r.VolumetricDivisor <= 0 {
		return ValidationErrorf("volumetric_divisor must be greater than 0")
	}
	if r.FallbackZone != nil && *r.FallbackZone != "" && !r.FallbackZone.IsValid() {
		return ValidationErrorf("fallback_zone must be empty or one of A, B, C, D, E")
	}
	if r.Currency != nil && len(*r.Currency) != 3 {
		return ValidationErrorf("currency must be a 3-letter code")
	}
	return nil
}
