package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// TaxType classifies a tax rule
type TaxType string

const (
	TaxTypeGST      TaxType = "gst"
	TaxTypeIGST     TaxType = "igst"
	TaxTypeCGSTSGST TaxType = "cgst_sgst"
	TaxTypeVAT      TaxType = "vat"
	TaxTypeSalesTax TaxType = "sales_tax"
	TaxTypeCustom   TaxType = "custom"
)

// TaxApplyOn selects the taxable base
type TaxApplyOn string

const (
	ApplyOnSubtotal             TaxApplyOn = "subtotal"
	ApplyOnSubtotalWithCharges  TaxApplyOn = "subtotal_with_charges"
	ApplyOnSubtotalWithShipping TaxApplyOn = "subtotal_with_shipping"
)

// TaxConfiguration is an order-level tax rule
type TaxConfiguration struct {
	ID           uuid.UUID                           `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	TenantID     string                              `gorm:"type:varchar(255);not null;uniqueIndex:idx_tax_config_tenant_code" json:"-"`
	Name         string                              `gorm:"type:varchar(255);not null" json:"name"`
	Code         string                              `gorm:"type:varchar(50);not null;uniqueIndex:idx_tax_config_tenant_code" json:"code"`
	TaxType      TaxType                             `gorm:"type:varchar(20);not null" json:"tax_type"`
	Rate         decimal.Decimal                     `gorm:"type:decimal(6,3);not null" json:"rate"`
	ApplyOn      TaxApplyOn                          `gorm:"type:varchar(30);not null;default:'subtotal'" json:"apply_on"`
	IsInclusive  bool                                `gorm:"default:false" json:"is_inclusive"`
	IsEnabled    bool                                `gorm:"not null" json:"is_enabled"`
	Priority     int                                 `gorm:"default:0;index" json:"priority"`
	Conditions   datatypes.JSONType[OrderConditions] `gorm:"type:jsonb" json:"conditions"`
	Description  string                              `gorm:"type:text" json:"description,omitempty"`
	DisplayLabel string                              `gorm:"type:varchar(255)" json:"display_label,omitempty"`
	CreatedAt    time.Time                           `json:"created_at"`
	UpdatedAt    time.Time                           `json:"updated_at"`
}

func (TaxConfiguration) TableName() string {
	return "tax_configurations"
}

// Label returns the customer-facing name
func (t *TaxConfiguration) Label() string {
	if t.DisplayLabel != "" {
		return t.DisplayLabel
	}
	return t.Name
}

// TaxConfigurationRequest is the create/update payload for a tax rule
type TaxConfigurationRequest struct {
	Name         string          `json:"name" binding:"required"`
	Code         string          `json:"code" binding:"required"`
	TaxType      TaxType         `json:"tax_type" binding:"required"`
	Rate         decimal.Decimal `json:"rate"`
	ApplyOn      TaxApplyOn      `json:"apply_on"`
	IsInclusive  bool            `json:"is_inclusive"`
	IsEnabled    *bool           `json:"is_enabled"`
	Priority     int             `json:"priority"`
	Conditions   OrderConditions `json:"conditions"`
	Description  string          `json:"description"`
	DisplayLabel string          `json:"display_label"`
}

// Validate checks enum fields and the rate range
func (r *TaxConfigurationRequest) Validate() error {
	r.Code = strings.ToLower(strings.TrimSpace(r.Code))
	switch r.TaxType {
	case TaxTypeGST, TaxTypeIGST, TaxTypeCGSTSGST, TaxTypeVAT, TaxTypeSalesTax, TaxTypeCustom:
	default:
		return ValidationErrorf("invalid tax_type %q", r.TaxType)
	}
	if r.ApplyOn == "" {
		r.ApplyOn = ApplyOnSubtotal
	}
	switch r.ApplyOn {
	case ApplyOnSubtotal, ApplyOnSubtotalWithCharges, ApplyOnSubtotalWithShipping:
	default:
		return ValidationErrorf("invalid apply_on %q", r.ApplyOn)
	}
	if r.Rate.IsNegative() || r.Rate.GreaterThan(decimal.NewFromInt(100)) {
		return ValidationErrorf("rate must be between 0 and 100")
	}
	return nil
}

// CopyTo copies the validated payload onto tax
func (r *TaxConfigurationRequest) CopyTo(tax *TaxConfiguration) {
	tax.Name = r.Name
	tax.Code = r.Code
	tax.TaxType = r.TaxType
	tax.Rate = r.Rate
	tax.ApplyOn = r.ApplyOn
	tax.IsInclusive = r.IsInclusive
	tax.Priority = r.Priority
	tax.Conditions = datatypes.NewJSONType(r.Conditions)
	tax.Description = r.Description
	tax.DisplayLabel = r.DisplayLabel
	tax.IsEnabled = true
	if r.IsEnabled != nil {
		tax.IsEnabled = *r.IsEnabled
	}
}
