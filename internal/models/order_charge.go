package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// ChargeType determines how a charge amount is computed
type ChargeType string

const (
	ChargeTypeFixed      ChargeType = "fixed"
	ChargeTypePercentage ChargeType = "percentage"
	ChargeTypeTiered     ChargeType = "tiered"
)

// ChargeApplyTo determines which orders a charge applies to
type ChargeApplyTo string

const (
	ApplyToAll                    ChargeApplyTo = "all"
	ApplyToCODOnly                ChargeApplyTo = "cod_only"
	ApplyToOnlineOnly             ChargeApplyTo = "online_only"
	ApplyToSpecificPaymentMethods ChargeApplyTo = "specific_payment_methods"
	ApplyToConditional            ChargeApplyTo = "conditional"
)

// ChargeTier is one bracket of a tiered charge. Max of zero is unbounded.
type ChargeTier struct {
	Min    decimal.Decimal `json:"min"`
	Max    decimal.Decimal `json:"max"`
	Charge decimal.Decimal `json:"charge"`
}

// OrderCharge is an order-level fee such as a COD handling charge
type OrderCharge struct {
	ID                 uuid.UUID                           `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	TenantID           string                              `gorm:"type:varchar(255);not null;uniqueIndex:idx_order_charge_tenant_code" json:"-"`
	Name               string                              `gorm:"type:varchar(255);not null" json:"name"`
	Code               string                              `gorm:"type:varchar(50);not null;uniqueIndex:idx_order_charge_tenant_code" json:"code"`
	Type               ChargeType                          `gorm:"type:varchar(20);not null" json:"type"`
	Amount             decimal.Decimal                     `gorm:"type:decimal(10,2);default:0" json:"amount"`
	Percentage         decimal.Decimal                     `gorm:"type:decimal(5,2);default:0" json:"percentage"`
	Tiers              datatypes.JSONSlice[ChargeTier]     `gorm:"type:jsonb" json:"tiers"`
	IsEnabled          bool                                `gorm:"not null" json:"is_enabled"`
	ApplyTo            ChargeApplyTo                       `gorm:"type:varchar(30);not null;default:'all'" json:"apply_to"`
	PaymentMethods     pq.StringArray                      `gorm:"type:text[]" json:"payment_methods"`
	Conditions         datatypes.JSONType[OrderConditions] `gorm:"type:jsonb" json:"conditions"`
	Priority           int                                 `gorm:"default:0;index" json:"priority"`
	IsTaxable          bool                                `gorm:"default:false" json:"is_taxable"`
	ApplyAfterDiscount bool                                `gorm:"not null" json:"apply_after_discount"`
	IsRefundable       bool                                `gorm:"default:false" json:"is_refundable"`
	Description        string                              `gorm:"type:text" json:"description,omitempty"`
	DisplayLabel       string                              `gorm:"type:varchar(255)" json:"display_label,omitempty"`
	CreatedAt          time.Time                           `json:"created_at"`
	UpdatedAt          time.Time                           `json:"updated_at"`
}

func (OrderCharge) TableName() string {
	return "order_charges"
}

// Label returns the customer-facing name
func (c *OrderCharge) Label() string {
	if c.DisplayLabel != "" {
		return c.DisplayLabel
	}
	return c.Name
}

// OrderChargeRequest is the create/update payload for an order charge
type OrderChargeRequest struct {
	Name               string          `json:"name" binding:"required"`
	Code               string          `json:"code" binding:"required"`
	Type               ChargeType      `json:"type" binding:"required"`
	Amount             decimal.Decimal `json:"amount"`
	Percentage         decimal.Decimal `json:"percentage"`
	Tiers              []ChargeTier    `json:"tiers"`
	IsEnabled          *bool           `json:"is_enabled"`
	ApplyTo            ChargeApplyTo   `json:"apply_to"`
	PaymentMethods     []string        `json:"payment_methods"`
	Conditions         OrderConditions `json:"conditions"`
	Priority           int             `json:"priority"`
	IsTaxable          bool            `json:"is_taxable"`
	ApplyAfterDiscount *bool           `json:"apply_after_discount"`
	IsRefundable       bool            `json:"is_refundable"`
	Description        string          `json:"description"`
	DisplayLabel       string          `json:"display_label"`
}

// Validate enforces the fields required by the charge type and target
func (r *OrderChargeRequest) Validate() error {
	r.Code = strings.ToLower(strings.TrimSpace(r.Code))
	switch r.Type {
	case ChargeTypeFixed:
		if r.Amount.IsNegative() {
			return ValidationErrorf("amount cannot be negative")
		}
	case ChargeTypePercentage:
		if r.Percentage.IsNegative() || r.Percentage.GreaterThan(decimal.NewFromInt(100)) {
			return ValidationErrorf("percentage must be between 0 and 100")
		}
	case ChargeTypeTiered:
		if len(r.Tiers) == 0 {
			return ValidationErrorf("tiered charges require at least one tier")
		}
		for i, t := range r.Tiers {
			if t.Min.IsNegative() || t.Charge.IsNegative() {
				return ValidationErrorf("tier %d cannot have negative values", i+1)
			}
			if !t.Max.IsZero() && t.Max.LessThan(t.Min) {
				return ValidationErrorf("tier %d max must be greater than min", i+1)
			}
		}
	default:
		return ValidationErrorf("type must be fixed, percentage or tiered")
	}

	if r.ApplyTo == "" {
		r.ApplyTo = ApplyToAll
	}
	switch r.ApplyTo {
	case ApplyToAll, ApplyToCODOnly, ApplyToOnlineOnly:
	case ApplyToSpecificPaymentMethods:
		if len(r.PaymentMethods) == 0 {
			return ValidationErrorf("payment_methods required when apply_to is specific_payment_methods")
		}
	case ApplyToConditional:
		if r.Conditions.MinOrderValue == nil && r.Conditions.MaxOrderValue == nil {
			return ValidationErrorf("conditions required when apply_to is conditional")
		}
	default:
		return ValidationErrorf("invalid apply_to %q", r.ApplyTo)
	}
	return nil
}

// CopyTo copies the validated payload onto charge
func (r *OrderChargeRequest) CopyTo(charge *OrderCharge) {
	charge.Name = r.Name
	charge.Code = r.Code
	charge.Type = r.Type
	charge.Amount = r.Amount
	charge.Percentage = r.Percentage
	charge.Tiers = datatypes.JSONSlice[ChargeTier](r.Tiers)
	charge.ApplyTo = r.ApplyTo
	charge.PaymentMethods = pq.StringArray(r.PaymentMethods)
	charge.Conditions = datatypes.NewJSONType(r.Conditions)
	charge.Priority = r.Priority
	charge.IsTaxable = r.IsTaxable
	charge.IsRefundable = r.IsRefundable
	charge.Description = r.Description
	charge.DisplayLabel = r.DisplayLabel
	charge.IsEnabled = true
	if r.IsEnabled != nil {
		charge.IsEnabled = *r.IsEnabled
	}
	charge.ApplyAfterDiscount = true
	if r.ApplyAfterDiscount != nil {
		charge.ApplyAfterDiscount = *r.ApplyAfterDiscount
	}
}

// PriorityUpdate reorders one charge
type PriorityUpdate struct {
	ID       uuid.UUID `json:"id" binding:"required"`
	Priority int       `json:"priority"`
}

// UpdatePriorityRequest reorders charges in bulk
type UpdatePriorityRequest struct {
	Charges []PriorityUpdate `json:"charges" binding:"required,min=1,dive"`
}

// OrderTotalsRequest is the input to the charge and tax evaluator
type OrderTotalsRequest struct {
	Subtotal      decimal.Decimal `json:"subtotal"`
	Discount      decimal.Decimal `json:"discount"`
	Shipping      decimal.Decimal `json:"shipping"`
	PaymentMethod string          `json:"payment_method" binding:"required"`
}

// Validate rejects negative amounts
func (r *OrderTotalsRequest) Validate() error {
	if r.Subtotal.IsNegative() || r.Discount.IsNegative() || r.Shipping.IsNegative() {
		return ValidationErrorf("subtotal, discount and shipping cannot be negative")
	}
	r.PaymentMethod = strings.ToLower(r.PaymentMethod)
	return nil
}

// AppliedCharge is one charge contributing to an order
type AppliedCharge struct {
	ChargeID  uuid.UUID       `json:"charge_id"`
	Code      string          `json:"code"`
	Label     string          `json:"label"`
	Amount    decimal.Decimal `json:"amount"`
	IsTaxable bool            `json:"is_taxable"`
}

// AppliedTax is one tax contributing to an order
type AppliedTax struct {
	TaxID       uuid.UUID       `json:"tax_id"`
	Code        string          `json:"code"`
	Label       string          `json:"label"`
	Rate        decimal.Decimal `json:"rate"`
	ApplyOn     TaxApplyOn      `json:"apply_on"`
	TaxableBase decimal.Decimal `json:"taxable_base"`
	Amount      decimal.Decimal `json:"amount"`
	IsInclusive bool            `json:"is_inclusive"`
	Components  []TaxComponent  `json:"components,omitempty"`
}

// TaxComponent is one half of a CGST/SGST split
type TaxComponent struct {
	Name   string          `json:"name"`
	Rate   decimal.Decimal `json:"rate"`
	Amount decimal.Decimal `json:"amount"`
}

// OrderTotals is the evaluated breakdown of an order
type OrderTotals struct {
	Subtotal           decimal.Decimal `json:"subtotal"`
	Discount           decimal.Decimal `json:"discount"`
	DiscountedSubtotal decimal.Decimal `json:"discounted_subtotal"`
	Shipping           decimal.Decimal `json:"shipping"`
	Charges            []AppliedCharge `json:"charges"`
	ChargesTotal       decimal.Decimal `json:"charges_total"`
	Taxes              []AppliedTax    `json:"taxes"`
	TaxTotal           decimal.Decimal `json:"tax_total"`
	InclusiveTaxTotal  decimal.Decimal `json:"inclusive_tax_total"`
	Total              decimal.Decimal `json:"total"`
}
