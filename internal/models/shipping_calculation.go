package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Dimensions of a package in centimetres
type Dimensions struct {
	Length decimal.Decimal `json:"length"`
	Width  decimal.Decimal `json:"width"`
	Height decimal.Decimal `json:"height"`
}

// IsZero reports whether no dimension was supplied
func (d Dimensions) IsZero() bool {
	return d.Length.IsZero() && d.Width.IsZero() && d.Height.IsZero()
}

// ShippingCalculationRequest is the test-calculation payload
type ShippingCalculationRequest struct {
	PickupPincode   string          `json:"pickup_pincode"`
	DeliveryPincode string          `json:"delivery_pincode"`
	Weight          decimal.Decimal `json:"weight"`
	OrderValue      decimal.Decimal `json:"order_value"`
	Dimensions      *Dimensions     `json:"dimensions,omitempty"`
	PaymentMethod   string          `json:"payment_method,omitempty"`
}

// Validate checks pincodes, weight, order value and dimensions
func (r *ShippingCalculationRequest) Validate() error {
	if err := ValidatePincode(r.PickupPincode); err != nil {
		return err
	}
	if err := ValidatePincode(r.DeliveryPincode); err != nil {
		return err
	}
	if !r.Weight.IsPositive() {
		return ValidationErrorf("weight must be greater than 0")
	}
	if r.OrderValue.IsNegative() {
		return ValidationErrorf("order_value cannot be negative")
	}
	if r.Dimensions != nil && !r.Dimensions.IsZero() {
		d := r.Dimensions
		if !d.Length.IsPositive() || !d.Width.IsPositive() || !d.Height.IsPositive() {
			return ValidationErrorf("dimensions require length, width and height greater than 0")
		}
	}
	switch r.PaymentMethod {
	case "":
		r.PaymentMethod = PaymentMethodPrepaid
	case PaymentMethodPrepaid, PaymentMethodCOD:
	default:
		return ValidationErrorf("payment_method must be prepaid or cod")
	}
	return nil
}

// ShippingOption is one courier's quote
type ShippingOption struct {
	WeightSlabID   uuid.UUID       `json:"weight_slab_id"`
	Courier        string          `json:"courier"`
	BillableWeight decimal.Decimal `json:"billable_weight"`
	BaseCost       decimal.Decimal `json:"base_cost"`
	FinalCost      decimal.Decimal `json:"final_cost"`
	CODCharge      decimal.Decimal `json:"cod_charge"`
	TotalCost      decimal.Decimal `json:"total_cost"`
	IsFreeShipping bool            `json:"is_free_shipping"`
	Available      bool            `json:"available"`
	Recommended    bool            `json:"recommended"`
	ErrorMessage   string          `json:"error_message,omitempty"`
}

// ShippingCalculation is the test-calculation result
type ShippingCalculation struct {
	Zone                  Zone             `json:"zone"`
	ZoneName              string           `json:"zone_name"`
	PickupZone            Zone             `json:"pickup_zone,omitempty"`
	GrossWeight           decimal.Decimal  `json:"gross_weight"`
	DimensionalWeight     decimal.Decimal  `json:"dimensional_weight"`
	BillableWeight        decimal.Decimal  `json:"billable_weight"`
	ShippingOptions       []ShippingOption `json:"shipping_options"`
	FreeShippingThreshold decimal.Decimal  `json:"free_shipping_threshold"`
	FreeShippingEnabled   bool             `json:"free_shipping_enabled"`
	DeliveryEstimate      string           `json:"delivery_estimate"`
	ExpectedDeliveryDays  int              `json:"expected_delivery_days"`
	CODAvailable          bool             `json:"cod_available"`
	IsFallbackZone        bool             `json:"is_fallback_zone"`
}
