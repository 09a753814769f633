package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
	"shipping-admin-service/internal/models"
	"shipping-admin-service/internal/repository"
)

var hundred = decimal.NewFromInt(100)

// OrderTotalsCalculator applies order charges and taxes to an order
type OrderTotalsCalculator struct {
	charges repository.OrderChargeRepository
	taxes   repository.TaxConfigurationRepository
}

// NewOrderTotalsCalculator creates an order totals calculator
func NewOrderTotalsCalculator(charges repository.OrderChargeRepository, taxes repository.TaxConfigurationRepository) *OrderTotalsCalculator {
	return &OrderTotalsCalculator{
		charges: charges,
		taxes:   taxes,
	}
}

// Calculate loads the tenant's enabled rules and evaluates the order
func (c *OrderTotalsCalculator) Calculate(ctx context.Context, tenantID string, req models.OrderTotalsRequest) (*models.OrderTotals, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	charges, err := c.charges.ListEnabled(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to load order charges: %w", err)
	}
	taxes, err := c.taxes.ListEnabled(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to load tax configurations: %w", err)
	}

	orderTotalsCalculated.WithLabelValues(req.PaymentMethod).Inc()
	totals := EvaluateOrderTotals(req, charges, taxes)
	return &totals, nil
}

// EvaluateOrderTotals runs every charge, then every tax, in ascending priority.
// Disabled rules are skipped. Inclusive taxes are reported but not added.
func EvaluateOrderTotals(req models.OrderTotalsRequest, charges []models.OrderCharge, taxes []models.TaxConfiguration) models.OrderTotals {
	discounted := decimal.Max(decimal.Zero, req.Subtotal.Sub(req.Discount))

	totals := models.OrderTotals{
		Subtotal:           req.Subtotal,
		Discount:           req.Discount,
		DiscountedSubtotal: discounted,
		Shipping:           req.Shipping,
		Charges:            []models.AppliedCharge{},
		Taxes:              []models.AppliedTax{},
		ChargesTotal:       decimal.Zero,
		TaxTotal:           decimal.Zero,
		InclusiveTaxTotal:  decimal.Zero,
	}

	sortedCharges := append([]models.OrderCharge(nil), charges...)
	sort.SliceStable(sortedCharges, func(i, j int) bool {
		if sortedCharges[i].Priority != sortedCharges[j].Priority {
			return sortedCharges[i].Priority < sortedCharges[j].Priority
		}
		return sortedCharges[i].Code < sortedCharges[j].Code
	})

	taxableCharges := decimal.Zero
	for i := range sortedCharges {
		charge := &sortedCharges[i]
		if !charge.IsEnabled {
			continue
		}
		base := req.Subtotal
		if charge.ApplyAfterDiscount {
			base = discounted
		}
		if !ChargeApplies(charge, req.PaymentMethod, base) {
			continue
		}
		amount := ChargeAmount(charge, base)
		if amount.IsZero() {
			continue
		}
		totals.Charges = append(totals.Charges, models.AppliedCharge{
			ChargeID:  charge.ID,
			Code:      charge.Code,
			Label:     charge.Label(),
			Amount:    amount,
			IsTaxable: charge.IsTaxable,
		})
		totals.ChargesTotal = totals.ChargesTotal.Add(amount)
		if charge.IsTaxable {
			taxableCharges = taxableCharges.Add(amount)
		}
	}

	sortedTaxes := append([]models.TaxConfiguration(nil), taxes...)
	sort.SliceStable(sortedTaxes, func(i, j int) bool {
		if sortedTaxes[i].Priority != sortedTaxes[j].Priority {
			return sortedTaxes[i].Priority < sortedTaxes[j].Priority
		}
		return sortedTaxes[i].Code < sortedTaxes[j].Code
	})

	for i := range sortedTaxes {
		tax := &sortedTaxes[i]
		if !tax.IsEnabled || !tax.Conditions.Data().Matches(discounted) {
			continue
		}

		base := discounted
		switch tax.ApplyOn {
		case models.ApplyOnSubtotalWithCharges:
			base = base.Add(taxableCharges)
		case models.ApplyOnSubtotalWithShipping:
			base = base.Add(req.Shipping)
		}

		applied := models.AppliedTax{
			TaxID:       tax.ID,
			Code:        tax.Code,
			Label:       tax.Label(),
			Rate:        tax.Rate,
			ApplyOn:     tax.ApplyOn,
			TaxableBase: base,
			IsInclusive: tax.IsInclusive,
		}
		if tax.IsInclusive {
			// base already contains the tax: base - base/(1+rate)
			divisor := decimal.NewFromInt(1).Add(tax.Rate.Div(hundred))
			applied.Amount = base.Sub(base.Div(divisor)).Round(2)
			totals.InclusiveTaxTotal = totals.InclusiveTaxTotal.Add(applied.Amount)
		} else {
			applied.Amount = base.Mul(tax.Rate).Div(hundred).Round(2)
			totals.TaxTotal = totals.TaxTotal.Add(applied.Amount)
		}
		if tax.TaxType == models.TaxTypeCGSTSGST {
			applied.Components = splitCGSTSGST(tax.Rate, applied.Amount)
		}
		totals.Taxes = append(totals.Taxes, applied)
	}

	totals.Total = discounted.
		Add(req.Shipping).
		Add(totals.ChargesTotal).
		Add(totals.TaxTotal)
	return totals
}

// ChargeApplies reports whether charge targets this payment method and order value
func ChargeApplies(charge *models.OrderCharge, paymentMethod string, base decimal.Decimal) bool {
	switch charge.ApplyTo {
	case models.ApplyToAll, "":
		return true
	case models.ApplyToCODOnly:
		return paymentMethod == models.PaymentMethodCOD
	case models.ApplyToOnlineOnly:
		return paymentMethod != models.PaymentMethodCOD
	case models.ApplyToSpecificPaymentMethods:
		for _, m := range charge.PaymentMethods {
			if m == paymentMethod {
				return true
			}
		}
		return false
	case models.ApplyToConditional:
		return charge.Conditions.Data().Matches(base)
	}
	return false
}

// ChargeAmount computes the charge on base according to its type
func ChargeAmount(charge *models.OrderCharge, base decimal.Decimal) decimal.Decimal {
	switch charge.Type {
	case models.ChargeTypeFixed:
		return charge.Amount.Round(2)
	case models.ChargeTypePercentage:
		return base.Mul(charge.Percentage).Div(hundred).Round(2)
	case models.ChargeTypeTiered:
		tiers := append([]models.ChargeTier(nil), charge.Tiers...)
		sort.SliceStable(tiers, func(i, j int) bool { return tiers[i].Min.LessThan(tiers[j].Min) })
		for _, t := range tiers {
			if base.LessThan(t.Min) {
				continue
			}
			if t.Max.IsZero() || base.LessThanOrEqual(t.Max) {
				return t.Charge.Round(2)
			}
		}
	}
	return decimal.Zero
}

func splitCGSTSGST(rate, amount decimal.Decimal) []models.TaxComponent {
	two := decimal.NewFromInt(2)
	half := amount.Div(two).Round(2)
	return []models.TaxComponent{
		{Name: "CGST", Rate: rate.Div(two), Amount: half},
		{Name: "SGST", Rate: rate.Div(two), Amount: amount.Sub(half)},
	}
}
