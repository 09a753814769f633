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

// MinBundleQuantity is the smallest quantity a bundle may hold
const MinBundleQuantity = 2

// ErrSKUExists is returned when a bundle SKU is already taken
var ErrSKUExists = errors.New("a bundle variant with this SKU already exists")

// NormalizeBundlePricing clears the pricing fields that do not belong to the
// selected pricing type, so stale values never conflict.
func NormalizeBundlePricing(in *models.BundlePricingInput) {
	switch in.PricingType {
	case models.PricingPercentageDiscount:
		in.FixedPrice = nil
		in.FixedDiscount = nil
	case models.PricingFixedPrice:
		in.DiscountPercentage = nil
		in.FixedDiscount = nil
	case models.PricingFixedDiscount:
		in.DiscountPercentage = nil
		in.FixedPrice = nil
	}
}

// ValidateBundlePricing checks quantity, unit price and the field required by the pricing type
func ValidateBundlePricing(in models.BundlePricingInput) error {
	if in.Quantity < MinBundleQuantity {
		return models.ValidationErrorf("quantity must be at least %d", MinBundleQuantity)
	}
	if in.UnitPrice.IsNegative() {
		return models.ValidationErrorf("unit_price cannot be negative")
	}
	switch in.PricingType {
	case models.PricingPercentageDiscount:
		if in.DiscountPercentage == nil {
			return models.ValidationErrorf("discount_percentage is required for percentage_discount")
		}
		if in.DiscountPercentage.IsNegative() || in.DiscountPercentage.GreaterThan(hundred) {
			return models.ValidationErrorf("discount_percentage must be between 0 and 100")
		}
	case models.PricingFixedPrice:
		if in.FixedPrice == nil {
			return models.ValidationErrorf("fixed_price is required for fixed_price")
		}
		if in.FixedPrice.IsNegative() {
			return models.ValidationErrorf("fixed_price cannot be negative")
		}
	case models.PricingFixedDiscount:
		if in.FixedDiscount == nil {
			return models.ValidationErrorf("fixed_discount is required for fixed_discount")
		}
		if in.FixedDiscount.IsNegative() {
			return models.ValidationErrorf("fixed_discount cannot be negative")
		}
	default:
		return models.ValidationErrorf("pricing_type must be percentage_discount, fixed_price or fixed_discount")
	}
	return nil
}

// ComputeBundlePricing normalizes and validates in, then prices the bundle
func ComputeBundlePricing(in *models.BundlePricingInput) (models.BundlePricing, error) {
	NormalizeBundlePricing(in)
	if err := ValidateBundlePricing(*in); err != nil {
		return models.BundlePricing{}, err
	}

	regular := in.UnitPrice.Mul(decimal.NewFromInt(int64(in.Quantity)))

	var price decimal.Decimal
	switch in.PricingType {
	case models.PricingPercentageDiscount:
		factor := decimal.NewFromInt(1).Sub(in.DiscountPercentage.Div(hundred))
		price = regular.Mul(factor)
	case models.PricingFixedPrice:
		price = *in.FixedPrice
	case models.PricingFixedDiscount:
		price = decimal.Max(decimal.Zero, regular.Sub(*in.FixedDiscount))
	}
	price = price.Round(2)

	savings := regular.Sub(price)
	savingsPct := decimal.Zero
	if !regular.IsZero() {
		savingsPct = savings.Div(regular).Mul(hundred).Round(2)
	}

	return models.BundlePricing{
		RegularPrice:      regular.Round(2),
		BundlePrice:       price,
		Savings:           savings.Round(2),
		SavingsPercentage: savingsPct,
	}, nil
}

// BundleVariantService stores bundle variants with their computed pricing
type BundleVariantService struct {
	repo      repository.BundleVariantRepository
	publisher EventPublisher
}

// NewBundleVariantService creates a bundle variant service
func NewBundleVariantService(repo repository.BundleVariantRepository, publisher EventPublisher) *BundleVariantService {
	return &BundleVariantService{
		repo:      repo,
		publisher: publisherOrNoop(publisher),
	}
}

// ListByProduct returns a product's bundles in display order
func (s *BundleVariantService) ListByProduct(ctx context.Context, tenantID string, productID uuid.UUID) ([]models.BundleVariant, error) {
	return s.repo.ListByProduct(ctx, tenantID, productID)
}

func (s *BundleVariantService) Get(ctx context.Context, tenantID string, id uuid.UUID) (*models.BundleVariant, error) {
	return s.repo.GetByID(ctx, tenantID, id)
}

// Create prices and stores a new bundle for productID
func (s *BundleVariantService) Create(ctx context.Context, tenantID string, productID uuid.UUID, req models.BundleVariantRequest) (*models.BundleVariant, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	pricing, err := ComputeBundlePricing(&req.BundlePricingInput)
	if err != nil {
		return nil, err
	}

	variant := &models.BundleVariant{
		TenantID:  tenantID,
		ProductID: productID,
	}
	applyBundleRequest(variant, req, pricing)

	if err := s.repo.Create(ctx, variant); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrSKUExists
		}
		return nil, fmt.Errorf("failed to create bundle variant: %w", err)
	}

	_ = s.publisher.Publish(ctx, tenantID, events.BundleVariantChanged, variant.ID.String(), "created", variant)
	return variant, nil
}

// Update reprices and stores an existing bundle
func (s *BundleVariantService) Update(ctx context.Context, tenantID string, id uuid.UUID, req models.BundleVariantRequest) (*models.BundleVariant, error) {
	variant, err := s.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	pricing, err := ComputeBundlePricing(&req.BundlePricingInput)
	if err != nil {
		return nil, err
	}

	applyBundleRequest(variant, req, pricing)

	if err := s.repo.Update(ctx, variant); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrSKUExists
		}
		return nil, fmt.Errorf("failed to update bundle variant: %w", err)
	}

	_ = s.publisher.Publish(ctx, tenantID, events.BundleVariantChanged, variant.ID.String(), "updated", variant)
	return variant, nil
}

// Delete removes a bundle
func (s *BundleVariantService) Delete(ctx context.Context, tenantID string, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, tenantID, id); err != nil {
		return err
	}
	_ = s.publisher.Publish(ctx, tenantID, events.BundleVariantChanged, id.String(), "deleted", nil)
	return nil
}

func applyBundleRequest(v *models.BundleVariant, req models.BundleVariantRequest, pricing models.BundlePricing) {
	v.Name = req.Name
	v.SKU = req.SKU
	v.Quantity = req.Quantity
	v.UnitPrice = req.UnitPrice
	v.PricingType = req.PricingType
	v.DiscountPercentage = req.DiscountPercentage
	v.FixedPrice = req.FixedPrice
	v.FixedDiscount = req.FixedDiscount
	v.BundlePrice = pricing.BundlePrice
	v.Savings = pricing.Savings
	v.SavingsPercentage = pricing.SavingsPercentage
	v.StockManagementType = req.StockManagementType
	v.StockQuantity = req.StockQuantity
	v.SortOrder = req.SortOrder
	v.IsActive = true
	if req.IsActive != nil {
		v.IsActive = *req.IsActive
	}
}
