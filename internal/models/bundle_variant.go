package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BundlePricingType selects how a bundle price is derived
type BundlePricingType string

const (
	PricingPercentageDiscount BundlePricingType = "percentage_discount"
	PricingFixedPrice         BundlePricingType = "fixed_price"
	PricingFixedDiscount      BundlePricingType = "fixed_discount"
)

// StockManagementType controls bundle stock accounting
type StockManagementType string

const (
	StockCalculated  StockManagementType = "calculated"
	StockIndependent StockManagementType = "independent"
)

// BundleVariant is a quantity-based product package with its own SKU
type BundleVariant struct {
	ID                  uuid.UUID           `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	TenantID            string              `gorm:"type:varchar(255);not null;uniqueIndex:idx_bundle_variant_tenant_sku" json:"-"`
	ProductID           uuid.UUID           `gorm:"type:uuid;not null;index" json:"product_id"`
	Name                string              `gorm:"type:varchar(255);not null" json:"name"`
	SKU                 string              `gorm:"type:varchar(100);not null;uniqueIndex:idx_bundle_variant_tenant_sku" json:"sku"`
	Quantity            int                 `gorm:"not null" json:"quantity"`
	UnitPrice           decimal.Decimal     `gorm:"type:decimal(12,2);not null" json:"unit_price"`
	PricingType         BundlePricingType   `gorm:"type:varchar(30);not null" json:"pricing_type"`
	DiscountPercentage  *decimal.Decimal    `gorm:"type:decimal(5,2)" json:"discount_percentage"`
	FixedPrice          *decimal.Decimal    `gorm:"type:decimal(12,2)" json:"fixed_price"`
	FixedDiscount       *decimal.Decimal    `gorm:"type:decimal(12,2)" json:"fixed_discount"`
	BundlePrice         decimal.Decimal     `gorm:"type:decimal(12,2);not null" json:"bundle_price"`
	Savings             decimal.Decimal     `gorm:"type:decimal(12,2);not null" json:"savings"`
	SavingsPercentage   decimal.Decimal     `gorm:"type:decimal(6,2);not null" json:"savings_percentage"`
	StockManagementType StockManagementType `gorm:"type:varchar(20);default:'calculated'" json:"stock_management_type"`
	StockQuantity       int                 `gorm:"default:0" json:"stock_quantity"`
	IsActive            bool                `gorm:"not null" json:"is_active"`
	SortOrder           int                 `gorm:"default:0" json:"sort_order"`
	CreatedAt           time.Time           `json:"created_at"`
	UpdatedAt           time.Time           `json:"updated_at"`
}

func (BundleVariant) TableName() string {
	return "bundle_variants"
}

// BundlePricingInput is the closed set of fields that determine a bundle price
type BundlePricingInput struct {
	UnitPrice          decimal.Decimal   `json:"unit_price"`
	Quantity           int               `json:"quantity"`
	PricingType        BundlePricingType `json:"pricing_type"`
	DiscountPercentage *decimal.Decimal  `json:"discount_percentage,omitempty"`
	FixedPrice         *decimal.Decimal  `json:"fixed_price,omitempty"`
	FixedDiscount      *decimal.Decimal  `json:"fixed_discount,omitempty"`
}

// BundlePricing is the computed price breakdown of a bundle
type BundlePricing struct {
	RegularPrice      decimal.Decimal `json:"regular_price"`
	BundlePrice       decimal.Decimal `json:"bundle_price"`
	Savings           decimal.Decimal `json:"savings"`
	SavingsPercentage decimal.Decimal `json:"savings_percentage"`
}

// BundleVariantRequest is the create/update payload for a bundle variant
type BundleVariantRequest struct {
	BundlePricingInput
	Name                string              `json:"name"`
	SKU                 string              `json:"sku"`
	StockManagementType StockManagementType `json:"stock_management_type"`
	StockQuantity       int                 `json:"stock_quantity"`
	IsActive            *bool               `json:"is_active"`
	SortOrder           int                 `json:"sort_order"`
}

// Validate checks the non-pricing fields
func (r *BundleVariantRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.SKU = strings.TrimSpace(r.SKU)
	if r.Name == "" {
		return ValidationErrorf("name is required")
	}
	if r.SKU == "" {
		return ValidationErrorf("sku is required")
	}
	if r.StockManagementType == "" {
		r.StockManagementType = StockCalculated
	}
	if r.StockManagementType != StockCalculated && r.StockManagementType != StockIndependent {
		return ValidationErrorf("stock_management_type must be calculated or independent")
	}
	if r.StockQuantity < 0 {
		return ValidationErrorf("stock_quantity cannot be negative")
	}
	return nil
}
