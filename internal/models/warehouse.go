package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// WarehouseType classifies a pickup location
type WarehouseType string

const (
	WarehouseTypeWarehouse WarehouseType = "warehouse"
	WarehouseTypeStore     WarehouseType = "store"
	WarehouseTypeSupplier  WarehouseType = "supplier"
)

// Warehouse is a pickup location. Exactly one warehouse per tenant is the default.
type Warehouse struct {
	ID           uuid.UUID     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	TenantID     string        `gorm:"type:varchar(255);not null;uniqueIndex:idx_warehouse_tenant_code;uniqueIndex:idx_warehouse_tenant_default,where:is_default = true" json:"-"`
	Name         string        `gorm:"type:varchar(255);not null" json:"name"`
	Code         string        `gorm:"type:varchar(50);not null;uniqueIndex:idx_warehouse_tenant_code" json:"code"`
	Type         WarehouseType `gorm:"type:varchar(20);not null;default:'warehouse'" json:"type"`
	Address      string        `gorm:"type:varchar(500)" json:"address"`
	City         string        `gorm:"type:varchar(100)" json:"city"`
	State        string        `gorm:"type:varchar(100)" json:"state"`
	PostalCode   string        `gorm:"type:varchar(20)" json:"postal_code"`
	Country      string        `gorm:"type:varchar(100);default:'IN'" json:"country"`
	ContactName  string        `gorm:"type:varchar(255)" json:"contact_name,omitempty"`
	ContactPhone string        `gorm:"type:varchar(50)" json:"contact_phone,omitempty"`
	ContactEmail string        `gorm:"type:varchar(255)" json:"contact_email,omitempty"`
	IsActive     bool          `gorm:"not null" json:"is_active"`
	IsDefault    bool          `gorm:"not null;index" json:"is_default"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

func (Warehouse) TableName() string {
	return "warehouses"
}

// CreateWarehouseRequest is the create payload for a warehouse
type CreateWarehouseRequest struct {
	Name         string        `json:"name" binding:"required"`
	Code         string        `json:"code" binding:"required"`
	Type         WarehouseType `json:"type"`
	Address      string        `json:"address"`
	City         string        `json:"city"`
	State        string        `json:"state"`
	PostalCode   string        `json:"postal_code"`
	Country      string        `json:"country"`
	ContactName  string        `json:"contact_name"`
	ContactPhone string        `json:"contact_phone"`
	ContactEmail string        `json:"contact_email"`
	IsActive     *bool         `json:"is_active"`
	IsDefault    bool          `json:"is_default"`
}

// Validate checks the warehouse type and postal code
func (r *CreateWarehouseRequest) Validate() error {
	if r.Type == "" {
		r.Type = WarehouseTypeWarehouse
	}
	if !validWarehouseType(r.Type) {
		return ValidationErrorf("type must be warehouse, store or supplier")
	}
	if r.PostalCode != "" {
		if err := ValidatePincode(r.PostalCode); err != nil {
			return err
		}
	}
	if r.Country == "" {
		r.Country = "IN"
	}
	r.Code = strings.ToUpper(strings.TrimSpace(r.Code))
	return nil
}

// ToWarehouse builds the model for tenantID
func (r *CreateWarehouseRequest) ToWarehouse(tenantID string) *Warehouse {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return &Warehouse{
		TenantID:     tenantID,
		Name:         r.Name,
		Code:         r.Code,
		Type:         r.Type,
		Address:      r.Address,
		City:         r.City,
		State:        r.State,
		PostalCode:   r.PostalCode,
		Country:      r.Country,
		ContactName:  r.ContactName,
		ContactPhone: r.ContactPhone,
		ContactEmail: r.ContactEmail,
		IsActive:     active,
		IsDefault:    r.IsDefault,
	}
}

// UpdateWarehouseRequest is a partial warehouse update
type UpdateWarehouseRequest struct {
	Name         *string        `json:"name"`
	Type         *WarehouseType `json:"type"`
	Address      *string        `json:"address"`
	City         *string        `json:"city"`
	State        *string        `json:"state"`
	PostalCode   *string        `json:"postal_code"`
	Country      *string        `json:"country"`
	ContactName  *string        `json:"contact_name"`
	ContactPhone *string        `json:"contact_phone"`
	ContactEmail *string        `json:"contact_email"`
	IsActive     *bool          `json:"is_active"`
	IsDefault    *bool          `json:"is_default"`
}

// Validate checks the fields present in the update
func (r *UpdateWarehouseRequest) Validate() error {
	if r.Type != nil && !validWarehouseType(*r.Type) {
		return ValidationErrorf("type must be warehouse, store or supplier")
	}
	if r.PostalCode != nil && *r.PostalCode != "" {
		if err := ValidatePincode(*r.PostalCode); err != nil {
			return err
		}
	}
	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		return ValidationErrorf("name cannot be empty")
	}
	return nil
}

// ApplyTo copies set fields onto w. IsDefault is handled by the caller.
func (r *UpdateWarehouseRequest) ApplyTo(w *Warehouse) {
	if r.Name != nil {
		w.Name = *r.Name
	}
	if r.Type != nil {
		w.Type = *r.Type
	}
	if r.Address != nil {
		w.Address = *r.Address
	}
	if r.City != nil {
		w.City = *r.City
	}
	if r.State != nil {
		w.State = *r.State
	}
	if r.PostalCode != nil {
		w.PostalCode = *r.PostalCode
	}
	if r.Country != nil {
		w.Country = *r.Country
	}
	if r.ContactName != nil {
		w.ContactName = *r.ContactName
	}
	if r.ContactPhone != nil {
		w.ContactPhone = *r.ContactPhone
	}
	if r.ContactEmail != nil {
		w.ContactEmail = *r.ContactEmail
	}
	if r.IsActive != nil {
		w.IsActive = *r.IsActive
	}
}

func validWarehouseType(t WarehouseType) bool {
	switch t {
	case WarehouseTypeWarehouse, WarehouseTypeStore, WarehouseTypeSupplier:
		return true
	}
	return false
}
