package services

import (
	"context"
	"errors"

	"shipping-admin-service/internal/models"
)

var (
	ErrPincodeNotServiceable = errors.New("pincode is not serviceable")
	ErrNoWeightSlabs         = errors.New("no weight slabs configured")
	ErrCODNotAvailable       = errors.New("cash on delivery is not available for this pincode")
	ErrRateExists            = errors.New("a rate already exists for this weight slab and zone")
	ErrWeightSlabNotFound    = errors.New("weight slab not found")
	ErrDefaultRequired       = errors.New("a default warehouse is required; set another warehouse as default instead")
	ErrCarrierInactive       = errors.New("carrier must be active to become primary")
	ErrUnknownCarrier        = errors.New("unsupported carrier")
	ErrInvalidCredentials    = errors.New("invalid carrier credentials")
	ErrDefaultConflict       = errors.New("default warehouse was changed by another request; retry")
	ErrPrimaryConflict       = errors.New("primary carrier was changed by another request; retry")
)

// EventPublisher is the subset of the events publisher the services use
type EventPublisher interface {
	Publish(ctx context.Context, tenantID, eventType, entityID, action string, data interface{}) error
}

// PincodeLookupCache caches resolved pincodes
type PincodeLookupCache interface {
	Get(ctx context.Context, tenantID, pincode string) (*models.PincodeZone, error)
	Set(ctx context.Context, tenantID string, zone *models.PincodeZone) error
	Invalidate(ctx context.Context, tenantID string, pincodes ...string) error
	InvalidateAll(ctx context.Context, tenantID string) error
}

type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, string, string, string, string, interface{}) error {
	return nil
}

func publisherOrNoop(p EventPublisher) EventPublisher {
	if p == nil {
		return noopPublisher{}
	}
	return p
}
