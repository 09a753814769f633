package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"shipping-admin-service/internal/models"
	"shipping-admin-service/internal/repository"
)

// fallbackDeliveryDays is reported for pincodes resolved through the fallback zone
const fallbackDeliveryDays = 7

// ZoneResolver maps delivery pincodes to zones
type ZoneResolver struct {
	repo   repository.PincodeRepository
	cache  PincodeLookupCache
	logger *logrus.Entry
}

// NewZoneResolver creates a resolver. cache may be nil.
func NewZoneResolver(repo repository.PincodeRepository, cache PincodeLookupCache, logger *logrus.Logger) *ZoneResolver {
	return &ZoneResolver{
		repo:   repo,
		cache:  cache,
		logger: logger.WithField("component", "zone_resolver"),
	}
}

// Resolve returns the zone entry for pincode. Unmapped pincodes resolve to
// fallback when it is set and fail with ErrPincodeNotServiceable otherwise.
func (r *ZoneResolver) Resolve(ctx context.Context, tenantID, pincode string, fallback models.Zone) (*models.PincodeZone, error) {
	if err := models.ValidatePincode(pincode); err != nil {
		return nil, err
	}

	if r.cache != nil {
		cached, err := r.cache.Get(ctx, tenantID, pincode)
		if err != nil {
			r.logger.WithError(err).Warn("pincode cache read failed")
		} else if cached != nil {
			return cached, nil
		}
	}

	zone, err := r.repo.GetByPincode(ctx, tenantID, pincode)
	if err == nil {
		if r.cache != nil {
			if err := r.cache.Set(ctx, tenantID, zone); err != nil {
				r.logger.WithError(err).Warn("pincode cache write failed")
			}
		}
		return zone, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up pincode: %w", err)
	}

	if fallback == "" {
		return nil, fmt.Errorf("%w: %s", ErrPincodeNotServiceable, pincode)
	}
	return &models.PincodeZone{
		Pincode:              pincode,
		Zone:                 fallback,
		CODAvailable:         false,
		ExpectedDeliveryDays: fallbackDeliveryDays,
		ZoneMultiplier:       decimal.NewFromInt(1),
		IsFallback:           true,
	}, nil
}
