package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"shipping-admin-service/internal/events"
	"shipping-admin-service/internal/models"
	"shipping-admin-service/internal/repository"
)

// ErrPincodeExists is returned when a pincode is already mapped for the tenant
var ErrPincodeExists = errors.New("this pincode is already mapped")

// PincodeImportColumns are the columns read from an import file and written on export
var PincodeImportColumns = []string{
	"pincode", "zone", "city", "state", "region",
	"is_metro", "is_remote", "cod_available", "expected_delivery_days", "zone_multiplier",
}

// ImportRowError describes one rejected import row
type ImportRowError struct {
	Row     int    `json:"row"`
	Column  string `json:"column,omitempty"`
	Message string `json:"message"`
}

// ImportResult summarizes a pincode import. SuccessCount is the number of
// distinct pincodes written; DuplicateCount counts valid rows superseded by a
// later row for the same pincode.
type ImportResult struct {
	TotalRows      int              `json:"total_rows"`
	SuccessCount   int              `json:"success_count"`
	DuplicateCount int              `json:"duplicate_count"`
	FailedCount    int              `json:"failed_count"`
	Errors         []ImportRowError `json:"errors,omitempty"`
}

// PincodeService manages pincode mappings and keeps the lookup cache coherent
type PincodeService struct {
	repo      repository.PincodeRepository
	cache     PincodeLookupCache
	publisher EventPublisher
	logger    *logrus.Entry
}

// NewPincodeService creates a pincode service. cache may be nil.
func NewPincodeService(repo repository.PincodeRepository, cache PincodeLookupCache, publisher EventPublisher, logger *logrus.Logger) *PincodeService {
	return &PincodeService{
		repo:      repo,
		cache:     cache,
		publisher: publisherOrNoop(publisher),
		logger:    logger.WithField("component", "pincode_service"),
	}
}

func (s *PincodeService) List(ctx context.Context, tenantID string, filter models.PincodeFilter) ([]models.PincodeZone, int64, error) {
	return s.repo.List(ctx, tenantID, filter)
}

func (s *PincodeService) ListAll(ctx context.Context, tenantID string) ([]models.PincodeZone, error) {
	return s.repo.ListAll(ctx, tenantID)
}

func (s *PincodeService) Get(ctx context.Context, tenantID string, id uuid.UUID) (*models.PincodeZone, error) {
	return s.repo.GetByID(ctx, tenantID, id)
}

// Create maps a new pincode
func (s *PincodeService) Create(ctx context.Context, tenantID string, req models.PincodeZoneRequest) (*models.PincodeZone, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	zone := &models.PincodeZone{TenantID: tenantID}
	req.Apply(zone)

	if err := s.repo.Create(ctx, zone); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrPincodeExists
		}
		return nil, fmt.Errorf("failed to create pincode zone: %w", err)
	}
	s.invalidate(ctx, tenantID, zone.Pincode)
	return zone, nil
}

// Update replaces a mapping. Both the old and new pincode are evicted from the cache.
func (s *PincodeService) Update(ctx context.Context, tenantID string, id uuid.UUID, req models.PincodeZoneRequest) (*models.PincodeZone, error) {
	zone, err := s.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	previous := zone.Pincode
	req.Apply(zone)

	if err := s.repo.Update(ctx, zone); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrPincodeExists
		}
		return nil, fmt.Errorf("failed to update pincode zone: %w", err)
	}
	s.invalidate(ctx, tenantID, previous, zone.Pincode)
	return zone, nil
}

func (s *PincodeService) Delete(ctx context.Context, tenantID string, id uuid.UUID) error {
	zone, err := s.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, tenantID, id); err != nil {
		return err
	}
	s.invalidate(ctx, tenantID, zone.Pincode)
	return nil
}

// Import validates every row and upserts the valid ones. Invalid rows are
// reported and skipped; a later row for the same pincode wins.
func (s *PincodeService) Import(ctx context.Context, tenantID string, rows []map[string]string) (*ImportResult, error) {
	result := &ImportResult{
		TotalRows: len(rows),
		Errors:    make([]ImportRowError, 0),
	}

	byPincode := make(map[string]int)
	zones := make([]models.PincodeZone, 0, len(rows))
	for i, row := range rows {
		rowNum := i + 2
		if n, err := strconv.Atoi(row["_row"]); err == nil {
			rowNum = n
		}

		req, column, err := PincodeRequestFromRow(row)
		if err == nil {
			err = req.Validate()
		}
		if err != nil {
			result.Errors = append(result.Errors, ImportRowError{
				Row:     rowNum,
				Column:  column,
				Message: strings.TrimPrefix(err.Error(), models.ErrValidation.Error()+": "),
			})
			continue
		}

		zone := models.PincodeZone{TenantID: tenantID}
		req.Apply(&zone)
		if idx, seen := byPincode[zone.Pincode]; seen {
			zones[idx] = zone
			result.DuplicateCount++
			continue
		}
		byPincode[zone.Pincode] = len(zones)
		zones = append(zones, zone)
	}
	result.FailedCount = len(result.Errors)

	if len(zones) > 0 {
		if err := s.repo.Upsert(ctx, zones); err != nil {
			return nil, fmt.Errorf("failed to import pincodes: %w", err)
		}
		if s.cache != nil {
			if err := s.cache.InvalidateAll(ctx, tenantID); err != nil {
				s.logger.WithError(err).Warn("failed to clear pincode cache after import")
			}
		}
	}
	result.SuccessCount = len(zones)

	s.logger.WithFields(logrus.Fields{
		"tenant_id":  tenantID,
		"rows":       result.TotalRows,
		"imported":   result.SuccessCount,
		"duplicates": result.DuplicateCount,
		"failed":     result.FailedCount,
	}).Info("pincode import finished")

	if result.SuccessCount > 0 {
		_ = s.publisher.Publish(ctx, tenantID, events.PincodeZonesImported, "", "imported", map[string]int{
			"imported":   result.SuccessCount,
			"duplicates": result.DuplicateCount,
			"failed":     result.FailedCount,
		})
	}
	return result, nil
}

// PincodeRequestFromRow converts an import row keyed by lower-case column
// name. On a parse failure it also returns the offending column.
func PincodeRequestFromRow(row map[string]string) (models.PincodeZoneRequest, string, error) {
	req := models.PincodeZoneRequest{
		Pincode: row["pincode"],
		Zone:    models.Zone(strings.ToUpper(row["zone"])),
		City:    row["city"],
		State:   row["state"],
		Region:  row["region"],
	}

	var err error
	if req.IsMetro, err = parseBool(row["is_metro"], false); err != nil {
		return req, "is_metro", err
	}
	if req.IsRemote, err = parseBool(row["is_remote"], false); err != nil {
		return req, "is_remote", err
	}
	if v := row["cod_available"]; v != "" {
		cod, err := parseBool(v, true)
		if err != nil {
			return req, "cod_available", err
		}
		req.CODAvailable = &cod
	}
	if v := row["expected_delivery_days"]; v != "" {
		days, err := strconv.Atoi(v)
		if err != nil {
			return req, "expected_delivery_days", models.ValidationErrorf("expected_delivery_days %q is not a number", v)
		}
		req.ExpectedDeliveryDays = &days
	}
	if v := row["zone_multiplier"]; v != "" {
		m, err := decimal.NewFromString(v)
		if err != nil {
			return req, "zone_multiplier", models.ValidationErrorf("zone_multiplier %q is not a number", v)
		}
		req.ZoneMultiplier = &m
	}
	return req, "", nil
}

// PincodeExportRow renders a mapping in PincodeImportColumns order
func PincodeExportRow(z models.PincodeZone) []string {
	return []string{
		z.Pincode,
		string(z.Zone),
		z.City,
		z.State,
		z.Region,
		strconv.FormatBool(z.IsMetro),
		strconv.FormatBool(z.IsRemote),
		strconv.FormatBool(z.CODAvailable),
		strconv.Itoa(z.ExpectedDeliveryDays),
		z.ZoneMultiplier.String(),
	}
}

func parseBool(v string, def bool) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "":
		return def, nil
	case "true", "yes", "y", "1":
		return true, nil
	case "false", "no", "n", "0":
		return false, nil
	}
	return false, models.ValidationErrorf("%q is not a boolean", v)
}

func (s *PincodeService) invalidate(ctx context.Context, tenantID string, pincodes ...string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, tenantID, pincodes...); err != nil {
		s.logger.WithError(err).Warn("failed to invalidate pincode cache")
	}
}
