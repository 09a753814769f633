package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"shipping-admin-service/internal/models"
	"shipping-admin-service/internal/repository"
	"shipping-admin-service/internal/services"
)

const (
	defaultPerPage = 20
	maxPerPage     = 100
)

func getTenantID(c *gin.Context) string {
	return c.GetString("tenant_id")
}

func respondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: data})
}

func respondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, models.SuccessResponse{Success: true, Data: data})
}

func respondMessage(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Message: message, Data: data})
}

func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, models.ErrorResponse{Success: false, Error: code, Message: message})
}

func respondBindError(c *gin.Context, err error) {
	respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
}

// respondServiceError maps domain errors to status codes. Anything unknown
// is logged through c.Error and reported as a 500 without internals.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrValidation):
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, repository.ErrNotFound), errors.Is(err, services.ErrWeightSlabNotFound):
		respondError(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, repository.ErrDuplicate),
		errors.Is(err, services.ErrRateExists),
		errors.Is(err, services.ErrPincodeExists),
		errors.Is(err, services.ErrWarehouseCodeExists),
		errors.Is(err, services.ErrSKUExists),
		errors.Is(err, services.ErrCodeExists):
		respondError(c, http.StatusConflict, "CONFLICT", err.Error())
	case errors.Is(err, services.ErrDefaultConflict), errors.Is(err, services.ErrPrimaryConflict):
		c.Header("Retry-After", "1")
		respondError(c, http.StatusConflict, "CONCURRENT_UPDATE", err.Error())
	case errors.Is(err, services.ErrPincodeNotServiceable):
		respondError(c, http.StatusUnprocessableEntity, "PINCODE_NOT_SERVICEABLE", err.Error())
	case errors.Is(err, services.ErrNoWeightSlabs):
		respondError(c, http.StatusUnprocessableEntity, "NO_WEIGHT_SLABS", err.Error())
	case errors.Is(err, services.ErrCODNotAvailable):
		respondError(c, http.StatusUnprocessableEntity, "COD_NOT_AVAILABLE", err.Error())
	case errors.Is(err, services.ErrDefaultRequired), errors.Is(err, services.ErrCarrierInactive):
		respondError(c, http.StatusUnprocessableEntity, "INVALID_STATE", err.Error())
	case errors.Is(err, services.ErrUnknownCarrier):
		respondError(c, http.StatusBadRequest, "UNKNOWN_CARRIER", err.Error())
	default:
		_ = c.Error(err)
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}

func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_ID", "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

func listParams(c *gin.Context) models.ListParams {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	perPage, err := strconv.Atoi(c.DefaultQuery("per_page", strconv.Itoa(defaultPerPage)))
	if err != nil || perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}
	return models.ListParams{
		Page:    page,
		PerPage: perPage,
		Search:  c.Query("search"),
	}
}
