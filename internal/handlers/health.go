package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const serviceName = "shipping-admin-service"

// NATSStatus reports the event publisher connection state
type NATSStatus interface {
	IsConnected() bool
}

// HealthHandler serves liveness and readiness probes
type HealthHandler struct {
	db    *gorm.DB
	redis *redis.Client
	nats  NATSStatus
}

// NewHealthHandler creates a health handler. redis and nats may be nil.
func NewHealthHandler(db *gorm.DB, redisClient *redis.Client, nats NATSStatus) *HealthHandler {
	return &HealthHandler{db: db, redis: redisClient, nats: nats}
}

// HealthCheck handles health check requests
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": serviceName,
	})
}

// Liveness handles GET /livez
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "alive"})
}

// Readiness handles GET /readyz. Postgres is required; Redis and NATS are reported only.
func (h *HealthHandler) Readiness(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	checks := gin.H{}
	ready := true

	if h.db == nil {
		checks["database"] = "not configured"
		ready = false
	} else if sqlDB, err := h.db.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
		checks["database"] = "unavailable"
		ready = false
	} else {
		checks["database"] = "ok"
	}

	switch {
	case h.redis == nil:
		checks["redis"] = "disabled"
	case h.redis.Ping(ctx).Err() != nil:
		checks["redis"] = "unavailable"
	default:
		checks["redis"] = "ok"
	}

	switch {
	case h.nats == nil:
		checks["nats"] = "disabled"
	case !h.nats.IsConnected():
		checks["nats"] = "disconnected"
	default:
		checks["nats"] = "ok"
	}

	status := http.StatusOK
	state := "ready"
	if !ready {
		status = http.StatusServiceUnavailable
		state = "not ready"
	}
	c.JSON(status, gin.H{
		"status":  state,
		"service": serviceName,
		"checks":  checks,
	})
}

// AuthCheck handles GET /api/v1/auth/check
func AuthCheck(c *gin.Context) {
	respondOK(c, gin.H{
		"authenticated": true,
		"user_id":       c.GetString("user_id"),
		"tenant_id":     c.GetString("tenant_id"),
		"email":         c.GetString("email"),
	})
}
