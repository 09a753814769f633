package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"
)

// Shipping configuration event types
const (
	PincodeZonesImported    = "shipping.pincode_zones_imported"
	ZoneRateCreated         = "shipping.zone_rate_created"
	ZoneRateUpdated         = "shipping.zone_rate_updated"
	ZoneRateDeleted         = "shipping.zone_rate_deleted"
	FreeShippingUpdated     = "shipping.free_shipping_updated"
	SettingsUpdated         = "shipping.settings_updated"
	DefaultWarehouseChanged = "shipping.default_warehouse_changed"
	PrimaryCarrierChanged   = "shipping.primary_carrier_changed"
	OrderChargeChanged      = "shipping.order_charge_changed"
	TaxConfigurationChanged = "shipping.tax_configuration_changed"
	BundleVariantChanged    = "shipping.bundle_variant_changed"
)

const (
	streamName                 = "SHIPPING_CONFIG_EVENTS"
	streamSubjects             = "shipping.>"
	defaultPublishTimeout      = 5 * time.Second
	defaultReconnectWaitPeriod = 2 * time.Second
)

// ConfigEvent is emitted whenever pricing configuration changes
type ConfigEvent struct {
	EventID   string      `json:"eventId"`
	EventType string      `json:"eventType"`
	TenantID  string      `json:"tenantId"`
	EntityID  string      `json:"entityId,omitempty"`
	Action    string      `json:"action,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data,omitempty"`
}

// Publisher publishes configuration events to NATS JetStream.
// A nil *Publisher drops events, so callers never need to check.
type Publisher struct {
	conn   *nats.Conn
	js     nats.JetStreamContext
	logger *logrus.Entry
}

// NewPublisher connects to NATS and ensures the config events stream exists
func NewPublisher(natsURL string, logger *logrus.Logger) (*Publisher, error) {
	conn, err := nats.Connect(natsURL,
		nats.Name("shipping-admin-service"),
		nats.ReconnectWait(defaultReconnectWaitPeriod),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := conn.JetStream()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	entry := logger.WithField("component", "events.publisher")
	if _, err := js.StreamInfo(streamName); err != nil {
		if _, err := js.AddStream(&nats.StreamConfig{
			Name:     streamName,
			Subjects: []string{streamSubjects},
			MaxAge:   7 * 24 * time.Hour,
		}); err != nil {
			entry.WithError(err).Warn("Failed to ensure SHIPPING_CONFIG_EVENTS stream")
		}
	}

	return &Publisher{
		conn:   conn,
		js:     js,
		logger: entry,
	}, nil
}

// Publish sends an event. Failures are logged and returned but never fatal to the caller.
func (p *Publisher) Publish(ctx context.Context, tenantID, eventType, entityID, action string, data interface{}) error {
	if p == nil || p.js == nil {
		return nil
	}

	event := ConfigEvent{
		EventID:   uuid.New().String(),
		EventType: eventType,
		TenantID:  tenantID,
		EntityID:  entityID,
		Action:    action,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultPublishTimeout)
	defer cancel()

	if _, err := p.js.Publish(eventType, payload, nats.Context(ctx), nats.MsgId(event.EventID)); err != nil {
		p.logger.WithError(err).WithFields(logrus.Fields{
			"event_type": eventType,
			"tenant_id":  tenantID,
		}).Warn("Failed to publish event")
		return err
	}

	p.logger.WithFields(logrus.Fields{
		"event_type": eventType,
		"tenant_id":  tenantID,
		"entity_id":  entityID,
	}).Debug("Published event")
	return nil
}

// IsConnected returns true if connected to NATS
func (p *Publisher) IsConnected() bool {
	return p != nil && p.conn != nil && p.conn.IsConnected()
}

// Close drains and closes the connection
func (p *Publisher) Close() {
	if p == nil || p.conn == nil {
		return
	}
	if err := p.conn.Drain(); err != nil {
		p.conn.Close()
	}
}
