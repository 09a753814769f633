package models

import (
	"math"

	"github.com/shopspring/decimal"
)

func init() {
	// Money and weights are exposed to the admin UI as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// Zone is a lettered shipping-distance bracket
type Zone string

const (
	ZoneA Zone = "A"
	ZoneB Zone = "B"
	ZoneC Zone = "C"
	ZoneD Zone = "D"
	ZoneE Zone = "E"
)

// AllZones lists zones in display order
var AllZones = []Zone{ZoneA, ZoneB, ZoneC, ZoneD, ZoneE}

var zoneNames = map[Zone]string{
	ZoneA: "Same City",
	ZoneB: "Same State",
	ZoneC: "Metro to Metro",
	ZoneD: "Rest of India",
	ZoneE: "Northeast/J&K",
}

// IsValid reports whether z is one of A..E
func (z Zone) IsValid() bool {
	_, ok := zoneNames[z]
	return ok
}

// DisplayName returns the human readable zone label
func (z Zone) DisplayName() string {
	return zoneNames[z]
}

// PaymentMethod values used by the calculators
const (
	PaymentMethodCOD     = "cod"
	PaymentMethodPrepaid = "prepaid"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// SuccessResponse is the uniform envelope for successful responses
type SuccessResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// Page is the paginated list payload carried inside the envelope
type Page struct {
	Data        interface{} `json:"data"`
	Total       int64       `json:"total"`
	PerPage     int         `json:"per_page"`
	CurrentPage int         `json:"current_page"`
	LastPage    int         `json:"last_page"`
	From        int         `json:"from"`
	To          int         `json:"to"`
}

// NewPage builds pagination metadata for a slice of itemCount rows
func NewPage(data interface{}, itemCount int, total int64, page, perPage int) Page {
	p := Page{
		Data:        data,
		Total:       total,
		PerPage:     perPage,
		CurrentPage: page,
		LastPage:    1,
	}
	if perPage > 0 && total > 0 {
		p.LastPage = int(math.Ceil(float64(total) / float64(perPage)))
	}
	if itemCount > 0 {
		p.From = (page-1)*perPage + 1
		p.To = p.From + itemCount - 1
	}
	return p
}

// ListParams carries the common list query parameters
type ListParams struct {
	Page    int
	PerPage int
	Search  string
}

// Offset returns the row offset for the current page
func (p ListParams) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.PerPage
}

// OrderConditions restricts a charge or tax to an order value range.
// A nil bound is open.
type OrderConditions struct {
	MinOrderValue *decimal.Decimal `json:"min_order_value,omitempty"`
	MaxOrderValue *decimal.Decimal `json:"max_order_value,omitempty"`
}

// Matches reports whether value falls inside the configured range
func (c OrderConditions) Matches(value decimal.Decimal) bool {
	if c.MinOrderValue != nil && value.LessThan(*c.MinOrderValue) {
		return false
	}
	if c.MaxOrderValue != nil && value.GreaterThan(*c.MaxOrderValue) {
		return false
	}
	return true
}
