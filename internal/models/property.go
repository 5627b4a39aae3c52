package models

import (
	"time"

	"github.com/google/uuid"
)

// PropertyStatus for units.
const (
	PropertyStatusVacant      = "vacant"
	PropertyStatusOccupied    = "occupied"
	PropertyStatusMaintenance = "maintenance"
)

// ValidPropertyStatus reports whether s is a known property status.
func ValidPropertyStatus(s string) bool {
	switch s {
	case PropertyStatusVacant, PropertyStatusOccupied, PropertyStatusMaintenance:
		return true
	}
	return false
}

// Property represents a unit inside a society.
type Property struct {
	ID         uuid.UUID  `json:"id"`
	SocietyID  uuid.UUID  `json:"society_id"`
	UnitNumber string     `json:"unit_number"`
	Type       string     `json:"type,omitempty"` // apartment, villa, shop, ...
	Bedrooms   int        `json:"bedrooms"`
	Bathrooms  int        `json:"bathrooms"`
	AreaSqft   int        `json:"area_sqft"`
	RentCents  int64      `json:"rent_cents"`
	Status     string     `json:"status"`
	TenantID   *uuid.UUID `json:"tenant_id,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}
