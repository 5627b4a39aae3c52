package models

import (
	"time"

	"github.com/google/uuid"
)

// MaintenancePriority for maintenance requests.
const (
	MaintenancePriorityLow    = "low"
	MaintenancePriorityMedium = "medium"
	MaintenancePriorityHigh   = "high"
	MaintenancePriorityUrgent = "urgent"
)

// MaintenanceStatus for maintenance requests.
const (
	MaintenanceStatusPending    = "pending"
	MaintenanceStatusInProgress = "in_progress"
	MaintenanceStatusCompleted  = "completed"
	MaintenanceStatusCancelled  = "cancelled"
)

// ValidMaintenancePriority reports whether p is a known priority.
func ValidMaintenancePriority(p string) bool {
	switch p {
	case MaintenancePriorityLow, MaintenancePriorityMedium, MaintenancePriorityHigh, MaintenancePriorityUrgent:
		return true
	}
	return false
}

// ValidMaintenanceStatus reports whether s is a known status.
func ValidMaintenanceStatus(s string) bool {
	switch s {
	case MaintenanceStatusPending, MaintenanceStatusInProgress, MaintenanceStatusCompleted, MaintenanceStatusCancelled:
		return true
	}
	return false
}

// MaintenanceRequest is a tenant-filed repair/service request for a property.
type MaintenanceRequest struct {
	ID          uuid.UUID  `json:"id"`
	SocietyID   uuid.UUID  `json:"society_id"`
	PropertyID  uuid.UUID  `json:"property_id"`
	TenantID    uuid.UUID  `json:"tenant_id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Category    string     `json:"category,omitempty"` // plumbing, electrical, ...
	Priority    string     `json:"priority"`
	Status      string     `json:"status"`
	AssigneeID  *uuid.UUID `json:"assignee_id,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
