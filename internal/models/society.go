package models

import (
	"time"

	"github.com/google/uuid"
)

// Society represents a managed housing complex grouping properties and
// tenants under one admin.
type Society struct {
	ID                 uuid.UUID `json:"id"`
	Name               string    `json:"name"`
	RegistrationNumber string    `json:"registration_number"`
	Address            string    `json:"address"`
	City               string    `json:"city,omitempty"`
	State              string    `json:"state,omitempty"`
	PostalCode         string    `json:"postal_code,omitempty"`
	TotalUnits         int       `json:"total_units"`
	AdminID            uuid.UUID `json:"admin_id"`
	ManagerName        string    `json:"manager_name,omitempty"`
	ManagerPhone       string    `json:"manager_phone,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}
