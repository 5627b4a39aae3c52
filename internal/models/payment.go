package models

import (
	"time"

	"github.com/google/uuid"
)

// PaymentType for payments.
const (
	PaymentTypeRent        = "rent"
	PaymentTypeMaintenance = "maintenance"
	PaymentTypeSecurity    = "security"
	PaymentTypeOther       = "other"
)

// PaymentStatus for payments.
const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
	PaymentStatusRefunded  = "refunded"
)

// ValidPaymentType reports whether t is a known payment type.
func ValidPaymentType(t string) bool {
	switch t {
	case PaymentTypeRent, PaymentTypeMaintenance, PaymentTypeSecurity, PaymentTypeOther:
		return true
	}
	return false
}

// ValidPaymentStatus reports whether s is a known payment status.
func ValidPaymentStatus(s string) bool {
	switch s {
	case PaymentStatusPending, PaymentStatusCompleted, PaymentStatusFailed, PaymentStatusRefunded:
		return true
	}
	return false
}

// Payment represents a charge owed by a tenant for a property.
type Payment struct {
	ID            uuid.UUID  `json:"id"`
	SocietyID     uuid.UUID  `json:"society_id"`
	PropertyID    uuid.UUID  `json:"property_id"`
	TenantID      uuid.UUID  `json:"tenant_id"`
	AmountCents   int64      `json:"amount_cents"`
	Currency      string     `json:"currency"`
	Type          string     `json:"type"`
	Status        string     `json:"status"`
	Method        string     `json:"method,omitempty"` // cash, card, bank_transfer, upi
	TransactionID string     `json:"transaction_id,omitempty"`
	DueDate       *time.Time `json:"due_date,omitempty"`
	PaidAt        *time.Time `json:"paid_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// PaymentHistory is an append-only record of a payment status transition.
type PaymentHistory struct {
	ID         uuid.UUID `json:"id"`
	PaymentID  uuid.UUID `json:"payment_id"`
	FromStatus string    `json:"from_status"`
	ToStatus   string    `json:"to_status"`
	ChangedBy  uuid.UUID `json:"changed_by"`
	Note       string    `json:"note,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// PaymentReceipt is issued when a payment transitions to completed.
type PaymentReceipt struct {
	ID            uuid.UUID `json:"id"`
	PaymentID     uuid.UUID `json:"payment_id"`
	ReceiptNumber string    `json:"receipt_number"`
	AmountCents   int64     `json:"amount_cents"`
	IssuedAt      time.Time `json:"issued_at"`
}

// PaymentReminder records that a reminder was sent for a pending payment.
type PaymentReminder struct {
	ID          uuid.UUID `json:"id"`
	PaymentID   uuid.UUID `json:"payment_id"`
	RequestedBy uuid.UUID `json:"requested_by"`
	Message     string    `json:"message,omitempty"`
	SentAt      time.Time `json:"sent_at"`
}
