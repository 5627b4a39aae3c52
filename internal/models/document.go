package models

import (
	"time"

	"github.com/google/uuid"
)

// Document is metadata for a tenant-uploaded file stored in S3.
type Document struct {
	ID          uuid.UUID  `json:"id"`
	OwnerID     uuid.UUID  `json:"owner_id"`
	SocietyID   *uuid.UUID `json:"society_id,omitempty"`
	Name        string     `json:"name"`
	ContentType string     `json:"content_type,omitempty"`
	SizeBytes   int64      `json:"size_bytes"`
	S3Key       string     `json:"s3_key,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
