package models

import (
	"time"

	"github.com/google/uuid"
)

// NoticeType for notices.
const (
	NoticeTypeGeneral     = "general"
	NoticeTypeMaintenance = "maintenance"
	NoticeTypeEmergency   = "emergency"
)

// ValidNoticeType reports whether t is a known notice type.
func ValidNoticeType(t string) bool {
	switch t {
	case NoticeTypeGeneral, NoticeTypeMaintenance, NoticeTypeEmergency:
		return true
	}
	return false
}

// Notice is a society-wide announcement posted by an admin.
type Notice struct {
	ID          uuid.UUID  `json:"id"`
	SocietyID   uuid.UUID  `json:"society_id"`
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	Type        string     `json:"type"`
	Priority    string     `json:"priority,omitempty"`
	IsImportant bool       `json:"is_important"`
	ValidFrom   *time.Time `json:"valid_from,omitempty"`
	ValidUntil  *time.Time `json:"valid_until,omitempty"`
	CreatedBy   uuid.UUID  `json:"created_by"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// NoticeComment is a comment left on a notice by a society member.
type NoticeComment struct {
	ID        uuid.UUID `json:"id"`
	NoticeID  uuid.UUID `json:"notice_id"`
	AuthorID  uuid.UUID `json:"author_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
