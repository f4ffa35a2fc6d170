package models

import (
	"time"
)

// Notification is a one-way message to a recipient, addressed by email.
type Notification struct {
	BaseModel
	RecipientEmail string     `gorm:"not null;index" json:"recipientEmail"`
	Type           string     `gorm:"not null" json:"type"` // "verification_status", "contest_status", "application_status", "video_sold"
	Message        string     `json:"message"`
	IsRead         bool       `gorm:"default:false" json:"isRead"`
	ReadAt         *time.Time `json:"readAt,omitempty"`
}
