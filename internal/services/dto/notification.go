package dto

import (
	"time"
)

// NotificationResponse is one notification in a recipient's feed.
type NotificationResponse struct {
	ID             string     `json:"id"`
	RecipientEmail string     `json:"recipientEmail"`
	Type           string     `json:"type"`
	Message        string     `json:"message"`
	IsRead         bool       `json:"isRead"`
	ReadAt         *time.Time `json:"readAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}

// NotificationListResponse is one page of notifications plus the unread count.
type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	Total         int64                  `json:"total"`
	UnreadCount   int64                  `json:"unreadCount"`
}
