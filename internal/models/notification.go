package models

import "time"

// Notification is one ephemeral in-app notification entry. Lists are kept
// per account and per role, newest first, capped at MaxNotifications.
type Notification struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	Link      string    `json:"link,omitempty"`
	ContextID string    `json:"context_id,omitempty"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

const MaxNotifications = 50

const (
	NotificationMessage         = "message"
	NotificationRequest         = "request"
	NotificationRequestApproved = "request_approved"
)
