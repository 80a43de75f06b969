package models

import (
	"time"

	"github.com/google/uuid"
)

// NotificationStatus is the delivery state of a notification
type NotificationStatus string

const (
	// NotificationStatusSent marks a notification as delivered
	NotificationStatusSent NotificationStatus = "sent"
	// NotificationStatusFailed marks a notification whose delivery failed
	NotificationStatusFailed NotificationStatus = "failed"
)

// Notification records a signup confirmation produced by the worker
type Notification struct {
	ID        uuid.UUID          `json:"id"`
	EventID   uuid.UUID          `json:"event_id"`
	Email     string             `json:"email"`
	Channel   string             `json:"channel"`
	Status    NotificationStatus `json:"status"`
	CreatedAt time.Time          `json:"created_at"`
}
