package database

import (
	"context"
	"fmt"
	"time"

	"github.com/volunteernetwork/api/internal/models"
	"github.com/volunteernetwork/api/internal/validation"
)

// NotificationRepository handles notification database operations
type NotificationRepository struct {
	db *DB
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Create records a delivered (or failed) signup confirmation
func (r *NotificationRepository) Create(ctx context.Context, n *models.Notification) error {
	if err := validation.ValidateNotificationStatus(string(n.Status)); err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	query := `
		INSERT INTO notifications (id, event_id, email, channel, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`

	err := r.db.QueryRowContext(ctx, query,
		n.ID,
		n.EventID,
		n.Email,
		n.Channel,
		n.Status,
		time.Now(),
	).Scan(&n.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	return nil
}
