package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/volunteernetwork/api/internal/models"
)

// EventRepository handles event database operations
type EventRepository struct {
	db *DB
}

// NewEventRepository creates a new event repository
func NewEventRepository(db *DB) *EventRepository {
	return &EventRepository{db: db}
}

// Create inserts a new event record
func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	query := `
		INSERT INTO events (id, email, title, date, text, banner, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`

	now := time.Now()
	err := r.db.QueryRowContext(ctx, query,
		event.ID,
		event.Email,
		event.Title,
		event.Date,
		event.Text,
		event.Banner,
		now,
		now,
	).Scan(&event.CreatedAt, &event.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}

	return nil
}

// GetByID retrieves an event by ID
func (r *EventRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	event := &models.Event{}
	query := `
		SELECT id, email, title, date, text, banner, created_at, updated_at
		FROM events
		WHERE id = $1
	`

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&event.ID,
		&event.Email,
		&event.Title,
		&event.Date,
		&event.Text,
		&event.Banner,
		&event.CreatedAt,
		&event.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("event %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	return event, nil
}

// GetByEmail retrieves all events owned by the given email, newest first
func (r *EventRepository) GetByEmail(ctx context.Context, email string) ([]*models.Event, error) {
	query := `
		SELECT id, email, title, date, text, banner, created_at, updated_at
		FROM events
		WHERE email = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, email)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var events []*models.Event
	for rows.Next() {
		event := &models.Event{}
		err := rows.Scan(
			&event.ID,
			&event.Email,
			&event.Title,
			&event.Date,
			&event.Text,
			&event.Banner,
			&event.CreatedAt,
			&event.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate events: %w", err)
	}

	return events, nil
}

// Upsert writes the whitelisted mutable fields (title, date, text, banner)
// for the given id, creating the record when it does not already exist.
// The owner email is only written on insert; an upsert never reassigns
// ownership of an existing event.
func (r *EventRepository) Upsert(ctx context.Context, event *models.Event) error {
	query := `
		INSERT INTO events (id, email, title, date, text, banner, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			date = EXCLUDED.date,
			text = EXCLUDED.text,
			banner = EXCLUDED.banner,
			updated_at = EXCLUDED.updated_at
		RETURNING email, created_at, updated_at
	`

	now := time.Now()
	err := r.db.QueryRowContext(ctx, query,
		event.ID,
		event.Email,
		event.Title,
		event.Date,
		event.Text,
		event.Banner,
		now,
	).Scan(&event.Email, &event.CreatedAt, &event.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to upsert event: %w", err)
	}

	return nil
}

// Delete deletes an event by ID
func (r *EventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM events WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("event %s: %w", id, ErrNotFound)
	}

	return nil
}
