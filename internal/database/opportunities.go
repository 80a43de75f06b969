package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/volunteernetwork/api/internal/models"
	"github.com/volunteernetwork/api/internal/pagination"
)

// OpportunityRepository handles opportunity database operations
type OpportunityRepository struct {
	db *DB
}

// NewOpportunityRepository creates a new opportunity repository
func NewOpportunityRepository(db *DB) *OpportunityRepository {
	return &OpportunityRepository{db: db}
}

// Create inserts a new opportunity record
func (r *OpportunityRepository) Create(ctx context.Context, op *models.Opportunity) error {
	query := `
		INSERT INTO opportunities (id, title, category, banner, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`

	err := r.db.QueryRowContext(ctx, query,
		op.ID,
		op.Title,
		op.Category,
		op.Banner,
		op.Description,
		time.Now(),
	).Scan(&op.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create opportunity: %w", err)
	}

	return nil
}

// ListPaginated returns one window of opportunities in insertion order plus an
// estimated total count. The count is read independently of the slice and is
// not transactionally consistent with it; staleness under concurrent writes is
// acceptable. A window past the end of the collection yields an empty slice
// with the valid count.
func (r *OpportunityRepository) ListPaginated(ctx context.Context, window pagination.Window) ([]*models.Opportunity, int64, error) {
	query := `
		SELECT id, title, category, banner, description, created_at
		FROM opportunities
		ORDER BY created_at, id
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.QueryContext(ctx, query, window.Limit(), window.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query opportunities: %w", err)
	}
	defer rows.Close()

	opportunities := []*models.Opportunity{}
	for rows.Next() {
		op := &models.Opportunity{}
		err := rows.Scan(
			&op.ID,
			&op.Title,
			&op.Category,
			&op.Banner,
			&op.Description,
			&op.CreatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan opportunity: %w", err)
		}
		opportunities = append(opportunities, op)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate opportunities: %w", err)
	}

	count, err := r.EstimatedCount(ctx)
	if err != nil {
		return nil, 0, err
	}

	return opportunities, count, nil
}

// EstimatedCount returns the approximate number of opportunities from the
// planner statistics, falling back to an exact COUNT(*) when the table has
// not been analyzed yet.
func (r *OpportunityRepository) EstimatedCount(ctx context.Context) (int64, error) {
	var estimate sql.NullInt64
	err := r.db.QueryRowContext(ctx, `
		SELECT reltuples::bigint FROM pg_class WHERE relname = 'opportunities'
	`).Scan(&estimate)
	if err != nil && err != sql.ErrNoRows {
		return 0, fmt.Errorf("failed to estimate opportunity count: %w", err)
	}

	if estimate.Valid && estimate.Int64 > 0 {
		return estimate.Int64, nil
	}

	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM opportunities`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count opportunities: %w", err)
	}
	return count, nil
}
