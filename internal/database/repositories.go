package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/volunteernetwork/api/internal/models"
	"github.com/volunteernetwork/api/internal/pagination"
)

// UserRepositoryInterface defines the interface for user repository operations.
// Handlers depend on the interface so tests can supply mock implementations.
type UserRepositoryInterface interface {
	Create(ctx context.Context, user *models.User) error
	GetAll(ctx context.Context) ([]*models.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// EventRepositoryInterface defines the interface for event repository operations
type EventRepositoryInterface interface {
	Create(ctx context.Context, event *models.Event) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Event, error)
	GetByEmail(ctx context.Context, email string) ([]*models.Event, error)
	Upsert(ctx context.Context, event *models.Event) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// OpportunityRepositoryInterface defines the interface for opportunity listing
type OpportunityRepositoryInterface interface {
	ListPaginated(ctx context.Context, window pagination.Window) ([]*models.Opportunity, int64, error)
}

// NotificationRepositoryInterface defines the interface for notification recording
type NotificationRepositoryInterface interface {
	Create(ctx context.Context, n *models.Notification) error
}

// Ensure concrete types implement the interfaces
var (
	_ UserRepositoryInterface         = (*UserRepository)(nil)
	_ EventRepositoryInterface        = (*EventRepository)(nil)
	_ OpportunityRepositoryInterface  = (*OpportunityRepository)(nil)
	_ NotificationRepositoryInterface = (*NotificationRepository)(nil)
)
