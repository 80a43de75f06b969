package handlers

import (
	"context"

	"github.com/google/uuid"
	"github.com/volunteernetwork/api/internal/database"
	"github.com/volunteernetwork/api/internal/models"
	"github.com/volunteernetwork/api/internal/pagination"
	"github.com/volunteernetwork/api/internal/queue"
)

// mockEventRepo implements database.EventRepositoryInterface for tests
type mockEventRepo struct {
	events       map[uuid.UUID]*models.Event
	createErr    error
	getByEmailFn func(ctx context.Context, email string) ([]*models.Event, error)
	calls        []string
}

func newMockEventRepo() *mockEventRepo {
	return &mockEventRepo{events: make(map[uuid.UUID]*models.Event)}
}

func (m *mockEventRepo) Create(ctx context.Context, event *models.Event) error {
	m.calls = append(m.calls, "Create")
	if m.createErr != nil {
		return m.createErr
	}
	m.events[event.ID] = event
	return nil
}

func (m *mockEventRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	m.calls = append(m.calls, "GetByID")
	event, ok := m.events[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return event, nil
}

func (m *mockEventRepo) GetByEmail(ctx context.Context, email string) ([]*models.Event, error) {
	m.calls = append(m.calls, "GetByEmail")
	if m.getByEmailFn != nil {
		return m.getByEmailFn(ctx, email)
	}
	result := []*models.Event{}
	for _, event := range m.events {
		if event.Email == email {
			result = append(result, event)
		}
	}
	return result, nil
}

func (m *mockEventRepo) Upsert(ctx context.Context, event *models.Event) error {
	m.calls = append(m.calls, "Upsert")
	if existing, ok := m.events[event.ID]; ok {
		// Ownership is never reassigned on update
		event.Email = existing.Email
	}
	m.events[event.ID] = event
	return nil
}

func (m *mockEventRepo) Delete(ctx context.Context, id uuid.UUID) error {
	m.calls = append(m.calls, "Delete")
	if _, ok := m.events[id]; !ok {
		return database.ErrNotFound
	}
	delete(m.events, id)
	return nil
}

// mockUserRepo implements database.UserRepositoryInterface for tests
type mockUserRepo struct {
	users     map[uuid.UUID]*models.User
	createErr error
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[uuid.UUID]*models.User)}
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) GetAll(ctx context.Context) ([]*models.User, error) {
	result := []*models.User{}
	for _, user := range m.users {
		result = append(result, user)
	}
	return result, nil
}

func (m *mockUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.users[id]; !ok {
		return database.ErrNotFound
	}
	delete(m.users, id)
	return nil
}

// mockOpportunityRepo implements database.OpportunityRepositoryInterface for tests
type mockOpportunityRepo struct {
	opportunities []*models.Opportunity
	count         int64
	err           error
	lastWindow    *pagination.Window
}

func (m *mockOpportunityRepo) ListPaginated(ctx context.Context, window pagination.Window) ([]*models.Opportunity, int64, error) {
	m.lastWindow = &window
	if m.err != nil {
		return nil, 0, m.err
	}
	return m.opportunities, m.count, nil
}

// mockJobQueue implements queue.JobQueue for tests
type mockJobQueue struct {
	enqueued   []*queue.Job
	enqueueErr error
}

func (m *mockJobQueue) Enqueue(ctx context.Context, job *queue.Job) error {
	if m.enqueueErr != nil {
		return m.enqueueErr
	}
	m.enqueued = append(m.enqueued, job)
	return nil
}

func (m *mockJobQueue) Consume(ctx context.Context, prefetchCount int) (<-chan *queue.Message, <-chan error, error) {
	return nil, nil, nil
}

func (m *mockJobQueue) Close() error { return nil }

func (m *mockJobQueue) HealthCheck(ctx context.Context) error { return nil }
