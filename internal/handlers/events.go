package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/volunteernetwork/api/internal/database"
	"github.com/volunteernetwork/api/internal/models"
	"github.com/volunteernetwork/api/internal/queue"
	"github.com/volunteernetwork/api/internal/request"
	"github.com/volunteernetwork/api/internal/token"
	"github.com/volunteernetwork/api/internal/validation"
	"go.uber.org/zap"
)

const (
	// MaxEventTextLength is the maximum length for event description text
	MaxEventTextLength = 10000
	// MaxEventTitleLength is the maximum length for event titles
	MaxEventTitleLength = 300
)

// EventHandler handles event registration requests
type EventHandler struct {
	eventRepo database.EventRepositoryInterface
	jobQueue  queue.JobQueue // nil disables the confirmation pipeline
	logger    *zap.Logger
}

// NewEventHandler creates a new event handler
func NewEventHandler(eventRepo database.EventRepositoryInterface, jobQueue queue.JobQueue, logger *zap.Logger) *EventHandler {
	return &EventHandler{eventRepo: eventRepo, jobQueue: jobQueue, logger: logger}
}

// CreateEventRequest represents a create event request
type CreateEventRequest struct {
	Title  string `json:"title" validate:"required,min=1,max=300"`
	Date   string `json:"date" validate:"required,max=100"`
	Text   string `json:"text" validate:"max=10000"`
	Banner string `json:"banner" validate:"omitempty,url,max=2000"`
}

// UpdateEventRequest carries the writable event fields. Ownership (the email
// column) is never writable through this request.
type UpdateEventRequest struct {
	Title  string `json:"title" validate:"required,min=1,max=300"`
	Date   string `json:"date" validate:"required,max=100"`
	Text   string `json:"text" validate:"max=10000"`
	Banner string `json:"banner" validate:"omitempty,url,max=2000"`
}

// CreateEvent registers the authenticated volunteer for an event and enqueues
// a signup confirmation when the job queue is configured
func (h *EventHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	claims := request.ClaimsFromContext(r)
	if claims == nil {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "Claims not found in context")
		return
	}

	var req CreateEventRequest
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(&req); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			respondJSONError(w, http.StatusRequestEntityTooLarge, "Request Entity Too Large", fmt.Sprintf("Request body exceeds maximum size of %d bytes", maxBytesErr.Limit))
			return
		}
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid request body")
		return
	}

	if err := validation.Validate.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
			respondJSONError(w, http.StatusBadRequest, "Bad Request", fmt.Sprintf("Validation failed: %s", validationErrors[0].Error()))
			return
		}
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Validation failed")
		return
	}

	req.Title = validation.SanitizeText(req.Title)
	req.Text = validation.SanitizeText(req.Text)
	if req.Title == "" {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Title is required and cannot be empty after sanitization")
		return
	}

	ctx := r.Context()
	event := &models.Event{
		ID:     uuid.New(),
		Email:  claims.Email,
		Title:  req.Title,
		Date:   req.Date,
		Text:   req.Text,
		Banner: req.Banner,
	}

	if err := h.eventRepo.Create(ctx, event); err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to create event")
		return
	}

	// The registration is committed; a queue failure only costs the
	// confirmation, so log and carry on
	if h.jobQueue != nil {
		job := queue.NewJob(queue.JobTypeSignupConfirmation, event.ID, event.Email)
		if err := h.jobQueue.Enqueue(ctx, job); err != nil {
			h.logger.Error("failed_to_enqueue_signup_confirmation",
				zap.Error(err),
				zap.String("event_id", event.ID.String()),
			)
		}
	}

	respondJSON(w, http.StatusCreated, event)
}

// ListEvents returns the events owned by the requested email. The email scope
// must match the authenticated claim exactly; the comparison happens before
// any store access, so a mismatch looks the same whether or not the scope
// holds any events.
func (h *EventHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	claims := request.ClaimsFromContext(r)

	email := r.URL.Query().Get("email")
	if err := token.AuthorizeOwner(claims, email); err != nil {
		respondJSONError(w, http.StatusForbidden, "Forbidden", "Access denied")
		return
	}

	events, err := h.eventRepo.GetByEmail(r.Context(), email)
	if err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to retrieve events")
		return
	}

	respondJSON(w, http.StatusOK, events)
}

// GetEvent retrieves a single event by id
func (h *EventHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := uuid.Parse(vars["id"])
	if err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid event ID")
		return
	}

	event, err := h.eventRepo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			respondJSONError(w, http.StatusNotFound, "Not Found", "Event not found")
			return
		}
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to retrieve event")
		return
	}

	respondJSON(w, http.StatusOK, event)
}

// UpdateEvent upserts an event by id. Only the whitelisted fields (title,
// date, text, banner) are written; an existing row keeps its owner.
func (h *EventHandler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	claims := request.ClaimsFromContext(r)
	if claims == nil {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "Claims not found in context")
		return
	}

	vars := mux.Vars(r)
	id, err := uuid.Parse(vars["id"])
	if err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid event ID")
		return
	}

	var req UpdateEventRequest
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(&req); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			respondJSONError(w, http.StatusRequestEntityTooLarge, "Request Entity Too Large", fmt.Sprintf("Request body exceeds maximum size of %d bytes", maxBytesErr.Limit))
			return
		}
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid request body")
		return
	}

	if err := validation.Validate.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
			respondJSONError(w, http.StatusBadRequest, "Bad Request", fmt.Sprintf("Validation failed: %s", validationErrors[0].Error()))
			return
		}
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Validation failed")
		return
	}

	req.Title = validation.SanitizeText(req.Title)
	req.Text = validation.SanitizeText(req.Text)
	if req.Title == "" {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Title is required and cannot be empty after sanitization")
		return
	}

	event := &models.Event{
		ID:     id,
		Email:  claims.Email,
		Title:  req.Title,
		Date:   req.Date,
		Text:   req.Text,
		Banner: req.Banner,
	}

	if err := h.eventRepo.Upsert(r.Context(), event); err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to update event")
		return
	}

	respondJSON(w, http.StatusOK, event)
}

// DeleteEvent removes an event by id
func (h *EventHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	claims := request.ClaimsFromContext(r)
	if claims == nil {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "Claims not found in context")
		return
	}

	vars := mux.Vars(r)
	id, err := uuid.Parse(vars["id"])
	if err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid event ID")
		return
	}

	if err := h.eventRepo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			respondJSONError(w, http.StatusNotFound, "Not Found", "Event not found")
			return
		}
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to delete event")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
