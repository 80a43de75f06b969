package models

import (
	"time"

	"github.com/google/uuid"
)

// Event represents a volunteer signup for an opportunity. The Email field is
// the owner identifier used for scoping reads and mutations.
type Event struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Title     string    `json:"title"`
	Date      string    `json:"date"`
	Text      string    `json:"text"`
	Banner    string    `json:"banner,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
