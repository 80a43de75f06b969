package models

import (
	"time"

	"github.com/google/uuid"
)

// Opportunity is a volunteer opportunity shown on the public listing
type Opportunity struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Category    string    `json:"category,omitempty"`
	Banner      string    `json:"banner,omitempty"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
