package entities

import "time"

// ProgressUpdate is one append-only entry in a job card's update trail.
// Entries are immutable once created and keep insertion order. Visibility
// controls customer exposure only; it has no effect on the state machine.
type ProgressUpdate struct {
	ID          string    `json:"id"`
	JobCardID   string    `json:"job_card_id"`
	CreatedByID string    `json:"created_by_id"`
	Title       string    `json:"title"`
	Message     string    `json:"message"`
	MediaURLs   []string  `json:"media_urls,omitempty"`
	Visible     bool      `json:"is_visible_to_customer"`
	OldStatus   JobStatus `json:"previous_status,omitempty"`
	NewStatus   JobStatus `json:"new_status,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
