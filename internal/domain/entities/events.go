package entities

import "time"

// JobEventType names the out-of-band signals the engine emits after a
// transition commits. Delivery (push, WhatsApp, RFQ fan-out) happens in the
// collaborators; the engine only publishes.
type JobEventType string

const (
	EventJobCreated      JobEventType = "job_created"
	EventStatusChanged   JobEventType = "status_changed"
	EventEstimateReady   JobEventType = "estimate_ready"
	EventEstimateRespond JobEventType = "estimate_response"
	EventPartsQuoteReady JobEventType = "parts_quote_ready"
	EventPartsRespond    JobEventType = "parts_response"
	EventPaymentReceived JobEventType = "payment_received"
	EventJobUpdatePosted JobEventType = "job_update_posted"
	EventRFQRequested    JobEventType = "rfq_requested"
	EventJobCancelled    JobEventType = "job_cancelled"
)

// JobEvent is the post-commit outbox record handed to the dispatcher.
// Recipients are roles, resolved to concrete devices/addresses downstream.
type JobEvent struct {
	JobID      string       `json:"job_id"`
	JobNumber  string       `json:"job_number"`
	Type       JobEventType `json:"type"`
	OldStatus  JobStatus    `json:"old_status,omitempty"`
	NewStatus  JobStatus    `json:"new_status,omitempty"`
	Recipients []Role       `json:"recipients,omitempty"`
	ActorID    string       `json:"actor_id,omitempty"`
	Detail     string       `json:"detail,omitempty"`
	OccurredAt time.Time    `json:"occurred_at"`
}
