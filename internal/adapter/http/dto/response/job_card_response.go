package response

import (
	"time"

	"garagehub/internal/domain/entities"
)

// JobCardResponse is the public projection of the aggregate. Money is
// rendered as fixed two-decimal strings to keep clients away from float
// arithmetic.
type JobCardResponse struct {
	ID        string `json:"id"`
	JobNumber string `json:"job_number"`

	CustomerID string `json:"customer_id"`
	VehicleID  string `json:"vehicle_id"`
	BranchID   string `json:"branch_id"`

	ServiceAdvisorID string `json:"service_advisor_id,omitempty"`
	TechnicianID     string `json:"technician_id,omitempty"`
	DriverID         string `json:"driver_id,omitempty"`

	ServiceType string `json:"service_type"`
	IntakeType  string `json:"intake_type"`
	Status      string `json:"status"`
	StatusLabel string `json:"status_label"`

	PickupAddress string     `json:"pickup_address,omitempty"`
	ScheduledTime *time.Time `json:"scheduled_time,omitempty"`
	PickupTime    *time.Time `json:"pickup_time,omitempty"`
	DeliveryTime  *time.Time `json:"delivery_time,omitempty"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`

	LabourTotal       string `json:"labour_total"`
	PartsTotal        string `json:"parts_total"`
	PickupDeliveryFee string `json:"pickup_delivery_fee"`
	DiscountAmount    string `json:"discount_amount"`
	TaxAmount         string `json:"tax_amount"`
	GrandTotal        string `json:"grand_total"`
	AmountPaid        string `json:"amount_paid"`
	BalanceDue        string `json:"balance_due"`
	Currency          string `json:"currency"`

	NeedsParts bool   `json:"needs_parts"`
	RFQID      string `json:"rfq_id,omitempty"`

	EstimateApproved   string     `json:"estimate_approved"`
	PartsApproved      string     `json:"parts_approved"`
	EstimateApprovedAt *time.Time `json:"estimate_approved_at,omitempty"`
	PartsApprovedAt    *time.Time `json:"parts_approved_at,omitempty"`

	CustomerNotes string `json:"customer_notes,omitempty"`
	CancelReason  string `json:"cancel_reason,omitempty"`

	CustomerRating      int        `json:"customer_rating,omitempty"`
	CustomerFeedback    string     `json:"customer_feedback,omitempty"`
	FeedbackSubmittedAt *time.Time `json:"feedback_submitted_at,omitempty"`

	Updates []ProgressUpdateResponse `json:"updates,omitempty"`

	Version   int64     `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func FromJobCard(j entities.JobCard) JobCardResponse {
	resp := JobCardResponse{
		ID:                  j.ID,
		JobNumber:           j.JobNumber,
		CustomerID:          j.CustomerID,
		VehicleID:           j.VehicleID,
		BranchID:            j.BranchID,
		ServiceAdvisorID:    j.ServiceAdvisorID,
		TechnicianID:        j.TechnicianID,
		DriverID:            j.DriverID,
		ServiceType:         string(j.ServiceType),
		IntakeType:          string(j.IntakeType),
		Status:              string(j.Status),
		StatusLabel:         j.Status.Label(),
		PickupAddress:       j.PickupAddress,
		ScheduledTime:       j.ScheduledTime,
		PickupTime:          j.PickupTime,
		DeliveryTime:        j.DeliveryTime,
		CompletedAt:         j.CompletedAt,
		LabourTotal:         j.LabourTotal.StringFixed(2),
		PartsTotal:          j.PartsTotal.StringFixed(2),
		PickupDeliveryFee:   j.PickupDeliveryFee.StringFixed(2),
		DiscountAmount:      j.DiscountAmount.StringFixed(2),
		TaxAmount:           j.TaxAmount.StringFixed(2),
		GrandTotal:          j.GrandTotal.StringFixed(2),
		AmountPaid:          j.AmountPaid.StringFixed(2),
		BalanceDue:          j.BalanceDue.StringFixed(2),
		Currency:            entities.Currency,
		NeedsParts:          j.NeedsParts,
		RFQID:               j.RFQID,
		EstimateApproved:    string(j.EstimateApproved),
		PartsApproved:       string(j.PartsApproved),
		EstimateApprovedAt:  j.EstimateApprovedAt,
		PartsApprovedAt:     j.PartsApprovedAt,
		CustomerNotes:       j.CustomerNotes,
		CancelReason:        j.CancelReason,
		CustomerRating:      j.CustomerRating,
		CustomerFeedback:    j.CustomerFeedback,
		FeedbackSubmittedAt: j.FeedbackSubmittedAt,
		Version:             j.Version,
		CreatedAt:           j.CreatedAt,
		UpdatedAt:           j.UpdatedAt,
	}
	for _, up := range j.Updates {
		resp.Updates = append(resp.Updates, FromProgressUpdate(up))
	}
	return resp
}

type ProgressUpdateResponse struct {
	ID          string    `json:"id"`
	JobCardID   string    `json:"job_card_id"`
	CreatedByID string    `json:"created_by_id"`
	Title       string    `json:"title"`
	Message     string    `json:"message,omitempty"`
	MediaURLs   []string  `json:"media_urls,omitempty"`
	Visible     bool      `json:"is_visible_to_customer"`
	OldStatus   string    `json:"previous_status,omitempty"`
	NewStatus   string    `json:"new_status,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func FromProgressUpdate(u entities.ProgressUpdate) ProgressUpdateResponse {
	return ProgressUpdateResponse{
		ID:          u.ID,
		JobCardID:   u.JobCardID,
		CreatedByID: u.CreatedByID,
		Title:       u.Title,
		Message:     u.Message,
		MediaURLs:   u.MediaURLs,
		Visible:     u.Visible,
		OldStatus:   string(u.OldStatus),
		NewStatus:   string(u.NewStatus),
		CreatedAt:   u.CreatedAt,
	}
}

// StatusInfoResponse is one row of the status catalog endpoint.
type StatusInfoResponse struct {
	Status   string `json:"status"`
	Label    string `json:"label"`
	Rank     int    `json:"rank"`
	Terminal bool   `json:"terminal"`
}

func FromStatusInfo(s entities.JobStatus) StatusInfoResponse {
	info := s.Info()
	return StatusInfoResponse{
		Status:   string(s),
		Label:    info.Label,
		Rank:     info.Rank,
		Terminal: info.Terminal,
	}
}

// TransitionsResponse lists the statuses reachable from the job's current
// status, before role and gate checks.
type TransitionsResponse struct {
	Status      string   `json:"status"`
	Transitions []string `json:"transitions"`
}

func FromTransitions(current entities.JobStatus, targets []entities.JobStatus) TransitionsResponse {
	resp := TransitionsResponse{Status: string(current), Transitions: make([]string, 0, len(targets))}
	for _, t := range targets {
		resp.Transitions = append(resp.Transitions, string(t))
	}
	return resp
}
