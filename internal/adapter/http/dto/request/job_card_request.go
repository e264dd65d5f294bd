package request

import (
	"strings"
	"time"

	"garagehub/internal/domain/entities"
	"garagehub/internal/usecase"

	"github.com/shopspring/decimal"
)

// CreateJobCardRequest is the booking payload.
type CreateJobCardRequest struct {
	CustomerID    string     `json:"customer_id" binding:"required"`
	VehicleID     string     `json:"vehicle_id" binding:"required"`
	BranchID      string     `json:"branch_id" binding:"required"`
	ServiceType   string     `json:"service_type" binding:"required"`
	IntakeType    string     `json:"intake_type" binding:"required"`
	PickupAddress string     `json:"pickup_address"`
	ScheduledTime *time.Time `json:"scheduled_time"`
	CustomerNotes string     `json:"customer_notes"`
}

func (r CreateJobCardRequest) ToCommand() usecase.CreateJobCommand {
	return usecase.CreateJobCommand{
		CustomerID:    r.CustomerID,
		VehicleID:     r.VehicleID,
		BranchID:      r.BranchID,
		ServiceType:   entities.ServiceType(strings.TrimSpace(r.ServiceType)),
		IntakeType:    entities.IntakeType(strings.TrimSpace(r.IntakeType)),
		PickupAddress: r.PickupAddress,
		ScheduledTime: r.ScheduledTime,
		CustomerNotes: r.CustomerNotes,
	}
}

// TransitionRequest asks the engine to move the job to a target status.
type TransitionRequest struct {
	TargetStatus string `json:"target_status" binding:"required"`
}

func (r TransitionRequest) Target() entities.JobStatus {
	return entities.JobStatus(strings.TrimSpace(r.TargetStatus))
}

type EstimateLineRequest struct {
	Description string          `json:"description" binding:"required"`
	Quantity    int64           `json:"quantity" binding:"required"`
	UnitPrice   decimal.Decimal `json:"unit_price" binding:"required"`
}

// SubmitEstimateRequest is the staff cost breakdown for a diagnosed job.
type SubmitEstimateRequest struct {
	LabourItems       []EstimateLineRequest `json:"labour_items"`
	PartsItems        []EstimateLineRequest `json:"parts_items"`
	DiscountAmount    decimal.Decimal       `json:"discount_amount"`
	PickupDeliveryFee decimal.Decimal       `json:"pickup_delivery_fee"`
}

func (r SubmitEstimateRequest) ToCommand() usecase.SubmitEstimateCommand {
	return usecase.SubmitEstimateCommand{
		LabourItems:       toEstimateLines(r.LabourItems),
		PartsItems:        toEstimateLines(r.PartsItems),
		DiscountAmount:    r.DiscountAmount,
		PickupDeliveryFee: r.PickupDeliveryFee,
	}
}

func toEstimateLines(in []EstimateLineRequest) []usecase.EstimateLine {
	out := make([]usecase.EstimateLine, 0, len(in))
	for _, l := range in {
		out = append(out, usecase.EstimateLine{
			Description: l.Description,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
		})
	}
	return out
}

// ApprovalRequest carries the customer decision on an estimate or parts quote.
type ApprovalRequest struct {
	Decision string `json:"decision" binding:"required"`
}

// Resolve returns (approved, ok). ok is false for anything but
// approved/rejected.
func (r ApprovalRequest) Resolve() (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(r.Decision)) {
	case "approved", "approve":
		return true, true
	case "rejected", "reject":
		return false, true
	}
	return false, false
}

// QuotesReceivedRequest links the vendor RFQ round to the job.
type QuotesReceivedRequest struct {
	RFQID string `json:"rfq_id" binding:"required"`
}

// SelectQuoteRequest folds the chosen vendor quote into the parts total.
type SelectQuoteRequest struct {
	RFQID      string          `json:"rfq_id" binding:"required"`
	QuoteTotal decimal.Decimal `json:"quote_total" binding:"required"`
}

// PostUpdateRequest appends one progress-trail entry.
type PostUpdateRequest struct {
	Title     string   `json:"title" binding:"required"`
	Message   string   `json:"message"`
	MediaURLs []string `json:"media_urls"`
	Visible   bool     `json:"is_visible_to_customer"`
}

func (r PostUpdateRequest) ToCommand() usecase.PostUpdateCommand {
	return usecase.PostUpdateCommand{
		Title:     r.Title,
		Message:   r.Message,
		MediaURLs: r.MediaURLs,
		Visible:   r.Visible,
	}
}

type CancelJobRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// ReopenJobRequest is the admin escape hatch for moving a job backward.
type ReopenJobRequest struct {
	TargetStatus  string `json:"target_status" binding:"required"`
	Justification string `json:"justification" binding:"required"`
}

func (r ReopenJobRequest) Target() entities.JobStatus {
	return entities.JobStatus(strings.TrimSpace(r.TargetStatus))
}

type FeedbackRequest struct {
	Rating  int    `json:"rating" binding:"required"`
	Comment string `json:"comment"`
}
