package entities

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// JobStatus represents the lifecycle state of a job card.
//
// Domain notes:
//   - The engine is the source of truth for job-card state and financials.
//   - Status only changes through the transition table in transitions.go.
//   - partially_paid is a first-class state, not a flag combination.
//
//go:generate stringer -type=JobStatus

type JobStatus string

const (
	JobStatusRequested                JobStatus = "requested"
	JobStatusScheduled                JobStatus = "scheduled"
	JobStatusVehiclePicked            JobStatus = "vehicle_picked"
	JobStatusInIntake                 JobStatus = "in_intake"
	JobStatusDiagnosed                JobStatus = "diagnosed"
	JobStatusAwaitingEstimateApproval JobStatus = "awaiting_estimate_approval"
	JobStatusEstimateApproved         JobStatus = "estimate_approved"
	JobStatusRFQSent                  JobStatus = "rfq_sent"
	JobStatusQuotesReceived           JobStatus = "quotes_received"
	JobStatusAwaitingPartsApproval    JobStatus = "awaiting_parts_approval"
	JobStatusPartsApproved            JobStatus = "parts_approved"
	JobStatusAwaitingPayment          JobStatus = "awaiting_payment"
	JobStatusPartiallyPaid            JobStatus = "partially_paid"
	JobStatusPaid                     JobStatus = "paid"
	JobStatusPartsOrdered             JobStatus = "parts_ordered"
	JobStatusPartsReceived            JobStatus = "parts_received"
	JobStatusInService                JobStatus = "in_service"
	JobStatusTesting                  JobStatus = "testing"
	JobStatusReady                    JobStatus = "ready"
	JobStatusOutForDelivery           JobStatus = "out_for_delivery"
	JobStatusDelivered                JobStatus = "delivered"
	JobStatusClosed                   JobStatus = "closed"
	JobStatusCancelled                JobStatus = "cancelled"
)

// StatusInfo is the canonical per-status metadata. Front-ends and
// collaborators query this table instead of re-declaring label maps.
type StatusInfo struct {
	Label    string
	Rank     int
	Terminal bool
}

// statusTable orders statuses along the canonical happy path. partially_paid
// shares forward progress with awaiting_payment and ranks between it and paid.
// cancelled sits outside the ordering (rank -1).
var statusTable = map[JobStatus]StatusInfo{
	JobStatusRequested:                {Label: "Requested", Rank: 0},
	JobStatusScheduled:                {Label: "Scheduled", Rank: 1},
	JobStatusVehiclePicked:            {Label: "Vehicle Picked Up", Rank: 2},
	JobStatusInIntake:                 {Label: "In Intake", Rank: 3},
	JobStatusDiagnosed:                {Label: "Diagnosed", Rank: 4},
	JobStatusAwaitingEstimateApproval: {Label: "Awaiting Estimate Approval", Rank: 5},
	JobStatusEstimateApproved:         {Label: "Estimate Approved", Rank: 6},
	JobStatusRFQSent:                  {Label: "RFQ Sent", Rank: 7},
	JobStatusQuotesReceived:           {Label: "Quotes Received", Rank: 8},
	JobStatusAwaitingPartsApproval:    {Label: "Awaiting Parts Approval", Rank: 9},
	JobStatusPartsApproved:            {Label: "Parts Approved", Rank: 10},
	JobStatusAwaitingPayment:          {Label: "Awaiting Payment", Rank: 11},
	JobStatusPartiallyPaid:            {Label: "Partially Paid", Rank: 12},
	JobStatusPaid:                     {Label: "Paid", Rank: 13},
	JobStatusPartsOrdered:             {Label: "Parts Ordered", Rank: 14},
	JobStatusPartsReceived:            {Label: "Parts Received", Rank: 15},
	JobStatusInService:                {Label: "In Service", Rank: 16},
	JobStatusTesting:                  {Label: "Testing", Rank: 17},
	JobStatusReady:                    {Label: "Ready for Delivery", Rank: 18},
	JobStatusOutForDelivery:           {Label: "Out for Delivery", Rank: 19},
	JobStatusDelivered:                {Label: "Delivered", Rank: 20},
	JobStatusClosed:                   {Label: "Closed", Rank: 21, Terminal: true},
	JobStatusCancelled:                {Label: "Cancelled", Rank: -1, Terminal: true},
}

func (s JobStatus) Valid() bool {
	_, ok := statusTable[s]
	return ok
}

func (s JobStatus) Info() StatusInfo { return statusTable[s] }

func (s JobStatus) Label() string { return statusTable[s].Label }

func (s JobStatus) Terminal() bool { return statusTable[s].Terminal }

// Rank is the position along the canonical happy path; cancelled is -1.
func (s JobStatus) Rank() int {
	info, ok := statusTable[s]
	if !ok {
		return -1
	}
	return info.Rank
}

// StatusesInOrder lists every status sorted by rank, cancelled last. It backs
// the status catalog endpoint.
func StatusesInOrder() []JobStatus {
	out := make([]JobStatus, 0, len(statusTable))
	for s := range statusTable {
		out = append(out, s)
	}
	sort.Slice(out, func(i, k int) bool {
		ri, rk := out[i].Rank(), out[k].Rank()
		if ri < 0 {
			return false
		}
		if rk < 0 {
			return true
		}
		return ri < rk
	})
	return out
}

// ServiceType classifies the work requested at booking time.
type ServiceType string

const (
	ServiceTypeDiagnosisOnly  ServiceType = "diagnosis_only"
	ServiceTypeMinor          ServiceType = "minor"
	ServiceTypeRegular        ServiceType = "regular"
	ServiceTypeMajor          ServiceType = "major"
	ServiceTypeACService      ServiceType = "ac_service"
	ServiceTypeElectrical     ServiceType = "electrical"
	ServiceTypeBattery        ServiceType = "battery"
	ServiceTypeTyre           ServiceType = "tyre"
	ServiceTypeAccidentRepair ServiceType = "accident_repair"
	ServiceTypeBodyWork       ServiceType = "body_work"
	ServiceTypeOther          ServiceType = "other"
)

func (t ServiceType) Valid() bool {
	switch t {
	case ServiceTypeDiagnosisOnly, ServiceTypeMinor, ServiceTypeRegular,
		ServiceTypeMajor, ServiceTypeACService, ServiceTypeElectrical,
		ServiceTypeBattery, ServiceTypeTyre, ServiceTypeAccidentRepair,
		ServiceTypeBodyWork, ServiceTypeOther:
		return true
	}
	return false
}

// IntakeType says how the vehicle reaches the branch.
type IntakeType string

const (
	IntakeTypeDropOff IntakeType = "drop_off"
	IntakeTypePickup  IntakeType = "pickup"
)

func (t IntakeType) Valid() bool {
	return t == IntakeTypeDropOff || t == IntakeTypePickup
}

// Role identifies the kind of actor triggering an operation.
type Role string

const (
	RoleCustomer       Role = "customer"
	RoleServiceAdvisor Role = "service_advisor"
	RoleTechnician     Role = "technician"
	RoleDriver         Role = "driver"
	RoleVendor         Role = "vendor"
	RoleAdmin          Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleServiceAdvisor, RoleTechnician, RoleDriver, RoleVendor, RoleAdmin:
		return true
	}
	return false
}

// Actor is the caller identity as resolved by the upstream auth layer.
type Actor struct {
	ID   string
	Role Role
}

// ApprovalState is the tri-state customer gate.
type ApprovalState string

const (
	ApprovalPending  ApprovalState = "pending"
	ApprovalApproved ApprovalState = "approved"
	ApprovalRejected ApprovalState = "rejected"
)

// Currency and VAT are fixed for the deployment region.
const (
	Currency   = "AED"
	VATPercent = 5
)

var vatRate = decimal.New(VATPercent, -2)

// ErrFinancialMismatch signals that stored totals disagree with recomputation.
// It is surfaced as a data-integrity failure, never silently corrected.
var ErrFinancialMismatch = errors.New("stored totals do not match recomputation")

// JobCard is the aggregate root for one vehicle-service engagement.
//
// Storage model (DynamoDB):
//   - PK: id
//   - version: optimistic-lock counter, bumped on every committed mutation.
//
// Monetary representation: decimal with 2 places, AED.
type JobCard struct {
	ID        string `json:"id"`
	JobNumber string `json:"job_number"`

	CustomerID string `json:"customer_id"`
	VehicleID  string `json:"vehicle_id"`
	BranchID   string `json:"branch_id"`

	ServiceAdvisorID string `json:"service_advisor_id,omitempty"`
	TechnicianID     string `json:"technician_id,omitempty"`
	DriverID         string `json:"driver_id,omitempty"`

	ServiceType ServiceType `json:"service_type"`
	IntakeType  IntakeType  `json:"intake_type"`
	Status      JobStatus   `json:"status"`

	PickupAddress string     `json:"pickup_address,omitempty"`
	ScheduledTime *time.Time `json:"scheduled_time,omitempty"`
	PickupTime    *time.Time `json:"pickup_time,omitempty"`
	DeliveryTime  *time.Time `json:"delivery_time,omitempty"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`

	LabourTotal       decimal.Decimal `json:"labour_total"`
	PartsTotal        decimal.Decimal `json:"parts_total"`
	PickupDeliveryFee decimal.Decimal `json:"pickup_delivery_fee"`
	DiscountAmount    decimal.Decimal `json:"discount_amount"`
	TaxAmount         decimal.Decimal `json:"tax_amount"`
	GrandTotal        decimal.Decimal `json:"grand_total"`
	AmountPaid        decimal.Decimal `json:"amount_paid"`
	BalanceDue        decimal.Decimal `json:"balance_due"`

	// NeedsParts is set when a submitted estimate contains part items and
	// drives the RFQ branch vs the direct-to-payment skip.
	NeedsParts bool   `json:"needs_parts"`
	RFQID      string `json:"rfq_id,omitempty"`

	EstimateApproved   ApprovalState `json:"estimate_approved"`
	PartsApproved      ApprovalState `json:"parts_approved"`
	EstimateApprovedAt *time.Time    `json:"estimate_approved_at,omitempty"`
	PartsApprovedAt    *time.Time    `json:"parts_approved_at,omitempty"`

	CustomerNotes string `json:"customer_notes,omitempty"`
	CancelReason  string `json:"cancel_reason,omitempty"`

	CustomerRating      int        `json:"customer_rating,omitempty"`
	CustomerFeedback    string     `json:"customer_feedback,omitempty"`
	FeedbackSubmittedAt *time.Time `json:"feedback_submitted_at,omitempty"`

	Updates []ProgressUpdate `json:"updates,omitempty"`

	Version   int64     `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// round2 pins every stored amount to 2 decimal places (fils precision).
func round2(d decimal.Decimal) decimal.Decimal { return d.Round(2) }

// Subtotal is the taxable base: labour + parts + pickup/delivery fee - discount.
func (j *JobCard) Subtotal() decimal.Decimal {
	return round2(j.LabourTotal.Add(j.PartsTotal).Add(j.PickupDeliveryFee).Sub(j.DiscountAmount))
}

// RecomputeTotals re-derives tax, grand total and balance from the stored
// components. It is idempotent and never patches incrementally, so repeated
// calls cannot drift.
func (j *JobCard) RecomputeTotals() {
	subtotal := j.Subtotal()
	taxBase := subtotal
	if taxBase.IsNegative() {
		taxBase = decimal.Zero
	}
	j.TaxAmount = round2(taxBase.Mul(vatRate))
	j.GrandTotal = round2(subtotal.Add(j.TaxAmount))
	j.BalanceDue = round2(j.GrandTotal.Sub(j.AmountPaid))
	if j.BalanceDue.IsNegative() {
		j.BalanceDue = decimal.Zero
	}
}

// VerifyTotals checks the stored derived fields against a fresh recomputation
// within a tolerance of 0.01.
func (j *JobCard) VerifyTotals() error {
	check := *j
	check.RecomputeTotals()
	tolerance := decimal.New(1, -2)
	if j.GrandTotal.Sub(check.GrandTotal).Abs().GreaterThan(tolerance) {
		return fmt.Errorf("%w: grand_total stored=%s derived=%s", ErrFinancialMismatch, j.GrandTotal, check.GrandTotal)
	}
	if j.BalanceDue.Sub(check.BalanceDue).Abs().GreaterThan(tolerance) {
		return fmt.Errorf("%w: balance_due stored=%s derived=%s", ErrFinancialMismatch, j.BalanceDue, check.BalanceDue)
	}
	return nil
}

// ApplyPayment folds a ledger amount into the running totals and returns the
// status the job should auto-transition to, if any. The caller persists both
// the ledger entry and the job in the same commit.
func (j *JobCard) ApplyPayment(amount decimal.Decimal) (next JobStatus, changed bool) {
	j.AmountPaid = round2(j.AmountPaid.Add(amount))
	j.RecomputeTotals()

	if j.BalanceDue.IsZero() && j.AmountPaid.GreaterThan(decimal.Zero) {
		if j.Status == JobStatusAwaitingPayment || j.Status == JobStatusPartiallyPaid {
			return JobStatusPaid, true
		}
		return "", false
	}
	if j.Status == JobStatusAwaitingPayment && j.AmountPaid.GreaterThan(decimal.Zero) {
		return JobStatusPartiallyPaid, true
	}
	return "", false
}

func (j *JobCard) Touch(now time.Time) {
	j.UpdatedAt = now
	j.Version++
}
