package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"garagehub/internal/domain/entities"
	"garagehub/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrJobNotFound          = errors.New("job card not found")
	ErrInvalidJobID         = errors.New("invalid job id")
	ErrInvalidActor         = errors.New("invalid actor")
	ErrInvalidCustomerID    = errors.New("invalid customer_id")
	ErrInvalidVehicleID     = errors.New("invalid vehicle_id")
	ErrInvalidBranchID      = errors.New("invalid branch_id")
	ErrInvalidServiceType   = errors.New("invalid service_type")
	ErrInvalidIntakeType    = errors.New("invalid intake_type")
	ErrMissingPickupAddress = errors.New("pickup intake requires a pickup address")
	ErrInvalidTargetStatus  = errors.New("invalid target status")
	ErrEmptyEstimate        = errors.New("estimate needs at least one line item")
	ErrInvalidEstimateLine  = errors.New("estimate line has invalid quantity or price")
	ErrInvalidDiscount      = errors.New("invalid discount amount")
	ErrInvalidDeliveryFee   = errors.New("invalid pickup/delivery fee")
	ErrInvalidRFQID         = errors.New("invalid rfq id")
	ErrInvalidQuoteTotal    = errors.New("invalid quote total")
	ErrEstimateNotOpen      = errors.New("job is not awaiting estimate approval")
	ErrPartsNotOpen         = errors.New("job is not awaiting parts approval")
	ErrQuotesNotOpen        = errors.New("job has no quotes pending selection")
	ErrInvalidUpdateTitle   = errors.New("update title is required")
	ErrMissingJustification = errors.New("reopen requires a justification")
	ErrMissingCancelReason  = errors.New("cancel requires a reason")
	ErrInvalidRating        = errors.New("rating must be between 1 and 5")
	ErrFeedbackNotOpen      = errors.New("feedback is only accepted after delivery")

	// Rejection-code errors, one per taxonomy entry. Handlers map them back
	// to their codes at the boundary.
	ErrInvalidTransition      = errors.New("invalid status transition")
	ErrRoleNotAuthorized      = errors.New("role not authorized")
	ErrApprovalGateUnmet      = errors.New("approval gate unmet")
	ErrPaymentGateUnmet       = errors.New("payment gate unmet")
	ErrJobTerminal            = errors.New("job card is terminal")
	ErrConcurrentModification = errors.New("job card was modified concurrently")
)

func rejectionErr(code entities.RejectionCode) error {
	switch code {
	case entities.RejectionInvalidTransition:
		return ErrInvalidTransition
	case entities.RejectionRoleNotAuthorized:
		return ErrRoleNotAuthorized
	case entities.RejectionApprovalGateUnmet:
		return ErrApprovalGateUnmet
	case entities.RejectionPaymentGateUnmet:
		return ErrPaymentGateUnmet
	case entities.RejectionJobTerminal:
		return ErrJobTerminal
	case entities.RejectionConcurrentModification:
		return ErrConcurrentModification
	default:
		return fmt.Errorf("transition rejected: %s", code)
	}
}

// CreateJobCommand carries the booking input.
type CreateJobCommand struct {
	CustomerID    string
	VehicleID     string
	BranchID      string
	ServiceType   entities.ServiceType
	IntakeType    entities.IntakeType
	PickupAddress string
	ScheduledTime *time.Time
	CustomerNotes string
}

// EstimateLine is one labour or part line of a staff estimate.
type EstimateLine struct {
	Description string
	Quantity    int64
	UnitPrice   decimal.Decimal
}

// SubmitEstimateCommand carries the staff cost breakdown for a diagnosed job.
type SubmitEstimateCommand struct {
	LabourItems       []EstimateLine
	PartsItems        []EstimateLine
	DiscountAmount    decimal.Decimal
	PickupDeliveryFee decimal.Decimal
}

// PostUpdateCommand carries one progress-trail entry.
type PostUpdateCommand struct {
	Title     string
	Message   string
	MediaURLs []string
	Visible   bool
}

// IJobCardUseCase is the job-card engine: it owns status transitions, the
// approval gates and financial recomputation. Payment recording lives in
// IPaymentUseCase and calls back into the same aggregate.

type IJobCardUseCase interface {
	CreateJob(ctx context.Context, cmd CreateJobCommand) (entities.JobCard, error)
	GetJob(ctx context.Context, jobID string, actor entities.Actor) (entities.JobCard, error)
	RequestTransition(ctx context.Context, jobID string, target entities.JobStatus, actor entities.Actor) (entities.JobCard, error)
	SubmitEstimate(ctx context.Context, jobID string, cmd SubmitEstimateCommand, actor entities.Actor) (entities.JobCard, error)
	RespondToEstimate(ctx context.Context, jobID string, approved bool, actor entities.Actor) (entities.JobCard, error)
	RespondToParts(ctx context.Context, jobID string, approved bool, actor entities.Actor) (entities.JobCard, error)
	MarkQuotesReceived(ctx context.Context, jobID, rfqID string, actor entities.Actor) (entities.JobCard, error)
	ApplySelectedQuote(ctx context.Context, jobID, rfqID string, quoteTotal decimal.Decimal, actor entities.Actor) (entities.JobCard, error)
	PostUpdate(ctx context.Context, jobID string, cmd PostUpdateCommand, actor entities.Actor) (entities.ProgressUpdate, error)
	Cancel(ctx context.Context, jobID, reason string, actor entities.Actor) (entities.JobCard, error)
	Reopen(ctx context.Context, jobID string, target entities.JobStatus, justification string, actor entities.Actor) (entities.JobCard, error)
	SubmitFeedback(ctx context.Context, jobID string, rating int, comment string, actor entities.Actor) (entities.JobCard, error)
}

type JobCardUseCase struct {
	repo       interfaces.IJobCardRepository
	updateRepo interfaces.IJobUpdateRepository
	publisher  interfaces.IJobEventPublisher
}

var _ IJobCardUseCase = (*JobCardUseCase)(nil)

func NewJobCardUseCase(repo interfaces.IJobCardRepository, updateRepo interfaces.IJobUpdateRepository, publisher interfaces.IJobEventPublisher) *JobCardUseCase {
	return &JobCardUseCase{repo: repo, updateRepo: updateRepo, publisher: publisher}
}

func (u *JobCardUseCase) CreateJob(ctx context.Context, cmd CreateJobCommand) (entities.JobCard, error) {
	cmd.CustomerID = strings.TrimSpace(cmd.CustomerID)
	cmd.VehicleID = strings.TrimSpace(cmd.VehicleID)
	cmd.BranchID = strings.TrimSpace(cmd.BranchID)
	cmd.PickupAddress = strings.TrimSpace(cmd.PickupAddress)

	if cmd.CustomerID == "" {
		return entities.JobCard{}, ErrInvalidCustomerID
	}
	if cmd.VehicleID == "" {
		return entities.JobCard{}, ErrInvalidVehicleID
	}
	if cmd.BranchID == "" {
		return entities.JobCard{}, ErrInvalidBranchID
	}
	if !cmd.ServiceType.Valid() {
		return entities.JobCard{}, ErrInvalidServiceType
	}
	if !cmd.IntakeType.Valid() {
		return entities.JobCard{}, ErrInvalidIntakeType
	}
	if cmd.IntakeType == entities.IntakeTypePickup && cmd.PickupAddress == "" {
		return entities.JobCard{}, ErrMissingPickupAddress
	}

	now := time.Now().UTC()
	number, err := u.generateJobNumber(ctx, now)
	if err != nil {
		log.Printf("[jobcard][usecase] job number allocation failed err=%v", err)
		return entities.JobCard{}, err
	}

	status := entities.JobStatusRequested
	if cmd.ScheduledTime != nil {
		status = entities.JobStatusScheduled
	}

	j := entities.JobCard{
		ID:               uuid.NewString(),
		JobNumber:        number,
		CustomerID:       cmd.CustomerID,
		VehicleID:        cmd.VehicleID,
		BranchID:         cmd.BranchID,
		ServiceType:      cmd.ServiceType,
		IntakeType:       cmd.IntakeType,
		Status:           status,
		PickupAddress:    cmd.PickupAddress,
		ScheduledTime:    cmd.ScheduledTime,
		CustomerNotes:    strings.TrimSpace(cmd.CustomerNotes),
		EstimateApproved: entities.ApprovalPending,
		PartsApproved:    entities.ApprovalPending,
		LabourTotal:      decimal.Zero,
		PartsTotal:       decimal.Zero,
		DiscountAmount:   decimal.Zero,
		AmountPaid:       decimal.Zero,
		Version:          1,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	j.PickupDeliveryFee = decimal.Zero
	j.RecomputeTotals()

	created, err := u.repo.Create(ctx, j)
	if err != nil {
		log.Printf("[jobcard][usecase] create failed job_number=%s err=%v", number, err)
		return entities.JobCard{}, err
	}
	log.Printf("[jobcard][usecase] create success job_id=%s job_number=%s status=%s", created.ID, created.JobNumber, created.Status)

	u.publish(ctx, entities.JobEvent{
		JobID:      created.ID,
		JobNumber:  created.JobNumber,
		Type:       entities.EventJobCreated,
		NewStatus:  created.Status,
		Recipients: []entities.Role{entities.RoleServiceAdvisor, entities.RoleAdmin},
		ActorID:    cmd.CustomerID,
		OccurredAt: now,
	})
	return created, nil
}

func (u *JobCardUseCase) generateJobNumber(ctx context.Context, now time.Time) (string, error) {
	day := now.Format("20060102")
	seq, err := u.repo.NextJobSequence(ctx, day)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("JC%s%04d", day, seq), nil
}

func (u *JobCardUseCase) GetJob(ctx context.Context, jobID string, actor entities.Actor) (entities.JobCard, error) {
	j, err := u.loadJob(ctx, jobID)
	if err != nil {
		return entities.JobCard{}, err
	}
	switch actor.Role {
	case entities.RoleCustomer:
		if actor.ID != j.CustomerID {
			return entities.JobCard{}, ErrRoleNotAuthorized
		}
	case entities.RoleVendor:
		// Vendors interact through the RFQ subsystem, not the job card.
		return entities.JobCard{}, ErrRoleNotAuthorized
	case entities.RoleServiceAdvisor, entities.RoleTechnician, entities.RoleDriver, entities.RoleAdmin:
	default:
		return entities.JobCard{}, ErrInvalidActor
	}

	updates, err := u.updateRepo.ListByJobID(ctx, j.ID)
	if err != nil {
		log.Printf("[jobcard][usecase] updates load failed job_id=%s err=%v", j.ID, err)
		return entities.JobCard{}, err
	}
	if actor.Role == entities.RoleCustomer {
		visible := updates[:0]
		for _, up := range updates {
			if up.Visible {
				visible = append(visible, up)
			}
		}
		updates = visible
	}
	j.Updates = updates
	return j, nil
}

func (u *JobCardUseCase) RequestTransition(ctx context.Context, jobID string, target entities.JobStatus, actor entities.Actor) (entities.JobCard, error) {
	if !target.Valid() {
		return entities.JobCard{}, ErrInvalidTargetStatus
	}
	if err := validateActor(actor); err != nil {
		return entities.JobCard{}, err
	}

	j, err := u.loadJob(ctx, jobID)
	if err != nil {
		return entities.JobCard{}, err
	}

	if code := j.CheckTransition(target, actor); code != "" {
		log.Printf("[jobcard][usecase] transition rejected job_id=%s from=%s to=%s role=%s code=%s", j.ID, j.Status, target, actor.Role, code)
		return entities.JobCard{}, rejectionErr(code)
	}

	now := time.Now().UTC()
	old := j.Status
	j.Status = target
	switch target {
	case entities.JobStatusVehiclePicked:
		j.PickupTime = &now
	case entities.JobStatusDelivered:
		j.DeliveryTime = &now
	case entities.JobStatusClosed:
		j.CompletedAt = &now
	case entities.JobStatusAwaitingPartsApproval, entities.JobStatusQuotesReceived:
		j.PartsApproved = entities.ApprovalPending
	}

	updated, err := u.commit(ctx, j, now)
	if err != nil {
		return entities.JobCard{}, err
	}
	log.Printf("[jobcard][usecase] transition success job_id=%s from=%s to=%s role=%s", updated.ID, old, target, actor.Role)

	u.recordTrail(ctx, updated, actor, fmt.Sprintf("Status changed to %s", target.Label()), old, target, now)
	u.publishStatusChange(ctx, updated, old, actor, now)
	if target == entities.JobStatusRFQSent {
		u.publish(ctx, entities.JobEvent{
			JobID:      updated.ID,
			JobNumber:  updated.JobNumber,
			Type:       entities.EventRFQRequested,
			NewStatus:  target,
			Recipients: []entities.Role{entities.RoleVendor},
			ActorID:    actor.ID,
			OccurredAt: now,
		})
	}
	return updated, nil
}

func (u *JobCardUseCase) SubmitEstimate(ctx context.Context, jobID string, cmd SubmitEstimateCommand, actor entities.Actor) (entities.JobCard, error) {
	if err := validateActor(actor); err != nil {
		return entities.JobCard{}, err
	}
	if actor.Role != entities.RoleServiceAdvisor && actor.Role != entities.RoleAdmin {
		return entities.JobCard{}, ErrRoleNotAuthorized
	}
	if len(cmd.LabourItems) == 0 && len(cmd.PartsItems) == 0 {
		return entities.JobCard{}, ErrEmptyEstimate
	}
	labourTotal, err := sumLines(cmd.LabourItems)
	if err != nil {
		return entities.JobCard{}, err
	}
	partsTotal, err := sumLines(cmd.PartsItems)
	if err != nil {
		return entities.JobCard{}, err
	}
	if cmd.DiscountAmount.IsNegative() {
		return entities.JobCard{}, ErrInvalidDiscount
	}
	if cmd.PickupDeliveryFee.IsNegative() {
		return entities.JobCard{}, ErrInvalidDeliveryFee
	}

	j, err := u.loadJob(ctx, jobID)
	if err != nil {
		return entities.JobCard{}, err
	}
	if j.Status.Terminal() {
		return entities.JobCard{}, ErrJobTerminal
	}
	// Estimates come out of diagnosis; re-submission while the customer is
	// still deciding replaces the pending one.
	if j.Status != entities.JobStatusDiagnosed && j.Status != entities.JobStatusAwaitingEstimateApproval {
		return entities.JobCard{}, ErrInvalidTransition
	}

	now := time.Now().UTC()
	old := j.Status
	j.LabourTotal = labourTotal
	j.PartsTotal = partsTotal
	j.DiscountAmount = cmd.DiscountAmount.Round(2)
	j.PickupDeliveryFee = cmd.PickupDeliveryFee.Round(2)
	j.NeedsParts = partsTotal.GreaterThan(decimal.Zero)
	j.EstimateApproved = entities.ApprovalPending
	j.EstimateApprovedAt = nil
	j.Status = entities.JobStatusAwaitingEstimateApproval
	j.RecomputeTotals()

	updated, err := u.commit(ctx, j, now)
	if err != nil {
		return entities.JobCard{}, err
	}
	log.Printf("[jobcard][usecase] estimate submitted job_id=%s labour=%s parts=%s grand=%s", updated.ID, updated.LabourTotal, updated.PartsTotal, updated.GrandTotal)

	u.recordTrail(ctx, updated, actor, "Estimate ready for approval", old, updated.Status, now)
	u.publish(ctx, entities.JobEvent{
		JobID:      updated.ID,
		JobNumber:  updated.JobNumber,
		Type:       entities.EventEstimateReady,
		OldStatus:  old,
		NewStatus:  updated.Status,
		Recipients: []entities.Role{entities.RoleCustomer},
		ActorID:    actor.ID,
		Detail:     fmt.Sprintf("grand_total=%s %s", updated.GrandTotal, entities.Currency),
		OccurredAt: now,
	})
	return updated, nil
}

func sumLines(lines []EstimateLine) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, l := range lines {
		if l.Quantity <= 0 || l.UnitPrice.IsNegative() {
			return decimal.Zero, ErrInvalidEstimateLine
		}
		total = total.Add(l.UnitPrice.Mul(decimal.NewFromInt(l.Quantity)))
	}
	return total.Round(2), nil
}

func (u *JobCardUseCase) RespondToEstimate(ctx context.Context, jobID string, approved bool, actor entities.Actor) (entities.JobCard, error) {
	if err := validateActor(actor); err != nil {
		return entities.JobCard{}, err
	}
	if actor.Role != entities.RoleCustomer && actor.Role != entities.RoleAdmin {
		return entities.JobCard{}, ErrRoleNotAuthorized
	}

	j, err := u.loadJob(ctx, jobID)
	if err != nil {
		return entities.JobCard{}, err
	}
	if j.Status.Terminal() {
		return entities.JobCard{}, ErrJobTerminal
	}
	if j.Status != entities.JobStatusAwaitingEstimateApproval {
		return entities.JobCard{}, ErrEstimateNotOpen
	}
	if actor.Role == entities.RoleCustomer && actor.ID != j.CustomerID {
		return entities.JobCard{}, ErrRoleNotAuthorized
	}

	now := time.Now().UTC()
	old := j.Status
	detail := "rejected"
	if approved {
		j.EstimateApproved = entities.ApprovalApproved
		j.EstimateApprovedAt = &now
		if code := j.CheckTransition(entities.JobStatusEstimateApproved, actor); code != "" {
			return entities.JobCard{}, rejectionErr(code)
		}
		j.Status = entities.JobStatusEstimateApproved
		detail = "approved"
	} else {
		// Rejection loops back for a revised estimate, it does not cancel.
		j.EstimateApproved = entities.ApprovalRejected
		j.Status = entities.JobStatusDiagnosed
	}

	updated, err := u.commit(ctx, j, now)
	if err != nil {
		return entities.JobCard{}, err
	}
	log.Printf("[jobcard][usecase] estimate %s job_id=%s by=%s", detail, updated.ID, actor.ID)

	u.recordTrail(ctx, updated, actor, fmt.Sprintf("Estimate %s by customer", detail), old, updated.Status, now)
	u.publish(ctx, entities.JobEvent{
		JobID:      updated.ID,
		JobNumber:  updated.JobNumber,
		Type:       entities.EventEstimateRespond,
		OldStatus:  old,
		NewStatus:  updated.Status,
		Recipients: []entities.Role{entities.RoleServiceAdvisor, entities.RoleAdmin},
		ActorID:    actor.ID,
		Detail:     detail,
		OccurredAt: now,
	})
	return updated, nil
}

func (u *JobCardUseCase) RespondToParts(ctx context.Context, jobID string, approved bool, actor entities.Actor) (entities.JobCard, error) {
	if err := validateActor(actor); err != nil {
		return entities.JobCard{}, err
	}
	if actor.Role != entities.RoleCustomer && actor.Role != entities.RoleAdmin {
		return entities.JobCard{}, ErrRoleNotAuthorized
	}

	j, err := u.loadJob(ctx, jobID)
	if err != nil {
		return entities.JobCard{}, err
	}
	if j.Status.Terminal() {
		return entities.JobCard{}, ErrJobTerminal
	}
	if j.Status != entities.JobStatusAwaitingPartsApproval {
		return entities.JobCard{}, ErrPartsNotOpen
	}
	if actor.Role == entities.RoleCustomer && actor.ID != j.CustomerID {
		return entities.JobCard{}, ErrRoleNotAuthorized
	}

	now := time.Now().UTC()
	old := j.Status
	detail := "rejected"
	if approved {
		j.PartsApproved = entities.ApprovalApproved
		j.PartsApprovedAt = &now
		if code := j.CheckTransition(entities.JobStatusPartsApproved, actor); code != "" {
			return entities.JobCard{}, rejectionErr(code)
		}
		j.Status = entities.JobStatusPartsApproved
		detail = "approved"
	} else {
		// Staff can pick another quote and bring the job back.
		j.PartsApproved = entities.ApprovalRejected
		j.Status = entities.JobStatusQuotesReceived
	}

	updated, err := u.commit(ctx, j, now)
	if err != nil {
		return entities.JobCard{}, err
	}
	log.Printf("[jobcard][usecase] parts %s job_id=%s by=%s", detail, updated.ID, actor.ID)

	u.recordTrail(ctx, updated, actor, fmt.Sprintf("Parts quote %s by customer", detail), old, updated.Status, now)
	u.publish(ctx, entities.JobEvent{
		JobID:      updated.ID,
		JobNumber:  updated.JobNumber,
		Type:       entities.EventPartsRespond,
		OldStatus:  old,
		NewStatus:  updated.Status,
		Recipients: []entities.Role{entities.RoleServiceAdvisor, entities.RoleAdmin},
		ActorID:    actor.ID,
		Detail:     detail,
		OccurredAt: now,
	})
	return updated, nil
}

func (u *JobCardUseCase) MarkQuotesReceived(ctx context.Context, jobID, rfqID string, actor entities.Actor) (entities.JobCard, error) {
	rfqID = strings.TrimSpace(rfqID)
	if rfqID == "" {
		return entities.JobCard{}, ErrInvalidRFQID
	}
	if err := validateActor(actor); err != nil {
		return entities.JobCard{}, err
	}

	j, err := u.loadJob(ctx, jobID)
	if err != nil {
		return entities.JobCard{}, err
	}
	j.RFQID = rfqID
	if code := j.CheckTransition(entities.JobStatusQuotesReceived, actor); code != "" {
		return entities.JobCard{}, rejectionErr(code)
	}

	now := time.Now().UTC()
	old := j.Status
	j.Status = entities.JobStatusQuotesReceived

	updated, err := u.commit(ctx, j, now)
	if err != nil {
		return entities.JobCard{}, err
	}
	log.Printf("[jobcard][usecase] quotes received job_id=%s rfq_id=%s", updated.ID, rfqID)

	u.recordTrail(ctx, updated, actor, "Vendor quotes received", old, updated.Status, now)
	u.publishStatusChange(ctx, updated, old, actor, now)
	return updated, nil
}

func (u *JobCardUseCase) ApplySelectedQuote(ctx context.Context, jobID, rfqID string, quoteTotal decimal.Decimal, actor entities.Actor) (entities.JobCard, error) {
	rfqID = strings.TrimSpace(rfqID)
	if rfqID == "" {
		return entities.JobCard{}, ErrInvalidRFQID
	}
	if !quoteTotal.GreaterThan(decimal.Zero) {
		return entities.JobCard{}, ErrInvalidQuoteTotal
	}
	if err := validateActor(actor); err != nil {
		return entities.JobCard{}, err
	}
	if actor.Role != entities.RoleServiceAdvisor && actor.Role != entities.RoleAdmin {
		return entities.JobCard{}, ErrRoleNotAuthorized
	}

	j, err := u.loadJob(ctx, jobID)
	if err != nil {
		return entities.JobCard{}, err
	}
	if j.Status.Terminal() {
		return entities.JobCard{}, ErrJobTerminal
	}
	if j.Status != entities.JobStatusQuotesReceived {
		return entities.JobCard{}, ErrQuotesNotOpen
	}

	now := time.Now().UTC()
	old := j.Status
	j.RFQID = rfqID
	j.PartsTotal = quoteTotal.Round(2)
	j.PartsApproved = entities.ApprovalPending
	j.PartsApprovedAt = nil
	j.Status = entities.JobStatusAwaitingPartsApproval
	j.RecomputeTotals()

	updated, err := u.commit(ctx, j, now)
	if err != nil {
		return entities.JobCard{}, err
	}
	log.Printf("[jobcard][usecase] quote selected job_id=%s rfq_id=%s parts_total=%s grand=%s", updated.ID, rfqID, updated.PartsTotal, updated.GrandTotal)

	u.recordTrail(ctx, updated, actor, "Parts quote ready for approval", old, updated.Status, now)
	u.publish(ctx, entities.JobEvent{
		JobID:      updated.ID,
		JobNumber:  updated.JobNumber,
		Type:       entities.EventPartsQuoteReady,
		OldStatus:  old,
		NewStatus:  updated.Status,
		Recipients: []entities.Role{entities.RoleCustomer},
		ActorID:    actor.ID,
		Detail:     fmt.Sprintf("parts_total=%s %s", updated.PartsTotal, entities.Currency),
		OccurredAt: now,
	})
	return updated, nil
}

func (u *JobCardUseCase) PostUpdate(ctx context.Context, jobID string, cmd PostUpdateCommand, actor entities.Actor) (entities.ProgressUpdate, error) {
	cmd.Title = strings.TrimSpace(cmd.Title)
	if cmd.Title == "" {
		return entities.ProgressUpdate{}, ErrInvalidUpdateTitle
	}
	if err := validateActor(actor); err != nil {
		return entities.ProgressUpdate{}, err
	}
	switch actor.Role {
	case entities.RoleServiceAdvisor, entities.RoleTechnician, entities.RoleDriver, entities.RoleAdmin:
	default:
		return entities.ProgressUpdate{}, ErrRoleNotAuthorized
	}

	j, err := u.loadJob(ctx, jobID)
	if err != nil {
		return entities.ProgressUpdate{}, err
	}
	if j.Status.Terminal() {
		return entities.ProgressUpdate{}, ErrJobTerminal
	}

	now := time.Now().UTC()
	up := entities.ProgressUpdate{
		ID:          uuid.NewString(),
		JobCardID:   j.ID,
		CreatedByID: actor.ID,
		Title:       cmd.Title,
		Message:     strings.TrimSpace(cmd.Message),
		MediaURLs:   cmd.MediaURLs,
		Visible:     cmd.Visible,
		CreatedAt:   now,
	}
	created, err := u.updateRepo.Append(ctx, up)
	if err != nil {
		log.Printf("[jobcard][usecase] update append failed job_id=%s err=%v", j.ID, err)
		return entities.ProgressUpdate{}, err
	}
	log.Printf("[jobcard][usecase] update posted job_id=%s update_id=%s visible=%t", j.ID, created.ID, created.Visible)

	if created.Visible {
		u.publish(ctx, entities.JobEvent{
			JobID:      j.ID,
			JobNumber:  j.JobNumber,
			Type:       entities.EventJobUpdatePosted,
			Recipients: []entities.Role{entities.RoleCustomer},
			ActorID:    actor.ID,
			Detail:     created.Title,
			OccurredAt: now,
		})
	}
	return created, nil
}

func (u *JobCardUseCase) Cancel(ctx context.Context, jobID, reason string, actor entities.Actor) (entities.JobCard, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return entities.JobCard{}, ErrMissingCancelReason
	}
	if err := validateActor(actor); err != nil {
		return entities.JobCard{}, err
	}

	j, err := u.loadJob(ctx, jobID)
	if err != nil {
		return entities.JobCard{}, err
	}
	if code := j.CanCancel(actor); code != "" {
		log.Printf("[jobcard][usecase] cancel rejected job_id=%s status=%s role=%s code=%s", j.ID, j.Status, actor.Role, code)
		return entities.JobCard{}, rejectionErr(code)
	}

	now := time.Now().UTC()
	old := j.Status
	j.Status = entities.JobStatusCancelled
	j.CancelReason = reason

	updated, err := u.commit(ctx, j, now)
	if err != nil {
		return entities.JobCard{}, err
	}
	log.Printf("[jobcard][usecase] cancelled job_id=%s from=%s by=%s", updated.ID, old, actor.ID)

	u.recordTrail(ctx, updated, actor, "Job cancelled: "+reason, old, updated.Status, now)
	u.publish(ctx, entities.JobEvent{
		JobID:      updated.ID,
		JobNumber:  updated.JobNumber,
		Type:       entities.EventJobCancelled,
		OldStatus:  old,
		NewStatus:  updated.Status,
		Recipients: []entities.Role{entities.RoleCustomer, entities.RoleServiceAdvisor, entities.RoleAdmin},
		ActorID:    actor.ID,
		Detail:     reason,
		OccurredAt: now,
	})
	return updated, nil
}

// Reopen is the admin-only escape hatch for moving a job backward (e.g.
// testing back to in_service for rework). Cancelled jobs stay cancelled.
func (u *JobCardUseCase) Reopen(ctx context.Context, jobID string, target entities.JobStatus, justification string, actor entities.Actor) (entities.JobCard, error) {
	justification = strings.TrimSpace(justification)
	if justification == "" {
		return entities.JobCard{}, ErrMissingJustification
	}
	if !target.Valid() || target.Terminal() {
		return entities.JobCard{}, ErrInvalidTargetStatus
	}
	if err := validateActor(actor); err != nil {
		return entities.JobCard{}, err
	}
	if actor.Role != entities.RoleAdmin {
		return entities.JobCard{}, ErrRoleNotAuthorized
	}

	j, err := u.loadJob(ctx, jobID)
	if err != nil {
		return entities.JobCard{}, err
	}
	if j.Status == entities.JobStatusCancelled {
		return entities.JobCard{}, ErrJobTerminal
	}

	now := time.Now().UTC()
	old := j.Status
	j.Status = target

	updated, err := u.commit(ctx, j, now)
	if err != nil {
		return entities.JobCard{}, err
	}
	log.Printf("[jobcard][usecase] reopened job_id=%s from=%s to=%s by=%s", updated.ID, old, target, actor.ID)

	u.recordTrail(ctx, updated, actor, "Reopened: "+justification, old, target, now)
	u.publishStatusChange(ctx, updated, old, actor, now)
	return updated, nil
}

func (u *JobCardUseCase) SubmitFeedback(ctx context.Context, jobID string, rating int, comment string, actor entities.Actor) (entities.JobCard, error) {
	if rating < 1 || rating > 5 {
		return entities.JobCard{}, ErrInvalidRating
	}
	if err := validateActor(actor); err != nil {
		return entities.JobCard{}, err
	}
	if actor.Role != entities.RoleCustomer && actor.Role != entities.RoleAdmin {
		return entities.JobCard{}, ErrRoleNotAuthorized
	}

	j, err := u.loadJob(ctx, jobID)
	if err != nil {
		return entities.JobCard{}, err
	}
	if actor.Role == entities.RoleCustomer && actor.ID != j.CustomerID {
		return entities.JobCard{}, ErrRoleNotAuthorized
	}
	if j.Status != entities.JobStatusDelivered && j.Status != entities.JobStatusClosed {
		return entities.JobCard{}, ErrFeedbackNotOpen
	}

	now := time.Now().UTC()
	old := j.Status
	j.CustomerRating = rating
	j.CustomerFeedback = strings.TrimSpace(comment)
	j.FeedbackSubmittedAt = &now
	if j.Status == entities.JobStatusDelivered {
		j.Status = entities.JobStatusClosed
		j.CompletedAt = &now
	}

	updated, err := u.commit(ctx, j, now)
	if err != nil {
		return entities.JobCard{}, err
	}
	log.Printf("[jobcard][usecase] feedback submitted job_id=%s rating=%d", updated.ID, rating)

	if updated.Status != old {
		u.recordTrail(ctx, updated, actor, "Job closed after customer feedback", old, updated.Status, now)
		u.publishStatusChange(ctx, updated, old, actor, now)
	}
	return updated, nil
}

func (u *JobCardUseCase) loadJob(ctx context.Context, jobID string) (entities.JobCard, error) {
	jobID = strings.TrimSpace(jobID)
	if jobID == "" {
		return entities.JobCard{}, ErrInvalidJobID
	}
	j, err := u.repo.GetByID(ctx, jobID)
	if err != nil {
		return entities.JobCard{}, err
	}
	if j.ID == "" {
		return entities.JobCard{}, ErrJobNotFound
	}
	if err := j.VerifyTotals(); err != nil {
		// Data-integrity failure; surfaced, never auto-corrected.
		log.Printf("[jobcard][usecase] totals mismatch job_id=%s err=%v", j.ID, err)
		return entities.JobCard{}, err
	}
	return j, nil
}

// commit persists the mutated aggregate conditioned on the version it was
// read at. A conflict means another writer won; the caller must re-fetch.
func (u *JobCardUseCase) commit(ctx context.Context, j entities.JobCard, now time.Time) (entities.JobCard, error) {
	expected := j.Version
	j.Touch(now)
	updated, err := u.repo.Update(ctx, j, expected)
	if err != nil {
		if errors.Is(err, interfaces.ErrVersionConflict) {
			log.Printf("[jobcard][usecase] version conflict job_id=%s expected=%d", j.ID, expected)
			return entities.JobCard{}, ErrConcurrentModification
		}
		log.Printf("[jobcard][usecase] update failed job_id=%s err=%v", j.ID, err)
		return entities.JobCard{}, err
	}
	return updated, nil
}

// recordTrail appends the status trail entry after the transition committed.
// Failures are logged only; the trail is a side effect, not part of the commit.
func (u *JobCardUseCase) recordTrail(ctx context.Context, j entities.JobCard, actor entities.Actor, title string, from, to entities.JobStatus, now time.Time) {
	_, err := u.updateRepo.Append(ctx, entities.ProgressUpdate{
		ID:          uuid.NewString(),
		JobCardID:   j.ID,
		CreatedByID: actor.ID,
		Title:       title,
		Message:     title,
		Visible:     true,
		OldStatus:   from,
		NewStatus:   to,
		CreatedAt:   now,
	})
	if err != nil {
		log.Printf("[jobcard][usecase] trail append failed job_id=%s err=%v", j.ID, err)
	}
}

func (u *JobCardUseCase) publishStatusChange(ctx context.Context, j entities.JobCard, old entities.JobStatus, actor entities.Actor, now time.Time) {
	recipients := []entities.Role{entities.RoleCustomer}
	switch j.Status {
	case entities.JobStatusReady, entities.JobStatusOutForDelivery:
		recipients = append(recipients, entities.RoleDriver)
	}
	u.publish(ctx, entities.JobEvent{
		JobID:      j.ID,
		JobNumber:  j.JobNumber,
		Type:       entities.EventStatusChanged,
		OldStatus:  old,
		NewStatus:  j.Status,
		Recipients: recipients,
		ActorID:    actor.ID,
		OccurredAt: now,
	})
}

// publish hands the event to the outbox. Errors never propagate; the
// transition is already committed.
func (u *JobCardUseCase) publish(ctx context.Context, ev entities.JobEvent) {
	if u.publisher == nil {
		return
	}
	if err := u.publisher.Publish(ctx, ev); err != nil {
		log.Printf("[jobcard][usecase] event publish failed job_id=%s type=%s err=%v", ev.JobID, ev.Type, err)
	}
}

func validateActor(actor entities.Actor) error {
	if strings.TrimSpace(actor.ID) == "" || !actor.Role.Valid() {
		return ErrInvalidActor
	}
	return nil
}
