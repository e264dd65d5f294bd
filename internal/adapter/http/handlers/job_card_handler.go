package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"

	request "garagehub/internal/adapter/http/dto/request"
	response "garagehub/internal/adapter/http/dto/response"
	"garagehub/internal/domain/entities"
	"garagehub/internal/usecase"
	"garagehub/pkg"

	"github.com/gin-gonic/gin"
)

var errInvalidJobPayload = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)

// JobCardHandler handles HTTP requests for the job-card engine.

type JobCardHandler struct {
	usecase usecase.IJobCardUseCase
}

func NewJobCardHandler(uc usecase.IJobCardUseCase) *JobCardHandler {
	return &JobCardHandler{usecase: uc}
}

// CreateJob books a new job card.
func (h *JobCardHandler) CreateJob(c *gin.Context) {
	var payload request.CreateJobCardRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidJobPayload.HTTPStatus, errInvalidJobPayload.ToHTTPError())
		return
	}

	created, err := h.usecase.CreateJob(c.Request.Context(), payload.ToCommand())
	if err != nil {
		log.Printf("[jobcard][handler] create failed customer_id=%s err=%v", payload.CustomerID, err)
		appErr := mapJobCardError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[jobcard][handler] create success job_id=%s job_number=%s", created.ID, created.JobNumber)

	c.JSON(http.StatusCreated, response.FromJobCard(created))
}

// GetJob returns one job card with its progress trail. Customers only see
// their own jobs and customer-visible updates.
func (h *JobCardHandler) GetJob(c *gin.Context) {
	actor, ok := actorFromHeaders(c)
	if !ok {
		return
	}
	jobID := c.Param("job_id")

	j, err := h.usecase.GetJob(c.Request.Context(), jobID, actor)
	if err != nil {
		appErr := mapJobCardError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromJobCard(j))
}

// ListTransitions returns the forward targets reachable from the job's
// current status, before role and gate checks.
func (h *JobCardHandler) ListTransitions(c *gin.Context) {
	actor, ok := actorFromHeaders(c)
	if !ok {
		return
	}
	jobID := c.Param("job_id")

	j, err := h.usecase.GetJob(c.Request.Context(), jobID, actor)
	if err != nil {
		appErr := mapJobCardError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromTransitions(j.Status, entities.ValidTransitionsFrom(j.Status)))
}

// RequestTransition moves the job to the requested target status.
func (h *JobCardHandler) RequestTransition(c *gin.Context) {
	actor, ok := actorFromHeaders(c)
	if !ok {
		return
	}
	jobID := c.Param("job_id")

	var payload request.TransitionRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidJobPayload.HTTPStatus, errInvalidJobPayload.ToHTTPError())
		return
	}
	log.Printf("[jobcard][handler] transition start job_id=%s target=%s role=%s", jobID, payload.TargetStatus, actor.Role)

	updated, err := h.usecase.RequestTransition(c.Request.Context(), jobID, payload.Target(), actor)
	if err != nil {
		log.Printf("[jobcard][handler] transition failed job_id=%s target=%s err=%v", jobID, payload.TargetStatus, err)
		appErr := mapJobCardError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromJobCard(updated))
}

// SubmitEstimate records the staff cost breakdown and moves the job to
// awaiting_estimate_approval.
func (h *JobCardHandler) SubmitEstimate(c *gin.Context) {
	actor, ok := actorFromHeaders(c)
	if !ok {
		return
	}
	jobID := c.Param("job_id")

	var payload request.SubmitEstimateRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidJobPayload.HTTPStatus, errInvalidJobPayload.ToHTTPError())
		return
	}

	updated, err := h.usecase.SubmitEstimate(c.Request.Context(), jobID, payload.ToCommand(), actor)
	if err != nil {
		log.Printf("[jobcard][handler] estimate submit failed job_id=%s err=%v", jobID, err)
		appErr := mapJobCardError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromJobCard(updated))
}

// RespondToEstimate records the customer decision on a pending estimate.
func (h *JobCardHandler) RespondToEstimate(c *gin.Context) {
	h.respondToApproval(c, h.usecase.RespondToEstimate)
}

// RespondToParts records the customer decision on a pending parts quote.
func (h *JobCardHandler) RespondToParts(c *gin.Context) {
	h.respondToApproval(c, h.usecase.RespondToParts)
}

func (h *JobCardHandler) respondToApproval(
	c *gin.Context,
	respond func(ctx context.Context, jobID string, approved bool, actor entities.Actor) (entities.JobCard, error),
) {
	actor, ok := actorFromHeaders(c)
	if !ok {
		return
	}
	jobID := c.Param("job_id")

	var payload request.ApprovalRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidJobPayload.HTTPStatus, errInvalidJobPayload.ToHTTPError())
		return
	}
	approved, valid := payload.Resolve()
	if !valid {
		c.JSON(errInvalidJobPayload.HTTPStatus, errInvalidJobPayload.ToHTTPError())
		return
	}

	updated, err := respond(c.Request.Context(), jobID, approved, actor)
	if err != nil {
		log.Printf("[jobcard][handler] approval response failed job_id=%s decision=%s err=%v", jobID, payload.Decision, err)
		appErr := mapJobCardError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromJobCard(updated))
}

// MarkQuotesReceived links a vendor RFQ round to the job and moves it to
// quotes_received.
func (h *JobCardHandler) MarkQuotesReceived(c *gin.Context) {
	actor, ok := actorFromHeaders(c)
	if !ok {
		return
	}
	jobID := c.Param("job_id")

	var payload request.QuotesReceivedRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidJobPayload.HTTPStatus, errInvalidJobPayload.ToHTTPError())
		return
	}

	updated, err := h.usecase.MarkQuotesReceived(c.Request.Context(), jobID, payload.RFQID, actor)
	if err != nil {
		log.Printf("[jobcard][handler] quotes received failed job_id=%s rfq_id=%s err=%v", jobID, payload.RFQID, err)
		appErr := mapJobCardError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromJobCard(updated))
}

// SelectQuote folds the chosen vendor quote into the parts total and moves
// the job to awaiting_parts_approval.
func (h *JobCardHandler) SelectQuote(c *gin.Context) {
	actor, ok := actorFromHeaders(c)
	if !ok {
		return
	}
	jobID := c.Param("job_id")

	var payload request.SelectQuoteRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidJobPayload.HTTPStatus, errInvalidJobPayload.ToHTTPError())
		return
	}

	updated, err := h.usecase.ApplySelectedQuote(c.Request.Context(), jobID, payload.RFQID, payload.QuoteTotal, actor)
	if err != nil {
		log.Printf("[jobcard][handler] quote selection failed job_id=%s rfq_id=%s err=%v", jobID, payload.RFQID, err)
		appErr := mapJobCardError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromJobCard(updated))
}

// PostUpdate appends one progress-trail entry.
func (h *JobCardHandler) PostUpdate(c *gin.Context) {
	actor, ok := actorFromHeaders(c)
	if !ok {
		return
	}
	jobID := c.Param("job_id")

	var payload request.PostUpdateRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidJobPayload.HTTPStatus, errInvalidJobPayload.ToHTTPError())
		return
	}

	created, err := h.usecase.PostUpdate(c.Request.Context(), jobID, payload.ToCommand(), actor)
	if err != nil {
		log.Printf("[jobcard][handler] post update failed job_id=%s err=%v", jobID, err)
		appErr := mapJobCardError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusCreated, response.FromProgressUpdate(created))
}

// CancelJob cancels a non-terminal job under the cancellation policy.
func (h *JobCardHandler) CancelJob(c *gin.Context) {
	actor, ok := actorFromHeaders(c)
	if !ok {
		return
	}
	jobID := c.Param("job_id")

	var payload request.CancelJobRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidJobPayload.HTTPStatus, errInvalidJobPayload.ToHTTPError())
		return
	}

	updated, err := h.usecase.Cancel(c.Request.Context(), jobID, payload.Reason, actor)
	if err != nil {
		log.Printf("[jobcard][handler] cancel failed job_id=%s err=%v", jobID, err)
		appErr := mapJobCardError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromJobCard(updated))
}

// ReopenJob is the admin escape hatch for moving a job backward with a
// justification. Cancelled jobs stay cancelled.
func (h *JobCardHandler) ReopenJob(c *gin.Context) {
	actor, ok := actorFromHeaders(c)
	if !ok {
		return
	}
	jobID := c.Param("job_id")

	var payload request.ReopenJobRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidJobPayload.HTTPStatus, errInvalidJobPayload.ToHTTPError())
		return
	}
	log.Printf("[jobcard][handler] reopen start job_id=%s target=%s by=%s", jobID, payload.TargetStatus, actor.ID)

	updated, err := h.usecase.Reopen(c.Request.Context(), jobID, payload.Target(), payload.Justification, actor)
	if err != nil {
		log.Printf("[jobcard][handler] reopen failed job_id=%s target=%s err=%v", jobID, payload.TargetStatus, err)
		appErr := mapJobCardError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromJobCard(updated))
}

// SubmitFeedback records the customer rating after delivery and closes the job.
func (h *JobCardHandler) SubmitFeedback(c *gin.Context) {
	actor, ok := actorFromHeaders(c)
	if !ok {
		return
	}
	jobID := c.Param("job_id")

	var payload request.FeedbackRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidJobPayload.HTTPStatus, errInvalidJobPayload.ToHTTPError())
		return
	}

	updated, err := h.usecase.SubmitFeedback(c.Request.Context(), jobID, payload.Rating, payload.Comment, actor)
	if err != nil {
		log.Printf("[jobcard][handler] feedback failed job_id=%s err=%v", jobID, err)
		appErr := mapJobCardError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromJobCard(updated))
}

// ListStatuses returns the status catalog in canonical order.
func (h *JobCardHandler) ListStatuses(c *gin.Context) {
	statuses := entities.StatusesInOrder()
	out := make([]response.StatusInfoResponse, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, response.FromStatusInfo(s))
	}
	c.JSON(http.StatusOK, out)
}

func mapJobCardError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidJobID), errors.Is(err, usecase.ErrInvalidActor),
		errors.Is(err, usecase.ErrInvalidCustomerID), errors.Is(err, usecase.ErrInvalidVehicleID),
		errors.Is(err, usecase.ErrInvalidBranchID), errors.Is(err, usecase.ErrInvalidServiceType),
		errors.Is(err, usecase.ErrInvalidIntakeType), errors.Is(err, usecase.ErrMissingPickupAddress),
		errors.Is(err, usecase.ErrInvalidTargetStatus), errors.Is(err, usecase.ErrEmptyEstimate),
		errors.Is(err, usecase.ErrInvalidEstimateLine), errors.Is(err, usecase.ErrInvalidDiscount),
		errors.Is(err, usecase.ErrInvalidDeliveryFee), errors.Is(err, usecase.ErrInvalidRFQID),
		errors.Is(err, usecase.ErrInvalidQuoteTotal), errors.Is(err, usecase.ErrInvalidUpdateTitle),
		errors.Is(err, usecase.ErrMissingJustification), errors.Is(err, usecase.ErrMissingCancelReason),
		errors.Is(err, usecase.ErrInvalidRating):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrJobNotFound):
		return pkg.NewDomainErrorSimple("JOB_NOT_FOUND", "Job card not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrInvalidTransition):
		return pkg.NewDomainErrorSimple("INVALID_TRANSITION", "Transition not allowed from the current status", http.StatusConflict)
	case errors.Is(err, usecase.ErrRoleNotAuthorized):
		return pkg.NewDomainErrorSimple("ROLE_NOT_AUTHORIZED", "Actor role is not authorized for this operation", http.StatusForbidden)
	case errors.Is(err, usecase.ErrApprovalGateUnmet):
		return pkg.NewDomainErrorSimple("APPROVAL_GATE_UNMET", "Required customer approval has not been given", http.StatusConflict)
	case errors.Is(err, usecase.ErrPaymentGateUnmet):
		return pkg.NewDomainErrorSimple("PAYMENT_GATE_UNMET", "Payment requirements for this transition are not met", http.StatusConflict)
	case errors.Is(err, usecase.ErrJobTerminal):
		return pkg.NewDomainErrorSimple("JOB_TERMINAL", "Job card is in a terminal status", http.StatusConflict)
	case errors.Is(err, usecase.ErrConcurrentModification):
		return pkg.NewDomainErrorSimple("CONCURRENT_MODIFICATION", "Job card was modified concurrently, retry with fresh state", http.StatusConflict)
	case errors.Is(err, usecase.ErrEstimateNotOpen):
		return pkg.NewDomainErrorSimple("ESTIMATE_NOT_OPEN", "Job is not awaiting estimate approval", http.StatusConflict)
	case errors.Is(err, usecase.ErrPartsNotOpen):
		return pkg.NewDomainErrorSimple("PARTS_NOT_OPEN", "Job is not awaiting parts approval", http.StatusConflict)
	case errors.Is(err, usecase.ErrQuotesNotOpen):
		return pkg.NewDomainErrorSimple("QUOTES_NOT_OPEN", "Job has no quotes pending selection", http.StatusConflict)
	case errors.Is(err, usecase.ErrFeedbackNotOpen):
		return pkg.NewDomainErrorSimple("FEEDBACK_NOT_OPEN", "Feedback is only accepted after delivery", http.StatusConflict)
	case errors.Is(err, entities.ErrFinancialMismatch):
		return pkg.NewDomainError("FINANCIAL_MISMATCH", "Stored totals failed verification", err, http.StatusInternalServerError)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
