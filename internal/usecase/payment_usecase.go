package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"garagehub/internal/domain/entities"
	"garagehub/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidPaymentAmount       = errors.New("invalid payment amount")
	ErrInvalidPaymentMethod       = errors.New("invalid payment method")
	ErrPaymentNotOpen             = errors.New("job is not awaiting payment")
	ErrPaymentExceedsBalance      = errors.New("payment exceeds balance due")
	ErrReversalExceedsPaid        = errors.New("reversal exceeds amount paid")
	ErrInvalidGatewayPayload      = errors.New("invalid payment gateway payload")
	ErrPaymentGatewayDeclined     = errors.New("payment gateway declined the charge")
	ErrPaymentGatewayUnauthorized = errors.New("payment gateway unauthorized")
	ErrGatewayNotConfigured       = errors.New("payment gateway not configured")
)

// IPaymentUseCase records money against a job card. Recording re-derives
// amount_paid/balance_due and performs the paid/partially_paid
// auto-transition as part of the same commit.

type IPaymentUseCase interface {
	RecordPayment(ctx context.Context, jobID string, amount decimal.Decimal, method entities.PaymentMethod, notes string, actor entities.Actor) (entities.JobCard, error)
	CreateOnlinePayment(ctx context.Context, jobID string, gatewayPayload json.RawMessage, actor entities.Actor) (entities.JobCard, error)
	ListByJobID(ctx context.Context, jobID string) ([]entities.Payment, error)
}

type PaymentUseCase struct {
	jobRepo     interfaces.IJobCardRepository
	paymentRepo interfaces.IPaymentRepository
	publisher   interfaces.IJobEventPublisher
	gateway     interfaces.IPaymentGateway
}

var _ IPaymentUseCase = (*PaymentUseCase)(nil)

func NewPaymentUseCase(jobRepo interfaces.IJobCardRepository, paymentRepo interfaces.IPaymentRepository, publisher interfaces.IJobEventPublisher, gateway interfaces.IPaymentGateway) *PaymentUseCase {
	return &PaymentUseCase{jobRepo: jobRepo, paymentRepo: paymentRepo, publisher: publisher, gateway: gateway}
}

func (u *PaymentUseCase) RecordPayment(ctx context.Context, jobID string, amount decimal.Decimal, method entities.PaymentMethod, notes string, actor entities.Actor) (entities.JobCard, error) {
	entry := entities.Payment{
		Amount: amount.Round(2),
		Method: method,
		Notes:  strings.TrimSpace(notes),
	}
	return u.record(ctx, jobID, entry, actor)
}

func (u *PaymentUseCase) record(ctx context.Context, jobID string, entry entities.Payment, actor entities.Actor) (entities.JobCard, error) {
	jobID = strings.TrimSpace(jobID)
	if jobID == "" {
		return entities.JobCard{}, ErrInvalidJobID
	}
	if err := validateActor(actor); err != nil {
		return entities.JobCard{}, err
	}
	if entry.Amount.IsZero() {
		return entities.JobCard{}, ErrInvalidPaymentAmount
	}
	if !entry.Method.Valid() {
		return entities.JobCard{}, ErrInvalidPaymentMethod
	}
	entry.Reversal = entry.Amount.IsNegative()
	switch actor.Role {
	case entities.RoleServiceAdvisor:
		// Reversals are an admin correction, staff only record money in.
		if entry.Reversal {
			return entities.JobCard{}, ErrRoleNotAuthorized
		}
	case entities.RoleCustomer:
		// Customers only settle their own balance through the gateway.
		if entry.Reversal || entry.Method != entities.PaymentMethodOnline {
			return entities.JobCard{}, ErrRoleNotAuthorized
		}
	case entities.RoleAdmin:
	default:
		return entities.JobCard{}, ErrRoleNotAuthorized
	}

	log.Printf("[payment][usecase] record start job_id=%s amount=%s method=%s role=%s", jobID, entry.Amount, entry.Method, actor.Role)

	j, err := u.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return entities.JobCard{}, err
	}
	if j.ID == "" {
		return entities.JobCard{}, ErrJobNotFound
	}
	if err := j.VerifyTotals(); err != nil {
		log.Printf("[payment][usecase] totals mismatch job_id=%s err=%v", j.ID, err)
		return entities.JobCard{}, err
	}
	if j.Status.Terminal() {
		return entities.JobCard{}, ErrJobTerminal
	}
	if actor.Role == entities.RoleCustomer && actor.ID != j.CustomerID {
		return entities.JobCard{}, ErrRoleNotAuthorized
	}

	if entry.Reversal {
		if entry.Amount.Abs().GreaterThan(j.AmountPaid) {
			return entities.JobCard{}, ErrReversalExceedsPaid
		}
	} else {
		if j.Status != entities.JobStatusAwaitingPayment && j.Status != entities.JobStatusPartiallyPaid {
			return entities.JobCard{}, ErrPaymentNotOpen
		}
		if entry.Amount.GreaterThan(j.BalanceDue) {
			return entities.JobCard{}, ErrPaymentExceedsBalance
		}
	}

	now := time.Now().UTC()
	old := j.Status
	next, changed := j.ApplyPayment(entry.Amount)
	if changed {
		// Reversals never move status; forward progress stays forward.
		if !entry.Reversal {
			j.Status = next
		}
	}

	entry.ID = uuid.NewString()
	entry.PaymentNumber = generatePaymentNumber(now)
	entry.JobCardID = j.ID
	entry.Currency = entities.Currency
	entry.RecordedByID = actor.ID
	entry.CreatedAt = now

	expected := j.Version
	j.Touch(now)
	updated, err := u.jobRepo.CommitPayment(ctx, j, expected, entry)
	if err != nil {
		if errors.Is(err, interfaces.ErrVersionConflict) {
			log.Printf("[payment][usecase] version conflict job_id=%s expected=%d", j.ID, expected)
			return entities.JobCard{}, ErrConcurrentModification
		}
		log.Printf("[payment][usecase] commit failed job_id=%s payment_id=%s err=%v", j.ID, entry.ID, err)
		return entities.JobCard{}, err
	}
	log.Printf("[payment][usecase] record success job_id=%s payment_id=%s amount=%s paid=%s balance=%s status=%s",
		updated.ID, entry.ID, entry.Amount, updated.AmountPaid, updated.BalanceDue, updated.Status)

	u.publish(ctx, entities.JobEvent{
		JobID:      updated.ID,
		JobNumber:  updated.JobNumber,
		Type:       entities.EventPaymentReceived,
		OldStatus:  old,
		NewStatus:  updated.Status,
		Recipients: []entities.Role{entities.RoleCustomer, entities.RoleServiceAdvisor},
		ActorID:    actor.ID,
		Detail:     fmt.Sprintf("amount=%s %s balance_due=%s", entry.Amount, entities.Currency, updated.BalanceDue),
		OccurredAt: now,
	})
	if updated.Status != old {
		u.publish(ctx, entities.JobEvent{
			JobID:      updated.ID,
			JobNumber:  updated.JobNumber,
			Type:       entities.EventStatusChanged,
			OldStatus:  old,
			NewStatus:  updated.Status,
			Recipients: []entities.Role{entities.RoleCustomer},
			ActorID:    actor.ID,
			OccurredAt: now,
		})
	}
	return updated, nil
}

// CreateOnlinePayment charges the job's open balance through the external
// gateway, then records the result through the same ledger path as a cash
// payment. The amount charged is always the balance due held in the job card,
// never the caller payload.
func (u *PaymentUseCase) CreateOnlinePayment(ctx context.Context, jobID string, gatewayPayload json.RawMessage, actor entities.Actor) (entities.JobCard, error) {
	jobID = strings.TrimSpace(jobID)
	if jobID == "" {
		return entities.JobCard{}, ErrInvalidJobID
	}
	if err := validateActor(actor); err != nil {
		return entities.JobCard{}, err
	}
	mockMode := isPaymentGatewayMockEnabled()
	if len(gatewayPayload) == 0 || !json.Valid(gatewayPayload) {
		if !mockMode {
			return entities.JobCard{}, ErrInvalidGatewayPayload
		}
		gatewayPayload = json.RawMessage("{}")
	}
	if u.gateway == nil {
		return entities.JobCard{}, ErrGatewayNotConfigured
	}

	j, err := u.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return entities.JobCard{}, err
	}
	if j.ID == "" {
		return entities.JobCard{}, ErrJobNotFound
	}
	if j.Status.Terminal() {
		return entities.JobCard{}, ErrJobTerminal
	}
	if j.Status != entities.JobStatusAwaitingPayment && j.Status != entities.JobStatusPartiallyPaid {
		return entities.JobCard{}, ErrPaymentNotOpen
	}
	if actor.Role == entities.RoleCustomer && actor.ID != j.CustomerID {
		return entities.JobCard{}, ErrRoleNotAuthorized
	}

	// The source of truth for the charge amount is the job card in DB.
	var reqMap map[string]any
	if err := json.Unmarshal(gatewayPayload, &reqMap); err != nil {
		return entities.JobCard{}, ErrInvalidGatewayPayload
	}
	amount, _ := j.BalanceDue.Float64()
	reqMap["transaction_amount"] = amount
	if _, ok := reqMap["external_reference"]; !ok {
		reqMap["external_reference"] = j.ID
	}
	if _, ok := reqMap["description"]; !ok {
		reqMap["description"] = fmt.Sprintf("Job %s", j.JobNumber)
	}
	enriched, err := json.Marshal(reqMap)
	if err != nil {
		return entities.JobCard{}, err
	}

	log.Printf("[payment][usecase] gateway charge start job_id=%s amount=%s", j.ID, j.BalanceDue)
	providerID, providerStatus, providerResp, err := u.gateway.CreatePayment(ctx, enriched)
	if err != nil {
		log.Printf("[payment][usecase] gateway charge failed job_id=%s err=%v", j.ID, err)
		if isGatewayUnauthorized(err) {
			return entities.JobCard{}, ErrPaymentGatewayUnauthorized
		}
		return entities.JobCard{}, err
	}
	if providerStatus != "approved" {
		log.Printf("[payment][usecase] gateway declined job_id=%s provider_status=%s", j.ID, providerStatus)
		return entities.JobCard{}, ErrPaymentGatewayDeclined
	}
	log.Printf("[payment][usecase] gateway charge success job_id=%s provider_payment_id=%s", j.ID, providerID)

	entry := entities.Payment{
		Amount:               j.BalanceDue,
		Method:               entities.PaymentMethodOnline,
		GatewayTransactionID: providerID,
		GatewayResponseRaw:   providerResp,
	}
	// Re-read inside record so a racing cash payment surfaces as a conflict
	// instead of a double credit.
	return u.record(ctx, jobID, entry, actor)
}

func (u *PaymentUseCase) ListByJobID(ctx context.Context, jobID string) ([]entities.Payment, error) {
	jobID = strings.TrimSpace(jobID)
	if jobID == "" {
		return nil, ErrInvalidJobID
	}
	return u.paymentRepo.ListByJobID(ctx, jobID)
}

func (u *PaymentUseCase) publish(ctx context.Context, ev entities.JobEvent) {
	if u.publisher == nil {
		return
	}
	if err := u.publisher.Publish(ctx, ev); err != nil {
		log.Printf("[payment][usecase] event publish failed job_id=%s type=%s err=%v", ev.JobID, ev.Type, err)
	}
}

func generatePaymentNumber(now time.Time) string {
	return "PAY" + now.Format("20060102") + strconv.FormatInt(now.UnixNano()%1e6, 10)
}

func isPaymentGatewayMockEnabled() bool {
	for _, key := range []string{"PAYMENT_GATEWAY_MOCK", "MERCADOPAGO_MOCK"} {
		v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
		switch v {
		case "1", "true", "yes", "on", "mock":
			return true
		}
	}
	return false
}

func isGatewayUnauthorized(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "\"error\":\"unauthorized\"") || strings.Contains(msg, "\"status\":401")
}
