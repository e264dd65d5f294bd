package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"strings"

	request "garagehub/internal/adapter/http/dto/request"
	response "garagehub/internal/adapter/http/dto/response"
	"garagehub/internal/usecase"
	"garagehub/pkg"

	"github.com/gin-gonic/gin"
)

// PaymentHandler handles HTTP requests for job-card payments.

type PaymentHandler struct {
	usecase usecase.IPaymentUseCase
}

func NewPaymentHandler(uc usecase.IPaymentUseCase) *PaymentHandler {
	return &PaymentHandler{usecase: uc}
}

// RecordPayment records a cash/card/bank payment (or an admin reversal)
// against the job's open balance.
func (h *PaymentHandler) RecordPayment(c *gin.Context) {
	actor, ok := actorFromHeaders(c)
	if !ok {
		return
	}
	jobID := c.Param("job_id")

	var payload request.RecordPaymentRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[payment][handler] record start job_id=%s amount=%s method=%s", jobID, payload.Amount, payload.Method)

	updated, err := h.usecase.RecordPayment(c.Request.Context(), jobID, payload.Amount, payload.PaymentMethod(), payload.Notes, actor)
	if err != nil {
		log.Printf("[payment][handler] record failed job_id=%s err=%v", jobID, err)
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[payment][handler] record success job_id=%s status=%s balance=%s", updated.ID, updated.Status, updated.BalanceDue)

	c.JSON(http.StatusOK, response.FromJobCard(updated))
}

// CreateOnlinePayment charges the job's open balance through the payment
// gateway. The request body is forwarded to the provider as-is.
func (h *PaymentHandler) CreateOnlinePayment(c *gin.Context) {
	actor, ok := actorFromHeaders(c)
	if !ok {
		return
	}
	jobID := c.Param("job_id")
	log.Printf("[payment][handler] online charge start job_id=%s", jobID)

	mockMode := isOnlinePaymentMockEnabled()
	gatewayPayload, err := readGatewayPayload(c)
	if err != nil {
		if mockMode {
			log.Printf("[payment][handler] payload invalid in mock mode; fallback to empty payload job_id=%s err=%v", jobID, err)
			gatewayPayload = json.RawMessage("{}")
		} else {
			log.Printf("[payment][handler] invalid payload job_id=%s err=%v", jobID, err)
			appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
			c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
			return
		}
	}

	updated, err := h.usecase.CreateOnlinePayment(c.Request.Context(), jobID, gatewayPayload, actor)
	if err != nil {
		log.Printf("[payment][handler] online charge failed job_id=%s err=%v", jobID, err)
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[payment][handler] online charge success job_id=%s status=%s", updated.ID, updated.Status)

	c.JSON(http.StatusOK, response.FromJobCard(updated))
}

// ListPayments returns the ledger for one job, oldest first.
func (h *PaymentHandler) ListPayments(c *gin.Context) {
	if _, ok := actorFromHeaders(c); !ok {
		return
	}
	jobID := c.Param("job_id")

	payments, err := h.usecase.ListByJobID(c.Request.Context(), jobID)
	if err != nil {
		log.Printf("[payment][handler] list failed job_id=%s err=%v", jobID, err)
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	out := make([]response.PaymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, response.FromPayment(p))
	}
	c.JSON(http.StatusOK, out)
}

func readGatewayPayload(c *gin.Context) (json.RawMessage, error) {
	raw, err := c.GetRawData()
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return json.RawMessage("{}"), nil
	}
	if !json.Valid(raw) {
		return nil, errors.New("request body is not valid json")
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err == nil {
		if wrapped, ok := envelope["gateway_payload"]; ok {
			if len(strings.TrimSpace(string(wrapped))) == 0 || strings.TrimSpace(string(wrapped)) == "null" {
				return nil, errors.New("gateway_payload cannot be empty")
			}
			return wrapped, nil
		}
	}

	return json.RawMessage(raw), nil
}

func mapPaymentError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidJobID), errors.Is(err, usecase.ErrInvalidActor),
		errors.Is(err, usecase.ErrInvalidPaymentAmount), errors.Is(err, usecase.ErrInvalidPaymentMethod),
		errors.Is(err, usecase.ErrInvalidGatewayPayload):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrJobNotFound):
		return pkg.NewDomainErrorSimple("JOB_NOT_FOUND", "Job card not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrRoleNotAuthorized):
		return pkg.NewDomainErrorSimple("ROLE_NOT_AUTHORIZED", "Actor role is not authorized for this operation", http.StatusForbidden)
	case errors.Is(err, usecase.ErrJobTerminal):
		return pkg.NewDomainErrorSimple("JOB_TERMINAL", "Job card is in a terminal status", http.StatusConflict)
	case errors.Is(err, usecase.ErrPaymentNotOpen):
		return pkg.NewDomainErrorSimple("PAYMENT_NOT_OPEN", "Job is not awaiting payment", http.StatusConflict)
	case errors.Is(err, usecase.ErrPaymentExceedsBalance):
		return pkg.NewDomainErrorSimple("PAYMENT_EXCEEDS_BALANCE", "Payment exceeds the balance due", http.StatusConflict)
	case errors.Is(err, usecase.ErrReversalExceedsPaid):
		return pkg.NewDomainErrorSimple("REVERSAL_EXCEEDS_PAID", "Reversal exceeds the amount paid", http.StatusConflict)
	case errors.Is(err, usecase.ErrConcurrentModification):
		return pkg.NewDomainErrorSimple("CONCURRENT_MODIFICATION", "Job card was modified concurrently, retry with fresh state", http.StatusConflict)
	case errors.Is(err, usecase.ErrPaymentGatewayUnauthorized):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_UNAUTHORIZED", "Payment provider unauthorized", http.StatusUnauthorized)
	case errors.Is(err, usecase.ErrPaymentGatewayDeclined):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_DECLINED", "Payment provider declined the charge", http.StatusConflict)
	case errors.Is(err, usecase.ErrGatewayNotConfigured):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_UNAVAILABLE", "Payment provider is not configured", http.StatusServiceUnavailable)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}

func isOnlinePaymentMockEnabled() bool {
	for _, key := range []string{"PAYMENT_GATEWAY_MOCK", "MERCADOPAGO_MOCK"} {
		v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
		switch v {
		case "1", "true", "yes", "on", "mock":
			return true
		}
	}
	return false
}
