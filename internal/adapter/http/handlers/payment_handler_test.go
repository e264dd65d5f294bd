package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"garagehub/internal/adapter/http/handlers/mocks"
	"garagehub/internal/domain/entities"
	"garagehub/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

func newPaymentRouter(h *PaymentHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/v1/jobs/:job_id/payments", h.RecordPayment)
	r.POST("/v1/jobs/:job_id/payments/online", h.CreateOnlinePayment)
	r.GET("/v1/jobs/:job_id/payments", h.ListPayments)
	return r
}

func TestPaymentHandler_RecordPayment(t *testing.T) {
	t.Run("missing actor headers", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		r := newPaymentRouter(NewPaymentHandler(uc))

		w := doRequest(r, http.MethodPost, "/v1/jobs/job-1/payments", `{"amount":"50.00","method":"cash"}`, nil)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		if code := errorCode(t, w); code != "INVALID_ACTOR" {
			t.Fatalf("expected INVALID_ACTOR, got %s", code)
		}
	})

	t.Run("success forwards amount and method", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		uc.EXPECT().RecordPayment(gomock.Any(), "job-1", gomock.Any(), entities.PaymentMethodCash, "walk-in", testAdvisor).DoAndReturn(
			func(_ context.Context, _ string, amount decimal.Decimal, _ entities.PaymentMethod, _ string, _ entities.Actor) (entities.JobCard, error) {
				if !amount.Equal(decimal.RequireFromString("50.00")) {
					t.Fatalf("unexpected amount %s", amount)
				}
				j := entities.JobCard{
					ID:          "job-1",
					Status:      entities.JobStatusPartiallyPaid,
					LabourTotal: decimal.RequireFromString("100.00"),
					AmountPaid:  decimal.RequireFromString("50.00"),
				}
				j.RecomputeTotals()
				return j, nil
			},
		)
		r := newPaymentRouter(NewPaymentHandler(uc))

		w := doRequest(r, http.MethodPost, "/v1/jobs/job-1/payments", `{"amount":"50.00","method":"cash","notes":"walk-in"}`, &testAdvisor)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d body=%s", w.Code, w.Body.String())
		}

		var resp struct {
			Status     string `json:"status"`
			BalanceDue string `json:"balance_due"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("response not json: %v", err)
		}
		if resp.Status != "partially_paid" || resp.BalanceDue != "55.00" {
			t.Fatalf("unexpected response %+v", resp)
		}
	})

	t.Run("exceeding balance maps to 409", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		uc.EXPECT().RecordPayment(gomock.Any(), "job-1", gomock.Any(), entities.PaymentMethodCard, "", testAdvisor).
			Return(entities.JobCard{}, usecase.ErrPaymentExceedsBalance)
		r := newPaymentRouter(NewPaymentHandler(uc))

		w := doRequest(r, http.MethodPost, "/v1/jobs/job-1/payments", `{"amount":"999.00","method":"card"}`, &testAdvisor)
		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
		if code := errorCode(t, w); code != "PAYMENT_EXCEEDS_BALANCE" {
			t.Fatalf("expected PAYMENT_EXCEEDS_BALANCE, got %s", code)
		}
	})

	t.Run("invalid json", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		r := newPaymentRouter(NewPaymentHandler(uc))

		w := doRequest(r, http.MethodPost, "/v1/jobs/job-1/payments", "{", &testAdvisor)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})
}

func TestPaymentHandler_CreateOnlinePayment(t *testing.T) {
	cust := entities.Actor{ID: "cust-1", Role: entities.RoleCustomer}

	t.Run("unwraps gateway_payload envelope", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		uc.EXPECT().CreateOnlinePayment(gomock.Any(), "job-1", gomock.Any(), cust).DoAndReturn(
			func(_ context.Context, _ string, payload json.RawMessage, _ entities.Actor) (entities.JobCard, error) {
				var got map[string]any
				if err := json.Unmarshal(payload, &got); err != nil {
					t.Fatalf("payload not json: %v", err)
				}
				if got["token"] != "tok-1" {
					t.Fatalf("envelope not unwrapped: %s", payload)
				}
				return entities.JobCard{ID: "job-1", Status: entities.JobStatusPaid}, nil
			},
		)
		r := newPaymentRouter(NewPaymentHandler(uc))

		body := `{"gateway_payload":{"token":"tok-1"}}`
		w := doRequest(r, http.MethodPost, "/v1/jobs/job-1/payments/online", body, &cust)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d body=%s", w.Code, w.Body.String())
		}
	})

	t.Run("declined charge maps to 409", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		uc.EXPECT().CreateOnlinePayment(gomock.Any(), "job-1", gomock.Any(), cust).
			Return(entities.JobCard{}, usecase.ErrPaymentGatewayDeclined)
		r := newPaymentRouter(NewPaymentHandler(uc))

		w := doRequest(r, http.MethodPost, "/v1/jobs/job-1/payments/online", `{"token":"tok-1"}`, &cust)
		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
		if code := errorCode(t, w); code != "PAYMENT_PROVIDER_DECLINED" {
			t.Fatalf("expected PAYMENT_PROVIDER_DECLINED, got %s", code)
		}
	})

	t.Run("gateway not configured maps to 503", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		uc.EXPECT().CreateOnlinePayment(gomock.Any(), "job-1", gomock.Any(), cust).
			Return(entities.JobCard{}, usecase.ErrGatewayNotConfigured)
		r := newPaymentRouter(NewPaymentHandler(uc))

		w := doRequest(r, http.MethodPost, "/v1/jobs/job-1/payments/online", `{}`, &cust)
		if w.Code != http.StatusServiceUnavailable {
			t.Fatalf("expected 503, got %d", w.Code)
		}
	})

	t.Run("invalid payload without mock mode", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		r := newPaymentRouter(NewPaymentHandler(uc))

		w := doRequest(r, http.MethodPost, "/v1/jobs/job-1/payments/online", `{"broken"`, &cust)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("mock mode falls back to empty payload", func(t *testing.T) {
		t.Setenv("PAYMENT_GATEWAY_MOCK", "true")

		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		uc.EXPECT().CreateOnlinePayment(gomock.Any(), "job-1", json.RawMessage("{}"), cust).
			Return(entities.JobCard{ID: "job-1", Status: entities.JobStatusPaid}, nil)
		r := newPaymentRouter(NewPaymentHandler(uc))

		w := doRequest(r, http.MethodPost, "/v1/jobs/job-1/payments/online", `{"broken"`, &cust)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d body=%s", w.Code, w.Body.String())
		}
	})
}

func TestPaymentHandler_ListPayments(t *testing.T) {
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockIPaymentUseCase(ctrl)
	uc.EXPECT().ListByJobID(gomock.Any(), "job-1").Return([]entities.Payment{
		{
			ID:            "pay-1",
			JobCardID:     "job-1",
			PaymentNumber: "PAY20260830000001",
			Amount:        decimal.RequireFromString("50.00"),
			Currency:      entities.Currency,
			Method:        entities.PaymentMethodCash,
			CreatedAt:     time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC),
		},
	}, nil)
	r := newPaymentRouter(NewPaymentHandler(uc))

	w := doRequest(r, http.MethodGet, "/v1/jobs/job-1/payments", "", &testAdvisor)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var payments []struct {
		PaymentNumber string `json:"payment_number"`
		Amount        string `json:"amount"`
		Method        string `json:"method"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &payments); err != nil {
		t.Fatalf("response not json: %v", err)
	}
	if len(payments) != 1 || payments[0].Amount != "50.00" || payments[0].Method != "cash" {
		t.Fatalf("unexpected payments %+v", payments)
	}
}
