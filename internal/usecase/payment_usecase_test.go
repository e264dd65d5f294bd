package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"garagehub/internal/domain/entities"
	"garagehub/internal/usecase/interfaces"
	mock_interfaces "garagehub/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

type paymentFixture struct {
	jobRepo     *mock_interfaces.MockIJobCardRepository
	paymentRepo *mock_interfaces.MockIPaymentRepository
	publisher   *mock_interfaces.MockIJobEventPublisher
	gateway     *mock_interfaces.MockIPaymentGateway
	uc          *PaymentUseCase
}

func newPaymentFixture(t *testing.T) paymentFixture {
	ctrl := gomock.NewController(t)
	jobRepo := mock_interfaces.NewMockIJobCardRepository(ctrl)
	paymentRepo := mock_interfaces.NewMockIPaymentRepository(ctrl)
	publisher := mock_interfaces.NewMockIJobEventPublisher(ctrl)
	gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
	publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	return paymentFixture{
		jobRepo:     jobRepo,
		paymentRepo: paymentRepo,
		publisher:   publisher,
		gateway:     gateway,
		uc:          NewPaymentUseCase(jobRepo, paymentRepo, publisher, gateway),
	}
}

// openJob returns a job awaiting payment with labour 100.00 (grand 105.00).
func openJob() entities.JobCard {
	j := storedJob(entities.JobStatusAwaitingPayment)
	j.LabourTotal = dec("100.00")
	j.RecomputeTotals()
	return j
}

func expectCommitPayment(f paymentFixture) (*entities.JobCard, *entities.Payment) {
	var committedJob entities.JobCard
	var committedEntry entities.Payment
	f.jobRepo.EXPECT().CommitPayment(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, j entities.JobCard, _ int64, p entities.Payment) (entities.JobCard, error) {
			committedJob = j
			committedEntry = p
			return j, nil
		},
	)
	return &committedJob, &committedEntry
}

func TestRecordPayment(t *testing.T) {
	t.Run("partial then closing payment", func(t *testing.T) {
		f := newPaymentFixture(t)
		f.jobRepo.EXPECT().GetByID(gomock.Any(), "job-1").Return(openJob(), nil)
		committedJob, committedEntry := expectCommitPayment(f)

		updated, err := f.uc.RecordPayment(context.Background(), "job-1", dec("50.00"), entities.PaymentMethodCash, "", advisor)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if updated.Status != entities.JobStatusPartiallyPaid {
			t.Fatalf("expected partially_paid, got %s", updated.Status)
		}
		if !updated.BalanceDue.Equal(dec("55.00")) {
			t.Fatalf("expected balance 55.00, got %s", updated.BalanceDue)
		}
		if committedJob.Version != 4 {
			t.Fatalf("expected version bump to 4, got %d", committedJob.Version)
		}
		if !strings.HasPrefix(committedEntry.PaymentNumber, "PAY") {
			t.Fatalf("unexpected payment number %s", committedEntry.PaymentNumber)
		}
		if committedEntry.Currency != entities.Currency {
			t.Fatalf("expected AED, got %s", committedEntry.Currency)
		}

		// Closing payment from partially_paid auto-transitions to paid.
		f.jobRepo.EXPECT().GetByID(gomock.Any(), "job-1").Return(*committedJob, nil)
		expectCommitPayment(f)

		final, err := f.uc.RecordPayment(context.Background(), "job-1", dec("55.00"), entities.PaymentMethodCard, "", advisor)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if final.Status != entities.JobStatusPaid {
			t.Fatalf("expected paid, got %s", final.Status)
		}
		if !final.BalanceDue.IsZero() {
			t.Fatalf("expected zero balance, got %s", final.BalanceDue)
		}
	})

	t.Run("payment exceeding balance is rejected", func(t *testing.T) {
		f := newPaymentFixture(t)
		f.jobRepo.EXPECT().GetByID(gomock.Any(), "job-1").Return(openJob(), nil)

		_, err := f.uc.RecordPayment(context.Background(), "job-1", dec("500.00"), entities.PaymentMethodCash, "", advisor)
		if !errors.Is(err, ErrPaymentExceedsBalance) {
			t.Fatalf("expected ErrPaymentExceedsBalance, got %v", err)
		}
	})

	t.Run("job not awaiting payment", func(t *testing.T) {
		f := newPaymentFixture(t)
		f.jobRepo.EXPECT().GetByID(gomock.Any(), "job-1").Return(storedJob(entities.JobStatusInService), nil)

		_, err := f.uc.RecordPayment(context.Background(), "job-1", dec("10.00"), entities.PaymentMethodCash, "", advisor)
		if !errors.Is(err, ErrPaymentNotOpen) {
			t.Fatalf("expected ErrPaymentNotOpen, got %v", err)
		}
	})

	t.Run("customer cannot record payments", func(t *testing.T) {
		f := newPaymentFixture(t)

		_, err := f.uc.RecordPayment(context.Background(), "job-1", dec("10.00"), entities.PaymentMethodCash, "", customer)
		if !errors.Is(err, ErrRoleNotAuthorized) {
			t.Fatalf("expected ErrRoleNotAuthorized, got %v", err)
		}
	})

	t.Run("zero amount", func(t *testing.T) {
		f := newPaymentFixture(t)

		_, err := f.uc.RecordPayment(context.Background(), "job-1", dec("0"), entities.PaymentMethodCash, "", advisor)
		if !errors.Is(err, ErrInvalidPaymentAmount) {
			t.Fatalf("expected ErrInvalidPaymentAmount, got %v", err)
		}
	})

	t.Run("unknown method", func(t *testing.T) {
		f := newPaymentFixture(t)

		_, err := f.uc.RecordPayment(context.Background(), "job-1", dec("10.00"), entities.PaymentMethod("barter"), "", advisor)
		if !errors.Is(err, ErrInvalidPaymentMethod) {
			t.Fatalf("expected ErrInvalidPaymentMethod, got %v", err)
		}
	})

	t.Run("racing payments: exactly one commits", func(t *testing.T) {
		f := newPaymentFixture(t)
		j := openJob()
		j.AmountPaid = dec("104.00")
		j.Status = entities.JobStatusPartiallyPaid
		j.RecomputeTotals() // balance 1.00

		// Both callers read the same version; the second commit loses.
		f.jobRepo.EXPECT().GetByID(gomock.Any(), "job-1").Return(j, nil).Times(2)
		first := f.jobRepo.EXPECT().CommitPayment(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, jc entities.JobCard, _ int64, _ entities.Payment) (entities.JobCard, error) {
				return jc, nil
			},
		)
		f.jobRepo.EXPECT().CommitPayment(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(entities.JobCard{}, interfaces.ErrVersionConflict).After(first)

		winner, err := f.uc.RecordPayment(context.Background(), "job-1", dec("1.00"), entities.PaymentMethodCash, "", advisor)
		if err != nil {
			t.Fatalf("first payment should commit: %v", err)
		}
		if winner.Status != entities.JobStatusPaid {
			t.Fatalf("expected paid, got %s", winner.Status)
		}

		_, err = f.uc.RecordPayment(context.Background(), "job-1", dec("1.00"), entities.PaymentMethodCash, "", advisor)
		if !errors.Is(err, ErrConcurrentModification) {
			t.Fatalf("expected ErrConcurrentModification, got %v", err)
		}
	})
}

func TestRecordPayment_Reversals(t *testing.T) {
	t.Run("admin reversal reduces paid and keeps status", func(t *testing.T) {
		f := newPaymentFixture(t)
		j := openJob()
		j.AmountPaid = dec("105.00")
		j.Status = entities.JobStatusPaid
		j.RecomputeTotals()
		f.jobRepo.EXPECT().GetByID(gomock.Any(), "job-1").Return(j, nil)
		_, committedEntry := expectCommitPayment(f)

		updated, err := f.uc.RecordPayment(context.Background(), "job-1", dec("-20.00"), entities.PaymentMethodCash, "refund", admin)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if updated.Status != entities.JobStatusPaid {
			t.Fatalf("reversal must not move status, got %s", updated.Status)
		}
		if !updated.AmountPaid.Equal(dec("85.00")) {
			t.Fatalf("expected paid 85.00, got %s", updated.AmountPaid)
		}
		if !committedEntry.Reversal {
			t.Fatal("expected ledger entry flagged as reversal")
		}
	})

	t.Run("advisor cannot reverse", func(t *testing.T) {
		f := newPaymentFixture(t)

		_, err := f.uc.RecordPayment(context.Background(), "job-1", dec("-20.00"), entities.PaymentMethodCash, "", advisor)
		if !errors.Is(err, ErrRoleNotAuthorized) {
			t.Fatalf("expected ErrRoleNotAuthorized, got %v", err)
		}
	})

	t.Run("reversal larger than amount paid", func(t *testing.T) {
		f := newPaymentFixture(t)
		j := openJob()
		j.AmountPaid = dec("30.00")
		j.Status = entities.JobStatusPartiallyPaid
		j.RecomputeTotals()
		f.jobRepo.EXPECT().GetByID(gomock.Any(), "job-1").Return(j, nil)

		_, err := f.uc.RecordPayment(context.Background(), "job-1", dec("-50.00"), entities.PaymentMethodCash, "", admin)
		if !errors.Is(err, ErrReversalExceedsPaid) {
			t.Fatalf("expected ErrReversalExceedsPaid, got %v", err)
		}
	})
}

func TestCreateOnlinePayment(t *testing.T) {
	payload := json.RawMessage(`{"token":"tok-1","payment_method_id":"visa"}`)

	t.Run("approved charge settles the balance", func(t *testing.T) {
		f := newPaymentFixture(t)
		j := openJob()
		f.jobRepo.EXPECT().GetByID(gomock.Any(), "job-1").Return(j, nil).Times(2)
		f.gateway.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, enriched json.RawMessage) (string, string, json.RawMessage, error) {
				var m map[string]any
				if err := json.Unmarshal(enriched, &m); err != nil {
					t.Fatalf("enriched payload not json: %v", err)
				}
				if m["transaction_amount"] != 105.0 {
					t.Fatalf("expected amount 105, got %v", m["transaction_amount"])
				}
				if m["external_reference"] != "job-1" {
					t.Fatalf("expected external_reference job-1, got %v", m["external_reference"])
				}
				return "mp-1", "approved", json.RawMessage(`{"id":"mp-1","status":"approved"}`), nil
			},
		)
		_, committedEntry := expectCommitPayment(f)

		updated, err := f.uc.CreateOnlinePayment(context.Background(), "job-1", payload, customer)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if updated.Status != entities.JobStatusPaid {
			t.Fatalf("expected paid, got %s", updated.Status)
		}
		if committedEntry.Method != entities.PaymentMethodOnline {
			t.Fatalf("expected online method, got %s", committedEntry.Method)
		}
		if committedEntry.GatewayTransactionID != "mp-1" {
			t.Fatalf("expected gateway ref mp-1, got %s", committedEntry.GatewayTransactionID)
		}
	})

	t.Run("declined charge records nothing", func(t *testing.T) {
		f := newPaymentFixture(t)
		f.jobRepo.EXPECT().GetByID(gomock.Any(), "job-1").Return(openJob(), nil)
		f.gateway.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).Return("mp-2", "rejected", json.RawMessage(`{"status":"rejected"}`), nil)

		_, err := f.uc.CreateOnlinePayment(context.Background(), "job-1", payload, customer)
		if !errors.Is(err, ErrPaymentGatewayDeclined) {
			t.Fatalf("expected ErrPaymentGatewayDeclined, got %v", err)
		}
	})

	t.Run("foreign customer cannot pay another job", func(t *testing.T) {
		f := newPaymentFixture(t)
		f.jobRepo.EXPECT().GetByID(gomock.Any(), "job-1").Return(openJob(), nil)

		other := entities.Actor{ID: "cust-2", Role: entities.RoleCustomer}
		_, err := f.uc.CreateOnlinePayment(context.Background(), "job-1", payload, other)
		if !errors.Is(err, ErrRoleNotAuthorized) {
			t.Fatalf("expected ErrRoleNotAuthorized, got %v", err)
		}
	})

	t.Run("invalid payload", func(t *testing.T) {
		f := newPaymentFixture(t)

		_, err := f.uc.CreateOnlinePayment(context.Background(), "job-1", json.RawMessage("{"), customer)
		if !errors.Is(err, ErrInvalidGatewayPayload) {
			t.Fatalf("expected ErrInvalidGatewayPayload, got %v", err)
		}
	})

	t.Run("no gateway configured", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		jobRepo := mock_interfaces.NewMockIJobCardRepository(ctrl)
		paymentRepo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		uc := NewPaymentUseCase(jobRepo, paymentRepo, nil, nil)

		_, err := uc.CreateOnlinePayment(context.Background(), "job-1", payload, customer)
		if !errors.Is(err, ErrGatewayNotConfigured) {
			t.Fatalf("expected ErrGatewayNotConfigured, got %v", err)
		}
	})
}

func TestListByJobID(t *testing.T) {
	f := newPaymentFixture(t)
	f.paymentRepo.EXPECT().ListByJobID(gomock.Any(), "job-1").Return([]entities.Payment{
		{ID: "p1"}, {ID: "p2"},
	}, nil)

	payments, err := f.uc.ListByJobID(context.Background(), "job-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(payments) != 2 {
		t.Fatalf("expected 2 payments, got %d", len(payments))
	}

	if _, err := f.uc.ListByJobID(context.Background(), "  "); !errors.Is(err, ErrInvalidJobID) {
		t.Fatalf("expected ErrInvalidJobID, got %v", err)
	}
}
