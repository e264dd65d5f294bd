package entities

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestRecomputeTotals(t *testing.T) {
	t.Run("labour only applies five percent vat", func(t *testing.T) {
		j := JobCard{LabourTotal: dec("100.00")}
		j.RecomputeTotals()

		if !j.TaxAmount.Equal(dec("5.00")) {
			t.Fatalf("expected tax 5.00, got %s", j.TaxAmount)
		}
		if !j.GrandTotal.Equal(dec("105.00")) {
			t.Fatalf("expected grand 105.00, got %s", j.GrandTotal)
		}
		if !j.BalanceDue.Equal(dec("105.00")) {
			t.Fatalf("expected balance 105.00, got %s", j.BalanceDue)
		}
	})

	t.Run("all components", func(t *testing.T) {
		j := JobCard{
			LabourTotal:       dec("200.00"),
			PartsTotal:        dec("350.50"),
			PickupDeliveryFee: dec("40.00"),
			DiscountAmount:    dec("90.50"),
		}
		j.RecomputeTotals()

		// subtotal 500.00, tax 25.00
		if !j.TaxAmount.Equal(dec("25.00")) {
			t.Fatalf("expected tax 25.00, got %s", j.TaxAmount)
		}
		if !j.GrandTotal.Equal(dec("525.00")) {
			t.Fatalf("expected grand 525.00, got %s", j.GrandTotal)
		}
	})

	t.Run("tax rounds to two decimals", func(t *testing.T) {
		j := JobCard{LabourTotal: dec("99.99")}
		j.RecomputeTotals()

		// 99.99 * 0.05 = 4.9995 -> 5.00
		if !j.TaxAmount.Equal(dec("5.00")) {
			t.Fatalf("expected tax 5.00, got %s", j.TaxAmount)
		}
	})

	t.Run("discount above subtotal never yields negative tax", func(t *testing.T) {
		j := JobCard{LabourTotal: dec("50.00"), DiscountAmount: dec("80.00")}
		j.RecomputeTotals()

		if !j.TaxAmount.IsZero() {
			t.Fatalf("expected zero tax, got %s", j.TaxAmount)
		}
		if j.BalanceDue.IsNegative() {
			t.Fatalf("balance must not be negative, got %s", j.BalanceDue)
		}
	})

	t.Run("balance floors at zero after overpayment", func(t *testing.T) {
		j := JobCard{LabourTotal: dec("100.00"), AmountPaid: dec("200.00")}
		j.RecomputeTotals()

		if !j.BalanceDue.IsZero() {
			t.Fatalf("expected zero balance, got %s", j.BalanceDue)
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		j := JobCard{LabourTotal: dec("123.45"), PartsTotal: dec("67.89")}
		j.RecomputeTotals()
		first := j.GrandTotal
		j.RecomputeTotals()
		j.RecomputeTotals()

		if !j.GrandTotal.Equal(first) {
			t.Fatalf("grand total drifted: %s vs %s", first, j.GrandTotal)
		}
	})
}

func TestVerifyTotals(t *testing.T) {
	t.Run("fresh recomputation passes", func(t *testing.T) {
		j := JobCard{LabourTotal: dec("100.00"), PartsTotal: dec("55.00")}
		j.RecomputeTotals()

		if err := j.VerifyTotals(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("tampered grand total fails", func(t *testing.T) {
		j := JobCard{LabourTotal: dec("100.00")}
		j.RecomputeTotals()
		j.GrandTotal = dec("999.00")

		err := j.VerifyTotals()
		if !errors.Is(err, ErrFinancialMismatch) {
			t.Fatalf("expected ErrFinancialMismatch, got %v", err)
		}
	})

	t.Run("one fils drift is tolerated", func(t *testing.T) {
		j := JobCard{LabourTotal: dec("100.00")}
		j.RecomputeTotals()
		j.GrandTotal = j.GrandTotal.Add(dec("0.01"))
		j.BalanceDue = j.GrandTotal

		if err := j.VerifyTotals(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestApplyPayment(t *testing.T) {
	newAwaiting := func(grand string) JobCard {
		j := JobCard{LabourTotal: dec(grand), Status: JobStatusAwaitingPayment}
		j.RecomputeTotals()
		return j
	}

	t.Run("partial payment moves to partially_paid", func(t *testing.T) {
		j := newAwaiting("100.00") // grand 105.00
		next, changed := j.ApplyPayment(dec("50.00"))

		if !changed || next != JobStatusPartiallyPaid {
			t.Fatalf("expected partially_paid, got %s changed=%t", next, changed)
		}
		if !j.BalanceDue.Equal(dec("55.00")) {
			t.Fatalf("expected balance 55.00, got %s", j.BalanceDue)
		}
	})

	t.Run("full payment moves to paid", func(t *testing.T) {
		j := newAwaiting("100.00")
		next, changed := j.ApplyPayment(dec("105.00"))

		if !changed || next != JobStatusPaid {
			t.Fatalf("expected paid, got %s changed=%t", next, changed)
		}
		if !j.BalanceDue.IsZero() {
			t.Fatalf("expected zero balance, got %s", j.BalanceDue)
		}
	})

	t.Run("closing payment from partially_paid moves to paid", func(t *testing.T) {
		j := newAwaiting("100.00")
		j.ApplyPayment(dec("60.00"))
		j.Status = JobStatusPartiallyPaid

		next, changed := j.ApplyPayment(dec("45.00"))
		if !changed || next != JobStatusPaid {
			t.Fatalf("expected paid, got %s changed=%t", next, changed)
		}
	})

	t.Run("reversal amount reduces paid without status suggestion", func(t *testing.T) {
		j := newAwaiting("100.00")
		j.ApplyPayment(dec("105.00"))
		j.Status = JobStatusPaid

		next, changed := j.ApplyPayment(dec("-20.00"))
		if changed {
			t.Fatalf("expected no status change, got %s", next)
		}
		if !j.AmountPaid.Equal(dec("85.00")) {
			t.Fatalf("expected paid 85.00, got %s", j.AmountPaid)
		}
	})
}

func TestStatusTable(t *testing.T) {
	t.Run("terminal statuses", func(t *testing.T) {
		for _, s := range []JobStatus{JobStatusClosed, JobStatusCancelled} {
			if !s.Terminal() {
				t.Fatalf("expected %s to be terminal", s)
			}
		}
		if JobStatusDelivered.Terminal() {
			t.Fatal("delivered must not be terminal")
		}
	})

	t.Run("statuses in order", func(t *testing.T) {
		ordered := StatusesInOrder()
		if len(ordered) != 23 {
			t.Fatalf("expected 23 statuses, got %d", len(ordered))
		}
		if ordered[0] != JobStatusRequested {
			t.Fatalf("expected requested first, got %s", ordered[0])
		}
		if ordered[len(ordered)-1] != JobStatusCancelled {
			t.Fatalf("expected cancelled last, got %s", ordered[len(ordered)-1])
		}
		for i := 1; i < len(ordered)-1; i++ {
			if ordered[i].Rank() < ordered[i-1].Rank() {
				t.Fatalf("ordering broken at %s", ordered[i])
			}
		}
	})

	t.Run("unknown status is invalid", func(t *testing.T) {
		if JobStatus("warp_drive").Valid() {
			t.Fatal("unexpectedly valid")
		}
	})
}
