package entities

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod is how the money arrived.
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodCard         PaymentMethod = "card"
	PaymentMethodOnline       PaymentMethod = "online"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodCheque       PaymentMethod = "cheque"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodOnline,
		PaymentMethodBankTransfer, PaymentMethodCheque:
		return true
	}
	return false
}

// Payment is one immutable ledger entry against a job card. A job's
// amount_paid is always the sum of its entries; corrections are new
// negative-amount entries, never edits or deletions.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (job_card_id-index): job_card_id
//
// Gateway payload:
//   - GatewayResponseRaw keeps the original provider body (JSON) for
//     traceability/audit on online payments.
type Payment struct {
	ID            string          `json:"id"`
	PaymentNumber string          `json:"payment_number"`
	JobCardID     string          `json:"job_card_id"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	Method        PaymentMethod   `json:"method"`
	RecordedByID  string          `json:"recorded_by_id"`
	Notes         string          `json:"notes,omitempty"`
	Reversal      bool            `json:"reversal,omitempty"`

	GatewayTransactionID string          `json:"gateway_transaction_id,omitempty"`
	GatewayResponseRaw   json.RawMessage `json:"gateway_response_raw,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
