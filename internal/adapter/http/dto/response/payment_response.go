package response

import (
	"time"

	"garagehub/internal/domain/entities"
)

type PaymentResponse struct {
	ID                   string    `json:"id"`
	PaymentNumber        string    `json:"payment_number"`
	JobCardID            string    `json:"job_card_id"`
	Amount               string    `json:"amount"`
	Currency             string    `json:"currency"`
	Method               string    `json:"method"`
	RecordedByID         string    `json:"recorded_by_id"`
	Notes                string    `json:"notes,omitempty"`
	Reversal             bool      `json:"reversal"`
	GatewayTransactionID string    `json:"gateway_transaction_id,omitempty"`
	CreatedAt            time.Time `json:"created_at"`
}

func FromPayment(p entities.Payment) PaymentResponse {
	return PaymentResponse{
		ID:                   p.ID,
		PaymentNumber:        p.PaymentNumber,
		JobCardID:            p.JobCardID,
		Amount:               p.Amount.StringFixed(2),
		Currency:             p.Currency,
		Method:               string(p.Method),
		RecordedByID:         p.RecordedByID,
		Notes:                p.Notes,
		Reversal:             p.Reversal,
		GatewayTransactionID: p.GatewayTransactionID,
		CreatedAt:            p.CreatedAt,
	}
}
