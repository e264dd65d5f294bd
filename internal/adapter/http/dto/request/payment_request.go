package request

import (
	"strings"

	"garagehub/internal/domain/entities"

	"github.com/shopspring/decimal"
)

// RecordPaymentRequest records money against the job card. A negative amount
// is a reversal and is admin-only.
type RecordPaymentRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
	Method string          `json:"method" binding:"required"`
	Notes  string          `json:"notes"`
}

func (r RecordPaymentRequest) PaymentMethod() entities.PaymentMethod {
	return entities.PaymentMethod(strings.ToLower(strings.TrimSpace(r.Method)))
}
