package interfaces

import (
	"context"

	"garagehub/internal/domain/entities"
)

// IPaymentRepository abstracts DynamoDB persistence for the payment ledger.
// Entries are append-only; there is no update or delete.
type IPaymentRepository interface {
	Append(ctx context.Context, p entities.Payment) (entities.Payment, error)
	ListByJobID(ctx context.Context, jobID string) ([]entities.Payment, error)
}
