package interfaces

import (
	"context"
	"errors"

	"garagehub/internal/domain/entities"
)

// ErrVersionConflict is returned by Update when the stored version no longer
// matches the version the caller read. The caller re-fetches and retries.
var ErrVersionConflict = errors.New("job card version conflict")

// IJobCardRepository abstracts DynamoDB persistence for JobCard.
//
// The engine must be able to:
//   - create a job card (rejecting duplicate ids)
//   - read it back with strong consistency
//   - commit a full mutation atomically, conditioned on the version it read
//   - allocate branch-day job number sequences atomically
type IJobCardRepository interface {
	Create(ctx context.Context, j entities.JobCard) (entities.JobCard, error)
	GetByID(ctx context.Context, id string) (entities.JobCard, error)
	// Update persists the whole aggregate; expectedVersion is the version the
	// caller read before mutating. A mismatch yields ErrVersionConflict.
	Update(ctx context.Context, j entities.JobCard, expectedVersion int64) (entities.JobCard, error)
	// CommitPayment persists the mutated job and appends the ledger entry in
	// one transaction, conditioned on expectedVersion. Exactly one of two
	// racing payments can commit.
	CommitPayment(ctx context.Context, j entities.JobCard, expectedVersion int64, p entities.Payment) (entities.JobCard, error)
	NextJobSequence(ctx context.Context, day string) (int64, error)
}

// IJobUpdateRepository abstracts the append-only progress-update trail.
type IJobUpdateRepository interface {
	Append(ctx context.Context, u entities.ProgressUpdate) (entities.ProgressUpdate, error)
	ListByJobID(ctx context.Context, jobID string) ([]entities.ProgressUpdate, error)
}
