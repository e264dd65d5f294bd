package interfaces

import (
	"context"

	"garagehub/internal/domain/entities"
)

// IJobEventPublisher hands committed job events to the side-effect pipeline
// (notifications, RFQ fan-out). Publish must be quick and must never fail a
// transition that already committed; implementations queue and retry on
// their own.
type IJobEventPublisher interface {
	Publish(ctx context.Context, event entities.JobEvent) error
}
