package notify

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"garagehub/internal/domain/entities"
	"garagehub/internal/usecase/interfaces"
)

const (
	defaultQueueSize   = 256
	defaultMaxAttempts = 3
	retryBackoff       = 500 * time.Millisecond
)

// Sender delivers one event to its recipients. Implementations wrap push,
// WhatsApp or the RFQ fan-out; failures are retried by the dispatcher.
type Sender interface {
	Send(ctx context.Context, event entities.JobEvent) error
}

// Dispatcher is the post-commit side-effect pipeline. Publish enqueues and
// returns immediately; Run drains the queue and delivers with bounded
// retries. Events published after a full queue are dropped with a log line
// rather than blocking the transition path.
type Dispatcher struct {
	sender      Sender
	queue       chan entities.JobEvent
	maxAttempts int
}

var _ interfaces.IJobEventPublisher = (*Dispatcher)(nil)

func NewDispatcher(sender Sender) *Dispatcher {
	size := defaultQueueSize
	if v, err := strconv.Atoi(os.Getenv("NOTIFY_QUEUE_SIZE")); err == nil && v > 0 {
		size = v
	}
	return &Dispatcher{
		sender:      sender,
		queue:       make(chan entities.JobEvent, size),
		maxAttempts: defaultMaxAttempts,
	}
}

func (d *Dispatcher) Publish(ctx context.Context, event entities.JobEvent) error {
	select {
	case d.queue <- event:
		return nil
	default:
		log.Printf("[notify][dispatcher] queue full, dropping event job_id=%s type=%s", event.JobID, event.Type)
		return nil
	}
}

// Run drains the queue until ctx is cancelled. Call it from exactly one
// goroutine.
func (d *Dispatcher) Run(ctx context.Context) {
	log.Printf("[notify][dispatcher] started queue_size=%d", cap(d.queue))
	for {
		select {
		case <-ctx.Done():
			log.Printf("[notify][dispatcher] stopped")
			return
		case ev := <-d.queue:
			d.deliver(ctx, ev)
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, ev entities.JobEvent) {
	var err error
	for attempt := 1; attempt <= d.maxAttempts; attempt++ {
		err = d.sender.Send(ctx, ev)
		if err == nil {
			return
		}
		log.Printf("[notify][dispatcher] delivery failed job_id=%s type=%s attempt=%d err=%v", ev.JobID, ev.Type, attempt, err)
		select {
		case <-ctx.Done():
			return
		case <-time.After(retryBackoff):
		}
	}
	log.Printf("[notify][dispatcher] delivery abandoned job_id=%s type=%s attempts=%d err=%v", ev.JobID, ev.Type, d.maxAttempts, err)
}

// LogSender writes events to the application log. It stands in for the real
// notification channels in local and test environments.
type LogSender struct{}

func NewLogSender() *LogSender { return &LogSender{} }

func (s *LogSender) Send(_ context.Context, ev entities.JobEvent) error {
	log.Printf("[notify][sender] job_id=%s job_number=%s type=%s old=%s new=%s recipients=%v detail=%q",
		ev.JobID, ev.JobNumber, ev.Type, ev.OldStatus, ev.NewStatus, ev.Recipients, ev.Detail)
	return nil
}
