// Package notify delivers best-effort completion notifications after a
// mark-done commits. Delivery is decoupled from the request through a
// buffered channel: enqueueing never blocks the caller, and a full buffer
// drops the event rather than slowing the API down.
package notify

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/leonsos/insightt-test/internal/feature/tasks/usecase"
	"github.com/leonsos/insightt-test/internal/platform/metrics"
)

const defaultQueueSize = 256

// LogNotifier implements usecase.CompletionNotifier by writing a
// structured log line per completion, standing in for the downstream
// push/statistics pipeline. Worker failures never reach the caller.
type LogNotifier struct {
	events chan usecase.CompletionEvent
	log    zerolog.Logger
}

var _ usecase.CompletionNotifier = (*LogNotifier)(nil)

// NewLogNotifier creates a LogNotifier with the given queue capacity.
// If queueSize <= 0, defaultQueueSize is used.
func NewLogNotifier(queueSize int, log zerolog.Logger) *LogNotifier {
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	return &LogNotifier{
		events: make(chan usecase.CompletionEvent, queueSize),
		log:    log,
	}
}

// Start launches the delivery worker. It stops when ctx is cancelled.
func (n *LogNotifier) Start(ctx context.Context) {
	go n.run(ctx)
}

// Notify enqueues a completion event without blocking. When the buffer is
// full the event is dropped and counted; mark-done has already committed,
// so there is nothing to roll back.
func (n *LogNotifier) Notify(event usecase.CompletionEvent) {
	select {
	case n.events <- event:
	default:
		metrics.NotificationsTotal.WithLabelValues("dropped").Inc()
		n.log.Warn().
			Uint("task_id", event.TaskID).
			Msg("notification queue full, event dropped")
	}
}

func (n *LogNotifier) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-n.events:
			if !ok {
				return
			}
			metrics.NotificationsTotal.WithLabelValues("delivered").Inc()
			n.log.Info().
				Str("notification_id", uuid.NewString()).
				Uint("task_id", event.TaskID).
				Uint("user_id", event.UserID).
				Str("entry", event.Entry).
				Time("completed_at", event.CompletedAt).
				Msgf("task %d marked as done", event.TaskID)
		}
	}
}
