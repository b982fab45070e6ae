package jobs

import (
	"context"
	"log/slog"

	"storefront/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// relayBatchSize caps how many pending events one relay tick drains.
const relayBatchSize = 100

// EventRelayJob drains the transactional outbox: every second it fetches
// pending domain events and hands them to the publisher. Events that fail to
// publish stay pending and are retried on later ticks until the outbox parks
// them as failed.
type EventRelayJob struct {
	eventRepository ports.EventRepository
	publisher       ports.EventPublisher
	cron            *cron.Cron
	logger          *slog.Logger
}

// NewEventRelayJob creates the outbox relay job.
func NewEventRelayJob(
	eventRepository ports.EventRepository,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) *EventRelayJob {
	return &EventRelayJob{
		eventRepository: eventRepository,
		publisher:       publisher,
		cron:            cron.New(cron.WithSeconds()),
		logger:          logger.With("component", "event_relay_job"),
	}
}

// Start begins relaying pending events every second.
func (j *EventRelayJob) Start() error {
	_, err := j.cron.AddFunc("* * * * * *", func() {
		ctx := context.Background()
		if err := j.RelayPending(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Event relay tick failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Event relay job started (running every second)")
	return nil
}

// Stop stops the relay job.
func (j *EventRelayJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Event relay job stopped")
}

// RelayPending drains one batch of pending events. Publish failures are
// recorded on the event and do not stop the rest of the batch; only outbox
// access errors abort the tick.
func (j *EventRelayJob) RelayPending(ctx context.Context) error {
	pending, err := j.eventRepository.GetPending(ctx, relayBatchSize)
	if err != nil {
		return err
	}

	for _, event := range pending {
		if pubErr := j.publisher.Publish(ctx, event); pubErr != nil {
			j.logger.WarnContext(ctx, "Event publish failed",
				"event_id", event.EventID,
				"event_type", event.EventType,
				"error", pubErr,
			)
			if markErr := j.eventRepository.MarkFailed(ctx, event.EventID, pubErr); markErr != nil {
				return markErr
			}
			continue
		}

		if markErr := j.eventRepository.MarkSent(ctx, event.EventID); markErr != nil {
			return markErr
		}
	}

	return nil
}
