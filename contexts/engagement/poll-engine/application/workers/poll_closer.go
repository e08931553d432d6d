package workers

import (
	"context"
	"log/slog"
	"time"

	application "atrium/contexts/engagement/poll-engine/application"
	"atrium/contexts/engagement/poll-engine/application/commands"
	"atrium/contexts/engagement/poll-engine/ports"
)

// PollCloser deactivates polls whose end date has passed and emits
// poll.closed. Submission correctness never depends on this worker: the
// submission path checks the end date inline. The closer only keeps the
// active-poll listing tidy and notifies downstream consumers.
type PollCloser struct {
	Polls  ports.PollRepository
	Outbox ports.OutboxWriter
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

func (c PollCloser) RunOnce(ctx context.Context) error {
	logger := application.ResolveLogger(c.Logger)
	now := time.Now().UTC()
	if c.Clock != nil {
		now = c.Clock.Now().UTC()
	}

	expired, err := c.Polls.ListPollsPastEndDate(ctx, now)
	if err != nil {
		logger.Error("poll closer list failed",
			"event", "poll_closer_list_failed",
			"module", "engagement/poll-engine",
			"layer", "worker",
			"error", err.Error(),
		)
		return err
	}
	if len(expired) == 0 {
		return nil
	}

	for _, poll := range expired {
		if err := c.Polls.MarkPollClosed(ctx, poll.PollID, now); err != nil {
			logger.Error("poll closer mark failed",
				"event", "poll_closer_mark_failed",
				"module", "engagement/poll-engine",
				"layer", "worker",
				"poll_id", poll.PollID,
				"error", err.Error(),
			)
			return err
		}
		if c.Outbox != nil {
			eventID, err := c.IDGen.NewID(ctx)
			if err != nil {
				return err
			}
			envelope, err := commands.NewPollEnvelope(eventID, "poll.closed", poll.PollID, now, map[string]any{
				"poll_id":  poll.PollID,
				"owner_id": poll.OwnerID,
				"end_date": poll.EndDate.UTC().Format(time.RFC3339),
			})
			if err != nil {
				return err
			}
			if err := c.Outbox.AppendOutbox(ctx, envelope); err != nil {
				return err
			}
		}
		logger.Info("poll closed",
			"event", "poll_closer_closed",
			"module", "engagement/poll-engine",
			"layer", "worker",
			"poll_id", poll.PollID,
		)
	}
	return nil
}
