package workers

import (
	"context"
	"errors"
	"testing"
	"time"

	memoryadapter "atrium/contexts/engagement/poll-engine/adapters/memory"
	"atrium/contexts/engagement/poll-engine/application/commands"
	"atrium/contexts/engagement/poll-engine/domain/entities"
	"atrium/contexts/engagement/poll-engine/ports"
)

type capturingPublisher struct {
	published []ports.EventEnvelope
	fail      bool
}

func (p *capturingPublisher) Publish(_ context.Context, _ string, event ports.EventEnvelope) error {
	if p.fail {
		return errors.New("broker unavailable")
	}
	p.published = append(p.published, event)
	return nil
}

func createTimedPoll(t *testing.T, store *memoryadapter.Store, endDate time.Time) entities.Poll {
	t.Helper()
	lifecycle := commands.PollLifecycleUseCase{Polls: store, Outbox: store, Clock: store, IDGen: store}
	poll, err := lifecycle.CreatePoll(context.Background(), commands.CreatePollCommand{
		OwnerID:  "owner-1",
		Title:    "Timed poll",
		PollType: entities.PollTypeYesNo,
		EndDate:  &endDate,
		Questions: []commands.QuestionDefinition{
			{Text: "Proceed?", QuestionType: entities.QuestionTypeYesNo},
		},
	})
	if err != nil {
		t.Fatalf("create poll: %v", err)
	}
	return poll
}

func TestPollCloserDeactivatesExpiredPolls(t *testing.T) {
	store := memoryadapter.NewStore(nil)
	endDate := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	poll := createTimedPoll(t, store, endDate)

	store.SetNow(endDate.Add(time.Hour))
	closer := PollCloser{Polls: store, Outbox: store, Clock: store, IDGen: store}
	if err := closer.RunOnce(context.Background()); err != nil {
		t.Fatalf("run once: %v", err)
	}

	stored, err := store.GetPoll(context.Background(), poll.PollID)
	if err != nil {
		t.Fatalf("get poll: %v", err)
	}
	if stored.IsActive {
		t.Fatalf("expected expired poll deactivated")
	}

	found := false
	for _, event := range store.OutboxEvents() {
		if event.EventType == "poll.closed" && event.PartitionKey == poll.PollID {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected poll.closed event in outbox")
	}
}

func TestPollCloserLeavesOpenPollsAlone(t *testing.T) {
	store := memoryadapter.NewStore(nil)
	endDate := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	poll := createTimedPoll(t, store, endDate)

	store.SetNow(endDate.Add(-time.Hour))
	closer := PollCloser{Polls: store, Outbox: store, Clock: store, IDGen: store}
	if err := closer.RunOnce(context.Background()); err != nil {
		t.Fatalf("run once: %v", err)
	}

	stored, err := store.GetPoll(context.Background(), poll.PollID)
	if err != nil {
		t.Fatalf("get poll: %v", err)
	}
	if !stored.IsActive {
		t.Fatalf("open poll must stay active")
	}
}

func TestOutboxRelayPublishesAndMarksRows(t *testing.T) {
	store := memoryadapter.NewStore(nil)
	createTimedPoll(t, store, time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC))

	publisher := &capturingPublisher{}
	relay := OutboxRelay{Outbox: store, Publisher: publisher, Clock: store}
	if err := relay.RunOnce(context.Background()); err != nil {
		t.Fatalf("run once: %v", err)
	}
	if len(publisher.published) == 0 {
		t.Fatalf("expected events published")
	}
	if publisher.published[0].EventType != "poll.created" {
		t.Fatalf("expected poll.created first, got %s", publisher.published[0].EventType)
	}

	pending, err := store.ListPendingOutbox(context.Background(), 10)
	if err != nil {
		t.Fatalf("list pending: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("expected no pending rows after relay, got %d", len(pending))
	}

	// Second cycle is a no-op.
	if err := relay.RunOnce(context.Background()); err != nil {
		t.Fatalf("second run: %v", err)
	}
	if len(publisher.published) != 1 {
		t.Fatalf("expected no republish, got %d events", len(publisher.published))
	}
}

func TestOutboxRelayKeepsRowsPendingOnPublishFailure(t *testing.T) {
	store := memoryadapter.NewStore(nil)
	createTimedPoll(t, store, time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC))

	publisher := &capturingPublisher{fail: true}
	relay := OutboxRelay{Outbox: store, Publisher: publisher, Clock: store}
	if err := relay.RunOnce(context.Background()); err == nil {
		t.Fatalf("expected publish failure to surface")
	}

	pending, err := store.ListPendingOutbox(context.Background(), 10)
	if err != nil {
		t.Fatalf("list pending: %v", err)
	}
	if len(pending) == 0 {
		t.Fatalf("expected rows still pending after failed publish")
	}
}
