package ports

import (
	"context"
	"encoding/json"
	"time"

	"atrium/contexts/engagement/poll-engine/domain/entities"
)

// PollRepository is the poll definition store: the aggregate of poll,
// questions and options is created, loaded and deleted as one unit.
type PollRepository interface {
	CreatePoll(ctx context.Context, poll entities.Poll) error
	GetPoll(ctx context.Context, pollID string) (entities.Poll, error)
	// UpdatePoll persists top-level poll fields only; question/option
	// structure is immutable after creation.
	UpdatePoll(ctx context.Context, poll entities.Poll) error
	// DeletePoll cascades to questions, options, responses and answers.
	DeletePoll(ctx context.Context, pollID string) error
	ListActivePolls(ctx context.Context, now time.Time) ([]entities.Poll, error)
	ListPollsByOwner(ctx context.Context, ownerID string) ([]entities.Poll, error)
	HasRespondent(ctx context.Context, pollID string, userID string, ipAddress string) (bool, error)

	// ListPollsPastEndDate and MarkPollClosed support the closer worker;
	// submission-time closure never depends on them.
	ListPollsPastEndDate(ctx context.Context, now time.Time) ([]entities.Poll, error)
	MarkPollClosed(ctx context.Context, pollID string, updatedAt time.Time) error
}

// ResponseRepository is the response store.
type ResponseRepository interface {
	// AddResponse persists the response with its answers and increments the
	// tally of every referenced option as one atomic transaction. When
	// enforceSingle is set the store enforces respondent uniqueness at insert
	// time and reports a conflict as ErrDuplicateResponse; callers must not
	// rely on a prior read to close that race.
	AddResponse(ctx context.Context, response entities.PollResponse, enforceSingle bool) error
	ListResponsesByPoll(ctx context.Context, pollID string) ([]entities.PollResponse, error)
	GetRespondentResponse(ctx context.Context, pollID string, userID string, ipAddress string) (entities.PollResponse, bool, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

type EventEnvelope struct {
	EventID          string          `json:"event_id"`
	EventType        string          `json:"event_type"`
	OccurredAt       time.Time       `json:"occurred_at"`
	SourceService    string          `json:"source_service"`
	TraceID          string          `json:"trace_id"`
	SchemaVersion    int             `json:"schema_version"`
	PartitionKeyPath string          `json:"partition_key_path"`
	PartitionKey     string          `json:"partition_key"`
	Data             json.RawMessage `json:"data"`
}

type OutboxMessage struct {
	OutboxID     string
	EventType    string
	PartitionKey string
	Payload      []byte
	CreatedAt    time.Time
}

type OutboxWriter interface {
	AppendOutbox(ctx context.Context, envelope EventEnvelope) error
}

type OutboxRepository interface {
	ListPendingOutbox(ctx context.Context, limit int) ([]OutboxMessage, error)
	MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error
}

type EventPublisher interface {
	Publish(ctx context.Context, topic string, event EventEnvelope) error
}
