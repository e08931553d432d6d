package commands

import (
	"encoding/json"
	"time"

	"atrium/contexts/engagement/poll-engine/ports"
)

// NewPollEnvelope builds the outbox event shape for poll-scoped events.
// Events are partitioned by poll for stable ordering on poll-scoped
// consumers such as the notice board feed.
func NewPollEnvelope(
	eventID string,
	eventType string,
	pollID string,
	occurredAt time.Time,
	data map[string]any,
) (ports.EventEnvelope, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return ports.EventEnvelope{}, err
	}
	return ports.EventEnvelope{
		EventID:          eventID,
		EventType:        eventType,
		OccurredAt:       occurredAt.UTC(),
		SourceService:    "poll-engine",
		TraceID:          eventID,
		SchemaVersion:    1,
		PartitionKeyPath: "poll_id",
		PartitionKey:     pollID,
		Data:             payload,
	}, nil
}
