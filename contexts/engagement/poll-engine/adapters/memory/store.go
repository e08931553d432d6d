package memoryadapter

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"atrium/contexts/engagement/poll-engine/domain/entities"
	domainerrors "atrium/contexts/engagement/poll-engine/domain/errors"
	"atrium/contexts/engagement/poll-engine/ports"

	"github.com/google/uuid"
)

// Store is an in-memory implementation of the poll engine ports used by
// tests and local development. One mutex guards every map, so the
// duplicate-response check and the tally increments happen atomically the
// same way the database constraint and counter expression do in production.
type Store struct {
	mu        sync.Mutex
	polls     map[string]entities.Poll
	responses map[string][]entities.PollResponse
	// singleVoteKeys holds pollID -> respondent keys that already submitted
	// to a single-vote poll.
	singleVoteKeys map[string]map[string]struct{}
	outbox         []ports.OutboxMessage
	published      map[string]time.Time
	fixedNow       time.Time
}

func NewStore(seed []entities.Poll) *Store {
	store := &Store{
		polls:          make(map[string]entities.Poll, len(seed)),
		responses:      make(map[string][]entities.PollResponse),
		singleVoteKeys: make(map[string]map[string]struct{}),
		published:      make(map[string]time.Time),
	}
	for _, poll := range seed {
		store.polls[poll.PollID] = clonePoll(poll)
	}
	return store
}

func (s *Store) CreatePoll(_ context.Context, poll entities.Poll) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.polls[poll.PollID] = clonePoll(poll)
	return nil
}

func (s *Store) GetPoll(_ context.Context, pollID string) (entities.Poll, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	poll, ok := s.polls[strings.TrimSpace(pollID)]
	if !ok {
		return entities.Poll{}, domainerrors.ErrPollNotFound
	}
	return clonePoll(poll), nil
}

func (s *Store) UpdatePoll(_ context.Context, poll entities.Poll) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.polls[poll.PollID]
	if !ok {
		return domainerrors.ErrPollNotFound
	}
	updated := clonePoll(poll)
	// Tallies live on the stored aggregate; a metadata update never
	// overwrites them.
	updated.Questions = existing.Questions
	s.polls[poll.PollID] = updated
	return nil
}

func (s *Store) DeletePoll(_ context.Context, pollID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	pollID = strings.TrimSpace(pollID)
	if _, ok := s.polls[pollID]; !ok {
		return domainerrors.ErrPollNotFound
	}
	delete(s.polls, pollID)
	delete(s.responses, pollID)
	delete(s.singleVoteKeys, pollID)
	return nil
}

func (s *Store) ListActivePolls(_ context.Context, now time.Time) ([]entities.Poll, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]entities.Poll, 0, len(s.polls))
	for _, poll := range s.polls {
		if !poll.IsActive {
			continue
		}
		if poll.EndDate != nil && now.UTC().After(poll.EndDate.UTC()) {
			continue
		}
		items = append(items, clonePoll(poll))
	}
	sortPollsNewestFirst(items)
	return items, nil
}

func (s *Store) ListPollsByOwner(_ context.Context, ownerID string) ([]entities.Poll, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ownerID = strings.TrimSpace(ownerID)
	items := make([]entities.Poll, 0)
	for _, poll := range s.polls {
		if strings.EqualFold(poll.OwnerID, ownerID) {
			items = append(items, clonePoll(poll))
		}
	}
	sortPollsNewestFirst(items)
	return items, nil
}

func (s *Store) ListPollsPastEndDate(_ context.Context, now time.Time) ([]entities.Poll, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]entities.Poll, 0)
	for _, poll := range s.polls {
		if !poll.IsActive || poll.EndDate == nil {
			continue
		}
		if now.UTC().After(poll.EndDate.UTC()) {
			items = append(items, clonePoll(poll))
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].EndDate.Before(*items[j].EndDate)
	})
	return items, nil
}

func (s *Store) MarkPollClosed(_ context.Context, pollID string, updatedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	poll, ok := s.polls[strings.TrimSpace(pollID)]
	if !ok {
		return domainerrors.ErrPollNotFound
	}
	poll.IsActive = false
	poll.UpdatedAt = updatedAt.UTC()
	s.polls[poll.PollID] = poll
	return nil
}

func (s *Store) HasRespondent(_ context.Context, pollID string, userID string, ipAddress string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := entities.RespondentKey(strings.TrimSpace(userID), strings.TrimSpace(ipAddress))
	if key == "" {
		return false, nil
	}
	for _, response := range s.responses[strings.TrimSpace(pollID)] {
		if response.RespondentKey() == key {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) AddResponse(_ context.Context, response entities.PollResponse, enforceSingle bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	poll, ok := s.polls[response.PollID]
	if !ok {
		return domainerrors.ErrPollNotFound
	}
	// Work on a copy so a rejected answer leaves stored tallies untouched.
	poll = clonePoll(poll)

	key := response.RespondentKey()
	if enforceSingle && key != "" {
		taken := s.singleVoteKeys[response.PollID]
		if _, exists := taken[key]; exists {
			return domainerrors.ErrDuplicateResponse
		}
	}

	for _, answer := range response.Answers {
		optionID, ok := answer.Value.OptionID()
		if !ok {
			continue
		}
		if !incrementOption(&poll, answer.QuestionID, optionID) {
			return domainerrors.ErrOptionNotFound
		}
	}
	s.polls[response.PollID] = poll

	if enforceSingle && key != "" {
		if s.singleVoteKeys[response.PollID] == nil {
			s.singleVoteKeys[response.PollID] = make(map[string]struct{})
		}
		s.singleVoteKeys[response.PollID][key] = struct{}{}
	}
	s.responses[response.PollID] = append(s.responses[response.PollID], cloneResponse(response))
	return nil
}

func (s *Store) ListResponsesByPoll(_ context.Context, pollID string) ([]entities.PollResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := s.responses[strings.TrimSpace(pollID)]
	items := make([]entities.PollResponse, 0, len(stored))
	for _, response := range stored {
		items = append(items, cloneResponse(response))
	}
	return items, nil
}

func (s *Store) GetRespondentResponse(
	_ context.Context,
	pollID string,
	userID string,
	ipAddress string,
) (entities.PollResponse, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := entities.RespondentKey(strings.TrimSpace(userID), strings.TrimSpace(ipAddress))
	if key == "" {
		return entities.PollResponse{}, false, nil
	}
	stored := s.responses[strings.TrimSpace(pollID)]
	for i := len(stored) - 1; i >= 0; i-- {
		if stored[i].RespondentKey() == key {
			return cloneResponse(stored[i]), true, nil
		}
	}
	return entities.PollResponse{}, false, nil
}

func (s *Store) AppendOutbox(_ context.Context, envelope ports.EventEnvelope) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, row := range s.outbox {
		if row.OutboxID == envelope.EventID {
			return nil
		}
	}
	payload, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	s.outbox = append(s.outbox, ports.OutboxMessage{
		OutboxID:     envelope.EventID,
		EventType:    envelope.EventType,
		PartitionKey: envelope.PartitionKey,
		Payload:      payload,
		CreatedAt:    envelope.OccurredAt.UTC(),
	})
	return nil
}

func (s *Store) ListPendingOutbox(_ context.Context, limit int) ([]ports.OutboxMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if limit <= 0 {
		limit = 100
	}
	items := make([]ports.OutboxMessage, 0, limit)
	for _, row := range s.outbox {
		if _, done := s.published[row.OutboxID]; done {
			continue
		}
		copied := row
		copied.Payload = append([]byte(nil), row.Payload...)
		items = append(items, copied)
		if len(items) == limit {
			break
		}
	}
	return items, nil
}

func (s *Store) MarkOutboxPublished(_ context.Context, outboxID string, publishedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.published[outboxID] = publishedAt.UTC()
	return nil
}

// OutboxEvents decodes every stored outbox payload, published or not, in
// append order. Test helper.
func (s *Store) OutboxEvents() []ports.EventEnvelope {
	s.mu.Lock()
	defer s.mu.Unlock()
	events := make([]ports.EventEnvelope, 0, len(s.outbox))
	for _, row := range s.outbox {
		var event ports.EventEnvelope
		if err := json.Unmarshal(row.Payload, &event); err != nil {
			continue
		}
		events = append(events, event)
	}
	return events
}

func (s *Store) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.fixedNow.IsZero() {
		return s.fixedNow
	}
	return time.Now().UTC()
}

// SetNow pins the store clock to a fixed instant. Test helper.
func (s *Store) SetNow(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fixedNow = now.UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func incrementOption(poll *entities.Poll, questionID string, optionID string) bool {
	for qi := range poll.Questions {
		if poll.Questions[qi].QuestionID != questionID {
			continue
		}
		for oi := range poll.Questions[qi].Options {
			if poll.Questions[qi].Options[oi].OptionID == optionID {
				poll.Questions[qi].Options[oi].VoteCount++
				return true
			}
		}
	}
	return false
}

func sortPollsNewestFirst(items []entities.Poll) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].PollID < items[j].PollID
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
}

func clonePoll(poll entities.Poll) entities.Poll {
	copied := poll
	copied.EndDate = cloneTime(poll.EndDate)
	copied.Questions = make([]entities.PollQuestion, len(poll.Questions))
	for i, question := range poll.Questions {
		questionCopy := question
		questionCopy.Options = append([]entities.PollOption(nil), question.Options...)
		copied.Questions[i] = questionCopy
	}
	return copied
}

func cloneResponse(response entities.PollResponse) entities.PollResponse {
	copied := response
	copied.Answers = append([]entities.PollAnswer(nil), response.Answers...)
	return copied
}

func cloneTime(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	copied := *value
	return &copied
}

var _ ports.PollRepository = (*Store)(nil)
var _ ports.ResponseRepository = (*Store)(nil)
var _ ports.OutboxWriter = (*Store)(nil)
var _ ports.OutboxRepository = (*Store)(nil)
var _ ports.Clock = (*Store)(nil)
var _ ports.IDGenerator = (*Store)(nil)
