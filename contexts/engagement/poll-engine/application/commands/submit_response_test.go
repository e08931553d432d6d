package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	memoryadapter "atrium/contexts/engagement/poll-engine/adapters/memory"
	"atrium/contexts/engagement/poll-engine/domain/entities"
	domainerrors "atrium/contexts/engagement/poll-engine/domain/errors"
)

func newSubmitFixture(t *testing.T, allowMultiple bool, endDate *time.Time) (*memoryadapter.Store, SubmitResponseUseCase, entities.Poll) {
	t.Helper()
	store := memoryadapter.NewStore(nil)

	lifecycle := PollLifecycleUseCase{
		Polls:  store,
		Outbox: store,
		Clock:  store,
		IDGen:  store,
	}
	poll, err := lifecycle.CreatePoll(context.Background(), CreatePollCommand{
		OwnerID:            "owner-1",
		Title:              "Favorite feature",
		PollType:           entities.PollTypeMultipleChoice,
		AllowMultipleVotes: allowMultiple,
		EndDate:            endDate,
		Questions: []QuestionDefinition{
			{
				Text:         "Which feature do you use most?",
				QuestionType: entities.QuestionTypeMultipleChoice,
				IsRequired:   true,
				Options:      []string{"Dashboards", "Reports", "Alerts"},
			},
		},
	})
	if err != nil {
		t.Fatalf("create poll: %v", err)
	}

	uc := SubmitResponseUseCase{
		Polls:     store,
		Responses: store,
		Outbox:    store,
		Clock:     store,
		IDGen:     store,
	}
	return store, uc, poll
}

func TestSubmitResponseRejectsUnknownPoll(t *testing.T) {
	_, uc, _ := newSubmitFixture(t, false, nil)

	_, err := uc.Execute(context.Background(), SubmitResponseCommand{
		PollID: "missing",
		UserID: "user-1",
	})
	if !errors.Is(err, domainerrors.ErrPollNotFound) {
		t.Fatalf("expected ErrPollNotFound, got %v", err)
	}
}

func TestSubmitResponseRejectsDuplicateByUser(t *testing.T) {
	_, uc, poll := newSubmitFixture(t, false, nil)
	optionID := poll.Questions[0].Options[0].OptionID

	cmd := SubmitResponseCommand{
		PollID: poll.PollID,
		UserID: "user-1",
		Answers: []AnswerInput{
			{QuestionID: poll.Questions[0].QuestionID, OptionID: optionID},
		},
	}
	if _, err := uc.Execute(context.Background(), cmd); err != nil {
		t.Fatalf("first submission: %v", err)
	}
	if _, err := uc.Execute(context.Background(), cmd); !errors.Is(err, domainerrors.ErrDuplicateResponse) {
		t.Fatalf("expected ErrDuplicateResponse, got %v", err)
	}
}

func TestSubmitResponseRejectsDuplicateByIPWhenAnonymous(t *testing.T) {
	_, uc, poll := newSubmitFixture(t, false, nil)
	optionID := poll.Questions[0].Options[1].OptionID

	cmd := SubmitResponseCommand{
		PollID:    poll.PollID,
		IPAddress: "203.0.113.10",
		Answers: []AnswerInput{
			{QuestionID: poll.Questions[0].QuestionID, OptionID: optionID},
		},
	}
	if _, err := uc.Execute(context.Background(), cmd); err != nil {
		t.Fatalf("first submission: %v", err)
	}
	if _, err := uc.Execute(context.Background(), cmd); !errors.Is(err, domainerrors.ErrDuplicateResponse) {
		t.Fatalf("expected ErrDuplicateResponse, got %v", err)
	}
}

func TestSubmitResponseUserAndIPAreDistinctRespondents(t *testing.T) {
	_, uc, poll := newSubmitFixture(t, false, nil)
	questionID := poll.Questions[0].QuestionID
	optionID := poll.Questions[0].Options[0].OptionID

	first := SubmitResponseCommand{
		PollID:    poll.PollID,
		UserID:    "user-1",
		IPAddress: "203.0.113.10",
		Answers:   []AnswerInput{{QuestionID: questionID, OptionID: optionID}},
	}
	if _, err := uc.Execute(context.Background(), first); err != nil {
		t.Fatalf("first submission: %v", err)
	}

	// Anonymous submission from the same IP carries a different respondent
	// key: the user key took precedence for the first one.
	second := SubmitResponseCommand{
		PollID:    poll.PollID,
		IPAddress: "203.0.113.10",
		Answers:   []AnswerInput{{QuestionID: questionID, OptionID: optionID}},
	}
	if _, err := uc.Execute(context.Background(), second); err != nil {
		t.Fatalf("anonymous submission from same ip: %v", err)
	}
}

func TestSubmitResponseAllowsRepeatsWhenMultipleVotesEnabled(t *testing.T) {
	store, uc, poll := newSubmitFixture(t, true, nil)
	questionID := poll.Questions[0].QuestionID
	optionID := poll.Questions[0].Options[0].OptionID

	cmd := SubmitResponseCommand{
		PollID:  poll.PollID,
		UserID:  "user-1",
		Answers: []AnswerInput{{QuestionID: questionID, OptionID: optionID}},
	}
	for i := 0; i < 3; i++ {
		if _, err := uc.Execute(context.Background(), cmd); err != nil {
			t.Fatalf("submission %d: %v", i+1, err)
		}
	}

	stored, err := store.GetPoll(context.Background(), poll.PollID)
	if err != nil {
		t.Fatalf("get poll: %v", err)
	}
	if got := stored.Questions[0].Options[0].VoteCount; got != 3 {
		t.Fatalf("expected vote count 3, got %d", got)
	}
}

func TestSubmitResponseRejectsClosedPoll(t *testing.T) {
	endDate := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	store, uc, poll := newSubmitFixture(t, false, &endDate)

	store.SetNow(endDate.Add(time.Minute))
	_, err := uc.Execute(context.Background(), SubmitResponseCommand{
		PollID: poll.PollID,
		UserID: "user-1",
		Answers: []AnswerInput{
			{QuestionID: poll.Questions[0].QuestionID, OptionID: poll.Questions[0].Options[0].OptionID},
		},
	})
	if !errors.Is(err, domainerrors.ErrPollClosed) {
		t.Fatalf("expected ErrPollClosed, got %v", err)
	}
}

func TestSubmitResponseAcceptsSubmissionAtEndDate(t *testing.T) {
	endDate := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	store, uc, poll := newSubmitFixture(t, false, &endDate)

	// End date boundary is inclusive: only strictly-after is closed.
	store.SetNow(endDate)
	if _, err := uc.Execute(context.Background(), SubmitResponseCommand{
		PollID: poll.PollID,
		UserID: "user-1",
		Answers: []AnswerInput{
			{QuestionID: poll.Questions[0].QuestionID, OptionID: poll.Questions[0].Options[0].OptionID},
		},
	}); err != nil {
		t.Fatalf("submission at end date: %v", err)
	}
}

func TestSubmitResponseRejectsDeactivatedPoll(t *testing.T) {
	store, uc, poll := newSubmitFixture(t, false, nil)
	if err := store.MarkPollClosed(context.Background(), poll.PollID, time.Now().UTC()); err != nil {
		t.Fatalf("mark closed: %v", err)
	}

	_, err := uc.Execute(context.Background(), SubmitResponseCommand{
		PollID: poll.PollID,
		UserID: "user-1",
		Answers: []AnswerInput{
			{QuestionID: poll.Questions[0].QuestionID, OptionID: poll.Questions[0].Options[0].OptionID},
		},
	})
	if !errors.Is(err, domainerrors.ErrPollClosed) {
		t.Fatalf("expected ErrPollClosed, got %v", err)
	}
}

func TestSubmitResponseRejectsAnonymousWithoutIPOnSingleVotePoll(t *testing.T) {
	_, uc, poll := newSubmitFixture(t, false, nil)

	_, err := uc.Execute(context.Background(), SubmitResponseCommand{
		PollID: poll.PollID,
		Answers: []AnswerInput{
			{QuestionID: poll.Questions[0].QuestionID, OptionID: poll.Questions[0].Options[0].OptionID},
		},
	})
	if !errors.Is(err, domainerrors.ErrInvalidResponseInput) {
		t.Fatalf("expected ErrInvalidResponseInput, got %v", err)
	}
}

func TestSubmitResponseRejectsUnknownQuestionAndOption(t *testing.T) {
	_, uc, poll := newSubmitFixture(t, false, nil)

	_, err := uc.Execute(context.Background(), SubmitResponseCommand{
		PollID:  poll.PollID,
		UserID:  "user-1",
		Answers: []AnswerInput{{QuestionID: "missing", OptionID: "whatever"}},
	})
	if !errors.Is(err, domainerrors.ErrQuestionNotFound) {
		t.Fatalf("expected ErrQuestionNotFound, got %v", err)
	}

	_, err = uc.Execute(context.Background(), SubmitResponseCommand{
		PollID:  poll.PollID,
		UserID:  "user-2",
		Answers: []AnswerInput{{QuestionID: poll.Questions[0].QuestionID, OptionID: "missing"}},
	})
	if !errors.Is(err, domainerrors.ErrOptionNotFound) {
		t.Fatalf("expected ErrOptionNotFound, got %v", err)
	}
}

func TestSubmitResponseRejectsOutOfRangeRating(t *testing.T) {
	store := memoryadapter.NewStore(nil)
	lifecycle := PollLifecycleUseCase{Polls: store, Clock: store, IDGen: store}
	poll, err := lifecycle.CreatePoll(context.Background(), CreatePollCommand{
		OwnerID:  "owner-1",
		Title:    "Satisfaction survey",
		PollType: entities.PollTypeSurvey,
		Questions: []QuestionDefinition{
			{Text: "How satisfied are you?", QuestionType: entities.QuestionTypeRating},
		},
	})
	if err != nil {
		t.Fatalf("create poll: %v", err)
	}

	uc := SubmitResponseUseCase{Polls: store, Responses: store, Clock: store, IDGen: store}
	for _, rating := range []int{0, 6, -1} {
		value := rating
		_, err := uc.Execute(context.Background(), SubmitResponseCommand{
			PollID:  poll.PollID,
			UserID:  "user-1",
			Answers: []AnswerInput{{QuestionID: poll.Questions[0].QuestionID, Rating: &value}},
		})
		if !errors.Is(err, domainerrors.ErrInvalidResponseInput) {
			t.Fatalf("rating %d: expected ErrInvalidResponseInput, got %v", rating, err)
		}
	}

	valid := 5
	if _, err := uc.Execute(context.Background(), SubmitResponseCommand{
		PollID:  poll.PollID,
		UserID:  "user-1",
		Answers: []AnswerInput{{QuestionID: poll.Questions[0].QuestionID, Rating: &valid}},
	}); err != nil {
		t.Fatalf("valid rating: %v", err)
	}
}

func TestSubmitResponseFailedSubmissionDoesNotBlockRetry(t *testing.T) {
	_, uc, poll := newSubmitFixture(t, false, nil)
	questionID := poll.Questions[0].QuestionID

	_, err := uc.Execute(context.Background(), SubmitResponseCommand{
		PollID:  poll.PollID,
		UserID:  "user-1",
		Answers: []AnswerInput{{QuestionID: questionID, OptionID: "missing"}},
	})
	if !errors.Is(err, domainerrors.ErrOptionNotFound) {
		t.Fatalf("expected ErrOptionNotFound, got %v", err)
	}

	// The rejected attempt must not consume the respondent's single vote.
	if _, err := uc.Execute(context.Background(), SubmitResponseCommand{
		PollID:  poll.PollID,
		UserID:  "user-1",
		Answers: []AnswerInput{{QuestionID: questionID, OptionID: poll.Questions[0].Options[0].OptionID}},
	}); err != nil {
		t.Fatalf("retry after failure: %v", err)
	}
}

func TestSubmitResponseAppendsOutboxEvent(t *testing.T) {
	store, uc, poll := newSubmitFixture(t, false, nil)

	if _, err := uc.Execute(context.Background(), SubmitResponseCommand{
		PollID: poll.PollID,
		UserID: "user-1",
		Answers: []AnswerInput{
			{QuestionID: poll.Questions[0].QuestionID, OptionID: poll.Questions[0].Options[0].OptionID},
		},
	}); err != nil {
		t.Fatalf("submission: %v", err)
	}

	found := false
	for _, event := range store.OutboxEvents() {
		if event.EventType == "response.submitted" && event.PartitionKey == poll.PollID {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected response.submitted event in outbox")
	}
}
