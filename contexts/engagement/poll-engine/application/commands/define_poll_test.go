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

func newLifecycleFixture() (*memoryadapter.Store, PollLifecycleUseCase) {
	store := memoryadapter.NewStore(nil)
	return store, PollLifecycleUseCase{
		Polls:  store,
		Outbox: store,
		Clock:  store,
		IDGen:  store,
	}
}

func TestCreatePollAssignsOrderAndStartsActive(t *testing.T) {
	_, uc := newLifecycleFixture()

	poll, err := uc.CreatePoll(context.Background(), CreatePollCommand{
		OwnerID:  "owner-1",
		Title:    "Quarterly survey",
		PollType: entities.PollTypeSurvey,
		Questions: []QuestionDefinition{
			{Text: "Pick a team", QuestionType: entities.QuestionTypeMultipleChoice, Options: []string{"Red", "Blue"}},
			{Text: "Any comments?", QuestionType: entities.QuestionTypeText},
			{Text: "Rate us", QuestionType: entities.QuestionTypeRating},
		},
	})
	if err != nil {
		t.Fatalf("create poll: %v", err)
	}
	if !poll.IsActive {
		t.Fatalf("expected new poll to be active")
	}
	for i, question := range poll.Questions {
		if question.Order != i {
			t.Fatalf("question %d: expected order %d, got %d", i, i, question.Order)
		}
	}
	for i, option := range poll.Questions[0].Options {
		if option.Order != i {
			t.Fatalf("option %d: expected order %d, got %d", i, i, option.Order)
		}
		if option.VoteCount != 0 {
			t.Fatalf("expected zero initial tally, got %d", option.VoteCount)
		}
	}
}

func TestCreatePollDefaultsYesNoOptions(t *testing.T) {
	_, uc := newLifecycleFixture()

	poll, err := uc.CreatePoll(context.Background(), CreatePollCommand{
		OwnerID:  "owner-1",
		Title:    "Ship it?",
		PollType: entities.PollTypeYesNo,
		Questions: []QuestionDefinition{
			{Text: "Should we ship on Friday?", QuestionType: entities.QuestionTypeYesNo},
		},
	})
	if err != nil {
		t.Fatalf("create poll: %v", err)
	}
	options := poll.Questions[0].Options
	if len(options) != 2 || options[0].Text != "Yes" || options[1].Text != "No" {
		t.Fatalf("expected default Yes/No options, got %+v", options)
	}
}

func TestCreatePollValidation(t *testing.T) {
	_, uc := newLifecycleFixture()

	cases := []struct {
		name string
		cmd  CreatePollCommand
	}{
		{
			name: "missing title",
			cmd: CreatePollCommand{
				OwnerID:  "owner-1",
				PollType: entities.PollTypeYesNo,
				Questions: []QuestionDefinition{
					{Text: "Q", QuestionType: entities.QuestionTypeYesNo},
				},
			},
		},
		{
			name: "no questions",
			cmd: CreatePollCommand{
				OwnerID:  "owner-1",
				Title:    "Empty",
				PollType: entities.PollTypeYesNo,
			},
		},
		{
			name: "unknown poll type",
			cmd: CreatePollCommand{
				OwnerID:  "owner-1",
				Title:    "Bad type",
				PollType: entities.PollType(99),
				Questions: []QuestionDefinition{
					{Text: "Q", QuestionType: entities.QuestionTypeYesNo},
				},
			},
		},
		{
			name: "choice question with one option",
			cmd: CreatePollCommand{
				OwnerID:  "owner-1",
				Title:    "One option",
				PollType: entities.PollTypeMultipleChoice,
				Questions: []QuestionDefinition{
					{Text: "Q", QuestionType: entities.QuestionTypeMultipleChoice, Options: []string{"Only"}},
				},
			},
		},
		{
			name: "text question with options",
			cmd: CreatePollCommand{
				OwnerID:  "owner-1",
				Title:    "Text with options",
				PollType: entities.PollTypeSurvey,
				Questions: []QuestionDefinition{
					{Text: "Q", QuestionType: entities.QuestionTypeText, Options: []string{"A", "B"}},
				},
			},
		},
	}
	for _, tc := range cases {
		if _, err := uc.CreatePoll(context.Background(), tc.cmd); !errors.Is(err, domainerrors.ErrInvalidPollInput) {
			t.Fatalf("%s: expected ErrInvalidPollInput, got %v", tc.name, err)
		}
	}
}

func TestUpdatePollPatchesTopLevelFieldsOnly(t *testing.T) {
	store, uc := newLifecycleFixture()

	poll, err := uc.CreatePoll(context.Background(), CreatePollCommand{
		OwnerID:  "owner-1",
		Title:    "Original",
		PollType: entities.PollTypeMultipleChoice,
		Questions: []QuestionDefinition{
			{Text: "Q", QuestionType: entities.QuestionTypeMultipleChoice, Options: []string{"A", "B"}},
		},
	})
	if err != nil {
		t.Fatalf("create poll: %v", err)
	}

	title := "Renamed"
	active := false
	endDate := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)
	updated, err := uc.UpdatePoll(context.Background(), UpdatePollCommand{
		PollID:   poll.PollID,
		Title:    &title,
		IsActive: &active,
		EndDate:  &endDate,
	})
	if err != nil {
		t.Fatalf("update poll: %v", err)
	}
	if updated.Title != "Renamed" || updated.IsActive || updated.EndDate == nil {
		t.Fatalf("patch not applied: %+v", updated)
	}

	stored, err := store.GetPoll(context.Background(), poll.PollID)
	if err != nil {
		t.Fatalf("get poll: %v", err)
	}
	if len(stored.Questions) != 1 || len(stored.Questions[0].Options) != 2 {
		t.Fatalf("question structure changed by update: %+v", stored.Questions)
	}
}

func TestUpdatePollClearsEndDate(t *testing.T) {
	_, uc := newLifecycleFixture()

	endDate := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	poll, err := uc.CreatePoll(context.Background(), CreatePollCommand{
		OwnerID:  "owner-1",
		Title:    "Timed poll",
		PollType: entities.PollTypeYesNo,
		EndDate:  &endDate,
		Questions: []QuestionDefinition{
			{Text: "Q", QuestionType: entities.QuestionTypeYesNo},
		},
	})
	if err != nil {
		t.Fatalf("create poll: %v", err)
	}

	updated, err := uc.UpdatePoll(context.Background(), UpdatePollCommand{
		PollID:       poll.PollID,
		ClearEndDate: true,
	})
	if err != nil {
		t.Fatalf("update poll: %v", err)
	}
	if updated.EndDate != nil {
		t.Fatalf("expected end date cleared, got %v", updated.EndDate)
	}
}

func TestUpdatePollUnknownPoll(t *testing.T) {
	_, uc := newLifecycleFixture()
	title := "x"
	_, err := uc.UpdatePoll(context.Background(), UpdatePollCommand{PollID: "missing", Title: &title})
	if !errors.Is(err, domainerrors.ErrPollNotFound) {
		t.Fatalf("expected ErrPollNotFound, got %v", err)
	}
}

func TestDeletePollRequiresOwnership(t *testing.T) {
	store, uc := newLifecycleFixture()

	poll, err := uc.CreatePoll(context.Background(), CreatePollCommand{
		OwnerID:  "owner-1",
		Title:    "To delete",
		PollType: entities.PollTypeYesNo,
		Questions: []QuestionDefinition{
			{Text: "Q", QuestionType: entities.QuestionTypeYesNo},
		},
	})
	if err != nil {
		t.Fatalf("create poll: %v", err)
	}

	deleted, err := uc.DeletePoll(context.Background(), DeletePollCommand{
		PollID:      poll.PollID,
		RequesterID: "someone-else",
	})
	if deleted || !errors.Is(err, domainerrors.ErrPermissionDenied) {
		t.Fatalf("expected permission denied, got deleted=%v err=%v", deleted, err)
	}
	if _, err := store.GetPoll(context.Background(), poll.PollID); err != nil {
		t.Fatalf("denied delete must leave poll intact: %v", err)
	}

	deleted, err = uc.DeletePoll(context.Background(), DeletePollCommand{
		PollID:      poll.PollID,
		RequesterID: "owner-1",
	})
	if !deleted || err != nil {
		t.Fatalf("owner delete: deleted=%v err=%v", deleted, err)
	}
	if _, err := store.GetPoll(context.Background(), poll.PollID); !errors.Is(err, domainerrors.ErrPollNotFound) {
		t.Fatalf("expected ErrPollNotFound after delete, got %v", err)
	}
}
