package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "atrium/contexts/engagement/poll-engine/application"
	"atrium/contexts/engagement/poll-engine/domain/entities"
	domainerrors "atrium/contexts/engagement/poll-engine/domain/errors"
	"atrium/contexts/engagement/poll-engine/ports"
)

// QuestionDefinition is the write-model input for one question. Option and
// question order is assigned from list position, zero-based and gapless.
type QuestionDefinition struct {
	Text         string
	QuestionType entities.QuestionType
	IsRequired   bool
	Options      []string
}

type CreatePollCommand struct {
	OwnerID            string
	Title              string
	Description        string
	PollType           entities.PollType
	AllowMultipleVotes bool
	EndDate            *time.Time
	Questions          []QuestionDefinition
}

// UpdatePollCommand patches top-level poll fields only. Nil pointer fields
// are left untouched; ClearEndDate removes an existing end date.
type UpdatePollCommand struct {
	PollID             string
	Title              *string
	Description        *string
	PollType           *entities.PollType
	AllowMultipleVotes *bool
	IsActive           *bool
	EndDate            *time.Time
	ClearEndDate       bool
}

type DeletePollCommand struct {
	PollID      string
	RequesterID string
}

// PollLifecycleUseCase orchestrates poll definition commands. Question and
// option structure is frozen at creation time: the update surface has no
// structural fields, which keeps already-published aggregates consistent.
type PollLifecycleUseCase struct {
	Polls  ports.PollRepository
	Outbox ports.OutboxWriter
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

// CreatePoll validates the definition, assigns ids and ordering, and
// persists the whole aggregate atomically.
func (uc PollLifecycleUseCase) CreatePoll(ctx context.Context, cmd CreatePollCommand) (entities.Poll, error) {
	logger := application.ResolveLogger(uc.Logger)

	ownerID := strings.TrimSpace(cmd.OwnerID)
	title := strings.TrimSpace(cmd.Title)
	if ownerID == "" || title == "" || len(cmd.Questions) == 0 {
		logger.Warn("poll create validation failed",
			"event", "poll_create_validation_failed",
			"module", "engagement/poll-engine",
			"layer", "application",
			"owner_id", ownerID,
			"question_count", len(cmd.Questions),
		)
		return entities.Poll{}, domainerrors.ErrInvalidPollInput
	}
	if !isKnownPollType(cmd.PollType) {
		return entities.Poll{}, domainerrors.ErrInvalidPollInput
	}

	now := uc.now()
	pollID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Poll{}, err
	}

	questions := make([]entities.PollQuestion, 0, len(cmd.Questions))
	for position, def := range cmd.Questions {
		question, err := uc.buildQuestion(ctx, def, position)
		if err != nil {
			return entities.Poll{}, err
		}
		questions = append(questions, question)
	}

	poll := entities.Poll{
		PollID:             pollID,
		OwnerID:            ownerID,
		Title:              title,
		Description:        strings.TrimSpace(cmd.Description),
		PollType:           cmd.PollType,
		AllowMultipleVotes: cmd.AllowMultipleVotes,
		IsActive:           true,
		EndDate:            normalizeEndDate(cmd.EndDate),
		Questions:          questions,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := uc.Polls.CreatePoll(ctx, poll); err != nil {
		return entities.Poll{}, err
	}
	if err := uc.appendPollEvent(ctx, "poll.created", poll, now, nil); err != nil {
		return entities.Poll{}, err
	}

	logger.Info("poll created",
		"event", "poll_created",
		"module", "engagement/poll-engine",
		"layer", "application",
		"poll_id", poll.PollID,
		"owner_id", poll.OwnerID,
		"poll_type", int(poll.PollType),
		"question_count", len(poll.Questions),
	)
	return poll, nil
}

// UpdatePoll applies a top-level patch to an existing poll.
func (uc PollLifecycleUseCase) UpdatePoll(ctx context.Context, cmd UpdatePollCommand) (entities.Poll, error) {
	logger := application.ResolveLogger(uc.Logger)

	poll, err := uc.Polls.GetPoll(ctx, strings.TrimSpace(cmd.PollID))
	if err != nil {
		return entities.Poll{}, err
	}

	if cmd.Title != nil {
		title := strings.TrimSpace(*cmd.Title)
		if title == "" {
			return entities.Poll{}, domainerrors.ErrInvalidPollInput
		}
		poll.Title = title
	}
	if cmd.Description != nil {
		poll.Description = strings.TrimSpace(*cmd.Description)
	}
	if cmd.PollType != nil {
		if !isKnownPollType(*cmd.PollType) {
			return entities.Poll{}, domainerrors.ErrInvalidPollInput
		}
		poll.PollType = *cmd.PollType
	}
	if cmd.AllowMultipleVotes != nil {
		poll.AllowMultipleVotes = *cmd.AllowMultipleVotes
	}
	if cmd.IsActive != nil {
		poll.IsActive = *cmd.IsActive
	}
	if cmd.ClearEndDate {
		poll.EndDate = nil
	} else if cmd.EndDate != nil {
		poll.EndDate = normalizeEndDate(cmd.EndDate)
	}

	now := uc.now()
	poll.UpdatedAt = now
	if err := uc.Polls.UpdatePoll(ctx, poll); err != nil {
		return entities.Poll{}, err
	}
	if err := uc.appendPollEvent(ctx, "poll.updated", poll, now, nil); err != nil {
		return entities.Poll{}, err
	}

	logger.Info("poll updated",
		"event", "poll_updated",
		"module", "engagement/poll-engine",
		"layer", "application",
		"poll_id", poll.PollID,
	)
	return poll, nil
}

// DeletePoll removes the poll aggregate when the requester owns it. A
// non-owner request is a denial, not a hard failure: the poll stays intact
// and the caller can tell denial apart from absence through the error kind.
func (uc PollLifecycleUseCase) DeletePoll(ctx context.Context, cmd DeletePollCommand) (bool, error) {
	logger := application.ResolveLogger(uc.Logger)

	poll, err := uc.Polls.GetPoll(ctx, strings.TrimSpace(cmd.PollID))
	if err != nil {
		return false, err
	}
	if !strings.EqualFold(poll.OwnerID, strings.TrimSpace(cmd.RequesterID)) {
		logger.Warn("poll delete denied",
			"event", "poll_delete_denied",
			"module", "engagement/poll-engine",
			"layer", "application",
			"poll_id", poll.PollID,
			"requester_id", strings.TrimSpace(cmd.RequesterID),
		)
		return false, domainerrors.ErrPermissionDenied
	}

	if err := uc.Polls.DeletePoll(ctx, poll.PollID); err != nil {
		return false, err
	}
	now := uc.now()
	if err := uc.appendPollEvent(ctx, "poll.deleted", poll, now, map[string]any{
		"requester_id": strings.TrimSpace(cmd.RequesterID),
	}); err != nil {
		return false, err
	}

	logger.Info("poll deleted",
		"event", "poll_deleted",
		"module", "engagement/poll-engine",
		"layer", "application",
		"poll_id", poll.PollID,
	)
	return true, nil
}

func (uc PollLifecycleUseCase) buildQuestion(
	ctx context.Context,
	def QuestionDefinition,
	position int,
) (entities.PollQuestion, error) {
	text := strings.TrimSpace(def.Text)
	if text == "" || !isKnownQuestionType(def.QuestionType) {
		return entities.PollQuestion{}, domainerrors.ErrInvalidPollInput
	}

	questionID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.PollQuestion{}, err
	}
	question := entities.PollQuestion{
		QuestionID:   questionID,
		Text:         text,
		QuestionType: def.QuestionType,
		Order:        position,
		IsRequired:   def.IsRequired,
	}

	optionTexts := make([]string, 0, len(def.Options))
	for _, raw := range def.Options {
		option := strings.TrimSpace(raw)
		if option == "" {
			return entities.PollQuestion{}, domainerrors.ErrInvalidPollInput
		}
		optionTexts = append(optionTexts, option)
	}

	switch def.QuestionType {
	case entities.QuestionTypeText, entities.QuestionTypeRating:
		if len(optionTexts) != 0 {
			return entities.PollQuestion{}, domainerrors.ErrInvalidPollInput
		}
		return question, nil
	case entities.QuestionTypeYesNo:
		if len(optionTexts) == 0 {
			optionTexts = []string{"Yes", "No"}
		}
		if len(optionTexts) != 2 {
			return entities.PollQuestion{}, domainerrors.ErrInvalidPollInput
		}
	default:
		if len(optionTexts) < 2 {
			return entities.PollQuestion{}, domainerrors.ErrInvalidPollInput
		}
	}

	for position, text := range optionTexts {
		optionID, err := uc.IDGen.NewID(ctx)
		if err != nil {
			return entities.PollQuestion{}, err
		}
		question.Options = append(question.Options, entities.PollOption{
			OptionID:  optionID,
			Text:      text,
			Order:     position,
			VoteCount: 0,
		})
	}
	return question, nil
}

func (uc PollLifecycleUseCase) now() time.Time {
	if uc.Clock != nil {
		return uc.Clock.Now().UTC()
	}
	return time.Now().UTC()
}

func (uc PollLifecycleUseCase) appendPollEvent(
	ctx context.Context,
	eventType string,
	poll entities.Poll,
	occurredAt time.Time,
	metadata map[string]any,
) error {
	if uc.Outbox == nil {
		return nil
	}
	eventID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return err
	}
	data := map[string]any{
		"poll_id":              poll.PollID,
		"owner_id":             poll.OwnerID,
		"poll_type":            int(poll.PollType),
		"allow_multiple_votes": poll.AllowMultipleVotes,
		"is_active":            poll.IsActive,
		"occurred_at":          occurredAt.UTC().Format(time.RFC3339),
	}
	for key, value := range metadata {
		data[key] = value
	}
	envelope, err := NewPollEnvelope(eventID, eventType, poll.PollID, occurredAt, data)
	if err != nil {
		return err
	}
	return uc.Outbox.AppendOutbox(ctx, envelope)
}

func normalizeEndDate(endDate *time.Time) *time.Time {
	if endDate == nil {
		return nil
	}
	normalized := endDate.UTC()
	return &normalized
}

func isKnownPollType(pollType entities.PollType) bool {
	switch pollType {
	case entities.PollTypeYesNo, entities.PollTypeMultipleChoice, entities.PollTypeSurvey:
		return true
	default:
		return false
	}
}

func isKnownQuestionType(questionType entities.QuestionType) bool {
	switch questionType {
	case entities.QuestionTypeYesNo,
		entities.QuestionTypeMultipleChoice,
		entities.QuestionTypeCheckbox,
		entities.QuestionTypeText,
		entities.QuestionTypeRating:
		return true
	default:
		return false
	}
}
