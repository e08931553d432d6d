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

// AnswerInput carries one submitted answer. Payload-shape validation
// (exactly one populated field) is the upstream form validator's job; the
// engine maps whichever field is set, preferring option over rating over
// text, into the tagged answer variant. A checkbox selection arrives as one
// AnswerInput per selected option.
type AnswerInput struct {
	QuestionID string
	OptionID   string
	Text       string
	Rating     *int
}

type SubmitResponseCommand struct {
	PollID    string
	UserID    string
	IPAddress string
	UserAgent string
	Answers   []AnswerInput
}

// SubmitResponseUseCase is the submission hard path: existence check, close
// check, duplicate prevention, then one atomic persist of the response, its
// answers and the per-option tally increments.
type SubmitResponseUseCase struct {
	Polls     ports.PollRepository
	Responses ports.ResponseRepository
	Outbox    ports.OutboxWriter
	Clock     ports.Clock
	IDGen     ports.IDGenerator
	Logger    *slog.Logger
}

func (uc SubmitResponseUseCase) Execute(ctx context.Context, cmd SubmitResponseCommand) (entities.PollResponse, error) {
	logger := application.ResolveLogger(uc.Logger)
	pollID := strings.TrimSpace(cmd.PollID)
	userID := strings.TrimSpace(cmd.UserID)
	ipAddress := strings.TrimSpace(cmd.IPAddress)

	logger.Info("response submission started",
		"event", "poll_response_submit_started",
		"module", "engagement/poll-engine",
		"layer", "application",
		"poll_id", pollID,
		"user_id", userID,
		"answer_count", len(cmd.Answers),
	)

	poll, err := uc.Polls.GetPoll(ctx, pollID)
	if err != nil {
		return entities.PollResponse{}, err
	}

	now := uc.now()
	if poll.ClosedAt(now) {
		logger.Warn("response rejected for closed poll",
			"event", "poll_response_poll_closed",
			"module", "engagement/poll-engine",
			"layer", "application",
			"poll_id", poll.PollID,
		)
		return entities.PollResponse{}, domainerrors.ErrPollClosed
	}

	enforceSingle := !poll.AllowMultipleVotes
	if enforceSingle {
		if entities.RespondentKey(userID, ipAddress) == "" {
			return entities.PollResponse{}, domainerrors.ErrInvalidResponseInput
		}
		// Fast-path check for the common case; the store-level uniqueness
		// constraint inside AddResponse is what actually closes the
		// check-then-insert race between concurrent submissions.
		voted, err := uc.Polls.HasRespondent(ctx, poll.PollID, userID, ipAddress)
		if err != nil {
			return entities.PollResponse{}, err
		}
		if voted {
			return entities.PollResponse{}, domainerrors.ErrDuplicateResponse
		}
	}

	responseID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.PollResponse{}, err
	}
	response := entities.PollResponse{
		ResponseID:  responseID,
		PollID:      poll.PollID,
		UserID:      userID,
		IPAddress:   ipAddress,
		UserAgent:   strings.TrimSpace(cmd.UserAgent),
		SubmittedAt: now,
	}

	for _, input := range cmd.Answers {
		answer, err := uc.buildAnswer(ctx, poll, responseID, input)
		if err != nil {
			return entities.PollResponse{}, err
		}
		response.Answers = append(response.Answers, answer)
	}

	if err := uc.Responses.AddResponse(ctx, response, enforceSingle); err != nil {
		return entities.PollResponse{}, err
	}
	if err := uc.appendResponseEvent(ctx, poll, response, now); err != nil {
		return entities.PollResponse{}, err
	}

	logger.Info("response submitted",
		"event", "poll_response_submitted",
		"module", "engagement/poll-engine",
		"layer", "application",
		"poll_id", poll.PollID,
		"response_id", response.ResponseID,
		"answer_count", len(response.Answers),
	)
	return response, nil
}

func (uc SubmitResponseUseCase) buildAnswer(
	ctx context.Context,
	poll entities.Poll,
	responseID string,
	input AnswerInput,
) (entities.PollAnswer, error) {
	question, ok := poll.Question(strings.TrimSpace(input.QuestionID))
	if !ok {
		return entities.PollAnswer{}, domainerrors.ErrQuestionNotFound
	}

	var value entities.AnswerValue
	switch {
	case strings.TrimSpace(input.OptionID) != "":
		optionID := strings.TrimSpace(input.OptionID)
		if _, ok := question.Option(optionID); !ok {
			return entities.PollAnswer{}, domainerrors.ErrOptionNotFound
		}
		value = entities.OptionValue(optionID)
	case input.Rating != nil:
		if *input.Rating < entities.RatingMin || *input.Rating > entities.RatingMax {
			return entities.PollAnswer{}, domainerrors.ErrInvalidResponseInput
		}
		value = entities.RatingValue(*input.Rating)
	default:
		value = entities.TextValue(input.Text)
	}

	answerID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.PollAnswer{}, err
	}
	return entities.PollAnswer{
		AnswerID:   answerID,
		ResponseID: responseID,
		QuestionID: question.QuestionID,
		Value:      value,
	}, nil
}

func (uc SubmitResponseUseCase) appendResponseEvent(
	ctx context.Context,
	poll entities.Poll,
	response entities.PollResponse,
	occurredAt time.Time,
) error {
	if uc.Outbox == nil {
		return nil
	}
	eventID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return err
	}
	envelope, err := NewPollEnvelope(eventID, "response.submitted", poll.PollID, occurredAt, map[string]any{
		"poll_id":      poll.PollID,
		"response_id":  response.ResponseID,
		"answer_count": len(response.Answers),
		"occurred_at":  occurredAt.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return err
	}
	return uc.Outbox.AppendOutbox(ctx, envelope)
}

func (uc SubmitResponseUseCase) now() time.Time {
	if uc.Clock != nil {
		return uc.Clock.Now().UTC()
	}
	return time.Now().UTC()
}
