package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"atrium/contexts/engagement/poll-engine/application/commands"
	"atrium/contexts/engagement/poll-engine/application/queries"
	"atrium/contexts/engagement/poll-engine/domain/entities"
	domainerrors "atrium/contexts/engagement/poll-engine/domain/errors"
	httptransport "atrium/contexts/engagement/poll-engine/transport/http"
)

type Handler struct {
	Lifecycle   commands.PollLifecycleUseCase
	Submissions commands.SubmitResponseUseCase
	Queries     queries.PollQueryUseCase
	Results     queries.ResultsUseCase
	Logger      *slog.Logger
}

func (h Handler) CreatePollHandler(
	ctx context.Context,
	ownerID string,
	req httptransport.CreatePollRequest,
) (httptransport.PollResponseBody, error) {
	endDate, err := parseOptionalTime(req.EndDate)
	if err != nil {
		return httptransport.PollResponseBody{}, domainerrors.ErrInvalidPollInput
	}

	questions := make([]commands.QuestionDefinition, 0, len(req.Questions))
	for _, question := range req.Questions {
		questions = append(questions, commands.QuestionDefinition{
			Text:         question.Text,
			QuestionType: entities.QuestionType(question.QuestionType),
			IsRequired:   question.IsRequired,
			Options:      question.Options,
		})
	}

	poll, err := h.Lifecycle.CreatePoll(ctx, commands.CreatePollCommand{
		OwnerID:            ownerID,
		Title:              req.Title,
		Description:        req.Description,
		PollType:           entities.PollType(req.PollType),
		AllowMultipleVotes: req.AllowMultipleVotes,
		EndDate:            endDate,
		Questions:          questions,
	})
	if err != nil {
		return httptransport.PollResponseBody{}, err
	}
	return mapPoll(poll), nil
}

func (h Handler) GetPollHandler(ctx context.Context, pollID string) (httptransport.PollResponseBody, error) {
	poll, err := h.Queries.GetPoll(ctx, pollID)
	if err != nil {
		return httptransport.PollResponseBody{}, err
	}
	return mapPoll(poll), nil
}

func (h Handler) UpdatePollHandler(
	ctx context.Context,
	pollID string,
	req httptransport.UpdatePollRequest,
) (httptransport.PollResponseBody, error) {
	cmd := commands.UpdatePollCommand{
		PollID:             pollID,
		Title:              req.Title,
		Description:        req.Description,
		AllowMultipleVotes: req.AllowMultipleVotes,
		IsActive:           req.IsActive,
		ClearEndDate:       req.ClearEndDate,
	}
	if req.PollType != nil {
		pollType := entities.PollType(*req.PollType)
		cmd.PollType = &pollType
	}
	if req.EndDate != nil {
		endDate, err := parseOptionalTime(*req.EndDate)
		if err != nil || endDate == nil {
			return httptransport.PollResponseBody{}, domainerrors.ErrInvalidPollInput
		}
		cmd.EndDate = endDate
	}

	poll, err := h.Lifecycle.UpdatePoll(ctx, cmd)
	if err != nil {
		return httptransport.PollResponseBody{}, err
	}
	return mapPoll(poll), nil
}

func (h Handler) DeletePollHandler(ctx context.Context, pollID string, requesterID string) (httptransport.DeletePollResponse, error) {
	deleted, err := h.Lifecycle.DeletePoll(ctx, commands.DeletePollCommand{
		PollID:      pollID,
		RequesterID: requesterID,
	})
	if err != nil {
		return httptransport.DeletePollResponse{}, err
	}
	return httptransport.DeletePollResponse{
		PollID:  pollID,
		Deleted: deleted,
	}, nil
}

func (h Handler) ListActivePollsHandler(ctx context.Context) (httptransport.PollListResponse, error) {
	polls, err := h.Queries.ListActivePolls(ctx)
	if err != nil {
		return httptransport.PollListResponse{}, err
	}
	return httptransport.PollListResponse{Items: mapPolls(polls)}, nil
}

func (h Handler) ListOwnerPollsHandler(ctx context.Context, ownerID string) (httptransport.PollListResponse, error) {
	polls, err := h.Queries.ListPollsByOwner(ctx, ownerID)
	if err != nil {
		return httptransport.PollListResponse{}, err
	}
	return httptransport.PollListResponse{Items: mapPolls(polls)}, nil
}

func (h Handler) SubmitResponseHandler(
	ctx context.Context,
	pollID string,
	userID string,
	ipAddress string,
	userAgent string,
	req httptransport.SubmitResponseRequest,
) (httptransport.SubmitResponseResponse, error) {
	answers := make([]commands.AnswerInput, 0, len(req.Answers))
	for _, answer := range req.Answers {
		answers = append(answers, commands.AnswerInput{
			QuestionID: answer.QuestionID,
			OptionID:   answer.OptionID,
			Text:       answer.Text,
			Rating:     answer.Rating,
		})
	}

	response, err := h.Submissions.Execute(ctx, commands.SubmitResponseCommand{
		PollID:    pollID,
		UserID:    userID,
		IPAddress: ipAddress,
		UserAgent: userAgent,
		Answers:   answers,
	})
	if err != nil {
		return httptransport.SubmitResponseResponse{}, err
	}
	return mapResponse(response), nil
}

func (h Handler) RespondentResponseHandler(
	ctx context.Context,
	pollID string,
	userID string,
	ipAddress string,
) (httptransport.RespondentResponseResponse, error) {
	response, found, err := h.Queries.GetRespondentResponse(ctx, pollID, userID, ipAddress)
	if err != nil {
		return httptransport.RespondentResponseResponse{}, err
	}
	if !found {
		return httptransport.RespondentResponseResponse{HasResponded: false}, nil
	}
	mapped := mapResponse(response)
	return httptransport.RespondentResponseResponse{
		HasResponded: true,
		Response:     &mapped,
	}, nil
}

func (h Handler) PollResultsHandler(ctx context.Context, pollID string) (httptransport.PollResultsResponse, error) {
	results, err := h.Results.GetResults(ctx, pollID)
	if err != nil {
		return httptransport.PollResultsResponse{}, err
	}
	return mapResults(results), nil
}

func mapPolls(polls []entities.Poll) []httptransport.PollResponseBody {
	items := make([]httptransport.PollResponseBody, 0, len(polls))
	for _, poll := range polls {
		items = append(items, mapPoll(poll))
	}
	return items
}

func mapPoll(poll entities.Poll) httptransport.PollResponseBody {
	body := httptransport.PollResponseBody{
		PollID:             poll.PollID,
		OwnerID:            poll.OwnerID,
		Title:              poll.Title,
		Description:        poll.Description,
		PollType:           int(poll.PollType),
		AllowMultipleVotes: poll.AllowMultipleVotes,
		IsActive:           poll.IsActive,
		Questions:          make([]httptransport.PollQuestionResponse, 0, len(poll.Questions)),
		CreatedAt:          poll.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:          poll.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if poll.EndDate != nil {
		body.EndDate = poll.EndDate.UTC().Format(time.RFC3339)
	}
	for _, question := range poll.Questions {
		questionBody := httptransport.PollQuestionResponse{
			QuestionID:   question.QuestionID,
			Text:         question.Text,
			QuestionType: int(question.QuestionType),
			Order:        question.Order,
			IsRequired:   question.IsRequired,
		}
		for _, option := range question.Options {
			questionBody.Options = append(questionBody.Options, httptransport.PollOptionResponse{
				OptionID:  option.OptionID,
				Text:      option.Text,
				Order:     option.Order,
				VoteCount: option.VoteCount,
			})
		}
		body.Questions = append(body.Questions, questionBody)
	}
	return body
}

func mapResponse(response entities.PollResponse) httptransport.SubmitResponseResponse {
	body := httptransport.SubmitResponseResponse{
		ResponseID:  response.ResponseID,
		PollID:      response.PollID,
		SubmittedAt: response.SubmittedAt.UTC().Format(time.RFC3339),
		Answers:     make([]httptransport.AnswerResponse, 0, len(response.Answers)),
	}
	for _, answer := range response.Answers {
		answerBody := httptransport.AnswerResponse{
			AnswerID:   answer.AnswerID,
			QuestionID: answer.QuestionID,
		}
		if optionID, ok := answer.Value.OptionID(); ok {
			answerBody.OptionID = optionID
		}
		if text, ok := answer.Value.Text(); ok {
			answerBody.Text = text
		}
		if rating, ok := answer.Value.Rating(); ok {
			value := rating
			answerBody.Rating = &value
		}
		body.Answers = append(body.Answers, answerBody)
	}
	return body
}

func mapResults(results entities.PollResults) httptransport.PollResultsResponse {
	body := httptransport.PollResultsResponse{
		PollID:         results.PollID,
		Title:          results.Title,
		Description:    results.Description,
		PollType:       int(results.PollType),
		TotalResponses: results.TotalResponses,
		Questions:      make([]httptransport.QuestionResultsResponse, 0, len(results.Questions)),
	}
	for _, question := range results.Questions {
		questionBody := httptransport.QuestionResultsResponse{
			QuestionID:    question.QuestionID,
			Text:          question.Text,
			QuestionType:  int(question.QuestionType),
			Order:         question.Order,
			IsRequired:    question.IsRequired,
			TextAnswers:   question.TextAnswers,
			RatingAverage: question.RatingAverage,
		}
		for _, option := range question.Options {
			questionBody.Options = append(questionBody.Options, httptransport.OptionResultResponse{
				OptionID:   option.OptionID,
				Text:       option.Text,
				Order:      option.Order,
				VoteCount:  option.VoteCount,
				Percentage: option.Percentage,
			})
		}
		body.Questions = append(body.Questions, questionBody)
	}
	return body
}

func parseOptionalTime(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	normalized := parsed.UTC()
	return &normalized, nil
}
