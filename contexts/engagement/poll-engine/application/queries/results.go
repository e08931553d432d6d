package queries

import (
	"context"
	"sort"
	"strings"

	"atrium/contexts/engagement/poll-engine/domain/entities"
	"atrium/contexts/engagement/poll-engine/ports"
)

// ResultsUseCase computes aggregated poll results from the definition store
// tallies and the full response set.
type ResultsUseCase struct {
	Polls     ports.PollRepository
	Responses ports.ResponseRepository
}

// GetResults loads the poll and all responses eagerly and tabulates per
// question. Option percentages are relative to total respondents, not to
// answers of that question: a checkbox respondent contributes one vote per
// selected option and an optional question may be skipped entirely, so
// per-question percentages summing away from 100 is expected, not an error.
func (uc ResultsUseCase) GetResults(ctx context.Context, pollID string) (entities.PollResults, error) {
	poll, err := uc.Polls.GetPoll(ctx, strings.TrimSpace(pollID))
	if err != nil {
		return entities.PollResults{}, err
	}
	responses, err := uc.Responses.ListResponsesByPoll(ctx, poll.PollID)
	if err != nil {
		return entities.PollResults{}, err
	}

	totalResponses := len(responses)
	textAnswers, ratings := collectAnswerPayloads(responses)

	results := entities.PollResults{
		PollID:         poll.PollID,
		Title:          poll.Title,
		Description:    poll.Description,
		PollType:       poll.PollType,
		TotalResponses: totalResponses,
		Questions:      make([]entities.QuestionResults, 0, len(poll.Questions)),
	}

	questions := append([]entities.PollQuestion(nil), poll.Questions...)
	sort.Slice(questions, func(i, j int) bool {
		return questions[i].Order < questions[j].Order
	})

	for _, question := range questions {
		questionResults := entities.QuestionResults{
			QuestionID:   question.QuestionID,
			Text:         question.Text,
			QuestionType: question.QuestionType,
			Order:        question.Order,
			IsRequired:   question.IsRequired,
			TextAnswers:  textAnswers[question.QuestionID],
		}

		options := append([]entities.PollOption(nil), question.Options...)
		sort.Slice(options, func(i, j int) bool {
			return options[i].Order < options[j].Order
		})
		for _, option := range options {
			percentage := 0.0
			if totalResponses > 0 {
				percentage = float64(option.VoteCount) / float64(totalResponses) * 100
			}
			questionResults.Options = append(questionResults.Options, entities.OptionResult{
				OptionID:   option.OptionID,
				Text:       option.Text,
				Order:      option.Order,
				VoteCount:  option.VoteCount,
				Percentage: percentage,
			})
		}

		// A rating question with zero samples reports no average at all
		// rather than dividing by zero.
		if question.QuestionType == entities.QuestionTypeRating {
			if samples := ratings[question.QuestionID]; len(samples) > 0 {
				sum := 0
				for _, rating := range samples {
					sum += rating
				}
				average := float64(sum) / float64(len(samples))
				questionResults.RatingAverage = &average
			}
		}

		results.Questions = append(results.Questions, questionResults)
	}
	return results, nil
}

// collectAnswerPayloads walks responses in arrival order and groups free-text
// and rating payloads by question.
func collectAnswerPayloads(responses []entities.PollResponse) (map[string][]string, map[string][]int) {
	textAnswers := make(map[string][]string)
	ratings := make(map[string][]int)
	for _, response := range responses {
		for _, answer := range response.Answers {
			if text, ok := answer.Value.Text(); ok && strings.TrimSpace(text) != "" {
				textAnswers[answer.QuestionID] = append(textAnswers[answer.QuestionID], text)
			}
			if rating, ok := answer.Value.Rating(); ok {
				ratings[answer.QuestionID] = append(ratings[answer.QuestionID], rating)
			}
		}
	}
	return textAnswers, ratings
}
