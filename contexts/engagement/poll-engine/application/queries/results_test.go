package queries

import (
	"context"
	"math"
	"testing"

	memoryadapter "atrium/contexts/engagement/poll-engine/adapters/memory"
	"atrium/contexts/engagement/poll-engine/application/commands"
	"atrium/contexts/engagement/poll-engine/domain/entities"
)

type resultsFixture struct {
	store  *memoryadapter.Store
	submit commands.SubmitResponseUseCase
	uc     ResultsUseCase
	poll   entities.Poll
}

func newResultsFixture(t *testing.T, questions []commands.QuestionDefinition) resultsFixture {
	t.Helper()
	store := memoryadapter.NewStore(nil)
	lifecycle := commands.PollLifecycleUseCase{Polls: store, Clock: store, IDGen: store}
	poll, err := lifecycle.CreatePoll(context.Background(), commands.CreatePollCommand{
		OwnerID:            "owner-1",
		Title:              "Results poll",
		PollType:           entities.PollTypeSurvey,
		AllowMultipleVotes: false,
		Questions:          questions,
	})
	if err != nil {
		t.Fatalf("create poll: %v", err)
	}
	return resultsFixture{
		store:  store,
		submit: commands.SubmitResponseUseCase{Polls: store, Responses: store, Clock: store, IDGen: store},
		uc:     ResultsUseCase{Polls: store, Responses: store},
		poll:   poll,
	}
}

func (f resultsFixture) submitAnswers(t *testing.T, userID string, answers []commands.AnswerInput) {
	t.Helper()
	if _, err := f.submit.Execute(context.Background(), commands.SubmitResponseCommand{
		PollID:  f.poll.PollID,
		UserID:  userID,
		Answers: answers,
	}); err != nil {
		t.Fatalf("submit for %s: %v", userID, err)
	}
}

func TestResultsZeroResponses(t *testing.T) {
	f := newResultsFixture(t, []commands.QuestionDefinition{
		{Text: "Pick one", QuestionType: entities.QuestionTypeMultipleChoice, Options: []string{"A", "B"}},
		{Text: "Rate us", QuestionType: entities.QuestionTypeRating},
	})

	results, err := f.uc.GetResults(context.Background(), f.poll.PollID)
	if err != nil {
		t.Fatalf("get results: %v", err)
	}
	if results.TotalResponses != 0 {
		t.Fatalf("expected 0 responses, got %d", results.TotalResponses)
	}
	for _, option := range results.Questions[0].Options {
		if option.Percentage != 0 {
			t.Fatalf("expected 0%% with no responses, got %f", option.Percentage)
		}
	}
	if results.Questions[1].RatingAverage != nil {
		t.Fatalf("expected no rating average with zero samples, got %v", *results.Questions[1].RatingAverage)
	}
}

func TestResultsPercentagesAgainstTotalResponses(t *testing.T) {
	f := newResultsFixture(t, []commands.QuestionDefinition{
		{Text: "Pick one", QuestionType: entities.QuestionTypeMultipleChoice, Options: []string{"A", "B"}},
	})
	questionID := f.poll.Questions[0].QuestionID
	optionA := f.poll.Questions[0].Options[0].OptionID
	optionB := f.poll.Questions[0].Options[1].OptionID

	f.submitAnswers(t, "user-1", []commands.AnswerInput{{QuestionID: questionID, OptionID: optionA}})
	f.submitAnswers(t, "user-2", []commands.AnswerInput{{QuestionID: questionID, OptionID: optionA}})
	f.submitAnswers(t, "user-3", []commands.AnswerInput{{QuestionID: questionID, OptionID: optionA}})
	f.submitAnswers(t, "user-4", []commands.AnswerInput{{QuestionID: questionID, OptionID: optionB}})

	results, err := f.uc.GetResults(context.Background(), f.poll.PollID)
	if err != nil {
		t.Fatalf("get results: %v", err)
	}
	if results.TotalResponses != 4 {
		t.Fatalf("expected 4 responses, got %d", results.TotalResponses)
	}
	options := results.Questions[0].Options
	if options[0].VoteCount != 3 || options[1].VoteCount != 1 {
		t.Fatalf("unexpected tallies: %+v", options)
	}
	if math.Abs(options[0].Percentage-75) > 1e-9 || math.Abs(options[1].Percentage-25) > 1e-9 {
		t.Fatalf("unexpected percentages: %f, %f", options[0].Percentage, options[1].Percentage)
	}
}

func TestResultsCheckboxCountsEachSelection(t *testing.T) {
	f := newResultsFixture(t, []commands.QuestionDefinition{
		{Text: "Pick all that apply", QuestionType: entities.QuestionTypeCheckbox, Options: []string{"A", "B", "C"}},
	})
	questionID := f.poll.Questions[0].QuestionID
	optionA := f.poll.Questions[0].Options[0].OptionID
	optionB := f.poll.Questions[0].Options[1].OptionID

	// One respondent, two selections: both tallies advance, one response.
	f.submitAnswers(t, "user-1", []commands.AnswerInput{
		{QuestionID: questionID, OptionID: optionA},
		{QuestionID: questionID, OptionID: optionB},
	})

	results, err := f.uc.GetResults(context.Background(), f.poll.PollID)
	if err != nil {
		t.Fatalf("get results: %v", err)
	}
	if results.TotalResponses != 1 {
		t.Fatalf("expected 1 response, got %d", results.TotalResponses)
	}
	options := results.Questions[0].Options
	if options[0].VoteCount != 1 || options[1].VoteCount != 1 || options[2].VoteCount != 0 {
		t.Fatalf("unexpected tallies: %+v", options)
	}
	// Percentages may sum past 100 here: 100 + 100 for a single respondent.
	if math.Abs(options[0].Percentage-100) > 1e-9 {
		t.Fatalf("expected 100%%, got %f", options[0].Percentage)
	}
}

func TestResultsRatingAverageAndTextCollection(t *testing.T) {
	f := newResultsFixture(t, []commands.QuestionDefinition{
		{Text: "Rate us", QuestionType: entities.QuestionTypeRating},
		{Text: "Comments", QuestionType: entities.QuestionTypeText},
	})
	ratingQ := f.poll.Questions[0].QuestionID
	textQ := f.poll.Questions[1].QuestionID

	three, four, five := 3, 4, 5
	f.submitAnswers(t, "user-1", []commands.AnswerInput{
		{QuestionID: ratingQ, Rating: &three},
		{QuestionID: textQ, Text: "Great"},
	})
	f.submitAnswers(t, "user-2", []commands.AnswerInput{
		{QuestionID: ratingQ, Rating: &four},
		{QuestionID: textQ, Text: "   "},
	})
	f.submitAnswers(t, "user-3", []commands.AnswerInput{
		{QuestionID: ratingQ, Rating: &five},
		{QuestionID: textQ, Text: "Could be better"},
	})

	results, err := f.uc.GetResults(context.Background(), f.poll.PollID)
	if err != nil {
		t.Fatalf("get results: %v", err)
	}
	average := results.Questions[0].RatingAverage
	if average == nil || math.Abs(*average-4.0) > 1e-9 {
		t.Fatalf("expected rating average 4.0, got %v", average)
	}
	texts := results.Questions[1].TextAnswers
	if len(texts) != 2 || texts[0] != "Great" || texts[1] != "Could be better" {
		t.Fatalf("unexpected text answers: %+v", texts)
	}
}

func TestResultsAggregationIsIdempotent(t *testing.T) {
	f := newResultsFixture(t, []commands.QuestionDefinition{
		{Text: "Pick one", QuestionType: entities.QuestionTypeMultipleChoice, Options: []string{"A", "B"}},
	})
	questionID := f.poll.Questions[0].QuestionID
	optionA := f.poll.Questions[0].Options[0].OptionID
	f.submitAnswers(t, "user-1", []commands.AnswerInput{{QuestionID: questionID, OptionID: optionA}})

	first, err := f.uc.GetResults(context.Background(), f.poll.PollID)
	if err != nil {
		t.Fatalf("first read: %v", err)
	}
	second, err := f.uc.GetResults(context.Background(), f.poll.PollID)
	if err != nil {
		t.Fatalf("second read: %v", err)
	}
	if first.TotalResponses != second.TotalResponses {
		t.Fatalf("reads disagree on totals: %d vs %d", first.TotalResponses, second.TotalResponses)
	}
	for i := range first.Questions[0].Options {
		if first.Questions[0].Options[i].VoteCount != second.Questions[0].Options[i].VoteCount {
			t.Fatalf("reads disagree on tallies")
		}
	}
}
