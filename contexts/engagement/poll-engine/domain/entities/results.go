package entities

// PollResults carries everything a renderer needs: computed numbers plus the
// poll and question metadata, so no second poll fetch is required.
type PollResults struct {
	PollID      string
	Title       string
	Description string
	PollType    PollType
	// TotalResponses counts responses, not answers.
	TotalResponses int
	Questions      []QuestionResults
}

type QuestionResults struct {
	QuestionID   string
	Text         string
	QuestionType QuestionType
	Order        int
	IsRequired   bool
	Options      []OptionResult
	// TextAnswers lists non-empty free-text answers in response-arrival order.
	TextAnswers []string
	// RatingAverage is set only for rating questions with at least one sample.
	RatingAverage *float64
}

type OptionResult struct {
	OptionID  string
	Text      string
	Order     int
	VoteCount int
	// Percentage is relative to total respondents, not answers to this
	// question. Checkbox and optional questions therefore may sum to more or
	// less than 100.
	Percentage float64
}
