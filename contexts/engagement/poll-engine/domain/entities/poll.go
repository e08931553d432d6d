package entities

import "time"

// PollType codes are stable wire identifiers shared with the portal frontend
// and older services; do not renumber.
type PollType int

const (
	PollTypeYesNo          PollType = 1
	PollTypeMultipleChoice PollType = 2
	PollTypeSurvey         PollType = 3
)

// QuestionType codes are stable wire identifiers; do not renumber.
type QuestionType int

const (
	QuestionTypeYesNo          QuestionType = 1
	QuestionTypeMultipleChoice QuestionType = 2
	QuestionTypeCheckbox       QuestionType = 3
	QuestionTypeText           QuestionType = 4
	QuestionTypeRating         QuestionType = 5
)

// Rating answers live on a closed integer scale.
const (
	RatingMin = 1
	RatingMax = 5
)

// Poll is the aggregate root. Questions (and their options) are owned by the
// poll and are created, loaded and deleted with it as one unit.
type Poll struct {
	PollID             string
	OwnerID            string
	Title              string
	Description        string
	PollType           PollType
	AllowMultipleVotes bool
	IsActive           bool
	EndDate            *time.Time
	Questions          []PollQuestion
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// ClosedAt reports whether the poll no longer accepts submissions at the
// given instant. The end date boundary is inclusive: a poll closes only once
// the current time is strictly past it.
func (p Poll) ClosedAt(now time.Time) bool {
	if !p.IsActive {
		return true
	}
	return p.EndDate != nil && now.After(p.EndDate.UTC())
}

// Question returns the owned question with the given id.
func (p Poll) Question(questionID string) (PollQuestion, bool) {
	for _, question := range p.Questions {
		if question.QuestionID == questionID {
			return question, true
		}
	}
	return PollQuestion{}, false
}

type PollQuestion struct {
	QuestionID   string
	Text         string
	QuestionType QuestionType
	// Order is zero-based, gapless and unique within the poll; it drives both
	// display and aggregation ordering.
	Order      int
	IsRequired bool
	Options    []PollOption
}

// HasOptions reports whether this question type carries an option list at
// all. Text and Rating questions collect their payload on the answer itself.
func (q PollQuestion) HasOptions() bool {
	switch q.QuestionType {
	case QuestionTypeText, QuestionTypeRating:
		return false
	default:
		return true
	}
}

// Option returns the owned option with the given id.
func (q PollQuestion) Option(optionID string) (PollOption, bool) {
	for _, option := range q.Options {
		if option.OptionID == optionID {
			return option, true
		}
	}
	return PollOption{}, false
}

type PollOption struct {
	OptionID string
	Text     string
	Order    int
	// VoteCount is the running tally, mutated only by response submission
	// through an atomic store-level increment.
	VoteCount int
}
