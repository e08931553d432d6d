package entities

import "time"

// AnswerKind discriminates the answer payload variant.
type AnswerKind int

const (
	AnswerKindOption AnswerKind = iota + 1
	AnswerKindText
	AnswerKindRating
)

// AnswerValue is a tagged variant: exactly one of option reference, free
// text, or rating is populated, enforced by construction. Checkbox questions
// produce one option-valued answer row per selected option.
type AnswerValue struct {
	kind     AnswerKind
	optionID string
	text     string
	rating   int
}

func OptionValue(optionID string) AnswerValue {
	return AnswerValue{kind: AnswerKindOption, optionID: optionID}
}

func TextValue(text string) AnswerValue {
	return AnswerValue{kind: AnswerKindText, text: text}
}

func RatingValue(rating int) AnswerValue {
	return AnswerValue{kind: AnswerKindRating, rating: rating}
}

func (v AnswerValue) Kind() AnswerKind {
	return v.kind
}

func (v AnswerValue) OptionID() (string, bool) {
	return v.optionID, v.kind == AnswerKindOption
}

func (v AnswerValue) Text() (string, bool) {
	return v.text, v.kind == AnswerKindText
}

func (v AnswerValue) Rating() (int, bool) {
	return v.rating, v.kind == AnswerKindRating
}

// PollAnswer records one answer to one question. It references its question
// by id only; the question keeps owning its own structure.
type PollAnswer struct {
	AnswerID   string
	ResponseID string
	QuestionID string
	Value      AnswerValue
}

// PollResponse is an immutable audit record of one submission. Anonymous
// submissions are attributed by IP address when no user identity is present.
type PollResponse struct {
	ResponseID  string
	PollID      string
	UserID      string
	IPAddress   string
	UserAgent   string
	SubmittedAt time.Time
	Answers     []PollAnswer
}

// RespondentKey is the identity used for duplicate detection: the
// authenticated user id when present, else the submitting IP address.
// Anonymous respondents behind a shared NAT share one key.
func (r PollResponse) RespondentKey() string {
	return RespondentKey(r.UserID, r.IPAddress)
}

func RespondentKey(userID string, ipAddress string) string {
	if userID != "" {
		return "user:" + userID
	}
	if ipAddress != "" {
		return "ip:" + ipAddress
	}
	return ""
}
