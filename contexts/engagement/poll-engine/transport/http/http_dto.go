package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type QuestionDefinitionRequest struct {
	Text         string   `json:"text"`
	QuestionType int      `json:"question_type"`
	IsRequired   bool     `json:"is_required"`
	Options      []string `json:"options,omitempty"`
}

type CreatePollRequest struct {
	Title              string                      `json:"title"`
	Description        string                      `json:"description,omitempty"`
	PollType           int                         `json:"poll_type"`
	AllowMultipleVotes bool                        `json:"allow_multiple_votes"`
	EndDate            string                      `json:"end_date,omitempty"`
	Questions          []QuestionDefinitionRequest `json:"questions"`
}

// UpdatePollRequest patches top-level fields only; question and option
// structure cannot change after creation. Omitted fields stay as they are.
type UpdatePollRequest struct {
	Title              *string `json:"title,omitempty"`
	Description        *string `json:"description,omitempty"`
	PollType           *int    `json:"poll_type,omitempty"`
	AllowMultipleVotes *bool   `json:"allow_multiple_votes,omitempty"`
	IsActive           *bool   `json:"is_active,omitempty"`
	EndDate            *string `json:"end_date,omitempty"`
	ClearEndDate       bool    `json:"clear_end_date,omitempty"`
}

type PollOptionResponse struct {
	OptionID  string `json:"option_id"`
	Text      string `json:"text"`
	Order     int    `json:"order"`
	VoteCount int    `json:"vote_count"`
}

type PollQuestionResponse struct {
	QuestionID   string               `json:"question_id"`
	Text         string               `json:"text"`
	QuestionType int                  `json:"question_type"`
	Order        int                  `json:"order"`
	IsRequired   bool                 `json:"is_required"`
	Options      []PollOptionResponse `json:"options,omitempty"`
}

type PollResponseBody struct {
	PollID             string                 `json:"poll_id"`
	OwnerID            string                 `json:"owner_id"`
	Title              string                 `json:"title"`
	Description        string                 `json:"description,omitempty"`
	PollType           int                    `json:"poll_type"`
	AllowMultipleVotes bool                   `json:"allow_multiple_votes"`
	IsActive           bool                   `json:"is_active"`
	EndDate            string                 `json:"end_date,omitempty"`
	Questions          []PollQuestionResponse `json:"questions"`
	CreatedAt          string                 `json:"created_at"`
	UpdatedAt          string                 `json:"updated_at"`
}

type PollListResponse struct {
	Items []PollResponseBody `json:"items"`
}

type DeletePollResponse struct {
	PollID  string `json:"poll_id"`
	Deleted bool   `json:"deleted"`
}

type AnswerRequest struct {
	QuestionID string `json:"question_id"`
	OptionID   string `json:"option_id,omitempty"`
	Text       string `json:"text,omitempty"`
	Rating     *int   `json:"rating,omitempty"`
}

type SubmitResponseRequest struct {
	Answers []AnswerRequest `json:"answers"`
}

type AnswerResponse struct {
	AnswerID   string `json:"answer_id"`
	QuestionID string `json:"question_id"`
	OptionID   string `json:"option_id,omitempty"`
	Text       string `json:"text,omitempty"`
	Rating     *int   `json:"rating,omitempty"`
}

type SubmitResponseResponse struct {
	ResponseID  string           `json:"response_id"`
	PollID      string           `json:"poll_id"`
	SubmittedAt string           `json:"submitted_at"`
	Answers     []AnswerResponse `json:"answers"`
}

type RespondentResponseResponse struct {
	HasResponded bool                    `json:"has_responded"`
	Response     *SubmitResponseResponse `json:"response,omitempty"`
}

type OptionResultResponse struct {
	OptionID   string  `json:"option_id"`
	Text       string  `json:"text"`
	Order      int     `json:"order"`
	VoteCount  int     `json:"vote_count"`
	Percentage float64 `json:"percentage"`
}

type QuestionResultsResponse struct {
	QuestionID    string                 `json:"question_id"`
	Text          string                 `json:"text"`
	QuestionType  int                    `json:"question_type"`
	Order         int                    `json:"order"`
	IsRequired    bool                   `json:"is_required"`
	Options       []OptionResultResponse `json:"options,omitempty"`
	TextAnswers   []string               `json:"text_answers,omitempty"`
	RatingAverage *float64               `json:"rating_average,omitempty"`
}

type PollResultsResponse struct {
	PollID         string                    `json:"poll_id"`
	Title          string                    `json:"title"`
	Description    string                    `json:"description,omitempty"`
	PollType       int                       `json:"poll_type"`
	TotalResponses int                       `json:"total_responses"`
	Questions      []QuestionResultsResponse `json:"questions"`
}
