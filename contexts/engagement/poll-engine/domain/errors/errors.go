package errors

import "errors"

var (
	ErrPollNotFound         = errors.New("poll not found")
	ErrQuestionNotFound     = errors.New("poll question not found")
	ErrOptionNotFound       = errors.New("poll option not found")
	ErrPollClosed           = errors.New("poll is closed")
	ErrDuplicateResponse    = errors.New("respondent already submitted a response")
	ErrInvalidPollInput     = errors.New("invalid poll definition")
	ErrInvalidResponseInput = errors.New("invalid response input")
	ErrPermissionDenied     = errors.New("requester does not own the poll")
)
