package queries

import (
	"context"
	"strings"
	"time"

	"atrium/contexts/engagement/poll-engine/domain/entities"
	"atrium/contexts/engagement/poll-engine/ports"
)

// PollQueryUseCase serves read-only poll projections. Every call reads
// current store state; the engine keeps no cross-request cache so the
// duplicate check stays meaningful.
type PollQueryUseCase struct {
	Polls     ports.PollRepository
	Responses ports.ResponseRepository
	Clock     ports.Clock
}

func (uc PollQueryUseCase) GetPoll(ctx context.Context, pollID string) (entities.Poll, error) {
	return uc.Polls.GetPoll(ctx, strings.TrimSpace(pollID))
}

func (uc PollQueryUseCase) ListActivePolls(ctx context.Context) ([]entities.Poll, error) {
	return uc.Polls.ListActivePolls(ctx, uc.now())
}

func (uc PollQueryUseCase) ListPollsByOwner(ctx context.Context, ownerID string) ([]entities.Poll, error) {
	return uc.Polls.ListPollsByOwner(ctx, strings.TrimSpace(ownerID))
}

// GetRespondentResponse returns the respondent's existing response when one
// exists. The portal uses it to render "already voted" state and to prefill
// the previous selection.
func (uc PollQueryUseCase) GetRespondentResponse(
	ctx context.Context,
	pollID string,
	userID string,
	ipAddress string,
) (entities.PollResponse, bool, error) {
	return uc.Responses.GetRespondentResponse(
		ctx,
		strings.TrimSpace(pollID),
		strings.TrimSpace(userID),
		strings.TrimSpace(ipAddress),
	)
}

func (uc PollQueryUseCase) now() time.Time {
	if uc.Clock != nil {
		return uc.Clock.Now().UTC()
	}
	return time.Now().UTC()
}
