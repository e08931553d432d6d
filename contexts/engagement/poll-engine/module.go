package pollengine

import (
	"log/slog"

	httpadapter "atrium/contexts/engagement/poll-engine/adapters/http"
	memoryadapter "atrium/contexts/engagement/poll-engine/adapters/memory"
	"atrium/contexts/engagement/poll-engine/application/commands"
	"atrium/contexts/engagement/poll-engine/application/queries"
	"atrium/contexts/engagement/poll-engine/domain/entities"
	"atrium/contexts/engagement/poll-engine/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memoryadapter.Store
}

type Dependencies struct {
	Polls     ports.PollRepository
	Responses ports.ResponseRepository
	Outbox    ports.OutboxWriter
	Clock     ports.Clock
	IDGen     ports.IDGenerator
	Logger    *slog.Logger
}

func NewModule(deps Dependencies) Module {
	lifecycle := commands.PollLifecycleUseCase{
		Polls:  deps.Polls,
		Outbox: deps.Outbox,
		Clock:  deps.Clock,
		IDGen:  deps.IDGen,
		Logger: deps.Logger,
	}
	submissions := commands.SubmitResponseUseCase{
		Polls:     deps.Polls,
		Responses: deps.Responses,
		Outbox:    deps.Outbox,
		Clock:     deps.Clock,
		IDGen:     deps.IDGen,
		Logger:    deps.Logger,
	}
	pollQueries := queries.PollQueryUseCase{
		Polls:     deps.Polls,
		Responses: deps.Responses,
		Clock:     deps.Clock,
	}
	results := queries.ResultsUseCase{
		Polls:     deps.Polls,
		Responses: deps.Responses,
	}
	return Module{
		Handler: httpadapter.Handler{
			Lifecycle:   lifecycle,
			Submissions: submissions,
			Queries:     pollQueries,
			Results:     results,
			Logger:      deps.Logger,
		},
	}
}

func NewInMemoryModule(seed []entities.Poll, logger *slog.Logger) Module {
	store := memoryadapter.NewStore(seed)
	module := NewModule(Dependencies{
		Polls:     store,
		Responses: store,
		Outbox:    store,
		Clock:     store,
		IDGen:     store,
		Logger:    logger,
	})
	module.Store = store
	return module
}
