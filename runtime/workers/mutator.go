package workers

import (
	"context"
	"log/slog"

	"live-reviews/domain"
	"live-reviews/domain/event"
	"live-reviews/repositories"
)

// Mutator is the single writer for the review collection. Every mutation is
// dequeued, applied to the store, answered on its reply channel, and, on
// commit only, translated into exactly one domain event. The event is
// enqueued before the next mutation is dequeued, so event publication order
// can never invert relative to store commit order.
type Mutator struct {
	log        *slog.Logger
	repository repositories.IReviewRepository
	mutations  chan domain.Mutation
	events     chan event.DomainEvent
}

func NewMutator(log *slog.Logger, repository repositories.IReviewRepository,
	mutations chan domain.Mutation, events chan event.DomainEvent) *Mutator {
	return &Mutator{log: log, repository: repository, mutations: mutations, events: events}
}

func (w *Mutator) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Context done, stopping mutation processing")
			return nil
		case m := <-w.mutations:
			w.apply(ctx, m)
		}
	}
}

func (w *Mutator) apply(ctx context.Context, m domain.Mutation) {
	var review domain.Review
	var err error
	var evt event.DomainEvent

	switch m.Kind {
	case domain.MutationCreate:
		review, err = w.repository.Create(m.Title, m.Content)
		if err == nil {
			evt = event.ReviewAdded{Review: review}
		}
	case domain.MutationUpdate:
		review, err = w.repository.Update(m.ID, m.Title, m.Content)
		if err == nil {
			evt = event.ReviewEdited{Review: review}
		}
	case domain.MutationDelete:
		review, err = w.repository.Delete(m.ID)
		if err == nil {
			evt = event.ReviewDeleted{Review: review}
		}
	}

	// Reply channels are buffered, the send never blocks the writer.
	m.Reply <- domain.MutationResult{Review: review, Err: err}

	if evt == nil {
		// Failed or not-found mutations emit nothing.
		return
	}
	select {
	case w.events <- evt:
	case <-ctx.Done():
		w.log.Debug("Context done, dropping event for committed mutation",
			"kind", m.Kind.String(), "id", evt.ReviewID())
	}
}
