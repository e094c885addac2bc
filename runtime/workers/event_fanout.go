package workers

import (
	"context"
	"log/slog"
	"time"

	"live-reviews/contract"
	"live-reviews/domain/event"
)

// EventFanout delivers every committed mutation event to every currently
// connected session, at most once per session per event, in publication order.
//
// Delivery is fire-and-forget: there is no acknowledgment, retry, or backlog.
// A session whose sink errors or times out is unsubscribed on the spot: a
// broken push channel is that session's disconnect, never the mutation's
// failure. Permanent sinks (projections, search index) only get a log line on
// failure and stay wired.
type EventFanout struct {
	log            *slog.Logger
	registry       contract.IRegistry
	events         chan event.DomainEvent
	permanentSinks []contract.EventSink
	sinkTimeout    time.Duration
}

func NewEventFanout(log *slog.Logger, registry contract.IRegistry,
	events chan event.DomainEvent, permanentSinks []contract.EventSink,
	sinkTimeout time.Duration) *EventFanout {
	return &EventFanout{
		log:            log,
		registry:       registry,
		events:         events,
		permanentSinks: permanentSinks,
		sinkTimeout:    sinkTimeout,
	}
}

func (w *EventFanout) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Context done, stopping event fanout")
			return nil
		case evt := <-w.events:
			w.Fanout(ctx, evt)
		}
	}
}

// Fanout delivers one event to the permanent sinks and to every session.
// Sequential delivery keeps a single global order observable by all sessions.
func (w *EventFanout) Fanout(ctx context.Context, evt event.DomainEvent) {
	for _, sink := range w.permanentSinks {
		if err := w.consume(ctx, sink, evt); err != nil {
			w.log.Error("Permanent sink failed to consume event",
				"review_id", evt.ReviewID(), "error", err)
		}
	}
	for sessionID, sink := range w.registry.Sessions() {
		if err := w.consume(ctx, sink, evt); err != nil {
			w.log.Warn("Dropping session, delivery failed",
				"session_id", sessionID, "review_id", evt.ReviewID(), "error", err)
			w.registry.Unsubscribe(sessionID)
		}
	}
}

func (w *EventFanout) consume(ctx context.Context, sink contract.EventSink, evt event.DomainEvent) error {
	consumeCtx, cancel := context.WithTimeout(ctx, w.sinkTimeout)
	defer cancel()
	return sink.Consume(consumeCtx, evt)
}
