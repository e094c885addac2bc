package sink

import (
	"context"
	"log/slog"

	"live-reviews/contract"
	"live-reviews/domain/event"
	"live-reviews/errors"
)

// SessionSink is the one-way delivery handle for a connected session. The
// fanout enqueues events; the session's transport loop drains them. The buffer
// decouples publish latency from a slow connection; a full buffer is reported
// as an error so the fanout drops the session instead of letting it
// backpressure the publisher.
type SessionSink struct {
	log    *slog.Logger
	Events chan event.DomainEvent
}

var _ contract.EventSink = (*SessionSink)(nil)

func NewSessionSink(log *slog.Logger, bufferSize int) *SessionSink {
	return &SessionSink{log: log, Events: make(chan event.DomainEvent, bufferSize)}
}

func (s *SessionSink) Consume(ctx context.Context, e event.DomainEvent) error {
	select {
	case s.Events <- e:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return errors.ErrSessionBufferFull
	}
}
