package sink

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"live-reviews/domain/event"
	"live-reviews/errors"
)

func Test_SessionSink_Buffers_Events(t *testing.T) {
	req := require.New(t)
	sessionSink := NewSessionSink(slog.Default(), 2)

	// Given a sink with room for two events
	req.NoError(sessionSink.Consume(context.Background(), event.ReviewAdded{}))
	req.NoError(sessionSink.Consume(context.Background(), event.ReviewEdited{}))

	// When a third event arrives before the session drained anything
	err := sessionSink.Consume(context.Background(), event.ReviewDeleted{})

	// Then the sink reports the stall instead of blocking the fanout
	req.ErrorIs(err, errors.ErrSessionBufferFull)
	req.Len(sessionSink.Events, 2)
}
