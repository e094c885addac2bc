package httpapi

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"live-reviews/sink"
)

const pingInterval = 30 * time.Second

// subscribe upgrades the connection and turns it into a session: a fresh sink
// is registered with the broadcaster and this handler becomes the session's
// delivery loop, draining the sink onto the wire. The session only lives as
// long as the connection; there is no backlog and no reconnect-with-state.
// A reconnecting client starts a brand-new session and refetches the snapshot.
func (s *Server) subscribe(writer http.ResponseWriter, request *http.Request) {
	conn, err := s.upgrader.Upgrade(writer, request, nil)
	if err != nil {
		s.log.Warn("Websocket upgrade failed", "error", err)
		return
	}
	defer func() { _ = conn.Close() }()

	sessionID := uuid.NewString()
	sessionSink := sink.NewSessionSink(s.log, s.connectionBufferSize)
	s.service.Subscribe(sessionID, sessionSink)
	defer s.service.Unsubscribe(sessionID)

	// The read loop only exists to notice the peer going away. No
	// client-to-server messages are defined on this channel.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	pings := time.NewTicker(pingInterval)
	defer pings.Stop()

	for {
		select {
		case <-closed:
			s.log.Debug("Client closed push channel", "session_id", sessionID)
			return
		case <-request.Context().Done():
			return
		case evt := <-sessionSink.Events:
			message, err := NewPushMessage(evt)
			if err != nil {
				s.log.Error("Dropping event without wire form", "error", err)
				continue
			}
			_ = conn.SetWriteDeadline(time.Now().Add(s.writeTimeout))
			if err := conn.WriteJSON(message); err != nil {
				s.log.Warn("Failed to push event, closing session",
					"session_id", sessionID, "error", err)
				return
			}
		case <-pings.C:
			_ = conn.SetWriteDeadline(time.Now().Add(s.writeTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
