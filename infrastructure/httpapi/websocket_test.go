package httpapi

import (
	"context"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"live-reviews/contract"
	"live-reviews/domain"
	"live-reviews/domain/event"
	"live-reviews/mocks"
)

func Test_Subscribe_Pushes_Events_To_The_Connection(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service := mocks.NewMockIReviewService(ctrl)
	server := NewServer(logs.GetLoggerFromLevel(slog.LevelDebug), service, "*", 16, time.Second)

	sinks := make(chan contract.EventSink, 1)
	service.EXPECT().Subscribe(gomock.Any(), gomock.Any()).
		Do(func(_ string, sink contract.EventSink) { sinks <- sink })
	service.EXPECT().Unsubscribe(gomock.Any())

	ts := httptest.NewServer(server.Router())
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	req.NoError(err)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}

	var sink contract.EventSink
	select {
	case sink = <-sinks:
	case <-time.After(time.Second):
		t.Fatal("session was never registered")
	}

	review := domain.Review{ID: uuid.New(), Title: "T1", Content: "C1", DateTime: time.Now().UTC()}
	req.NoError(sink.Consume(context.Background(), event.ReviewAdded{Review: review}))

	req.NoError(conn.SetReadDeadline(time.Now().Add(time.Second)))
	var message PushMessage
	req.NoError(conn.ReadJSON(&message))
	req.Equal(PushMessageType, message.Type)
	req.Equal(EventTypeAdd, message.Payload.EventType)
	req.Equal(review.ID, message.Payload.Data.ID)

	// Closing the connection must tear the session down and unsubscribe it,
	// which ctrl.Finish verifies.
	req.NoError(conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")))
	_ = conn.Close()
	time.Sleep(100 * time.Millisecond)
}

func Test_Subscribe_Rejects_Foreign_Origin(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service := mocks.NewMockIReviewService(ctrl)
	server := NewServer(logs.GetLoggerFromLevel(slog.LevelDebug), service, "http://localhost:3001", 16, time.Second)

	ts := httptest.NewServer(server.Router())
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	header := map[string][]string{"Origin": {"http://evil.example"}}
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, header)
	if conn != nil {
		_ = conn.Close()
	}
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	req.Error(err)
}
