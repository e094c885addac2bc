// Package client is a Go consumer of the live reviews service: it seeds a
// local projection from one snapshot fetch, then keeps it current by applying
// events from the push channel.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/gorilla/websocket"

	"live-reviews/domain"
	"live-reviews/domain/event"
	"live-reviews/infrastructure/httpapi"
	"live-reviews/projection"
)

type Client struct {
	log        *slog.Logger
	baseURL    string
	httpClient *http.Client
	projection *projection.Projection
	// OnEvent, when set before Connect, is invoked after each event has been
	// applied to the projection.
	OnEvent func(event.DomainEvent)

	mu   sync.Mutex
	conn *websocket.Conn
	done chan struct{}
}

func New(log *slog.Logger, baseURL string) *Client {
	return &Client{
		log:        log,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
		projection: projection.NewProjection(),
	}
}

// Connect performs the snapshot fetch, opens the push channel, and starts
// applying events. The snapshot is fetched after the subscription is live so
// no mutation can fall between the two: anything missing from the snapshot
// arrives as an event, and the projection absorbs the overlap idempotently.
func (c *Client) Connect(ctx context.Context) error {
	wsURL := "ws" + strings.TrimPrefix(c.baseURL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return fmt.Errorf("failed to open push channel: %w", err)
	}
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}

	snapshot, err := c.fetchSnapshot(ctx)
	if err != nil {
		_ = conn.Close()
		return err
	}
	c.projection.Seed(snapshot)

	c.mu.Lock()
	c.conn = conn
	c.done = make(chan struct{})
	c.mu.Unlock()

	go c.readLoop(conn)
	return nil
}

func (c *Client) fetchSnapshot(ctx context.Context) ([]domain.Review, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/reviews", nil)
	if err != nil {
		return nil, err
	}
	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("snapshot fetch failed: %w", err)
	}
	defer func() { _ = response.Body.Close() }()
	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("snapshot fetch failed: status %d", response.StatusCode)
	}
	var reviews []domain.Review
	if err := json.NewDecoder(response.Body).Decode(&reviews); err != nil {
		return nil, fmt.Errorf("snapshot decode failed: %w", err)
	}
	return reviews, nil
}

func (c *Client) readLoop(conn *websocket.Conn) {
	defer close(c.done)
	for {
		var message httpapi.PushMessage
		if err := conn.ReadJSON(&message); err != nil {
			c.log.Debug("Push channel closed", "error", err)
			return
		}
		if message.Type != httpapi.PushMessageType {
			c.log.Debug("Ignoring unknown message", "type", message.Type)
			continue
		}
		evt, err := message.Payload.DomainEvent()
		if err != nil {
			c.log.Warn("Ignoring malformed event", "error", err)
			continue
		}
		c.projection.Apply(evt)
		if c.OnEvent != nil {
			c.OnEvent(evt)
		}
	}
}

// Reviews returns the current projection, ordered by dateTime descending.
func (c *Client) Reviews() []domain.Review {
	return c.projection.Reviews()
}

// Close ends the session. The projection is this session's state and dies
// with it; a later Connect starts from a fresh snapshot.
func (c *Client) Close() {
	c.mu.Lock()
	conn, done := c.conn, c.done
	c.conn = nil
	c.mu.Unlock()
	if conn == nil {
		return
	}
	_ = conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	_ = conn.Close()
	<-done
}
