package httpapi

import (
	"fmt"

	"live-reviews/domain"
	"live-reviews/domain/event"
)

// PushMessageType is the single message type carried by the push channel.
const PushMessageType = "review-update"

const (
	EventTypeAdd    = "add"
	EventTypeEdit   = "edit"
	EventTypeDelete = "delete"
)

// ReviewInput is the request body for create and update.
type ReviewInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// EventPayload is the wire form of one mutation event.
type EventPayload struct {
	EventType string        `json:"eventType"`
	Data      domain.Review `json:"data"`
}

// PushMessage is one frame on the push channel.
type PushMessage struct {
	Type    string       `json:"type"`
	Payload EventPayload `json:"payload"`
}

func NewPushMessage(e event.DomainEvent) (PushMessage, error) {
	payload := EventPayload{}
	switch evt := e.(type) {
	case event.ReviewAdded:
		payload = EventPayload{EventType: EventTypeAdd, Data: evt.Review}
	case event.ReviewEdited:
		payload = EventPayload{EventType: EventTypeEdit, Data: evt.Review}
	case event.ReviewDeleted:
		payload = EventPayload{EventType: EventTypeDelete, Data: evt.Review}
	default:
		return PushMessage{}, fmt.Errorf("no wire form for event %T", e)
	}
	return PushMessage{Type: PushMessageType, Payload: payload}, nil
}

// DomainEvent converts a received payload back into the event applied to a
// client-side projection.
func (p EventPayload) DomainEvent() (event.DomainEvent, error) {
	switch p.EventType {
	case EventTypeAdd:
		return event.ReviewAdded{Review: p.Data}, nil
	case EventTypeEdit:
		return event.ReviewEdited{Review: p.Data}, nil
	case EventTypeDelete:
		return event.ReviewDeleted{Review: p.Data}, nil
	}
	return nil, fmt.Errorf("unknown event type %q", p.EventType)
}
