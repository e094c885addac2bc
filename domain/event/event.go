package event

import (
	"live-reviews/domain"

	"github.com/google/uuid"
)

// DomainEvent describes one committed mutation of the review collection.
// An event exists if and only if the corresponding store mutation committed.
type DomainEvent interface {
	ReviewID() uuid.UUID
}

// ReviewAdded carries the full record as stored.
type ReviewAdded struct {
	Review domain.Review
}

func (e ReviewAdded) ReviewID() uuid.UUID { return e.Review.ID }

// ReviewEdited carries the full post-update record. DateTime is unchanged
// from creation.
type ReviewEdited struct {
	Review domain.Review
}

func (e ReviewEdited) ReviewID() uuid.UUID { return e.Review.ID }

// ReviewDeleted carries the record as it existed immediately before removal,
// so subscribers can identify what disappeared.
type ReviewDeleted struct {
	Review domain.Review
}

func (e ReviewDeleted) ReviewID() uuid.UUID { return e.Review.ID }
