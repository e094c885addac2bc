// Package projection builds a local, ordered view of the review collection
// from observed events. It handles ordering, deduplication, and self-healing;
// it never mutates the store or emits events.
package projection

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"live-reviews/contract"
	"live-reviews/domain"
	"live-reviews/domain/event"
)

// Projection mirrors the collection for one session: seeded by a snapshot
// fetch, then patched by events. Application is idempotent: a mutator sees
// its own change twice (direct reply plus echoed broadcast) and must end with
// exactly one entry per id.
type Projection struct {
	mu      sync.RWMutex
	reviews []domain.Review
}

var _ contract.EventSink = (*Projection)(nil)

func NewProjection() *Projection {
	return &Projection{}
}

// Seed replaces the whole view with a snapshot.
func (p *Projection) Seed(reviews []domain.Review) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.reviews = append([]domain.Review(nil), reviews...)
	p.sortLocked()
}

// Apply patches the view with one event:
//   - add: insert; an existing entry with the same id is replaced, not duplicated
//   - edit: replace; an absent entry is inserted (heals missed events)
//   - delete: remove; an absent entry is a no-op
//
// Ordering is re-derived from DateTime after every application, never from
// event arrival order.
func (p *Projection) Apply(e event.DomainEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	switch evt := e.(type) {
	case event.ReviewAdded:
		p.upsertLocked(evt.Review)
	case event.ReviewEdited:
		p.upsertLocked(evt.Review)
	case event.ReviewDeleted:
		p.removeLocked(evt.Review.ID)
	}
	p.sortLocked()
}

// Consume lets a Projection sit directly on the fanout as a permanent sink.
func (p *Projection) Consume(_ context.Context, e event.DomainEvent) error {
	p.Apply(e)
	return nil
}

// Reviews returns a copy of the view, ordered by DateTime descending.
func (p *Projection) Reviews() []domain.Review {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]domain.Review(nil), p.reviews...)
}

func (p *Projection) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.reviews)
}

func (p *Projection) upsertLocked(review domain.Review) {
	for i := range p.reviews {
		if p.reviews[i].ID == review.ID {
			p.reviews[i] = review
			return
		}
	}
	p.reviews = append(p.reviews, review)
}

func (p *Projection) removeLocked(id uuid.UUID) {
	for i := range p.reviews {
		if p.reviews[i].ID == id {
			p.reviews = append(p.reviews[:i], p.reviews[i+1:]...)
			return
		}
	}
}

func (p *Projection) sortLocked() {
	sort.Slice(p.reviews, func(i, j int) bool {
		if p.reviews[i].DateTime.Equal(p.reviews[j].DateTime) {
			return p.reviews[i].ID.String() < p.reviews[j].ID.String()
		}
		return p.reviews[i].DateTime.After(p.reviews[j].DateTime)
	})
}
