package sink

import (
	"context"
	"log/slog"

	"live-reviews/contract"
	"live-reviews/domain/event"
	"live-reviews/search"
)

// SearchSink keeps the full-text index in step with the collection. It is a
// permanent sink: an indexing failure is logged, never propagated, so it can
// neither fail a mutation nor get the sink dropped.
type SearchSink struct {
	index *search.Index
	log   *slog.Logger
}

var _ contract.EventSink = SearchSink{}

func NewSearchSink(index *search.Index, log *slog.Logger) SearchSink {
	return SearchSink{index: index, log: log}
}

func (s SearchSink) Consume(_ context.Context, e event.DomainEvent) error {
	switch evt := e.(type) {
	case event.ReviewAdded:
		return s.index.Index(evt.Review)
	case event.ReviewEdited:
		return s.index.Index(evt.Review)
	case event.ReviewDeleted:
		return s.index.Delete(evt.Review.ID)
	default:
		s.log.Debug("Not indexed event", "review_id", e.ReviewID())
		return nil
	}
}
