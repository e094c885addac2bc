//go:generate go run go.uber.org/mock/mockgen -source=review_service.go -destination=../mocks/mock_review_service.go -package=mocks
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"live-reviews/contract"
	"live-reviews/domain"
	apperrors "live-reviews/errors"
	"live-reviews/runtime"
	"live-reviews/search"
)

type IReviewService interface {
	Create(ctx context.Context, title, content string) (domain.Review, error)
	Get(ctx context.Context, id uuid.UUID) (domain.Review, error)
	List(ctx context.Context) ([]domain.Review, error)
	Update(ctx context.Context, id uuid.UUID, title, content string) (domain.Review, error)
	Delete(ctx context.Context, id uuid.UUID) (domain.Review, error)
	Search(ctx context.Context, query string) ([]domain.Review, error)
	Subscribe(sessionID string, sink contract.EventSink)
	Unsubscribe(sessionID string)
	SessionCount() int
}

// ReviewService is the mutation service: the only writer path. Every write is
// validated here, then serialized through the broadcaster's single writer.
// The reply always reflects the store outcome alone; event delivery can never
// fail a mutation.
type ReviewService struct {
	broadcaster      *runtime.Broadcaster
	index            *search.Index
	validate         *validator.Validate
	maxContentLength int
	searchLimit      int
}

func NewReviewService(broadcaster *runtime.Broadcaster, index *search.Index,
	maxContentLength, searchLimit int) *ReviewService {
	return &ReviewService{
		broadcaster:      broadcaster,
		index:            index,
		validate:         validator.New(),
		maxContentLength: maxContentLength,
		searchLimit:      searchLimit,
	}
}

// checkInput keeps the minimal validation posture: any string, including the
// empty one, is accepted; only the configured length ceiling is enforced.
func (s *ReviewService) checkInput(title, content string) error {
	if s.maxContentLength <= 0 {
		return nil
	}
	rule := fmt.Sprintf("max=%d", s.maxContentLength)
	if err := s.validate.Var(title, rule); err != nil {
		return fmt.Errorf("%w: title exceeds %d characters", apperrors.ErrValidation, s.maxContentLength)
	}
	if err := s.validate.Var(content, rule); err != nil {
		return fmt.Errorf("%w: content exceeds %d characters", apperrors.ErrValidation, s.maxContentLength)
	}
	return nil
}

func (s *ReviewService) Create(ctx context.Context, title, content string) (domain.Review, error) {
	if err := s.checkInput(title, content); err != nil {
		return domain.Review{}, err
	}
	return s.broadcaster.Apply(ctx, domain.Mutation{
		Kind:    domain.MutationCreate,
		Title:   title,
		Content: content,
	})
}

func (s *ReviewService) Get(_ context.Context, id uuid.UUID) (domain.Review, error) {
	return s.broadcaster.Get(id)
}

func (s *ReviewService) List(_ context.Context) ([]domain.Review, error) {
	return s.broadcaster.List()
}

func (s *ReviewService) Update(ctx context.Context, id uuid.UUID, title, content string) (domain.Review, error) {
	if err := s.checkInput(title, content); err != nil {
		return domain.Review{}, err
	}
	return s.broadcaster.Apply(ctx, domain.Mutation{
		Kind:    domain.MutationUpdate,
		ID:      id,
		Title:   title,
		Content: content,
	})
}

func (s *ReviewService) Delete(ctx context.Context, id uuid.UUID) (domain.Review, error) {
	return s.broadcaster.Apply(ctx, domain.Mutation{
		Kind: domain.MutationDelete,
		ID:   id,
	})
}

// Search resolves index hits back through the store so results always carry
// the canonical record. A hit whose record vanished in the meantime is
// skipped; the index simply has not caught up with a delete yet.
func (s *ReviewService) Search(ctx context.Context, query string) ([]domain.Review, error) {
	ids, err := s.index.Search(ctx, query, s.searchLimit)
	if err != nil {
		return nil, err
	}
	reviews := make([]domain.Review, 0, len(ids))
	for _, id := range ids {
		review, err := s.broadcaster.Get(id)
		if errors.Is(err, apperrors.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, review)
	}
	return reviews, nil
}

func (s *ReviewService) Subscribe(sessionID string, sink contract.EventSink) {
	s.broadcaster.Subscribe(sessionID, sink)
}

func (s *ReviewService) Unsubscribe(sessionID string) {
	s.broadcaster.Unsubscribe(sessionID)
}

func (s *ReviewService) SessionCount() int {
	return s.broadcaster.SessionCount()
}
