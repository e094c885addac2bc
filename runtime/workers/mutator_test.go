package workers

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"live-reviews/domain"
	"live-reviews/domain/event"
	"live-reviews/errors"
	"live-reviews/mocks"
)

func startMutator(t *testing.T, repository *mocks.MockIReviewRepository) (chan domain.Mutation, chan event.DomainEvent) {
	t.Helper()
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	mutations := make(chan domain.Mutation, 10)
	events := make(chan event.DomainEvent, 10)
	mutator := NewMutator(log, repository, mutations, events)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go func() { _ = mutator.Run(ctx) }()
	return mutations, events
}

func apply(t *testing.T, mutations chan domain.Mutation, m domain.Mutation) domain.MutationResult {
	t.Helper()
	m.Reply = make(chan domain.MutationResult, 1)
	mutations <- m
	select {
	case result := <-m.Reply:
		return result
	case <-time.After(time.Second):
		t.Fatal("no reply from mutator")
		return domain.MutationResult{}
	}
}

func Test_Mutator_Create_Replies_And_Emits(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repository := mocks.NewMockIReviewRepository(ctrl)
	stored := domain.Review{ID: uuid.New(), Title: "T1", Content: "C1", DateTime: time.Now().UTC()}
	repository.EXPECT().Create("T1", "C1").Return(stored, nil).Times(1)

	mutations, events := startMutator(t, repository)

	result := apply(t, mutations, domain.Mutation{Kind: domain.MutationCreate, Title: "T1", Content: "C1"})
	req.NoError(result.Err)
	req.Equal(stored, result.Review)

	select {
	case evt := <-events:
		req.Equal(event.ReviewAdded{Review: stored}, evt)
	case <-time.After(time.Second):
		req.Fail("expected an add event")
	}
}

func Test_Mutator_NotFound_Emits_Nothing(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	missing := uuid.New()
	repository := mocks.NewMockIReviewRepository(ctrl)
	repository.EXPECT().Update(missing, "T", "C").
		Return(domain.Review{}, errors.ErrNotFound).Times(1)
	repository.EXPECT().Delete(missing).
		Return(domain.Review{}, errors.ErrNotFound).Times(1)

	mutations, events := startMutator(t, repository)

	result := apply(t, mutations, domain.Mutation{Kind: domain.MutationUpdate, ID: missing, Title: "T", Content: "C"})
	req.ErrorIs(result.Err, errors.ErrNotFound)
	result = apply(t, mutations, domain.Mutation{Kind: domain.MutationDelete, ID: missing})
	req.ErrorIs(result.Err, errors.ErrNotFound)

	// A failed find must not broadcast anything
	select {
	case evt := <-events:
		req.Failf("unexpected event", "%v", evt)
	case <-time.After(100 * time.Millisecond):
	}
}

func Test_Mutator_Event_Order_Matches_Commit_Order(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repository := mocks.NewMockIReviewRepository(ctrl)
	first := domain.Review{ID: uuid.New(), Title: "first"}
	second := domain.Review{ID: uuid.New(), Title: "second"}
	gomock.InOrder(
		repository.EXPECT().Create("first", "").Return(first, nil),
		repository.EXPECT().Create("second", "").Return(second, nil),
	)

	mutations, events := startMutator(t, repository)

	apply(t, mutations, domain.Mutation{Kind: domain.MutationCreate, Title: "first"})
	apply(t, mutations, domain.Mutation{Kind: domain.MutationCreate, Title: "second"})

	// Events must surface in commit order
	req.Equal(first.ID, (<-events).ReviewID())
	req.Equal(second.ID, (<-events).ReviewID())
}
