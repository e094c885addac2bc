package search

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"live-reviews/domain"
)

func openTestIndex(t *testing.T) *Index {
	t.Helper()
	index, err := NewIndex(slog.Default(), "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = index.Close() })
	return index
}

func Test_Index_And_Search(t *testing.T) {
	req := require.New(t)
	index := openTestIndex(t)

	pizza := domain.Review{ID: uuid.New(), Title: "Pizzeria Bella", Content: "the margherita pizza was outstanding", DateTime: time.Now().UTC()}
	sushi := domain.Review{ID: uuid.New(), Title: "Sushi corner", Content: "fresh fish and friendly staff", DateTime: time.Now().UTC()}
	req.NoError(index.Index(pizza))
	req.NoError(index.Index(sushi))

	ids, err := index.Search(context.Background(), "pizza", 10)
	req.NoError(err)
	req.Equal([]uuid.UUID{pizza.ID}, ids)

	// Title words match too
	ids, err = index.Search(context.Background(), "sushi", 10)
	req.NoError(err)
	req.Equal([]uuid.UUID{sushi.ID}, ids)
}

func Test_Index_Replaces_On_Edit(t *testing.T) {
	req := require.New(t)
	index := openTestIndex(t)

	review := domain.Review{ID: uuid.New(), Title: "T", Content: "terrible service", DateTime: time.Now().UTC()}
	req.NoError(index.Index(review))

	review.Content = "wonderful service after all"
	req.NoError(index.Index(review))

	ids, err := index.Search(context.Background(), "terrible", 10)
	req.NoError(err)
	req.Empty(ids)

	ids, err = index.Search(context.Background(), "wonderful", 10)
	req.NoError(err)
	req.Equal([]uuid.UUID{review.ID}, ids)
}

func Test_Delete_Removes_From_Index(t *testing.T) {
	req := require.New(t)
	index := openTestIndex(t)

	review := domain.Review{ID: uuid.New(), Title: "T", Content: "short lived", DateTime: time.Now().UTC()}
	req.NoError(index.Index(review))
	req.NoError(index.Delete(review.ID))

	ids, err := index.Search(context.Background(), "lived", 10)
	req.NoError(err)
	req.Empty(ids)
}
