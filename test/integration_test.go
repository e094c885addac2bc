package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/mama165/sdk-go/logs"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"

	"live-reviews/client"
	"live-reviews/domain"
	"live-reviews/infrastructure/httpapi"
	"live-reviews/repositories"
	"live-reviews/runtime"
	"live-reviews/runtime/workers"
	"live-reviews/search"
	"live-reviews/services"
	"live-reviews/sink"
)

type stack struct {
	url     string
	service services.IReviewService
}

func startStack(t *testing.T) stack {
	t.Helper()
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)

	// Reduced to 16 Mo for testing (avoid 20 Go of storage)
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).
		WithLoggingLevel(badger.ERROR).
		WithValueLogFileSize(16 << 20))
	req.NoError(err)

	index, err := search.NewIndex(log, "")
	req.NoError(err)

	supervisor := workers.NewSupervisor(log, 200*time.Millisecond)
	registry := runtime.NewRegistry()
	repository := repositories.NewReviewRepository(db, log)
	broadcaster := runtime.NewBroadcaster(log, supervisor, registry, repository,
		64, time.Second, time.Minute)
	broadcaster.Add(sink.NewSearchSink(index, log))

	ctx, cancel := context.WithCancel(context.Background())
	broadcaster.Start(ctx)

	service := services.NewReviewService(broadcaster, index, 10000, 20)
	server := httpapi.NewServer(log, service, "*", 64, time.Second)
	ts := httptest.NewServer(server.Router())

	t.Cleanup(func() {
		ts.Close()
		cancel()
		broadcaster.Stop()
		_ = index.Close()
		_ = db.Close()
	})
	return stack{url: ts.URL, service: service}
}

func connect(t *testing.T, url string) *client.Client {
	t.Helper()
	c := client.New(logs.GetLoggerFromLevel(slog.LevelDebug), url)
	require.NoError(t, c.Connect(context.Background()))
	t.Cleanup(c.Close)
	return c
}

func postReview(t *testing.T, url, title, content string) domain.Review {
	t.Helper()
	req := require.New(t)
	body, err := json.Marshal(map[string]string{"title": title, "content": content})
	req.NoError(err)
	resp, err := http.Post(url+"/reviews", "application/json", bytes.NewReader(body))
	req.NoError(err)
	defer resp.Body.Close()
	req.Equal(http.StatusCreated, resp.StatusCode)
	var review domain.Review
	req.NoError(json.NewDecoder(resp.Body).Decode(&review))
	return review
}

func putReview(t *testing.T, url string, id uuid.UUID, title, content string) *http.Response {
	t.Helper()
	req := require.New(t)
	body, err := json.Marshal(map[string]string{"title": title, "content": content})
	req.NoError(err)
	request, err := http.NewRequest(http.MethodPut,
		fmt.Sprintf("%s/reviews/%s", url, id), bytes.NewReader(body))
	req.NoError(err)
	request.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(request)
	req.NoError(err)
	return resp
}

func deleteReview(t *testing.T, url string, id uuid.UUID) *http.Response {
	t.Helper()
	request, err := http.NewRequest(http.MethodDelete,
		fmt.Sprintf("%s/reviews/%s", url, id), nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(request)
	require.NoError(t, err)
	return resp
}

func ids(reviews []domain.Review) []uuid.UUID {
	return lo.Map(reviews, func(review domain.Review, _ int) uuid.UUID {
		return review.ID
	})
}

func Test_Two_Sessions_Converge_On_Every_Mutation(t *testing.T) {
	req := require.New(t)
	s := startStack(t)

	alpha := connect(t, s.url)
	beta := connect(t, s.url)

	// Given a created review, both sessions see it
	created := postReview(t, s.url, "Dune", "A slow start, then unputdownable.")
	req.Eventually(func() bool {
		return len(alpha.Reviews()) == 1 && len(beta.Reviews()) == 1
	}, 2*time.Second, 10*time.Millisecond)
	req.Equal(created, alpha.Reviews()[0])
	req.Equal(created, beta.Reviews()[0])

	// When it is edited, both sessions converge on the new content
	resp := putReview(t, s.url, created.ID, "Dune", "Re-read it. Even better.")
	req.Equal(http.StatusOK, resp.StatusCode)
	resp.Body.Close()
	req.Eventually(func() bool {
		a, b := alpha.Reviews(), beta.Reviews()
		return len(a) == 1 && a[0].Content == "Re-read it. Even better." &&
			len(b) == 1 && b[0].Content == "Re-read it. Even better."
	}, 2*time.Second, 10*time.Millisecond)

	// Identity and creation time survive the edit
	req.Equal(created.ID, alpha.Reviews()[0].ID)
	req.Equal(created.DateTime, alpha.Reviews()[0].DateTime)

	// When it is deleted, both sessions drop it
	resp = deleteReview(t, s.url, created.ID)
	req.Equal(http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()
	req.Eventually(func() bool {
		return len(alpha.Reviews()) == 0 && len(beta.Reviews()) == 0
	}, 2*time.Second, 10*time.Millisecond)
}

func Test_Failed_Mutations_Are_Invisible_To_Sessions(t *testing.T) {
	req := require.New(t)
	s := startStack(t)

	session := connect(t, s.url)
	ghost := uuid.New()

	resp := putReview(t, s.url, ghost, "Ghost", "Never stored")
	req.Equal(http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp = deleteReview(t, s.url, ghost)
	req.Equal(http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	// A successful create acts as a barrier: its event arrives alone, so the
	// failed mutations above produced nothing on the channel.
	created := postReview(t, s.url, "Real", "This one exists")
	req.Eventually(func() bool {
		return len(session.Reviews()) == 1
	}, 2*time.Second, 10*time.Millisecond)
	req.Equal([]uuid.UUID{created.ID}, ids(session.Reviews()))
}

func Test_Late_Joining_Session_Gets_The_Full_Snapshot(t *testing.T) {
	req := require.New(t)
	s := startStack(t)

	early := connect(t, s.url)
	first := postReview(t, s.url, "First", "written before the second session")
	second := postReview(t, s.url, "Second", "also written before")

	req.Eventually(func() bool {
		return len(early.Reviews()) == 2
	}, 2*time.Second, 10*time.Millisecond)

	// The late session never saw those events; the snapshot covers them
	late := connect(t, s.url)
	req.ElementsMatch([]uuid.UUID{first.ID, second.ID}, ids(late.Reviews()))

	// From here on both sessions follow the same event stream
	third := postReview(t, s.url, "Third", "seen live by both")
	req.Eventually(func() bool {
		return len(early.Reviews()) == 3 && len(late.Reviews()) == 3
	}, 2*time.Second, 10*time.Millisecond)
	req.ElementsMatch([]uuid.UUID{first.ID, second.ID, third.ID}, ids(late.Reviews()))
	req.Equal(early.Reviews(), late.Reviews())
}

func Test_Projections_Match_The_Store_Ordering(t *testing.T) {
	req := require.New(t)
	s := startStack(t)

	session := connect(t, s.url)
	for i := 0; i < 5; i++ {
		postReview(t, s.url, fmt.Sprintf("Title %d", i), fmt.Sprintf("Content %d", i))
	}
	req.Eventually(func() bool {
		return len(session.Reviews()) == 5
	}, 2*time.Second, 10*time.Millisecond)

	stored, err := s.service.List(context.Background())
	req.NoError(err)
	req.Equal(stored, session.Reviews())

	// Newest first on both sides
	for i := 1; i < len(stored); i++ {
		req.False(stored[i].DateTime.After(stored[i-1].DateTime))
	}
}

func Test_Search_Follows_The_Collection(t *testing.T) {
	req := require.New(t)
	s := startStack(t)

	kept := postReview(t, s.url, "Hyperion", "A pilgrimage of six stories")
	doomed := postReview(t, s.url, "Endymion", "A pilgrimage continues")

	search := func() []domain.Review {
		resp, err := http.Get(s.url + "/reviews/search?q=pilgrimage")
		req.NoError(err)
		defer resp.Body.Close()
		req.Equal(http.StatusOK, resp.StatusCode)
		var reviews []domain.Review
		req.NoError(json.NewDecoder(resp.Body).Decode(&reviews))
		return reviews
	}

	req.Eventually(func() bool {
		return len(search()) == 2
	}, 2*time.Second, 50*time.Millisecond)

	resp := deleteReview(t, s.url, doomed.ID)
	req.Equal(http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	req.Eventually(func() bool {
		results := search()
		return len(results) == 1 && results[0].ID == kept.ID
	}, 2*time.Second, 50*time.Millisecond)
}
