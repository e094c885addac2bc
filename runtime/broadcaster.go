// Package runtime owns the synchronization core: the single-writer mutation
// queue, the session registry, and the supervised workers that translate
// committed mutations into fanned-out events. It contains no HTTP or storage
// format knowledge.
package runtime

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"live-reviews/contract"
	"live-reviews/domain"
	"live-reviews/domain/event"
	"live-reviews/repositories"
	"live-reviews/runtime/workers"
)

// Broadcaster wires the review store to every connected session. All writes
// go through one mutation channel consumed by a single writer worker; the
// resulting events flow through one event channel consumed by the fanout
// worker. Reads bypass the queue and hit the store directly.
type Broadcaster struct {
	mu             sync.Mutex
	log            *slog.Logger
	supervisor     contract.ISupervisor
	registry       contract.IRegistry
	repository     repositories.IReviewRepository
	mutations      chan domain.Mutation
	events         chan event.DomainEvent
	permanentSinks []contract.EventSink
	sinkTimeout    time.Duration
	metricInterval time.Duration
}

func NewBroadcaster(log *slog.Logger, supervisor contract.ISupervisor,
	registry contract.IRegistry, repository repositories.IReviewRepository,
	bufferSize int, sinkTimeout, metricInterval time.Duration) *Broadcaster {
	return &Broadcaster{
		log:            log,
		supervisor:     supervisor,
		registry:       registry,
		repository:     repository,
		mutations:      make(chan domain.Mutation, bufferSize),
		events:         make(chan event.DomainEvent, bufferSize),
		sinkTimeout:    sinkTimeout,
		metricInterval: metricInterval,
	}
}

// Add registers permanent sinks (projection, search index) that receive every
// event for the lifetime of the process. Must be called before Start.
func (b *Broadcaster) Add(sinks ...contract.EventSink) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.permanentSinks = append(b.permanentSinks, sinks...)
}

// Apply enqueues one mutation and waits for the writer's reply. The reply
// reflects the store outcome only, independent of any delivery downstream.
func (b *Broadcaster) Apply(ctx context.Context, m domain.Mutation) (domain.Review, error) {
	m.Reply = make(chan domain.MutationResult, 1)
	select {
	case b.mutations <- m:
	case <-ctx.Done():
		return domain.Review{}, ctx.Err()
	}
	select {
	case result := <-m.Reply:
		return result.Review, result.Err
	case <-ctx.Done():
		return domain.Review{}, ctx.Err()
	}
}

func (b *Broadcaster) Get(id uuid.UUID) (domain.Review, error) {
	return b.repository.Get(id)
}

func (b *Broadcaster) List() ([]domain.Review, error) {
	return b.repository.List()
}

// Subscribe connects a session. The session only sees events published after
// this point; catching up on earlier state is the snapshot fetch's job.
func (b *Broadcaster) Subscribe(sessionID string, sink contract.EventSink) {
	b.registry.Subscribe(sessionID, sink)
	b.log.Debug("Session connected", "session_id", sessionID)
}

func (b *Broadcaster) Unsubscribe(sessionID string) {
	b.registry.Unsubscribe(sessionID)
	b.log.Debug("Session disconnected", "session_id", sessionID)
}

func (b *Broadcaster) SessionCount() int {
	return b.registry.Count()
}

// Start registers the writer, fanout, and telemetry workers and launches the
// supervision loop in the background.
func (b *Broadcaster) Start(ctx context.Context) {
	b.mu.Lock()
	b.supervisor.Add(
		workers.NewMutator(b.log, b.repository, b.mutations, b.events),
		workers.NewEventFanout(b.log, b.registry, b.events, b.permanentSinks, b.sinkTimeout),
		workers.NewTelemetryWorker(b.log, b.registry, b.metricInterval),
	)
	b.mu.Unlock()

	b.log.Info("Starting broadcaster and all supervised workers")
	go b.supervisor.Run(ctx)
}

// Stop initiates a graceful shutdown of the supervised workers.
func (b *Broadcaster) Stop() {
	b.log.Info("Requesting broadcaster shutdown")
	b.supervisor.Stop()
}
