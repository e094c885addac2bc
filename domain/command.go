package domain

import "github.com/google/uuid"

type MutationKind int

const (
	MutationCreate MutationKind = iota
	MutationUpdate
	MutationDelete
)

func (k MutationKind) String() string {
	switch k {
	case MutationCreate:
		return "create"
	case MutationUpdate:
		return "update"
	case MutationDelete:
		return "delete"
	}
	return "unknown"
}

// MutationResult is the synchronous outcome of one mutation, sent back on the
// command's reply channel by the writer.
type MutationResult struct {
	Review Review
	Err    error
}

// Mutation is one write command for the collection. All mutations flow through
// a single writer goroutine, which is the sequence point that makes event
// publication order equal store commit order.
type Mutation struct {
	Kind    MutationKind
	ID      uuid.UUID // ignored for create
	Title   string
	Content string
	// Reply receives exactly one result. It must be buffered (capacity 1) so
	// the writer never blocks on a caller that gave up waiting.
	Reply chan MutationResult
}
