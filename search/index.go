// Package search maintains a full-text index of the review collection, fed by
// mutation events and queried by the search endpoint. The index is a derived
// view; the store stays authoritative and search results are resolved back
// through it.
package search

import (
	"context"
	"log/slog"

	"github.com/abadojack/whatlanggo"
	"github.com/blugelabs/bluge"
	"github.com/google/uuid"

	"live-reviews/domain"
)

type Index struct {
	log    *slog.Logger
	writer *bluge.Writer
}

// NewIndex opens a persistent index at path. An empty path opens an in-memory
// index, used by tests.
func NewIndex(log *slog.Logger, path string) (*Index, error) {
	config := bluge.InMemoryOnlyConfig()
	if path != "" {
		config = bluge.DefaultConfig(path)
	}
	writer, err := bluge.OpenWriter(config)
	if err != nil {
		return nil, err
	}
	return &Index{log: log, writer: writer}, nil
}

// Index adds or replaces the document for one review. Title and content are
// analyzed as text; the detected content language is kept as a keyword field
// so queries can later filter on it.
func (i *Index) Index(review domain.Review) error {
	info := whatlanggo.Detect(review.Content)
	doc := bluge.NewDocument(review.ID.String()).
		AddField(bluge.NewTextField("title", review.Title)).
		AddField(bluge.NewTextField("content", review.Content)).
		AddField(bluge.NewKeywordField("lang", whatlanggo.LangToString(info.Lang)))
	return i.writer.Update(doc.ID(), doc)
}

func (i *Index) Delete(id uuid.UUID) error {
	return i.writer.Delete(bluge.Identifier(id.String()))
}

// Search matches the query against title and content and returns the ids of
// the best matches, most relevant first.
func (i *Index) Search(ctx context.Context, query string, limit int) ([]uuid.UUID, error) {
	reader, err := i.writer.Reader()
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := reader.Close(); err != nil {
			i.log.Error("Failed to close index reader", "error", err)
		}
	}()

	matchAny := bluge.NewBooleanQuery().AddShould(
		bluge.NewMatchQuery(query).SetField("title"),
		bluge.NewMatchQuery(query).SetField("content"),
	)
	iterator, err := reader.Search(ctx, bluge.NewTopNSearch(limit, matchAny))
	if err != nil {
		return nil, err
	}

	var ids []uuid.UUID
	for {
		match, err := iterator.Next()
		if err != nil {
			return nil, err
		}
		if match == nil {
			return ids, nil
		}
		err = match.VisitStoredFields(func(field string, value []byte) bool {
			if field != "_id" {
				return true
			}
			if id, err := uuid.Parse(string(value)); err == nil {
				ids = append(ids, id)
			}
			return false
		})
		if err != nil {
			return nil, err
		}
	}
}

func (i *Index) Close() error {
	return i.writer.Close()
}
