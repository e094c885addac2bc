//go:generate go run go.uber.org/mock/mockgen -source=review.go -destination=../mocks/mock_review_repository.go -package=mocks
package repositories

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"live-reviews/domain"
	apperrors "live-reviews/errors"
)

type IReviewRepository interface {
	Create(title, content string) (domain.Review, error)
	Get(id uuid.UUID) (domain.Review, error)
	List() ([]domain.Review, error)
	Update(id uuid.UUID, title, content string) (domain.Review, error)
	Delete(id uuid.UUID) (domain.Review, error)
}

type ReviewRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewReviewRepository(db *badger.DB, log *slog.Logger) ReviewRepository {
	return ReviewRepository{db: db, log: log}
}

// Each review is written under two keys:
//  1. "review:{id}" holds the record itself.
//  2. "review_ts:{timestamp_padded}:{id}" is a secondary index whose value is
//     the id. The 19-digit zero padding makes lexicographical order equal
//     chronological order, so listing newest-first is a single reverse prefix
//     scan. DateTime never changes after creation, so the index key is stable
//     across updates.
const (
	recordPrefix = "review:"
	indexPrefix  = "review_ts:"
)

func recordKey(id uuid.UUID) []byte {
	return []byte(recordPrefix + id.String())
}

func indexKey(id uuid.UUID, at time.Time) []byte {
	return []byte(fmt.Sprintf("%s%019d:%s", indexPrefix, at.UnixNano(), id))
}

// Create assigns the id and creation timestamp, persists the record and
// returns it as stored.
func (r ReviewRepository) Create(title, content string) (domain.Review, error) {
	review := domain.Review{
		ID:       uuid.New(),
		Title:    title,
		Content:  content,
		DateTime: time.Now().UTC(),
	}
	bytes, err := json.Marshal(review)
	if err != nil {
		return domain.Review{}, err
	}
	err = r.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(recordKey(review.ID), bytes); err != nil {
			return err
		}
		return txn.Set(indexKey(review.ID, review.DateTime), []byte(review.ID.String()))
	})
	if err != nil {
		return domain.Review{}, storeError(err)
	}
	return review, nil
}

func (r ReviewRepository) Get(id uuid.UUID) (domain.Review, error) {
	var review domain.Review
	err := r.db.View(func(txn *badger.Txn) error {
		found, err := getReview(txn, id)
		if err != nil {
			return err
		}
		review = found
		return nil
	})
	if err != nil {
		return domain.Review{}, storeError(err)
	}
	return review, nil
}

// List returns every review ordered by creation time descending. It walks the
// time index backwards and resolves each hit inside the same transaction.
func (r ReviewRepository) List() ([]domain.Review, error) {
	var reviews []domain.Review
	err := r.db.View(func(txn *badger.Txn) error {
		options := badger.DefaultIteratorOptions
		options.Reverse = true
		it := txn.NewIterator(options)
		defer it.Close()

		prefix := []byte(indexPrefix)
		// Seek past the largest possible padded timestamp, then walk back.
		seekKey := append(append([]byte{}, prefix...), []byte("9999999999999999999")...)
		for it.Seek(seekKey); it.ValidForPrefix(prefix); it.Next() {
			var id uuid.UUID
			err := it.Item().Value(func(value []byte) error {
				parsed, err := uuid.Parse(string(value))
				if err != nil {
					return err
				}
				id = parsed
				return nil
			})
			if err != nil {
				return err
			}
			review, err := getReview(txn, id)
			if err != nil {
				return err
			}
			reviews = append(reviews, review)
		}
		return nil
	})
	if err != nil {
		return nil, storeError(err)
	}
	return reviews, nil
}

// Update replaces title and content, preserving id and creation timestamp.
func (r ReviewRepository) Update(id uuid.UUID, title, content string) (domain.Review, error) {
	var review domain.Review
	err := r.db.Update(func(txn *badger.Txn) error {
		found, err := getReview(txn, id)
		if err != nil {
			return err
		}
		found.Title = title
		found.Content = content
		bytes, err := json.Marshal(found)
		if err != nil {
			return err
		}
		if err := txn.Set(recordKey(id), bytes); err != nil {
			return err
		}
		review = found
		return nil
	})
	if err != nil {
		return domain.Review{}, storeError(err)
	}
	return review, nil
}

// Delete removes the record and its index entry, returning the record as it
// existed immediately before removal so the delete event can carry it.
func (r ReviewRepository) Delete(id uuid.UUID) (domain.Review, error) {
	var review domain.Review
	err := r.db.Update(func(txn *badger.Txn) error {
		found, err := getReview(txn, id)
		if err != nil {
			return err
		}
		if err := txn.Delete(recordKey(id)); err != nil {
			return err
		}
		if err := txn.Delete(indexKey(id, found.DateTime)); err != nil {
			return err
		}
		review = found
		return nil
	})
	if err != nil {
		return domain.Review{}, storeError(err)
	}
	return review, nil
}

func getReview(txn *badger.Txn, id uuid.UUID) (domain.Review, error) {
	item, err := txn.Get(recordKey(id))
	if err != nil {
		return domain.Review{}, err
	}
	var review domain.Review
	err = item.Value(func(value []byte) error {
		return json.Unmarshal(value, &review)
	})
	return review, err
}

// storeError keeps the NotFound outcome distinct from genuine storage
// failures, which surface as ErrStoreUnavailable.
func storeError(err error) error {
	if errors.Is(err, badger.ErrKeyNotFound) {
		return apperrors.ErrNotFound
	}
	return fmt.Errorf("%w: %s", apperrors.ErrStoreUnavailable, err)
}
