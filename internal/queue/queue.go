// Package queue holds the in-memory working set of due items for one review
// session. The queue is a snapshot: items becoming due while a session is
// active are not injected until the next Load.
package queue

import (
	"context"
	"sort"
	"time"

	"github.com/okrause/recallflow/internal/errors"
	"github.com/okrause/recallflow/internal/logger"
	"github.com/okrause/recallflow/internal/models"
	"github.com/okrause/recallflow/internal/repository"
)

// DueQueue is the ordered set of items currently eligible for review for one
// owner. Earliest-overdue first; ties on next_review_at break by id so the
// order is stable across loads.
type DueQueue struct {
	ownerID int64
	items   []models.ReviewItem
}

// Load fetches the owner's due items from the store as of the given time.
// limit bounds the working set; limit <= 0 means unbounded.
func Load(ctx context.Context, repo repository.ReviewItemRepository, ownerID int64, asOf time.Time, limit int) (*DueQueue, error) {
	log := logger.FromContext(ctx).WithPrefix("due-queue")
	log.Debug("loading due items: owner_id=%d, as_of=%s", ownerID, asOf.Format(time.RFC3339))

	items, err := repo.FindDue(ctx, ownerID, asOf)
	if err != nil {
		log.Error("failed to load due items: %v", err)
		return nil, errors.NewStoreUnavailableError("findDue", err)
	}

	// The repository already orders its result; sorting again keeps the
	// policy owned by the queue rather than by SQL.
	sort.Slice(items, func(i, j int) bool {
		if items[i].NextReviewAt.Equal(items[j].NextReviewAt) {
			return items[i].ID < items[j].ID
		}
		return items[i].NextReviewAt.Before(items[j].NextReviewAt)
	})

	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}

	log.Debug("queue loaded with %d items", len(items))
	return &DueQueue{ownerID: ownerID, items: items}, nil
}

// OwnerID returns the owner this queue was loaded for.
func (q *DueQueue) OwnerID() int64 {
	return q.ownerID
}

// Current returns the head of the queue, or false when the queue is empty.
func (q *DueQueue) Current() (models.ReviewItem, bool) {
	if len(q.items) == 0 {
		return models.ReviewItem{}, false
	}
	return q.items[0], true
}

// Remove drops the item with the given id from the queue. It does not touch
// the store; persistence happens before removal. Returns false when the id
// is not in the queue.
func (q *DueQueue) Remove(id string) bool {
	for i, item := range q.items {
		if item.ID == id {
			q.items = append(q.items[:i], q.items[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the number of items remaining in the queue.
func (q *DueQueue) Len() int {
	return len(q.items)
}
