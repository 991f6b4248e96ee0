package repository

import (
	"context"
	"time"

	"github.com/okrause/recallflow/internal/models"
)

// ItemFilter narrows item listings.
type ItemFilter struct {
	DueOnly bool
	AsOf    time.Time // reference time for DueOnly; zero means now
	Limit   int
	Offset  int
}

// ReviewItemRepository is the durable store for review items. The review
// engine depends on this interface only, so it can be tested against
// testify mocks without a real database.
type ReviewItemRepository interface {
	Insert(ctx context.Context, item models.ReviewItem) error
	// Save writes the complete record; the engine never issues partial updates.
	Save(ctx context.Context, item models.ReviewItem) error
	// GetByID returns nil when the item does not exist.
	GetByID(ctx context.Context, id string) (*models.ReviewItem, error)
	// FindDue returns every item of the owner with next_review_at <= asOf,
	// ordered by next_review_at ascending, then id ascending.
	FindDue(ctx context.Context, ownerID int64, asOf time.Time) ([]models.ReviewItem, error)
	CountDue(ctx context.Context, ownerID int64, asOf time.Time) (int, error)
	List(ctx context.Context, ownerID int64, filter ItemFilter) ([]models.ReviewItem, error)
	DeleteByID(ctx context.Context, id string) error
}

// ReviewHistoryRepository records grading events and aggregates them.
type ReviewHistoryRepository interface {
	Insert(ctx context.Context, h models.ReviewHistory) (int64, error)
	Stats(ctx context.Context, ownerID int64, asOf time.Time) (*models.ReviewStats, error)
}
