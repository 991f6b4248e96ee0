package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/okrause/recallflow/internal/logger"
	"github.com/okrause/recallflow/internal/models"
	"github.com/okrause/recallflow/internal/repository"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

const reviewItemColumns = "id, owner_id, title, content, ease_factor, interval_days, repetitions, next_review_at, created_at, updated_at"

type reviewItemRepository struct {
	db *sql.DB
}

// NewReviewItemRepository creates a new ReviewItemRepository implementation
func NewReviewItemRepository(db *sql.DB) repository.ReviewItemRepository {
	return &reviewItemRepository{db: db}
}

func (r *reviewItemRepository) Insert(ctx context.Context, item models.ReviewItem) error {
	log := logger.FromContext(ctx).WithPrefix("item_repo")
	log.Debug("inserting review item: id=%s, owner_id=%d", item.ID, item.OwnerID)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO review_items (id, owner_id, title, content, ease_factor, interval_days, repetitions, next_review_at, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, item.ID, item.OwnerID, item.Title, item.Content, item.EaseFactor, item.IntervalDays, item.Repetitions,
		item.NextReviewAt, item.CreatedAt, item.UpdatedAt)
	if err != nil {
		log.Error("failed to insert review item: %v", err)
	}
	return err
}

func (r *reviewItemRepository) Save(ctx context.Context, item models.ReviewItem) error {
	log := logger.FromContext(ctx).WithPrefix("item_repo")
	log.Debug("saving review item: id=%s, interval=%d, ease=%.2f", item.ID, item.IntervalDays, item.EaseFactor)

	res, err := r.db.ExecContext(ctx, `
UPDATE review_items
SET title = ?, content = ?, ease_factor = ?, interval_days = ?, repetitions = ?, next_review_at = ?, updated_at = ?
WHERE id = ?
`, item.Title, item.Content, item.EaseFactor, item.IntervalDays, item.Repetitions,
		item.NextReviewAt, item.UpdatedAt, item.ID)
	if err != nil {
		log.Error("failed to save review item: %v", err)
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *reviewItemRepository) GetByID(ctx context.Context, id string) (*models.ReviewItem, error) {
	log := logger.FromContext(ctx).WithPrefix("item_repo")
	log.Debug("getting review item: id=%s", id)

	row := r.db.QueryRowContext(ctx, `
SELECT `+reviewItemColumns+`
FROM review_items
WHERE id = ?
`, id)
	item, err := scanReviewItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("review item not found: id=%s", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get review item: %v", err)
		return nil, err
	}
	return item, nil
}

func (r *reviewItemRepository) FindDue(ctx context.Context, ownerID int64, asOf time.Time) ([]models.ReviewItem, error) {
	log := logger.FromContext(ctx).WithPrefix("item_repo")
	log.Debug("finding due items: owner_id=%d, as_of=%s", ownerID, asOf.Format(time.RFC3339))

	query := sqlBuilder.
		Select(reviewItemColumns).
		From("review_items").
		Where(squirrel.Eq{"owner_id": ownerID}).
		Where(squirrel.LtOrEq{"next_review_at": asOf}).
		OrderBy("next_review_at ASC", "id ASC")

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to query due items: %v", err)
		return nil, err
	}
	defer rows.Close()

	items, err := scanReviewItems(rows)
	if err != nil {
		log.Error("failed to scan due items: %v", err)
		return nil, err
	}
	log.Debug("found %d due items", len(items))
	return items, nil
}

func (r *reviewItemRepository) CountDue(ctx context.Context, ownerID int64, asOf time.Time) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("item_repo")

	query := sqlBuilder.
		Select("COUNT(*)").
		From("review_items").
		Where(squirrel.Eq{"owner_id": ownerID}).
		Where(squirrel.LtOrEq{"next_review_at": asOf})

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var count int
	if err := r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&count); err != nil {
		log.Error("failed to count due items: %v", err)
		return 0, err
	}
	log.Debug("due count: owner_id=%d, count=%d", ownerID, count)
	return count, nil
}

func (r *reviewItemRepository) List(ctx context.Context, ownerID int64, filter repository.ItemFilter) ([]models.ReviewItem, error) {
	log := logger.FromContext(ctx).WithPrefix("item_repo")
	log.Debug("listing items: owner_id=%d, due_only=%t", ownerID, filter.DueOnly)

	query := sqlBuilder.
		Select(reviewItemColumns).
		From("review_items").
		Where(squirrel.Eq{"owner_id": ownerID}).
		OrderBy("created_at DESC", "id ASC")

	if filter.DueOnly {
		asOf := filter.AsOf
		if asOf.IsZero() {
			asOf = time.Now().UTC()
		}
		query = query.Where(squirrel.LtOrEq{"next_review_at": asOf})
	}
	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		query = query.Offset(uint64(filter.Offset))
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to list items: %v", err)
		return nil, err
	}
	defer rows.Close()

	return scanReviewItems(rows)
}

func (r *reviewItemRepository) DeleteByID(ctx context.Context, id string) error {
	log := logger.FromContext(ctx).WithPrefix("item_repo")
	log.Debug("deleting review item: id=%s", id)

	res, err := r.db.ExecContext(ctx, `DELETE FROM review_items WHERE id = ?`, id)
	if err != nil {
		log.Error("failed to delete review item: %v", err)
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
