package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/okrause/recallflow/internal/logger"
	"github.com/okrause/recallflow/internal/models"
	"github.com/okrause/recallflow/internal/repository"
	"github.com/okrause/recallflow/internal/sm2"
)

type reviewHistoryRepository struct {
	db *sql.DB
}

// NewReviewHistoryRepository creates a new ReviewHistoryRepository implementation
func NewReviewHistoryRepository(db *sql.DB) repository.ReviewHistoryRepository {
	return &reviewHistoryRepository{db: db}
}

func (r *reviewHistoryRepository) Insert(ctx context.Context, h models.ReviewHistory) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("history_repo")
	log.Debug("inserting review history: item_id=%s, quality=%d", h.ItemID, h.Quality)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO review_history (item_id, owner_id, quality, interval_days, reviewed_at)
VALUES (?, ?, ?, ?, ?)
`, h.ItemID, h.OwnerID, h.Quality, h.IntervalDays, h.ReviewedAt)
	if err != nil {
		log.Error("failed to insert review history: %v", err)
		return 0, err
	}
	return res.LastInsertId()
}

func (r *reviewHistoryRepository) Stats(ctx context.Context, ownerID int64, asOf time.Time) (*models.ReviewStats, error) {
	log := logger.FromContext(ctx).WithPrefix("history_repo")
	log.Debug("computing review stats: owner_id=%d", ownerID)

	stats := &models.ReviewStats{}
	dayStart := time.Date(asOf.Year(), asOf.Month(), asOf.Day(), 0, 0, 0, 0, time.UTC)

	historyQuery := sqlBuilder.
		Select(
			"COUNT(*)",
			"COALESCE(SUM(CASE WHEN quality >= ? THEN 1 ELSE 0 END), 0)",
			"COALESCE(SUM(CASE WHEN reviewed_at >= ? THEN 1 ELSE 0 END), 0)",
		).
		From("review_history").
		Where(squirrel.Eq{"owner_id": ownerID})

	sqlStr, args, err := historyQuery.ToSql()
	if err != nil {
		return nil, err
	}
	// The CASE placeholders come before the WHERE placeholder.
	args = append([]any{sm2.SuccessThreshold, dayStart}, args...)

	var successes int
	if err := r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&stats.TotalReviews, &successes, &stats.ReviewedToday); err != nil {
		log.Error("failed to aggregate review history: %v", err)
		return nil, err
	}
	if stats.TotalReviews > 0 {
		stats.SuccessRate = float64(successes) / float64(stats.TotalReviews)
	}

	itemQuery := sqlBuilder.
		Select(
			"COUNT(*)",
			"COALESCE(SUM(CASE WHEN next_review_at <= ? THEN 1 ELSE 0 END), 0)",
			"COALESCE(AVG(ease_factor), 0)",
		).
		From("review_items").
		Where(squirrel.Eq{"owner_id": ownerID})

	sqlStr, args, err = itemQuery.ToSql()
	if err != nil {
		return nil, err
	}
	args = append([]any{asOf}, args...)

	if err := r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&stats.TotalItems, &stats.DueCount, &stats.AvgEaseFactor); err != nil {
		log.Error("failed to aggregate items: %v", err)
		return nil, err
	}

	log.Debug("stats computed: total_reviews=%d, due=%d", stats.TotalReviews, stats.DueCount)
	return stats, nil
}
