package sqlite

import (
	"database/sql"

	"github.com/okrause/recallflow/internal/models"
)

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanReviewItem(s scanner) (*models.ReviewItem, error) {
	var item models.ReviewItem
	err := s.Scan(&item.ID, &item.OwnerID, &item.Title, &item.Content,
		&item.EaseFactor, &item.IntervalDays, &item.Repetitions,
		&item.NextReviewAt, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func scanReviewItems(rows *sql.Rows) ([]models.ReviewItem, error) {
	var items []models.ReviewItem
	for rows.Next() {
		item, err := scanReviewItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}
