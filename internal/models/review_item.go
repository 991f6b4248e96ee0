package models

import (
	"time"

	"github.com/google/uuid"
)

// Scheduling defaults for newly created items.
const (
	DefaultEaseFactor   = 2.5
	DefaultIntervalDays = 1
)

// ReviewItem is a unit of knowledge scheduled for periodic recall.
// Scheduling fields (ease factor, interval, repetitions, next review time)
// are owned by the review engine; nothing else writes them.
type ReviewItem struct {
	ID           string    `json:"id"`
	OwnerID      int64     `json:"owner_id"`
	Title        string    `json:"title"`
	Content      string    `json:"content,omitempty"`
	EaseFactor   float64   `json:"ease_factor"`
	IntervalDays int       `json:"interval_days"`
	Repetitions  int       `json:"repetitions"`
	NextReviewAt time.Time `json:"next_review_at"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewReviewItem creates an item with default scheduling state, due immediately.
func NewReviewItem(ownerID int64, title, content string, now time.Time) ReviewItem {
	now = now.UTC()
	return ReviewItem{
		ID:           uuid.NewString(),
		OwnerID:      ownerID,
		Title:        title,
		Content:      content,
		EaseFactor:   DefaultEaseFactor,
		IntervalDays: DefaultIntervalDays,
		Repetitions:  0,
		NextReviewAt: now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// IsDue reports whether the item is eligible for review at the given time.
func (i ReviewItem) IsDue(asOf time.Time) bool {
	return !i.NextReviewAt.After(asOf)
}
