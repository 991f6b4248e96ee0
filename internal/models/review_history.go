package models

import "time"

// ReviewHistory records one grading event for an item.
type ReviewHistory struct {
	ID           int64     `json:"id"`
	ItemID       string    `json:"item_id"`
	OwnerID      int64     `json:"owner_id"`
	Quality      int       `json:"quality"`
	IntervalDays int       `json:"interval_days"` // interval scheduled by this review
	ReviewedAt   time.Time `json:"reviewed_at"`
}

// ReviewStats summarizes an owner's review activity.
type ReviewStats struct {
	TotalReviews   int     `json:"total_reviews"`
	SuccessRate    float64 `json:"success_rate"` // share of reviews with quality >= 3
	ReviewedToday  int     `json:"reviewed_today"`
	DueCount       int     `json:"due_count"`
	TotalItems     int     `json:"total_items"`
	AvgEaseFactor  float64 `json:"avg_ease_factor"`
}
