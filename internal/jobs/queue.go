package jobs

import "github.com/okrause/recallflow/internal/models"

// JobQueue provides an abstraction for enqueueing background work so grading
// latency is never coupled to bookkeeping writes.
type JobQueue interface {
	EnqueueReviewHistory(h models.ReviewHistory) error
}
