package worker

import (
	"context"
	"fmt"

	"github.com/okrause/recallflow/internal/jobs"
	"github.com/okrause/recallflow/internal/models"
	"github.com/okrause/recallflow/internal/repository"
)

// reviewHistoryJob appends one grading event to the history table.
type reviewHistoryJob struct {
	repo   repository.ReviewHistoryRepository
	record models.ReviewHistory
}

func (j *reviewHistoryJob) Name() string {
	return fmt.Sprintf("review-history[item=%s]", j.record.ItemID)
}

func (j *reviewHistoryJob) Run(ctx context.Context) error {
	_, err := j.repo.Insert(ctx, j.record)
	return err
}

// Queue adapts a Pool to the jobs.JobQueue abstraction.
type Queue struct {
	pool    *Pool
	history repository.ReviewHistoryRepository
}

// NewQueue creates a JobQueue backed by the given pool.
func NewQueue(pool *Pool, history repository.ReviewHistoryRepository) *Queue {
	return &Queue{pool: pool, history: history}
}

var _ jobs.JobQueue = (*Queue)(nil)

func (q *Queue) EnqueueReviewHistory(h models.ReviewHistory) error {
	return q.pool.Submit(&reviewHistoryJob{repo: q.history, record: h})
}
