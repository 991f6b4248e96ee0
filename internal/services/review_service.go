package services

import (
	"context"
	"sync"
	"time"

	"github.com/okrause/recallflow/internal/errors"
	"github.com/okrause/recallflow/internal/jobs"
	"github.com/okrause/recallflow/internal/logger"
	"github.com/okrause/recallflow/internal/models"
	"github.com/okrause/recallflow/internal/repository"
	"github.com/okrause/recallflow/internal/session"
)

// SessionInfo is the caller-facing view of a review session.
type SessionInfo struct {
	State     string             `json:"state"`
	Remaining int                `json:"remaining"`
	Current   *models.ReviewItem `json:"current,omitempty"`
}

// ReviewService is the caller-facing API of the review engine. It keeps one
// live session per owner; starting a session replaces any previous one for
// that owner.
type ReviewService interface {
	StartSession(ctx context.Context, ownerID int64) (*SessionInfo, error)
	CurrentItem(ctx context.Context, ownerID int64) (*SessionInfo, error)
	SubmitGrade(ctx context.Context, ownerID int64, req models.GradeRequest) (*models.ReviewItem, error)
	// DueCount reports the size of the persisted due set, not the in-memory
	// queue, so badge counts don't require a session load.
	DueCount(ctx context.Context, ownerID int64) (int, error)
}

type reviewService struct {
	repo       repository.ReviewItemRepository
	historyQ   jobs.JobQueue
	queueLimit int
	now        func() time.Time

	mu       sync.Mutex
	sessions map[int64]*session.Controller
}

// NewReviewService creates a new ReviewService
func NewReviewService(repo repository.ReviewItemRepository, historyQ jobs.JobQueue, queueLimit int) ReviewService {
	return &reviewService{
		repo:       repo,
		historyQ:   historyQ,
		queueLimit: queueLimit,
		now:        time.Now,
		sessions:   make(map[int64]*session.Controller),
	}
}

func (s *reviewService) controller(ownerID int64, create bool) *session.Controller {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.sessions[ownerID]; ok {
		return c
	}
	if !create {
		return nil
	}
	c := session.NewController(s.repo, ownerID,
		session.WithClock(s.now),
		session.WithQueueLimit(s.queueLimit),
	)
	s.sessions[ownerID] = c
	return c
}

func (s *reviewService) StartSession(ctx context.Context, ownerID int64) (*SessionInfo, error) {
	log := logger.FromContext(ctx)
	log.Debug("starting review session: owner_id=%d", ownerID)

	c := s.controller(ownerID, true)
	count, err := c.Start(ctx)
	if err != nil {
		return nil, err
	}
	log.Info("review session started: owner_id=%d, items=%d", ownerID, count)
	return sessionInfo(c), nil
}

func (s *reviewService) CurrentItem(ctx context.Context, ownerID int64) (*SessionInfo, error) {
	c := s.controller(ownerID, false)
	if c == nil {
		return &SessionInfo{State: session.Idle.String()}, nil
	}
	return sessionInfo(c), nil
}

func (s *reviewService) SubmitGrade(ctx context.Context, ownerID int64, req models.GradeRequest) (*models.ReviewItem, error) {
	log := logger.FromContext(ctx)
	log.Debug("submitting grade: owner_id=%d, item_id=%s, quality=%d", ownerID, req.ItemID, req.Quality)

	if err := req.Validate(); err != nil {
		return nil, validationError(err)
	}

	c := s.controller(ownerID, false)
	if c == nil {
		log.Warn("grade submitted without an active session: owner_id=%d", ownerID)
		return nil, errors.NewNoCurrentItemError()
	}

	updated, err := c.Grade(ctx, req.ItemID, req.Quality)
	if err != nil {
		return nil, err
	}

	if s.historyQ != nil {
		record := models.ReviewHistory{
			ItemID:       updated.ID,
			OwnerID:      ownerID,
			Quality:      req.Quality,
			IntervalDays: updated.IntervalDays,
			ReviewedAt:   updated.UpdatedAt,
		}
		// History is bookkeeping; a full queue must not fail the review.
		if err := s.historyQ.EnqueueReviewHistory(record); err != nil {
			log.Warn("failed to enqueue review history: %v", err)
		}
	}

	log.Info("item graded: owner_id=%d, item_id=%s, quality=%d, next_interval=%d",
		ownerID, updated.ID, req.Quality, updated.IntervalDays)
	return updated, nil
}

func (s *reviewService) DueCount(ctx context.Context, ownerID int64) (int, error) {
	count, err := s.repo.CountDue(ctx, ownerID, s.now().UTC())
	if err != nil {
		return 0, errors.NewStoreUnavailableError("countDue", err)
	}
	return count, nil
}

func sessionInfo(c *session.Controller) *SessionInfo {
	info := &SessionInfo{
		State:     c.State().String(),
		Remaining: c.Remaining(),
	}
	if item, ok := c.Current(); ok {
		info.Current = &item
	}
	return info
}
