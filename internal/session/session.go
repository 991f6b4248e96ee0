// Package session drives one item at a time through presentation and grading.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/okrause/recallflow/internal/errors"
	"github.com/okrause/recallflow/internal/logger"
	"github.com/okrause/recallflow/internal/models"
	"github.com/okrause/recallflow/internal/queue"
	"github.com/okrause/recallflow/internal/repository"
	"github.com/okrause/recallflow/internal/sm2"
)

// State is the controller's position in the review state machine.
type State int

const (
	// Idle: no items loaded or the queue has been exhausted.
	Idle State = iota
	// Presenting: the current item is shown, awaiting a grade.
	Presenting
	// Grading: a grade was received; calculator and store update in flight.
	Grading
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Presenting:
		return "presenting"
	case Grading:
		return "grading"
	default:
		return "unknown"
	}
}

// Controller runs a single owner's review session over a queue snapshot.
// A failed store write leaves the item at the head of the queue, so the
// caller can resubmit the same grade without duplicate scheduling effects.
type Controller struct {
	mu      sync.Mutex
	repo    repository.ReviewItemRepository
	ownerID int64
	limit   int
	now     func() time.Time

	state State
	queue *queue.DueQueue
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock overrides the controller's time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		c.now = now
	}
}

// WithQueueLimit bounds the number of items loaded into one session.
func WithQueueLimit(limit int) Option {
	return func(c *Controller) {
		c.limit = limit
	}
}

// NewController creates an idle controller for the given owner.
func NewController(repo repository.ReviewItemRepository, ownerID int64, opts ...Option) *Controller {
	c := &Controller{
		repo:    repo,
		ownerID: ownerID,
		now:     time.Now,
		state:   Idle,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// OwnerID returns the owner this session belongs to.
func (c *Controller) OwnerID() int64 {
	return c.ownerID
}

// State returns the current machine state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Start loads the owner's due items into a fresh queue snapshot and moves to
// Presenting when any item is due. Restarting an active session replaces its
// queue.
func (c *Controller) Start(ctx context.Context) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	log := logger.FromContext(ctx).WithPrefix("session")
	q, err := queue.Load(ctx, c.repo, c.ownerID, c.now().UTC(), c.limit)
	if err != nil {
		return 0, err
	}

	c.queue = q
	if q.Len() > 0 {
		c.state = Presenting
	} else {
		c.state = Idle
	}
	log.Debug("session started: owner_id=%d, items=%d, state=%s", c.ownerID, q.Len(), c.state)
	return q.Len(), nil
}

// Current returns the item being presented, or false when the session is idle.
func (c *Controller) Current() (models.ReviewItem, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentLocked()
}

func (c *Controller) currentLocked() (models.ReviewItem, bool) {
	if c.queue == nil {
		return models.ReviewItem{}, false
	}
	return c.queue.Current()
}

// Remaining returns the number of items left in the session queue.
func (c *Controller) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.queue == nil {
		return 0
	}
	return c.queue.Len()
}

// Grade applies a quality grade to the current item: it computes the next
// scheduling state, persists the full record, removes the item from the
// queue and advances. itemID must match the queue head; a mismatch means the
// caller's view is stale and nothing changes.
func (c *Controller) Grade(ctx context.Context, itemID string, quality int) (*models.ReviewItem, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	log := logger.FromContext(ctx).WithPrefix("session")

	if err := sm2.ValidateGrade(quality); err != nil {
		log.Warn("rejected grade: owner_id=%d, item_id=%s, quality=%d", c.ownerID, itemID, quality)
		return nil, err
	}

	current, ok := c.currentLocked()
	if !ok {
		log.Warn("grade submitted with no current item: owner_id=%d, item_id=%s", c.ownerID, itemID)
		return nil, errors.NewNoCurrentItemError()
	}
	if current.ID != itemID {
		log.Warn("stale grade: owner_id=%d, submitted=%s, current=%s", c.ownerID, itemID, current.ID)
		return nil, errors.NewStaleItemError(itemID, current.ID)
	}

	c.state = Grading

	next, err := sm2.ComputeNext(quality, current.Repetitions, current.EaseFactor, current.IntervalDays)
	if err != nil {
		c.state = Presenting
		return nil, err
	}

	now := c.now().UTC()
	updated := current
	updated.EaseFactor = next.EaseFactor
	updated.IntervalDays = next.IntervalDays
	updated.Repetitions = next.Repetitions
	updated.NextReviewAt = now.Add(time.Duration(next.IntervalDays) * 24 * time.Hour)
	updated.UpdatedAt = now

	if err := c.repo.Save(ctx, updated); err != nil {
		// Item stays at the head; the caller may resubmit the same grade.
		c.state = Presenting
		log.Error("failed to persist grade: item_id=%s, quality=%d: %v", itemID, quality, err)
		return nil, errors.NewStoreUnavailableError("save", err)
	}

	c.queue.Remove(itemID)
	if c.queue.Len() > 0 {
		c.state = Presenting
	} else {
		c.state = Idle
	}

	log.Debug("item graded: item_id=%s, quality=%d, interval=%d, ease=%.2f, remaining=%d",
		itemID, quality, updated.IntervalDays, updated.EaseFactor, c.queue.Len())
	return &updated, nil
}
