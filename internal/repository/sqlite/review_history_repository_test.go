package sqlite_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/okrause/recallflow/internal/models"
	"github.com/okrause/recallflow/internal/repository"
	"github.com/okrause/recallflow/internal/repository/sqlite"
	"github.com/okrause/recallflow/internal/testutil"
)

type ReviewHistoryRepositorySuite struct {
	suite.Suite
	db       *sql.DB
	items    repository.ReviewItemRepository
	history  repository.ReviewHistoryRepository
	asOf     time.Time
	dayStart time.Time
}

func (s *ReviewHistoryRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.items = sqlite.NewReviewItemRepository(s.db)
	s.history = sqlite.NewReviewHistoryRepository(s.db)
	s.asOf = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.dayStart = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
}

func (s *ReviewHistoryRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *ReviewHistoryRepositorySuite) insertItem(id string, due time.Time) {
	item := models.ReviewItem{
		ID:           id,
		OwnerID:      1,
		Title:        "item " + id,
		EaseFactor:   models.DefaultEaseFactor,
		IntervalDays: models.DefaultIntervalDays,
		NextReviewAt: due,
		CreatedAt:    s.dayStart,
		UpdatedAt:    s.dayStart,
	}
	s.Require().NoError(s.items.Insert(context.Background(), item))
}

func (s *ReviewHistoryRepositorySuite) TestInsert() {
	ctx := context.Background()
	itemID := "11111111-1111-4111-8111-111111111111"
	s.insertItem(itemID, s.asOf)

	id, err := s.history.Insert(ctx, models.ReviewHistory{
		ItemID:       itemID,
		OwnerID:      1,
		Quality:      4,
		IntervalDays: 6,
		ReviewedAt:   s.asOf,
	})
	s.Require().NoError(err)
	s.Assert().Greater(id, int64(0))
}

func (s *ReviewHistoryRepositorySuite) TestStats() {
	ctx := context.Background()
	itemID := "22222222-2222-4222-8222-222222222222"
	dueID := "33333333-3333-4333-8333-333333333333"
	s.insertItem(itemID, s.asOf.Add(24*time.Hour))
	s.insertItem(dueID, s.asOf.Add(-time.Hour))

	// Two successes today, one failure yesterday.
	reviews := []models.ReviewHistory{
		{ItemID: itemID, OwnerID: 1, Quality: 4, IntervalDays: 6, ReviewedAt: s.asOf.Add(-time.Hour)},
		{ItemID: itemID, OwnerID: 1, Quality: 5, IntervalDays: 16, ReviewedAt: s.asOf.Add(-30 * time.Minute)},
		{ItemID: itemID, OwnerID: 1, Quality: 1, IntervalDays: 1, ReviewedAt: s.dayStart.Add(-2 * time.Hour)},
	}
	for _, h := range reviews {
		_, err := s.history.Insert(ctx, h)
		s.Require().NoError(err)
	}

	stats, err := s.history.Stats(ctx, 1, s.asOf)
	s.Require().NoError(err)
	s.Require().NotNil(stats)

	s.Assert().Equal(3, stats.TotalReviews)
	s.Assert().InDelta(2.0/3.0, stats.SuccessRate, 0.0001)
	s.Assert().Equal(2, stats.ReviewedToday)
	s.Assert().Equal(2, stats.TotalItems)
	s.Assert().Equal(1, stats.DueCount)
	s.Assert().InDelta(models.DefaultEaseFactor, stats.AvgEaseFactor, 0.0001)
}

func (s *ReviewHistoryRepositorySuite) TestStats_EmptyOwner() {
	stats, err := s.history.Stats(context.Background(), 42, s.asOf)
	s.Require().NoError(err)
	s.Require().NotNil(stats)
	s.Assert().Equal(0, stats.TotalReviews)
	s.Assert().Zero(stats.SuccessRate)
	s.Assert().Equal(0, stats.TotalItems)
}

func TestReviewHistoryRepositorySuite(t *testing.T) {
	suite.Run(t, new(ReviewHistoryRepositorySuite))
}
