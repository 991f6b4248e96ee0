package services

import (
	"context"
	"time"

	"github.com/okrause/recallflow/internal/errors"
	"github.com/okrause/recallflow/internal/logger"
	"github.com/okrause/recallflow/internal/models"
	"github.com/okrause/recallflow/internal/repository"
)

// StatsService aggregates an owner's review activity for overview surfaces.
type StatsService interface {
	ReviewStats(ctx context.Context, ownerID int64) (*models.ReviewStats, error)
}

type statsService struct {
	history repository.ReviewHistoryRepository
	now     func() time.Time
}

// NewStatsService creates a new StatsService
func NewStatsService(history repository.ReviewHistoryRepository) StatsService {
	return &statsService{history: history, now: time.Now}
}

func (s *statsService) ReviewStats(ctx context.Context, ownerID int64) (*models.ReviewStats, error) {
	log := logger.FromContext(ctx)
	log.Debug("fetching review stats: owner_id=%d", ownerID)

	stats, err := s.history.Stats(ctx, ownerID, s.now().UTC())
	if err != nil {
		log.Error("failed to fetch review stats: %v", err)
		return nil, errors.NewStoreUnavailableError("stats", err)
	}
	return stats, nil
}
