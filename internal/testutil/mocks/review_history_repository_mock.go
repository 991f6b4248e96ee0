package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/okrause/recallflow/internal/models"
)

// MockReviewHistoryRepository is a mock implementation of repository.ReviewHistoryRepository
type MockReviewHistoryRepository struct {
	mock.Mock
}

func (m *MockReviewHistoryRepository) Insert(ctx context.Context, h models.ReviewHistory) (int64, error) {
	args := m.Called(ctx, h)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReviewHistoryRepository) Stats(ctx context.Context, ownerID int64, asOf time.Time) (*models.ReviewStats, error) {
	args := m.Called(ctx, ownerID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ReviewStats), args.Error(1)
}
