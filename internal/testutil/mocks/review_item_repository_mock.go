package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/okrause/recallflow/internal/models"
	"github.com/okrause/recallflow/internal/repository"
)

// MockReviewItemRepository is a mock implementation of repository.ReviewItemRepository
type MockReviewItemRepository struct {
	mock.Mock
}

func (m *MockReviewItemRepository) Insert(ctx context.Context, item models.ReviewItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockReviewItemRepository) Save(ctx context.Context, item models.ReviewItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockReviewItemRepository) GetByID(ctx context.Context, id string) (*models.ReviewItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ReviewItem), args.Error(1)
}

func (m *MockReviewItemRepository) FindDue(ctx context.Context, ownerID int64, asOf time.Time) ([]models.ReviewItem, error) {
	args := m.Called(ctx, ownerID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ReviewItem), args.Error(1)
}

func (m *MockReviewItemRepository) CountDue(ctx context.Context, ownerID int64, asOf time.Time) (int, error) {
	args := m.Called(ctx, ownerID, asOf)
	return args.Int(0), args.Error(1)
}

func (m *MockReviewItemRepository) List(ctx context.Context, ownerID int64, filter repository.ItemFilter) ([]models.ReviewItem, error) {
	args := m.Called(ctx, ownerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ReviewItem), args.Error(1)
}

func (m *MockReviewItemRepository) DeleteByID(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
