package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/okrause/recallflow/internal/errors"
	"github.com/okrause/recallflow/internal/models"
	"github.com/okrause/recallflow/internal/services"
	"github.com/okrause/recallflow/internal/testutil/mocks"
)

func TestCreateItem_Defaults(t *testing.T) {
	repo := new(mocks.MockReviewItemRepository)

	var inserted models.ReviewItem
	repo.On("Insert", mock.Anything, mock.AnythingOfType("models.ReviewItem")).
		Run(func(args mock.Arguments) {
			inserted = args.Get(1).(models.ReviewItem)
		}).
		Return(nil).Once()

	svc := services.NewItemService(repo)
	item, err := svc.CreateItem(context.Background(), 1, models.CreateItemRequest{
		Title:   "Photosynthesis overview",
		Content: "Light reactions happen in the thylakoid membrane.",
	})
	require.NoError(t, err)
	require.NotNil(t, item)

	assert.NotEmpty(t, item.ID)
	assert.Equal(t, int64(1), item.OwnerID)
	assert.InDelta(t, models.DefaultEaseFactor, item.EaseFactor, 0.0001)
	assert.Equal(t, models.DefaultIntervalDays, item.IntervalDays)
	assert.Equal(t, 0, item.Repetitions)
	assert.WithinDuration(t, time.Now().UTC(), item.NextReviewAt, 5*time.Second, "new items are due immediately")
	assert.Equal(t, *item, inserted)
}

func TestCreateItem_EmptyTitle(t *testing.T) {
	repo := new(mocks.MockReviewItemRepository)
	svc := services.NewItemService(repo)

	_, err := svc.CreateItem(context.Background(), 1, models.CreateItemRequest{Title: ""})
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrCodeValidation, appErr.Code)
	repo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestGetItem_WrongOwner(t *testing.T) {
	repo := new(mocks.MockReviewItemRepository)
	repo.On("GetByID", mock.Anything, "some-id").Return(&models.ReviewItem{
		ID:      "some-id",
		OwnerID: 2,
	}, nil)

	svc := services.NewItemService(repo)
	_, err := svc.GetItem(context.Background(), 1, "some-id")
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrCodeNotFound, appErr.Code, "foreign items read as absent")
}

func TestGetItem_StoreFailure(t *testing.T) {
	repo := new(mocks.MockReviewItemRepository)
	repo.On("GetByID", mock.Anything, "some-id").Return(nil, errors.New("locked"))

	svc := services.NewItemService(repo)
	_, err := svc.GetItem(context.Background(), 1, "some-id")
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrCodeStoreUnavailable, appErr.Code)
}

func TestDeleteItem_ChecksOwnership(t *testing.T) {
	repo := new(mocks.MockReviewItemRepository)
	repo.On("GetByID", mock.Anything, "owned").Return(&models.ReviewItem{ID: "owned", OwnerID: 1}, nil)
	repo.On("DeleteByID", mock.Anything, "owned").Return(nil).Once()

	svc := services.NewItemService(repo)
	require.NoError(t, svc.DeleteItem(context.Background(), 1, "owned"))
	repo.AssertExpectations(t)
}
