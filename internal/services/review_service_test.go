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
	"github.com/okrause/recallflow/internal/session"
	"github.com/okrause/recallflow/internal/testutil/mocks"
)

const itemID = "11111111-1111-4111-8111-111111111111"

func dueItem(id string, due time.Time) models.ReviewItem {
	return models.ReviewItem{
		ID:           id,
		OwnerID:      1,
		Title:        "item",
		EaseFactor:   2.5,
		IntervalDays: 1,
		NextReviewAt: due,
	}
}

func TestStartSession_ReportsQueue(t *testing.T) {
	repo := new(mocks.MockReviewItemRepository)
	repo.On("FindDue", mock.Anything, int64(1), mock.Anything).Return([]models.ReviewItem{
		dueItem(itemID, time.Now().UTC().Add(-time.Hour)),
	}, nil).Once()

	svc := services.NewReviewService(repo, nil, 0)
	info, err := svc.StartSession(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, session.Presenting.String(), info.State)
	assert.Equal(t, 1, info.Remaining)
	require.NotNil(t, info.Current)
	assert.Equal(t, itemID, info.Current.ID)
}

func TestCurrentItem_NoSession(t *testing.T) {
	repo := new(mocks.MockReviewItemRepository)
	svc := services.NewReviewService(repo, nil, 0)

	info, err := svc.CurrentItem(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, session.Idle.String(), info.State)
	assert.Nil(t, info.Current)
}

func TestSubmitGrade_RecordsHistory(t *testing.T) {
	repo := new(mocks.MockReviewItemRepository)
	repo.On("FindDue", mock.Anything, int64(1), mock.Anything).Return([]models.ReviewItem{
		dueItem(itemID, time.Now().UTC().Add(-time.Hour)),
	}, nil).Once()
	repo.On("Save", mock.Anything, mock.Anything).Return(nil).Once()

	historyQ := new(mocks.MockJobQueue)
	var recorded models.ReviewHistory
	historyQ.On("EnqueueReviewHistory", mock.AnythingOfType("models.ReviewHistory")).
		Run(func(args mock.Arguments) {
			recorded = args.Get(0).(models.ReviewHistory)
		}).
		Return(nil).Once()

	svc := services.NewReviewService(repo, historyQ, 0)
	_, err := svc.StartSession(context.Background(), 1)
	require.NoError(t, err)

	updated, err := svc.SubmitGrade(context.Background(), 1, models.GradeRequest{ItemID: itemID, Quality: 5})
	require.NoError(t, err)

	assert.Equal(t, itemID, recorded.ItemID)
	assert.Equal(t, int64(1), recorded.OwnerID)
	assert.Equal(t, 5, recorded.Quality)
	assert.Equal(t, updated.IntervalDays, recorded.IntervalDays)
	historyQ.AssertExpectations(t)
}

func TestSubmitGrade_HistoryFailureIsNonFatal(t *testing.T) {
	repo := new(mocks.MockReviewItemRepository)
	repo.On("FindDue", mock.Anything, int64(1), mock.Anything).Return([]models.ReviewItem{
		dueItem(itemID, time.Now().UTC().Add(-time.Hour)),
	}, nil).Once()
	repo.On("Save", mock.Anything, mock.Anything).Return(nil).Once()

	historyQ := new(mocks.MockJobQueue)
	historyQ.On("EnqueueReviewHistory", mock.Anything).Return(errors.New("queue full")).Once()

	svc := services.NewReviewService(repo, historyQ, 0)
	_, err := svc.StartSession(context.Background(), 1)
	require.NoError(t, err)

	_, err = svc.SubmitGrade(context.Background(), 1, models.GradeRequest{ItemID: itemID, Quality: 4})
	assert.NoError(t, err, "bookkeeping must not fail the review")
}

func TestSubmitGrade_NoActiveSession(t *testing.T) {
	repo := new(mocks.MockReviewItemRepository)
	svc := services.NewReviewService(repo, nil, 0)

	_, err := svc.SubmitGrade(context.Background(), 1, models.GradeRequest{ItemID: itemID, Quality: 4})
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrCodeNoCurrentItem, appErr.Code)
}

func TestSubmitGrade_MalformedItemID(t *testing.T) {
	repo := new(mocks.MockReviewItemRepository)
	svc := services.NewReviewService(repo, nil, 0)

	_, err := svc.SubmitGrade(context.Background(), 1, models.GradeRequest{ItemID: "not-a-uuid", Quality: 4})
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrCodeValidation, appErr.Code)
}

func TestSubmitGrade_InvalidQualityPassesThrough(t *testing.T) {
	repo := new(mocks.MockReviewItemRepository)
	repo.On("FindDue", mock.Anything, int64(1), mock.Anything).Return([]models.ReviewItem{
		dueItem(itemID, time.Now().UTC().Add(-time.Hour)),
	}, nil).Once()

	svc := services.NewReviewService(repo, nil, 0)
	_, err := svc.StartSession(context.Background(), 1)
	require.NoError(t, err)

	_, err = svc.SubmitGrade(context.Background(), 1, models.GradeRequest{ItemID: itemID, Quality: 6})
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrCodeInvalidGrade, appErr.Code, "the calculator owns the range check")
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestDueCount_UsesPersistedSet(t *testing.T) {
	repo := new(mocks.MockReviewItemRepository)
	repo.On("CountDue", mock.Anything, int64(1), mock.Anything).Return(7, nil).Once()

	svc := services.NewReviewService(repo, nil, 0)
	count, err := svc.DueCount(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 7, count)
	repo.AssertNotCalled(t, "FindDue", mock.Anything, mock.Anything, mock.Anything)
}

func TestSessionsAreIndependentPerOwner(t *testing.T) {
	repo := new(mocks.MockReviewItemRepository)
	repo.On("FindDue", mock.Anything, int64(1), mock.Anything).Return([]models.ReviewItem{
		dueItem(itemID, time.Now().UTC().Add(-time.Hour)),
	}, nil).Once()
	repo.On("FindDue", mock.Anything, int64(2), mock.Anything).Return([]models.ReviewItem{}, nil).Once()

	svc := services.NewReviewService(repo, nil, 0)

	one, err := svc.StartSession(context.Background(), 1)
	require.NoError(t, err)
	two, err := svc.StartSession(context.Background(), 2)
	require.NoError(t, err)

	assert.Equal(t, session.Presenting.String(), one.State)
	assert.Equal(t, session.Idle.String(), two.State)
}
