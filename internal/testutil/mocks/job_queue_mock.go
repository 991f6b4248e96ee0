package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/okrause/recallflow/internal/models"
)

// MockJobQueue is a mock implementation of jobs.JobQueue
type MockJobQueue struct {
	mock.Mock
}

func (m *MockJobQueue) EnqueueReviewHistory(h models.ReviewHistory) error {
	args := m.Called(h)
	return args.Error(0)
}
