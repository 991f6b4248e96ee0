package services

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/okrause/recallflow/internal/errors"
	"github.com/okrause/recallflow/internal/logger"
	"github.com/okrause/recallflow/internal/models"
	"github.com/okrause/recallflow/internal/repository"
)

// ItemService handles review-item lifecycle outside of grading: items are
// created with default scheduling state and deleted outright. Scheduling
// fields are only ever changed by the review engine.
type ItemService interface {
	CreateItem(ctx context.Context, ownerID int64, req models.CreateItemRequest) (*models.ReviewItem, error)
	GetItem(ctx context.Context, ownerID int64, id string) (*models.ReviewItem, error)
	ListItems(ctx context.Context, ownerID int64, filter repository.ItemFilter) ([]models.ReviewItem, error)
	DeleteItem(ctx context.Context, ownerID int64, id string) error
}

type itemService struct {
	repo repository.ReviewItemRepository
	now  func() time.Time
}

// NewItemService creates a new ItemService
func NewItemService(repo repository.ReviewItemRepository) ItemService {
	return &itemService{repo: repo, now: time.Now}
}

func (s *itemService) CreateItem(ctx context.Context, ownerID int64, req models.CreateItemRequest) (*models.ReviewItem, error) {
	log := logger.FromContext(ctx)
	log.Debug("creating item: owner_id=%d", ownerID)

	if err := req.Validate(); err != nil {
		return nil, validationError(err)
	}

	item := models.NewReviewItem(ownerID, req.Title, req.Content, s.now())
	if err := s.repo.Insert(ctx, item); err != nil {
		log.Error("failed to insert item: %v", err)
		return nil, errors.NewStoreUnavailableError("insert", err)
	}

	log.Info("item created: id=%s, owner_id=%d", item.ID, ownerID)
	return &item, nil
}

func (s *itemService) GetItem(ctx context.Context, ownerID int64, id string) (*models.ReviewItem, error) {
	log := logger.FromContext(ctx)

	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		log.Error("failed to get item: %v", err)
		return nil, errors.NewStoreUnavailableError("getById", err)
	}
	// Items are never shared across owners; a wrong owner sees absence.
	if item == nil || item.OwnerID != ownerID {
		return nil, errors.NewNotFoundError("review item", id)
	}
	return item, nil
}

func (s *itemService) ListItems(ctx context.Context, ownerID int64, filter repository.ItemFilter) ([]models.ReviewItem, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing items: owner_id=%d", ownerID)

	items, err := s.repo.List(ctx, ownerID, filter)
	if err != nil {
		log.Error("failed to list items: %v", err)
		return nil, errors.NewStoreUnavailableError("list", err)
	}
	return items, nil
}

func (s *itemService) DeleteItem(ctx context.Context, ownerID int64, id string) error {
	log := logger.FromContext(ctx)
	log.Debug("deleting item: id=%s, owner_id=%d", id, ownerID)

	if _, err := s.GetItem(ctx, ownerID, id); err != nil {
		return err
	}
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		log.Error("failed to delete item: %v", err)
		return errors.NewStoreUnavailableError("deleteById", err)
	}
	log.Info("item deleted: id=%s", id)
	return nil
}

// validationError converts the first validator failure into an AppError.
func validationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if stderrors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return errors.NewValidationError(fe.Field(), "failed rule '"+fe.Tag()+"'")
	}
	return errors.NewValidationError("request", err.Error())
}
