package task

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/iqurastudy/quizapi/internal/models"
	"github.com/iqurastudy/quizapi/internal/repository"
	"github.com/iqurastudy/quizapi/internal/service/scope"
)

// CreateGroupTaskParams describes a new task for a group.
// The creator id is not part of it: it is always stamped from the
// acting user's token, never taken from the client.
type CreateGroupTaskParams struct {
	GroupID     int64
	Title       string
	Description string
	MaxScore    *decimal.Decimal
}

// TaskService owns the group task lifecycle
type TaskService struct {
	storage repository.Storage
}

func NewService(storage repository.Storage) (*TaskService, error) {
	if storage == nil {
		return nil, errors.New("storage must not be nil")
	}

	return &TaskService{storage: storage}, nil
}

func (s *TaskService) CreateGroupTask(ctx context.Context, userID uuid.UUID, arg CreateGroupTaskParams) (models.GroupTask, error) {
	return s.storage.GroupTask().CreateGroupTask(ctx, repository.CreateGroupTaskParams{
		GroupID:     arg.GroupID,
		Title:       arg.Title,
		Description: arg.Description,
		MaxScore:    arg.MaxScore,
		CreatedBy:   userID,
	})
}

// ListGroupTasks returns tasks of one group, no ownership narrowing
func (s *TaskService) ListGroupTasks(ctx context.Context, groupID int64) ([]models.GroupTask, error) {
	return s.storage.GroupTask().ListGroupTasks(ctx, groupID)
}

// DeleteGroupTask removes the task if the acting user created it
func (s *TaskService) DeleteGroupTask(ctx context.Context, userID uuid.UUID, id int64) error {
	task, err := s.storage.GroupTask().GetGroupTask(ctx, id)
	if err != nil {
		return err
	}

	if err := scope.RequireCreator(userID, task.CreatedBy); err != nil {
		return err
	}

	return s.storage.GroupTask().DeleteGroupTask(ctx, id)
}
