package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/iqurastudy/quizapi/internal/apperrors"
	"github.com/iqurastudy/quizapi/internal/models"
	"github.com/iqurastudy/quizapi/internal/repository"
)

type GroupTaskRepo struct {
	DB DBTX
}

const createGroupTask = `-- name: CreateGroupTask
INSERT INTO group_tasks (group_id, title, description, max_score, created_by)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, group_id, title, description, max_score, created_by, created_at
`

func (r *GroupTaskRepo) CreateGroupTask(ctx context.Context, arg repository.CreateGroupTaskParams) (models.GroupTask, error) {
	rows, _ := r.DB.Query(ctx, createGroupTask, arg.GroupID, arg.Title, arg.Description, arg.MaxScore, arg.CreatedBy)
	task, err := pgx.CollectOneRow(rows, rowToGroupTask)
	if err != nil {
		return task, fmt.Errorf("db error: %w", err)
	}

	return task, nil
}

const getGroupTask = `-- name: GetGroupTask
SELECT id, group_id, title, description, max_score, created_by, created_at
FROM group_tasks
WHERE id = $1
`

func (r *GroupTaskRepo) GetGroupTask(ctx context.Context, id int64) (models.GroupTask, error) {
	rows, _ := r.DB.Query(ctx, getGroupTask, id)
	task, err := pgx.CollectOneRow(rows, rowToGroupTask)

	switch {
	case err == nil:
		return task, nil
	case errors.Is(err, pgx.ErrNoRows):
		return task, apperrors.ErrGroupTaskNotFound
	default:
		return task, fmt.Errorf("db error: %w", err)
	}
}

const listGroupTasks = `-- name: ListGroupTasks
SELECT id, group_id, title, description, max_score, created_by, created_at
FROM group_tasks
WHERE group_id = $1
ORDER BY id
`

func (r *GroupTaskRepo) ListGroupTasks(ctx context.Context, groupID int64) ([]models.GroupTask, error) {
	rows, _ := r.DB.Query(ctx, listGroupTasks, groupID)
	tasks, err := pgx.CollectRows(rows, rowToGroupTask)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return tasks, nil
}

const deleteGroupTask = `-- name: DeleteGroupTask
DELETE FROM group_tasks
WHERE id = $1
`

func (r *GroupTaskRepo) DeleteGroupTask(ctx context.Context, id int64) error {
	_, err := r.DB.Exec(ctx, deleteGroupTask, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func rowToGroupTask(row pgx.CollectableRow) (models.GroupTask, error) {
	var t models.GroupTask
	err := row.Scan(&t.ID, &t.GroupID, &t.Title, &t.Description, &t.MaxScore, &t.CreatedBy, &t.CreatedAt)
	return t, err
}
