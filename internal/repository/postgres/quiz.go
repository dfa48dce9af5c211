package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/iqurastudy/quizapi/internal/apperrors"
	"github.com/iqurastudy/quizapi/internal/models"
)

type QuizRepo struct {
	DB DBTX
}

const createQuiz = `-- name: CreateQuiz
INSERT INTO quizzes (title, created_by)
VALUES ($1, $2)
RETURNING id, title, created_by, created_at
`

func (r *QuizRepo) CreateQuiz(ctx context.Context, title string, createdBy uuid.UUID) (models.Quiz, error) {
	rows, _ := r.DB.Query(ctx, createQuiz, title, createdBy)
	quiz, err := pgx.CollectOneRow(rows, rowToQuiz)
	if err != nil {
		return quiz, fmt.Errorf("db error: %w", err)
	}

	return quiz, nil
}

const getQuiz = `-- name: GetQuiz
SELECT id, title, created_by, created_at
FROM quizzes
WHERE id = $1
`

func (r *QuizRepo) GetQuiz(ctx context.Context, id int64) (models.Quiz, error) {
	rows, _ := r.DB.Query(ctx, getQuiz, id)
	quiz, err := pgx.CollectOneRow(rows, rowToQuiz)

	switch {
	case err == nil:
		return quiz, nil
	case errors.Is(err, pgx.ErrNoRows):
		return quiz, apperrors.ErrQuizNotFound
	default:
		return quiz, fmt.Errorf("db error: %w", err)
	}
}

const listQuizzes = `-- name: ListQuizzes
SELECT id, title, created_by, created_at
FROM quizzes
ORDER BY id
`

func (r *QuizRepo) ListQuizzes(ctx context.Context) ([]models.Quiz, error) {
	rows, _ := r.DB.Query(ctx, listQuizzes)
	quizzes, err := pgx.CollectRows(rows, rowToQuiz)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return quizzes, nil
}

const deleteQuiz = `-- name: DeleteQuiz
DELETE FROM quizzes
WHERE id = $1
`

func (r *QuizRepo) DeleteQuiz(ctx context.Context, id int64) error {
	_, err := r.DB.Exec(ctx, deleteQuiz, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func rowToQuiz(row pgx.CollectableRow) (models.Quiz, error) {
	var q models.Quiz
	err := row.Scan(&q.ID, &q.Title, &q.CreatedBy, &q.CreatedAt)
	return q, err
}
