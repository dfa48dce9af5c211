package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/iqurastudy/quizapi/internal/apperrors"
	"github.com/iqurastudy/quizapi/internal/models"
)

type QuestionRepo struct {
	DB DBTX
}

const createQuestion = `-- name: CreateQuestion
INSERT INTO questions (quiz_id, title)
VALUES ($1, $2)
RETURNING id, quiz_id, title, is_multi_select
`

func (r *QuestionRepo) CreateQuestion(ctx context.Context, quizID int64, title string) (models.Question, error) {
	rows, _ := r.DB.Query(ctx, createQuestion, quizID, title)
	question, err := pgx.CollectOneRow(rows, rowToQuestion)
	if err != nil {
		return question, fmt.Errorf("db error: %w", err)
	}

	return question, nil
}

const getQuestion = `-- name: GetQuestion
SELECT id, quiz_id, title, is_multi_select
FROM questions
WHERE id = $1
`

func (r *QuestionRepo) GetQuestion(ctx context.Context, id int64) (models.Question, error) {
	rows, _ := r.DB.Query(ctx, getQuestion, id)
	question, err := pgx.CollectOneRow(rows, rowToQuestion)

	switch {
	case err == nil:
		return question, nil
	case errors.Is(err, pgx.ErrNoRows):
		return question, apperrors.ErrQuestionNotFound
	default:
		return question, fmt.Errorf("db error: %w", err)
	}
}

const listQuestionsByQuiz = `-- name: ListQuestionsByQuiz
SELECT id, quiz_id, title, is_multi_select
FROM questions
WHERE quiz_id = $1
ORDER BY id
`

func (r *QuestionRepo) ListQuestionsByQuiz(ctx context.Context, quizID int64) ([]models.Question, error) {
	rows, _ := r.DB.Query(ctx, listQuestionsByQuiz, quizID)
	questions, err := pgx.CollectRows(rows, rowToQuestion)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return questions, nil
}

const setMultiSelect = `-- name: SetMultiSelect
UPDATE questions
SET is_multi_select = $2
WHERE id = $1
`

func (r *QuestionRepo) SetMultiSelect(ctx context.Context, id int64, isMultiSelect bool) error {
	tag, err := r.DB.Exec(ctx, setMultiSelect, id, isMultiSelect)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrQuestionNotFound
	}

	return nil
}

const deleteQuestion = `-- name: DeleteQuestion
DELETE FROM questions
WHERE id = $1
`

func (r *QuestionRepo) DeleteQuestion(ctx context.Context, id int64) error {
	_, err := r.DB.Exec(ctx, deleteQuestion, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

const deleteQuestionsByQuiz = `-- name: DeleteQuestionsByQuiz
DELETE FROM questions
WHERE quiz_id = $1
`

func (r *QuestionRepo) DeleteQuestionsByQuiz(ctx context.Context, quizID int64) error {
	_, err := r.DB.Exec(ctx, deleteQuestionsByQuiz, quizID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func rowToQuestion(row pgx.CollectableRow) (models.Question, error) {
	var q models.Question
	err := row.Scan(&q.ID, &q.QuizID, &q.Title, &q.IsMultiSelect)
	return q, err
}
