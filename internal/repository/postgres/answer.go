package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/iqurastudy/quizapi/internal/apperrors"
	"github.com/iqurastudy/quizapi/internal/models"
)

type AnswerRepo struct {
	DB DBTX
}

const createAnswer = `-- name: CreateAnswer
INSERT INTO answers (question_id, title, is_correct)
VALUES ($1, $2, $3)
RETURNING id, question_id, title, is_correct
`

func (r *AnswerRepo) CreateAnswer(ctx context.Context, questionID int64, title string, isCorrect bool) (models.Answer, error) {
	rows, _ := r.DB.Query(ctx, createAnswer, questionID, title, isCorrect)
	answer, err := pgx.CollectOneRow(rows, rowToAnswer)
	if err != nil {
		return answer, fmt.Errorf("db error: %w", err)
	}

	return answer, nil
}

const getAnswer = `-- name: GetAnswer
SELECT id, question_id, title, is_correct
FROM answers
WHERE id = $1
`

func (r *AnswerRepo) GetAnswer(ctx context.Context, id int64) (models.Answer, error) {
	rows, _ := r.DB.Query(ctx, getAnswer, id)
	answer, err := pgx.CollectOneRow(rows, rowToAnswer)

	switch {
	case err == nil:
		return answer, nil
	case errors.Is(err, pgx.ErrNoRows):
		return answer, apperrors.ErrAnswerNotFound
	default:
		return answer, fmt.Errorf("db error: %w", err)
	}
}

const listAnswersByQuestion = `-- name: ListAnswersByQuestion
SELECT id, question_id, title, is_correct
FROM answers
WHERE question_id = $1
ORDER BY id
`

func (r *AnswerRepo) ListAnswersByQuestion(ctx context.Context, questionID int64) ([]models.Answer, error) {
	rows, _ := r.DB.Query(ctx, listAnswersByQuestion, questionID)
	answers, err := pgx.CollectRows(rows, rowToAnswer)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return answers, nil
}

const listAnswersByQuiz = `-- name: ListAnswersByQuiz
SELECT a.id, a.question_id, a.title, a.is_correct
FROM answers a
JOIN questions q ON q.id = a.question_id
WHERE q.quiz_id = $1
ORDER BY a.id
`

func (r *AnswerRepo) ListAnswersByQuiz(ctx context.Context, quizID int64) ([]models.Answer, error) {
	rows, _ := r.DB.Query(ctx, listAnswersByQuiz, quizID)
	answers, err := pgx.CollectRows(rows, rowToAnswer)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return answers, nil
}

const countCorrect = `-- name: CountCorrect
SELECT count(*)
FROM answers
WHERE question_id = $1 AND is_correct
`

func (r *AnswerRepo) CountCorrect(ctx context.Context, questionID int64) (int64, error) {
	var count int64
	err := r.DB.QueryRow(ctx, countCorrect, questionID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	return count, nil
}

const deleteAnswersByQuestion = `-- name: DeleteAnswersByQuestion
DELETE FROM answers
WHERE question_id = $1
`

func (r *AnswerRepo) DeleteAnswersByQuestion(ctx context.Context, questionID int64) error {
	_, err := r.DB.Exec(ctx, deleteAnswersByQuestion, questionID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

const deleteAnswersByQuiz = `-- name: DeleteAnswersByQuiz
DELETE FROM answers
WHERE question_id IN (SELECT id FROM questions WHERE quiz_id = $1)
`

func (r *AnswerRepo) DeleteAnswersByQuiz(ctx context.Context, quizID int64) error {
	_, err := r.DB.Exec(ctx, deleteAnswersByQuiz, quizID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func rowToAnswer(row pgx.CollectableRow) (models.Answer, error) {
	var a models.Answer
	err := row.Scan(&a.ID, &a.QuestionID, &a.Title, &a.IsCorrect)
	return a, err
}
