package postgres

import (
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iqurastudy/quizapi/internal/apperrors"
	"github.com/iqurastudy/quizapi/internal/models"
	"github.com/iqurastudy/quizapi/internal/testutil"
)

// mustCreateUser creates a user row, quizzes reference it by created_by
func mustCreateUser(t *testing.T, tx pgx.Tx, username string) models.User {
	t.Helper()

	r := UserRepo{DB: tx}
	user, err := r.CreateUser(t.Context(), username, username+"@example.com", "hash")
	require.NoError(t, err)
	return user
}

func Test_QuizRepo(t *testing.T) {
	t.Parallel()

	pg := testutil.StartPostgresContainer(t)
	t.Cleanup(pg.Terminate)

	t.Run("create quiz ok", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			r := QuizRepo{DB: tx}
			user := mustCreateUser(t, tx, "quizauthor")

			quiz, err := r.CreateQuiz(t.Context(), "My Quiz", user.ID)

			require.NoError(t, err)
			assert.NotZero(t, quiz.ID)
			assert.Equal(t, "My Quiz", quiz.Title)
			assert.Equal(t, user.ID, quiz.CreatedBy)
		})
	})

	t.Run("get quiz not found", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			r := QuizRepo{DB: tx}

			_, err := r.GetQuiz(t.Context(), 999)

			assert.ErrorIs(t, err, apperrors.ErrQuizNotFound, "should return well known error")
		})
	})

	t.Run("list quizzes ordered by id", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			r := QuizRepo{DB: tx}
			user := mustCreateUser(t, tx, "quizauthor")

			first, err := r.CreateQuiz(t.Context(), "Quiz 1", user.ID)
			require.NoError(t, err)
			second, err := r.CreateQuiz(t.Context(), "Quiz 2", user.ID)
			require.NoError(t, err)

			quizzes, err := r.ListQuizzes(t.Context())

			require.NoError(t, err)
			require.Len(t, quizzes, 2)
			assert.Equal(t, first.ID, quizzes[0].ID)
			assert.Equal(t, second.ID, quizzes[1].ID)
		})
	})

	t.Run("delete quiz", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			r := QuizRepo{DB: tx}
			user := mustCreateUser(t, tx, "quizauthor")
			quiz, err := r.CreateQuiz(t.Context(), "Doomed", user.ID)
			require.NoError(t, err)

			err = r.DeleteQuiz(t.Context(), quiz.ID)

			require.NoError(t, err)
			_, err = r.GetQuiz(t.Context(), quiz.ID)
			assert.ErrorIs(t, err, apperrors.ErrQuizNotFound)
		})
	})
}

func Test_QuestionRepo(t *testing.T) {
	t.Parallel()

	pg := testutil.StartPostgresContainer(t)
	t.Cleanup(pg.Terminate)

	newQuiz := func(t *testing.T, tx pgx.Tx) models.Quiz {
		t.Helper()

		user := mustCreateUser(t, tx, "quizauthor")
		quiz, err := (&QuizRepo{DB: tx}).CreateQuiz(t.Context(), "Quiz", user.ID)
		require.NoError(t, err)
		return quiz
	}

	t.Run("create and get question", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			r := QuestionRepo{DB: tx}
			quiz := newQuiz(t, tx)

			created, err := r.CreateQuestion(t.Context(), quiz.ID, "Difficult question")
			require.NoError(t, err)
			assert.Equal(t, quiz.ID, created.QuizID)
			assert.False(t, created.IsMultiSelect, "questions start single select")

			got, err := r.GetQuestion(t.Context(), created.ID)
			require.NoError(t, err)
			assert.Equal(t, created.ID, got.ID)
			assert.Equal(t, "Difficult question", got.Title)
		})
	})

	t.Run("get question not found", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			r := QuestionRepo{DB: tx}

			_, err := r.GetQuestion(t.Context(), 999)

			assert.ErrorIs(t, err, apperrors.ErrQuestionNotFound, "should return well known error")
		})
	})

	t.Run("set multi select", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			r := QuestionRepo{DB: tx}
			quiz := newQuiz(t, tx)
			created, err := r.CreateQuestion(t.Context(), quiz.ID, "Q")
			require.NoError(t, err)

			err = r.SetMultiSelect(t.Context(), created.ID, true)
			require.NoError(t, err)

			got, err := r.GetQuestion(t.Context(), created.ID)
			require.NoError(t, err)
			assert.True(t, got.IsMultiSelect)
		})
	})

	t.Run("list and bulk delete by quiz", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			r := QuestionRepo{DB: tx}
			quiz := newQuiz(t, tx)
			_, err := r.CreateQuestion(t.Context(), quiz.ID, "Q1")
			require.NoError(t, err)
			_, err = r.CreateQuestion(t.Context(), quiz.ID, "Q2")
			require.NoError(t, err)

			questions, err := r.ListQuestionsByQuiz(t.Context(), quiz.ID)
			require.NoError(t, err)
			require.Len(t, questions, 2)

			err = r.DeleteQuestionsByQuiz(t.Context(), quiz.ID)
			require.NoError(t, err)

			questions, err = r.ListQuestionsByQuiz(t.Context(), quiz.ID)
			require.NoError(t, err)
			assert.Empty(t, questions)
		})
	})
}

func Test_AnswerRepo(t *testing.T) {
	t.Parallel()

	pg := testutil.StartPostgresContainer(t)
	t.Cleanup(pg.Terminate)

	newQuestion := func(t *testing.T, tx pgx.Tx) models.Question {
		t.Helper()

		user := mustCreateUser(t, tx, "quizauthor")
		quiz, err := (&QuizRepo{DB: tx}).CreateQuiz(t.Context(), "Quiz", user.ID)
		require.NoError(t, err)
		question, err := (&QuestionRepo{DB: tx}).CreateQuestion(t.Context(), quiz.ID, "Q")
		require.NoError(t, err)
		return question
	}

	t.Run("create and get answer", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			r := AnswerRepo{DB: tx}
			question := newQuestion(t, tx)

			created, err := r.CreateAnswer(t.Context(), question.ID, "Answer 1", true)
			require.NoError(t, err)
			assert.Equal(t, question.ID, created.QuestionID)
			assert.True(t, created.IsCorrect)

			got, err := r.GetAnswer(t.Context(), created.ID)
			require.NoError(t, err)
			assert.Equal(t, created.ID, got.ID)
			assert.Equal(t, "Answer 1", got.Title)
		})
	})

	t.Run("get answer not found", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			r := AnswerRepo{DB: tx}

			_, err := r.GetAnswer(t.Context(), 999)

			assert.ErrorIs(t, err, apperrors.ErrAnswerNotFound, "should return well known error")
		})
	})

	t.Run("count correct", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			r := AnswerRepo{DB: tx}
			question := newQuestion(t, tx)

			_, err := r.CreateAnswer(t.Context(), question.ID, "Answer 1", true)
			require.NoError(t, err)
			_, err = r.CreateAnswer(t.Context(), question.ID, "Answer 2", true)
			require.NoError(t, err)
			_, err = r.CreateAnswer(t.Context(), question.ID, "Answer 3", false)
			require.NoError(t, err)

			count, err := r.CountCorrect(t.Context(), question.ID)

			require.NoError(t, err)
			assert.Equal(t, int64(2), count)
		})
	})

	t.Run("list by question and bulk delete", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			r := AnswerRepo{DB: tx}
			question := newQuestion(t, tx)
			_, err := r.CreateAnswer(t.Context(), question.ID, "Answer 1", false)
			require.NoError(t, err)
			_, err = r.CreateAnswer(t.Context(), question.ID, "Answer 2", false)
			require.NoError(t, err)

			answers, err := r.ListAnswersByQuestion(t.Context(), question.ID)
			require.NoError(t, err)
			require.Len(t, answers, 2)

			err = r.DeleteAnswersByQuestion(t.Context(), question.ID)
			require.NoError(t, err)

			answers, err = r.ListAnswersByQuestion(t.Context(), question.ID)
			require.NoError(t, err)
			assert.Empty(t, answers)
		})
	})

	t.Run("list and delete by quiz spans questions", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			r := AnswerRepo{DB: tx}
			user := mustCreateUser(t, tx, "quizauthor")
			quiz, err := (&QuizRepo{DB: tx}).CreateQuiz(t.Context(), "Quiz", user.ID)
			require.NoError(t, err)

			questionRepo := QuestionRepo{DB: tx}
			q1, err := questionRepo.CreateQuestion(t.Context(), quiz.ID, "Q1")
			require.NoError(t, err)
			q2, err := questionRepo.CreateQuestion(t.Context(), quiz.ID, "Q2")
			require.NoError(t, err)

			_, err = r.CreateAnswer(t.Context(), q1.ID, "Answer 1", false)
			require.NoError(t, err)
			_, err = r.CreateAnswer(t.Context(), q2.ID, "Answer 2", false)
			require.NoError(t, err)

			answers, err := r.ListAnswersByQuiz(t.Context(), quiz.ID)
			require.NoError(t, err)
			require.Len(t, answers, 2)

			err = r.DeleteAnswersByQuiz(t.Context(), quiz.ID)
			require.NoError(t, err)

			answers, err = r.ListAnswersByQuiz(t.Context(), quiz.ID)
			require.NoError(t, err)
			assert.Empty(t, answers)
		})
	})
}
