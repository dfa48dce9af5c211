package postgres

import (
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iqurastudy/quizapi/internal/apperrors"
	"github.com/iqurastudy/quizapi/internal/repository"
	"github.com/iqurastudy/quizapi/internal/testutil"
)

func Test_GroupTaskRepo(t *testing.T) {
	t.Parallel()

	pg := testutil.StartPostgresContainer(t)
	t.Cleanup(pg.Terminate)

	t.Run("create task ok", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			r := GroupTaskRepo{DB: tx}
			user := mustCreateUser(t, tx, "taskauthor")
			maxScore := decimal.RequireFromString("99.99")

			task, err := r.CreateGroupTask(t.Context(), repository.CreateGroupTaskParams{
				GroupID:     7,
				Title:       "Homework",
				Description: "Solve all exercises",
				MaxScore:    &maxScore,
				CreatedBy:   user.ID,
			})

			require.NoError(t, err)
			assert.NotZero(t, task.ID)
			assert.Equal(t, int64(7), task.GroupID)
			assert.Equal(t, "Homework", task.Title)
			assert.Equal(t, "Solve all exercises", task.Description)
			assert.Equal(t, user.ID, task.CreatedBy)
			require.NotNil(t, task.MaxScore)
			assert.True(t, maxScore.Equal(*task.MaxScore), "numeric column should round trip exactly")
		})
	})

	t.Run("create task without max score", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			r := GroupTaskRepo{DB: tx}
			user := mustCreateUser(t, tx, "taskauthor")

			task, err := r.CreateGroupTask(t.Context(), repository.CreateGroupTaskParams{
				GroupID:   7,
				Title:     "Ungraded",
				CreatedBy: user.ID,
			})

			require.NoError(t, err)
			assert.Nil(t, task.MaxScore)
		})
	})

	t.Run("get task not found", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			r := GroupTaskRepo{DB: tx}

			_, err := r.GetGroupTask(t.Context(), 999)

			assert.ErrorIs(t, err, apperrors.ErrGroupTaskNotFound, "should return well known error")
		})
	})

	t.Run("list tasks filters by group", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			r := GroupTaskRepo{DB: tx}
			user := mustCreateUser(t, tx, "taskauthor")

			first, err := r.CreateGroupTask(t.Context(), repository.CreateGroupTaskParams{GroupID: 1, Title: "Task 1", CreatedBy: user.ID})
			require.NoError(t, err)
			_, err = r.CreateGroupTask(t.Context(), repository.CreateGroupTaskParams{GroupID: 2, Title: "Task 2", CreatedBy: user.ID})
			require.NoError(t, err)

			tasks, err := r.ListGroupTasks(t.Context(), 1)

			require.NoError(t, err)
			require.Len(t, tasks, 1)
			assert.Equal(t, first.ID, tasks[0].ID)
		})
	})

	t.Run("delete task", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			r := GroupTaskRepo{DB: tx}
			user := mustCreateUser(t, tx, "taskauthor")
			task, err := r.CreateGroupTask(t.Context(), repository.CreateGroupTaskParams{GroupID: 1, Title: "Doomed", CreatedBy: user.ID})
			require.NoError(t, err)

			err = r.DeleteGroupTask(t.Context(), task.ID)

			require.NoError(t, err)
			_, err = r.GetGroupTask(t.Context(), task.ID)
			assert.ErrorIs(t, err, apperrors.ErrGroupTaskNotFound)
		})
	})
}
