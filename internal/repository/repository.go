package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/iqurastudy/quizapi/internal/models"
)

// User repository interface
type UserRepo interface {
	// Create user
	// If user with username exists already has to return apperrors.ErrUserAlreadyExists
	CreateUser(ctx context.Context, username string, email string, hashedPassword string) (models.User, error)

	// Get user by id or username
	// If user not found must return apperrors.ErrUserNotFound
	GetUserByID(ctx context.Context, userID uuid.UUID) (models.User, error)
	GetUserByUsername(ctx context.Context, username string) (models.User, error)

	// Find the user who holds the given refresh token value
	// If no user holds it must return apperrors.ErrRefreshTokenNotFound
	GetUserByRefreshToken(ctx context.Context, token string) (models.User, error)

	// Replace the stored refresh token, a user holds at most one
	SetRefreshToken(ctx context.Context, userID uuid.UUID, token string, expiresAt time.Time) (models.User, error)
}

type QuizRepo interface {
	CreateQuiz(ctx context.Context, title string, createdBy uuid.UUID) (models.Quiz, error)

	// If quiz not found must return apperrors.ErrQuizNotFound
	GetQuiz(ctx context.Context, id int64) (models.Quiz, error)

	// All quizzes ordered by id, ownership scoping is applied by the service
	ListQuizzes(ctx context.Context) ([]models.Quiz, error)

	DeleteQuiz(ctx context.Context, id int64) error
}

type QuestionRepo interface {
	CreateQuestion(ctx context.Context, quizID int64, title string) (models.Question, error)

	// If question not found must return apperrors.ErrQuestionNotFound
	GetQuestion(ctx context.Context, id int64) (models.Question, error)

	ListQuestionsByQuiz(ctx context.Context, quizID int64) ([]models.Question, error)

	SetMultiSelect(ctx context.Context, id int64, isMultiSelect bool) error

	DeleteQuestion(ctx context.Context, id int64) error
	DeleteQuestionsByQuiz(ctx context.Context, quizID int64) error
}

type AnswerRepo interface {
	CreateAnswer(ctx context.Context, questionID int64, title string, isCorrect bool) (models.Answer, error)

	// If answer not found must return apperrors.ErrAnswerNotFound
	GetAnswer(ctx context.Context, id int64) (models.Answer, error)

	ListAnswersByQuestion(ctx context.Context, questionID int64) ([]models.Answer, error)
	ListAnswersByQuiz(ctx context.Context, quizID int64) ([]models.Answer, error)

	CountCorrect(ctx context.Context, questionID int64) (int64, error)

	DeleteAnswersByQuestion(ctx context.Context, questionID int64) error
	DeleteAnswersByQuiz(ctx context.Context, quizID int64) error
}

type CreateGroupTaskParams struct {
	GroupID     int64
	Title       string
	Description string
	MaxScore    *decimal.Decimal
	CreatedBy   uuid.UUID
}

type GroupTaskRepo interface {
	CreateGroupTask(ctx context.Context, arg CreateGroupTaskParams) (models.GroupTask, error)

	// If task not found must return apperrors.ErrGroupTaskNotFound
	GetGroupTask(ctx context.Context, id int64) (models.GroupTask, error)

	ListGroupTasks(ctx context.Context, groupID int64) ([]models.GroupTask, error)

	DeleteGroupTask(ctx context.Context, id int64) error
}

// Storage is the single entry point to long term data
// InTx runs fn with a storage bound to one db transaction, all or nothing
type Storage interface {
	User() UserRepo
	Quiz() QuizRepo
	Question() QuestionRepo
	Answer() AnswerRepo
	GroupTask() GroupTaskRepo

	InTx(ctx context.Context, fn func(s Storage) error) error
}
