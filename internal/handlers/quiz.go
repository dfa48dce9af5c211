package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/iqurastudy/quizapi/internal/apperrors"
	"github.com/iqurastudy/quizapi/internal/handlers/render"
	"github.com/iqurastudy/quizapi/internal/models"
)

type quizService interface {
	ListQuizzes(ctx context.Context, userID uuid.UUID) ([]models.Quiz, error)
	GetQuiz(ctx context.Context, id int64) (models.Quiz, error)
	CreateQuiz(ctx context.Context, userID uuid.UUID, title string) (models.Quiz, error)
	DeleteQuiz(ctx context.Context, userID uuid.UUID, id int64) error
}

type QuizHandler struct {
	quizService quizService
}

func NewQuiz(quizService quizService) *QuizHandler {
	return &QuizHandler{quizService: quizService}
}

type QuizResponse struct {
	ID        int64              `json:"id"`
	Title     string             `json:"title"`
	CreatedBy uuid.UUID          `json:"created_by"`
	CreatedAt time.Time          `json:"created_at"`
	Questions []QuestionResponse `json:"questions,omitempty"`
}

func toQuizResponse(q models.Quiz) QuizResponse {
	resp := QuizResponse{
		ID:        q.ID,
		Title:     q.Title,
		CreatedBy: q.CreatedBy,
		CreatedAt: q.CreatedAt,
	}
	for _, question := range q.Questions {
		resp.Questions = append(resp.Questions, toQuestionResponse(question))
	}
	return resp
}

// list returns quizzes owned by the acting user only
func (h *QuizHandler) list(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	quizzes, err := h.quizService.ListQuizzes(r.Context(), user.ID)
	if err != nil {
		render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	resp := make([]QuizResponse, 0, len(quizzes))
	for _, q := range quizzes {
		resp = append(resp, toQuizResponse(q))
	}

	render.JSON(w, resp)
}

// get returns a single quiz with questions and answers, no ownership check
func (h *QuizHandler) get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		render.ServiceError(w, "Invalid quiz id", http.StatusBadRequest)
		return
	}

	quiz, err := h.quizService.GetQuiz(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrQuizNotFound):
			render.ServiceError(w, "Quiz not found", http.StatusNotFound)
		default:
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	render.JSON(w, toQuizResponse(quiz))
}

func (h *QuizHandler) create(w http.ResponseWriter, r *http.Request) {
	type CreateQuizRequest struct {
		Title string `json:"title" validate:"required,min=1,max=200"`
	}

	user, ok := UserFromContext(r.Context())
	if !ok {
		render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	data, err := render.BindAndValidate[CreateQuizRequest](w, r)
	if err != nil {
		return
	}

	quiz, err := h.quizService.CreateQuiz(r.Context(), user.ID, data.Title)
	if err != nil {
		render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	render.Created(w, fmt.Sprintf("/api/quizzes/%d", quiz.ID), toQuizResponse(quiz))
}

func (h *QuizHandler) delete(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		render.ServiceError(w, "Invalid quiz id", http.StatusBadRequest)
		return
	}

	err = h.quizService.DeleteQuiz(r.Context(), user.ID, id)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrQuizNotFound):
			render.ServiceError(w, "Quiz not found", http.StatusNotFound)
		case errors.Is(err, apperrors.ErrNotResourceOwner):
			render.ServiceError(w, "Forbidden", http.StatusForbidden)
		default:
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	render.NoContent(w)
}

// pathID parses an int64 path segment registered as {name}
func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(r.PathValue(name), 10, 64)
}
