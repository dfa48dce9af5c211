package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/iqurastudy/quizapi/internal/apperrors"
	"github.com/iqurastudy/quizapi/internal/handlers/render"
	"github.com/iqurastudy/quizapi/internal/models"
	"github.com/iqurastudy/quizapi/internal/service/quiz"
)

type questionService interface {
	CreateQuestionWithAnswers(ctx context.Context, quizID int64, arg quiz.CreateQuestionParams) (models.Question, error)
	GetQuestion(ctx context.Context, id int64) (models.Question, error)
	DeleteQuestion(ctx context.Context, id int64) error
}

type QuestionHandler struct {
	questionService questionService
}

func NewQuestion(questionService questionService) *QuestionHandler {
	return &QuestionHandler{questionService: questionService}
}

type QuestionResponse struct {
	ID            int64            `json:"id"`
	QuizID        int64            `json:"quiz_id"`
	Title         string           `json:"title"`
	IsMultiSelect bool             `json:"is_multi_select"`
	Answers       []AnswerResponse `json:"answers"`
}

func toQuestionResponse(q models.Question) QuestionResponse {
	resp := QuestionResponse{
		ID:            q.ID,
		QuizID:        q.QuizID,
		Title:         q.Title,
		IsMultiSelect: q.IsMultiSelect,
		Answers:       make([]AnswerResponse, 0, len(q.Answers)),
	}
	for _, a := range q.Answers {
		resp.Answers = append(resp.Answers, toAnswerResponse(a))
	}
	return resp
}

type CreateAnswerRequest struct {
	Title     string `json:"title" validate:"required,min=1,max=500"`
	IsCorrect bool   `json:"is_correct"`
}

// create makes a question together with its nested answers
func (h *QuestionHandler) create(w http.ResponseWriter, r *http.Request) {
	type CreateQuestionRequest struct {
		Title   string                `json:"title" validate:"required,min=1,max=500"`
		Answers []CreateAnswerRequest `json:"answers" validate:"dive"`
	}

	quizID, err := pathID(r, "quizID")
	if err != nil {
		render.ServiceError(w, "Invalid quiz id", http.StatusBadRequest)
		return
	}

	data, err := render.BindAndValidate[CreateQuestionRequest](w, r)
	if err != nil {
		return
	}

	arg := quiz.CreateQuestionParams{Title: data.Title}
	for _, a := range data.Answers {
		arg.Answers = append(arg.Answers, quiz.CreateAnswer{Title: a.Title, IsCorrect: a.IsCorrect})
	}

	question, err := h.questionService.CreateQuestionWithAnswers(r.Context(), quizID, arg)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrQuizNotFound):
			render.ServiceError(w, "Quiz not found", http.StatusNotFound)
		default:
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	render.Created(w, fmt.Sprintf("/api/questions/%d", question.ID), toQuestionResponse(question))
}

func (h *QuestionHandler) get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		render.ServiceError(w, "Invalid question id", http.StatusBadRequest)
		return
	}

	question, err := h.questionService.GetQuestion(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrQuestionNotFound):
			render.ServiceError(w, "Question not found", http.StatusNotFound)
		default:
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	render.JSON(w, toQuestionResponse(question))
}

// delete removes the question with every answer it has
func (h *QuestionHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		render.ServiceError(w, "Invalid question id", http.StatusBadRequest)
		return
	}

	err = h.questionService.DeleteQuestion(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrQuestionNotFound):
			render.ServiceError(w, "Question not found", http.StatusNotFound)
		default:
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	render.NoContent(w)
}
