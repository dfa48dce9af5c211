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

type answerService interface {
	// Has to return apperrors.ErrEmptyAnswerList on empty payload and
	// apperrors.ErrQuestionNotFound when the question does not exist
	CreateAnswers(ctx context.Context, questionID int64, answers []quiz.CreateAnswer) ([]models.Answer, error)
	GetAnswer(ctx context.Context, id int64) (models.Answer, error)
}

type AnswerHandler struct {
	answerService answerService
}

func NewAnswer(answerService answerService) *AnswerHandler {
	return &AnswerHandler{answerService: answerService}
}

type AnswerResponse struct {
	ID         int64  `json:"id"`
	QuestionID int64  `json:"question_id"`
	Title      string `json:"title"`
	IsCorrect  bool   `json:"is_correct"`
}

func toAnswerResponse(a models.Answer) AnswerResponse {
	return AnswerResponse{
		ID:         a.ID,
		QuestionID: a.QuestionID,
		Title:      a.Title,
		IsCorrect:  a.IsCorrect,
	}
}

// create attaches a batch of answers to an existing question
func (h *AnswerHandler) create(w http.ResponseWriter, r *http.Request) {
	type CreateAnswersRequest struct {
		Answers []CreateAnswerRequest `json:"answers" validate:"dive"`
	}

	questionID, err := pathID(r, "questionID")
	if err != nil {
		render.ServiceError(w, "Invalid question id", http.StatusBadRequest)
		return
	}

	data, err := render.BindAndValidate[CreateAnswersRequest](w, r)
	if err != nil {
		return
	}

	answers := make([]quiz.CreateAnswer, 0, len(data.Answers))
	for _, a := range data.Answers {
		answers = append(answers, quiz.CreateAnswer{Title: a.Title, IsCorrect: a.IsCorrect})
	}

	created, err := h.answerService.CreateAnswers(r.Context(), questionID, answers)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrEmptyAnswerList):
			render.ServiceError(w, "Answer list must not be empty", http.StatusBadRequest)
		case errors.Is(err, apperrors.ErrQuestionNotFound):
			render.ServiceError(w, "Question not found", http.StatusNotFound)
		default:
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	resp := make([]AnswerResponse, 0, len(created))
	for _, a := range created {
		resp = append(resp, toAnswerResponse(a))
	}

	render.Created(w, fmt.Sprintf("/api/questions/%d", questionID), resp)
}

func (h *AnswerHandler) get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		render.ServiceError(w, "Invalid answer id", http.StatusBadRequest)
		return
	}

	answer, err := h.answerService.GetAnswer(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrAnswerNotFound):
			render.ServiceError(w, "Answer not found", http.StatusNotFound)
		default:
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	render.JSON(w, toAnswerResponse(answer))
}
