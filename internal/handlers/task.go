package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/iqurastudy/quizapi/internal/apperrors"
	"github.com/iqurastudy/quizapi/internal/handlers/render"
	"github.com/iqurastudy/quizapi/internal/models"
	"github.com/iqurastudy/quizapi/internal/service/task"
)

// Fixed message for unexpected failures in the session path, no detail leaks
const internalErrorMessage = "An error occurred while processing your request."

type taskSessionService interface {
	UserIDFromRequest(r *http.Request) (uuid.UUID, error)
}

type taskService interface {
	CreateGroupTask(ctx context.Context, userID uuid.UUID, arg task.CreateGroupTaskParams) (models.GroupTask, error)
	ListGroupTasks(ctx context.Context, groupID int64) ([]models.GroupTask, error)
	DeleteGroupTask(ctx context.Context, userID uuid.UUID, id int64) error
}

type TaskHandler struct {
	taskService taskService
	session     taskSessionService
}

func NewTask(taskService taskService, session taskSessionService) *TaskHandler {
	return &TaskHandler{taskService: taskService, session: session}
}

type GroupTaskResponse struct {
	ID          int64            `json:"id"`
	GroupID     int64            `json:"group_id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	MaxScore    *decimal.Decimal `json:"max_score,omitempty"`
	CreatedBy   uuid.UUID        `json:"created_by"`
	CreatedAt   time.Time        `json:"created_at"`
}

func toGroupTaskResponse(t models.GroupTask) GroupTaskResponse {
	return GroupTaskResponse{
		ID:          t.ID,
		GroupID:     t.GroupID,
		Title:       t.Title,
		Description: t.Description,
		MaxScore:    t.MaxScore,
		CreatedBy:   t.CreatedBy,
		CreatedAt:   t.CreatedAt,
	}
}

// create stamps the creator from the acting token.
// Whatever goes wrong in the session path surfaces as a generic 500,
// never as an auth status: the operation as a whole failed.
func (h *TaskHandler) create(w http.ResponseWriter, r *http.Request) {
	type CreateGroupTaskRequest struct {
		Title       string           `json:"title" validate:"required,min=1,max=200"`
		Description string           `json:"description" validate:"max=2000"`
		GroupID     int64            `json:"group_id" validate:"required"`
		MaxScore    *decimal.Decimal `json:"max_score,omitempty"`
	}

	data, err := render.BindAndValidate[CreateGroupTaskRequest](w, r)
	if err != nil {
		return
	}

	userID, err := h.session.UserIDFromRequest(r)
	if err != nil {
		render.ServiceError(w, internalErrorMessage, http.StatusInternalServerError)
		return
	}

	created, err := h.taskService.CreateGroupTask(r.Context(), userID, task.CreateGroupTaskParams{
		GroupID:     data.GroupID,
		Title:       data.Title,
		Description: data.Description,
		MaxScore:    data.MaxScore,
	})
	if err != nil {
		render.ServiceError(w, internalErrorMessage, http.StatusInternalServerError)
		return
	}

	render.Created(w, fmt.Sprintf("/api/tasks/%d", created.ID), toGroupTaskResponse(created))
}

// list returns tasks of one group, narrowed by group id only
func (h *TaskHandler) list(w http.ResponseWriter, r *http.Request) {
	groupID, err := pathID(r, "groupID")
	if err != nil {
		render.ServiceError(w, "Invalid group id", http.StatusBadRequest)
		return
	}

	tasks, err := h.taskService.ListGroupTasks(r.Context(), groupID)
	if err != nil {
		render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	resp := make([]GroupTaskResponse, 0, len(tasks))
	for _, t := range tasks {
		resp = append(resp, toGroupTaskResponse(t))
	}

	render.JSON(w, resp)
}

// delete removes a task, only its creator may do that
func (h *TaskHandler) delete(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		render.ServiceError(w, "Invalid task id", http.StatusBadRequest)
		return
	}

	err = h.taskService.DeleteGroupTask(r.Context(), user.ID, id)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrGroupTaskNotFound):
			render.ServiceError(w, "Task not found", http.StatusNotFound)
		case errors.Is(err, apperrors.ErrNotResourceOwner):
			render.ServiceError(w, "Forbidden", http.StatusForbidden)
		default:
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	render.NoContent(w)
}
