package handler

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/task-management-api/internal/middleware"
	"github.com/BuzzLyutic/task-management-api/internal/model"
	"github.com/BuzzLyutic/task-management-api/internal/service"
	"github.com/BuzzLyutic/task-management-api/pkg/respond"
)

type TaskHandler struct {
	service *service.TaskService
	logger  *zap.Logger
}

func NewTaskHandler(srv *service.TaskService, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		service: srv,
		logger:  logger,
	}
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := h.user(w, r)
	if !ok {
		return
	}

	var in model.CreateTaskInput
	if err := decodeAndValidate(w, r, &in); err != nil {
		handleErrors(h.logger, w, r, err)
		return
	}

	task, err := h.service.Create(r.Context(), in, user)
	if err != nil {
		handleErrors(h.logger, w, r, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/tasks/%s", task.ID))
	respond.JSON(w, r, http.StatusCreated, task)
}

func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := h.user(w, r)
	if !ok {
		return
	}
	id, err := taskID(r)
	if err != nil {
		handleErrors(h.logger, w, r, err)
		return
	}

	task, err := h.service.Get(r.Context(), id, user)
	if err != nil {
		handleErrors(h.logger, w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, task)
}

func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := h.user(w, r)
	if !ok {
		return
	}

	var filter model.TaskFilter
	q := r.URL.Query()
	if status := q.Get("status"); status != "" {
		s := model.TaskStatus(status)
		filter.Status = &s
	}
	if search := q.Get("search"); search != "" {
		if !validText(search) {
			handleErrors(h.logger, w, r, fmt.Errorf("%w: search must be valid UTF-8 without NUL characters", service.ErrValidation))
			return
		}
		filter.Search = &search
	}

	tasks, err := h.service.List(r.Context(), filter, user)
	if err != nil {
		handleErrors(h.logger, w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, tasks)
}

func (h *TaskHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	user, ok := h.user(w, r)
	if !ok {
		return
	}
	id, err := taskID(r)
	if err != nil {
		handleErrors(h.logger, w, r, err)
		return
	}

	var in model.UpdateTaskStatusInput
	if err := decodeAndValidate(w, r, &in); err != nil {
		handleErrors(h.logger, w, r, err)
		return
	}

	task, err := h.service.UpdateStatus(r.Context(), id, in.Status, user)
	if err != nil {
		handleErrors(h.logger, w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, task)
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := h.user(w, r)
	if !ok {
		return
	}
	id, err := taskID(r)
	if err != nil {
		handleErrors(h.logger, w, r, err)
		return
	}

	if err := h.service.Delete(r.Context(), id, user); err != nil {
		handleErrors(h.logger, w, r, err)
		return
	}
	respond.Empty(w, r, http.StatusNoContent)
}

// user достает пользователя из контекста; без него маршрут не был защищен Authenticate
func (h *TaskHandler) user(w http.ResponseWriter, r *http.Request) (model.User, bool) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		handleErrors(h.logger, w, r, service.ErrUnauthorized)
	}
	return user, ok
}

// taskID разбирает {id}. Не-UUID не может быть id задачи, поэтому это 404, а не 400.
func taskID(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "id")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: task with ID %q not found", service.ErrNotFound, raw)
	}
	return id, nil
}
