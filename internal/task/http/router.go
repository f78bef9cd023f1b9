package http

import (
	"context"
	"net/http"
	"time"

	commonerrors "github.com/AlibekovAA/task-manager/internal/common/errors"
	commonhttp "github.com/AlibekovAA/task-manager/internal/common/http"
	"github.com/AlibekovAA/task-manager/internal/common/jwtverify"
	"github.com/AlibekovAA/task-manager/internal/common/logger"
	"github.com/AlibekovAA/task-manager/internal/task/domain"
	"github.com/AlibekovAA/task-manager/internal/task/service"
	userdomain "github.com/AlibekovAA/task-manager/internal/user/domain"
)

type TaskService interface {
	GetTasks(ctx context.Context, input service.FilterInput, owner userdomain.User) ([]domain.Task, error)
	GetTaskByID(ctx context.Context, id string, owner userdomain.User) (domain.Task, error)
	CreateTask(ctx context.Context, input service.CreateTaskInput, owner userdomain.User) (domain.Task, error)
	DeleteTask(ctx context.Context, id string, owner userdomain.User) error
	UpdateTaskStatus(ctx context.Context, id string, status domain.Status, owner userdomain.User) (domain.Task, error)
}

type taskResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

func toResponse(t domain.Task) taskResponse {
	return taskResponse{
		ID:          string(t.ID),
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
	}
}

type Handler struct {
	tasks TaskService
	log   *logger.Logger
}

// Register mounts the task routes on mux behind auth.
func Register(mux *http.ServeMux, tasks TaskService, auth func(http.Handler) http.Handler, requestTimeout time.Duration, log *logger.Logger) {
	h := &Handler{tasks: tasks, log: log}
	timeout := commonhttp.WithTimeout(requestTimeout)
	protect := func(fn http.HandlerFunc) http.Handler {
		return timeout(auth(fn).ServeHTTP)
	}

	mux.Handle("GET /tasks", protect(h.list))
	mux.Handle("POST /tasks", protect(h.create))
	mux.Handle("GET /tasks/{id}", protect(h.get))
	mux.Handle("DELETE /tasks/{id}", protect(h.delete))
	mux.Handle("PATCH /tasks/{id}/status", protect(h.updateStatus))
}

// currentUser is only reachable behind the auth middleware; a missing user
// means the route was mounted without it.
func (h *Handler) currentUser(w http.ResponseWriter, r *http.Request) (userdomain.User, bool) {
	user, ok := jwtverify.UserFromContext(r.Context())
	if !ok {
		commonhttp.HandleError(w, r, commonerrors.ErrUnauthorized, h.log)
		return userdomain.User{}, false
	}
	return user, true
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	tasks, err := h.tasks.GetTasks(r.Context(), service.FilterInput{
		Status: q.Get("status"),
		Search: q.Get("search"),
	}, user)
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	resp := make([]taskResponse, 0, len(tasks))
	for _, t := range tasks {
		resp = append(resp, toResponse(t))
	}
	commonhttp.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}
	id, err := commonhttp.PathID(r, "id")
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	task, err := h.tasks.GetTaskByID(r.Context(), id, user)
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}
	commonhttp.WriteJSON(w, http.StatusOK, toResponse(task))
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	var req service.CreateTaskInput
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	task, err := h.tasks.CreateTask(r.Context(), req, user)
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}
	commonhttp.WriteJSON(w, http.StatusCreated, toResponse(task))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}
	id, err := commonhttp.PathID(r, "id")
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	if err := h.tasks.DeleteTask(r.Context(), id, user); err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}
	id, err := commonhttp.PathID(r, "id")
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	var req service.UpdateTaskStatusInput
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	task, err := h.tasks.UpdateTaskStatus(r.Context(), id, domain.Status(req.Status), user)
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}
	commonhttp.WriteJSON(w, http.StatusOK, toResponse(task))
}
