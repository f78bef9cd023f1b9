package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	commonerrors "github.com/AlibekovAA/task-manager/internal/common/errors"
	"github.com/AlibekovAA/task-manager/internal/common/jwtverify"
	"github.com/AlibekovAA/task-manager/internal/common/logger"
	"github.com/AlibekovAA/task-manager/internal/task/domain"
	"github.com/AlibekovAA/task-manager/internal/task/service"
	userdomain "github.com/AlibekovAA/task-manager/internal/user/domain"
)

const taskID = "3f1c2a9e-6b1d-4f7a-9c2e-0a1b2c3d4e5f"

var alice = userdomain.User{ID: "u-1", Username: "alice"}

type mockTaskService struct {
	getTasksFunc         func(ctx context.Context, input service.FilterInput, owner userdomain.User) ([]domain.Task, error)
	getTaskByIDFunc      func(ctx context.Context, id string, owner userdomain.User) (domain.Task, error)
	createTaskFunc       func(ctx context.Context, input service.CreateTaskInput, owner userdomain.User) (domain.Task, error)
	deleteTaskFunc       func(ctx context.Context, id string, owner userdomain.User) error
	updateTaskStatusFunc func(ctx context.Context, id string, status domain.Status, owner userdomain.User) (domain.Task, error)
}

func (m *mockTaskService) GetTasks(ctx context.Context, input service.FilterInput, owner userdomain.User) ([]domain.Task, error) {
	if m.getTasksFunc != nil {
		return m.getTasksFunc(ctx, input, owner)
	}
	return []domain.Task{}, nil
}

func (m *mockTaskService) GetTaskByID(ctx context.Context, id string, owner userdomain.User) (domain.Task, error) {
	if m.getTaskByIDFunc != nil {
		return m.getTaskByIDFunc(ctx, id, owner)
	}
	return domain.Task{}, commonerrors.ErrTaskNotFound
}

func (m *mockTaskService) CreateTask(ctx context.Context, input service.CreateTaskInput, owner userdomain.User) (domain.Task, error) {
	if m.createTaskFunc != nil {
		return m.createTaskFunc(ctx, input, owner)
	}
	return domain.Task{}, nil
}

func (m *mockTaskService) DeleteTask(ctx context.Context, id string, owner userdomain.User) error {
	if m.deleteTaskFunc != nil {
		return m.deleteTaskFunc(ctx, id, owner)
	}
	return nil
}

func (m *mockTaskService) UpdateTaskStatus(ctx context.Context, id string, status domain.Status, owner userdomain.User) (domain.Task, error) {
	if m.updateTaskStatusFunc != nil {
		return m.updateTaskStatusFunc(ctx, id, status, owner)
	}
	return domain.Task{}, nil
}

// fakeAuth authenticates every request carrying "Authorization: alice".
func fakeAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "alice" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r.WithContext(jwtverify.WithUser(r.Context(), alice)))
	})
}

func newMux(svc TaskService) *http.ServeMux {
	mux := http.NewServeMux()
	Register(mux, svc, fakeAuth, time.Second, logger.NewWithWriter(io.Discard, "test", "error"))
	return mux
}

func do(mux http.Handler, method, path, body string, authed bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if authed {
		req.Header.Set("Authorization", "alice")
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestRoutesRequireAuth(t *testing.T) {
	mux := newMux(&mockTaskService{})

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/tasks"},
		{http.MethodPost, "/tasks"},
		{http.MethodGet, "/tasks/" + taskID},
		{http.MethodDelete, "/tasks/" + taskID},
		{http.MethodPatch, "/tasks/" + taskID + "/status"},
	} {
		rec := do(mux, route.method, route.path, "", false)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, route.method+" "+route.path)
	}
}

func TestRequestTimeoutCoversAuth(t *testing.T) {
	var authHasDeadline bool
	auth := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, authHasDeadline = r.Context().Deadline()
			fakeAuth(next).ServeHTTP(w, r)
		})
	}
	mux := http.NewServeMux()
	Register(mux, &mockTaskService{}, auth, time.Second, logger.NewWithWriter(io.Discard, "test", "error"))

	rec := do(mux, http.MethodGet, "/tasks", "", true)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, authHasDeadline)
}

func TestListTasks(t *testing.T) {
	var gotInput service.FilterInput
	var gotOwner userdomain.User
	svc := &mockTaskService{
		getTasksFunc: func(ctx context.Context, input service.FilterInput, owner userdomain.User) ([]domain.Task, error) {
			gotInput, gotOwner = input, owner
			return []domain.Task{{ID: taskID, Title: "t", Description: "d", Status: domain.StatusOpen}}, nil
		},
	}

	rec := do(newMux(svc), http.MethodGet, "/tasks?status=OPEN&search=milk", "", true)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, service.FilterInput{Status: "OPEN", Search: "milk"}, gotInput)
	assert.Equal(t, alice, gotOwner)
	assert.JSONEq(t, `[{"id":"`+taskID+`","title":"t","description":"d","status":"OPEN"}]`, rec.Body.String())
}

func TestListTasks_EmptyArray(t *testing.T) {
	rec := do(newMux(&mockTaskService{}), http.MethodGet, "/tasks", "", true)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestGetTask(t *testing.T) {
	svc := &mockTaskService{
		getTaskByIDFunc: func(ctx context.Context, id string, owner userdomain.User) (domain.Task, error) {
			if id != taskID {
				return domain.Task{}, commonerrors.ErrTaskNotFound
			}
			return domain.Task{ID: taskID, Title: "Test task", Description: "Test description", Status: domain.StatusOpen}, nil
		},
	}
	mux := newMux(svc)

	rec := do(mux, http.MethodGet, "/tasks/"+taskID, "", true)
	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Test task", body["title"])

	rec = do(mux, http.MethodGet, "/tasks/6f1c2a9e-6b1d-4f7a-9c2e-0a1b2c3d4e5f", "", true)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(mux, http.MethodGet, "/tasks/not-a-uuid", "", true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateTask(t *testing.T) {
	svc := &mockTaskService{
		createTaskFunc: func(ctx context.Context, input service.CreateTaskInput, owner userdomain.User) (domain.Task, error) {
			if input.Title == "" {
				return domain.Task{}, commonerrors.ErrValidation
			}
			return domain.Task{ID: taskID, Title: input.Title, Description: input.Description, Status: domain.StatusOpen, UserID: owner.ID}, nil
		},
	}
	mux := newMux(svc)

	rec := do(mux, http.MethodPost, "/tasks", `{"title":"Buy milk","description":"2 liters"}`, true)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"id":"`+taskID+`","title":"Buy milk","description":"2 liters","status":"OPEN"}`, rec.Body.String())

	rec = do(mux, http.MethodPost, "/tasks", `{"description":"2 liters"}`, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(mux, http.MethodPost, "/tasks", `not json`, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteTask(t *testing.T) {
	svc := &mockTaskService{
		deleteTaskFunc: func(ctx context.Context, id string, owner userdomain.User) error {
			if id != taskID {
				return commonerrors.ErrTaskNotFound
			}
			return nil
		},
	}
	mux := newMux(svc)

	rec := do(mux, http.MethodDelete, "/tasks/"+taskID, "", true)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = do(mux, http.MethodDelete, "/tasks/6f1c2a9e-6b1d-4f7a-9c2e-0a1b2c3d4e5f", "", true)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateTaskStatus(t *testing.T) {
	var gotStatus domain.Status
	svc := &mockTaskService{
		updateTaskStatusFunc: func(ctx context.Context, id string, status domain.Status, owner userdomain.User) (domain.Task, error) {
			gotStatus = status
			if !status.Valid() {
				return domain.Task{}, commonerrors.ErrValidation
			}
			return domain.Task{ID: domain.ID(id), Title: "t", Description: "d", Status: status}, nil
		},
	}
	mux := newMux(svc)

	rec := do(mux, http.MethodPatch, "/tasks/"+taskID+"/status", `{"status":"DONE"}`, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.StatusDone, gotStatus)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "DONE", body["status"])

	rec = do(mux, http.MethodPatch, "/tasks/"+taskID+"/status", `{"status":"LATER"}`, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
