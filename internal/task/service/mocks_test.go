package service

import (
	"context"
	"io"

	"github.com/AlibekovAA/task-manager/internal/common/logger"
	"github.com/AlibekovAA/task-manager/internal/task/domain"
	taskrepo "github.com/AlibekovAA/task-manager/internal/task/repository"
	userdomain "github.com/AlibekovAA/task-manager/internal/user/domain"
)

type mockTaskRepo struct {
	listFunc         func(ctx context.Context, filter domain.Filter, userID userdomain.ID) ([]domain.Task, error)
	findByIDFunc     func(ctx context.Context, id domain.ID, userID userdomain.ID) (domain.Task, error)
	createFunc       func(ctx context.Context, task domain.Task) error
	updateStatusFunc func(ctx context.Context, id domain.ID, status domain.Status, userID userdomain.ID) error
	deleteFunc       func(ctx context.Context, id domain.ID, userID userdomain.ID) (int64, error)

	calls int
}

func (m *mockTaskRepo) List(ctx context.Context, filter domain.Filter, userID userdomain.ID) ([]domain.Task, error) {
	m.calls++
	if m.listFunc != nil {
		return m.listFunc(ctx, filter, userID)
	}
	return nil, nil
}

func (m *mockTaskRepo) FindByID(ctx context.Context, id domain.ID, userID userdomain.ID) (domain.Task, error) {
	m.calls++
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id, userID)
	}
	return domain.Task{}, taskrepo.ErrTaskNotFound
}

func (m *mockTaskRepo) Create(ctx context.Context, task domain.Task) error {
	m.calls++
	if m.createFunc != nil {
		return m.createFunc(ctx, task)
	}
	return nil
}

func (m *mockTaskRepo) UpdateStatus(ctx context.Context, id domain.ID, status domain.Status, userID userdomain.ID) error {
	m.calls++
	if m.updateStatusFunc != nil {
		return m.updateStatusFunc(ctx, id, status, userID)
	}
	return nil
}

func (m *mockTaskRepo) Delete(ctx context.Context, id domain.ID, userID userdomain.ID) (int64, error) {
	m.calls++
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id, userID)
	}
	return 0, nil
}

type mockIDGenerator struct {
	newIDFunc func() (string, error)
}

func (m *mockIDGenerator) NewID() (string, error) {
	if m.newIDFunc != nil {
		return m.newIDFunc()
	}
	return "6f1c2a9e-6b1d-4f7a-9c2e-0a1b2c3d4e5f", nil
}

func testLogger() *logger.Logger {
	return logger.NewWithWriter(io.Discard, "test", "error")
}
