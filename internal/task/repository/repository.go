package repository

import (
	"context"
	"errors"

	"github.com/AlibekovAA/task-manager/internal/task/domain"
	userdomain "github.com/AlibekovAA/task-manager/internal/user/domain"
)

// Repository scopes every query by the owning user.
type Repository interface {
	List(ctx context.Context, filter domain.Filter, userID userdomain.ID) ([]domain.Task, error)
	FindByID(ctx context.Context, id domain.ID, userID userdomain.ID) (domain.Task, error)
	Create(ctx context.Context, task domain.Task) error
	UpdateStatus(ctx context.Context, id domain.ID, status domain.Status, userID userdomain.ID) error
	Delete(ctx context.Context, id domain.ID, userID userdomain.ID) (int64, error)
}

var ErrTaskNotFound = errors.New("task not found")
