package service

import (
	"context"
	"errors"
	"strings"

	"github.com/AlibekovAA/task-manager/internal/common/clock"
	commoncrypto "github.com/AlibekovAA/task-manager/internal/common/crypto"
	commonerrors "github.com/AlibekovAA/task-manager/internal/common/errors"
	"github.com/AlibekovAA/task-manager/internal/common/logger"
	"github.com/AlibekovAA/task-manager/internal/common/validation"
	"github.com/AlibekovAA/task-manager/internal/observability/metrics"
	"github.com/AlibekovAA/task-manager/internal/task/domain"
	taskrepo "github.com/AlibekovAA/task-manager/internal/task/repository"
	userdomain "github.com/AlibekovAA/task-manager/internal/user/domain"
)

// TaskService exposes task operations. Every call is scoped to owner, and a
// task owned by someone else is reported as not found.
type TaskService struct {
	repo        taskrepo.Repository
	idGenerator commoncrypto.IDGenerator
	validator   *validation.Validator
	clock       clock.Clock
	log         *logger.Logger
}

func NewTaskService(
	repo taskrepo.Repository,
	idGenerator commoncrypto.IDGenerator,
	validator *validation.Validator,
	clock clock.Clock,
	log *logger.Logger,
) *TaskService {
	return &TaskService{
		repo:        repo,
		idGenerator: idGenerator,
		validator:   validator,
		clock:       clock,
		log:         log,
	}
}

func (s *TaskService) GetTasks(ctx context.Context, input FilterInput, owner userdomain.User) ([]domain.Task, error) {
	if err := requireOwner(owner); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(input); err != nil {
		recordTaskOperation("list", resultInvalid)
		return nil, err
	}

	filter := domain.Filter{Search: strings.TrimSpace(input.Search)}
	if input.Status != "" {
		status := domain.Status(input.Status)
		filter.Status = &status
	}

	tasks, err := s.repo.List(ctx, filter, owner.ID)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"user_id": string(owner.ID),
			"action":  "task_list_failed",
		}).Errorf("list tasks failed: %v", err)
		recordTaskOperation("list", resultError)
		return nil, internalError("failed to list tasks", err)
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}

	recordTaskOperation("list", resultSuccess)
	return tasks, nil
}

func (s *TaskService) GetTaskByID(ctx context.Context, id string, owner userdomain.User) (domain.Task, error) {
	task, err := s.getTaskByID(ctx, id, owner)
	if err != nil {
		recordTaskOperation("get", resultFor(err))
		return domain.Task{}, err
	}
	recordTaskOperation("get", resultSuccess)
	return task, nil
}

func (s *TaskService) getTaskByID(ctx context.Context, id string, owner userdomain.User) (domain.Task, error) {
	if err := requireOwner(owner); err != nil {
		return domain.Task{}, err
	}
	if !commoncrypto.IsValidID(id) {
		return domain.Task{}, taskNotFound(id)
	}

	task, err := s.repo.FindByID(ctx, domain.ID(id), owner.ID)
	if err != nil {
		if errors.Is(err, taskrepo.ErrTaskNotFound) {
			s.log.WithFields(ctx, logger.Fields{
				"task_id": id,
				"user_id": string(owner.ID),
				"action":  "task_not_found",
			}).Debug("task not found")
			return domain.Task{}, taskNotFound(id)
		}
		s.log.WithFields(ctx, logger.Fields{
			"task_id": id,
			"user_id": string(owner.ID),
			"action":  "task_get_failed",
		}).Errorf("get task failed: %v", err)
		return domain.Task{}, internalError("failed to load task", err)
	}

	return task, nil
}

func (s *TaskService) CreateTask(ctx context.Context, input CreateTaskInput, owner userdomain.User) (domain.Task, error) {
	if err := requireOwner(owner); err != nil {
		return domain.Task{}, err
	}
	if err := s.validator.Struct(input); err != nil {
		recordTaskOperation("create", resultInvalid)
		return domain.Task{}, err
	}

	id, err := s.idGenerator.NewID()
	if err != nil {
		recordTaskOperation("create", resultError)
		return domain.Task{}, internalError("failed to generate task id", err)
	}

	task := domain.Task{
		ID:          domain.ID(id),
		Title:       input.Title,
		Description: input.Description,
		Status:      domain.StatusOpen,
		UserID:      owner.ID,
		CreatedAt:   s.clock.Now(),
	}

	if err := s.repo.Create(ctx, task); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"user_id": string(owner.ID),
			"action":  "task_create_failed",
		}).Errorf("create task failed: %v", err)
		recordTaskOperation("create", resultError)
		return domain.Task{}, internalError("failed to create task", err)
	}

	s.log.WithFields(ctx, logger.Fields{
		"task_id": id,
		"user_id": string(owner.ID),
		"action":  "task_created",
	}).Info("task created")
	recordTaskOperation("create", resultSuccess)

	return task, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, id string, owner userdomain.User) error {
	if err := requireOwner(owner); err != nil {
		return err
	}
	if !commoncrypto.IsValidID(id) {
		recordTaskOperation("delete", resultNotFound)
		return taskNotFound(id)
	}

	affected, err := s.repo.Delete(ctx, domain.ID(id), owner.ID)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"task_id": id,
			"user_id": string(owner.ID),
			"action":  "task_delete_failed",
		}).Errorf("delete task failed: %v", err)
		recordTaskOperation("delete", resultError)
		return internalError("failed to delete task", err)
	}
	if affected == 0 {
		s.log.WithFields(ctx, logger.Fields{
			"task_id": id,
			"user_id": string(owner.ID),
			"action":  "task_delete_not_found",
		}).Debug("delete task: not found")
		recordTaskOperation("delete", resultNotFound)
		return taskNotFound(id)
	}

	s.log.WithFields(ctx, logger.Fields{
		"task_id": id,
		"user_id": string(owner.ID),
		"action":  "task_deleted",
	}).Info("task deleted")
	recordTaskOperation("delete", resultSuccess)
	return nil
}

func (s *TaskService) UpdateTaskStatus(ctx context.Context, id string, status domain.Status, owner userdomain.User) (domain.Task, error) {
	if err := requireOwner(owner); err != nil {
		return domain.Task{}, err
	}
	if err := s.validator.Struct(UpdateTaskStatusInput{Status: string(status)}); err != nil {
		recordTaskOperation("update_status", resultInvalid)
		return domain.Task{}, err
	}

	task, err := s.getTaskByID(ctx, id, owner)
	if err != nil {
		recordTaskOperation("update_status", resultFor(err))
		return domain.Task{}, err
	}

	if err := s.repo.UpdateStatus(ctx, task.ID, status, owner.ID); err != nil {
		if errors.Is(err, taskrepo.ErrTaskNotFound) {
			recordTaskOperation("update_status", resultNotFound)
			return domain.Task{}, taskNotFound(id)
		}
		s.log.WithFields(ctx, logger.Fields{
			"task_id": id,
			"user_id": string(owner.ID),
			"action":  "task_update_status_failed",
		}).Errorf("update task status failed: %v", err)
		recordTaskOperation("update_status", resultError)
		return domain.Task{}, internalError("failed to update task status", err)
	}
	task.Status = status

	s.log.WithFields(ctx, logger.Fields{
		"task_id": id,
		"user_id": string(owner.ID),
		"status":  string(status),
		"action":  "task_status_updated",
	}).Info("task status updated")
	recordTaskOperation("update_status", resultSuccess)

	return task, nil
}

func requireOwner(owner userdomain.User) error {
	if owner.ID == "" {
		return commonerrors.ErrUnauthorized
	}
	return nil
}

func taskNotFound(id string) error {
	return commonerrors.ErrTaskNotFound.WithMessage(`Task with ID "` + id + `" not found`)
}

func internalError(message string, cause error) error {
	return commonerrors.ErrInternalError.WithMessage(message).WithCause(cause)
}

const (
	resultSuccess  = "success"
	resultInvalid  = "invalid"
	resultNotFound = "not_found"
	resultError    = "error"
)

func resultFor(err error) string {
	switch {
	case errors.Is(err, commonerrors.ErrTaskNotFound):
		return resultNotFound
	case errors.Is(err, commonerrors.ErrInternalError):
		return resultError
	default:
		return resultInvalid
	}
}

func recordTaskOperation(operation, result string) {
	metrics.TaskOperationsTotal.WithLabelValues(operation, result).Inc()
}
