package service

import (
	"errors"

	commonerrors "github.com/AlibekovAA/task-manager/internal/common/errors"
	userrepo "github.com/AlibekovAA/task-manager/internal/user/repository"
)

func internalError(message string, cause error) error {
	return commonerrors.ErrInternalError.WithMessage(message).WithCause(cause)
}

func isUserNotFound(err error) bool {
	return errors.Is(err, userrepo.ErrUserNotFound)
}
