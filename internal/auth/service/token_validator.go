package service

import (
	"context"

	authdomain "github.com/AlibekovAA/task-manager/internal/auth/domain"
	commonerrors "github.com/AlibekovAA/task-manager/internal/common/errors"
	"github.com/AlibekovAA/task-manager/internal/common/logger"
	userdomain "github.com/AlibekovAA/task-manager/internal/user/domain"
	userrepo "github.com/AlibekovAA/task-manager/internal/user/repository"
)

// TokenValidator resolves a verified token payload to its user.
type TokenValidator struct {
	repo userrepo.Repository
	log  *logger.Logger
}

func NewTokenValidator(repo userrepo.Repository, log *logger.Logger) *TokenValidator {
	return &TokenValidator{repo: repo, log: log}
}

func (v *TokenValidator) Validate(ctx context.Context, payload authdomain.TokenPayload) (userdomain.User, error) {
	user, err := v.repo.FindByUsername(ctx, payload.Username)
	if err != nil {
		if isUserNotFound(err) {
			v.log.WithFields(ctx, logger.Fields{
				"username": payload.Username,
				"action":   "token_user_not_found",
			}).Warn("token validation failed: user not found")
			return userdomain.User{}, commonerrors.ErrUnauthorized
		}
		v.log.WithFields(ctx, logger.Fields{
			"username": payload.Username,
			"action":   "token_user_lookup_failed",
		}).Errorf("token validation failed: %v", err)
		return userdomain.User{}, internalError("failed to resolve token user", err)
	}

	return user, nil
}
