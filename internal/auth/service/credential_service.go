package service

import (
	"context"
	"errors"

	authdomain "github.com/AlibekovAA/task-manager/internal/auth/domain"
	"github.com/AlibekovAA/task-manager/internal/common/clock"
	commoncrypto "github.com/AlibekovAA/task-manager/internal/common/crypto"
	commonerrors "github.com/AlibekovAA/task-manager/internal/common/errors"
	"github.com/AlibekovAA/task-manager/internal/common/logger"
	"github.com/AlibekovAA/task-manager/internal/common/validation"
	userdomain "github.com/AlibekovAA/task-manager/internal/user/domain"
	userrepo "github.com/AlibekovAA/task-manager/internal/user/repository"
)

type AccessTokenIssuer interface {
	IssueAccessToken(payload authdomain.TokenPayload) (string, string, error)
}

type CredentialService struct {
	repo        userrepo.Repository
	hasher      commoncrypto.PasswordHasher
	idGenerator commoncrypto.IDGenerator
	tokens      AccessTokenIssuer
	validator   *validation.Validator
	clock       clock.Clock
	log         *logger.Logger
}

func NewCredentialService(
	repo userrepo.Repository,
	hasher commoncrypto.PasswordHasher,
	idGenerator commoncrypto.IDGenerator,
	tokens AccessTokenIssuer,
	validator *validation.Validator,
	clock clock.Clock,
	log *logger.Logger,
) *CredentialService {
	return &CredentialService{
		repo:        repo,
		hasher:      hasher,
		idGenerator: idGenerator,
		tokens:      tokens,
		validator:   validator,
		clock:       clock,
		log:         log,
	}
}

func (s *CredentialService) Signup(ctx context.Context, input authdomain.AuthCredentials) error {
	s.log.WithFields(ctx, logger.Fields{
		"username": input.Username,
		"action":   "signup_attempt",
	}).Info("signup attempt")

	if err := s.validator.Struct(input); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "signup_validation_failed",
		}).Warnf("signup validation failed: %v", err)
		recordSignup(resultInvalid)
		return err
	}

	salt, err := s.hasher.GenerateSalt()
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "signup_salt_failed",
		}).Errorf("signup failed: salt generation error: %v", err)
		recordSignup(resultError)
		return internalError("failed to generate salt", err)
	}

	hash, err := s.HashPassword(input.Password, salt)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "signup_hash_failed",
		}).Errorf("signup failed: password hash error: %v", err)
		recordSignup(resultError)
		return internalError("failed to hash password", err)
	}

	id, err := s.idGenerator.NewID()
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "signup_id_generation_failed",
		}).Errorf("signup failed: id generation error: %v", err)
		recordSignup(resultError)
		return internalError("failed to generate user id", err)
	}

	user := userdomain.User{
		ID:           userdomain.ID(id),
		Username:     input.Username,
		PasswordHash: hash,
		Salt:         salt,
		CreatedAt:    s.clock.Now(),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, userrepo.ErrUsernameAlreadyExists) {
			s.log.WithFields(ctx, logger.Fields{
				"username": input.Username,
				"action":   "signup_username_exists",
			}).Warn("signup failed: username already exists")
			recordSignup(resultConflict)
			return commonerrors.ErrUsernameAlreadyExists.WithCause(err)
		}
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "signup_create_failed",
		}).Errorf("signup failed: %v", err)
		recordSignup(resultError)
		return internalError("failed to create user", err)
	}

	s.log.WithFields(ctx, logger.Fields{
		"username": user.Username,
		"user_id":  string(user.ID),
		"action":   "signup_success",
	}).Info("signup success")
	recordSignup(resultSuccess)

	return nil
}

// ValidateUserPassword reports whether the credentials match a stored user.
// An unknown username and a wrong password both yield ("", false, nil).
func (s *CredentialService) ValidateUserPassword(ctx context.Context, input authdomain.AuthCredentials) (string, bool, error) {
	user, err := s.repo.FindByUsername(ctx, input.Username)
	if err != nil {
		if isUserNotFound(err) {
			return "", false, nil
		}
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "validate_password_lookup_failed",
		}).Errorf("password validation failed: %v", err)
		return "", false, internalError("failed to load user", err)
	}

	hash, err := s.HashPassword(input.Password, user.Salt)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "validate_password_hash_failed",
		}).Errorf("password validation failed: hash error: %v", err)
		return "", false, internalError("failed to hash password", err)
	}

	if !commoncrypto.EqualHashes(hash, user.PasswordHash) {
		return "", false, nil
	}

	return user.Username, true, nil
}

func (s *CredentialService) HashPassword(password, salt string) (string, error) {
	return s.hasher.Hash(password, salt)
}

func (s *CredentialService) SignIn(ctx context.Context, input authdomain.AuthCredentials) (string, error) {
	s.log.WithFields(ctx, logger.Fields{
		"username": input.Username,
		"action":   "signin_attempt",
	}).Info("signin attempt")

	if err := s.validator.Struct(input); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "signin_validation_failed",
		}).Warnf("signin validation failed: %v", err)
		recordSignin(resultInvalid)
		return "", err
	}

	username, ok, err := s.ValidateUserPassword(ctx, input)
	if err != nil {
		recordSignin(resultError)
		return "", err
	}
	if !ok {
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "signin_invalid_credentials",
		}).Warn("signin failed: invalid credentials")
		recordSignin(resultInvalid)
		return "", commonerrors.ErrInvalidCredentials
	}

	token, jti, err := s.tokens.IssueAccessToken(authdomain.TokenPayload{Username: username})
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"username": username,
			"action":   "signin_token_issue_failed",
		}).Errorf("signin failed: token issue error: %v", err)
		recordSignin(resultError)
		return "", internalError("failed to issue access token", err)
	}

	s.log.WithFields(ctx, logger.Fields{
		"username": username,
		"jti":      jti,
		"action":   "signin_success",
	}).Info("signin success")
	recordSignin(resultSuccess)

	return token, nil
}
