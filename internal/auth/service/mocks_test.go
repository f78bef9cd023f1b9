package service

import (
	"context"
	"io"

	authdomain "github.com/AlibekovAA/task-manager/internal/auth/domain"
	"github.com/AlibekovAA/task-manager/internal/common/logger"
	userdomain "github.com/AlibekovAA/task-manager/internal/user/domain"
	userrepo "github.com/AlibekovAA/task-manager/internal/user/repository"
)

type mockUserRepo struct {
	createFunc         func(ctx context.Context, user userdomain.User) error
	findByUsernameFunc func(ctx context.Context, username string) (userdomain.User, error)
}

func (m *mockUserRepo) Create(ctx context.Context, user userdomain.User) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, user)
	}
	return nil
}

func (m *mockUserRepo) FindByUsername(ctx context.Context, username string) (userdomain.User, error) {
	if m.findByUsernameFunc != nil {
		return m.findByUsernameFunc(ctx, username)
	}
	return userdomain.User{}, userrepo.ErrUserNotFound
}

type mockHasher struct {
	generateSaltFunc func() (string, error)
	hashFunc         func(password, salt string) (string, error)
}

func (m *mockHasher) GenerateSalt() (string, error) {
	if m.generateSaltFunc != nil {
		return m.generateSaltFunc()
	}
	return "salt", nil
}

func (m *mockHasher) Hash(password, salt string) (string, error) {
	if m.hashFunc != nil {
		return m.hashFunc(password, salt)
	}
	return "hash:" + password + ":" + salt, nil
}

type mockIDGenerator struct {
	newIDFunc func() (string, error)
}

func (m *mockIDGenerator) NewID() (string, error) {
	if m.newIDFunc != nil {
		return m.newIDFunc()
	}
	return "00000000-0000-4000-8000-000000000001", nil
}

type mockTokenIssuer struct {
	issueFunc func(payload authdomain.TokenPayload) (string, string, error)
}

func (m *mockTokenIssuer) IssueAccessToken(payload authdomain.TokenPayload) (string, string, error) {
	if m.issueFunc != nil {
		return m.issueFunc(payload)
	}
	return "token-for-" + payload.Username, "jti", nil
}

func testLogger() *logger.Logger {
	return logger.NewWithWriter(io.Discard, "test", "error")
}
