package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlibekovAA/task-manager/internal/common/db/dbtest"
	"github.com/AlibekovAA/task-manager/internal/user/domain"
)

func TestSQLiteRepository_CreateAndFind(t *testing.T) {
	repo := NewSQLiteRepository(dbtest.NewSQLite(t))
	ctx := context.Background()

	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	user := domain.User{
		ID:           "5d9f7c4e-1111-4c1a-9a51-3a2b9f0c0001",
		Username:     "alice",
		PasswordHash: "hash",
		Salt:         "salt",
		CreatedAt:    created,
	}
	require.NoError(t, repo.Create(ctx, user))

	got, err := repo.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, "hash", got.PasswordHash)
	assert.Equal(t, "salt", got.Salt)
	assert.True(t, created.Equal(got.CreatedAt))
}

func TestSQLiteRepository_DuplicateUsername(t *testing.T) {
	repo := NewSQLiteRepository(dbtest.NewSQLite(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, domain.User{ID: "id-1", Username: "alice", PasswordHash: "h", Salt: "s"}))

	err := repo.Create(ctx, domain.User{ID: "id-2", Username: "alice", PasswordHash: "h2", Salt: "s2"})
	assert.ErrorIs(t, err, ErrUsernameAlreadyExists)
}

func TestSQLiteRepository_FindByUsernameNotFound(t *testing.T) {
	repo := NewSQLiteRepository(dbtest.NewSQLite(t))

	_, err := repo.FindByUsername(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
