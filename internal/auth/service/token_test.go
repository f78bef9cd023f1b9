package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authdomain "github.com/AlibekovAA/task-manager/internal/auth/domain"
	"github.com/AlibekovAA/task-manager/internal/common/clock"
	commonerrors "github.com/AlibekovAA/task-manager/internal/common/errors"
	"github.com/AlibekovAA/task-manager/internal/common/jwtverify"
	userdomain "github.com/AlibekovAA/task-manager/internal/user/domain"
	userrepo "github.com/AlibekovAA/task-manager/internal/user/repository"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestTokenIssuer_RoundTrip(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, &mockIDGenerator{}, time.Hour, clock.NewRealClock())

	token, jti, err := issuer.IssueAccessToken(authdomain.TokenPayload{Username: "alice"})
	require.NoError(t, err)
	assert.Equal(t, "00000000-0000-4000-8000-000000000001", jti)

	claims, err := jwtverify.ParseToken(token, []byte(testSecret))
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, jti, claims.JTI)
	assert.WithinDuration(t, claims.IssuedAt.Add(time.Hour), claims.ExpiresAt, time.Second)
}

func TestTokenIssuer_Expired(t *testing.T) {
	past := clock.NewMockClock(time.Now().Add(-2 * time.Hour))
	issuer := NewTokenIssuer(testSecret, &mockIDGenerator{}, time.Hour, past)

	token, _, err := issuer.IssueAccessToken(authdomain.TokenPayload{Username: "alice"})
	require.NoError(t, err)

	_, err = jwtverify.ParseToken(token, []byte(testSecret))
	assert.ErrorIs(t, err, commonerrors.ErrInvalidToken)
}

func TestTokenIssuer_IDFailure(t *testing.T) {
	ids := &mockIDGenerator{newIDFunc: func() (string, error) { return "", errors.New("entropy") }}
	issuer := NewTokenIssuer(testSecret, ids, time.Hour, clock.NewRealClock())

	_, _, err := issuer.IssueAccessToken(authdomain.TokenPayload{Username: "alice"})
	assert.Error(t, err)
}

func TestTokenValidator_Validate(t *testing.T) {
	stored := userdomain.User{ID: "u-1", Username: "testUser", PasswordHash: "h", Salt: "s"}
	repo := &mockUserRepo{
		findByUsernameFunc: func(ctx context.Context, username string) (userdomain.User, error) {
			switch username {
			case "testUser":
				return stored, nil
			case "broken":
				return userdomain.User{}, errors.New("db down")
			default:
				return userdomain.User{}, userrepo.ErrUserNotFound
			}
		},
	}
	v := NewTokenValidator(repo, testLogger())
	ctx := context.Background()

	user, err := v.Validate(ctx, authdomain.TokenPayload{Username: "testUser"})
	require.NoError(t, err)
	assert.Equal(t, stored, user)

	_, err = v.Validate(ctx, authdomain.TokenPayload{Username: "ghost"})
	assert.ErrorIs(t, err, commonerrors.ErrUnauthorized)

	_, err = v.Validate(ctx, authdomain.TokenPayload{Username: "broken"})
	assert.ErrorIs(t, err, commonerrors.ErrInternalError)
}
