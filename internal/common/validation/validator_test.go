package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	commonerrors "github.com/AlibekovAA/task-manager/internal/common/errors"
)

type credentials struct {
	Username string `json:"username" validate:"required,min=4,max=20"`
	Password string `json:"password" validate:"required,min=8,max=20,strongpassword"`
}

type statusInput struct {
	Status string `json:"status" validate:"required,taskstatus"`
}

type titled struct {
	Title string `json:"title" validate:"notblank"`
}

func TestValidator_Credentials(t *testing.T) {
	v := New()

	tests := []struct {
		name    string
		in      credentials
		wantMsg string
	}{
		{"valid", credentials{"alice", "Passw0rd"}, ""},
		{"valid symbol", credentials{"alice", "Password!"}, ""},
		{"empty username", credentials{"", "Passw0rd"}, "username should not be empty"},
		{"short username", credentials{"abc", "Passw0rd"}, "username must be at least 4 characters"},
		{"long username", credentials{"abcdefghijklmnopqrstu", "Passw0rd"}, "username must be at most 20 characters"},
		{"short password", credentials{"alice", "Pa0"}, "password must be at least 8 characters"},
		{"long password", credentials{"alice", "Passw0rdPassw0rdPassw0rd"}, "password must be at most 20 characters"},
		{"weak password", credentials{"alice", "password"}, "password too weak"},
		{"no upper", credentials{"alice", "passw0rd"}, "password too weak"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.in)
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, commonerrors.ErrValidation))

			domainErr, ok := commonerrors.AsDomainError(err)
			require.True(t, ok)
			assert.Equal(t, tt.wantMsg, domainErr.Message())
			assert.Equal(t, 400, domainErr.HTTPStatus())
		})
	}
}

func TestValidator_TaskStatus(t *testing.T) {
	v := New()

	for _, s := range []string{"OPEN", "IN_PROGRESS", "DONE"} {
		assert.NoError(t, v.Struct(statusInput{Status: s}), s)
	}
	for _, s := range []string{"", "open", "CLOSED"} {
		assert.Error(t, v.Struct(statusInput{Status: s}), s)
	}
}

func TestValidator_NotBlank(t *testing.T) {
	v := New()

	assert.NoError(t, v.Struct(titled{Title: "x"}))
	assert.Error(t, v.Struct(titled{Title: "   "}))
	assert.Error(t, v.Struct(titled{Title: ""}))
}

func TestIsStrongPassword(t *testing.T) {
	assert.True(t, IsStrongPassword("Abcdefg1"))
	assert.True(t, IsStrongPassword("Abcdefg#"))
	assert.False(t, IsStrongPassword("Abcdefg_"))
	assert.False(t, IsStrongPassword("ABCDEFG1"))
	assert.False(t, IsStrongPassword("abcdefg1"))
}
