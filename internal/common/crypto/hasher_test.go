package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArgon2Hasher_DeterministicForSameSalt(t *testing.T) {
	h := NewArgon2Hasher()

	first, err := h.Hash("Secret123", "fixed-salt")
	require.NoError(t, err)
	second, err := h.Hash("Secret123", "fixed-salt")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.NotContains(t, first, "Secret123")
}

func TestArgon2Hasher_DifferentSaltDifferentHash(t *testing.T) {
	h := NewArgon2Hasher()

	a, err := h.Hash("Secret123", "salt-a")
	require.NoError(t, err)
	b, err := h.Hash("Secret123", "salt-b")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestArgon2Hasher_EmptySalt(t *testing.T) {
	_, err := NewArgon2Hasher().Hash("Secret123", "")
	assert.ErrorIs(t, err, ErrEmptySalt)
}

func TestArgon2Hasher_GenerateSaltIsRandom(t *testing.T) {
	h := NewArgon2Hasher()

	seen := make(map[string]struct{})
	for i := 0; i < 20; i++ {
		salt, err := h.GenerateSalt()
		require.NoError(t, err)
		require.NotEmpty(t, salt)
		_, dup := seen[salt]
		require.False(t, dup, "salt repeated: %s", salt)
		seen[salt] = struct{}{}
	}
}

func TestEqualHashes(t *testing.T) {
	assert.True(t, EqualHashes("abc", "abc"))
	assert.False(t, EqualHashes("abc", "abd"))
	assert.False(t, EqualHashes("abc", "abcd"))
}

func TestUUIDGenerator(t *testing.T) {
	g := NewUUIDGenerator()
	id, err := g.NewID()
	require.NoError(t, err)
	assert.True(t, IsValidID(id))
	assert.False(t, IsValidID("not-a-uuid"))
	assert.False(t, IsValidID(""))
}
