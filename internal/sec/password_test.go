package sec

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	t.Parallel()

	t.Run("string password", func(t *testing.T) {
		t.Parallel()
		hash, err := HashPassword("mypassword")
		require.NoError(t, err)
		assert.NotEmpty(t, hash)
	})

	t.Run("byte slice password", func(t *testing.T) {
		t.Parallel()
		hash, err := HashPassword([]byte("mypassword"))
		require.NoError(t, err)
		assert.NotEmpty(t, hash)
	})

	t.Run("salted round trip", func(t *testing.T) {
		t.Parallel()
		first, err := HashPassword("mypassword")
		require.NoError(t, err)
		second, err := HashPassword("mypassword")
		require.NoError(t, err)

		// The embedded salt makes repeated hashes differ, but both verify.
		assert.NotEqual(t, first, second)
		assert.NoError(t, ComparePassword("mypassword", first))
		assert.NoError(t, ComparePassword("mypassword", second))
	})
}

func TestComparePassword(t *testing.T) {
	t.Parallel()

	// Pre-generate a hash for testing
	password := "correctpassword"
	hash, err := HashPassword(password)
	require.NoError(t, err)

	t.Run("correct password string", func(t *testing.T) {
		t.Parallel()
		err := ComparePassword(password, hash)
		assert.NoError(t, err)
	})

	t.Run("correct password bytes", func(t *testing.T) {
		t.Parallel()
		err := ComparePassword([]byte(password), hash)
		assert.NoError(t, err)
	})

	t.Run("incorrect password", func(t *testing.T) {
		t.Parallel()
		err := ComparePassword("wrongpassword", hash)
		assert.Error(t, err)
	})

	t.Run("single character mutations", func(t *testing.T) {
		t.Parallel()
		for i := range password {
			mutated := []byte(password)
			mutated[i]++
			assert.Error(t, ComparePassword(mutated, hash))
		}
	})
}

func TestHasher(t *testing.T) {
	t.Parallel()

	hasher := NewHasher(2)

	t.Run("hash and compare", func(t *testing.T) {
		t.Parallel()
		hash, err := hasher.Hash(t.Context(), "mypassword")
		require.NoError(t, err)
		assert.NoError(t, hasher.Compare(t.Context(), "mypassword", hash))
		assert.Error(t, hasher.Compare(t.Context(), "notmypassword", hash))
	})

	t.Run("canceled context", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(t.Context())
		cancel()
		_, err := hasher.Hash(ctx, "mypassword")
		require.ErrorIs(t, err, context.Canceled)
	})
}
