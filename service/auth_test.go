package service

import (
	"context"
	"errors"
	"testing"
	"time"

	dmn "github.com/beka-birhanu/backtracking-maze/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuth(t *testing.T) {
	const password = "correct-Horse-battery-staple-42"
	ctx := context.Background()
	tokenizer := &fakeTokenizer{}
	auth, err := NewAuthService(newMemUserRepo(), tokenizer, time.Hour, nopLogger{})
	require.NoError(t, err)

	user, err := auth.Register(ctx, "maze_runner", password)
	require.NoError(t, err)

	t.Run("Username must be free", func(t *testing.T) {
		_, err := auth.Register(ctx, "maze_runner", password)
		assert.ErrorIs(t, err, dmn.ErrUsernameTaken)
	})

	t.Run("Weak password is rejected", func(t *testing.T) {
		_, err := auth.Register(ctx, "another_one", "12345")
		assert.ErrorIs(t, err, dmn.ErrWeakPassword)
	})

	t.Run("Sign in issues a token", func(t *testing.T) {
		signedIn, token, err := auth.SignIn(ctx, "maze_runner", password)
		require.NoError(t, err)
		assert.Equal(t, user.ID, signedIn.ID)
		assert.Equal(t, "token-for-maze_runner", token)
		assert.Equal(t, time.Hour, tokenizer.ttl)
		assert.Equal(t, user.ID.String(), tokenizer.claims["userID"])
	})

	t.Run("Bad credentials", func(t *testing.T) {
		_, _, err := auth.SignIn(ctx, "maze_runner", "wrong-password")
		assert.ErrorIs(t, err, dmn.ErrInvalidCredentials)

		_, _, err = auth.SignIn(ctx, "nobody", password)
		assert.ErrorIs(t, err, dmn.ErrInvalidCredentials)
	})

	t.Run("Tokenizer failure", func(t *testing.T) {
		tokenizer.err = errors.New("signing failed")
		defer func() { tokenizer.err = nil }()
		_, _, err := auth.SignIn(ctx, "maze_runner", password)
		assert.EqualError(t, err, "signing failed")
	})

	t.Run("Missing dependencies", func(t *testing.T) {
		_, err := NewAuthService(nil, tokenizer, time.Hour, nopLogger{})
		assert.ErrorIs(t, err, ErrMissingDependency)
	})
}
