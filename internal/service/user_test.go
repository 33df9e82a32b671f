package service

import (
	"context"
	"ecommerce-api/internal/model"
	"ecommerce-api/internal/repository"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_Register(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(repository.NewUserRepository(db), newTestTokenManager())
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		user, err := svc.Register(ctx, "alice@example.com", "password123", "Alice")
		require.NoError(t, err)

		assert.NotZero(t, user.ID)
		assert.Equal(t, "alice@example.com", user.Email)
		assert.Equal(t, "Alice", user.FullName)
		assert.True(t, user.IsActive)
		// plaintext never stored
		assert.NotEqual(t, "password123", user.HashedPassword)
		assert.NotEmpty(t, user.HashedPassword)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		_, err := svc.Register(ctx, "alice@example.com", "different", "")
		assert.ErrorIs(t, err, ErrEmailTaken)
	})
}

func TestUserService_Login(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(repository.NewUserRepository(db), newTestTokenManager())
	ctx := context.Background()

	_, err := svc.Register(ctx, "bob@example.com", "hunter22", "Bob")
	require.NoError(t, err)

	t.Run("Success", func(t *testing.T) {
		token, err := svc.Login(ctx, "bob@example.com", "hunter22")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		_, err := svc.Login(ctx, "bob@example.com", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		_, err := svc.Login(ctx, "nobody@example.com", "hunter22")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestUserService_ResolveToken(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(repository.NewUserRepository(db), newTestTokenManager())
	ctx := context.Background()

	user, err := svc.Register(ctx, "carol@example.com", "password123", "")
	require.NoError(t, err)

	token, err := svc.Login(ctx, "carol@example.com", "password123")
	require.NoError(t, err)

	t.Run("Success", func(t *testing.T) {
		resolved, err := svc.ResolveToken(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, user.ID, resolved.ID)
	})

	t.Run("Garbage", func(t *testing.T) {
		_, err := svc.ResolveToken(ctx, "not-a-token")
		assert.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("UserDeleted", func(t *testing.T) {
		require.NoError(t, db.Delete(&model.User{}, user.ID).Error)

		_, err := svc.ResolveToken(ctx, token)
		assert.ErrorIs(t, err, ErrUnauthenticated)
	})
}
