// Package storetest holds the behaviour every repository.AccountStore must
// share. Each store package runs it against its own backend.
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-account-service/internal/domain/entity"
	"github.com/oksasatya/go-account-service/internal/domain/repository"
)

// Factory returns an empty store. It is called once per subtest.
type Factory func(t *testing.T) repository.AccountStore

func account(id, username, email string) *entity.Account {
	now := time.Now().UTC().Truncate(time.Millisecond)
	return &entity.Account{
		ID:             id,
		Fullname:       "Full " + username,
		Username:       username,
		Email:          email,
		PasswordDigest: "digest-" + id,
		Role:           entity.RoleUser,
		ProfilePicture: "user.jpg",
		ActivationCode: "code-" + id,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// RunAccountStore runs the shared store behaviour against newStore.
func RunAccountStore(t *testing.T, newStore Factory) {
	t.Run("insert then find by id", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)
		in := account("a1", "jane", "jane@x.com")
		require.NoError(t, s.Insert(ctx, in))

		got, err := s.FindByID(ctx, "a1")
		require.NoError(t, err)
		assert.Equal(t, in.Fullname, got.Fullname)
		assert.Equal(t, in.Username, got.Username)
		assert.Equal(t, in.Email, got.Email)
		assert.Equal(t, in.PasswordDigest, got.PasswordDigest)
		assert.Equal(t, entity.RoleUser, got.Role)
		assert.Equal(t, "user.jpg", got.ProfilePicture)
		assert.Equal(t, "code-a1", got.ActivationCode)
		assert.False(t, got.IsActive)
		assert.WithinDuration(t, in.CreatedAt, got.CreatedAt, time.Second)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := newStore(t).FindByID(context.Background(), "missing")
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("username and email are unique", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)
		require.NoError(t, s.Insert(ctx, account("a1", "jane", "jane@x.com")))

		assert.ErrorIs(t, s.Insert(ctx, account("a2", "jane", "other@x.com")), repository.ErrDuplicate)
		assert.ErrorIs(t, s.Insert(ctx, account("a3", "other", "jane@x.com")), repository.ErrDuplicate)

		_, err := s.FindByID(ctx, "a2")
		assert.ErrorIs(t, err, repository.ErrNotFound)
		_, err = s.FindByID(ctx, "a3")
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("find by email or username", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)
		require.NoError(t, s.Insert(ctx, account("a1", "jane", "jane@x.com")))
		require.NoError(t, s.Insert(ctx, account("a2", "john", "john@x.com")))

		byEmail, err := s.FindByIdentifier(ctx, "john@x.com", false)
		require.NoError(t, err)
		assert.Equal(t, "a2", byEmail.ID)

		byName, err := s.FindByIdentifier(ctx, "jane", false)
		require.NoError(t, err)
		assert.Equal(t, "a1", byName.ID)

		_, err = s.FindByIdentifier(ctx, "JANE", false)
		assert.ErrorIs(t, err, repository.ErrNotFound)
		_, err = s.FindByIdentifier(ctx, "nobody", false)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("active only filter", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)
		require.NoError(t, s.Insert(ctx, account("a1", "jane", "jane@x.com")))

		_, err := s.FindByIdentifier(ctx, "jane", true)
		assert.ErrorIs(t, err, repository.ErrNotFound)

		_, err = s.ActivateByCode(ctx, "code-a1")
		require.NoError(t, err)

		got, err := s.FindByIdentifier(ctx, "jane@x.com", true)
		require.NoError(t, err)
		assert.True(t, got.IsActive)
	})

	t.Run("activate is idempotent", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)
		in := account("a1", "jane", "jane@x.com")
		require.NoError(t, s.Insert(ctx, in))
		require.NoError(t, s.Insert(ctx, account("a2", "john", "john@x.com")))

		for i := 0; i < 2; i++ {
			got, err := s.ActivateByCode(ctx, "code-a1")
			require.NoError(t, err)
			assert.Equal(t, "a1", got.ID)
			assert.True(t, got.IsActive)
			assert.False(t, got.UpdatedAt.Before(in.CreatedAt.Add(-time.Second)))
		}

		other, err := s.FindByID(ctx, "a2")
		require.NoError(t, err)
		assert.False(t, other.IsActive)
	})

	t.Run("activate unknown code", func(t *testing.T) {
		_, err := newStore(t).ActivateByCode(context.Background(), "nope")
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}
