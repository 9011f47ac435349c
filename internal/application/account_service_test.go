package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-account-service/internal/domain/entity"
	"github.com/oksasatya/go-account-service/internal/domain/repository"
	"github.com/oksasatya/go-account-service/internal/infrastructure/memory"
	"github.com/oksasatya/go-account-service/internal/infrastructure/persistence"
	"github.com/oksasatya/go-account-service/pkg/apperror"
	"github.com/oksasatya/go-account-service/pkg/helpers"
	"github.com/oksasatya/go-account-service/pkg/mailer"
)

type countingNotifier struct {
	sends int
}

func (n *countingNotifier) Render(string, map[string]any) (string, error) { return "", nil }

func (n *countingNotifier) Send(context.Context, string, string, string, string) error {
	n.sends++
	return nil
}

type harness struct {
	svc      *Service
	store    *memory.AccountStore
	hasher   *helpers.Hasher
	tokens   *helpers.TokenIssuer
	notifier *countingNotifier
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	logger, _ := test.NewNullLogger()
	store := memory.NewAccountStore()
	hasher := helpers.NewHasher("hash-secret")
	tokens := helpers.NewTokenIssuer("jwt-secret", time.Hour)
	notifier := &countingNotifier{}
	r := persistence.NewAccountRepository(persistence.Options{
		Store:    store,
		Hasher:   hasher,
		Notifier: notifier,
		Links:    mailer.NewLinkBuilder("http://client.test"),
		Logger:   logger,
	})
	return &harness{
		svc:      NewService(r, hasher, tokens, logger),
		store:    store,
		hasher:   hasher,
		tokens:   tokens,
		notifier: notifier,
	}
}

func validInput() RegisterInput {
	return RegisterInput{
		Fullname:        "Jane Doe",
		Username:        "janed",
		Email:           "jane@x.com",
		Password:        "Passw0rd",
		ConfirmPassword: "Passw0rd",
	}
}

func TestRegisterCreatesPendingAccount(t *testing.T) {
	h := newHarness(t)

	a, err := h.svc.Register(context.Background(), validInput())
	require.NoError(t, err)
	assert.False(t, a.IsActive)
	assert.Equal(t, entity.RoleUser, a.Role)

	stored, err := h.store.FindByID(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Equal(t, h.hasher.Hash("Passw0rd"), stored.PasswordDigest)
	assert.Equal(t, h.hasher.Hash(a.ID), stored.ActivationCode)
	assert.Equal(t, 1, h.notifier.sends)
}

func TestRegisterValidation(t *testing.T) {
	cases := map[string]func(*RegisterInput){
		"missing fullname": func(in *RegisterInput) { in.Fullname = "" },
		"missing username": func(in *RegisterInput) { in.Username = "" },
		"bad email":        func(in *RegisterInput) { in.Email = "jane" },
		"short password":   func(in *RegisterInput) { in.Password, in.ConfirmPassword = "Pa0", "Pa0" },
		"no uppercase":     func(in *RegisterInput) { in.Password, in.ConfirmPassword = "passw0rd", "passw0rd" },
		"no digit":         func(in *RegisterInput) { in.Password, in.ConfirmPassword = "Password", "Password" },
		"confirm mismatch": func(in *RegisterInput) { in.ConfirmPassword = "Passw0rd!" },
		"confirm missing":  func(in *RegisterInput) { in.ConfirmPassword = "" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			h := newHarness(t)
			in := validInput()
			mutate(&in)

			_, err := h.svc.Register(context.Background(), in)
			require.Error(t, err)
			assert.ErrorIs(t, err, apperror.ErrValidation)
			assert.Equal(t, 0, h.store.Len())
			assert.Equal(t, 0, h.notifier.sends)
		})
	}
}

func TestRegisterValidationMessage(t *testing.T) {
	h := newHarness(t)
	in := validInput()
	in.Password, in.ConfirmPassword = "password1", "password1"

	_, err := h.svc.Register(context.Background(), in)
	assert.EqualError(t, err, "password must contain at least one uppercase letter")

	var appErr *apperror.Error
	require.True(t, errors.As(err, &appErr))
	assert.Contains(t, appErr.Fields, "password")
}

func TestRegisterDuplicateIsConflict(t *testing.T) {
	h := newHarness(t)
	_, err := h.svc.Register(context.Background(), validInput())
	require.NoError(t, err)

	sameEmail := validInput()
	sameEmail.Username = "other"
	_, err = h.svc.Register(context.Background(), sameEmail)
	assert.ErrorIs(t, err, apperror.ErrConflict)

	sameUsername := validInput()
	sameUsername.Email = "other@x.com"
	_, err = h.svc.Register(context.Background(), sameUsername)
	assert.ErrorIs(t, err, apperror.ErrConflict)

	assert.Equal(t, 1, h.store.Len())
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	h := newHarness(t)
	_, err := h.svc.Register(context.Background(), validInput())
	require.NoError(t, err)

	active := validInput()
	active.Username, active.Email = "johnd", "john@x.com"
	acc, err := h.svc.Register(context.Background(), active)
	require.NoError(t, err)
	_, err = h.svc.Activate(context.Background(), acc.ActivationCode)
	require.NoError(t, err)

	attempts := []LoginInput{
		{Identifier: "unknown@x.com", Password: "anything"},
		{Identifier: "jane@x.com", Password: "Passw0rd"},
		{Identifier: "john@x.com", Password: "wrong"},
	}
	for _, in := range attempts {
		_, err := h.svc.Login(context.Background(), in)
		require.Error(t, err, in.Identifier)
		assert.ErrorIs(t, err, apperror.ErrAuthentication)
		assert.Equal(t, "User not found", err.Error())
	}
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	h := newHarness(t)
	acc, err := h.svc.Register(context.Background(), validInput())
	require.NoError(t, err)
	_, err = h.svc.Activate(context.Background(), acc.ActivationCode)
	require.NoError(t, err)

	for _, identifier := range []string{"janed", "jane@x.com"} {
		tok, err := h.svc.Login(context.Background(), LoginInput{Identifier: identifier, Password: "Passw0rd"})
		require.NoError(t, err)

		claims, err := h.tokens.Verify(tok)
		require.NoError(t, err)
		assert.Equal(t, acc.ID, claims.ID)
		assert.Equal(t, "user", claims.Role)
	}
}

func TestActivateIsIdempotent(t *testing.T) {
	h := newHarness(t)
	acc, err := h.svc.Register(context.Background(), validInput())
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		a, err := h.svc.Activate(context.Background(), acc.ActivationCode)
		require.NoError(t, err)
		assert.True(t, a.IsActive)
		assert.Equal(t, acc.ID, a.ID)
	}
}

func TestActivateUnknownCode(t *testing.T) {
	h := newHarness(t)

	_, err := h.svc.Activate(context.Background(), "nonexistent-code")
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = h.svc.Activate(context.Background(), "")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestMe(t *testing.T) {
	h := newHarness(t)
	acc, err := h.svc.Register(context.Background(), validInput())
	require.NoError(t, err)

	me, err := h.svc.Me(context.Background(), acc.ID)
	require.NoError(t, err)
	assert.Equal(t, "janed", me.Username)

	_, err = h.svc.Me(context.Background(), "missing")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

type failingRepo struct {
	repository.AccountRepository
	err error
}

func (f failingRepo) FindByIdentifier(context.Context, string, bool) (*entity.Account, error) {
	return nil, f.err
}

func TestLoginStorageErrorIsNotAuthentication(t *testing.T) {
	h := newHarness(t)
	h.svc.Repo = failingRepo{err: errors.New("connection refused")}

	_, err := h.svc.Login(context.Background(), LoginInput{Identifier: "janed", Password: "Passw0rd"})
	require.Error(t, err)
	assert.Equal(t, apperror.KindUnknown, apperror.KindOf(err))
}

func TestEndToEndScenario(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	acc, err := h.svc.Register(ctx, validInput())
	require.NoError(t, err)
	assert.False(t, acc.IsActive)

	activated, err := h.svc.Activate(ctx, acc.ActivationCode)
	require.NoError(t, err)
	assert.True(t, activated.IsActive)

	tok, err := h.svc.Login(ctx, LoginInput{Identifier: "janed", Password: "Passw0rd"})
	require.NoError(t, err)
	_, err = h.tokens.Verify(tok)
	assert.NoError(t, err)
}
