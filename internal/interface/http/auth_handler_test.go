package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-account-service/internal/application"
	"github.com/oksasatya/go-account-service/internal/domain/entity"
	"github.com/oksasatya/go-account-service/internal/infrastructure/memory"
	"github.com/oksasatya/go-account-service/internal/infrastructure/persistence"
	"github.com/oksasatya/go-account-service/internal/interface/middleware"
	"github.com/oksasatya/go-account-service/pkg/helpers"
	"github.com/oksasatya/go-account-service/pkg/mailer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type body[T any] struct {
	Message string `json:"message"`
	Data    T      `json:"data"`
}

func newEngine(t *testing.T) (*gin.Engine, *memory.AccountStore) {
	t.Helper()
	logger, _ := test.NewNullLogger()
	store := memory.NewAccountStore()
	hasher := helpers.NewHasher("hash-secret")
	tokens := helpers.NewTokenIssuer("jwt-secret", time.Hour)
	repo := persistence.NewAccountRepository(persistence.Options{
		Store:    store,
		Hasher:   hasher,
		Notifier: mailer.NewLogNotifier(logger),
		Links:    mailer.NewLinkBuilder("http://client.test"),
		Logger:   logger,
	})
	h := NewAuthHandler(application.NewService(repo, hasher, tokens, logger), logger)

	r := gin.New()
	r.GET("/", Health)
	auth := r.Group("/api/auth")
	auth.POST("/register", h.Register)
	auth.POST("/login", h.Login)
	auth.POST("/activation", h.Activation)
	auth.GET("/me", middleware.Auth(tokens), h.Me)
	return r, store
}

func do(r *gin.Engine, method, path string, payload any, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	switch p := payload.(type) {
	case nil:
	case string:
		buf.WriteString(p)
	default:
		_ = json.NewEncoder(&buf).Encode(p)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) body[T] {
	t.Helper()
	var b body[T]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &b))
	return b
}

var registration = map[string]string{
	"fullname":        "Jane Doe",
	"username":        "janed",
	"email":           "jane@x.com",
	"password":        "Passw0rd",
	"confirmPassword": "Passw0rd",
}

func TestHealth(t *testing.T) {
	r, _ := newEngine(t)
	w := do(r, http.MethodGet, "/", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "server is running!", decode[any](t, w).Message)
}

func TestAccountLifecycleOverHTTP(t *testing.T) {
	r, _ := newEngine(t)

	w := do(r, http.MethodPost, "/api/auth/register", registration, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	reg := decode[entity.PublicAccount](t, w)
	assert.Equal(t, "Registration success", reg.Message)
	assert.False(t, reg.Data.IsActive)
	assert.NotContains(t, w.Body.String(), "Passw0rd")
	assert.NotContains(t, w.Body.String(), `"password"`)

	// inactive accounts cannot log in
	w = do(r, http.MethodPost, "/api/auth/login", map[string]string{"identifier": "janed", "password": "Passw0rd"}, "")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "User not found", decode[any](t, w).Message)

	w = do(r, http.MethodPost, "/api/auth/activation", map[string]string{"code": reg.Data.ActivationCode}, "")
	require.Equal(t, http.StatusOK, w.Code)
	act := decode[entity.PublicAccount](t, w)
	assert.Equal(t, "user successfully activated", act.Message)
	assert.True(t, act.Data.IsActive)

	w = do(r, http.MethodPost, "/api/auth/login", map[string]string{"identifier": "jane@x.com", "password": "Passw0rd"}, "")
	require.Equal(t, http.StatusOK, w.Code)
	login := decode[string](t, w)
	assert.Equal(t, "Login success", login.Message)
	require.NotEmpty(t, login.Data)

	w = do(r, http.MethodGet, "/api/auth/me", nil, login.Data)
	require.Equal(t, http.StatusOK, w.Code)
	me := decode[entity.PublicAccount](t, w)
	assert.Equal(t, "Success get user profile", me.Message)
	assert.Equal(t, reg.Data.ID, me.Data.ID)
	assert.Equal(t, "janed", me.Data.Username)
}

func TestRegisterValidationFailure(t *testing.T) {
	r, store := newEngine(t)
	in := map[string]string{}
	for k, v := range registration {
		in[k] = v
	}
	in["password"] = "passw0rd"
	in["confirmPassword"] = "passw0rd"

	w := do(r, http.MethodPost, "/api/auth/register", in, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode[any](t, w).Message, "uppercase")
	assert.Equal(t, 0, store.Len())
}

func TestRegisterDuplicate(t *testing.T) {
	r, store := newEngine(t)
	require.Equal(t, http.StatusOK, do(r, http.MethodPost, "/api/auth/register", registration, "").Code)

	w := do(r, http.MethodPost, "/api/auth/register", registration, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 1, store.Len())
}

func TestInvalidPayload(t *testing.T) {
	r, _ := newEngine(t)
	for _, path := range []string{"/api/auth/register", "/api/auth/login", "/api/auth/activation"} {
		w := do(r, http.MethodPost, path, "{not json", "")
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
		assert.Equal(t, "invalid payload", decode[any](t, w).Message, path)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	r, _ := newEngine(t)
	w := do(r, http.MethodPost, "/api/auth/register", registration, "")
	reg := decode[entity.PublicAccount](t, w)
	do(r, http.MethodPost, "/api/auth/activation", map[string]string{"code": reg.Data.ActivationCode}, "")

	w = do(r, http.MethodPost, "/api/auth/login", map[string]string{"identifier": "janed", "password": "Wrong123"}, "")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "User not found", decode[any](t, w).Message)
}

func TestMeRequiresToken(t *testing.T) {
	r, _ := newEngine(t)
	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodGet, "/api/auth/me", nil, "").Code)
	w := do(r, http.MethodGet, "/api/auth/me", nil, "garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid token", decode[any](t, w).Message)
}

func TestActivationUnknownCode(t *testing.T) {
	r, _ := newEngine(t)
	w := do(r, http.MethodPost, "/api/auth/activation", map[string]string{"code": "nope"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPost, "/api/auth/activation", map[string]string{}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
