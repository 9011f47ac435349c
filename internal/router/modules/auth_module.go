package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-account-service/internal/interface/http"
	"github.com/oksasatya/go-account-service/internal/interface/middleware"
	"github.com/oksasatya/go-account-service/pkg/helpers"
)

// AuthModule wires the account lifecycle handlers
// Public: POST /auth/register, POST /auth/login, POST /auth/activation
// Protected: GET /auth/me
type AuthModule struct {
	Handler *handlers.AuthHandler
	Tokens  *helpers.TokenIssuer
}

func NewAuthModule(h *handlers.AuthHandler, tokens *helpers.TokenIssuer) *AuthModule {
	return &AuthModule{Handler: h, Tokens: tokens}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	auth.POST("/register", m.Handler.Register)
	auth.POST("/login", m.Handler.Login)
	auth.POST("/activation", m.Handler.Activation)

	protected := auth.Group("/")
	protected.Use(middleware.Auth(m.Tokens))
	{
		protected.GET("/me", m.Handler.Me)
	}
}
