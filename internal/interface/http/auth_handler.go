package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-account-service/internal/application"
	"github.com/oksasatya/go-account-service/internal/interface/middleware"
	"github.com/oksasatya/go-account-service/pkg/apperror"
	"github.com/oksasatya/go-account-service/pkg/response"
)

type AuthHandler struct {
	Svc    *application.Service
	Logger *logrus.Logger
}

func NewAuthHandler(svc *application.Service, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger}
}

type activationRequest struct {
	Code string `json:"code"`
}

// Register POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req application.RegisterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload")
		return
	}
	a, err := h.Svc.Register(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, a, "Registration success")
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req application.LoginInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload")
		return
	}
	token, err := h.Svc.Login(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, token, "Login success")
}

// Me GET /api/auth/me (bearer auth)
func (h *AuthHandler) Me(c *gin.Context) {
	a, err := h.Svc.Me(c.Request.Context(), c.GetString(middleware.CtxAccountIDKey))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, a, "Success get user profile")
}

// Activation POST /api/auth/activation {code}
func (h *AuthHandler) Activation(c *gin.Context) {
	var req activationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload")
		return
	}
	a, err := h.Svc.Activate(c.Request.Context(), req.Code)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, a, "user successfully activated")
}

func (h *AuthHandler) fail(c *gin.Context, err error) {
	if h.Logger != nil && apperror.KindOf(err) == apperror.KindUnknown {
		h.Logger.WithError(err).WithFields(logrus.Fields{
			"path":       c.FullPath(),
			"request_id": c.GetString("request_id"),
		}).Error("request failed")
	}
	response.FromError(c, err)
}
