package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-account-service/pkg/apperror"
	"github.com/oksasatya/go-account-service/pkg/helpers"
	"github.com/oksasatya/go-account-service/pkg/response"
)

const (
	CtxAccountIDKey   = "accountID"
	CtxAccountRoleKey = "accountRole"
)

// Auth validates the bearer token in the Authorization header and sets the
// account id and role in the Gin context on success. Failures answer 401.
func Auth(tokens *helpers.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			response.AbortWithError(c, apperror.InvalidToken(errors.New("missing bearer token")))
			return
		}
		claims, err := tokens.Verify(token)
		if err != nil {
			response.AbortWithError(c, err)
			return
		}
		c.Set(CtxAccountIDKey, claims.ID)
		c.Set(CtxAccountRoleKey, claims.Role)
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
