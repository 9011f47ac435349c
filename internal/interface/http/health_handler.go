package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-account-service/pkg/response"
)

// Health GET /
func Health(c *gin.Context) {
	response.Success[any](c, http.StatusOK, nil, "server is running!")
}
