package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/taskhub/backend/internal/model"
)

const apiVersion = "1.0.0"

// Health is the unauthenticated liveness endpoint.
func Health(environment string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, model.HealthResponse{
			Status:      "healthy",
			Environment: environment,
			Version:     apiVersion,
		})
	}
}

// Root returns API information. It sits behind the optional gate: an
// anonymous request gets the plain document, a valid token adds the
// caller's email, and a bad token is rejected like anywhere else.
func Root(c *gin.Context) {
	resp := model.RootResponse{
		Message: "Todo Backend REST API",
		Version: apiVersion,
		Endpoints: map[string]string{
			"authentication": "/api/auth",
			"tasks":          "/api/tasks",
			"openapi":        "/openapi.json",
		},
	}
	if user := GetAuthUser(c); user != nil {
		resp.AuthenticatedAs = user.Email
	}
	c.JSON(http.StatusOK, resp)
}
