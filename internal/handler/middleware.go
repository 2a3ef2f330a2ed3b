package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/taskhub/backend/internal/auth"
	"github.com/taskhub/backend/internal/model"
)

const authUserKey = "auth_user"

// AuthMiddleware is the authentication gate. It extracts the bearer
// token, verifies it and stores the proven identity in the request
// context. Missing, malformed, tampered and expired credentials all
// produce the same 401; downstream handlers only ever see an identity
// that passed verification.
func AuthMiddleware(tokens *auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		token, ok := bearerToken(c)
		if !ok {
			abortUnauthorized(c)
			return
		}

		claims, err := tokens.Verify(token)
		if err != nil {
			abortUnauthorized(c)
			return
		}

		c.Set(authUserKey, &model.AuthUser{ID: claims.Subject, Email: claims.Email})
		c.Next()
	}
}

// OptionalAuthMiddleware lets anonymous requests through without an
// identity but still rejects a credential that is present and invalid.
func OptionalAuthMiddleware(tokens *auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.Next()
			return
		}

		claims, err := tokens.Verify(token)
		if err != nil {
			abortUnauthorized(c)
			return
		}

		c.Set(authUserKey, &model.AuthUser{ID: claims.Subject, Email: claims.Email})
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	return token, token != ""
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, model.ErrorResponse{
		Error:   model.CodeUnauthorized,
		Message: "Missing or invalid authentication token",
	})
}

// GetAuthUser returns the identity stored by the gate, or nil on
// routes the gate did not run for.
func GetAuthUser(c *gin.Context) *model.AuthUser {
	if value, ok := c.Get(authUserKey); ok {
		if user, ok := value.(*model.AuthUser); ok {
			return user
		}
	}
	return nil
}

func CORSMiddleware(allowedOrigins []string) gin.HandlerFunc {
	originMap := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		trimmed := strings.TrimSpace(origin)
		if trimmed == "" {
			continue
		}
		originMap[trimmed] = struct{}{}
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			if _, ok := originMap[origin]; ok {
				c.Header("Access-Control-Allow-Origin", origin)
				c.Header("Vary", "Origin")
				c.Header("Access-Control-Allow-Credentials", "true")
				c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type")
				c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			}
		}

		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// RecoveryMiddleware catches panics anywhere below it, logs the full
// detail server-side and returns the sanitized 500 envelope. Internal
// detail never reaches the client.
func RecoveryMiddleware() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		slog.Error("panic recovered",
			"panic", recovered,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, model.ErrorResponse{
			Error:   model.CodeServerError,
			Message: "Something went wrong",
		})
	})
}
