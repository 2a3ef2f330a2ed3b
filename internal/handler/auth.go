package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/taskhub/backend/internal/model"
	"github.com/taskhub/backend/internal/service"
)

type AuthHandler struct {
	svc *service.AuthService
}

func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Register godoc
// @Summary Register a new user
// @Description Create an account with email and password. Returns the user and a JWT.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body model.RegisterRequest true "Email and password"
// @Success 201 {object} model.AuthResponse
// @Failure 409 {object} model.ErrorResponse
// @Failure 422 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindingError(c, err)
		return
	}

	user, token, err := h.svc.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, model.AuthResponse{
		User:  model.UserResponse{ID: user.ID, Email: user.Email},
		Token: token,
	})
}

// Login godoc
// @Summary Login
// @Description Verify credentials and return a JWT. Failure is deliberately generic.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body model.LoginRequest true "Email and password"
// @Success 200 {object} model.AuthResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 422 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindingError(c, err)
		return
	}

	user, token, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.AuthResponse{
		User:  model.UserResponse{ID: user.ID, Email: user.Email},
		Token: token,
	})
}

// Logout godoc
// @Summary Logout
// @Description Confirmation only. Tokens are stateless: the client discards its copy, and the token stays valid until natural expiry.
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.MessageResponse
// @Failure 401 {object} model.ErrorResponse
// @Router /api/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	// Reaching this handler means the gate already validated the token.
	c.JSON(http.StatusOK, model.MessageResponse{Message: "Logged out successfully"})
}
