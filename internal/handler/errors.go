package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/taskhub/backend/internal/model"
	"github.com/taskhub/backend/internal/service"
)

func writeError(c *gin.Context, status int, code, message string) {
	c.JSON(status, model.ErrorResponse{Error: code, Message: message})
}

// writeServiceError translates service sentinels into the HTTP error
// taxonomy. Anything unrecognized is an internal fault: it is logged
// with full detail and reported to the client as a generic 500 only.
func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		writeError(c, http.StatusBadRequest, model.CodeValidationError, "At least one valid field is required")
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(c, http.StatusUnauthorized, model.CodeInvalidCredentials, "Invalid email or password")
	case errors.Is(err, service.ErrEmailExists):
		writeError(c, http.StatusConflict, model.CodeEmailExists, "Email already registered")
	case errors.Is(err, service.ErrNotFound):
		writeError(c, http.StatusNotFound, model.CodeNotFound, "Task not found")
	default:
		slog.Error("unhandled error",
			"error", err,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
		)
		writeError(c, http.StatusInternalServerError, model.CodeServerError, "Something went wrong")
	}
}

// writeBindingError maps gin binding failures: malformed JSON is a 400,
// field constraint violations are a 422 with a per-field detail map.
func writeBindingError(c *gin.Context, err error) {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		details := make(map[string]string, len(fieldErrs))
		for _, fe := range fieldErrs {
			details[jsonFieldName(fe.Field())] = validationMessage(fe)
		}
		c.JSON(http.StatusUnprocessableEntity, model.ErrorResponse{
			Error:   model.CodeValidationError,
			Message: "Validation failed",
			Details: details,
		})
		return
	}
	writeError(c, http.StatusBadRequest, model.CodeValidationError, "Invalid request body")
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	default:
		return "invalid value"
	}
}

func jsonFieldName(field string) string {
	if field == "" {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}
