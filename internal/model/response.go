package model

// Error codes exposed to clients. Ownership mismatches deliberately
// surface as CodeNotFound, never CodeForbidden, so a caller cannot
// probe which task IDs exist under other accounts.
const (
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeForbidden          = "FORBIDDEN"
	CodeNotFound           = "NOT_FOUND"
	CodeValidationError    = "VALIDATION_ERROR"
	CodeEmailExists        = "EMAIL_EXISTS"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeServerError        = "SERVER_ERROR"
)

type ErrorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type TaskListResponse struct {
	Tasks []Task `json:"tasks"`
}

type TaskEnvelope struct {
	Task Task `json:"task"`
}

type HealthResponse struct {
	Status      string `json:"status"`
	Environment string `json:"environment"`
	Version     string `json:"version"`
}

type RootResponse struct {
	Message         string            `json:"message"`
	Version         string            `json:"version"`
	Endpoints       map[string]string `json:"endpoints"`
	AuthenticatedAs string            `json:"authenticatedAs,omitempty"`
}
