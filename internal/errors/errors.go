package errors

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// APIError is the body of every 4xx/5xx response:
//
//	{"error": {"code": 404, "message": "...", "path": "/projects/", "details": [...]}}
type APIError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Path    string      `json:"path"`
	Details interface{} `json:"details,omitempty"`
}

// Envelope wraps an APIError under the "error" key.
type Envelope struct {
	Error APIError `json:"error"`
}

// FieldError describes a single validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// RespondWithError writes the error envelope and aborts the request.
func RespondWithError(c *gin.Context, statusCode int, message string, details interface{}) {
	c.AbortWithStatusJSON(statusCode, Envelope{
		Error: APIError{
			Code:    statusCode,
			Message: message,
			Path:    c.Request.URL.Path,
			Details: details,
		},
	})
}

// Unauthorized sends a 401 response.
func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "Authentication required"
	}
	RespondWithError(c, http.StatusUnauthorized, message, nil)
}

// NotFound sends a 404 response.
func NotFound(c *gin.Context, message string) {
	if message == "" {
		message = "Resource not found"
	}
	RespondWithError(c, http.StatusNotFound, message, nil)
}

// BadRequest sends a 400 response.
func BadRequest(c *gin.Context, message string) {
	if message == "" {
		message = "Invalid request"
	}
	RespondWithError(c, http.StatusBadRequest, message, nil)
}

// Conflict reports a duplicate unique field. Existing clients expect 400
// rather than 409 for conflicts.
func Conflict(c *gin.Context, message string) {
	if message == "" {
		message = "Resource conflict"
	}
	RespondWithError(c, http.StatusBadRequest, message, nil)
}

// UnprocessableEntity sends a 422 response with field-level details.
func UnprocessableEntity(c *gin.Context, message string, details interface{}) {
	if message == "" {
		message = "Validation failed"
	}
	RespondWithError(c, http.StatusUnprocessableEntity, message, details)
}

// InternalError sends a 500 response with detail suppressed from the client.
func InternalError(c *gin.Context) {
	RespondWithError(c, http.StatusInternalServerError, "Internal server error", nil)
}

// Validation translates a binding error into a 422 envelope, collecting every
// field violation before responding. Non-validator errors (malformed JSON,
// type mismatches) produce a single body-level detail.
func Validation(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make([]FieldError, 0, len(verrs))
		for _, fe := range verrs {
			details = append(details, FieldError{
				Field:   fe.Field(),
				Message: validationMessage(fe),
			})
		}
		UnprocessableEntity(c, "Validation failed", details)
		return
	}

	UnprocessableEntity(c, "Validation failed", []FieldError{
		{Field: "body", Message: "malformed request body"},
	})
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "must be a valid email address"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	default:
		return "invalid value"
	}
}
