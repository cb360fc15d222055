package serverutils

import "fmt"

// AppError is the error shape the HTTP error middleware understands.
// Services return it (possibly wrapped) whenever the failure maps to a
// specific status code; anything else becomes a 500.
type AppError struct {
	Code    int         `json:"-"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%d: %s", e.Code, e.Message)
}

func NewAppError(code int, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

func NewAppErrorWithDetails(code int, message string, details interface{}) *AppError {
	return &AppError{Code: code, Message: message, Details: details}
}
