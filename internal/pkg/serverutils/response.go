package serverutils

// APIResponse is the standard success envelope for JSON endpoints.
type APIResponse[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

// APIErrorResponse is the standard error envelope emitted by the error
// handler middleware.
type APIErrorResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func SuccessResponse[T any](message string, data T) APIResponse[T] {
	return APIResponse[T]{
		Success: true,
		Message: message,
		Data:    data,
	}
}

func ErrorResponse(message string, details interface{}) APIErrorResponse {
	return APIErrorResponse{
		Success: false,
		Message: message,
		Details: details,
	}
}
