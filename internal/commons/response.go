package commons

// Response is the envelope every HTTP endpoint returns. Validation failures
// carry a user-facing Error; infrastructure failures surface a generic one.
type Response[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    *T     `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func SuccessResponse[T any](message string, data T) Response[T] {
	return Response[T]{
		Success: true,
		Message: message,
		Data:    &data,
	}
}

func ErrorResponse[T any](message string) Response[T] {
	return Response[T]{
		Success: false,
		Error:   message,
	}
}
