package usecase

import "errors"

// Sentinel errors for use case layer
var (
	// Not found errors
	ErrBoardNotFound = errors.New("board not found")

	// Access control errors
	ErrAccessDenied = errors.New("access denied to this board")

	// Completion errors
	ErrCompletionFailure = errors.New("completion request failed")

	// Auth errors
	ErrInvalidToken = errors.New("invalid token")
)

// Context keys for error values
const (
	BoardIDKey  = "board_id"
	ColumnIDKey = "column_id"
	TaskIDKey   = "task_id"
	UserIDKey   = "user_id"
)
