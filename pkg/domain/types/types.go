package types

import "github.com/google/uuid"

// BoardID represents the unique identifier for a board
type BoardID string

// NewBoardID generates a new time-ordered board ID
func NewBoardID() BoardID {
	return BoardID(uuid.Must(uuid.NewV7()).String())
}

// String returns the string representation of the board ID
func (x BoardID) String() string {
	return string(x)
}

// ColumnID represents the unique identifier for a column
type ColumnID string

// NewColumnID generates a new time-ordered column ID
func NewColumnID() ColumnID {
	return ColumnID(uuid.Must(uuid.NewV7()).String())
}

// String returns the string representation of the column ID
func (x ColumnID) String() string {
	return string(x)
}

// TaskID represents the unique identifier for a task
type TaskID string

// NewTaskID generates a new time-ordered task ID
func NewTaskID() TaskID {
	return TaskID(uuid.Must(uuid.NewV7()).String())
}

// String returns the string representation of the task ID
func (x TaskID) String() string {
	return string(x)
}

// UserID represents the unique identifier for a user profile
type UserID string

// String returns the string representation of the user ID
func (x UserID) String() string {
	return string(x)
}

// MessageID represents the unique identifier for a conversation message
type MessageID string

// NewMessageID generates a new time-ordered message ID
func NewMessageID() MessageID {
	return MessageID(uuid.Must(uuid.NewV7()).String())
}

// String returns the string representation of the message ID
func (x MessageID) String() string {
	return string(x)
}
