package model

import (
	"encoding/json"
	"unicode/utf8"

	"github.com/deckhand-app/deckhand/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// Title length bounds enforced by payload validation
const (
	MaxTaskTitleLength   = 500
	MaxColumnTitleLength = 100
)

// DefaultCleanupColumnTitle is used when a cleanup_done_tasks payload omits
// the column title.
const DefaultCleanupColumnTitle = "Done"

// Action is a single typed mutation request derived from assistant output.
// Actions are transient: validated once, executed at most once, and only
// their outcome is persisted in the conversation record.
type Action struct {
	Type    types.ActionType `json:"type"`
	Payload json.RawMessage  `json:"payload"`
}

// Validate checks that the action type is known and its payload decodes into
// the type-specific shape with all structural constraints satisfied.
func (a *Action) Validate() error {
	if !a.Type.IsValid() {
		return goerr.Wrap(ErrSchemaViolation, "unknown action type", goerr.V(ActionTypeKey, string(a.Type)))
	}

	var err error
	switch a.Type {
	case types.ActionCreateTask:
		_, err = a.CreateTask()
	case types.ActionUpdateTask:
		_, err = a.UpdateTask()
	case types.ActionMoveTask:
		_, err = a.MoveTask()
	case types.ActionDeleteTask:
		_, err = a.DeleteTask()
	case types.ActionAssignTask:
		_, err = a.AssignTask()
	case types.ActionCreateColumn:
		_, err = a.CreateColumn()
	case types.ActionRenameColumn:
		_, err = a.RenameColumn()
	case types.ActionDeleteColumn:
		_, err = a.DeleteColumn()
	case types.ActionCleanupDoneTasks:
		_, err = a.CleanupDoneTasks()
	}
	return err
}

func decodePayload[T any](a *Action) (*T, error) {
	var p T
	if len(a.Payload) == 0 {
		// Missing payload decodes as the zero value; field checks reject it
		// unless every field is optional (cleanup_done_tasks).
		return &p, nil
	}
	if err := json.Unmarshal(a.Payload, &p); err != nil {
		return nil, goerr.Wrap(ErrSchemaViolation, "payload does not match action shape",
			goerr.V(ActionTypeKey, a.Type.String()))
	}
	return &p, nil
}

func validateTaskTitle(title string) error {
	if title == "" {
		return goerr.Wrap(ErrSchemaViolation, "task title is required")
	}
	if utf8.RuneCountInString(title) > MaxTaskTitleLength {
		return goerr.Wrap(ErrSchemaViolation, "task title exceeds length bound",
			goerr.V("max", MaxTaskTitleLength))
	}
	return nil
}

func validateColumnTitle(title string) error {
	if title == "" {
		return goerr.Wrap(ErrSchemaViolation, "column title is required")
	}
	if utf8.RuneCountInString(title) > MaxColumnTitleLength {
		return goerr.Wrap(ErrSchemaViolation, "column title exceeds length bound",
			goerr.V("max", MaxColumnTitleLength))
	}
	return nil
}

// CreateTaskPayload creates a new task at the tail of a column
type CreateTaskPayload struct {
	ColumnID    types.ColumnID `json:"columnId"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
}

// CreateTask decodes and validates a create_task payload
func (a *Action) CreateTask() (*CreateTaskPayload, error) {
	p, err := decodePayload[CreateTaskPayload](a)
	if err != nil {
		return nil, err
	}
	if p.ColumnID == "" {
		return nil, goerr.Wrap(ErrSchemaViolation, "create_task requires columnId")
	}
	if err := validateTaskTitle(p.Title); err != nil {
		return nil, err
	}
	return p, nil
}

// UpdateTaskPayload patches the fields that are present; omitted fields are
// left untouched.
type UpdateTaskPayload struct {
	TaskID      types.TaskID `json:"taskId"`
	Title       *string      `json:"title,omitempty"`
	Description *string      `json:"description,omitempty"`
}

// UpdateTask decodes and validates an update_task payload
func (a *Action) UpdateTask() (*UpdateTaskPayload, error) {
	p, err := decodePayload[UpdateTaskPayload](a)
	if err != nil {
		return nil, err
	}
	if p.TaskID == "" {
		return nil, goerr.Wrap(ErrSchemaViolation, "update_task requires taskId")
	}
	if p.Title != nil {
		if err := validateTaskTitle(*p.Title); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// MoveTaskPayload relocates a task to the tail of another column
type MoveTaskPayload struct {
	TaskID         types.TaskID   `json:"taskId"`
	TargetColumnID types.ColumnID `json:"targetColumnId"`
}

// MoveTask decodes and validates a move_task payload
func (a *Action) MoveTask() (*MoveTaskPayload, error) {
	p, err := decodePayload[MoveTaskPayload](a)
	if err != nil {
		return nil, err
	}
	if p.TaskID == "" {
		return nil, goerr.Wrap(ErrSchemaViolation, "move_task requires taskId")
	}
	if p.TargetColumnID == "" {
		return nil, goerr.Wrap(ErrSchemaViolation, "move_task requires targetColumnId")
	}
	return p, nil
}

// DeleteTaskPayload deletes a task by ID
type DeleteTaskPayload struct {
	TaskID types.TaskID `json:"taskId"`
}

// DeleteTask decodes and validates a delete_task payload
func (a *Action) DeleteTask() (*DeleteTaskPayload, error) {
	p, err := decodePayload[DeleteTaskPayload](a)
	if err != nil {
		return nil, err
	}
	if p.TaskID == "" {
		return nil, goerr.Wrap(ErrSchemaViolation, "delete_task requires taskId")
	}
	return p, nil
}

// AssignTaskPayload replaces the entire assignment set of a task. An empty
// userIds list clears all assignments.
type AssignTaskPayload struct {
	TaskID  types.TaskID   `json:"taskId"`
	UserIDs []types.UserID `json:"userIds"`
}

// AssignTask decodes and validates an assign_task payload
func (a *Action) AssignTask() (*AssignTaskPayload, error) {
	p, err := decodePayload[AssignTaskPayload](a)
	if err != nil {
		return nil, err
	}
	if p.TaskID == "" {
		return nil, goerr.Wrap(ErrSchemaViolation, "assign_task requires taskId")
	}
	for _, id := range p.UserIDs {
		if id == "" {
			return nil, goerr.Wrap(ErrSchemaViolation, "assign_task userIds must not contain empty ids")
		}
	}
	return p, nil
}

// CreateColumnPayload appends a new column at the tail of the board
type CreateColumnPayload struct {
	Title string `json:"title"`
}

// CreateColumn decodes and validates a create_column payload
func (a *Action) CreateColumn() (*CreateColumnPayload, error) {
	p, err := decodePayload[CreateColumnPayload](a)
	if err != nil {
		return nil, err
	}
	if err := validateColumnTitle(p.Title); err != nil {
		return nil, err
	}
	return p, nil
}

// RenameColumnPayload patches a column title only
type RenameColumnPayload struct {
	ColumnID types.ColumnID `json:"columnId"`
	NewTitle string         `json:"newTitle"`
}

// RenameColumn decodes and validates a rename_column payload
func (a *Action) RenameColumn() (*RenameColumnPayload, error) {
	p, err := decodePayload[RenameColumnPayload](a)
	if err != nil {
		return nil, err
	}
	if p.ColumnID == "" {
		return nil, goerr.Wrap(ErrSchemaViolation, "rename_column requires columnId")
	}
	if err := validateColumnTitle(p.NewTitle); err != nil {
		return nil, err
	}
	return p, nil
}

// DeleteColumnPayload deletes a column; execution rejects columns that still
// own tasks.
type DeleteColumnPayload struct {
	ColumnID types.ColumnID `json:"columnId"`
}

// DeleteColumn decodes and validates a delete_column payload
func (a *Action) DeleteColumn() (*DeleteColumnPayload, error) {
	p, err := decodePayload[DeleteColumnPayload](a)
	if err != nil {
		return nil, err
	}
	if p.ColumnID == "" {
		return nil, goerr.Wrap(ErrSchemaViolation, "delete_column requires columnId")
	}
	return p, nil
}

// CleanupDoneTasksPayload deletes all tasks of the column matched by title
type CleanupDoneTasksPayload struct {
	ColumnTitle string `json:"columnTitle"`
}

// Title returns the target column title, falling back to the default when
// the payload omits it.
func (p *CleanupDoneTasksPayload) Title() string {
	if p.ColumnTitle == "" {
		return DefaultCleanupColumnTitle
	}
	return p.ColumnTitle
}

// CleanupDoneTasks decodes and validates a cleanup_done_tasks payload
func (a *Action) CleanupDoneTasks() (*CleanupDoneTasksPayload, error) {
	p, err := decodePayload[CleanupDoneTasksPayload](a)
	if err != nil {
		return nil, err
	}
	if p.ColumnTitle != "" {
		if err := validateColumnTitle(p.ColumnTitle); err != nil {
			return nil, err
		}
	}
	return p, nil
}
