package types

// ActionType represents the type of a board mutation requested by the assistant
type ActionType string

const (
	ActionCreateTask       ActionType = "create_task"
	ActionUpdateTask       ActionType = "update_task"
	ActionMoveTask         ActionType = "move_task"
	ActionDeleteTask       ActionType = "delete_task"
	ActionAssignTask       ActionType = "assign_task"
	ActionCreateColumn     ActionType = "create_column"
	ActionRenameColumn     ActionType = "rename_column"
	ActionDeleteColumn     ActionType = "delete_column"
	ActionCleanupDoneTasks ActionType = "cleanup_done_tasks"
)

// AllActionTypes returns all valid action types
func AllActionTypes() []ActionType {
	return []ActionType{
		ActionCreateTask,
		ActionUpdateTask,
		ActionMoveTask,
		ActionDeleteTask,
		ActionAssignTask,
		ActionCreateColumn,
		ActionRenameColumn,
		ActionDeleteColumn,
		ActionCleanupDoneTasks,
	}
}

// IsValid checks if the action type is one of the known variants
func (t ActionType) IsValid() bool {
	switch t {
	case ActionCreateTask,
		ActionUpdateTask,
		ActionMoveTask,
		ActionDeleteTask,
		ActionAssignTask,
		ActionCreateColumn,
		ActionRenameColumn,
		ActionDeleteColumn,
		ActionCleanupDoneTasks:
		return true
	default:
		return false
	}
}

// String returns the string representation of the action type
func (t ActionType) String() string {
	return string(t)
}
