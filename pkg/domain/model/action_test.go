package model_test

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/deckhand-app/deckhand/pkg/domain/model"
	"github.com/deckhand-app/deckhand/pkg/domain/types"
)

func newAction(t *testing.T, actionType types.ActionType, payload string) model.Action {
	t.Helper()
	return model.Action{
		Type:    actionType,
		Payload: json.RawMessage(payload),
	}
}

func TestActionValidate(t *testing.T) {
	t.Run("unknown action type is rejected", func(t *testing.T) {
		action := newAction(t, "explode_board", `{}`)
		err := action.Validate()
		gt.Value(t, err).NotNil()
		gt.Bool(t, errors.Is(err, model.ErrSchemaViolation)).True()
	})

	t.Run("all known types validate with well-formed payloads", func(t *testing.T) {
		payloads := map[types.ActionType]string{
			types.ActionCreateTask:       `{"columnId":"col-1","title":"Write docs"}`,
			types.ActionUpdateTask:       `{"taskId":"task-1","title":"Rewrite docs"}`,
			types.ActionMoveTask:         `{"taskId":"task-1","targetColumnId":"col-2"}`,
			types.ActionDeleteTask:       `{"taskId":"task-1"}`,
			types.ActionAssignTask:       `{"taskId":"task-1","userIds":["user-1"]}`,
			types.ActionCreateColumn:     `{"title":"Review"}`,
			types.ActionRenameColumn:     `{"columnId":"col-1","newTitle":"Backlog"}`,
			types.ActionDeleteColumn:     `{"columnId":"col-1"}`,
			types.ActionCleanupDoneTasks: `{"columnTitle":"Done"}`,
		}
		for _, actionType := range types.AllActionTypes() {
			payload, ok := payloads[actionType]
			gt.Bool(t, ok).True()
			action := newAction(t, actionType, payload)
			gt.NoError(t, action.Validate())
		}
	})
}

func TestCreateTaskPayload(t *testing.T) {
	t.Run("valid payload", func(t *testing.T) {
		action := newAction(t, types.ActionCreateTask,
			`{"columnId":"col-1","title":"Write docs","description":"for the import flow"}`)
		p, err := action.CreateTask()
		gt.NoError(t, err).Required()
		gt.Value(t, p.ColumnID).Equal(types.ColumnID("col-1"))
		gt.Value(t, p.Title).Equal("Write docs")
		gt.Value(t, p.Description).Equal("for the import flow")
	})

	t.Run("missing columnId is rejected", func(t *testing.T) {
		action := newAction(t, types.ActionCreateTask, `{"title":"Write docs"}`)
		_, err := action.CreateTask()
		gt.Bool(t, errors.Is(err, model.ErrSchemaViolation)).True()
	})

	t.Run("empty title is rejected", func(t *testing.T) {
		action := newAction(t, types.ActionCreateTask, `{"columnId":"col-1","title":""}`)
		_, err := action.CreateTask()
		gt.Bool(t, errors.Is(err, model.ErrSchemaViolation)).True()
	})

	t.Run("title at rune bound is accepted", func(t *testing.T) {
		title := strings.Repeat("あ", model.MaxTaskTitleLength)
		payload, err := json.Marshal(map[string]string{"columnId": "col-1", "title": title})
		gt.NoError(t, err).Required()
		action := model.Action{Type: types.ActionCreateTask, Payload: payload}
		p, err := action.CreateTask()
		gt.NoError(t, err).Required()
		gt.Value(t, p.Title).Equal(title)
	})

	t.Run("title over rune bound is rejected", func(t *testing.T) {
		title := strings.Repeat("あ", model.MaxTaskTitleLength+1)
		payload, err := json.Marshal(map[string]string{"columnId": "col-1", "title": title})
		gt.NoError(t, err).Required()
		action := model.Action{Type: types.ActionCreateTask, Payload: payload}
		_, err = action.CreateTask()
		gt.Bool(t, errors.Is(err, model.ErrSchemaViolation)).True()
	})

	t.Run("non-object payload is rejected", func(t *testing.T) {
		action := newAction(t, types.ActionCreateTask, `"not an object"`)
		_, err := action.CreateTask()
		gt.Bool(t, errors.Is(err, model.ErrSchemaViolation)).True()
	})
}

func TestUpdateTaskPayload(t *testing.T) {
	t.Run("omitted fields stay nil", func(t *testing.T) {
		action := newAction(t, types.ActionUpdateTask, `{"taskId":"task-1"}`)
		p, err := action.UpdateTask()
		gt.NoError(t, err).Required()
		gt.Value(t, p.TaskID).Equal(types.TaskID("task-1"))
		gt.Value(t, p.Title).Equal(nil)
		gt.Value(t, p.Description).Equal(nil)
	})

	t.Run("present fields decode as pointers", func(t *testing.T) {
		action := newAction(t, types.ActionUpdateTask,
			`{"taskId":"task-1","title":"New title","description":""}`)
		p, err := action.UpdateTask()
		gt.NoError(t, err).Required()
		gt.Value(t, p.Title).NotNil()
		gt.Value(t, *p.Title).Equal("New title")
		gt.Value(t, p.Description).NotNil()
		gt.Value(t, *p.Description).Equal("")
	})

	t.Run("missing taskId is rejected", func(t *testing.T) {
		action := newAction(t, types.ActionUpdateTask, `{"title":"New title"}`)
		_, err := action.UpdateTask()
		gt.Bool(t, errors.Is(err, model.ErrSchemaViolation)).True()
	})

	t.Run("present empty title is rejected", func(t *testing.T) {
		action := newAction(t, types.ActionUpdateTask, `{"taskId":"task-1","title":""}`)
		_, err := action.UpdateTask()
		gt.Bool(t, errors.Is(err, model.ErrSchemaViolation)).True()
	})
}

func TestMoveTaskPayload(t *testing.T) {
	t.Run("missing targetColumnId is rejected", func(t *testing.T) {
		action := newAction(t, types.ActionMoveTask, `{"taskId":"task-1"}`)
		_, err := action.MoveTask()
		gt.Bool(t, errors.Is(err, model.ErrSchemaViolation)).True()
	})

	t.Run("missing taskId is rejected", func(t *testing.T) {
		action := newAction(t, types.ActionMoveTask, `{"targetColumnId":"col-2"}`)
		_, err := action.MoveTask()
		gt.Bool(t, errors.Is(err, model.ErrSchemaViolation)).True()
	})
}

func TestAssignTaskPayload(t *testing.T) {
	t.Run("empty userIds list clears assignments", func(t *testing.T) {
		action := newAction(t, types.ActionAssignTask, `{"taskId":"task-1","userIds":[]}`)
		p, err := action.AssignTask()
		gt.NoError(t, err).Required()
		gt.Array(t, p.UserIDs).Length(0)
	})

	t.Run("empty user ID inside the list is rejected", func(t *testing.T) {
		action := newAction(t, types.ActionAssignTask, `{"taskId":"task-1","userIds":["user-1",""]}`)
		_, err := action.AssignTask()
		gt.Bool(t, errors.Is(err, model.ErrSchemaViolation)).True()
	})
}

func TestColumnPayloads(t *testing.T) {
	t.Run("create_column title over rune bound is rejected", func(t *testing.T) {
		title := strings.Repeat("x", model.MaxColumnTitleLength+1)
		payload, err := json.Marshal(map[string]string{"title": title})
		gt.NoError(t, err).Required()
		action := model.Action{Type: types.ActionCreateColumn, Payload: payload}
		_, err = action.CreateColumn()
		gt.Bool(t, errors.Is(err, model.ErrSchemaViolation)).True()
	})

	t.Run("rename_column requires newTitle", func(t *testing.T) {
		action := newAction(t, types.ActionRenameColumn, `{"columnId":"col-1"}`)
		_, err := action.RenameColumn()
		gt.Bool(t, errors.Is(err, model.ErrSchemaViolation)).True()
	})

	t.Run("delete_column requires columnId", func(t *testing.T) {
		action := newAction(t, types.ActionDeleteColumn, `{}`)
		_, err := action.DeleteColumn()
		gt.Bool(t, errors.Is(err, model.ErrSchemaViolation)).True()
	})
}

func TestCleanupDoneTasksPayload(t *testing.T) {
	t.Run("omitted title falls back to Done", func(t *testing.T) {
		action := newAction(t, types.ActionCleanupDoneTasks, `{}`)
		p, err := action.CleanupDoneTasks()
		gt.NoError(t, err).Required()
		gt.Value(t, p.Title()).Equal("Done")
	})

	t.Run("explicit title wins", func(t *testing.T) {
		action := newAction(t, types.ActionCleanupDoneTasks, `{"columnTitle":"Shipped"}`)
		p, err := action.CleanupDoneTasks()
		gt.NoError(t, err).Required()
		gt.Value(t, p.Title()).Equal("Shipped")
	})

	t.Run("missing payload is accepted", func(t *testing.T) {
		action := model.Action{Type: types.ActionCleanupDoneTasks}
		p, err := action.CleanupDoneTasks()
		gt.NoError(t, err).Required()
		gt.Value(t, p.Title()).Equal("Done")
	})
}
