package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/deckhand-app/deckhand/pkg/domain/model"
	"github.com/deckhand-app/deckhand/pkg/domain/types"
	"github.com/deckhand-app/deckhand/pkg/utils/logging"
)

// executeActions runs the validated actions in order against the board,
// stopping at the first failure. Every attempted action gets exactly one
// result; actions after a failure are never attempted. Persistence errors
// become failed results and never escape.
func (uc *ChatUseCase) executeActions(ctx context.Context, boardID types.BoardID, actions []model.Action) []model.ActionResult {
	results := make([]model.ActionResult, 0, len(actions))

	for i := range actions {
		result := uc.executeAction(ctx, boardID, &actions[i])
		results = append(results, result)

		if !result.Success {
			logging.From(ctx).Warn("action failed, halting sequence",
				"board_id", boardID,
				"action_type", actions[i].Type,
				"action_index", i,
				"error", result.Error,
			)
			break
		}
	}

	return results
}

func (uc *ChatUseCase) executeAction(ctx context.Context, boardID types.BoardID, action *model.Action) model.ActionResult {
	switch action.Type {
	case types.ActionCreateTask:
		return uc.executeCreateTask(ctx, boardID, action)
	case types.ActionUpdateTask:
		return uc.executeUpdateTask(ctx, boardID, action)
	case types.ActionMoveTask:
		return uc.executeMoveTask(ctx, boardID, action)
	case types.ActionDeleteTask:
		return uc.executeDeleteTask(ctx, boardID, action)
	case types.ActionAssignTask:
		return uc.executeAssignTask(ctx, boardID, action)
	case types.ActionCreateColumn:
		return uc.executeCreateColumn(ctx, boardID, action)
	case types.ActionRenameColumn:
		return uc.executeRenameColumn(ctx, boardID, action)
	case types.ActionDeleteColumn:
		return uc.executeDeleteColumn(ctx, boardID, action)
	case types.ActionCleanupDoneTasks:
		return uc.executeCleanupDoneTasks(ctx, boardID, action)
	default:
		return model.NewActionFailure(goerr.New("unknown action type",
			goerr.V(model.ActionTypeKey, string(action.Type))))
	}
}

func (uc *ChatUseCase) executeCreateTask(ctx context.Context, boardID types.BoardID, action *model.Action) model.ActionResult {
	p, err := action.CreateTask()
	if err != nil {
		return model.NewActionFailure(err)
	}

	if _, err := uc.repo.Column().Get(ctx, boardID, p.ColumnID); err != nil {
		return model.NewActionFailure(goerr.New("Column not found or access denied"))
	}

	position, err := uc.nextTaskPosition(ctx, boardID, p.ColumnID)
	if err != nil {
		return model.NewActionFailure(err)
	}

	task, err := uc.repo.Task().Create(ctx, boardID, &model.Task{
		ColumnID:    p.ColumnID,
		Title:       p.Title,
		Description: p.Description,
		Position:    position,
	})
	if err != nil {
		return model.NewActionFailure(err)
	}

	return model.NewActionSuccess(task)
}

func (uc *ChatUseCase) executeUpdateTask(ctx context.Context, boardID types.BoardID, action *model.Action) model.ActionResult {
	p, err := action.UpdateTask()
	if err != nil {
		return model.NewActionFailure(err)
	}

	task, err := uc.repo.Task().Get(ctx, boardID, p.TaskID)
	if err != nil {
		return model.NewActionFailure(err)
	}

	if p.Title != nil {
		task.Title = *p.Title
	}
	if p.Description != nil {
		task.Description = *p.Description
	}

	updated, err := uc.repo.Task().Update(ctx, boardID, task)
	if err != nil {
		return model.NewActionFailure(err)
	}

	return model.NewActionSuccess(updated)
}

func (uc *ChatUseCase) executeMoveTask(ctx context.Context, boardID types.BoardID, action *model.Action) model.ActionResult {
	p, err := action.MoveTask()
	if err != nil {
		return model.NewActionFailure(err)
	}

	task, err := uc.repo.Task().Get(ctx, boardID, p.TaskID)
	if err != nil {
		return model.NewActionFailure(err)
	}

	if _, err := uc.repo.Column().Get(ctx, boardID, p.TargetColumnID); err != nil {
		return model.NewActionFailure(goerr.New("Column not found or access denied"))
	}

	sourceColumnID := task.ColumnID

	position, err := uc.nextTaskPosition(ctx, boardID, p.TargetColumnID)
	if err != nil {
		return model.NewActionFailure(err)
	}

	task.ColumnID = p.TargetColumnID
	task.Position = position

	updated, err := uc.repo.Task().Update(ctx, boardID, task)
	if err != nil {
		return model.NewActionFailure(err)
	}

	// Renumbering the source column restores dense positions for both
	// cross-column and same-column moves: a same-column move lands the task
	// at the tail before its column is rewritten.
	if err := uc.normalizeTaskPositions(ctx, boardID, sourceColumnID); err != nil {
		return model.NewActionFailure(err)
	}

	if sourceColumnID == p.TargetColumnID {
		updated, err = uc.repo.Task().Get(ctx, boardID, p.TaskID)
		if err != nil {
			return model.NewActionFailure(err)
		}
	}

	return model.NewActionSuccess(updated)
}

func (uc *ChatUseCase) executeDeleteTask(ctx context.Context, boardID types.BoardID, action *model.Action) model.ActionResult {
	p, err := action.DeleteTask()
	if err != nil {
		return model.NewActionFailure(err)
	}

	task, err := uc.repo.Task().Get(ctx, boardID, p.TaskID)
	if err != nil {
		return model.NewActionFailure(err)
	}

	if err := uc.repo.Task().Delete(ctx, boardID, p.TaskID); err != nil {
		return model.NewActionFailure(err)
	}

	if err := uc.normalizeTaskPositions(ctx, boardID, task.ColumnID); err != nil {
		return model.NewActionFailure(err)
	}

	return model.NewActionSuccess(map[string]any{"taskId": p.TaskID})
}

func (uc *ChatUseCase) executeAssignTask(ctx context.Context, boardID types.BoardID, action *model.Action) model.ActionResult {
	p, err := action.AssignTask()
	if err != nil {
		return model.NewActionFailure(err)
	}

	task, err := uc.repo.Task().Get(ctx, boardID, p.TaskID)
	if err != nil {
		return model.NewActionFailure(err)
	}

	// Replace the whole assignment set; empty clears it
	task.AssignedUserIDs = p.UserIDs

	updated, err := uc.repo.Task().Update(ctx, boardID, task)
	if err != nil {
		return model.NewActionFailure(err)
	}

	return model.NewActionSuccess(updated)
}

func (uc *ChatUseCase) executeCreateColumn(ctx context.Context, boardID types.BoardID, action *model.Action) model.ActionResult {
	p, err := action.CreateColumn()
	if err != nil {
		return model.NewActionFailure(err)
	}

	columns, err := uc.repo.Column().List(ctx, boardID)
	if err != nil {
		return model.NewActionFailure(err)
	}

	position := 0
	for _, col := range columns {
		if col.Position >= position {
			position = col.Position + 1
		}
	}

	column, err := uc.repo.Column().Create(ctx, boardID, &model.Column{
		Title:    p.Title,
		Position: position,
	})
	if err != nil {
		return model.NewActionFailure(err)
	}

	return model.NewActionSuccess(column)
}

func (uc *ChatUseCase) executeRenameColumn(ctx context.Context, boardID types.BoardID, action *model.Action) model.ActionResult {
	p, err := action.RenameColumn()
	if err != nil {
		return model.NewActionFailure(err)
	}

	column, err := uc.repo.Column().Get(ctx, boardID, p.ColumnID)
	if err != nil {
		return model.NewActionFailure(err)
	}

	column.Title = p.NewTitle

	updated, err := uc.repo.Column().Update(ctx, boardID, column)
	if err != nil {
		return model.NewActionFailure(err)
	}

	return model.NewActionSuccess(updated)
}

func (uc *ChatUseCase) executeDeleteColumn(ctx context.Context, boardID types.BoardID, action *model.Action) model.ActionResult {
	p, err := action.DeleteColumn()
	if err != nil {
		return model.NewActionFailure(err)
	}

	if _, err := uc.repo.Column().Get(ctx, boardID, p.ColumnID); err != nil {
		return model.NewActionFailure(err)
	}

	tasks, err := uc.repo.Task().ListByColumn(ctx, boardID, p.ColumnID)
	if err != nil {
		return model.NewActionFailure(err)
	}
	if len(tasks) > 0 {
		return model.NewActionFailure(goerr.New("Cannot delete column with tasks. Move or delete tasks first."))
	}

	if err := uc.repo.Column().Delete(ctx, boardID, p.ColumnID); err != nil {
		return model.NewActionFailure(err)
	}

	if err := uc.normalizeColumnPositions(ctx, boardID); err != nil {
		return model.NewActionFailure(err)
	}

	return model.NewActionSuccess(map[string]any{"columnId": p.ColumnID})
}

func (uc *ChatUseCase) executeCleanupDoneTasks(ctx context.Context, boardID types.BoardID, action *model.Action) model.ActionResult {
	p, err := action.CleanupDoneTasks()
	if err != nil {
		return model.NewActionFailure(err)
	}

	columns, err := uc.repo.Column().List(ctx, boardID)
	if err != nil {
		return model.NewActionFailure(err)
	}

	var target *model.Column
	for _, col := range columns {
		if strings.EqualFold(col.Title, p.Title()) {
			target = col
			break
		}
	}
	if target == nil {
		return model.NewActionFailure(goerr.New(fmt.Sprintf("Column %q not found", p.Title())))
	}

	tasks, err := uc.repo.Task().ListByColumn(ctx, boardID, target.ID)
	if err != nil {
		return model.NewActionFailure(err)
	}

	for _, t := range tasks {
		if err := uc.repo.Task().Delete(ctx, boardID, t.ID); err != nil {
			return model.NewActionFailure(err)
		}
	}

	return model.NewActionSuccess(map[string]any{
		"columnId":     target.ID,
		"deletedCount": len(tasks),
	})
}

// nextTaskPosition returns the append position for a column: one past the
// current maximum, or 0 for an empty column.
func (uc *ChatUseCase) nextTaskPosition(ctx context.Context, boardID types.BoardID, columnID types.ColumnID) (int, error) {
	tasks, err := uc.repo.Task().ListByColumn(ctx, boardID, columnID)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to list tasks for position",
			goerr.V(BoardIDKey, boardID), goerr.V(ColumnIDKey, columnID))
	}

	position := 0
	for _, t := range tasks {
		if t.Position >= position {
			position = t.Position + 1
		}
	}

	return position, nil
}

// normalizeTaskPositions rewrites a column's task positions back to a dense
// 0..n-1 sequence, preserving relative order.
func (uc *ChatUseCase) normalizeTaskPositions(ctx context.Context, boardID types.BoardID, columnID types.ColumnID) error {
	tasks, err := uc.repo.Task().ListByColumn(ctx, boardID, columnID)
	if err != nil {
		return goerr.Wrap(err, "failed to list tasks for renumbering",
			goerr.V(BoardIDKey, boardID), goerr.V(ColumnIDKey, columnID))
	}

	for i, t := range tasks {
		if t.Position == i {
			continue
		}
		t.Position = i
		if _, err := uc.repo.Task().Update(ctx, boardID, t); err != nil {
			return goerr.Wrap(err, "failed to renumber task",
				goerr.V(BoardIDKey, boardID), goerr.V(TaskIDKey, t.ID))
		}
	}

	return nil
}

// normalizeColumnPositions rewrites the board's column positions back to a
// dense 0..n-1 sequence, preserving relative order.
func (uc *ChatUseCase) normalizeColumnPositions(ctx context.Context, boardID types.BoardID) error {
	columns, err := uc.repo.Column().List(ctx, boardID)
	if err != nil {
		return goerr.Wrap(err, "failed to list columns for renumbering", goerr.V(BoardIDKey, boardID))
	}

	for i, col := range columns {
		if col.Position == i {
			continue
		}
		col.Position = i
		if _, err := uc.repo.Column().Update(ctx, boardID, col); err != nil {
			return goerr.Wrap(err, "failed to renumber column",
				goerr.V(BoardIDKey, boardID), goerr.V(ColumnIDKey, col.ID))
		}
	}

	return nil
}
