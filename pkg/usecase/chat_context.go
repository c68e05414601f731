package usecase

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"text/template"

	"github.com/m-mizutani/goerr/v2"

	"github.com/deckhand-app/deckhand/pkg/domain/types"
)

//go:embed prompt/chat_system.md
var chatSystemPromptTmpl string

var chatSystemPrompt = template.Must(template.New("chat_system").Parse(chatSystemPromptTmpl))

// promptMember is a roster entry for the system prompt template
type promptMember struct {
	ID       string
	Username string
}

// chatPromptData holds all data for the chat system prompt template
type chatPromptData struct {
	BoardJSON     string
	Members       []promptMember
	CurrentUserID string
}

// promptTask is the task shape serialized into the board state JSON
type promptTask struct {
	ID              types.TaskID   `json:"id"`
	Title           string         `json:"title"`
	Description     string         `json:"description,omitempty"`
	Position        int            `json:"position"`
	AssignedUserIDs []types.UserID `json:"assignedUserIds,omitempty"`
}

// promptColumn is the column shape serialized into the board state JSON
type promptColumn struct {
	ID       types.ColumnID `json:"id"`
	Title    string         `json:"title"`
	Position int            `json:"position"`
	Tasks    []promptTask   `json:"tasks"`
}

// promptBoard is the board shape serialized into the board state JSON
type promptBoard struct {
	ID      types.BoardID  `json:"id"`
	Title   string         `json:"title"`
	OwnerID types.UserID   `json:"ownerId"`
	Columns []promptColumn `json:"columns"`
}

// buildChatSystemPrompt renders the system prompt from the board's current
// state. The state is loaded fresh on every call so the assistant always sees
// the latest columns and tasks.
func (uc *ChatUseCase) buildChatSystemPrompt(ctx context.Context, tree *BoardTree, userID types.UserID) (string, error) {
	board := promptBoard{
		ID:      tree.Board.ID,
		Title:   tree.Board.Title,
		OwnerID: tree.Board.OwnerID,
		Columns: make([]promptColumn, 0, len(tree.Columns)),
	}

	for _, ct := range tree.Columns {
		col := promptColumn{
			ID:       ct.Column.ID,
			Title:    ct.Column.Title,
			Position: ct.Column.Position,
			Tasks:    make([]promptTask, 0, len(ct.Tasks)),
		}
		for _, t := range ct.Tasks {
			col.Tasks = append(col.Tasks, promptTask{
				ID:              t.ID,
				Title:           t.Title,
				Description:     t.Description,
				Position:        t.Position,
				AssignedUserIDs: t.AssignedUserIDs,
			})
		}
		board.Columns = append(board.Columns, col)
	}

	boardJSON, err := json.MarshalIndent(board, "", "  ")
	if err != nil {
		return "", goerr.Wrap(err, "failed to marshal board state", goerr.V(BoardIDKey, board.ID))
	}

	data := chatPromptData{
		BoardJSON:     string(boardJSON),
		CurrentUserID: string(userID),
	}
	for _, p := range tree.Members {
		data.Members = append(data.Members, promptMember{
			ID:       string(p.ID),
			Username: p.Username,
		})
	}

	var buf bytes.Buffer
	if err := chatSystemPrompt.Execute(&buf, data); err != nil {
		return "", goerr.Wrap(err, "failed to execute chat system prompt template")
	}

	return buf.String(), nil
}
