package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"

	"github.com/deckhand-app/deckhand/pkg/domain/interfaces"
	"github.com/deckhand-app/deckhand/pkg/domain/model"
	"github.com/deckhand-app/deckhand/pkg/domain/model/config"
	"github.com/deckhand-app/deckhand/pkg/domain/types"
)

type BoardUseCase struct {
	repo interfaces.Repository
	cfg  *config.BoardConfig
}

func NewBoardUseCase(repo interfaces.Repository, cfg *config.BoardConfig) *BoardUseCase {
	return &BoardUseCase{
		repo: repo,
		cfg:  cfg,
	}
}

// ColumnTree is a column with its tasks in position order
type ColumnTree struct {
	Column *model.Column `json:"column"`
	Tasks  []*model.Task `json:"tasks"`
}

// BoardTree is the full state of one board: ordered columns with their tasks
// plus the member roster resolved to profiles.
type BoardTree struct {
	Board   *model.Board     `json:"board"`
	Columns []*ColumnTree    `json:"columns"`
	Members []*model.Profile `json:"members"`
}

// CreateBoard creates a board owned by the user and seeds the configured
// default columns in order.
func (uc *BoardUseCase) CreateBoard(ctx context.Context, ownerID types.UserID, title string) (*model.Board, error) {
	if title == "" {
		return nil, goerr.New("board title is required")
	}

	board, err := uc.repo.Board().Create(ctx, &model.Board{
		Title:   title,
		OwnerID: ownerID,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create board", goerr.V(UserIDKey, ownerID))
	}

	for i, colTitle := range uc.cfg.DefaultColumns {
		if _, err := uc.repo.Column().Create(ctx, board.ID, &model.Column{
			Title:    colTitle,
			Position: i,
		}); err != nil {
			return nil, goerr.Wrap(err, "failed to seed default column",
				goerr.V(BoardIDKey, board.ID), goerr.V("title", colTitle))
		}
	}

	return board, nil
}

// GetBoardForUser returns the board after checking the user may access it.
// A missing board and a forbidden board are distinct failures.
func (uc *BoardUseCase) GetBoardForUser(ctx context.Context, boardID types.BoardID, userID types.UserID) (*model.Board, error) {
	board, err := uc.repo.Board().Get(ctx, boardID)
	if err != nil {
		return nil, goerr.Wrap(ErrBoardNotFound, "board not found", goerr.V(BoardIDKey, boardID))
	}

	if board.OwnerID == userID {
		return board, nil
	}

	isMember, err := uc.repo.Member().Exists(ctx, boardID, userID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to check membership",
			goerr.V(BoardIDKey, boardID), goerr.V(UserIDKey, userID))
	}
	if !isMember {
		return nil, goerr.Wrap(ErrAccessDenied, "user is not a member of the board",
			goerr.V(BoardIDKey, boardID), goerr.V(UserIDKey, userID))
	}

	return board, nil
}

// ListBoards returns the boards the user owns or is a member of
func (uc *BoardUseCase) ListBoards(ctx context.Context, userID types.UserID) ([]*model.Board, error) {
	owned, err := uc.repo.Board().ListByOwner(ctx, userID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list owned boards", goerr.V(UserIDKey, userID))
	}

	memberBoardIDs, err := uc.repo.Member().ListBoards(ctx, userID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list memberships", goerr.V(UserIDKey, userID))
	}

	seen := make(map[types.BoardID]bool, len(owned))
	boards := make([]*model.Board, 0, len(owned)+len(memberBoardIDs))
	for _, b := range owned {
		seen[b.ID] = true
		boards = append(boards, b)
	}
	for _, id := range memberBoardIDs {
		if seen[id] {
			continue
		}
		b, err := uc.repo.Board().Get(ctx, id)
		if err != nil {
			// Membership row may outlive the board
			continue
		}
		seen[id] = true
		boards = append(boards, b)
	}

	return boards, nil
}

// GetBoardTree returns the full state of the board: ordered columns with
// their tasks and the member roster (owner plus explicit members).
func (uc *BoardUseCase) GetBoardTree(ctx context.Context, boardID types.BoardID, userID types.UserID) (*BoardTree, error) {
	board, err := uc.GetBoardForUser(ctx, boardID, userID)
	if err != nil {
		return nil, err
	}

	columns, err := uc.repo.Column().List(ctx, boardID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list columns", goerr.V(BoardIDKey, boardID))
	}

	tree := &BoardTree{
		Board:   board,
		Columns: make([]*ColumnTree, 0, len(columns)),
	}

	for _, col := range columns {
		tasks, err := uc.repo.Task().ListByColumn(ctx, boardID, col.ID)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list tasks",
				goerr.V(BoardIDKey, boardID), goerr.V(ColumnIDKey, col.ID))
		}
		tree.Columns = append(tree.Columns, &ColumnTree{Column: col, Tasks: tasks})
	}

	memberIDs, err := uc.repo.Member().List(ctx, boardID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list members", goerr.V(BoardIDKey, boardID))
	}

	rosterIDs := make([]types.UserID, 0, len(memberIDs)+1)
	rosterIDs = append(rosterIDs, board.OwnerID)
	for _, id := range memberIDs {
		if id != board.OwnerID {
			rosterIDs = append(rosterIDs, id)
		}
	}

	members, err := uc.repo.Profile().GetMany(ctx, rosterIDs)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to resolve member profiles", goerr.V(BoardIDKey, boardID))
	}
	tree.Members = members

	return tree, nil
}

// ListMessages returns the board's conversation history, newest first, capped
// by the configured history limit.
func (uc *BoardUseCase) ListMessages(ctx context.Context, boardID types.BoardID, userID types.UserID, limit int) ([]*model.Message, error) {
	if _, err := uc.GetBoardForUser(ctx, boardID, userID); err != nil {
		return nil, err
	}

	if limit <= 0 || limit > uc.cfg.MessageHistoryLimit {
		limit = uc.cfg.MessageHistoryLimit
	}

	messages, err := uc.repo.Message().List(ctx, boardID, limit)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list messages", goerr.V(BoardIDKey, boardID))
	}

	return messages, nil
}

// AddMember records the user as a member of the board. Only the owner may
// add members.
func (uc *BoardUseCase) AddMember(ctx context.Context, boardID types.BoardID, callerID, userID types.UserID) error {
	board, err := uc.repo.Board().Get(ctx, boardID)
	if err != nil {
		return goerr.Wrap(ErrBoardNotFound, "board not found", goerr.V(BoardIDKey, boardID))
	}

	if board.OwnerID != callerID {
		return goerr.Wrap(ErrAccessDenied, "only the owner can add members",
			goerr.V(BoardIDKey, boardID), goerr.V(UserIDKey, callerID))
	}

	return uc.repo.Member().Add(ctx, boardID, userID)
}
