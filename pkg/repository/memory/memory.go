package memory

import (
	"github.com/deckhand-app/deckhand/pkg/domain/interfaces"
	"github.com/m-mizutani/goerr/v2"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = goerr.New("not found")

// Repository is an alias for Memory to match the pattern
type Repository = Memory

type Memory struct {
	board   *boardRepository
	column  *columnRepository
	task    *taskRepository
	member  *memberRepository
	profile *profileRepository
	message *messageRepository
	tokens  *tokenStore
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		board:   newBoardRepository(),
		column:  newColumnRepository(),
		task:    newTaskRepository(),
		member:  newMemberRepository(),
		profile: newProfileRepository(),
		message: newMessageRepository(),
		tokens:  newTokenStore(),
	}
}

func (m *Memory) Board() interfaces.BoardRepository {
	return m.board
}

func (m *Memory) Column() interfaces.ColumnRepository {
	return m.column
}

func (m *Memory) Task() interfaces.TaskRepository {
	return m.task
}

func (m *Memory) Member() interfaces.MemberRepository {
	return m.member
}

func (m *Memory) Profile() interfaces.ProfileRepository {
	return m.profile
}

func (m *Memory) Message() interfaces.MessageRepository {
	return m.message
}

func (m *Memory) Close() error {
	return nil
}
