package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/deckhand-app/deckhand/pkg/domain/interfaces"
	"github.com/m-mizutani/goerr/v2"
)

// Collection names under a board document
const (
	boardsCollection   = "boards"
	columnsCollection  = "columns"
	tasksCollection    = "tasks"
	membersCollection  = "members"
	messagesCollection = "messages"
	profilesCollection = "profiles"
	tokensCollection   = "tokens"
)

type Firestore struct {
	client  *firestore.Client
	board   *boardRepository
	column  *columnRepository
	task    *taskRepository
	member  *memberRepository
	profile *profileRepository
	message *messageRepository
	tokens  *tokenRepository
}

var _ interfaces.Repository = &Firestore{}

type Option func(*Firestore)

// WithCollectionPrefix prefixes all top-level collection names. Used by tests
// to isolate runs against a shared project.
func WithCollectionPrefix(prefix string) Option {
	return func(f *Firestore) {
		f.board.collectionPrefix = prefix
		f.column.collectionPrefix = prefix
		f.task.collectionPrefix = prefix
		f.member.collectionPrefix = prefix
		f.profile.collectionPrefix = prefix
		f.message.collectionPrefix = prefix
		f.tokens.collectionPrefix = prefix
	}
}

func New(ctx context.Context, projectID string, databaseID string, opts ...Option) (*Firestore, error) {
	var client *firestore.Client
	var err error
	if databaseID != "" {
		client, err = firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	} else {
		client, err = firestore.NewClient(ctx, projectID)
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client", goerr.V("projectID", projectID))
	}

	f := &Firestore{
		client:  client,
		board:   newBoardRepository(client),
		column:  newColumnRepository(client),
		task:    newTaskRepository(client),
		member:  newMemberRepository(client),
		profile: newProfileRepository(client),
		message: newMessageRepository(client),
		tokens:  newTokenRepository(client),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

func (f *Firestore) Board() interfaces.BoardRepository {
	return f.board
}

func (f *Firestore) Column() interfaces.ColumnRepository {
	return f.column
}

func (f *Firestore) Task() interfaces.TaskRepository {
	return f.task
}

func (f *Firestore) Member() interfaces.MemberRepository {
	return f.member
}

func (f *Firestore) Profile() interfaces.ProfileRepository {
	return f.profile
}

func (f *Firestore) Message() interfaces.MessageRepository {
	return f.message
}

func (f *Firestore) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}
