package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/deckhand-app/deckhand/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type memberDocument struct {
	BoardID string    `firestore:"board_id"`
	UserID  string    `firestore:"user_id"`
	AddedAt time.Time `firestore:"added_at"`
}

type memberRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newMemberRepository(client *firestore.Client) *memberRepository {
	return &memberRepository{client: client}
}

func (r *memberRepository) boardsName() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_" + boardsCollection
	}
	return boardsCollection
}

func (r *memberRepository) collection(boardID types.BoardID) *firestore.CollectionRef {
	return r.client.Collection(r.boardsName()).Doc(string(boardID)).Collection(membersCollection)
}

func (r *memberRepository) Add(ctx context.Context, boardID types.BoardID, userID types.UserID) error {
	doc := &memberDocument{
		BoardID: string(boardID),
		UserID:  string(userID),
		AddedAt: time.Now().UTC(),
	}

	if _, err := r.collection(boardID).Doc(string(userID)).Set(ctx, doc); err != nil {
		return goerr.Wrap(err, "failed to add member",
			goerr.V("board_id", boardID), goerr.V("user_id", userID))
	}

	return nil
}

func (r *memberRepository) Remove(ctx context.Context, boardID types.BoardID, userID types.UserID) error {
	if _, err := r.collection(boardID).Doc(string(userID)).Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to remove member",
			goerr.V("board_id", boardID), goerr.V("user_id", userID))
	}

	return nil
}

func (r *memberRepository) Exists(ctx context.Context, boardID types.BoardID, userID types.UserID) (bool, error) {
	_, err := r.collection(boardID).Doc(string(userID)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return false, nil
		}
		return false, goerr.Wrap(err, "failed to get member",
			goerr.V("board_id", boardID), goerr.V("user_id", userID))
	}

	return true, nil
}

func (r *memberRepository) List(ctx context.Context, boardID types.BoardID) ([]types.UserID, error) {
	iter := r.collection(boardID).Documents(ctx)
	defer iter.Stop()

	users := []types.UserID{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate members", goerr.V("board_id", boardID))
		}

		var data memberDocument
		if err := doc.DataTo(&data); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal member", goerr.V("doc_id", doc.Ref.ID))
		}
		users = append(users, types.UserID(data.UserID))
	}

	return users, nil
}

func (r *memberRepository) ListBoards(ctx context.Context, userID types.UserID) ([]types.BoardID, error) {
	iter := r.client.CollectionGroup(membersCollection).
		Where("user_id", "==", string(userID)).
		Documents(ctx)
	defer iter.Stop()

	boards := []types.BoardID{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate memberships", goerr.V("user_id", userID))
		}

		var data memberDocument
		if err := doc.DataTo(&data); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal member", goerr.V("doc_id", doc.Ref.ID))
		}
		boards = append(boards, types.BoardID(data.BoardID))
	}

	return boards, nil
}
