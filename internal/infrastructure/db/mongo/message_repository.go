package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/spandanmajumder/portfolio/internal/core/domain"
)

// MessageRepository implements ports.MessageRepository using MongoDB.
type MessageRepository struct {
	coll *mongo.Collection
	seq  *sequence
}

func NewMessageRepository(db *mongo.Database) *MessageRepository {
	return &MessageRepository{
		coll: db.Collection(collectionMessages),
		seq:  newSequence(db, collectionMessages),
	}
}

func (r *MessageRepository) Create(ctx context.Context, msg *domain.ContactMessage) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.seq.next(ctx)
	if err != nil {
		return err
	}
	msg.ID = id

	if _, err := r.coll.InsertOne(ctx, msg); err != nil {
		msg.ID = 0
		return fmt.Errorf("insert contact message: %w", err)
	}
	return nil
}

func (r *MessageRepository) FindByID(ctx context.Context, id int64) (*domain.ContactMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var msg domain.ContactMessage
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&msg); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find contact message: %w", err)
	}
	return &msg, nil
}

func (r *MessageRepository) List(ctx context.Context) ([]*domain.ContactMessage, error) {
	msgs, err := findAll[domain.ContactMessage](ctx, r.coll, bson.M{}, newestFirst())
	if err != nil {
		return nil, fmt.Errorf("list contact messages: %w", err)
	}
	return msgs, nil
}

// MarkAsRead sets read=true. Repeating the call on a read message is a no-op
// that still returns the message.
func (r *MessageRepository) MarkAsRead(ctx context.Context, id int64) (*domain.ContactMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var msg domain.ContactMessage
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"read": true}},
		returnAfter(),
	).Decode(&msg)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("mark contact message read: %w", err)
	}
	return &msg, nil
}

func (r *MessageRepository) Delete(ctx context.Context, id int64) error {
	if err := deleteByID(ctx, r.coll, id, domain.ErrNotFound); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return fmt.Errorf("delete contact message: %w", err)
	}
	return nil
}
