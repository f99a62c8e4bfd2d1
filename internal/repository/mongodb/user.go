package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/ashirpar/clubserver/internal/apperror"
	"github.com/ashirpar/clubserver/internal/model"
	"github.com/ashirpar/clubserver/internal/repository"
)

var _ repository.UserRepository = (*UserCollection)(nil)

// UserCollection is the users collection.
type UserCollection struct {
	coll    *mongo.Collection
	indexes *indexGuard
}

// userDoc is the stored shape of a model.User.
type userDoc struct {
	ID         bson.ObjectID `bson:"_id,omitempty"`
	model.User `bson:",inline"`
}

func (d userDoc) toModel() *model.User {
	u := d.User
	u.ID = d.ID.Hex()
	return &u
}

// Create inserts user. The unique email index turns a duplicate into
// apperror.ErrConflict.
func (c *UserCollection) Create(ctx context.Context, user *model.User) error {
	if err := c.indexes.ensure(ctx); err != nil {
		return fmt.Errorf("mongodb: inserting user %s: %w", user.Email, err)
	}

	user.CreatedAt = time.Now().UTC()

	res, err := c.coll.InsertOne(ctx, userDoc{User: *user})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperror.Conflict("user", user.Email)
		}
		return fmt.Errorf("mongodb: inserting user %s: %w", user.Email, err)
	}

	user.ID = insertedHex(res)
	return nil
}

// GetByEmail finds a user by exact email.
func (c *UserCollection) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var doc userDoc
	err := c.coll.FindOne(ctx, bson.D{{Key: "email", Value: email}}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NotFoundBy("user", "email", email)
		}
		return nil, fmt.Errorf("mongodb: getting user %s: %w", email, err)
	}

	return doc.toModel(), nil
}
