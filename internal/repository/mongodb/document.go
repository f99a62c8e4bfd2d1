package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/ashirpar/clubserver/internal/apperror"
	"github.com/ashirpar/clubserver/internal/model"
	"github.com/ashirpar/clubserver/internal/repository"
)

var _ repository.DocumentRepository = (*DocumentCollections)(nil)

// DocumentCollections serves the schema-free collections (scores,
// nextMatch, news), one MongoDB collection each.
type DocumentCollections struct {
	db *mongo.Database
}

// Insert stores a copy of doc; the server assigns the ObjectID.
func (d *DocumentCollections) Insert(ctx context.Context, collection string, doc model.Document) (string, error) {
	res, err := d.db.Collection(collection).InsertOne(ctx, bson.M(doc.Clone()))
	if err != nil {
		return "", fmt.Errorf("mongodb: inserting %s document: %w", collection, err)
	}
	return insertedHex(res), nil
}

// Find returns matching documents in natural (insertion) order.
func (d *DocumentCollections) Find(ctx context.Context, collection string, filter repository.Filter) ([]model.Document, error) {
	query := bson.D{}
	if !filter.IsZero() {
		query = bson.D{{Key: filter.Field, Value: filter.Value}}
	}

	cur, err := d.db.Collection(collection).Find(ctx, query,
		options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("mongodb: querying %s: %w", collection, err)
	}
	return readAll(ctx, collection, cur)
}

// FindLatest sorts on _id descending: ObjectIDs start with their creation
// time, so the newest insert comes first.
func (d *DocumentCollections) FindLatest(ctx context.Context, collection string, limit int) ([]model.Document, error) {
	if limit <= 0 {
		limit = 1
	}

	cur, err := d.db.Collection(collection).Find(ctx, bson.D{},
		options.Find().SetSort(bson.D{{Key: "_id", Value: -1}}).SetLimit(int64(limit)))
	if err != nil {
		return nil, fmt.Errorf("mongodb: querying latest %s: %w", collection, err)
	}
	return readAll(ctx, collection, cur)
}

// FindByID looks a document up by its hex ObjectID.
func (d *DocumentCollections) FindByID(ctx context.Context, collection, id string) (model.Document, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperror.ValidationFailed("id", fmt.Sprintf("invalid id %q", id))
	}

	var raw bson.M
	err = d.db.Collection(collection).FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&raw)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NotFound(collection, id)
		}
		return nil, fmt.Errorf("mongodb: getting %s document %s: %w", collection, id, err)
	}

	return toDocument(raw), nil
}

func readAll(ctx context.Context, collection string, cur *mongo.Cursor) ([]model.Document, error) {
	var raws []bson.M
	if err := cur.All(ctx, &raws); err != nil {
		return nil, fmt.Errorf("mongodb: reading %s: %w", collection, err)
	}

	docs := make([]model.Document, 0, len(raws))
	for _, raw := range raws {
		docs = append(docs, toDocument(raw))
	}
	return docs, nil
}

// toDocument converts a decoded BSON document, rendering the ObjectID as
// its hex string.
func toDocument(raw bson.M) model.Document {
	doc := model.Document(raw)
	if oid, ok := raw[model.IDField].(bson.ObjectID); ok {
		doc[model.IDField] = oid.Hex()
	}
	return doc
}
