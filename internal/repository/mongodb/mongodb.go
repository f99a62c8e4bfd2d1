// Package mongodb implements the repository interfaces on MongoDB.
//
// This is the production backend: the club data lives in a MongoDB Atlas
// cluster, one collection per resource. The client is created once at
// startup and shared by every request; mongo.Client is safe for concurrent
// use and manages its own connection pool.
package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/ashirpar/clubserver/internal/model"
	"github.com/ashirpar/clubserver/internal/repository"
)

var _ repository.Store = (*Store)(nil)

// Store is a connected MongoDB backend.
type Store struct {
	client  *mongo.Client
	db      *mongo.Database
	indexes *indexGuard
}

// New creates a client for uri and selects the database dbName.
//
// The driver connects lazily, so New does not fail when the cluster is
// unreachable; the first operation (or Ping) surfaces that.
func New(uri, dbName string) (*Store, error) {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1).
		SetStrict(true).
		SetDeprecationErrors(true)

	opts := options.Client().
		ApplyURI(uri).
		SetServerAPIOptions(serverAPI).
		// Embedded documents come back as bson.M so they encode to plain
		// JSON objects instead of key/value arrays.
		SetBSONOptions(&options.BSONOptions{DefaultDocumentM: true})

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("mongodb: connecting: %w", err)
	}

	s := &Store{client: client, db: client.Database(dbName)}
	s.indexes = &indexGuard{create: s.createIndexes}
	return s, nil
}

// Ping runs the ping command against the admin database.
func (s *Store) Ping(ctx context.Context) error {
	err := s.client.Database("admin").RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err()
	if err != nil {
		return fmt.Errorf("mongodb: ping: %w", err)
	}
	return nil
}

// EnsureIndexes creates the unique email index on users. Registration
// relies on it to stay idempotent when two requests race. Once it has
// succeeded further calls return immediately; until then UserCollection
// retries it before every insert.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	return s.indexes.ensure(ctx)
}

func (s *Store) createIndexes(ctx context.Context) error {
	_, err := s.db.Collection(model.CollectionUsers).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("email_unique"),
	})
	if err != nil {
		return fmt.Errorf("mongodb: creating users email index: %w", err)
	}
	return nil
}

// Close disconnects the client.
func (s *Store) Close() error {
	return s.client.Disconnect(context.Background())
}

// Users returns the user repository.
func (s *Store) Users() repository.UserRepository {
	return &UserCollection{coll: s.db.Collection(model.CollectionUsers), indexes: s.indexes}
}

// Players returns the player repository.
func (s *Store) Players() repository.PlayerRepository {
	return &PlayerCollection{coll: s.db.Collection(model.CollectionPlayers)}
}

// Documents returns the schema-free document repository.
func (s *Store) Documents() repository.DocumentRepository {
	return &DocumentCollections{db: s.db}
}

// insertedHex renders the _id the driver generated for an insert.
func insertedHex(res *mongo.InsertOneResult) string {
	if oid, ok := res.InsertedID.(bson.ObjectID); ok {
		return oid.Hex()
	}
	return fmt.Sprint(res.InsertedID)
}
