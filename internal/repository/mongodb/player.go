package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/ashirpar/clubserver/internal/model"
	"github.com/ashirpar/clubserver/internal/repository"
)

var _ repository.PlayerRepository = (*PlayerCollection)(nil)

// PlayerCollection is the players collection.
type PlayerCollection struct {
	coll *mongo.Collection
}

type playerDoc struct {
	ID           bson.ObjectID `bson:"_id,omitempty"`
	model.Player `bson:",inline"`
}

// Create inserts a player and fills in its ID and CreatedAt.
func (c *PlayerCollection) Create(ctx context.Context, player *model.Player) error {
	player.CreatedAt = time.Now().UTC()

	res, err := c.coll.InsertOne(ctx, playerDoc{Player: *player})
	if err != nil {
		return fmt.Errorf("mongodb: inserting player %q: %w", player.Name, err)
	}

	player.ID = insertedHex(res)
	return nil
}

// List returns every player, oldest first.
func (c *PlayerCollection) List(ctx context.Context) ([]model.Player, error) {
	cur, err := c.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("mongodb: listing players: %w", err)
	}

	var docs []playerDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("mongodb: reading players: %w", err)
	}

	players := make([]model.Player, 0, len(docs))
	for _, d := range docs {
		p := d.Player
		p.ID = d.ID.Hex()
		players = append(players, p)
	}
	return players, nil
}
