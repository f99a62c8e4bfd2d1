package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/xid"

	"github.com/ashirpar/clubserver/internal/model"
	"github.com/ashirpar/clubserver/internal/repository"
)

var _ repository.PlayerRepository = (*PlayerDB)(nil)

// PlayerDB is the players table.
type PlayerDB struct {
	conn *sql.DB
}

// Create inserts a player and fills in its ID and CreatedAt.
func (p *PlayerDB) Create(ctx context.Context, player *model.Player) error {
	player.ID = xid.New().String()
	player.CreatedAt = time.Now().UTC()

	_, err := p.conn.ExecContext(ctx,
		`INSERT INTO players (id, name, image, role, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		player.ID,
		player.Name,
		player.Image,
		player.Role,
		player.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting player %q: %w", player.Name, err)
	}

	return nil
}

// List returns every player in the order they were added.
func (p *PlayerDB) List(ctx context.Context) ([]model.Player, error) {
	rows, err := p.conn.QueryContext(ctx,
		`SELECT id, name, image, role, created_at
		 FROM players
		 ORDER BY seq ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing players: %w", err)
	}
	defer rows.Close()

	players := []model.Player{}
	for rows.Next() {
		var pl model.Player
		if err := rows.Scan(&pl.ID, &pl.Name, &pl.Image, &pl.Role, &pl.CreatedAt); err != nil {
			return nil, fmt.Errorf("sqlite: scanning player: %w", err)
		}
		players = append(players, pl)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating players: %w", err)
	}

	return players, nil
}
