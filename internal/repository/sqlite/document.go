package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/xid"

	"github.com/ashirpar/clubserver/internal/apperror"
	"github.com/ashirpar/clubserver/internal/model"
	"github.com/ashirpar/clubserver/internal/repository"
)

var _ repository.DocumentRepository = (*DocumentDB)(nil)

// DocumentDB keeps every schema-free collection in the documents table,
// one JSON body per row.
type DocumentDB struct {
	conn *sql.DB
}

// Insert stores doc in collection under a fresh xid.
func (d *DocumentDB) Insert(ctx context.Context, collection string, doc model.Document) (string, error) {
	body, err := json.Marshal(doc.Clone())
	if err != nil {
		return "", fmt.Errorf("sqlite: encoding %s document: %w", collection, err)
	}

	id := xid.New().String()
	_, err = d.conn.ExecContext(ctx,
		`INSERT INTO documents (id, collection, body, created_at) VALUES (?, ?, ?, ?)`,
		id, collection, string(body), time.Now().UTC(),
	)
	if err != nil {
		return "", fmt.Errorf("sqlite: inserting %s document: %w", collection, err)
	}

	return id, nil
}

// Find returns the documents of collection matching filter, oldest first.
func (d *DocumentDB) Find(ctx context.Context, collection string, filter repository.Filter) ([]model.Document, error) {
	query := `SELECT id, body FROM documents WHERE collection = ?`
	args := []any{collection}

	if !filter.IsZero() {
		// The path is bound as a parameter; quoting the key keeps field
		// names with dots or spaces from being read as nested paths.
		query += ` AND json_extract(body, ?) = ?`
		args = append(args, jsonPath(filter.Field), filter.Value)
	}
	query += ` ORDER BY seq ASC`

	return d.query(ctx, collection, query, args...)
}

// FindLatest returns up to limit documents of collection, newest first.
func (d *DocumentDB) FindLatest(ctx context.Context, collection string, limit int) ([]model.Document, error) {
	if limit <= 0 {
		limit = 1
	}
	return d.query(ctx, collection,
		`SELECT id, body FROM documents WHERE collection = ? ORDER BY seq DESC LIMIT ?`,
		collection, limit,
	)
}

// FindByID looks a document up by its xid.
func (d *DocumentDB) FindByID(ctx context.Context, collection, id string) (model.Document, error) {
	if _, err := xid.FromString(id); err != nil {
		return nil, apperror.ValidationFailed("id", fmt.Sprintf("invalid id %q", id))
	}

	var body string
	err := d.conn.QueryRowContext(ctx,
		`SELECT body FROM documents WHERE collection = ? AND id = ?`,
		collection, id,
	).Scan(&body)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound(collection, id)
		}
		return nil, fmt.Errorf("sqlite: getting %s document %s: %w", collection, id, err)
	}

	return decodeDocument(id, body)
}

func (d *DocumentDB) query(ctx context.Context, collection, query string, args ...any) ([]model.Document, error) {
	rows, err := d.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: querying %s: %w", collection, err)
	}
	defer rows.Close()

	docs := []model.Document{}
	for rows.Next() {
		var id, body string
		if err := rows.Scan(&id, &body); err != nil {
			return nil, fmt.Errorf("sqlite: scanning %s document: %w", collection, err)
		}
		doc, err := decodeDocument(id, body)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating %s: %w", collection, err)
	}

	return docs, nil
}

func decodeDocument(id, body string) (model.Document, error) {
	doc := model.Document{}
	if err := json.Unmarshal([]byte(body), &doc); err != nil {
		return nil, fmt.Errorf("sqlite: decoding document %s: %w", id, err)
	}
	doc[model.IDField] = id
	return doc, nil
}

func jsonPath(field string) string {
	return `$."` + strings.ReplaceAll(field, `"`, `\"`) + `"`
}
