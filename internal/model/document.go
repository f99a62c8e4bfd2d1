package model

// Collection names shared by every store backend.
const (
	CollectionUsers     = "users"
	CollectionPlayers   = "players"
	CollectionScores    = "scores"
	CollectionNextMatch = "nextMatch"
	CollectionNews      = "news"
)

// IDField is the JSON key under which a store-generated identifier is exposed.
const IDField = "_id"

// Document is a schema-free record persisted verbatim.
//
// Scores, next-match entries and news articles are all Documents: the club
// front-end owns their shape and the server never interprets them beyond
// the optional news "category" filter.
type Document map[string]any

// ID returns the store-generated identifier, or "" if the document was
// never stored.
func (d Document) ID() string {
	id, _ := d[IDField].(string)
	return id
}

// Clone returns a shallow copy of d without any caller-supplied identifier,
// ready to be handed to a store for insertion.
func (d Document) Clone() Document {
	out := make(Document, len(d))
	for k, v := range d {
		if k == IDField {
			continue
		}
		out[k] = v
	}
	return out
}

// InsertResult mirrors the acknowledgement a document store returns for a
// single insert.
type InsertResult struct {
	Acknowledged bool   `json:"acknowledged"`
	InsertedID   string `json:"insertedId"`
}
