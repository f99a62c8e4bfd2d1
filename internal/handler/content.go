package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/ashirpar/clubserver/internal/model"
	"github.com/ashirpar/clubserver/internal/service"
)

// ContentHandler serves scores, the upcoming match and news: collections
// whose bodies are stored exactly as posted.
type ContentHandler struct {
	content *service.ContentService
	logger  *slog.Logger
}

// NewContentHandler creates a ContentHandler.
func NewContentHandler(content *service.ContentService, logger *slog.Logger) *ContentHandler {
	return &ContentHandler{content: content, logger: logger}
}

type insertFunc func(ctx context.Context, doc model.Document) (*model.InsertResult, error)

// create decodes any JSON object and hands it to insert.
func (h *ContentHandler) create(w http.ResponseWriter, r *http.Request, insert insertFunc) {
	var doc model.Document
	if err := decodeBody(w, r, &doc); err != nil {
		writeError(w, err)
		return
	}

	res, err := insert(r.Context(), doc)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// HandleListScores → GET /scores
func (h *ContentHandler) HandleListScores(w http.ResponseWriter, r *http.Request) {
	docs, err := h.content.Scores(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, docs)
}

// HandleCreateScore → POST /scores (session required)
func (h *ContentHandler) HandleCreateScore(w http.ResponseWriter, r *http.Request) {
	h.create(w, r, h.content.AddScore)
}

// HandleNextMatch → GET /nextmatch
//
// The body is always an array holding at most the latest record.
func (h *ContentHandler) HandleNextMatch(w http.ResponseWriter, r *http.Request) {
	docs, err := h.content.NextMatch(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, docs)
}

// HandleCreateNextMatch → POST /nextmatch (session required)
func (h *ContentHandler) HandleCreateNextMatch(w http.ResponseWriter, r *http.Request) {
	h.create(w, r, h.content.AddNextMatch)
}

// HandleListNews → GET /news?category=
func (h *ContentHandler) HandleListNews(w http.ResponseWriter, r *http.Request) {
	docs, err := h.content.News(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, docs)
}

// HandleGetNews → GET /news/{id}
func (h *ContentHandler) HandleGetNews(w http.ResponseWriter, r *http.Request) {
	id, err := pathParam(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	doc, err := h.content.NewsByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// HandleCreateNews → POST /news
func (h *ContentHandler) HandleCreateNews(w http.ResponseWriter, r *http.Request) {
	h.create(w, r, h.content.AddNews)
}
