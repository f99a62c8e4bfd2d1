package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ashirpar/clubserver/internal/apperror"
	"github.com/ashirpar/clubserver/internal/model"
	"github.com/ashirpar/clubserver/internal/repository"
)

// ContentService serves the schema-free collections: scores, the upcoming
// match and news. Bodies are stored as the caller sent them.
type ContentService struct {
	docs   repository.DocumentRepository
	logger *slog.Logger
}

// NewContentService creates a ContentService.
func NewContentService(docs repository.DocumentRepository, logger *slog.Logger) *ContentService {
	return &ContentService{docs: docs, logger: logger}
}

func (s *ContentService) insert(ctx context.Context, collection string, doc model.Document) (*model.InsertResult, error) {
	if doc == nil {
		return nil, apperror.ValidationFailed("body", "a JSON object is required")
	}

	id, err := s.docs.Insert(ctx, collection, doc)
	if err != nil {
		s.logger.Error("failed to insert document",
			slog.String("collection", collection),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("inserting into %s: %w", collection, err)
	}

	s.logger.Debug("document inserted",
		slog.String("collection", collection),
		slog.String("id", id),
	)

	return &model.InsertResult{Acknowledged: true, InsertedID: id}, nil
}

func (s *ContentService) find(ctx context.Context, collection string, filter repository.Filter) ([]model.Document, error) {
	docs, err := s.docs.Find(ctx, collection, filter)
	if err != nil {
		s.logger.Error("failed to query documents",
			slog.String("collection", collection),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("querying %s: %w", collection, err)
	}
	return docs, nil
}

// AddScore stores a match score.
func (s *ContentService) AddScore(ctx context.Context, doc model.Document) (*model.InsertResult, error) {
	return s.insert(ctx, model.CollectionScores, doc)
}

// Scores lists every stored score.
func (s *ContentService) Scores(ctx context.Context) ([]model.Document, error) {
	return s.find(ctx, model.CollectionScores, repository.Filter{})
}

// AddNextMatch stores an upcoming-match record. Older records stay in the
// store but are never read again.
func (s *ContentService) AddNextMatch(ctx context.Context, doc model.Document) (*model.InsertResult, error) {
	return s.insert(ctx, model.CollectionNextMatch, doc)
}

// NextMatch returns at most one record: the most recently inserted.
func (s *ContentService) NextMatch(ctx context.Context) ([]model.Document, error) {
	docs, err := s.docs.FindLatest(ctx, model.CollectionNextMatch, 1)
	if err != nil {
		s.logger.Error("failed to read next match", slog.String("error", err.Error()))
		return nil, fmt.Errorf("reading next match: %w", err)
	}
	return docs, nil
}

// AddNews stores a news article.
func (s *ContentService) AddNews(ctx context.Context, doc model.Document) (*model.InsertResult, error) {
	return s.insert(ctx, model.CollectionNews, doc)
}

// News lists articles. A non-empty category keeps only articles whose
// category equals it exactly.
func (s *ContentService) News(ctx context.Context, category string) ([]model.Document, error) {
	filter := repository.Filter{}
	if category != "" {
		filter = repository.Filter{Field: "category", Value: category}
	}
	return s.find(ctx, model.CollectionNews, filter)
}

// NewsByID returns one article.
func (s *ContentService) NewsByID(ctx context.Context, id string) (model.Document, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "news ID is required")
	}

	doc, err := s.docs.FindByID(ctx, model.CollectionNews, id)
	if err != nil {
		return nil, err
	}
	return doc, nil
}
