package service

import (
	"context"

	"github.com/hawbir/minbar/backend/internal/models"
)

// ModerationService is a read-side view over the article lifecycle, filtered
// to pending items. The admin surface treats queue depth as a first-class
// signal (badge counts), so it gets its own component; it holds no state of
// its own.
type ModerationService struct {
	articles *ArticleService
}

func NewModerationService(articles *ArticleService) *ModerationService {
	return &ModerationService{articles: articles}
}

// PendingCount returns the number of articles awaiting review.
func (s *ModerationService) PendingCount(ctx context.Context) (int64, error) {
	return s.articles.PendingCount(ctx)
}

// ListPending returns the review backlog, newest first. Admin-only.
func (s *ModerationService) ListPending(ctx context.Context, requesterID uint, limit int) ([]models.Article, error) {
	return s.articles.ListPending(ctx, requesterID, limit)
}
