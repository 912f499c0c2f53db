package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/hawbir/minbar/backend/internal/access"
	"github.com/hawbir/minbar/backend/internal/models"
)

// Orderings accepted by ListApproved.
const (
	OrderRecency = "recent"
	OrderLikes   = "likes"
)

// ArticleService owns article creation, edits, and moderation status
// transitions.
type ArticleService struct {
	db   *gorm.DB
	eval *access.Evaluator
}

func NewArticleService(db *gorm.DB, eval *access.Evaluator) *ArticleService {
	return &ArticleService{db: db, eval: eval}
}

func (s *ArticleService) loadUser(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundf("user", id)
		}
		return nil, err
	}
	return &user, nil
}

func (s *ArticleService) loadArticle(ctx context.Context, id uint) (*models.Article, error) {
	var article models.Article
	if err := s.db.WithContext(ctx).First(&article, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundf("article", id)
		}
		return nil, err
	}
	return &article, nil
}

func validateTags(tags []string) error {
	if len(tags) > models.MaxTags {
		return validationf("at most %d tags allowed, got %d", models.MaxTags, len(tags))
	}
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		if strings.TrimSpace(tag) == "" {
			return validationf("empty tag")
		}
		if _, ok := seen[tag]; ok {
			return validationf("duplicate tag %q", tag)
		}
		seen[tag] = struct{}{}
	}
	return nil
}

func tagRows(articleID uint, tags []string) []models.ArticleTag {
	rows := make([]models.ArticleTag, 0, len(tags))
	for i, tag := range tags {
		rows = append(rows, models.ArticleTag{ArticleID: articleID, Value: tag, Position: i})
	}
	return rows
}

// Create stores a new article in pending status owned by authorID.
func (s *ArticleService) Create(ctx context.Context, authorID uint, req models.CreateArticleRequest) (*models.Article, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, validationf("title is required")
	}
	if strings.TrimSpace(req.Content) == "" {
		return nil, validationf("content is required")
	}
	if err := validateTags(req.Tags); err != nil {
		return nil, err
	}
	if _, err := s.loadUser(ctx, authorID); err != nil {
		return nil, err
	}

	article := models.Article{
		Title:      req.Title,
		Content:    req.Content,
		ImageURL:   req.ImageURL,
		AuthorID:   authorID,
		LikesCount: 0,
		Status:     models.StatusPending,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&article).Error; err != nil {
			return err
		}
		if len(req.Tags) > 0 {
			return tx.Create(tagRows(article.ID, req.Tags)).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, article.ID)
}

// Update mutates only the supplied fields. Only the article's author may edit,
// and edits never touch status or the likes counter — an edited article keeps
// whatever moderation status it already had.
func (s *ArticleService) Update(ctx context.Context, articleID, editorID uint, req models.UpdateArticleRequest) (*models.Article, error) {
	article, err := s.loadArticle(ctx, articleID)
	if err != nil {
		return nil, err
	}
	if article.AuthorID != editorID {
		return nil, authorizationf("only the author can edit this article")
	}

	updates := map[string]any{}
	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, validationf("title is required")
		}
		updates["title"] = *req.Title
	}
	if req.Content != nil {
		if strings.TrimSpace(*req.Content) == "" {
			return nil, validationf("content is required")
		}
		updates["content"] = *req.Content
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}
	if req.Tags != nil {
		if err := validateTags(*req.Tags); err != nil {
			return nil, err
		}
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(&models.Article{}).Where("id = ?", articleID).Updates(updates).Error; err != nil {
				return err
			}
		}
		if req.Tags != nil {
			if err := tx.Where("article_id = ?", articleID).Delete(&models.ArticleTag{}).Error; err != nil {
				return err
			}
			if len(*req.Tags) > 0 {
				if err := tx.Create(tagRows(articleID, *req.Tags)).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, articleID)
}

// SetStatus moves an article to approved or rejected. Admin capability is
// required. Approval stamps the reviewer and time; rejection records the
// optional reason.
func (s *ArticleService) SetStatus(ctx context.Context, articleID, reviewerID uint, status, reason string) (*models.Article, error) {
	reviewer, err := s.loadUser(ctx, reviewerID)
	if err != nil {
		return nil, err
	}
	if !s.eval.CanModerate(reviewer) {
		return nil, authorizationf("moderation requires admin capability")
	}
	if status != models.StatusApproved && status != models.StatusRejected {
		return nil, validationf("status must be %q or %q", models.StatusApproved, models.StatusRejected)
	}
	if _, err := s.loadArticle(ctx, articleID); err != nil {
		return nil, err
	}

	updates := map[string]any{"status": status}
	if status == models.StatusApproved {
		now := time.Now().UTC()
		updates["approved_at"] = &now
		updates["approved_by"] = reviewerID
		updates["rejected_reason"] = ""
	} else {
		updates["rejected_reason"] = reason
		updates["approved_at"] = nil
		updates["approved_by"] = nil
	}

	if err := s.db.WithContext(ctx).Model(&models.Article{}).Where("id = ?", articleID).Updates(updates).Error; err != nil {
		return nil, err
	}

	return s.Get(ctx, articleID)
}

// Delete removes an article. Permitted to the author or any admin. Dependent
// likes, comments, and tags are removed best-effort: a failed child cleanup is
// logged but does not abort the article deletion.
func (s *ArticleService) Delete(ctx context.Context, articleID, requesterID uint) error {
	article, err := s.loadArticle(ctx, articleID)
	if err != nil {
		return err
	}
	requester, err := s.loadUser(ctx, requesterID)
	if err != nil {
		return err
	}
	if article.AuthorID != requesterID && !s.eval.IsAdmin(requester) {
		return authorizationf("only the author or an admin can delete this article")
	}

	db := s.db.WithContext(ctx)
	if err := db.Where("article_id = ?", articleID).Delete(&models.Like{}).Error; err != nil {
		log.Printf("article %d: failed to clean up likes: %v", articleID, err)
	}
	if err := db.Where("article_id = ?", articleID).Delete(&models.Comment{}).Error; err != nil {
		log.Printf("article %d: failed to clean up comments: %v", articleID, err)
	}
	if err := db.Where("article_id = ?", articleID).Delete(&models.ArticleTag{}).Error; err != nil {
		log.Printf("article %d: failed to clean up tags: %v", articleID, err)
	}

	return db.Delete(&models.Article{}, articleID).Error
}

// Get returns a single article with author and ordered tags loaded.
func (s *ArticleService) Get(ctx context.Context, articleID uint) (*models.Article, error) {
	var article models.Article
	err := s.preloaded(ctx).First(&article, articleID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundf("article", articleID)
		}
		return nil, err
	}
	return &article, nil
}

func (s *ArticleService) preloaded(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Preload("Author").
		Preload("Tags", func(db *gorm.DB) *gorm.DB {
			return db.Order("position asc")
		})
}

// ListApproved returns approved articles ordered descending by the chosen key.
// A limit <= 0 means no limit.
func (s *ArticleService) ListApproved(ctx context.Context, orderBy string, limit int) ([]models.Article, error) {
	order := "created_at desc"
	switch orderBy {
	case OrderRecency, "":
	case OrderLikes:
		order = "likes_count desc"
	default:
		return nil, validationf("unknown ordering %q", orderBy)
	}

	query := s.preloaded(ctx).Where("status = ?", models.StatusApproved).Order(order)
	if limit > 0 {
		query = query.Limit(limit)
	}

	var articles []models.Article
	if err := query.Find(&articles).Error; err != nil {
		return nil, err
	}
	return articles, nil
}

// ListPending returns the moderation backlog, newest first. Admin-only read.
func (s *ArticleService) ListPending(ctx context.Context, requesterID uint, limit int) ([]models.Article, error) {
	requester, err := s.loadUser(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	if !s.eval.CanModerate(requester) {
		return nil, authorizationf("the moderation queue requires admin capability")
	}

	query := s.preloaded(ctx).Where("status = ?", models.StatusPending).Order("created_at desc")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var articles []models.Article
	if err := query.Find(&articles).Error; err != nil {
		return nil, err
	}
	return articles, nil
}

// PendingCount returns the moderation queue depth.
func (s *ArticleService) PendingCount(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Article{}).
		Where("status = ?", models.StatusPending).
		Count(&count).Error
	return count, err
}

// ListByAuthor returns all of one author's articles regardless of status,
// newest first. Used for the author's own dashboard.
func (s *ArticleService) ListByAuthor(ctx context.Context, authorID uint) ([]models.Article, error) {
	var articles []models.Article
	err := s.preloaded(ctx).
		Where("author_id = ?", authorID).
		Order("created_at desc").
		Find(&articles).Error
	if err != nil {
		return nil, err
	}
	return articles, nil
}

// Search matches approved articles whose title, content, or any tag contains
// text (case-insensitive). If tagFilter is non-empty the article must also
// carry that exact tag. Result order is not guaranteed.
func (s *ArticleService) Search(ctx context.Context, text, tagFilter string) ([]models.Article, error) {
	pattern := "%" + strings.ToLower(text) + "%"

	query := s.preloaded(ctx).Where("status = ?", models.StatusApproved)
	if text != "" {
		query = query.Where(
			"LOWER(title) LIKE ? OR LOWER(content) LIKE ? OR EXISTS (SELECT 1 FROM article_tags WHERE article_tags.article_id = articles.id AND LOWER(article_tags.value) LIKE ?)",
			pattern, pattern, pattern,
		)
	}
	if tagFilter != "" {
		query = query.Where(
			"EXISTS (SELECT 1 FROM article_tags WHERE article_tags.article_id = articles.id AND article_tags.value = ?)",
			tagFilter,
		)
	}

	var articles []models.Article
	if err := query.Find(&articles).Error; err != nil {
		return nil, err
	}
	return articles, nil
}
