package service

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/hawbir/minbar/backend/internal/models"
)

// EngagementService owns like toggling, the denormalized like counter, and
// comments.
type EngagementService struct {
	db *gorm.DB
}

func NewEngagementService(db *gorm.DB) *EngagementService {
	return &EngagementService{db: db}
}

// LikeResult is the outcome of a toggle: the caller's new liked state and the
// article's counter after the write.
type LikeResult struct {
	Liked bool `json:"liked"`
	Count int  `json:"count"`
}

// ToggleLike creates the (article, user) Like row if absent, otherwise removes
// it, and adjusts Article.LikesCount to follow. The Like row and the counter
// are two separate writes, not a transaction: concurrent toggles on the same
// article can drift the counter. The counter never goes below zero.
func (s *EngagementService) ToggleLike(ctx context.Context, articleID, userID uint) (*LikeResult, error) {
	db := s.db.WithContext(ctx)

	var article models.Article
	if err := db.First(&article, articleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundf("article", articleID)
		}
		return nil, err
	}

	var existing models.Like
	err := db.Where("article_id = ? AND user_id = ?", articleID, userID).First(&existing).Error

	if err == nil {
		// Already liked: remove the row, then floor the counter at zero.
		if err := db.Delete(&existing).Error; err != nil {
			return nil, err
		}
		count := article.LikesCount - 1
		if count < 0 {
			count = 0
		}
		if err := db.Model(&models.Article{}).Where("id = ?", articleID).
			Update("likes_count", count).Error; err != nil {
			return nil, err
		}
		return &LikeResult{Liked: false, Count: count}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	like := models.Like{ArticleID: articleID, UserID: userID}
	if err := db.Create(&like).Error; err != nil {
		return nil, err
	}
	count := article.LikesCount + 1
	if err := db.Model(&models.Article{}).Where("id = ?", articleID).
		Update("likes_count", count).Error; err != nil {
		return nil, err
	}
	return &LikeResult{Liked: true, Count: count}, nil
}

// IsLiked reports whether userID currently likes articleID.
func (s *EngagementService) IsLiked(ctx context.Context, articleID, userID uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Like{}).
		Where("article_id = ? AND user_id = ?", articleID, userID).
		Count(&count).Error
	return count > 0, err
}

// AddComment appends a comment to an article.
func (s *EngagementService) AddComment(ctx context.Context, articleID, userID uint, body string) (*models.Comment, error) {
	if strings.TrimSpace(body) == "" {
		return nil, validationf("comment body is required")
	}

	db := s.db.WithContext(ctx)

	var article models.Article
	if err := db.First(&article, articleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundf("article", articleID)
		}
		return nil, err
	}

	comment := models.Comment{
		ArticleID: articleID,
		AuthorID:  userID,
		Body:      body,
	}
	if err := db.Create(&comment).Error; err != nil {
		return nil, err
	}

	if err := db.Preload("Author").First(&comment, comment.ID).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// RemoveComment deletes a comment. Only the comment's author may remove it.
func (s *EngagementService) RemoveComment(ctx context.Context, commentID, requesterID uint) error {
	db := s.db.WithContext(ctx)

	var comment models.Comment
	if err := db.First(&comment, commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundf("comment", commentID)
		}
		return err
	}
	if comment.AuthorID != requesterID {
		return authorizationf("only the comment's author can remove it")
	}

	return db.Delete(&comment).Error
}

// ListComments returns an article's comments, newest first, with author
// display data loaded.
func (s *EngagementService) ListComments(ctx context.Context, articleID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := s.db.WithContext(ctx).
		Where("article_id = ?", articleID).
		Preload("Author").
		Order("created_at desc").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// CommentsCount returns the number of comments on an article.
func (s *EngagementService) CommentsCount(ctx context.Context, articleID uint) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Comment{}).
		Where("article_id = ?", articleID).
		Count(&count).Error
	return count, err
}

// LikesRowCount counts the Like rows referencing an article. This is the
// authoritative value the denormalized Article.LikesCount approximates.
func (s *EngagementService) LikesRowCount(ctx context.Context, articleID uint) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Like{}).
		Where("article_id = ?", articleID).
		Count(&count).Error
	return count, err
}
