package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/hawbir/minbar/backend/internal/access"
	"github.com/hawbir/minbar/backend/internal/config"
	"github.com/hawbir/minbar/backend/internal/models"
	"github.com/hawbir/minbar/backend/internal/service"
	"github.com/hawbir/minbar/backend/internal/storage"
)

// Service interfaces consumed by the handlers. The concrete implementations
// live in internal/service; tests substitute fakes.

type ArticleService interface {
	Create(ctx context.Context, authorID uint, req models.CreateArticleRequest) (*models.Article, error)
	Update(ctx context.Context, articleID, editorID uint, req models.UpdateArticleRequest) (*models.Article, error)
	SetStatus(ctx context.Context, articleID, reviewerID uint, status, reason string) (*models.Article, error)
	Delete(ctx context.Context, articleID, requesterID uint) error
	Get(ctx context.Context, articleID uint) (*models.Article, error)
	ListApproved(ctx context.Context, orderBy string, limit int) ([]models.Article, error)
	ListByAuthor(ctx context.Context, authorID uint) ([]models.Article, error)
	Search(ctx context.Context, text, tagFilter string) ([]models.Article, error)
}

type EngagementService interface {
	ToggleLike(ctx context.Context, articleID, userID uint) (*service.LikeResult, error)
	IsLiked(ctx context.Context, articleID, userID uint) (bool, error)
	AddComment(ctx context.Context, articleID, userID uint, body string) (*models.Comment, error)
	RemoveComment(ctx context.Context, commentID, requesterID uint) error
	ListComments(ctx context.Context, articleID uint) ([]models.Comment, error)
	CommentsCount(ctx context.Context, articleID uint) (int64, error)
}

type UserService interface {
	Get(ctx context.Context, id uint) (*models.User, error)
	UpdateProfile(ctx context.Context, targetID, requesterID uint, req service.ProfileUpdate) (*models.User, error)
	Promote(ctx context.Context, targetID uint, newRole string, requesterID uint) (*models.User, error)
	SetVerified(ctx context.Context, targetID uint, verified bool, requesterID uint) (*models.User, error)
	SetBanned(ctx context.Context, targetID uint, banned bool, reason string, requesterID uint) (*models.User, error)
	List(ctx context.Context, requesterID uint) ([]models.User, error)
	ListContributors(ctx context.Context) ([]service.Contributor, error)
}

type ModerationService interface {
	PendingCount(ctx context.Context) (int64, error)
	ListPending(ctx context.Context, requesterID uint, limit int) ([]models.Article, error)
}

// Handler combines all handler types
type Handler struct {
	Auth       *AuthHandler
	Article    *ArticleHandler
	Engagement *EngagementHandler
	User       *UserHandler
	Admin      *AdminHandler
	Upload     *UploadHandler
}

// NewHandler creates a unified handler with all sub-handlers
func NewHandler(db *gorm.DB, cfg *config.Config, uploader storage.Uploader) *Handler {
	eval := access.NewEvaluator(cfg.AdminEmail)

	articles := service.NewArticleService(db, eval)
	engagement := service.NewEngagementService(db)
	users := service.NewUserService(db, eval, cfg.DemoteClearsVerified)
	moderation := service.NewModerationService(articles)

	return &Handler{
		Auth:       NewAuthHandler(db, cfg, eval),
		Article:    NewArticleHandler(articles, engagement, eval),
		Engagement: NewEngagementHandler(engagement),
		User:       NewUserHandler(users, articles, eval),
		Admin:      NewAdminHandler(users, articles, moderation, eval),
		Upload:     NewUploadHandler(uploader, cfg.MaxUploadSize),
	}
}

// respondError maps the service error taxonomy onto HTTP status codes.
// Validation and authorization failures always reach the caller; they are
// never swallowed.
func respondError(c *gin.Context, err error) {
	switch {
	case service.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case service.IsAuthorization(err):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case service.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
	}
}

func userResponse(u *models.User, eval *access.Evaluator) gin.H {
	return gin.H{
		"id":          u.ID,
		"name":        u.Name,
		"email":       u.Email,
		"avatar":      u.Avatar,
		"bio":         u.Bio,
		"instagram":   u.Instagram,
		"role":        u.Role,
		"is_verified": eval.IsVerified(u),
		"verified_at": u.VerifiedAt,
		"is_banned":   u.IsBanned,
		"created_at":  u.CreatedAt,
	}
}

func tagValues(tags []models.ArticleTag) []string {
	values := make([]string, 0, len(tags))
	for _, tag := range tags {
		values = append(values, tag.Value)
	}
	return values
}

func articleResponse(a *models.Article, eval *access.Evaluator) gin.H {
	return gin.H{
		"id":              a.ID,
		"title":           a.Title,
		"content":         a.Content,
		"image_url":       a.ImageURL,
		"tags":            tagValues(a.Tags),
		"author_id":       a.AuthorID,
		"author_name":     a.Author.Name,
		"author_avatar":   a.Author.Avatar,
		"author_verified": eval.IsVerified(&a.Author),
		"likes_count":     a.LikesCount,
		"status":          a.Status,
		"rejected_reason": a.RejectedReason,
		"approved_at":     a.ApprovedAt,
		"approved_by":     a.ApprovedBy,
		"created_at":      a.CreatedAt,
		"updated_at":      a.UpdatedAt,
	}
}

func articleListResponse(articles []models.Article, eval *access.Evaluator) []gin.H {
	// If no articles, return empty array not null
	responses := []gin.H{}
	for i := range articles {
		responses = append(responses, articleResponse(&articles[i], eval))
	}
	return responses
}

func commentResponse(comment *models.Comment) gin.H {
	return gin.H{
		"id":          comment.ID,
		"article_id":  comment.ArticleID,
		"author_id":   comment.AuthorID,
		"user_name":   comment.Author.Name,
		"user_avatar": comment.Author.Avatar,
		"body":        comment.Body,
		"created_at":  comment.CreatedAt,
	}
}
