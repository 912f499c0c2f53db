package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hawbir/minbar/backend/internal/access"
	"github.com/hawbir/minbar/backend/internal/middleware"
	"github.com/hawbir/minbar/backend/internal/models"
)

type ArticleHandler struct {
	articles   ArticleService
	engagement EngagementService
	eval       *access.Evaluator
}

func NewArticleHandler(articles ArticleService, engagement EngagementService, eval *access.Evaluator) *ArticleHandler {
	return &ArticleHandler{articles: articles, engagement: engagement, eval: eval}
}

func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return 0, false
	}
	return uint(id), true
}

// GetArticles returns approved articles for the public feed. Supports
// ?sort=recent|likes and ?limit=N.
func (h *ArticleHandler) GetArticles(c *gin.Context) {
	sort := c.DefaultQuery("sort", "recent")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	articles, err := h.articles.ListApproved(c.Request.Context(), sort, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, articleListResponse(articles, h.eval))
}

// GetArticle returns a single article by ID, with its comment count.
func (h *ArticleHandler) GetArticle(c *gin.Context) {
	articleID, ok := paramID(c, "id")
	if !ok {
		return
	}

	article, err := h.articles.Get(c.Request.Context(), articleID)
	if err != nil {
		respondError(c, err)
		return
	}

	commentsCount, err := h.engagement.CommentsCount(c.Request.Context(), articleID)
	if err != nil {
		respondError(c, err)
		return
	}

	response := articleResponse(article, h.eval)
	response["comments_count"] = commentsCount

	c.JSON(http.StatusOK, response)
}

// CreateArticle submits a new article for review (PROTECTED)
func (h *ArticleHandler) CreateArticle(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var input models.CreateArticleRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	article, err := h.articles.Create(c.Request.Context(), userID, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, articleResponse(article, h.eval))
}

// UpdateArticle edits an existing article (PROTECTED - author only)
func (h *ArticleHandler) UpdateArticle(c *gin.Context) {
	articleID, ok := paramID(c, "id")
	if !ok {
		return
	}
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var input models.UpdateArticleRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	article, err := h.articles.Update(c.Request.Context(), articleID, userID, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, articleResponse(article, h.eval))
}

// DeleteArticle deletes an article (PROTECTED - author or admin)
func (h *ArticleHandler) DeleteArticle(c *gin.Context) {
	articleID, ok := paramID(c, "id")
	if !ok {
		return
	}
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if err := h.articles.Delete(c.Request.Context(), articleID, userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Article deleted successfully"})
}

// GetMyArticles returns the authenticated author's articles regardless of
// status, for their dashboard (PROTECTED)
func (h *ArticleHandler) GetMyArticles(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	articles, err := h.articles.ListByAuthor(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, articleListResponse(articles, h.eval))
}

// Search matches approved articles against ?q= text and an optional ?tag=
// exact tag filter.
func (h *ArticleHandler) Search(c *gin.Context) {
	text := c.Query("q")
	tag := c.Query("tag")

	articles, err := h.articles.Search(c.Request.Context(), text, tag)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, articleListResponse(articles, h.eval))
}
