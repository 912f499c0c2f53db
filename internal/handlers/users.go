package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hawbir/minbar/backend/internal/access"
	"github.com/hawbir/minbar/backend/internal/middleware"
	"github.com/hawbir/minbar/backend/internal/models"
	"github.com/hawbir/minbar/backend/internal/service"
)

type UserHandler struct {
	users    UserService
	articles ArticleService
	eval     *access.Evaluator
}

func NewUserHandler(users UserService, articles ArticleService, eval *access.Evaluator) *UserHandler {
	return &UserHandler{users: users, articles: articles, eval: eval}
}

// GetUserProfile returns a user's public profile along with their approved
// articles.
func (h *UserHandler) GetUserProfile(c *gin.Context) {
	userID, ok := paramID(c, "id")
	if !ok {
		return
	}

	user, err := h.users.Get(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	articles, err := h.articles.ListByAuthor(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	// Only approved work is public; the rest of the dashboard belongs to the
	// author alone.
	approved := make([]models.Article, 0, len(articles))
	for _, article := range articles {
		if article.Status == models.StatusApproved {
			approved = append(approved, article)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"user":     userResponse(user, h.eval),
		"articles": articleListResponse(approved, h.eval),
	})
}

// UpdateUserProfile edits the caller's own profile (PROTECTED)
func (h *UserHandler) UpdateUserProfile(c *gin.Context) {
	targetID, ok := paramID(c, "id")
	if !ok {
		return
	}
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var input service.ProfileUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.UpdateProfile(c.Request.Context(), targetID, userID, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, userResponse(user, h.eval))
}

// GetContributors lists users with at least one approved article
func (h *UserHandler) GetContributors(c *gin.Context) {
	contributors, err := h.users.ListContributors(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	responses := []gin.H{}
	for i := range contributors {
		response := userResponse(&contributors[i].User, h.eval)
		response["article_count"] = contributors[i].ArticleCount
		responses = append(responses, response)
	}

	c.JSON(http.StatusOK, responses)
}
