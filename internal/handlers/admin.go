package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hawbir/minbar/backend/internal/access"
	"github.com/hawbir/minbar/backend/internal/middleware"
)

type AdminHandler struct {
	users      UserService
	articles   ArticleService
	moderation ModerationService
	eval       *access.Evaluator
}

func NewAdminHandler(users UserService, articles ArticleService, moderation ModerationService, eval *access.Evaluator) *AdminHandler {
	return &AdminHandler{users: users, articles: articles, moderation: moderation, eval: eval}
}

// GetPendingArticles returns the moderation queue, newest first (ADMIN)
func (h *AdminHandler) GetPendingArticles(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	articles, err := h.moderation.ListPending(c.Request.Context(), userID, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, articleListResponse(articles, h.eval))
}

// GetPendingCount returns the moderation queue depth, used for the admin
// badge (ADMIN)
func (h *AdminHandler) GetPendingCount(c *gin.Context) {
	count, err := h.moderation.PendingCount(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}

// SetArticleStatus approves or rejects an article (ADMIN)
func (h *AdminHandler) SetArticleStatus(c *gin.Context) {
	articleID, ok := paramID(c, "id")
	if !ok {
		return
	}
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var input struct {
		Status string `json:"status" binding:"required,oneof=approved rejected"`
		Reason string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Status must be approved or rejected"})
		return
	}

	article, err := h.articles.SetStatus(c.Request.Context(), articleID, userID, input.Status, input.Reason)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, articleResponse(article, h.eval))
}

// GetUsers lists all registered users (ADMIN)
func (h *AdminHandler) GetUsers(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	users, err := h.users.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := []gin.H{}
	for i := range users {
		responses = append(responses, userResponse(&users[i], h.eval))
	}

	c.JSON(http.StatusOK, responses)
}

// SetUserRole promotes or demotes a user (ADMIN). The bootstrap admin can
// never be demoted.
func (h *AdminHandler) SetUserRole(c *gin.Context) {
	targetID, ok := paramID(c, "id")
	if !ok {
		return
	}
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var input struct {
		Role string `json:"role" binding:"required,oneof=user admin"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Role must be user or admin"})
		return
	}

	user, err := h.users.Promote(c.Request.Context(), targetID, input.Role, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, userResponse(user, h.eval))
}

// SetUserVerified toggles a user's verified badge (ADMIN)
func (h *AdminHandler) SetUserVerified(c *gin.Context) {
	targetID, ok := paramID(c, "id")
	if !ok {
		return
	}
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var input struct {
		Verified *bool `json:"verified" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Verified flag is required"})
		return
	}

	user, err := h.users.SetVerified(c.Request.Context(), targetID, *input.Verified, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, userResponse(user, h.eval))
}

// SetUserBanned bans or unbans a user (ADMIN). Banning requires a reason.
func (h *AdminHandler) SetUserBanned(c *gin.Context) {
	targetID, ok := paramID(c, "id")
	if !ok {
		return
	}
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var input struct {
		Banned *bool  `json:"banned" binding:"required"`
		Reason string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Banned flag is required"})
		return
	}

	user, err := h.users.SetBanned(c.Request.Context(), targetID, *input.Banned, input.Reason, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, userResponse(user, h.eval))
}
