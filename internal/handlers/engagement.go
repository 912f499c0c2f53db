package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hawbir/minbar/backend/internal/middleware"
)

type EngagementHandler struct {
	engagement EngagementService
}

func NewEngagementHandler(engagement EngagementService) *EngagementHandler {
	return &EngagementHandler{engagement: engagement}
}

// ToggleLike likes or unlikes an article for the current user (PROTECTED)
func (h *EngagementHandler) ToggleLike(c *gin.Context) {
	articleID, ok := paramID(c, "id")
	if !ok {
		return
	}
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	result, err := h.engagement.ToggleLike(c.Request.Context(), articleID, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// IsLiked reports whether the current user likes an article (PROTECTED)
func (h *EngagementHandler) IsLiked(c *gin.Context) {
	articleID, ok := paramID(c, "id")
	if !ok {
		return
	}
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	liked, err := h.engagement.IsLiked(c.Request.Context(), articleID, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"liked": liked})
}

// GetComments returns an article's comments, newest first
func (h *EngagementHandler) GetComments(c *gin.Context) {
	articleID, ok := paramID(c, "id")
	if !ok {
		return
	}

	comments, err := h.engagement.ListComments(c.Request.Context(), articleID)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := []gin.H{}
	for i := range comments {
		responses = append(responses, commentResponse(&comments[i]))
	}

	c.JSON(http.StatusOK, responses)
}

// CreateComment adds a comment to an article (PROTECTED)
func (h *EngagementHandler) CreateComment(c *gin.Context) {
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
		Body string `json:"body" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.engagement.AddComment(c.Request.Context(), articleID, userID, input.Body)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, commentResponse(comment))
}

// DeleteComment removes a comment (PROTECTED - comment author only)
func (h *EngagementHandler) DeleteComment(c *gin.Context) {
	commentID, ok := paramID(c, "commentId")
	if !ok {
		return
	}
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if err := h.engagement.RemoveComment(c.Request.Context(), commentID, userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted successfully"})
}
