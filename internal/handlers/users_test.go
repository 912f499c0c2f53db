package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hawbir/minbar/backend/internal/access"
	"github.com/hawbir/minbar/backend/internal/models"
	"github.com/hawbir/minbar/backend/internal/service"
)

func TestGetUserProfile(t *testing.T) {
	users := &fakeUserService{
		getFn: func(ctx context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Name: "Writer", Email: "writer@example.com"}, nil
		},
	}
	articles := &fakeArticleService{
		listByAuthorFn: func(ctx context.Context, authorID uint) ([]models.Article, error) {
			return []models.Article{
				testArticle(1, "Public", models.StatusApproved),
				testArticle(2, "Draft", models.StatusPending),
				testArticle(3, "Refused", models.StatusRejected),
			}, nil
		},
	}
	handler := NewUserHandler(users, articles, access.NewEvaluator(""))

	r := gin.New()
	r.GET("/api/users/:id", handler.GetUserProfile)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/users/7", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	body := decodeBody(t, rr)

	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Writer", user["name"])

	// Only the approved article is publicly visible.
	listed, ok := body["articles"].([]any)
	require.True(t, ok)
	require.Len(t, listed, 1)
	first, ok := listed[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Public", first["title"])
}

func TestUpdateUserProfile(t *testing.T) {
	users := &fakeUserService{
		updateProfileFn: func(ctx context.Context, targetID, requesterID uint, req service.ProfileUpdate) (*models.User, error) {
			assert.EqualValues(t, 7, targetID)
			assert.EqualValues(t, 7, requesterID)
			require.NotNil(t, req.Bio)
			assert.Equal(t, "Poet", *req.Bio)
			return &models.User{ID: targetID, Name: "Writer", Bio: *req.Bio}, nil
		},
	}
	handler := NewUserHandler(users, &fakeArticleService{}, access.NewEvaluator(""))

	r := gin.New()
	r.PUT("/api/users/:id", asUser(7), handler.UpdateUserProfile)

	payload, _ := json.Marshal(gin.H{"bio": "Poet"})
	req := httptest.NewRequest(http.MethodPut, "/api/users/7", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	body := decodeBody(t, rr)
	assert.Equal(t, "Poet", body["bio"])
}

func TestGetContributors(t *testing.T) {
	users := &fakeUserService{
		listContributorsFn: func(ctx context.Context) ([]service.Contributor, error) {
			return []service.Contributor{
				{User: models.User{ID: 1, Name: "Prolific"}, ArticleCount: 4},
				{User: models.User{ID: 2, Name: "Occasional"}, ArticleCount: 1},
			}, nil
		},
	}
	handler := NewUserHandler(users, &fakeArticleService{}, access.NewEvaluator(""))

	r := gin.New()
	r.GET("/api/contributors", handler.GetContributors)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/contributors", nil))

	assert.Equal(t, http.StatusOK, rr.Code)

	var body []map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	require.Len(t, body, 2)
	assert.Equal(t, "Prolific", body[0]["name"])
	assert.EqualValues(t, 4, body[0]["article_count"])
}
