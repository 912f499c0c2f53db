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

	"github.com/hawbir/minbar/backend/internal/access"
	"github.com/hawbir/minbar/backend/internal/models"
)

func newAdminHandler(users UserService, articles ArticleService, moderation ModerationService) *AdminHandler {
	return NewAdminHandler(users, articles, moderation, access.NewEvaluator("root@example.com"))
}

func TestSetArticleStatus(t *testing.T) {
	articles := &fakeArticleService{
		setStatusFn: func(ctx context.Context, articleID, reviewerID uint, status, reason string) (*models.Article, error) {
			assert.EqualValues(t, 5, articleID)
			assert.EqualValues(t, 1, reviewerID)
			assert.Equal(t, models.StatusRejected, status)
			assert.Equal(t, "duplicate", reason)
			article := testArticle(5, "Reviewed", models.StatusRejected)
			article.RejectedReason = reason
			return &article, nil
		},
	}
	handler := newAdminHandler(&fakeUserService{}, articles, &fakeModerationService{})

	r := gin.New()
	r.PUT("/api/admin/articles/:id/status", asUser(1), handler.SetArticleStatus)

	payload, _ := json.Marshal(gin.H{"status": "rejected", "reason": "duplicate"})
	req := httptest.NewRequest(http.MethodPut, "/api/admin/articles/5/status", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	body := decodeBody(t, rr)
	assert.Equal(t, models.StatusRejected, body["status"])
	assert.Equal(t, "duplicate", body["rejected_reason"])
}

func TestSetArticleStatus_RejectsUnknownStatus(t *testing.T) {
	handler := newAdminHandler(&fakeUserService{}, &fakeArticleService{}, &fakeModerationService{})

	r := gin.New()
	r.PUT("/api/admin/articles/:id/status", asUser(1), handler.SetArticleStatus)

	payload, _ := json.Marshal(gin.H{"status": "pending"})
	req := httptest.NewRequest(http.MethodPut, "/api/admin/articles/5/status", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGetPendingCount(t *testing.T) {
	moderation := &fakeModerationService{
		pendingCountFn: func(ctx context.Context) (int64, error) {
			return 12, nil
		},
	}
	handler := newAdminHandler(&fakeUserService{}, &fakeArticleService{}, moderation)

	r := gin.New()
	r.GET("/api/admin/articles/pending/count", asUser(1), handler.GetPendingCount)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/admin/articles/pending/count", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	body := decodeBody(t, rr)
	assert.EqualValues(t, 12, body["count"])
}

func TestGetPendingArticles(t *testing.T) {
	moderation := &fakeModerationService{
		listPendingFn: func(ctx context.Context, requesterID uint, limit int) ([]models.Article, error) {
			assert.EqualValues(t, 1, requesterID)
			return []models.Article{testArticle(2, "Queued", models.StatusPending)}, nil
		},
	}
	handler := newAdminHandler(&fakeUserService{}, &fakeArticleService{}, moderation)

	r := gin.New()
	r.GET("/api/admin/articles/pending", asUser(1), handler.GetPendingArticles)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/admin/articles/pending", nil))

	assert.Equal(t, http.StatusOK, rr.Code)

	var body []map[string]any
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Len(t, body, 1)
}

func TestSetUserRole(t *testing.T) {
	users := &fakeUserService{
		promoteFn: func(ctx context.Context, targetID uint, newRole string, requesterID uint) (*models.User, error) {
			assert.EqualValues(t, 4, targetID)
			assert.Equal(t, models.RoleAdmin, newRole)
			assert.EqualValues(t, 1, requesterID)
			return &models.User{ID: targetID, Name: "Target", Role: newRole, IsVerified: true}, nil
		},
	}
	handler := newAdminHandler(users, &fakeArticleService{}, &fakeModerationService{})

	r := gin.New()
	r.PUT("/api/admin/users/:id/role", asUser(1), handler.SetUserRole)

	payload, _ := json.Marshal(gin.H{"role": "admin"})
	req := httptest.NewRequest(http.MethodPut, "/api/admin/users/4/role", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	body := decodeBody(t, rr)
	assert.Equal(t, models.RoleAdmin, body["role"])
	assert.Equal(t, true, body["is_verified"])
}

func TestSetUserBanned(t *testing.T) {
	users := &fakeUserService{
		setBannedFn: func(ctx context.Context, targetID uint, banned bool, reason string, requesterID uint) (*models.User, error) {
			assert.True(t, banned)
			assert.Equal(t, "spam", reason)
			return &models.User{ID: targetID, Name: "Target", IsBanned: true, BannedReason: reason}, nil
		},
	}
	handler := newAdminHandler(users, &fakeArticleService{}, &fakeModerationService{})

	r := gin.New()
	r.PUT("/api/admin/users/:id/ban", asUser(1), handler.SetUserBanned)

	payload, _ := json.Marshal(gin.H{"banned": true, "reason": "spam"})
	req := httptest.NewRequest(http.MethodPut, "/api/admin/users/4/ban", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	body := decodeBody(t, rr)
	assert.Equal(t, true, body["is_banned"])
}

func TestSetUserVerified_MissingFlag(t *testing.T) {
	handler := newAdminHandler(&fakeUserService{}, &fakeArticleService{}, &fakeModerationService{})

	r := gin.New()
	r.PUT("/api/admin/users/:id/verify", asUser(1), handler.SetUserVerified)

	req := httptest.NewRequest(http.MethodPut, "/api/admin/users/4/verify", bytes.NewReader([]byte("{}")))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
