package handlers

import (
	"context"

	"github.com/hawbir/minbar/backend/internal/models"
	"github.com/hawbir/minbar/backend/internal/service"
)

// Hand-written fakes. Each method delegates to an optional function field so a
// test only wires the calls it expects.

type fakeArticleService struct {
	createFn       func(ctx context.Context, authorID uint, req models.CreateArticleRequest) (*models.Article, error)
	updateFn       func(ctx context.Context, articleID, editorID uint, req models.UpdateArticleRequest) (*models.Article, error)
	setStatusFn    func(ctx context.Context, articleID, reviewerID uint, status, reason string) (*models.Article, error)
	deleteFn       func(ctx context.Context, articleID, requesterID uint) error
	getFn          func(ctx context.Context, articleID uint) (*models.Article, error)
	listApprovedFn func(ctx context.Context, orderBy string, limit int) ([]models.Article, error)
	listByAuthorFn func(ctx context.Context, authorID uint) ([]models.Article, error)
	searchFn       func(ctx context.Context, text, tagFilter string) ([]models.Article, error)
}

func (f *fakeArticleService) Create(ctx context.Context, authorID uint, req models.CreateArticleRequest) (*models.Article, error) {
	return f.createFn(ctx, authorID, req)
}

func (f *fakeArticleService) Update(ctx context.Context, articleID, editorID uint, req models.UpdateArticleRequest) (*models.Article, error) {
	return f.updateFn(ctx, articleID, editorID, req)
}

func (f *fakeArticleService) SetStatus(ctx context.Context, articleID, reviewerID uint, status, reason string) (*models.Article, error) {
	return f.setStatusFn(ctx, articleID, reviewerID, status, reason)
}

func (f *fakeArticleService) Delete(ctx context.Context, articleID, requesterID uint) error {
	return f.deleteFn(ctx, articleID, requesterID)
}

func (f *fakeArticleService) Get(ctx context.Context, articleID uint) (*models.Article, error) {
	return f.getFn(ctx, articleID)
}

func (f *fakeArticleService) ListApproved(ctx context.Context, orderBy string, limit int) ([]models.Article, error) {
	return f.listApprovedFn(ctx, orderBy, limit)
}

func (f *fakeArticleService) ListByAuthor(ctx context.Context, authorID uint) ([]models.Article, error) {
	return f.listByAuthorFn(ctx, authorID)
}

func (f *fakeArticleService) Search(ctx context.Context, text, tagFilter string) ([]models.Article, error) {
	return f.searchFn(ctx, text, tagFilter)
}

type fakeEngagementService struct {
	toggleLikeFn    func(ctx context.Context, articleID, userID uint) (*service.LikeResult, error)
	isLikedFn       func(ctx context.Context, articleID, userID uint) (bool, error)
	addCommentFn    func(ctx context.Context, articleID, userID uint, body string) (*models.Comment, error)
	removeCommentFn func(ctx context.Context, commentID, requesterID uint) error
	listCommentsFn  func(ctx context.Context, articleID uint) ([]models.Comment, error)
	commentsCountFn func(ctx context.Context, articleID uint) (int64, error)
}

func (f *fakeEngagementService) ToggleLike(ctx context.Context, articleID, userID uint) (*service.LikeResult, error) {
	return f.toggleLikeFn(ctx, articleID, userID)
}

func (f *fakeEngagementService) IsLiked(ctx context.Context, articleID, userID uint) (bool, error) {
	return f.isLikedFn(ctx, articleID, userID)
}

func (f *fakeEngagementService) AddComment(ctx context.Context, articleID, userID uint, body string) (*models.Comment, error) {
	return f.addCommentFn(ctx, articleID, userID, body)
}

func (f *fakeEngagementService) RemoveComment(ctx context.Context, commentID, requesterID uint) error {
	return f.removeCommentFn(ctx, commentID, requesterID)
}

func (f *fakeEngagementService) ListComments(ctx context.Context, articleID uint) ([]models.Comment, error) {
	return f.listCommentsFn(ctx, articleID)
}

func (f *fakeEngagementService) CommentsCount(ctx context.Context, articleID uint) (int64, error) {
	return f.commentsCountFn(ctx, articleID)
}

type fakeUserService struct {
	getFn              func(ctx context.Context, id uint) (*models.User, error)
	updateProfileFn    func(ctx context.Context, targetID, requesterID uint, req service.ProfileUpdate) (*models.User, error)
	promoteFn          func(ctx context.Context, targetID uint, newRole string, requesterID uint) (*models.User, error)
	setVerifiedFn      func(ctx context.Context, targetID uint, verified bool, requesterID uint) (*models.User, error)
	setBannedFn        func(ctx context.Context, targetID uint, banned bool, reason string, requesterID uint) (*models.User, error)
	listFn             func(ctx context.Context, requesterID uint) ([]models.User, error)
	listContributorsFn func(ctx context.Context) ([]service.Contributor, error)
}

func (f *fakeUserService) Get(ctx context.Context, id uint) (*models.User, error) {
	return f.getFn(ctx, id)
}

func (f *fakeUserService) UpdateProfile(ctx context.Context, targetID, requesterID uint, req service.ProfileUpdate) (*models.User, error) {
	return f.updateProfileFn(ctx, targetID, requesterID, req)
}

func (f *fakeUserService) Promote(ctx context.Context, targetID uint, newRole string, requesterID uint) (*models.User, error) {
	return f.promoteFn(ctx, targetID, newRole, requesterID)
}

func (f *fakeUserService) SetVerified(ctx context.Context, targetID uint, verified bool, requesterID uint) (*models.User, error) {
	return f.setVerifiedFn(ctx, targetID, verified, requesterID)
}

func (f *fakeUserService) SetBanned(ctx context.Context, targetID uint, banned bool, reason string, requesterID uint) (*models.User, error) {
	return f.setBannedFn(ctx, targetID, banned, reason, requesterID)
}

func (f *fakeUserService) List(ctx context.Context, requesterID uint) ([]models.User, error) {
	return f.listFn(ctx, requesterID)
}

func (f *fakeUserService) ListContributors(ctx context.Context) ([]service.Contributor, error) {
	return f.listContributorsFn(ctx)
}

type fakeModerationService struct {
	pendingCountFn func(ctx context.Context) (int64, error)
	listPendingFn  func(ctx context.Context, requesterID uint, limit int) ([]models.Article, error)
}

func (f *fakeModerationService) PendingCount(ctx context.Context) (int64, error) {
	return f.pendingCountFn(ctx)
}

func (f *fakeModerationService) ListPending(ctx context.Context, requesterID uint, limit int) ([]models.Article, error) {
	return f.listPendingFn(ctx, requesterID, limit)
}
