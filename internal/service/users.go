package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/hawbir/minbar/backend/internal/access"
	"github.com/hawbir/minbar/backend/internal/models"
)

// UserService owns profile reads/updates and the admin-only user management
// operations: role promotion, verification, banning.
type UserService struct {
	db   *gorm.DB
	eval *access.Evaluator

	// demoteClearsVerified controls whether moving a user off the admin role
	// also clears the verified flag. Default deployment keeps verification
	// independent of role.
	demoteClearsVerified bool
}

func NewUserService(db *gorm.DB, eval *access.Evaluator, demoteClearsVerified bool) *UserService {
	return &UserService{db: db, eval: eval, demoteClearsVerified: demoteClearsVerified}
}

func (s *UserService) load(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundf("user", id)
		}
		return nil, err
	}
	return &user, nil
}

func (s *UserService) requireAdmin(ctx context.Context, requesterID uint) (*models.User, error) {
	requester, err := s.load(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	if !s.eval.IsAdmin(requester) {
		return nil, authorizationf("admin capability required")
	}
	return requester, nil
}

// Get returns one user's profile.
func (s *UserService) Get(ctx context.Context, id uint) (*models.User, error) {
	return s.load(ctx, id)
}

// ProfileUpdate carries the self-editable profile fields.
type ProfileUpdate struct {
	Name      *string `json:"name,omitempty"`
	Bio       *string `json:"bio,omitempty"`
	Avatar    *string `json:"avatar,omitempty"`
	Instagram *string `json:"instagram,omitempty"`
}

// UpdateProfile lets a user edit their own display fields.
func (s *UserService) UpdateProfile(ctx context.Context, targetID, requesterID uint, req ProfileUpdate) (*models.User, error) {
	if targetID != requesterID {
		return nil, authorizationf("users can only update their own profile")
	}
	user, err := s.load(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, validationf("name is required")
		}
		user.Name = *req.Name
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.Avatar != nil {
		user.Avatar = *req.Avatar
	}
	if req.Instagram != nil {
		user.Instagram = *req.Instagram
	}

	if err := s.db.WithContext(ctx).Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// Promote sets a user's role. Admin-only. The bootstrap identity can never be
// moved off the admin role. Promoting to admin forces the verified flag on and
// stamps the verification time.
func (s *UserService) Promote(ctx context.Context, targetID uint, newRole string, requesterID uint) (*models.User, error) {
	if _, err := s.requireAdmin(ctx, requesterID); err != nil {
		return nil, err
	}
	if newRole != models.RoleUser && newRole != models.RoleAdmin {
		return nil, validationf("role must be %q or %q", models.RoleUser, models.RoleAdmin)
	}

	target, err := s.load(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if s.eval.IsBootstrap(target) && newRole != models.RoleAdmin {
		return nil, authorizationf("the bootstrap admin cannot be demoted")
	}

	target.Role = newRole
	if newRole == models.RoleAdmin {
		now := time.Now().UTC()
		target.IsVerified = true
		target.VerifiedAt = &now
	} else if s.demoteClearsVerified {
		target.IsVerified = false
		target.VerifiedAt = nil
	}

	if err := s.db.WithContext(ctx).Save(target).Error; err != nil {
		return nil, err
	}
	return target, nil
}

// SetVerified toggles a user's verification badge. Admin-only.
func (s *UserService) SetVerified(ctx context.Context, targetID uint, verified bool, requesterID uint) (*models.User, error) {
	if _, err := s.requireAdmin(ctx, requesterID); err != nil {
		return nil, err
	}
	target, err := s.load(ctx, targetID)
	if err != nil {
		return nil, err
	}

	target.IsVerified = verified
	if verified {
		now := time.Now().UTC()
		target.VerifiedAt = &now
	} else {
		target.VerifiedAt = nil
	}

	if err := s.db.WithContext(ctx).Save(target).Error; err != nil {
		return nil, err
	}
	return target, nil
}

// SetBanned bans or unbans a user. Admin-only. Banning requires a reason;
// unbanning clears the reason and timestamp. A banned user keeps their role
// and verification state.
func (s *UserService) SetBanned(ctx context.Context, targetID uint, banned bool, reason string, requesterID uint) (*models.User, error) {
	if _, err := s.requireAdmin(ctx, requesterID); err != nil {
		return nil, err
	}
	if banned && strings.TrimSpace(reason) == "" {
		return nil, validationf("a ban requires a reason")
	}

	target, err := s.load(ctx, targetID)
	if err != nil {
		return nil, err
	}

	target.IsBanned = banned
	if banned {
		now := time.Now().UTC()
		target.BannedAt = &now
		target.BannedReason = reason
	} else {
		target.BannedAt = nil
		target.BannedReason = ""
	}

	if err := s.db.WithContext(ctx).Save(target).Error; err != nil {
		return nil, err
	}
	return target, nil
}

// List returns all users, newest first. Admin surface.
func (s *UserService) List(ctx context.Context, requesterID uint) ([]models.User, error) {
	if _, err := s.requireAdmin(ctx, requesterID); err != nil {
		return nil, err
	}
	var users []models.User
	if err := s.db.WithContext(ctx).Order("created_at desc").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Contributor pairs a user with their approved article count.
type Contributor struct {
	models.User
	ArticleCount int64 `json:"article_count"`
}

// ListContributors returns users who have at least one approved article,
// ordered by approved article count.
func (s *UserService) ListContributors(ctx context.Context) ([]Contributor, error) {
	var users []models.User
	err := s.db.WithContext(ctx).
		Where("id IN (SELECT DISTINCT author_id FROM articles WHERE status = ?)", models.StatusApproved).
		Find(&users).Error
	if err != nil {
		return nil, err
	}

	contributors := make([]Contributor, 0, len(users))
	for _, user := range users {
		var count int64
		if err := s.db.WithContext(ctx).Model(&models.Article{}).
			Where("author_id = ? AND status = ?", user.ID, models.StatusApproved).
			Count(&count).Error; err != nil {
			return nil, err
		}
		contributors = append(contributors, Contributor{User: user, ArticleCount: count})
	}

	// Highest contributor first
	sort.Slice(contributors, func(i, j int) bool {
		return contributors[i].ArticleCount > contributors[j].ArticleCount
	})

	return contributors, nil
}
