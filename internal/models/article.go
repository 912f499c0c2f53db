package models

import "time"

// Moderation status values stored on Article.Status. Only approved articles
// appear in public listings.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// MaxTags is the most tags a single article may carry.
const MaxTags = 5

type Article struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Title    string `gorm:"not null" json:"title"`
	Content  string `gorm:"not null" json:"content"` // opaque HTML from the editor
	ImageURL string `json:"image_url"`

	AuthorID uint `gorm:"not null;index" json:"author_id"`
	Author   User `gorm:"foreignKey:AuthorID" json:"author"`

	Tags []ArticleTag `gorm:"foreignKey:ArticleID;constraint:OnDelete:CASCADE" json:"tags"`

	// Denormalized cache of the Like rows referencing this article.
	LikesCount int `gorm:"default:0" json:"likes_count"`

	Status         string     `gorm:"default:'pending';index" json:"status"`
	RejectedReason string     `json:"rejected_reason,omitempty"`
	ApprovedAt     *time.Time `json:"approved_at,omitempty"`
	ApprovedBy     *uint      `json:"approved_by,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ArticleTag is one tag on one article. Position preserves insertion order;
// (article_id, value) is unique so an article can't carry the same tag twice.
type ArticleTag struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	ArticleID uint   `gorm:"not null;index;uniqueIndex:idx_article_tag" json:"article_id"`
	Value     string `gorm:"not null;uniqueIndex:idx_article_tag" json:"value"`
	Position  int    `gorm:"not null" json:"position"`
}

type CreateArticleRequest struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	ImageURL string   `json:"image_url"`
	Tags     []string `json:"tags"`
}

// UpdateArticleRequest carries only the fields the author wants changed.
// Status and likes count are never editable through this path.
type UpdateArticleRequest struct {
	Title    *string   `json:"title,omitempty"`
	Content  *string   `json:"content,omitempty"`
	ImageURL *string   `json:"image_url,omitempty"`
	Tags     *[]string `json:"tags,omitempty"`
}

type SetStatusRequest struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
}
