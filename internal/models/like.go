package models

import "time"

// Like is a per-user, per-article engagement marker. The row's existence is
// the source of truth; Article.LikesCount is derived from it.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_article" json:"user_id"`
	ArticleID uint      `gorm:"not null;uniqueIndex:idx_user_article" json:"article_id"`
	CreatedAt time.Time `json:"created_at"`
}
