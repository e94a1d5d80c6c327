package models

import "time"

const (
	PostPrivacyPublic  = "public"
	PostPrivacyPrivate = "private"
)

type Post struct {
	ID        uint64    `gorm:"column:id;primary_key" json:"id"`
	UserID    uint64    `gorm:"column:user_id;not null;index:idx_user" json:"user_id"`
	GroupID   *uint64   `gorm:"column:group_id;index:idx_group" json:"group_id,omitempty"` // 群帖时非空
	Content   string    `gorm:"column:content;type:text" json:"content"`
	Privacy   string    `gorm:"column:privacy;type:varchar(10);not null;default:'public'" json:"privacy"`
	CreatedAt time.Time `gorm:"column:created_at;index:idx_created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Post) TableName() string {
	return "posts"
}

// SavedPost 用户收藏的帖子
type SavedPost struct {
	ID        uint64    `gorm:"column:id;primary_key;AUTO_INCREMENT" json:"id"`
	UserID    uint64    `gorm:"column:user_id;not null;uniqueIndex:uk_user_post" json:"user_id"`
	PostID    uint64    `gorm:"column:post_id;not null;uniqueIndex:uk_user_post" json:"post_id"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (SavedPost) TableName() string {
	return "saved_posts"
}
