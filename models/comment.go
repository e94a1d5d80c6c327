package models

import "time"

type Comment struct {
	ID        uint64    `gorm:"column:id;primaryKey" json:"id"`
	PostID    uint64    `gorm:"column:post_id;not null;index:idx_post" json:"post_id"`
	UserID    uint64    `gorm:"column:user_id;not null;index:idx_user" json:"user_id"`
	Content   string    `gorm:"column:content;type:text;not null" json:"content"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Comment) TableName() string {
	return "comments"
}
