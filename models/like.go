package models

import "time"

// Like 的目标类型
const (
	LikeTargetPost   = "post"
	LikeTargetStatus = "status"
)

type Like struct {
	ID         uint64    `gorm:"column:id;primary_key;AUTO_INCREMENT" json:"id"`
	UserID     uint64    `gorm:"column:user_id;not null;uniqueIndex:uk_user_target" json:"user_id"`
	TargetType string    `gorm:"column:target_type;type:varchar(8);not null;uniqueIndex:uk_user_target" json:"target_type"`
	TargetID   uint64    `gorm:"column:target_id;not null;uniqueIndex:uk_user_target;index:idx_target" json:"target_id"`
	CreatedAt  time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Like) TableName() string {
	return "likes"
}
