package models

import (
	"time"
)

// UserBlock 拉黑边（有向）：blocker 拉黑 blocked
// 拉黑优先于关注：建边时必须同事务删除双向关注边
type UserBlock struct {
	ID        uint64    `gorm:"column:id;primary_key;AUTO_INCREMENT" json:"id"`
	BlockerID uint64    `gorm:"column:blocker_id;not null;uniqueIndex:uk_blocker_blocked" json:"blocker_id"`
	BlockedID uint64    `gorm:"column:blocked_id;not null;uniqueIndex:uk_blocker_blocked;index:idx_blocked" json:"blocked_id"`
	CreatedAt time.Time `gorm:"column:created_at;not null" json:"created_at"`
}

func (UserBlock) TableName() string {
	return "user_blocks"
}
