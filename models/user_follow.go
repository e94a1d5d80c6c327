package models

import (
	"time"
)

// UserFollow 关注边（有向）：follower 关注 followee
// 同一对用户只允许一条记录，取消关注即删除
type UserFollow struct {
	ID         uint64    `gorm:"column:id;primary_key;AUTO_INCREMENT" json:"id"`
	FollowerID uint64    `gorm:"column:follower_id;not null;uniqueIndex:uk_follower_followee" json:"follower_id"` // 关注人
	FolloweeID uint64    `gorm:"column:followee_id;not null;uniqueIndex:uk_follower_followee;index:idx_followee" json:"followee_id"` // 被关注人
	CreatedAt  time.Time `gorm:"column:created_at;not null" json:"created_at"`
}

func (UserFollow) TableName() string {
	return "user_follows"
}

// FollowUserItem 关注/粉丝列表项
type FollowUserItem struct {
	ID          uint64 `gorm:"column:id" json:"id"`
	Name        string `gorm:"column:name" json:"name"`
	Username    string `gorm:"column:username" json:"username"`
	Avatar      string `gorm:"-" json:"avatar"`
	IsPrivate   bool   `gorm:"column:is_private" json:"is_private"`
	IsFollowing bool   `gorm:"-" json:"is_following"` // 我是否关注了他
	IsRequested bool   `gorm:"-" json:"is_requested"` // 是否已发送关注请求
}
