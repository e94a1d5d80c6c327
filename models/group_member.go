package models

import "time"

// 群成员角色，每个群任一时刻有且仅有一个 owner
const (
	GroupRoleOwner  = "owner"
	GroupRoleAdmin  = "admin"
	GroupRoleMember = "member"
)

type GroupMember struct {
	ID        uint64    `gorm:"column:id;primary_key;AUTO_INCREMENT" json:"id"`
	GroupID   uint64    `gorm:"column:group_id;not null;uniqueIndex:uk_group_user" json:"group_id"`
	UserID    uint64    `gorm:"column:user_id;not null;uniqueIndex:uk_group_user;index:idx_user" json:"user_id"`
	Role      string    `gorm:"column:role;type:varchar(10);not null;default:'member'" json:"role"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (GroupMember) TableName() string {
	return "group_members"
}

// GroupMemberItem 群成员列表项（联表用户信息）
type GroupMemberItem struct {
	UserID      uint64 `gorm:"column:user_id" json:"user_id"`
	Name        string `gorm:"column:name" json:"name"`
	Username    string `gorm:"column:username" json:"username"`
	Role        string `gorm:"column:role" json:"role"`
	IsPrivate   bool   `gorm:"column:is_private" json:"is_private"`
	Avatar      string `gorm:"-" json:"avatar"`
	IsFollowing bool   `gorm:"-" json:"is_following"`
	IsRequested bool   `gorm:"-" json:"is_requested"`
}
