package models

import (
	"time"
)

// Request 目标类型
const (
	RequestTargetUser  = "user"  // 关注私密用户
	RequestTargetGroup = "group" // 加入私密群组
)

// Request 状态，pending 只能流转到 approved/rejected 一次
const (
	RequestStatePending  = "pending"
	RequestStateApproved = "approved"
	RequestStateRejected = "rejected"
)

// Request 待处理请求（关注私密用户 / 加入私密群组）
// pending_flag: pending 时为 1，终态置 NULL
// 唯一索引 (user_id, target_type, target_id, pending_flag) 保证
// 同一元组同时最多一条 pending，并发 follow 的 check-then-act 竞态由存储层兜底
type Request struct {
	ID          uint64     `gorm:"column:id;primary_key;AUTO_INCREMENT" json:"id"`
	UserID      uint64     `gorm:"column:user_id;not null;uniqueIndex:uk_pending;index:idx_user" json:"user_id"` // 发起人
	TargetType  string     `gorm:"column:target_type;type:varchar(8);not null;uniqueIndex:uk_pending" json:"target_type"`
	TargetID    uint64     `gorm:"column:target_id;not null;uniqueIndex:uk_pending;index:idx_target" json:"target_id"`
	State       string     `gorm:"column:state;type:varchar(10);not null;default:'pending'" json:"state"`
	PendingFlag *int8      `gorm:"column:pending_flag;uniqueIndex:uk_pending" json:"-"`
	RequestedAt time.Time  `gorm:"column:requested_at;not null" json:"requested_at"`
	RespondedAt *time.Time `gorm:"column:responded_at" json:"responded_at,omitempty"`
	CreatedAt   time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at" json:"updated_at"`
}

func (Request) TableName() string {
	return "requests"
}
