package types

import "time"

type CreateGroupRequest struct {
	Name    string `json:"name" binding:"required,max=255"`
	Bio     string `json:"bio" binding:"max=255"`
	Privacy string `json:"privacy" binding:"omitempty,oneof=public private"`
}

type UpdateGroupRequest struct {
	Name    *string `json:"name" binding:"omitempty,max=255"`
	Bio     *string `json:"bio" binding:"omitempty,max=255"`
	Privacy *string `json:"privacy" binding:"omitempty,oneof=public private"`
}

// GroupItem 群组详情/列表项
type GroupItem struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	Bio         string `json:"bio"`
	Privacy     string `json:"privacy"`
	OwnerID     uint64 `json:"owner_id"`
	MemberCount int64  `json:"member_count"`
	Avatar      string `json:"avatar"`
	Role        string `json:"role,omitempty"`         // 我在群里的角色，非成员为空
	IsRequested bool   `json:"is_requested,omitempty"` // 是否已申请加入
}

// JoinRequestItem 待处理的入群请求
type JoinRequestItem struct {
	RequestID   uint64    `json:"request_id"`
	GroupID     uint64    `json:"group_id"`
	UserID      uint64    `json:"user_id"`
	Name        string    `json:"name"`
	Username    string    `json:"username"`
	RequestedAt time.Time `json:"requested_at"`
}

type RespondJoinRequest struct {
	Decision string `json:"decision" binding:"required,oneof=approved rejected"`
}

type ChangeRoleRequest struct {
	UserID uint64 `json:"user_id" binding:"required"`
	Role   string `json:"role" binding:"required,oneof=admin member"`
}
