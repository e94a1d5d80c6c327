package types

import "time"

// FollowRequestItem 待处理的关注请求
type FollowRequestItem struct {
	RequestID   uint64    `json:"request_id"`
	UserID      uint64    `json:"user_id"`
	Name        string    `json:"name"`
	Username    string    `json:"username"`
	Avatar      string    `json:"avatar"`
	RequestedAt time.Time `json:"requested_at"`
}

type FollowRequest struct {
	UserID uint64 `json:"user_id" binding:"required"`
}

type RespondFollowRequest struct {
	Decision string `json:"decision" binding:"required,oneof=approved rejected"`
}
