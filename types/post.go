package types

import "time"

type CreatePostRequest struct {
	Content   string  `json:"content" binding:"required"`
	Privacy   string  `json:"privacy" binding:"omitempty,oneof=public private"`
	GroupID   *uint64 `json:"group_id"`
	MediaPath string  `json:"media_path"`
	MediaType string  `json:"media_type" binding:"omitempty,oneof=image video"`
}

// PostItem 帖子详情/列表项
type PostItem struct {
	ID           uint64    `json:"id"`
	UserID       uint64    `json:"user_id"`
	GroupID      *uint64   `json:"group_id,omitempty"`
	Content      string    `json:"content"`
	Privacy      string    `json:"privacy"`
	MediaPath    string    `json:"media_path,omitempty"`
	LikeCount    int64     `json:"like_count"`
	CommentCount int64     `json:"comment_count"`
	IsLiked      bool      `json:"is_liked"`
	IsSaved      bool      `json:"is_saved"`
	CreatedAt    time.Time `json:"created_at"`
}
