package types

import "time"

type CreateCommentRequest struct {
	Content string `json:"content" binding:"required,max=2000"`
}

// CommentItem 评论列表项
type CommentItem struct {
	ID        uint64    `json:"id"`
	PostID    uint64    `json:"post_id"`
	UserID    uint64    `json:"user_id"`
	Name      string    `json:"name"`
	Username  string    `json:"username"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
