package types

import "time"

type CreateStatusRequest struct {
	Text      string `json:"text" binding:"required"`
	Privacy   string `json:"privacy" binding:"omitempty,oneof=public private"`
	MediaPath string `json:"media_path"`
	MediaType string `json:"media_type" binding:"omitempty,oneof=image video"`
}

// StatusItem 动态详情/列表项
type StatusItem struct {
	ID             uint64    `json:"id"`
	UserID         uint64    `json:"user_id"`
	Text           string    `json:"text"`
	Privacy        string    `json:"privacy"`
	MediaPath      string    `json:"media_path,omitempty"`
	LikeCount      int64     `json:"like_count"`
	IsViewed       bool      `json:"is_viewed"`
	ExpirationDate time.Time `json:"expiration_date"`
	CreatedAt      time.Time `json:"created_at"`
}

// StoryRingItem 首页故事环：我关注的、有活跃动态的用户
type StoryRingItem struct {
	UserID   uint64 `json:"user_id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

// ViewerItem 动态浏览者
type ViewerItem struct {
	UserID   uint64 `json:"user_id"`
	Name     string `json:"name"`
	Username string `json:"username"`
}

type CreateHighlightRequest struct {
	Title     string   `json:"title" binding:"required,max=100"`
	StatusIDs []uint64 `json:"status_ids" binding:"required,min=1"`
}

// HighlightItem 精选及其包含的动态
type HighlightItem struct {
	ID       uint64        `json:"id"`
	Title    string        `json:"title"`
	Statuses []*StatusItem `json:"statuses"`
}
