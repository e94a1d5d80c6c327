package models

import "time"

const (
	StatusPrivacyPublic  = "public"
	StatusPrivacyPrivate = "private"
)

// Status 动态（24小时过期的短内容）
// expiration_date > now 为"活跃"，过期后仅所有者可经归档接口查询
type Status struct {
	ID             uint64    `gorm:"column:id;primary_key" json:"id"`
	UserID         uint64    `gorm:"column:user_id;not null;index:idx_user_expire" json:"user_id"`
	Text           string    `gorm:"column:text;type:text" json:"text"`
	Privacy        string    `gorm:"column:privacy;type:varchar(10);not null;default:'public'" json:"privacy"`
	ExpirationDate time.Time `gorm:"column:expiration_date;not null;index:idx_user_expire" json:"expiration_date"`
	CreatedAt      time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Status) TableName() string {
	return "statuses"
}

// Highlight 精选（归档动态的合集）
type Highlight struct {
	ID        uint64    `gorm:"column:id;primary_key;AUTO_INCREMENT" json:"id"`
	UserID    uint64    `gorm:"column:user_id;not null;index:idx_user" json:"user_id"`
	Title     string    `gorm:"column:title;type:varchar(100);not null" json:"title"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Highlight) TableName() string {
	return "highlights"
}

// StatusHighlight 动态与精选的关联
type StatusHighlight struct {
	ID          uint64    `gorm:"column:id;primary_key;AUTO_INCREMENT" json:"id"`
	HighlightID uint64    `gorm:"column:highlight_id;not null;uniqueIndex:uk_highlight_status" json:"highlight_id"`
	StatusID    uint64    `gorm:"column:status_id;not null;uniqueIndex:uk_highlight_status" json:"status_id"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
}

func (StatusHighlight) TableName() string {
	return "status_highlights"
}
