package models

import "time"

// Media 的归属类型
const (
	MediaOwnerUser   = "user"
	MediaOwnerGroup  = "group"
	MediaOwnerPost   = "post"
	MediaOwnerStatus = "status"
)

const (
	MediaTypeImage = "image"
	MediaTypeVideo = "video"
)

// Media 媒体文件引用，Path 为 OSS 对象键
type Media struct {
	ID        uint64    `gorm:"column:id;primary_key;AUTO_INCREMENT" json:"id"`
	OwnerType string    `gorm:"column:owner_type;type:varchar(8);not null;index:idx_owner" json:"owner_type"`
	OwnerID   uint64    `gorm:"column:owner_id;not null;index:idx_owner" json:"owner_id"`
	Type      string    `gorm:"column:type;type:varchar(8);not null;default:'image'" json:"type"`
	Path      string    `gorm:"column:path;type:varchar(255);not null" json:"path"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Media) TableName() string {
	return "media"
}
