package models

import "time"

const (
	GroupPrivacyPublic  = "public"
	GroupPrivacyPrivate = "private"
)

type Group struct {
	ID        uint64    `gorm:"column:id;primary_key;AUTO_INCREMENT" json:"id"`
	Name      string    `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Privacy   string    `gorm:"column:privacy;type:varchar(10);not null;default:'public'" json:"privacy"`
	Bio       string    `gorm:"column:bio;type:varchar(255)" json:"bio"`
	OwnerID   uint64    `gorm:"column:owner_id;not null;index:idx_owner" json:"owner_id"` // 群主用户ID
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Group) TableName() string {
	return "groups"
}
