package models

import (
	"time"

	"gorm.io/datatypes"
)

type User struct {
	ID           uint64         `gorm:"column:id;primary_key;AUTO_INCREMENT" json:"id"`
	Name         string         `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Username     string         `gorm:"column:username;type:varchar(20);uniqueIndex;not null" json:"username"`
	Email        string         `gorm:"column:email;type:varchar(255);uniqueIndex;not null" json:"email"`
	Password     string         `gorm:"column:password;type:varchar(255);not null" json:"-"`
	Bio          string         `gorm:"column:bio;type:varchar(255)" json:"bio"`
	IsPrivate    bool           `gorm:"column:is_private;not null;default:0" json:"is_private"` // 私密账号
	PersonalInfo datatypes.JSON `gorm:"column:personal_info;type:json" json:"personal_info"`
	CreatedAt    time.Time      `gorm:"column:created_at" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"column:updated_at" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
