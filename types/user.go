package types

import "gorm.io/datatypes"

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,max=255"`
	Username string `json:"username" binding:"required,min=3,max=20"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	UserID      uint64 `json:"user_id"`
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

type UpdateUserRequest struct {
	Name         *string         `json:"name" binding:"omitempty,max=255"`
	Username     *string         `json:"username" binding:"omitempty,min=3,max=20"`
	Bio          *string         `json:"bio" binding:"omitempty,max=255"`
	IsPrivate    *bool           `json:"is_private"`
	PersonalInfo *datatypes.JSON `json:"personal_info"`
}

// UserProfile 用户主页。私密账号未关注时只下发部分字段：
// 基本标识、头像、三个计数和关注状态，不含 bio/email/personal_info
type UserProfile struct {
	ID             uint64         `json:"id"`
	Name           string         `json:"name"`
	Username       string         `json:"username"`
	Avatar         string         `json:"avatar"`
	IsPrivate      bool           `json:"is_private"`
	FollowerCount  int64          `json:"follower_count"`
	FollowingCount int64          `json:"following_count"`
	PostCount      int64          `json:"post_count"`
	IsFollowing    bool           `json:"is_following"`
	IsRequested    bool           `json:"is_requested"`
	HasStatus      bool           `json:"has_status"`
	Partial        bool           `json:"partial"`
	Bio            string         `json:"bio,omitempty"`
	Email          string         `json:"email,omitempty"`
	PersonalInfo   datatypes.JSON `json:"personal_info,omitempty"`
}
