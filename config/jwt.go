package config

// Jwt 令牌配置
type Jwt struct {
	Secret        string `json:"secret" yaml:"secret"`
	ExpiresTime   int64  `json:"expires_time" yaml:"expires_time"`     // access token 有效期(秒)
	RefreshExpire int64  `json:"refresh_expire" yaml:"refresh_expire"` // refresh token 有效期(秒)
}
