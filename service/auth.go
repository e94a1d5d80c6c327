package service

import (
	"Prism/config"
	"Prism/dao"
	"Prism/models"
	"Prism/pkg/encrypt"
	"Prism/pkg/jwt"
	"Prism/types"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

const TokenTypeAccess = "access"

var _ IAuthService = (*AuthService)(nil)

type IAuthService interface {
	Register(ctx context.Context, req *types.RegisterRequest) (*types.AuthResponse, error)
	Login(ctx context.Context, req *types.LoginRequest) (*types.AuthResponse, error)
	ChangePassword(ctx context.Context, userID uint64, oldPassword, newPassword string) error
}

type AuthService struct {
	Users UserStore
	Conf  *config.Config
}

func NewAuthService(users *dao.Users, conf *config.Config) *AuthService {
	return &AuthService{Users: users, Conf: conf}
}

func (s *AuthService) Register(ctx context.Context, req *types.RegisterRequest) (*types.AuthResponse, error) {
	if s.Users.IsEmailExist(ctx, req.Email) {
		return nil, ErrEmailTaken
	}
	taken, err := s.Users.IsUsernameTaken(ctx, req.Username, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrUsernameTaken
	}

	hashed, err := encrypt.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &models.User{
		Name:      req.Name,
		Username:  req.Username,
		Email:     req.Email,
		Password:  hashed,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Users.Create(ctx, user); err != nil {
		return nil, err
	}
	return s.issueToken(user.ID)
}

func (s *AuthService) Login(ctx context.Context, req *types.LoginRequest) (*types.AuthResponse, error) {
	user, err := s.Users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBadCredential
		}
		return nil, err
	}
	if !encrypt.VerifyPassword(user.Password, req.Password) {
		return nil, ErrBadCredential
	}
	return s.issueToken(user.ID)
}

func (s *AuthService) ChangePassword(ctx context.Context, userID uint64, oldPassword, newPassword string) error {
	user, err := s.Users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if !encrypt.VerifyPassword(user.Password, oldPassword) {
		return ErrBadCredential
	}

	hashed, err := encrypt.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.Users.UpdateByID(ctx, userID, map[string]any{
		"password":   hashed,
		"updated_at": time.Now(),
	})
}

func (s *AuthService) issueToken(userID uint64) (*types.AuthResponse, error) {
	expire := time.Duration(s.Conf.Jwt.ExpiresTime) * time.Second
	token, err := jwt.GenerateToken([]byte(s.Conf.Jwt.Secret), userID, TokenTypeAccess, expire)
	if err != nil {
		return nil, err
	}
	return &types.AuthResponse{
		UserID:      userID,
		AccessToken: token,
		ExpiresIn:   s.Conf.Jwt.ExpiresTime,
	}, nil
}
