package service

import (
	"Prism/dao"
	"Prism/models"
	"context"
	"time"
)

var _ ILikeService = (*LikeService)(nil)

type ILikeService interface {
	Like(ctx context.Context, userID uint64, targetType string, targetID uint64) error
	Unlike(ctx context.Context, userID uint64, targetType string, targetID uint64) error
	Count(ctx context.Context, targetType string, targetID uint64) (int64, error)
}

type LikeService struct {
	Likes      *dao.LikeDAO
	Posts      *dao.PostDAO
	Statuses   *dao.StatusDAO
	Visibility IVisibilityService
}

func NewLikeService(likes *dao.LikeDAO, posts *dao.PostDAO, statuses *dao.StatusDAO, visibility *VisibilityService) *LikeService {
	return &LikeService{
		Likes:      likes,
		Posts:      posts,
		Statuses:   statuses,
		Visibility: visibility,
	}
}

// Like 点赞，重复点赞是幂等的
func (s *LikeService) Like(ctx context.Context, userID uint64, targetType string, targetID uint64) error {
	if err := s.checkTarget(ctx, userID, targetType, targetID); err != nil {
		return err
	}
	liked, err := s.Likes.IsLiked(ctx, userID, targetType, targetID)
	if err != nil {
		return err
	}
	if liked {
		return nil
	}
	return s.Likes.Create(ctx, userID, targetType, targetID)
}

// Unlike 取消点赞，未点赞时同样幂等
func (s *LikeService) Unlike(ctx context.Context, userID uint64, targetType string, targetID uint64) error {
	if targetType != models.LikeTargetPost && targetType != models.LikeTargetStatus {
		return ErrInvalidTarget
	}
	_, err := s.Likes.Delete(ctx, userID, targetType, targetID)
	return err
}

func (s *LikeService) Count(ctx context.Context, targetType string, targetID uint64) (int64, error) {
	if targetType != models.LikeTargetPost && targetType != models.LikeTargetStatus {
		return 0, ErrInvalidTarget
	}
	return s.Likes.Count(ctx, targetType, targetID)
}

// checkTarget 目标必须存在且对点赞者可见
func (s *LikeService) checkTarget(ctx context.Context, userID uint64, targetType string, targetID uint64) error {
	switch targetType {
	case models.LikeTargetPost:
		post, err := s.Posts.FindByID(ctx, targetID)
		if err != nil {
			return err
		}
		if post == nil {
			return ErrPostNotFound
		}
		verdict, err := s.Visibility.CanViewPost(ctx, userID, post)
		if err != nil {
			return err
		}
		if verdict == VerdictDenied {
			return ErrPostNotFound
		}
	case models.LikeTargetStatus:
		status, err := s.Statuses.FindByID(ctx, targetID)
		if err != nil {
			return err
		}
		if status == nil {
			return ErrStatusNotFound
		}
		verdict, err := s.Visibility.CanViewStatus(ctx, userID, status, time.Now())
		if err != nil {
			return err
		}
		if verdict == VerdictDenied {
			return ErrStatusNotFound
		}
	default:
		return ErrInvalidTarget
	}
	return nil
}
