package dao

import (
	"Prism/models"
	"context"
	"time"

	"gorm.io/gorm"
)

type LikeDAO struct {
	Repo[models.Like]
}

func NewLikeDAO(db *gorm.DB) *LikeDAO {
	return &LikeDAO{Repo: NewRepo[models.Like](db)}
}

// IsLiked 是否已点赞
func (d *LikeDAO) IsLiked(ctx context.Context, userID uint64, targetType string, targetID uint64) (bool, error) {
	return d.Repo.IsExist(ctx, "user_id = ? AND target_type = ? AND target_id = ?", userID, targetType, targetID)
}

func (d *LikeDAO) Create(ctx context.Context, userID uint64, targetType string, targetID uint64) error {
	return d.Repo.Create(ctx, &models.Like{
		UserID:     userID,
		TargetType: targetType,
		TargetID:   targetID,
		CreatedAt:  time.Now(),
	})
}

// Delete 取消点赞，返回是否存在过
func (d *LikeDAO) Delete(ctx context.Context, userID uint64, targetType string, targetID uint64) (bool, error) {
	affected, err := d.Repo.DeleteByWhere(ctx,
		"user_id = ? AND target_type = ? AND target_id = ?", userID, targetType, targetID)
	return affected > 0, err
}

func (d *LikeDAO) Count(ctx context.Context, targetType string, targetID uint64) (int64, error) {
	return d.Repo.FindCount(ctx, "target_type = ? AND target_id = ?", targetType, targetID)
}

// DeleteByUser 删除用户发出的全部点赞（注销账号时调用）
func (d *LikeDAO) DeleteByUser(ctx context.Context, userID uint64) error {
	_, err := d.Repo.DeleteByWhere(ctx, "user_id = ?", userID)
	return err
}

// DeleteByTargets 级联删除目标的点赞记录
func (d *LikeDAO) DeleteByTargets(ctx context.Context, targetType string, targetIDs []uint64) error {
	if len(targetIDs) == 0 {
		return nil
	}
	_, err := d.Repo.DeleteByWhere(ctx, "target_type = ? AND target_id IN ?", targetType, targetIDs)
	return err
}
