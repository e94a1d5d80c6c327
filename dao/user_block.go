package dao

import (
	"Prism/models"
	"context"
	"time"

	"gorm.io/gorm"
)

type UserBlockDAO struct {
	Repo[models.UserBlock]
}

func NewUserBlockDAO(db *gorm.DB) *UserBlockDAO {
	return &UserBlockDAO{
		Repo: NewRepo[models.UserBlock](db),
	}
}

// HasBlocked 检查 blocker 是否拉黑了 blocked
func (d *UserBlockDAO) HasBlocked(ctx context.Context, blockerID, blockedID uint64) (bool, error) {
	return d.Repo.IsExist(ctx, "blocker_id = ? AND blocked_id = ?", blockerID, blockedID)
}

// IsBlockedEither 任一方向存在块边即为真（拉黑是对称生效的）
func (d *UserBlockDAO) IsBlockedEither(ctx context.Context, a, b uint64) (bool, error) {
	return d.Repo.IsExist(ctx,
		"(blocker_id = ? AND blocked_id = ?) OR (blocker_id = ? AND blocked_id = ?)",
		a, b, b, a)
}

// CreateEdge 建立块边
func (d *UserBlockDAO) CreateEdge(ctx context.Context, blockerID, blockedID uint64) error {
	return d.Repo.Create(ctx, &models.UserBlock{
		BlockerID: blockerID,
		BlockedID: blockedID,
		CreatedAt: time.Now(),
	})
}

// DeleteEdge 删除块边，返回是否存在过
func (d *UserBlockDAO) DeleteEdge(ctx context.Context, blockerID, blockedID uint64) (bool, error) {
	affected, err := d.Repo.DeleteByWhere(ctx, "blocker_id = ? AND blocked_id = ?", blockerID, blockedID)
	return affected > 0, err
}

// DeleteAllOf 删除某用户的全部块边（注销账号时调用）
func (d *UserBlockDAO) DeleteAllOf(ctx context.Context, userID uint64) error {
	_, err := d.Repo.DeleteByWhere(ctx, "blocker_id = ? OR blocked_id = ?", userID, userID)
	return err
}

// GetBlockedIDs 我拉黑的用户ID列表
func (d *UserBlockDAO) GetBlockedIDs(ctx context.Context, blockerID uint64) ([]uint64, error) {
	var ids []uint64
	err := d.Model(ctx).Where("blocker_id = ?", blockerID).Pluck("blocked_id", &ids).Error
	return ids, err
}

// GetRelatedIDs 与我有块边关系（任一方向）的用户ID，用于列表过滤
func (d *UserBlockDAO) GetRelatedIDs(ctx context.Context, userID uint64) ([]uint64, error) {
	var blocked, blockedBy []uint64
	if err := d.Model(ctx).Where("blocker_id = ?", userID).Pluck("blocked_id", &blocked).Error; err != nil {
		return nil, err
	}
	if err := d.Model(ctx).Where("blocked_id = ?", userID).Pluck("blocker_id", &blockedBy).Error; err != nil {
		return nil, err
	}
	return append(blocked, blockedBy...), nil
}
