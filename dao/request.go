package dao

import (
	"Prism/models"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type RequestDAO struct {
	Repo[models.Request]
}

func NewRequestDAO(db *gorm.DB) *RequestDAO {
	return &RequestDAO{
		Repo: NewRepo[models.Request](db),
	}
}

// FindPending 查询指定元组的 pending 请求，不存在返回 nil
func (d *RequestDAO) FindPending(ctx context.Context, requesterID uint64, targetType string, targetID uint64) (*models.Request, error) {
	req, err := d.Repo.FindByWhere(ctx,
		"user_id = ? AND target_type = ? AND target_id = ? AND state = ?",
		requesterID, targetType, targetID, models.RequestStatePending)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return req, err
}

// IsRequested 是否存在 pending 请求
func (d *RequestDAO) IsRequested(ctx context.Context, requesterID uint64, targetType string, targetID uint64) (bool, error) {
	return d.Repo.IsExist(ctx,
		"user_id = ? AND target_type = ? AND target_id = ? AND state = ?",
		requesterID, targetType, targetID, models.RequestStatePending)
}

// CreatePending 创建 pending 请求
// pending_flag=1 配合唯一索引，并发重复插入会命中约束失败
func (d *RequestDAO) CreatePending(ctx context.Context, requesterID uint64, targetType string, targetID uint64) (*models.Request, error) {
	flag := int8(1)
	req := &models.Request{
		UserID:      requesterID,
		TargetType:  targetType,
		TargetID:    targetID,
		State:       models.RequestStatePending,
		PendingFlag: &flag,
		RequestedAt: time.Now(),
	}
	if err := d.Repo.Create(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

// DeleteByID 撤回请求
func (d *RequestDAO) DeleteByID(ctx context.Context, id uint64) error {
	_, err := d.Repo.DeleteByWhere(ctx, "id = ?", id)
	return err
}

// FindPendingByID 按ID查询目标匹配的 pending 请求（终态请求查不到，天然拒绝二次响应）
func (d *RequestDAO) FindPendingByID(ctx context.Context, id uint64, targetType string, targetID uint64) (*models.Request, error) {
	req, err := d.Repo.FindByWhere(ctx,
		"id = ? AND target_type = ? AND target_id = ? AND state = ?",
		id, targetType, targetID, models.RequestStatePending)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return req, err
}

// MarkResponded 置终态，pending_flag 置空释放唯一约束
func (d *RequestDAO) MarkResponded(ctx context.Context, id uint64, state string, at time.Time) error {
	return d.Model(ctx).
		Where("id = ? AND state = ?", id, models.RequestStatePending).
		Updates(map[string]any{
			"state":        state,
			"pending_flag": nil,
			"responded_at": at,
		}).Error
}

// ListPendingForTarget 目标（用户/群）的 pending 请求列表
func (d *RequestDAO) ListPendingForTarget(ctx context.Context, targetType string, targetID uint64) ([]*models.Request, error) {
	var items []*models.Request
	err := d.Model(ctx).
		Where("target_type = ? AND target_id = ? AND state = ?", targetType, targetID, models.RequestStatePending).
		Order("requested_at DESC").
		Find(&items).Error
	return items, err
}

// ListPendingForTargets 一组目标的 pending 请求列表
func (d *RequestDAO) ListPendingForTargets(ctx context.Context, targetType string, targetIDs []uint64) ([]*models.Request, error) {
	items := make([]*models.Request, 0)
	if len(targetIDs) == 0 {
		return items, nil
	}
	err := d.Model(ctx).
		Where("target_type = ? AND target_id IN ? AND state = ?", targetType, targetIDs, models.RequestStatePending).
		Order("requested_at DESC").
		Find(&items).Error
	return items, err
}

// FilterRequested 在候选目标集中筛出我已有 pending 请求的目标ID
func (d *RequestDAO) FilterRequested(ctx context.Context, userID uint64, targetType string, candidateIDs []uint64) ([]uint64, error) {
	var ids []uint64
	if len(candidateIDs) == 0 {
		return ids, nil
	}
	err := d.Model(ctx).
		Where("user_id = ? AND target_type = ? AND target_id IN ? AND state = ?",
			userID, targetType, candidateIDs, models.RequestStatePending).
		Pluck("target_id", &ids).Error
	return ids, err
}

// DeleteAllOfTarget 删除某目标收到的全部请求（解散群时调用）
func (d *RequestDAO) DeleteAllOfTarget(ctx context.Context, targetType string, targetID uint64) error {
	_, err := d.Repo.DeleteByWhere(ctx, "target_type = ? AND target_id = ?", targetType, targetID)
	return err
}

// DeletePendingBetween 删除两用户之间（双向）的 pending 关注请求（拉黑时调用）
func (d *RequestDAO) DeletePendingBetween(ctx context.Context, a, b uint64) error {
	_, err := d.Repo.DeleteByWhere(ctx,
		"target_type = ? AND state = ? AND ((user_id = ? AND target_id = ?) OR (user_id = ? AND target_id = ?))",
		models.RequestTargetUser, models.RequestStatePending, a, b, b, a)
	return err
}

// DeleteAllOfUser 删除用户发起的与用户收到的全部请求（注销账号时调用）
func (d *RequestDAO) DeleteAllOfUser(ctx context.Context, userID uint64) error {
	_, err := d.Repo.DeleteByWhere(ctx,
		"user_id = ? OR (target_type = ? AND target_id = ?)",
		userID, models.RequestTargetUser, userID)
	return err
}
