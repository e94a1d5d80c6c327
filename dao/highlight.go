package dao

import (
	"Prism/models"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type HighlightDAO struct {
	Repo[models.Highlight]
}

func NewHighlightDAO(db *gorm.DB) *HighlightDAO {
	return &HighlightDAO{Repo: NewRepo[models.Highlight](db)}
}

func (d *HighlightDAO) FindByID(ctx context.Context, id uint64) (*models.Highlight, error) {
	h, err := d.Repo.FindByWhere(ctx, "id = ?", id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return h, err
}

func (d *HighlightDAO) ListByUser(ctx context.Context, userID uint64) ([]*models.Highlight, error) {
	var items []*models.Highlight
	err := d.Model(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&items).Error
	return items, err
}

func (d *HighlightDAO) DeleteByID(ctx context.Context, id uint64) error {
	_, err := d.Repo.DeleteByWhere(ctx, "id = ?", id)
	return err
}

// AttachStatus 把动态加入精选（幂等，靠唯一索引兜底）
func (d *HighlightDAO) AttachStatus(ctx context.Context, highlightID, statusID uint64) error {
	links := NewRepo[models.StatusHighlight](d.Db)
	exist, err := links.IsExist(ctx, "highlight_id = ? AND status_id = ?", highlightID, statusID)
	if err != nil {
		return err
	}
	if exist {
		return nil
	}
	return d.conn(ctx).Create(&models.StatusHighlight{
		HighlightID: highlightID,
		StatusID:    statusID,
		CreatedAt:   time.Now(),
	}).Error
}

// DetachStatus 动态删除时解除全部精选关联
func (d *HighlightDAO) DetachStatus(ctx context.Context, statusIDs []uint64) error {
	if len(statusIDs) == 0 {
		return nil
	}
	return d.conn(ctx).
		Where("status_id IN ?", statusIDs).
		Delete(&models.StatusHighlight{}).Error
}

// DeleteAllOfUser 删除用户的全部精选及关联（注销账号时调用）
func (d *HighlightDAO) DeleteAllOfUser(ctx context.Context, userID uint64) error {
	var ids []uint64
	if err := d.Model(ctx).Where("user_id = ?", userID).Pluck("id", &ids).Error; err != nil {
		return err
	}
	if len(ids) > 0 {
		if err := d.conn(ctx).Where("highlight_id IN ?", ids).Delete(&models.StatusHighlight{}).Error; err != nil {
			return err
		}
	}
	_, err := d.Repo.DeleteByWhere(ctx, "user_id = ?", userID)
	return err
}

// DeleteAllOfHighlight 清空某个精选的全部关联
func (d *HighlightDAO) DeleteAllOfHighlight(ctx context.Context, highlightID uint64) error {
	return d.conn(ctx).
		Where("highlight_id = ?", highlightID).
		Delete(&models.StatusHighlight{}).Error
}

// ListStatusIDs 精选内的动态ID
func (d *HighlightDAO) ListStatusIDs(ctx context.Context, highlightID uint64) ([]uint64, error) {
	var ids []uint64
	err := d.conn(ctx).
		Model(&models.StatusHighlight{}).
		Where("highlight_id = ?", highlightID).
		Order("created_at ASC").
		Pluck("status_id", &ids).Error
	return ids, err
}
