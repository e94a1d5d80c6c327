package dao

import (
	"Prism/models"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type StatusDAO struct {
	Repo[models.Status]
}

func NewStatusDAO(db *gorm.DB) *StatusDAO {
	return &StatusDAO{Repo: NewRepo[models.Status](db)}
}

func (d *StatusDAO) FindByID(ctx context.Context, id uint64) (*models.Status, error) {
	status, err := d.Repo.FindByWhere(ctx, "id = ?", id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return status, err
}

// ListActive 用户的活跃动态（过期过滤先于隐私过滤），onlyPublic 时只取公开
func (d *StatusDAO) ListActive(ctx context.Context, userID uint64, now time.Time, onlyPublic bool) ([]*models.Status, error) {
	tx := d.Model(ctx).Where("user_id = ? AND expiration_date > ?", userID, now)
	if onlyPublic {
		tx = tx.Where("privacy = ?", models.StatusPrivacyPublic)
	}
	var statuses []*models.Status
	err := tx.Order("created_at DESC").Find(&statuses).Error
	return statuses, err
}

// ListArchived 所有者的归档动态（已过期），独立访问路径，不走可见性裁决
func (d *StatusDAO) ListArchived(ctx context.Context, userID uint64, now time.Time) ([]*models.Status, error) {
	var statuses []*models.Status
	err := d.Model(ctx).
		Where("user_id = ? AND expiration_date <= ?", userID, now).
		Order("created_at DESC").
		Find(&statuses).Error
	return statuses, err
}

// HasActive 用户是否有活跃动态
func (d *StatusDAO) HasActive(ctx context.Context, userID uint64, now time.Time) (bool, error) {
	return d.Repo.IsExist(ctx, "user_id = ? AND expiration_date > ?", userID, now)
}

// HasActivePublic 用户是否有活跃的公开动态
func (d *StatusDAO) HasActivePublic(ctx context.Context, userID uint64, now time.Time) (bool, error) {
	return d.Repo.IsExist(ctx, "user_id = ? AND expiration_date > ? AND privacy = ?",
		userID, now, models.StatusPrivacyPublic)
}

// ListIDsByUser 用户全部动态ID（级联删除用）
func (d *StatusDAO) ListIDsByUser(ctx context.Context, userID uint64) ([]uint64, error) {
	var ids []uint64
	err := d.Model(ctx).Where("user_id = ?", userID).Pluck("id", &ids).Error
	return ids, err
}

func (d *StatusDAO) DeleteByID(ctx context.Context, id uint64) error {
	_, err := d.Repo.DeleteByWhere(ctx, "id = ?", id)
	return err
}

func (d *StatusDAO) DeleteByIDs(ctx context.Context, ids []uint64) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := d.Repo.DeleteByWhere(ctx, "id IN ?", ids)
	return err
}
