package dao

import (
	"Prism/models"
	"context"
	"errors"

	"gorm.io/gorm"
)

type PostDAO struct {
	Repo[models.Post]
}

func NewPostDAO(db *gorm.DB) *PostDAO {
	return &PostDAO{Repo: NewRepo[models.Post](db)}
}

func (d *PostDAO) FindByID(ctx context.Context, id uint64) (*models.Post, error) {
	post, err := d.Repo.FindByWhere(ctx, "id = ?", id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return post, err
}

// ListByUser 用户的帖子（非群帖），onlyPublic 时过滤私密帖
func (d *PostDAO) ListByUser(ctx context.Context, userID uint64, onlyPublic bool, limit, offset int) ([]*models.Post, error) {
	tx := d.Model(ctx).Where("user_id = ? AND group_id IS NULL", userID)
	if onlyPublic {
		tx = tx.Where("privacy = ?", models.PostPrivacyPublic)
	}
	var posts []*models.Post
	err := tx.Order("created_at DESC").Limit(limit).Offset(offset).Find(&posts).Error
	return posts, err
}

// ListByGroup 群帖列表
func (d *PostDAO) ListByGroup(ctx context.Context, groupID uint64, limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post
	err := d.Model(ctx).
		Where("group_id = ?", groupID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&posts).Error
	return posts, err
}

func (d *PostDAO) CountByUser(ctx context.Context, userID uint64) (int64, error) {
	return d.Repo.FindCount(ctx, "user_id = ? AND group_id IS NULL", userID)
}

// ListIDsByUser 用户全部帖子ID（级联删除用）
func (d *PostDAO) ListIDsByUser(ctx context.Context, userID uint64) ([]uint64, error) {
	var ids []uint64
	err := d.Model(ctx).Where("user_id = ?", userID).Pluck("id", &ids).Error
	return ids, err
}

// ListIDsByGroup 群全部帖子ID（解散群时级联删除用）
func (d *PostDAO) ListIDsByGroup(ctx context.Context, groupID uint64) ([]uint64, error) {
	var ids []uint64
	err := d.Model(ctx).Where("group_id = ?", groupID).Pluck("id", &ids).Error
	return ids, err
}

func (d *PostDAO) DeleteByID(ctx context.Context, id uint64) error {
	_, err := d.Repo.DeleteByWhere(ctx, "id = ?", id)
	return err
}

func (d *PostDAO) DeleteByIDs(ctx context.Context, ids []uint64) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := d.Repo.DeleteByWhere(ctx, "id IN ?", ids)
	return err
}
