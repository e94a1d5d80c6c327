package dao

import (
	"Prism/models"
	"context"
	"errors"

	"gorm.io/gorm"
)

type GroupDAO struct {
	Repo[models.Group]
}

func NewGroupDAO(db *gorm.DB) *GroupDAO {
	return &GroupDAO{Repo: NewRepo[models.Group](db)}
}

func (g *GroupDAO) FindByID(ctx context.Context, gid uint64) (*models.Group, error) {
	group, err := g.Repo.FindByWhere(ctx, "id = ?", gid)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return group, err
}

func (g *GroupDAO) UpdateByID(ctx context.Context, gid uint64, data map[string]any) error {
	if len(data) == 0 {
		return nil
	}
	res := g.Model(ctx).Where("id = ?", gid).Updates(data)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errors.New("群组不存在")
	}
	return nil
}

// UpdateOwner 变更群主（所有权转移）
func (g *GroupDAO) UpdateOwner(ctx context.Context, gid, newOwnerID uint64) error {
	res := g.Model(ctx).Where("id = ?", gid).Update("owner_id", newOwnerID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errors.New("群组不存在")
	}
	return nil
}

func (g *GroupDAO) DeleteByID(ctx context.Context, gid uint64) error {
	_, err := g.Repo.DeleteByWhere(ctx, "id = ?", gid)
	return err
}

// ListOwnedBy 某用户拥有的全部群组
func (g *GroupDAO) ListOwnedBy(ctx context.Context, ownerID uint64) ([]*models.Group, error) {
	var groups []*models.Group
	err := g.Model(ctx).Where("owner_id = ?", ownerID).Order("created_at DESC").Find(&groups).Error
	return groups, err
}

// ListNotJoined 用户未加入的群组（发现页）
func (g *GroupDAO) ListNotJoined(ctx context.Context, userID uint64, limit, offset int) ([]*models.Group, int64, error) {
	var total int64
	sub := g.Db.WithContext(ctx).
		Model(&models.GroupMember{}).
		Select("group_id").
		Where("user_id = ?", userID)

	base := g.Model(ctx).
		Where("owner_id != ?", userID).
		Where("id NOT IN (?)", sub)

	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var groups []*models.Group
	err := base.Order("created_at DESC").Limit(limit).Offset(offset).Find(&groups).Error
	return groups, total, err
}
