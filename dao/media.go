package dao

import (
	"Prism/models"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type MediaDAO struct {
	Repo[models.Media]
}

func NewMediaDAO(db *gorm.DB) *MediaDAO {
	return &MediaDAO{Repo: NewRepo[models.Media](db)}
}

// FindByOwner 归属对象的媒体引用（用户/群头像为一对一，取第一条）
func (d *MediaDAO) FindByOwner(ctx context.Context, ownerType string, ownerID uint64) (*models.Media, error) {
	media, err := d.Repo.FindByWhere(ctx, "owner_type = ? AND owner_id = ?", ownerType, ownerID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return media, err
}

// ListByOwners 一组归属对象的媒体引用
func (d *MediaDAO) ListByOwners(ctx context.Context, ownerType string, ownerIDs []uint64) ([]*models.Media, error) {
	items := make([]*models.Media, 0)
	if len(ownerIDs) == 0 {
		return items, nil
	}
	err := d.Model(ctx).
		Where("owner_type = ? AND owner_id IN ?", ownerType, ownerIDs).
		Find(&items).Error
	return items, err
}

func (d *MediaDAO) Create(ctx context.Context, ownerType string, ownerID uint64, mediaType, path string) (*models.Media, error) {
	media := &models.Media{
		OwnerType: ownerType,
		OwnerID:   ownerID,
		Type:      mediaType,
		Path:      path,
		CreatedAt: time.Now(),
	}
	if err := d.Repo.Create(ctx, media); err != nil {
		return nil, err
	}
	return media, nil
}

func (d *MediaDAO) DeleteByOwner(ctx context.Context, ownerType string, ownerID uint64) error {
	_, err := d.Repo.DeleteByWhere(ctx, "owner_type = ? AND owner_id = ?", ownerType, ownerID)
	return err
}

func (d *MediaDAO) DeleteByOwners(ctx context.Context, ownerType string, ownerIDs []uint64) error {
	if len(ownerIDs) == 0 {
		return nil
	}
	_, err := d.Repo.DeleteByWhere(ctx, "owner_type = ? AND owner_id IN ?", ownerType, ownerIDs)
	return err
}
