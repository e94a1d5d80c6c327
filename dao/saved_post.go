package dao

import (
	"Prism/models"
	"context"
	"time"

	"gorm.io/gorm"
)

type SavedPostDAO struct {
	Repo[models.SavedPost]
}

func NewSavedPostDAO(db *gorm.DB) *SavedPostDAO {
	return &SavedPostDAO{Repo: NewRepo[models.SavedPost](db)}
}

func (d *SavedPostDAO) IsSaved(ctx context.Context, userID, postID uint64) (bool, error) {
	return d.Repo.IsExist(ctx, "user_id = ? AND post_id = ?", userID, postID)
}

func (d *SavedPostDAO) Save(ctx context.Context, userID, postID uint64) error {
	return d.Repo.Create(ctx, &models.SavedPost{
		UserID:    userID,
		PostID:    postID,
		CreatedAt: time.Now(),
	})
}

func (d *SavedPostDAO) Unsave(ctx context.Context, userID, postID uint64) (bool, error) {
	affected, err := d.Repo.DeleteByWhere(ctx, "user_id = ? AND post_id = ?", userID, postID)
	return affected > 0, err
}

// DeleteByUser 删除用户的全部收藏（注销账号时调用）
func (d *SavedPostDAO) DeleteByUser(ctx context.Context, userID uint64) error {
	_, err := d.Repo.DeleteByWhere(ctx, "user_id = ?", userID)
	return err
}

// DeleteByPostIDs 帖子删除时清理指向它的收藏
func (d *SavedPostDAO) DeleteByPostIDs(ctx context.Context, postIDs []uint64) error {
	if len(postIDs) == 0 {
		return nil
	}
	_, err := d.Repo.DeleteByWhere(ctx, "post_id IN ?", postIDs)
	return err
}

func (d *SavedPostDAO) ListPostIDs(ctx context.Context, userID uint64) ([]uint64, error) {
	var ids []uint64
	err := d.Model(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Pluck("post_id", &ids).Error
	return ids, err
}
