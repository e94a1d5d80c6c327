package dao

import (
	"Prism/models"
	"context"
	"time"

	"gorm.io/gorm"
)

type UserFollowDAO struct {
	Repo[models.UserFollow]
}

func NewUserFollowDAO(db *gorm.DB) *UserFollowDAO {
	return &UserFollowDAO{
		Repo: NewRepo[models.UserFollow](db),
	}
}

// IsFollowing 检查是否已关注
func (d *UserFollowDAO) IsFollowing(ctx context.Context, followerID, followeeID uint64) (bool, error) {
	return d.Repo.IsExist(ctx, "follower_id = ? AND followee_id = ?", followerID, followeeID)
}

// CreateEdge 建立关注边
func (d *UserFollowDAO) CreateEdge(ctx context.Context, followerID, followeeID uint64) error {
	return d.Repo.Create(ctx, &models.UserFollow{
		FollowerID: followerID,
		FolloweeID: followeeID,
		CreatedAt:  time.Now(),
	})
}

// DeleteEdge 删除关注边，返回是否存在过
func (d *UserFollowDAO) DeleteEdge(ctx context.Context, followerID, followeeID uint64) (bool, error) {
	affected, err := d.Repo.DeleteByWhere(ctx, "follower_id = ? AND followee_id = ?", followerID, followeeID)
	return affected > 0, err
}

// DeletePair 删除双向关注边（拉黑时与建块边同事务调用）
func (d *UserFollowDAO) DeletePair(ctx context.Context, a, b uint64) error {
	_, err := d.Repo.DeleteByWhere(ctx,
		"(follower_id = ? AND followee_id = ?) OR (follower_id = ? AND followee_id = ?)",
		a, b, b, a)
	return err
}

// DeleteAllOf 删除某用户的全部关注关系（注销账号时调用）
func (d *UserFollowDAO) DeleteAllOf(ctx context.Context, userID uint64) error {
	_, err := d.Repo.DeleteByWhere(ctx, "follower_id = ? OR followee_id = ?", userID, userID)
	return err
}

// GetFollowerCount 获取粉丝数
func (d *UserFollowDAO) GetFollowerCount(ctx context.Context, userID uint64) (int64, error) {
	return d.Repo.FindCount(ctx, "followee_id = ?", userID)
}

// GetFollowingCount 获取关注数
func (d *UserFollowDAO) GetFollowingCount(ctx context.Context, userID uint64) (int64, error) {
	return d.Repo.FindCount(ctx, "follower_id = ?", userID)
}

// GetFollowerIDs 获取粉丝用户ID列表（排除 excluded 中的用户）
func (d *UserFollowDAO) GetFollowerIDs(ctx context.Context, userID uint64, excluded []uint64) ([]uint64, error) {
	var ids []uint64
	tx := d.Model(ctx).Where("followee_id = ?", userID)
	if len(excluded) > 0 {
		tx = tx.Where("follower_id NOT IN ?", excluded)
	}
	err := tx.Order("created_at DESC").Pluck("follower_id", &ids).Error
	return ids, err
}

// GetFollowingIDs 获取关注的用户ID列表（排除 excluded 中的用户）
func (d *UserFollowDAO) GetFollowingIDs(ctx context.Context, userID uint64, excluded []uint64) ([]uint64, error) {
	var ids []uint64
	tx := d.Model(ctx).Where("follower_id = ?", userID)
	if len(excluded) > 0 {
		tx = tx.Where("followee_id NOT IN ?", excluded)
	}
	err := tx.Order("created_at DESC").Pluck("followee_id", &ids).Error
	return ids, err
}

// FilterFollowing 在候选集中筛出我已关注的用户ID
func (d *UserFollowDAO) FilterFollowing(ctx context.Context, followerID uint64, candidateIDs []uint64) ([]uint64, error) {
	var ids []uint64
	if len(candidateIDs) == 0 {
		return ids, nil
	}
	err := d.Model(ctx).
		Where("follower_id = ? AND followee_id IN ?", followerID, candidateIDs).
		Pluck("followee_id", &ids).Error
	return ids, err
}

// GetFollowingWithActiveStatus 获取我关注的且有活跃动态的用户ID
func (d *UserFollowDAO) GetFollowingWithActiveStatus(ctx context.Context, userID uint64, now time.Time) ([]uint64, error) {
	var ids []uint64
	err := d.conn(ctx).
		Table("user_follows uf").
		Select("DISTINCT uf.followee_id").
		Joins("JOIN statuses s ON s.user_id = uf.followee_id").
		Where("uf.follower_id = ? AND s.expiration_date > ?", userID, now).
		Pluck("uf.followee_id", &ids).Error
	return ids, err
}
