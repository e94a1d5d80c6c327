package dao

import (
	"Prism/models"
	"context"
	"errors"

	"gorm.io/gorm"
)

type CommentDAO struct {
	Repo[models.Comment]
}

func NewCommentDAO(db *gorm.DB) *CommentDAO {
	return &CommentDAO{Repo: NewRepo[models.Comment](db)}
}

func (d *CommentDAO) FindByID(ctx context.Context, id uint64) (*models.Comment, error) {
	comment, err := d.Repo.FindByWhere(ctx, "id = ?", id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return comment, err
}

// ListByPost 帖子的评论列表
func (d *CommentDAO) ListByPost(ctx context.Context, postID uint64, limit, offset int) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := d.Model(ctx).
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Limit(limit).Offset(offset).
		Find(&comments).Error
	return comments, err
}

func (d *CommentDAO) CountByPost(ctx context.Context, postID uint64) (int64, error) {
	return d.Repo.FindCount(ctx, "post_id = ?", postID)
}

func (d *CommentDAO) DeleteByID(ctx context.Context, id uint64) error {
	_, err := d.Repo.DeleteByWhere(ctx, "id = ?", id)
	return err
}

// DeleteByUser 删除用户的全部评论（注销账号时调用）
func (d *CommentDAO) DeleteByUser(ctx context.Context, userID uint64) error {
	_, err := d.Repo.DeleteByWhere(ctx, "user_id = ?", userID)
	return err
}

// DeleteByPostIDs 级联删除帖子评论
func (d *CommentDAO) DeleteByPostIDs(ctx context.Context, postIDs []uint64) error {
	if len(postIDs) == 0 {
		return nil
	}
	_, err := d.Repo.DeleteByWhere(ctx, "post_id IN ?", postIDs)
	return err
}
