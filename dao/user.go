package dao

import (
	"Prism/models"
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

type Users struct {
	Repo[models.User]
}

func NewUsers(db *gorm.DB) *Users {
	return &Users{
		Repo: NewRepo[models.User](db),
	}
}

func (u *Users) FindByID(ctx context.Context, id uint64) (*models.User, error) {
	return u.Repo.FindByWhere(ctx, "id = ?", id)
}

// FindByEmail 邮箱查询
func (u *Users) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return u.Repo.FindByWhere(ctx, "email = ?", email)
}

// FindByIDs 批量查询，结果按传入顺序返回
func (u *Users) FindByIDs(ctx context.Context, ids []uint64) ([]*models.User, error) {
	users := make([]*models.User, 0, len(ids))
	if len(ids) == 0 {
		return users, nil
	}
	var rows []*models.User
	if err := u.Model(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	byID := make(map[uint64]*models.User, len(rows))
	for _, row := range rows {
		byID[row.ID] = row
	}
	for _, id := range ids {
		if row, ok := byID[id]; ok {
			users = append(users, row)
		}
	}
	return users, nil
}

// IsUsernameTaken 用户名是否被其他用户占用
func (u *Users) IsUsernameTaken(ctx context.Context, username string, excludeID uint64) (bool, error) {
	return u.Repo.IsExist(ctx, "username = ? AND id != ?", username, excludeID)
}

func (u *Users) IsEmailExist(ctx context.Context, email string) bool {
	exist, _ := u.Repo.IsExist(ctx, "email = ?", email)
	return exist
}

func (u *Users) IsExistByID(ctx context.Context, id uint64) (bool, error) {
	return u.Repo.IsExist(ctx, "id = ?", id)
}

func (u *Users) UpdateByID(ctx context.Context, id uint64, data map[string]any) error {
	if len(data) == 0 {
		return nil
	}
	err := u.Model(ctx).
		Where("id = ?", id).
		Updates(data).Error
	if err != nil {
		return fmt.Errorf("dao.Users.UpdateByID error: %w", err)
	}
	return nil
}

func (u *Users) DeleteByID(ctx context.Context, id uint64) error {
	res := u.conn(ctx).Where("id = ?", id).Delete(&models.User{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errors.New("用户不存在")
	}
	return nil
}
