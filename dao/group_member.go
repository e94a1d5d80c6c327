package dao

import (
	"Prism/models"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type GroupMemberDAO struct {
	Repo[models.GroupMember]
}

func NewGroupMemberDAO(db *gorm.DB) *GroupMemberDAO {
	return &GroupMemberDAO{Repo: NewRepo[models.GroupMember](db)}
}

// IsMember 检测是否群成员
func (g *GroupMemberDAO) IsMember(ctx context.Context, gid, uid uint64) (bool, error) {
	return g.Repo.IsExist(ctx, "group_id = ? AND user_id = ?", gid, uid)
}

// IsLeader 判断是否群主或管理员
func (g *GroupMemberDAO) IsLeader(ctx context.Context, gid, uid uint64) (bool, error) {
	return g.Repo.IsExist(ctx, "group_id = ? AND user_id = ? AND role IN ?",
		gid, uid, []string{models.GroupRoleOwner, models.GroupRoleAdmin})
}

func (g *GroupMemberDAO) FindMember(ctx context.Context, gid, uid uint64) (*models.GroupMember, error) {
	member, err := g.Repo.FindByWhere(ctx, "group_id = ? AND user_id = ?", gid, uid)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return member, err
}

// AddMember 添加成员
func (g *GroupMemberDAO) AddMember(ctx context.Context, gid, uid uint64, role string) error {
	now := time.Now()
	return g.Repo.Create(ctx, &models.GroupMember{
		GroupID:   gid,
		UserID:    uid,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	})
}

// RemoveMember 移除成员，返回是否存在过
func (g *GroupMemberDAO) RemoveMember(ctx context.Context, gid, uid uint64) (bool, error) {
	affected, err := g.Repo.DeleteByWhere(ctx, "group_id = ? AND user_id = ?", gid, uid)
	return affected > 0, err
}

// UpdateRole 更新成员角色
func (g *GroupMemberDAO) UpdateRole(ctx context.Context, gid, uid uint64, role string) error {
	res := g.Model(ctx).
		Where("group_id = ? AND user_id = ?", gid, uid).
		Updates(map[string]any{"role": role, "updated_at": time.Now()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errors.New("成员不存在")
	}
	return nil
}

// FindFirstAdmin 找到最早晋升的管理员（群主注销时的继任人选）
func (g *GroupMemberDAO) FindFirstAdmin(ctx context.Context, gid uint64) (*models.GroupMember, error) {
	var member models.GroupMember
	err := g.Model(ctx).
		Where("group_id = ? AND role = ?", gid, models.GroupRoleAdmin).
		Order("updated_at ASC").
		First(&member).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// CountMembers 统计群成员总数
func (g *GroupMemberDAO) CountMembers(ctx context.Context, gid uint64) (int64, error) {
	return g.Repo.FindCount(ctx, "group_id = ?", gid)
}

// GetMembers 群成员列表（联表用户信息，群主在前）
func (g *GroupMemberDAO) GetMembers(ctx context.Context, gid uint64) ([]*models.GroupMemberItem, error) {
	fields := []string{
		"group_members.user_id",
		"group_members.role",
		"users.name",
		"users.username",
		"users.is_private",
	}

	var items []*models.GroupMemberItem
	err := g.conn(ctx).Table("group_members").
		Joins("LEFT JOIN users ON users.id = group_members.user_id").
		Where("group_members.group_id = ?", gid).
		Order("FIELD(group_members.role, 'owner', 'admin', 'member')").
		Select(fields).
		Scan(&items).Error
	return items, err
}

// GetUserGroupIDs 用户加入的群ID
func (g *GroupMemberDAO) GetUserGroupIDs(ctx context.Context, uid uint64) ([]uint64, error) {
	var ids []uint64
	err := g.Model(ctx).Where("user_id = ?", uid).Pluck("group_id", &ids).Error
	return ids, err
}

// GetLeaderGroupIDs 用户担任群主/管理员的群ID
func (g *GroupMemberDAO) GetLeaderGroupIDs(ctx context.Context, uid uint64) ([]uint64, error) {
	var ids []uint64
	err := g.Model(ctx).
		Where("user_id = ? AND role IN ?", uid, []string{models.GroupRoleOwner, models.GroupRoleAdmin}).
		Pluck("group_id", &ids).Error
	return ids, err
}

// ListJoined 用户加入的群（可排除自己拥有的）
func (g *GroupMemberDAO) ListJoined(ctx context.Context, uid uint64, excludeOwned bool) ([]*models.GroupMember, error) {
	tx := g.Model(ctx).Where("user_id = ?", uid)
	if excludeOwned {
		tx = tx.Where("role != ?", models.GroupRoleOwner)
	}
	var items []*models.GroupMember
	err := tx.Order("created_at DESC").Find(&items).Error
	return items, err
}

// RemoveAllOf 删除某用户的全部群成员记录（注销账号时调用）
func (g *GroupMemberDAO) RemoveAllOf(ctx context.Context, uid uint64) error {
	_, err := g.Repo.DeleteByWhere(ctx, "user_id = ?", uid)
	return err
}

// RemoveAllOfGroup 删除某群的全部成员记录（解散群时调用）
func (g *GroupMemberDAO) RemoveAllOfGroup(ctx context.Context, gid uint64) error {
	_, err := g.Repo.DeleteByWhere(ctx, "group_id = ?", gid)
	return err
}
