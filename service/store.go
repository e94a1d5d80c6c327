package service

import (
	"Prism/models"
	"context"
	"time"
)

// 核心服务经由这组接口访问存储，dao 层的各 DAO 是生产实现，
// 单测用内存假实现替换，不依赖数据库

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id uint64) (*models.User, error)
	FindByIDs(ctx context.Context, ids []uint64) ([]*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	IsUsernameTaken(ctx context.Context, username string, excludeID uint64) (bool, error)
	IsEmailExist(ctx context.Context, email string) bool
	IsExistByID(ctx context.Context, id uint64) (bool, error)
	UpdateByID(ctx context.Context, id uint64, data map[string]any) error
	DeleteByID(ctx context.Context, id uint64) error
}

type FollowStore interface {
	IsFollowing(ctx context.Context, followerID, followeeID uint64) (bool, error)
	CreateEdge(ctx context.Context, followerID, followeeID uint64) error
	DeleteEdge(ctx context.Context, followerID, followeeID uint64) (bool, error)
	DeletePair(ctx context.Context, a, b uint64) error
	DeleteAllOf(ctx context.Context, userID uint64) error
	GetFollowerCount(ctx context.Context, userID uint64) (int64, error)
	GetFollowingCount(ctx context.Context, userID uint64) (int64, error)
	GetFollowerIDs(ctx context.Context, userID uint64, excluded []uint64) ([]uint64, error)
	GetFollowingIDs(ctx context.Context, userID uint64, excluded []uint64) ([]uint64, error)
	FilterFollowing(ctx context.Context, followerID uint64, candidateIDs []uint64) ([]uint64, error)
	GetFollowingWithActiveStatus(ctx context.Context, userID uint64, now time.Time) ([]uint64, error)
}

type BlockStore interface {
	HasBlocked(ctx context.Context, blockerID, blockedID uint64) (bool, error)
	IsBlockedEither(ctx context.Context, a, b uint64) (bool, error)
	CreateEdge(ctx context.Context, blockerID, blockedID uint64) error
	DeleteEdge(ctx context.Context, blockerID, blockedID uint64) (bool, error)
	DeleteAllOf(ctx context.Context, userID uint64) error
	GetBlockedIDs(ctx context.Context, blockerID uint64) ([]uint64, error)
	GetRelatedIDs(ctx context.Context, userID uint64) ([]uint64, error)
}

type RequestStore interface {
	FindPending(ctx context.Context, requesterID uint64, targetType string, targetID uint64) (*models.Request, error)
	IsRequested(ctx context.Context, requesterID uint64, targetType string, targetID uint64) (bool, error)
	CreatePending(ctx context.Context, requesterID uint64, targetType string, targetID uint64) (*models.Request, error)
	DeleteByID(ctx context.Context, id uint64) error
	FindPendingByID(ctx context.Context, id uint64, targetType string, targetID uint64) (*models.Request, error)
	MarkResponded(ctx context.Context, id uint64, state string, at time.Time) error
	ListPendingForTarget(ctx context.Context, targetType string, targetID uint64) ([]*models.Request, error)
	ListPendingForTargets(ctx context.Context, targetType string, targetIDs []uint64) ([]*models.Request, error)
	FilterRequested(ctx context.Context, userID uint64, targetType string, candidateIDs []uint64) ([]uint64, error)
	DeletePendingBetween(ctx context.Context, a, b uint64) error
	DeleteAllOfTarget(ctx context.Context, targetType string, targetID uint64) error
	DeleteAllOfUser(ctx context.Context, userID uint64) error
}

type GroupStore interface {
	Create(ctx context.Context, group *models.Group) error
	FindByID(ctx context.Context, gid uint64) (*models.Group, error)
	UpdateByID(ctx context.Context, gid uint64, data map[string]any) error
	UpdateOwner(ctx context.Context, gid, newOwnerID uint64) error
	DeleteByID(ctx context.Context, gid uint64) error
	ListOwnedBy(ctx context.Context, ownerID uint64) ([]*models.Group, error)
	ListNotJoined(ctx context.Context, userID uint64, limit, offset int) ([]*models.Group, int64, error)
}

type MemberStore interface {
	IsMember(ctx context.Context, gid, uid uint64) (bool, error)
	IsLeader(ctx context.Context, gid, uid uint64) (bool, error)
	FindMember(ctx context.Context, gid, uid uint64) (*models.GroupMember, error)
	AddMember(ctx context.Context, gid, uid uint64, role string) error
	RemoveMember(ctx context.Context, gid, uid uint64) (bool, error)
	UpdateRole(ctx context.Context, gid, uid uint64, role string) error
	FindFirstAdmin(ctx context.Context, gid uint64) (*models.GroupMember, error)
	CountMembers(ctx context.Context, gid uint64) (int64, error)
	GetMembers(ctx context.Context, gid uint64) ([]*models.GroupMemberItem, error)
	GetUserGroupIDs(ctx context.Context, uid uint64) ([]uint64, error)
	GetLeaderGroupIDs(ctx context.Context, uid uint64) ([]uint64, error)
	ListJoined(ctx context.Context, uid uint64, excludeOwned bool) ([]*models.GroupMember, error)
	RemoveAllOf(ctx context.Context, uid uint64) error
	RemoveAllOfGroup(ctx context.Context, gid uint64) error
}

type PostStore interface {
	FindByID(ctx context.Context, id uint64) (*models.Post, error)
	CountByUser(ctx context.Context, userID uint64) (int64, error)
	ListIDsByUser(ctx context.Context, userID uint64) ([]uint64, error)
	ListIDsByGroup(ctx context.Context, groupID uint64) ([]uint64, error)
	DeleteByIDs(ctx context.Context, ids []uint64) error
}

type StatusStore interface {
	FindByID(ctx context.Context, id uint64) (*models.Status, error)
	HasActive(ctx context.Context, userID uint64, now time.Time) (bool, error)
	HasActivePublic(ctx context.Context, userID uint64, now time.Time) (bool, error)
	ListIDsByUser(ctx context.Context, userID uint64) ([]uint64, error)
	DeleteByIDs(ctx context.Context, ids []uint64) error
}

type CommentStore interface {
	DeleteByUser(ctx context.Context, userID uint64) error
	DeleteByPostIDs(ctx context.Context, postIDs []uint64) error
}

type LikeStore interface {
	DeleteByUser(ctx context.Context, userID uint64) error
	DeleteByTargets(ctx context.Context, targetType string, targetIDs []uint64) error
}

type MediaStore interface {
	FindByOwner(ctx context.Context, ownerType string, ownerID uint64) (*models.Media, error)
	ListByOwners(ctx context.Context, ownerType string, ownerIDs []uint64) ([]*models.Media, error)
	DeleteByOwner(ctx context.Context, ownerType string, ownerID uint64) error
	DeleteByOwners(ctx context.Context, ownerType string, ownerIDs []uint64) error
}

type SavedPostStore interface {
	DeleteByUser(ctx context.Context, userID uint64) error
	DeleteByPostIDs(ctx context.Context, postIDs []uint64) error
}

type HighlightStore interface {
	DetachStatus(ctx context.Context, statusIDs []uint64) error
	DeleteAllOfUser(ctx context.Context, userID uint64) error
}

// TxRunner 事务边界，fn 返回 error 即整体回滚
type TxRunner interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}
