package service

import (
	"Prism/dao"
	"Prism/models"
	"Prism/types"
	"context"
	"time"
)

// ObjectRemover 对象存储清理，尽力而为，只在事务提交后调用
type ObjectRemover interface {
	RemoveObjects(ctx context.Context, keys []string)
}

var _ IGroupService = (*GroupService)(nil)

type IGroupService interface {
	Create(ctx context.Context, ownerID uint64, req *types.CreateGroupRequest) (*models.Group, error)
	Update(ctx context.Context, actorID, gid uint64, req *types.UpdateGroupRequest) error
	Show(ctx context.Context, viewerID, gid uint64) (*types.GroupItem, error)
	Delete(ctx context.Context, actorID, gid uint64) error
	ListJoined(ctx context.Context, userID uint64) ([]*types.GroupItem, error)
	ListOwned(ctx context.Context, userID uint64) ([]*types.GroupItem, error)
	Explore(ctx context.Context, userID uint64, limit, offset int) ([]*types.GroupItem, int64, error)

	// HandleOwnerDeparture 账号注销的级联：有管理员则转让群主，
	// 否则整群删除。必须在调用方的事务内执行
	HandleOwnerDeparture(ctx context.Context, ownerID uint64) ([]string, error)
}

type GroupService struct {
	Groups   GroupStore
	Members  MemberStore
	Requests RequestStore
	Posts    PostStore
	Comments CommentStore
	Likes    LikeStore
	Media    MediaStore
	Saved    SavedPostStore
	Tx       TxRunner
	Storage  ObjectRemover
}

func NewGroupService(
	groups *dao.GroupDAO, members *dao.GroupMemberDAO, requests *dao.RequestDAO,
	posts *dao.PostDAO, comments *dao.CommentDAO, likes *dao.LikeDAO,
	media *dao.MediaDAO, saved *dao.SavedPostDAO,
	tx *dao.TxManager, storage ObjectRemover,
) *GroupService {
	return &GroupService{
		Groups:   groups,
		Members:  members,
		Requests: requests,
		Posts:    posts,
		Comments: comments,
		Likes:    likes,
		Media:    media,
		Saved:    saved,
		Tx:       tx,
		Storage:  storage,
	}
}

func (s *GroupService) Create(ctx context.Context, ownerID uint64, req *types.CreateGroupRequest) (*models.Group, error) {
	privacy := req.Privacy
	if privacy == "" {
		privacy = models.GroupPrivacyPublic
	}

	now := time.Now()
	group := &models.Group{
		Name:      req.Name,
		Bio:       req.Bio,
		Privacy:   privacy,
		OwnerID:   ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	// 群主同时落一条 owner 成员记录，保证成员列表/计数自洽
	err := s.Tx.Transaction(ctx, func(ctx context.Context) error {
		if err := s.Groups.Create(ctx, group); err != nil {
			return err
		}
		return s.Members.AddMember(ctx, group.ID, ownerID, models.GroupRoleOwner)
	})
	if err != nil {
		return nil, err
	}
	return group, nil
}

func (s *GroupService) Update(ctx context.Context, actorID, gid uint64, req *types.UpdateGroupRequest) error {
	group, err := s.Groups.FindByID(ctx, gid)
	if err != nil {
		return err
	}
	if group == nil {
		return ErrGroupNotFound
	}

	leader, err := s.Members.IsLeader(ctx, gid, actorID)
	if err != nil {
		return err
	}
	if !leader {
		return ErrUnauthorized
	}

	data := map[string]any{}
	if req.Name != nil {
		data["name"] = *req.Name
	}
	if req.Bio != nil {
		data["bio"] = *req.Bio
	}
	if req.Privacy != nil {
		data["privacy"] = *req.Privacy
	}
	if len(data) == 0 {
		return nil
	}
	data["updated_at"] = time.Now()
	return s.Groups.UpdateByID(ctx, gid, data)
}

func (s *GroupService) Show(ctx context.Context, viewerID, gid uint64) (*types.GroupItem, error) {
	group, err := s.Groups.FindByID(ctx, gid)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, ErrGroupNotFound
	}

	item, err := s.buildItem(ctx, viewerID, group)
	if err != nil {
		return nil, err
	}
	if media, err := s.Media.FindByOwner(ctx, models.MediaOwnerGroup, gid); err == nil && media != nil {
		item.Avatar = media.Path
	}
	return item, nil
}

// Delete 解散群组，群主专属。帖子、评论、点赞、媒体、成员、
// 待处理请求与群行在一个事务里清掉
func (s *GroupService) Delete(ctx context.Context, actorID, gid uint64) error {
	group, err := s.Groups.FindByID(ctx, gid)
	if err != nil {
		return err
	}
	if group == nil {
		return ErrGroupNotFound
	}
	if group.OwnerID != actorID {
		return ErrUnauthorized
	}

	var removedKeys []string
	err = s.Tx.Transaction(ctx, func(ctx context.Context) error {
		keys, err := s.deleteGroupCascade(ctx, gid)
		if err != nil {
			return err
		}
		removedKeys = keys
		return nil
	})
	if err != nil {
		return err
	}

	if s.Storage != nil {
		s.Storage.RemoveObjects(ctx, removedKeys)
	}
	return nil
}

func (s *GroupService) ListJoined(ctx context.Context, userID uint64) ([]*types.GroupItem, error) {
	memberships, err := s.Members.ListJoined(ctx, userID, false)
	if err != nil {
		return nil, err
	}

	items := make([]*types.GroupItem, 0, len(memberships))
	for _, m := range memberships {
		group, err := s.Groups.FindByID(ctx, m.GroupID)
		if err != nil {
			return nil, err
		}
		if group == nil {
			continue
		}
		count, err := s.Members.CountMembers(ctx, group.ID)
		if err != nil {
			return nil, err
		}
		items = append(items, &types.GroupItem{
			ID:          group.ID,
			Name:        group.Name,
			Bio:         group.Bio,
			Privacy:     group.Privacy,
			OwnerID:     group.OwnerID,
			MemberCount: count,
			Role:        m.Role,
		})
	}
	return items, nil
}

func (s *GroupService) ListOwned(ctx context.Context, userID uint64) ([]*types.GroupItem, error) {
	groups, err := s.Groups.ListOwnedBy(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := make([]*types.GroupItem, 0, len(groups))
	for _, group := range groups {
		count, err := s.Members.CountMembers(ctx, group.ID)
		if err != nil {
			return nil, err
		}
		items = append(items, &types.GroupItem{
			ID:          group.ID,
			Name:        group.Name,
			Bio:         group.Bio,
			Privacy:     group.Privacy,
			OwnerID:     group.OwnerID,
			MemberCount: count,
			Role:        models.GroupRoleOwner,
		})
	}
	return items, nil
}

// Explore 发现页：我没加入的群，标注是否已申请
func (s *GroupService) Explore(ctx context.Context, userID uint64, limit, offset int) ([]*types.GroupItem, int64, error) {
	groups, total, err := s.Groups.ListNotJoined(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	gids := make([]uint64, 0, len(groups))
	for _, g := range groups {
		gids = append(gids, g.ID)
	}
	requestedSet, err := toSet(s.Requests.FilterRequested(ctx, userID, models.RequestTargetGroup, gids))
	if err != nil {
		return nil, 0, err
	}

	items := make([]*types.GroupItem, 0, len(groups))
	for _, group := range groups {
		count, err := s.Members.CountMembers(ctx, group.ID)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, &types.GroupItem{
			ID:          group.ID,
			Name:        group.Name,
			Bio:         group.Bio,
			Privacy:     group.Privacy,
			OwnerID:     group.OwnerID,
			MemberCount: count,
			IsRequested: requestedSet[group.ID],
		})
	}
	return items, total, nil
}

func (s *GroupService) HandleOwnerDeparture(ctx context.Context, ownerID uint64) ([]string, error) {
	groups, err := s.Groups.ListOwnedBy(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	var removedKeys []string
	for _, group := range groups {
		admin, err := s.Members.FindFirstAdmin(ctx, group.ID)
		if err != nil {
			return nil, err
		}
		if admin == nil {
			keys, err := s.deleteGroupCascade(ctx, group.ID)
			if err != nil {
				return nil, err
			}
			removedKeys = append(removedKeys, keys...)
			continue
		}

		// 最早晋升的管理员接任群主
		if err := s.Groups.UpdateOwner(ctx, group.ID, admin.UserID); err != nil {
			return nil, err
		}
		if err := s.Members.UpdateRole(ctx, group.ID, admin.UserID, models.GroupRoleOwner); err != nil {
			return nil, err
		}
		if _, err := s.Members.RemoveMember(ctx, group.ID, ownerID); err != nil {
			return nil, err
		}
	}
	return removedKeys, nil
}

// deleteGroupCascade 在已开启的事务内删除群及其全部内容，
// 返回待清理的对象存储 key
func (s *GroupService) deleteGroupCascade(ctx context.Context, gid uint64) ([]string, error) {
	postIDs, err := s.Posts.ListIDsByGroup(ctx, gid)
	if err != nil {
		return nil, err
	}

	var keys []string
	postMedia, err := s.Media.ListByOwners(ctx, models.MediaOwnerPost, postIDs)
	if err != nil {
		return nil, err
	}
	for _, m := range postMedia {
		keys = append(keys, m.Path)
	}
	if groupMedia, err := s.Media.FindByOwner(ctx, models.MediaOwnerGroup, gid); err != nil {
		return nil, err
	} else if groupMedia != nil {
		keys = append(keys, groupMedia.Path)
	}

	if err := s.Comments.DeleteByPostIDs(ctx, postIDs); err != nil {
		return nil, err
	}
	if err := s.Likes.DeleteByTargets(ctx, models.LikeTargetPost, postIDs); err != nil {
		return nil, err
	}
	if err := s.Saved.DeleteByPostIDs(ctx, postIDs); err != nil {
		return nil, err
	}
	if err := s.Media.DeleteByOwners(ctx, models.MediaOwnerPost, postIDs); err != nil {
		return nil, err
	}
	if err := s.Posts.DeleteByIDs(ctx, postIDs); err != nil {
		return nil, err
	}
	if err := s.Members.RemoveAllOfGroup(ctx, gid); err != nil {
		return nil, err
	}
	if err := s.Requests.DeleteAllOfTarget(ctx, models.RequestTargetGroup, gid); err != nil {
		return nil, err
	}
	if err := s.Media.DeleteByOwner(ctx, models.MediaOwnerGroup, gid); err != nil {
		return nil, err
	}
	if err := s.Groups.DeleteByID(ctx, gid); err != nil {
		return nil, err
	}
	return keys, nil
}

func (s *GroupService) buildItem(ctx context.Context, viewerID uint64, group *models.Group) (*types.GroupItem, error) {
	count, err := s.Members.CountMembers(ctx, group.ID)
	if err != nil {
		return nil, err
	}

	item := &types.GroupItem{
		ID:          group.ID,
		Name:        group.Name,
		Bio:         group.Bio,
		Privacy:     group.Privacy,
		OwnerID:     group.OwnerID,
		MemberCount: count,
	}

	member, err := s.Members.FindMember(ctx, group.ID, viewerID)
	if err != nil {
		return nil, err
	}
	if member != nil {
		item.Role = member.Role
		return item, nil
	}

	requested, err := s.Requests.IsRequested(ctx, viewerID, models.RequestTargetGroup, group.ID)
	if err != nil {
		return nil, err
	}
	item.IsRequested = requested
	return item, nil
}
