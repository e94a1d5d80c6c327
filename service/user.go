package service

import (
	"Prism/dao"
	"Prism/dao/cache"
	"Prism/models"
	"Prism/types"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var _ IUserService = (*UserService)(nil)

type IUserService interface {
	Show(ctx context.Context, viewerID, userID uint64) (*types.UserProfile, error)
	Update(ctx context.Context, userID uint64, req *types.UpdateUserRequest) error
	Destroy(ctx context.Context, userID uint64) error
}

type UserService struct {
	Users      UserStore
	Follows    FollowStore
	Blocks     BlockStore
	Requests   RequestStore
	Posts      PostStore
	Statuses   StatusStore
	Comments   CommentStore
	Likes      LikeStore
	Media      MediaStore
	Saved      SavedPostStore
	Highlights HighlightStore
	Members    MemberStore
	Groups     IGroupService
	Visibility IVisibilityService
	Tx         TxRunner
	Emitter    Emitter
	Storage    ObjectRemover
	Views      *cache.StatusViewStorage
}

func NewUserService(
	users *dao.Users, follows *dao.UserFollowDAO, blocks *dao.UserBlockDAO,
	requests *dao.RequestDAO, posts *dao.PostDAO, statuses *dao.StatusDAO,
	comments *dao.CommentDAO, likes *dao.LikeDAO, media *dao.MediaDAO,
	saved *dao.SavedPostDAO, highlights *dao.HighlightDAO, members *dao.GroupMemberDAO,
	groups *GroupService, visibility *VisibilityService,
	tx *dao.TxManager, emitter Emitter, storage ObjectRemover,
	views *cache.StatusViewStorage,
) *UserService {
	return &UserService{
		Users:      users,
		Follows:    follows,
		Blocks:     blocks,
		Requests:   requests,
		Posts:      posts,
		Statuses:   statuses,
		Comments:   comments,
		Likes:      likes,
		Media:      media,
		Saved:      saved,
		Highlights: highlights,
		Members:    members,
		Groups:     groups,
		Visibility: visibility,
		Tx:         tx,
		Emitter:    emitter,
		Storage:    storage,
		Views:      views,
	}
}

// Show 用户主页。拉黑对之间互相返回 404，不泄露存在性；
// 私密账号未关注时下发部分视图
func (s *UserService) Show(ctx context.Context, viewerID, userID uint64) (*types.UserProfile, error) {
	user, err := s.Users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	verdict, err := s.Visibility.CanViewProfile(ctx, viewerID, userID)
	if err != nil {
		return nil, err
	}
	if verdict == VerdictDenied {
		return nil, ErrUserNotFound
	}

	profile := &types.UserProfile{
		ID:        user.ID,
		Name:      user.Name,
		Username:  user.Username,
		IsPrivate: user.IsPrivate,
		Partial:   verdict == VerdictAllowedPartial,
	}

	if media, err := s.Media.FindByOwner(ctx, models.MediaOwnerUser, userID); err == nil && media != nil {
		profile.Avatar = media.Path
	}

	if profile.FollowerCount, err = s.Follows.GetFollowerCount(ctx, userID); err != nil {
		return nil, err
	}
	if profile.FollowingCount, err = s.Follows.GetFollowingCount(ctx, userID); err != nil {
		return nil, err
	}
	if profile.PostCount, err = s.Posts.CountByUser(ctx, userID); err != nil {
		return nil, err
	}

	if viewerID != userID {
		if profile.IsFollowing, err = s.Follows.IsFollowing(ctx, viewerID, userID); err != nil {
			return nil, err
		}
		if profile.IsRequested, err = s.Requests.IsRequested(ctx, viewerID, models.RequestTargetUser, userID); err != nil {
			return nil, err
		}
	}

	if profile.HasStatus, err = s.Visibility.HasVisibleStatus(ctx, viewerID, userID, time.Now()); err != nil {
		return nil, err
	}

	if verdict == VerdictAllowed {
		profile.Bio = user.Bio
		profile.PersonalInfo = user.PersonalInfo
		if viewerID == userID {
			profile.Email = user.Email
		}
	}
	return profile, nil
}

func (s *UserService) Update(ctx context.Context, userID uint64, req *types.UpdateUserRequest) error {
	data := map[string]any{}
	if req.Name != nil {
		data["name"] = *req.Name
	}
	if req.Username != nil {
		taken, err := s.Users.IsUsernameTaken(ctx, *req.Username, userID)
		if err != nil {
			return err
		}
		if taken {
			return ErrUsernameTaken
		}
		data["username"] = *req.Username
	}
	if req.Bio != nil {
		data["bio"] = *req.Bio
	}
	if req.IsPrivate != nil {
		data["is_private"] = *req.IsPrivate
	}
	if req.PersonalInfo != nil {
		data["personal_info"] = *req.PersonalInfo
	}
	if len(data) == 0 {
		return nil
	}
	data["updated_at"] = time.Now()
	return s.Users.UpdateByID(ctx, userID, data)
}

// Destroy 注销账号。内容、媒体引用、群组归属、关系边与请求
// 在一个事务里全部处理，任何一步失败整体回滚；
// 对象存储与浏览缓存在提交后尽力清理
func (s *UserService) Destroy(ctx context.Context, userID uint64) error {
	if _, err := s.Users.FindByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	var removedKeys []string
	var statusIDs []uint64

	err := s.Tx.Transaction(ctx, func(ctx context.Context) error {
		postIDs, err := s.Posts.ListIDsByUser(ctx, userID)
		if err != nil {
			return err
		}
		if statusIDs, err = s.Statuses.ListIDsByUser(ctx, userID); err != nil {
			return err
		}

		keys, err := s.collectMediaKeys(ctx, userID, postIDs, statusIDs)
		if err != nil {
			return err
		}
		removedKeys = keys

		// 本人发出的评论/点赞/收藏，及别人对本人内容的互动
		if err := s.Comments.DeleteByUser(ctx, userID); err != nil {
			return err
		}
		if err := s.Comments.DeleteByPostIDs(ctx, postIDs); err != nil {
			return err
		}
		if err := s.Likes.DeleteByUser(ctx, userID); err != nil {
			return err
		}
		if err := s.Likes.DeleteByTargets(ctx, models.LikeTargetPost, postIDs); err != nil {
			return err
		}
		if err := s.Likes.DeleteByTargets(ctx, models.LikeTargetStatus, statusIDs); err != nil {
			return err
		}
		if err := s.Saved.DeleteByUser(ctx, userID); err != nil {
			return err
		}
		if err := s.Saved.DeleteByPostIDs(ctx, postIDs); err != nil {
			return err
		}

		if err := s.Highlights.DetachStatus(ctx, statusIDs); err != nil {
			return err
		}
		if err := s.Highlights.DeleteAllOfUser(ctx, userID); err != nil {
			return err
		}

		if err := s.Media.DeleteByOwners(ctx, models.MediaOwnerPost, postIDs); err != nil {
			return err
		}
		if err := s.Media.DeleteByOwners(ctx, models.MediaOwnerStatus, statusIDs); err != nil {
			return err
		}
		if err := s.Media.DeleteByOwner(ctx, models.MediaOwnerUser, userID); err != nil {
			return err
		}

		if err := s.Posts.DeleteByIDs(ctx, postIDs); err != nil {
			return err
		}
		if err := s.Statuses.DeleteByIDs(ctx, statusIDs); err != nil {
			return err
		}

		// 名下群组：有管理员则转让，否则整群删除
		groupKeys, err := s.Groups.HandleOwnerDeparture(ctx, userID)
		if err != nil {
			return err
		}
		removedKeys = append(removedKeys, groupKeys...)

		if err := s.Members.RemoveAllOf(ctx, userID); err != nil {
			return err
		}
		if err := s.Follows.DeleteAllOf(ctx, userID); err != nil {
			return err
		}
		if err := s.Blocks.DeleteAllOf(ctx, userID); err != nil {
			return err
		}
		if err := s.Requests.DeleteAllOfUser(ctx, userID); err != nil {
			return err
		}
		return s.Users.DeleteByID(ctx, userID)
	})
	if err != nil {
		return err
	}

	if s.Storage != nil {
		s.Storage.RemoveObjects(ctx, removedKeys)
	}
	if s.Views != nil {
		s.Views.Del(ctx, statusIDs...)
	}
	s.Emitter.Emit(ctx, EventUserDeleted, map[string]any{"user_id": userID})
	return nil
}

func (s *UserService) collectMediaKeys(ctx context.Context, userID uint64, postIDs, statusIDs []uint64) ([]string, error) {
	var keys []string

	if avatar, err := s.Media.FindByOwner(ctx, models.MediaOwnerUser, userID); err != nil {
		return nil, err
	} else if avatar != nil {
		keys = append(keys, avatar.Path)
	}

	postMedia, err := s.Media.ListByOwners(ctx, models.MediaOwnerPost, postIDs)
	if err != nil {
		return nil, err
	}
	for _, m := range postMedia {
		keys = append(keys, m.Path)
	}

	statusMedia, err := s.Media.ListByOwners(ctx, models.MediaOwnerStatus, statusIDs)
	if err != nil {
		return nil, err
	}
	for _, m := range statusMedia {
		keys = append(keys, m.Path)
	}
	return keys, nil
}
