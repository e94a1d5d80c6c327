package service

import (
	"Prism/dao"
	"Prism/models"
	"Prism/pkg/snowflake"
	"Prism/types"
	"context"
	"time"
)

var _ IPostService = (*PostService)(nil)

type IPostService interface {
	Create(ctx context.Context, userID uint64, req *types.CreatePostRequest) (*models.Post, error)
	Show(ctx context.Context, viewerID, postID uint64) (*types.PostItem, error)
	ListByUser(ctx context.Context, viewerID, userID uint64, limit, offset int) ([]*types.PostItem, error)
	ListByGroup(ctx context.Context, viewerID, gid uint64, limit, offset int) ([]*types.PostItem, error)
	Delete(ctx context.Context, actorID, postID uint64) error
	Save(ctx context.Context, userID, postID uint64) error
	Unsave(ctx context.Context, userID, postID uint64) error
	ListSaved(ctx context.Context, userID uint64) ([]*types.PostItem, error)
}

type PostService struct {
	Posts      *dao.PostDAO
	Groups     *dao.GroupDAO
	Members    *dao.GroupMemberDAO
	Comments   *dao.CommentDAO
	Likes      *dao.LikeDAO
	Media      *dao.MediaDAO
	Saved      *dao.SavedPostDAO
	Follows    *dao.UserFollowDAO
	Visibility IVisibilityService
	Tx         *dao.TxManager
	Storage    ObjectRemover
}

func NewPostService(
	posts *dao.PostDAO, groups *dao.GroupDAO, members *dao.GroupMemberDAO,
	comments *dao.CommentDAO, likes *dao.LikeDAO, media *dao.MediaDAO,
	saved *dao.SavedPostDAO, follows *dao.UserFollowDAO,
	visibility *VisibilityService, tx *dao.TxManager, storage ObjectRemover,
) *PostService {
	return &PostService{
		Posts:      posts,
		Groups:     groups,
		Members:    members,
		Comments:   comments,
		Likes:      likes,
		Media:      media,
		Saved:      saved,
		Follows:    follows,
		Visibility: visibility,
		Tx:         tx,
		Storage:    storage,
	}
}

func (s *PostService) Create(ctx context.Context, userID uint64, req *types.CreatePostRequest) (*models.Post, error) {
	privacy := req.Privacy
	if privacy == "" {
		privacy = models.PostPrivacyPublic
	}

	if req.GroupID != nil {
		group, err := s.Groups.FindByID(ctx, *req.GroupID)
		if err != nil {
			return nil, err
		}
		if group == nil {
			return nil, ErrGroupNotFound
		}
		if group.OwnerID != userID {
			member, err := s.Members.IsMember(ctx, group.ID, userID)
			if err != nil {
				return nil, err
			}
			if !member {
				return nil, ErrUnauthorized
			}
		}
	}

	now := time.Now()
	post := &models.Post{
		ID:        uint64(snowflake.GenID()),
		UserID:    userID,
		GroupID:   req.GroupID,
		Content:   req.Content,
		Privacy:   privacy,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.Tx.Transaction(ctx, func(ctx context.Context) error {
		if err := s.Posts.Repo.Create(ctx, post); err != nil {
			return err
		}
		if req.MediaPath != "" {
			mediaType := req.MediaType
			if mediaType == "" {
				mediaType = models.MediaTypeImage
			}
			_, err := s.Media.Create(ctx, models.MediaOwnerPost, post.ID, mediaType, req.MediaPath)
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return post, nil
}

func (s *PostService) Show(ctx context.Context, viewerID, postID uint64) (*types.PostItem, error) {
	post, err := s.Posts.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	verdict, err := s.Visibility.CanViewPost(ctx, viewerID, post)
	if err != nil {
		return nil, err
	}
	if verdict == VerdictDenied {
		return nil, ErrPostNotFound
	}
	return s.buildItem(ctx, viewerID, post)
}

// ListByUser 先做主页级裁决，再按关注状态过滤私密帖
func (s *PostService) ListByUser(ctx context.Context, viewerID, userID uint64, limit, offset int) ([]*types.PostItem, error) {
	verdict, err := s.Visibility.CanViewProfile(ctx, viewerID, userID)
	if err != nil {
		return nil, err
	}
	switch verdict {
	case VerdictDenied:
		return nil, ErrUserNotFound
	case VerdictAllowedPartial:
		return nil, ErrUnauthorized
	}

	onlyPublic := false
	if viewerID != userID {
		following, err := s.Follows.IsFollowing(ctx, viewerID, userID)
		if err != nil {
			return nil, err
		}
		onlyPublic = !following
	}

	posts, err := s.Posts.ListByUser(ctx, userID, onlyPublic, limit, offset)
	if err != nil {
		return nil, err
	}
	return s.buildItems(ctx, viewerID, posts)
}

func (s *PostService) ListByGroup(ctx context.Context, viewerID, gid uint64, limit, offset int) ([]*types.PostItem, error) {
	group, err := s.Groups.FindByID(ctx, gid)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, ErrGroupNotFound
	}

	ok, err := s.Visibility.CanViewGroupContent(ctx, viewerID, group)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrUnauthorized
	}

	posts, err := s.Posts.ListByGroup(ctx, gid, limit, offset)
	if err != nil {
		return nil, err
	}
	return s.buildItems(ctx, viewerID, posts)
}

// Delete 帖子作者可删；群帖群主/管理员也可删
func (s *PostService) Delete(ctx context.Context, actorID, postID uint64) error {
	post, err := s.Posts.FindByID(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrPostNotFound
	}

	if post.UserID != actorID {
		allowed := false
		if post.GroupID != nil {
			allowed, err = s.Members.IsLeader(ctx, *post.GroupID, actorID)
			if err != nil {
				return err
			}
		}
		if !allowed {
			return ErrUnauthorized
		}
	}

	var removedKeys []string
	err = s.Tx.Transaction(ctx, func(ctx context.Context) error {
		media, err := s.Media.ListByOwners(ctx, models.MediaOwnerPost, []uint64{postID})
		if err != nil {
			return err
		}
		for _, m := range media {
			removedKeys = append(removedKeys, m.Path)
		}

		if err := s.Comments.DeleteByPostIDs(ctx, []uint64{postID}); err != nil {
			return err
		}
		if err := s.Likes.DeleteByTargets(ctx, models.LikeTargetPost, []uint64{postID}); err != nil {
			return err
		}
		if err := s.Saved.DeleteByPostIDs(ctx, []uint64{postID}); err != nil {
			return err
		}
		if err := s.Media.DeleteByOwner(ctx, models.MediaOwnerPost, postID); err != nil {
			return err
		}
		return s.Posts.DeleteByID(ctx, postID)
	})
	if err != nil {
		return err
	}

	if s.Storage != nil {
		s.Storage.RemoveObjects(ctx, removedKeys)
	}
	return nil
}

// Save 收藏，可见才允许，重复收藏是幂等的
func (s *PostService) Save(ctx context.Context, userID, postID uint64) error {
	if _, err := s.Show(ctx, userID, postID); err != nil {
		return err
	}
	saved, err := s.Saved.IsSaved(ctx, userID, postID)
	if err != nil {
		return err
	}
	if saved {
		return nil
	}
	return s.Saved.Save(ctx, userID, postID)
}

func (s *PostService) Unsave(ctx context.Context, userID, postID uint64) error {
	_, err := s.Saved.Unsave(ctx, userID, postID)
	return err
}

// ListSaved 收藏列表，收藏后转私密/被删的帖子直接跳过
func (s *PostService) ListSaved(ctx context.Context, userID uint64) ([]*types.PostItem, error) {
	ids, err := s.Saved.ListPostIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := make([]*types.PostItem, 0, len(ids))
	for _, id := range ids {
		post, err := s.Posts.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if post == nil {
			continue
		}
		verdict, err := s.Visibility.CanViewPost(ctx, userID, post)
		if err != nil {
			return nil, err
		}
		if verdict == VerdictDenied {
			continue
		}
		item, err := s.buildItem(ctx, userID, post)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (s *PostService) buildItems(ctx context.Context, viewerID uint64, posts []*models.Post) ([]*types.PostItem, error) {
	items := make([]*types.PostItem, 0, len(posts))
	for _, post := range posts {
		item, err := s.buildItem(ctx, viewerID, post)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (s *PostService) buildItem(ctx context.Context, viewerID uint64, post *models.Post) (*types.PostItem, error) {
	item := &types.PostItem{
		ID:        post.ID,
		UserID:    post.UserID,
		GroupID:   post.GroupID,
		Content:   post.Content,
		Privacy:   post.Privacy,
		CreatedAt: post.CreatedAt,
	}

	var err error
	if item.LikeCount, err = s.Likes.Count(ctx, models.LikeTargetPost, post.ID); err != nil {
		return nil, err
	}
	if item.CommentCount, err = s.Comments.CountByPost(ctx, post.ID); err != nil {
		return nil, err
	}
	if item.IsLiked, err = s.Likes.IsLiked(ctx, viewerID, models.LikeTargetPost, post.ID); err != nil {
		return nil, err
	}
	if item.IsSaved, err = s.Saved.IsSaved(ctx, viewerID, post.ID); err != nil {
		return nil, err
	}
	if media, err := s.Media.FindByOwner(ctx, models.MediaOwnerPost, post.ID); err == nil && media != nil {
		item.MediaPath = media.Path
	}
	return item, nil
}
