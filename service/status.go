package service

import (
	"Prism/dao"
	"Prism/dao/cache"
	"Prism/models"
	"Prism/pkg/snowflake"
	"Prism/types"
	"context"
	"time"
)

// 动态生命周期 24 小时
const statusLifetime = 24 * time.Hour

var _ IStatusService = (*StatusService)(nil)

type IStatusService interface {
	Create(ctx context.Context, userID uint64, req *types.CreateStatusRequest) (*models.Status, error)
	Show(ctx context.Context, viewerID, statusID uint64) (*types.StatusItem, error)
	ListActive(ctx context.Context, viewerID, ownerID uint64) ([]*types.StatusItem, error)
	ListArchived(ctx context.Context, userID uint64) ([]*types.StatusItem, error)
	StoryRing(ctx context.Context, viewerID uint64) ([]*types.StoryRingItem, error)
	Viewers(ctx context.Context, actorID, statusID uint64) ([]*types.ViewerItem, error)
	Delete(ctx context.Context, actorID, statusID uint64) error
	CreateHighlight(ctx context.Context, userID uint64, req *types.CreateHighlightRequest) (*models.Highlight, error)
	ListHighlights(ctx context.Context, viewerID, ownerID uint64) ([]*types.HighlightItem, error)
	DeleteHighlight(ctx context.Context, actorID, highlightID uint64) error
}

type StatusService struct {
	Statuses   *dao.StatusDAO
	Users      *dao.Users
	Follows    *dao.UserFollowDAO
	Likes      *dao.LikeDAO
	Media      *dao.MediaDAO
	Highlights *dao.HighlightDAO
	Visibility IVisibilityService
	Views      *cache.StatusViewStorage
	Tx         *dao.TxManager
	Storage    ObjectRemover
}

func NewStatusService(
	statuses *dao.StatusDAO, users *dao.Users, follows *dao.UserFollowDAO,
	likes *dao.LikeDAO, media *dao.MediaDAO, highlights *dao.HighlightDAO,
	visibility *VisibilityService, views *cache.StatusViewStorage,
	tx *dao.TxManager, storage ObjectRemover,
) *StatusService {
	return &StatusService{
		Statuses:   statuses,
		Users:      users,
		Follows:    follows,
		Likes:      likes,
		Media:      media,
		Highlights: highlights,
		Visibility: visibility,
		Views:      views,
		Tx:         tx,
		Storage:    storage,
	}
}

func (s *StatusService) Create(ctx context.Context, userID uint64, req *types.CreateStatusRequest) (*models.Status, error) {
	privacy := req.Privacy
	if privacy == "" {
		privacy = models.StatusPrivacyPublic
	}

	now := time.Now()
	status := &models.Status{
		ID:             uint64(snowflake.GenID()),
		UserID:         userID,
		Text:           req.Text,
		Privacy:        privacy,
		ExpirationDate: now.Add(statusLifetime),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err := s.Tx.Transaction(ctx, func(ctx context.Context) error {
		if err := s.Statuses.Repo.Create(ctx, status); err != nil {
			return err
		}
		if req.MediaPath != "" {
			mediaType := req.MediaType
			if mediaType == "" {
				mediaType = models.MediaTypeImage
			}
			_, err := s.Media.Create(ctx, models.MediaOwnerStatus, status.ID, mediaType, req.MediaPath)
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return status, nil
}

// Show 查看动态并记一次浏览
func (s *StatusService) Show(ctx context.Context, viewerID, statusID uint64) (*types.StatusItem, error) {
	status, err := s.Statuses.FindByID(ctx, statusID)
	if err != nil {
		return nil, err
	}
	if status == nil {
		return nil, ErrStatusNotFound
	}

	verdict, err := s.Visibility.CanViewStatus(ctx, viewerID, status, time.Now())
	if err != nil {
		return nil, err
	}
	if verdict == VerdictDenied {
		return nil, ErrStatusNotFound
	}

	if viewerID != status.UserID && s.Views != nil {
		s.Views.MarkViewed(ctx, viewerID, status.ID)
	}
	return s.buildItem(ctx, viewerID, status)
}

// ListActive 某用户的活跃动态，过期过滤在查询里完成
func (s *StatusService) ListActive(ctx context.Context, viewerID, ownerID uint64) ([]*types.StatusItem, error) {
	verdict, err := s.Visibility.CanViewProfile(ctx, viewerID, ownerID)
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
	if viewerID != ownerID {
		following, err := s.Follows.IsFollowing(ctx, viewerID, ownerID)
		if err != nil {
			return nil, err
		}
		onlyPublic = !following
	}

	statuses, err := s.Statuses.ListActive(ctx, ownerID, time.Now(), onlyPublic)
	if err != nil {
		return nil, err
	}
	return s.buildItems(ctx, viewerID, statuses)
}

// ListArchived 归档通道：本人专属，不走可见性裁决
func (s *StatusService) ListArchived(ctx context.Context, userID uint64) ([]*types.StatusItem, error) {
	statuses, err := s.Statuses.ListArchived(ctx, userID, time.Now())
	if err != nil {
		return nil, err
	}
	return s.buildItems(ctx, userID, statuses)
}

// StoryRing 我关注的、有活跃动态的用户环
func (s *StatusService) StoryRing(ctx context.Context, viewerID uint64) ([]*types.StoryRingItem, error) {
	ids, err := s.Follows.GetFollowingWithActiveStatus(ctx, viewerID, time.Now())
	if err != nil {
		return nil, err
	}
	users, err := s.Users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	items := make([]*types.StoryRingItem, 0, len(users))
	for _, u := range users {
		item := &types.StoryRingItem{
			UserID:   u.ID,
			Name:     u.Name,
			Username: u.Username,
		}
		if media, err := s.Media.FindByOwner(ctx, models.MediaOwnerUser, u.ID); err == nil && media != nil {
			item.Avatar = media.Path
		}
		items = append(items, item)
	}
	return items, nil
}

// Viewers 浏览者列表，仅动态所有者可见
func (s *StatusService) Viewers(ctx context.Context, actorID, statusID uint64) ([]*types.ViewerItem, error) {
	status, err := s.Statuses.FindByID(ctx, statusID)
	if err != nil {
		return nil, err
	}
	if status == nil {
		return nil, ErrStatusNotFound
	}
	if status.UserID != actorID {
		return nil, ErrUnauthorized
	}

	var viewerIDs []uint64
	if s.Views != nil {
		viewerIDs = s.Views.ViewerIds(ctx, statusID)
	}
	users, err := s.Users.FindByIDs(ctx, viewerIDs)
	if err != nil {
		return nil, err
	}

	items := make([]*types.ViewerItem, 0, len(users))
	for _, u := range users {
		items = append(items, &types.ViewerItem{
			UserID:   u.ID,
			Name:     u.Name,
			Username: u.Username,
		})
	}
	return items, nil
}

func (s *StatusService) Delete(ctx context.Context, actorID, statusID uint64) error {
	status, err := s.Statuses.FindByID(ctx, statusID)
	if err != nil {
		return err
	}
	if status == nil {
		return ErrStatusNotFound
	}
	if status.UserID != actorID {
		return ErrUnauthorized
	}

	var removedKeys []string
	err = s.Tx.Transaction(ctx, func(ctx context.Context) error {
		media, err := s.Media.ListByOwners(ctx, models.MediaOwnerStatus, []uint64{statusID})
		if err != nil {
			return err
		}
		for _, m := range media {
			removedKeys = append(removedKeys, m.Path)
		}

		if err := s.Likes.DeleteByTargets(ctx, models.LikeTargetStatus, []uint64{statusID}); err != nil {
			return err
		}
		if err := s.Highlights.DetachStatus(ctx, []uint64{statusID}); err != nil {
			return err
		}
		if err := s.Media.DeleteByOwner(ctx, models.MediaOwnerStatus, statusID); err != nil {
			return err
		}
		return s.Statuses.DeleteByID(ctx, statusID)
	})
	if err != nil {
		return err
	}

	if s.Views != nil {
		s.Views.Del(ctx, statusID)
	}
	if s.Storage != nil {
		s.Storage.RemoveObjects(ctx, removedKeys)
	}
	return nil
}

// CreateHighlight 把自己的动态（含已归档）收进精选
func (s *StatusService) CreateHighlight(ctx context.Context, userID uint64, req *types.CreateHighlightRequest) (*models.Highlight, error) {
	for _, id := range req.StatusIDs {
		status, err := s.Statuses.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if status == nil || status.UserID != userID {
			return nil, ErrInvalidTarget
		}
	}

	now := time.Now()
	highlight := &models.Highlight{
		UserID:    userID,
		Title:     req.Title,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := s.Tx.Transaction(ctx, func(ctx context.Context) error {
		if err := s.Highlights.Repo.Create(ctx, highlight); err != nil {
			return err
		}
		for _, id := range req.StatusIDs {
			if err := s.Highlights.AttachStatus(ctx, highlight.ID, id); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return highlight, nil
}

// ListHighlights 精选列表。精选展示归档内容，入口仍受主页级裁决约束
func (s *StatusService) ListHighlights(ctx context.Context, viewerID, ownerID uint64) ([]*types.HighlightItem, error) {
	verdict, err := s.Visibility.CanViewProfile(ctx, viewerID, ownerID)
	if err != nil {
		return nil, err
	}
	switch verdict {
	case VerdictDenied:
		return nil, ErrUserNotFound
	case VerdictAllowedPartial:
		return nil, ErrUnauthorized
	}

	highlights, err := s.Highlights.ListByUser(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	items := make([]*types.HighlightItem, 0, len(highlights))
	for _, h := range highlights {
		statusIDs, err := s.Highlights.ListStatusIDs(ctx, h.ID)
		if err != nil {
			return nil, err
		}
		item := &types.HighlightItem{ID: h.ID, Title: h.Title}
		for _, id := range statusIDs {
			status, err := s.Statuses.FindByID(ctx, id)
			if err != nil {
				return nil, err
			}
			if status == nil {
				continue
			}
			si, err := s.buildItem(ctx, viewerID, status)
			if err != nil {
				return nil, err
			}
			item.Statuses = append(item.Statuses, si)
		}
		items = append(items, item)
	}
	return items, nil
}

func (s *StatusService) DeleteHighlight(ctx context.Context, actorID, highlightID uint64) error {
	highlight, err := s.Highlights.FindByID(ctx, highlightID)
	if err != nil {
		return err
	}
	if highlight == nil {
		return ErrNotFound
	}
	if highlight.UserID != actorID {
		return ErrUnauthorized
	}

	return s.Tx.Transaction(ctx, func(ctx context.Context) error {
		if err := s.Highlights.DeleteAllOfHighlight(ctx, highlightID); err != nil {
			return err
		}
		return s.Highlights.DeleteByID(ctx, highlightID)
	})
}

func (s *StatusService) buildItems(ctx context.Context, viewerID uint64, statuses []*models.Status) ([]*types.StatusItem, error) {
	ids := make([]uint64, 0, len(statuses))
	for _, st := range statuses {
		ids = append(ids, st.ID)
	}
	viewedMap := map[uint64]bool{}
	if s.Views != nil {
		viewedMap = s.Views.BatchViewed(ctx, viewerID, ids)
	}

	items := make([]*types.StatusItem, 0, len(statuses))
	for _, st := range statuses {
		item, err := s.buildItem(ctx, viewerID, st)
		if err != nil {
			return nil, err
		}
		item.IsViewed = viewedMap[st.ID]
		items = append(items, item)
	}
	return items, nil
}

func (s *StatusService) buildItem(ctx context.Context, viewerID uint64, status *models.Status) (*types.StatusItem, error) {
	item := &types.StatusItem{
		ID:             status.ID,
		UserID:         status.UserID,
		Text:           status.Text,
		Privacy:        status.Privacy,
		ExpirationDate: status.ExpirationDate,
		CreatedAt:      status.CreatedAt,
	}

	var err error
	if item.LikeCount, err = s.Likes.Count(ctx, models.LikeTargetStatus, status.ID); err != nil {
		return nil, err
	}
	if media, err := s.Media.FindByOwner(ctx, models.MediaOwnerStatus, status.ID); err == nil && media != nil {
		item.MediaPath = media.Path
	}
	if s.Views != nil && viewerID != status.UserID {
		item.IsViewed = s.Views.IsViewed(ctx, viewerID, status.ID)
	}
	return item, nil
}
