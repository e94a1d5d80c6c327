package service

import (
	"Prism/dao"
	"Prism/models"
	"Prism/types"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// FollowOutcome 关注操作的结果信号。冲突（已关注/未关注）是
// 预期内的高频路径，按结果返回而不是按错误返回，HTTP 码由 handler 决定
type FollowOutcome string

const (
	OutcomeFollowed         FollowOutcome = "followed"
	OutcomeRequestSent      FollowOutcome = "request_sent"
	OutcomeRequestWithdrawn FollowOutcome = "request_withdrawn"
	OutcomeAlreadyFollowing FollowOutcome = "already_following"
	OutcomeUnfollowed       FollowOutcome = "unfollowed"
	OutcomeNotFollowing     FollowOutcome = "not_following"
)

var _ IFollowService = (*FollowService)(nil)

type IFollowService interface {
	Follow(ctx context.Context, viewerID, targetID uint64) (FollowOutcome, error)
	Unfollow(ctx context.Context, viewerID, targetID uint64) (FollowOutcome, error)
	RespondToFollowRequest(ctx context.Context, responderID, requestID uint64, approve bool) error
	ListFollowers(ctx context.Context, viewerID, userID uint64) ([]*models.FollowUserItem, error)
	ListFollowing(ctx context.Context, viewerID, userID uint64) ([]*models.FollowUserItem, error)
	ListPendingFollowRequests(ctx context.Context, userID uint64) ([]*types.FollowRequestItem, error)
}

type FollowService struct {
	Users      UserStore
	Follows    FollowStore
	Blocks     BlockStore
	Requests   RequestStore
	Visibility IVisibilityService
	Tx         TxRunner
	Emitter    Emitter
}

func NewFollowService(
	users *dao.Users, follows *dao.UserFollowDAO, blocks *dao.UserBlockDAO,
	requests *dao.RequestDAO, visibility *VisibilityService,
	tx *dao.TxManager, emitter Emitter,
) *FollowService {
	return &FollowService{
		Users:      users,
		Follows:    follows,
		Blocks:     blocks,
		Requests:   requests,
		Visibility: visibility,
		Tx:         tx,
		Emitter:    emitter,
	}
}

// Follow 关注。私密目标走待处理请求的开关语义：
// 无请求则创建，已有请求则撤回，连续两次调用互为逆操作
func (s *FollowService) Follow(ctx context.Context, viewerID, targetID uint64) (FollowOutcome, error) {
	if viewerID == targetID {
		return "", ErrSelfReference
	}

	target, err := s.Users.FindByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}

	// 拉黑对（任一方向）之间不暴露存在性
	blocked, err := s.Blocks.IsBlockedEither(ctx, viewerID, targetID)
	if err != nil {
		return "", err
	}
	if blocked {
		return "", ErrUserNotFound
	}

	if target.IsPrivate {
		pending, err := s.Requests.FindPending(ctx, viewerID, models.RequestTargetUser, targetID)
		if err != nil {
			return "", err
		}
		if pending != nil {
			if err := s.Requests.DeleteByID(ctx, pending.ID); err != nil {
				return "", err
			}
			return OutcomeRequestWithdrawn, nil
		}
		if _, err := s.Requests.CreatePending(ctx, viewerID, models.RequestTargetUser, targetID); err != nil {
			return "", err
		}
		s.Emitter.Emit(ctx, EventFollowRequested, map[string]any{
			"requester_id": viewerID,
			"target_id":    targetID,
		})
		return OutcomeRequestSent, nil
	}

	following, err := s.Follows.IsFollowing(ctx, viewerID, targetID)
	if err != nil {
		return "", err
	}
	if following {
		return OutcomeAlreadyFollowing, nil
	}

	if err := s.Follows.CreateEdge(ctx, viewerID, targetID); err != nil {
		return "", err
	}
	s.Emitter.Emit(ctx, EventFollowed, map[string]any{
		"follower_id": viewerID,
		"followee_id": targetID,
	})
	return OutcomeFollowed, nil
}

func (s *FollowService) Unfollow(ctx context.Context, viewerID, targetID uint64) (FollowOutcome, error) {
	if viewerID == targetID {
		return "", ErrSelfReference
	}

	existed, err := s.Follows.DeleteEdge(ctx, viewerID, targetID)
	if err != nil {
		return "", err
	}
	if !existed {
		return OutcomeNotFollowing, nil
	}
	s.Emitter.Emit(ctx, EventUnfollowed, map[string]any{
		"follower_id": viewerID,
		"followee_id": targetID,
	})
	return OutcomeUnfollowed, nil
}

// RespondToFollowRequest 响应关注请求。查询条件限定 state=pending，
// 终态请求天然查不到，二次响应返回 404
func (s *FollowService) RespondToFollowRequest(ctx context.Context, responderID, requestID uint64, approve bool) error {
	req, err := s.Requests.FindPendingByID(ctx, requestID, models.RequestTargetUser, responderID)
	if err != nil {
		return err
	}
	if req == nil {
		return ErrNotFound
	}

	now := time.Now()
	if !approve {
		return s.Requests.MarkResponded(ctx, req.ID, models.RequestStateRejected, now)
	}

	err = s.Tx.Transaction(ctx, func(ctx context.Context) error {
		if err := s.Requests.MarkResponded(ctx, req.ID, models.RequestStateApproved, now); err != nil {
			return err
		}
		return s.Follows.CreateEdge(ctx, req.UserID, responderID)
	})
	if err != nil {
		return err
	}

	s.Emitter.Emit(ctx, EventFollowApproved, map[string]any{
		"follower_id": req.UserID,
		"followee_id": responderID,
	})
	return nil
}

func (s *FollowService) ListFollowers(ctx context.Context, viewerID, userID uint64) ([]*models.FollowUserItem, error) {
	if err := s.ensureListVisible(ctx, viewerID, userID); err != nil {
		return nil, err
	}
	excluded, err := s.Blocks.GetRelatedIDs(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	ids, err := s.Follows.GetFollowerIDs(ctx, userID, excluded)
	if err != nil {
		return nil, err
	}
	return s.buildFollowItems(ctx, viewerID, ids)
}

func (s *FollowService) ListFollowing(ctx context.Context, viewerID, userID uint64) ([]*models.FollowUserItem, error) {
	if err := s.ensureListVisible(ctx, viewerID, userID); err != nil {
		return nil, err
	}
	excluded, err := s.Blocks.GetRelatedIDs(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	ids, err := s.Follows.GetFollowingIDs(ctx, userID, excluded)
	if err != nil {
		return nil, err
	}
	return s.buildFollowItems(ctx, viewerID, ids)
}

// ListPendingFollowRequests 我收到的待处理关注请求
func (s *FollowService) ListPendingFollowRequests(ctx context.Context, userID uint64) ([]*types.FollowRequestItem, error) {
	reqs, err := s.Requests.ListPendingForTarget(ctx, models.RequestTargetUser, userID)
	if err != nil {
		return nil, err
	}

	requesterIDs := make([]uint64, 0, len(reqs))
	for _, r := range reqs {
		requesterIDs = append(requesterIDs, r.UserID)
	}
	users, err := s.Users.FindByIDs(ctx, requesterIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint64]*models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	items := make([]*types.FollowRequestItem, 0, len(reqs))
	for _, r := range reqs {
		u, ok := byID[r.UserID]
		if !ok {
			continue
		}
		items = append(items, &types.FollowRequestItem{
			RequestID:   r.ID,
			UserID:      u.ID,
			Name:        u.Name,
			Username:    u.Username,
			RequestedAt: r.RequestedAt,
		})
	}
	return items, nil
}

// 私密账号未关注时，关注/粉丝列表不可见
func (s *FollowService) ensureListVisible(ctx context.Context, viewerID, userID uint64) error {
	verdict, err := s.Visibility.CanViewProfile(ctx, viewerID, userID)
	if err != nil {
		return err
	}
	switch verdict {
	case VerdictDenied:
		return ErrUserNotFound
	case VerdictAllowedPartial:
		return ErrUnauthorized
	}
	return nil
}

func (s *FollowService) buildFollowItems(ctx context.Context, viewerID uint64, ids []uint64) ([]*models.FollowUserItem, error) {
	users, err := s.Users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	followingSet, err := toSet(s.Follows.FilterFollowing(ctx, viewerID, ids))
	if err != nil {
		return nil, err
	}
	requestedSet, err := toSet(s.Requests.FilterRequested(ctx, viewerID, models.RequestTargetUser, ids))
	if err != nil {
		return nil, err
	}

	items := make([]*models.FollowUserItem, 0, len(users))
	for _, u := range users {
		items = append(items, &models.FollowUserItem{
			ID:          u.ID,
			Name:        u.Name,
			Username:    u.Username,
			IsPrivate:   u.IsPrivate,
			IsFollowing: followingSet[u.ID],
			IsRequested: requestedSet[u.ID],
		})
	}
	return items, nil
}

func toSet(ids []uint64, err error) (map[uint64]bool, error) {
	if err != nil {
		return nil, err
	}
	set := make(map[uint64]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}
