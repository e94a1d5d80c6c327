package service

import (
	"Prism/dao"
	"Prism/models"
	"Prism/types"
	"context"
	"time"
)

// JoinOutcome 入群/退群操作的结果信号，语义同 FollowOutcome
type JoinOutcome string

const (
	JoinOutcomeJoined           JoinOutcome = "joined"
	JoinOutcomeAlreadyMember    JoinOutcome = "already_member"
	JoinOutcomeRequestSent      JoinOutcome = "request_sent"
	JoinOutcomeRequestWithdrawn JoinOutcome = "request_withdrawn"
	JoinOutcomeLeft             JoinOutcome = "left"
	JoinOutcomeNotMember        JoinOutcome = "not_member"
)

var _ IGroupMemberService = (*GroupMemberService)(nil)

type IGroupMemberService interface {
	Join(ctx context.Context, userID, gid uint64) (JoinOutcome, error)
	Leave(ctx context.Context, userID, gid uint64) (JoinOutcome, error)
	RespondToJoinRequest(ctx context.Context, responderID, gid, requestID uint64, approve bool) error
	ChangeRole(ctx context.Context, actorID, gid, targetUserID uint64, newRole string) error
	KickMember(ctx context.Context, actorID, gid, targetUserID uint64) error
	ListMembers(ctx context.Context, viewerID, gid uint64) ([]*models.GroupMemberItem, error)
	ListJoinRequests(ctx context.Context, actorID, gid uint64) ([]*types.JoinRequestItem, error)
	ListAllMyJoinRequests(ctx context.Context, actorID uint64) ([]*types.JoinRequestItem, error)
}

type GroupMemberService struct {
	Groups   GroupStore
	Members  MemberStore
	Requests RequestStore
	Users    UserStore
	Follows  FollowStore
	Tx       TxRunner
	Emitter  Emitter
}

func NewGroupMemberService(
	groups *dao.GroupDAO, members *dao.GroupMemberDAO, requests *dao.RequestDAO,
	users *dao.Users, follows *dao.UserFollowDAO,
	tx *dao.TxManager, emitter Emitter,
) *GroupMemberService {
	return &GroupMemberService{
		Groups:   groups,
		Members:  members,
		Requests: requests,
		Users:    users,
		Follows:  follows,
		Tx:       tx,
		Emitter:  emitter,
	}
}

// Join 加群。私密群复用关注私密用户的请求开关语义
func (s *GroupMemberService) Join(ctx context.Context, userID, gid uint64) (JoinOutcome, error) {
	group, err := s.Groups.FindByID(ctx, gid)
	if err != nil {
		return "", err
	}
	if group == nil {
		return "", ErrGroupNotFound
	}

	if group.OwnerID == userID {
		return JoinOutcomeAlreadyMember, nil
	}
	member, err := s.Members.IsMember(ctx, gid, userID)
	if err != nil {
		return "", err
	}
	if member {
		return JoinOutcomeAlreadyMember, nil
	}

	if group.Privacy == models.GroupPrivacyPrivate {
		pending, err := s.Requests.FindPending(ctx, userID, models.RequestTargetGroup, gid)
		if err != nil {
			return "", err
		}
		if pending != nil {
			if err := s.Requests.DeleteByID(ctx, pending.ID); err != nil {
				return "", err
			}
			return JoinOutcomeRequestWithdrawn, nil
		}
		if _, err := s.Requests.CreatePending(ctx, userID, models.RequestTargetGroup, gid); err != nil {
			return "", err
		}
		s.Emitter.Emit(ctx, EventJoinRequested, map[string]any{
			"requester_id": userID,
			"group_id":     gid,
		})
		return JoinOutcomeRequestSent, nil
	}

	if err := s.Members.AddMember(ctx, gid, userID, models.GroupRoleMember); err != nil {
		return "", err
	}
	return JoinOutcomeJoined, nil
}

// Leave 退群。群主必须先转让群组
func (s *GroupMemberService) Leave(ctx context.Context, userID, gid uint64) (JoinOutcome, error) {
	group, err := s.Groups.FindByID(ctx, gid)
	if err != nil {
		return "", err
	}
	if group == nil {
		return "", ErrGroupNotFound
	}
	if group.OwnerID == userID {
		return "", ErrOwnerCannotLeave
	}

	existed, err := s.Members.RemoveMember(ctx, gid, userID)
	if err != nil {
		return "", err
	}
	if !existed {
		return JoinOutcomeNotMember, nil
	}
	return JoinOutcomeLeft, nil
}

// RespondToJoinRequest 群主/管理员响应入群请求，
// pending 过滤让终态请求二次响应返回 404
func (s *GroupMemberService) RespondToJoinRequest(ctx context.Context, responderID, gid, requestID uint64, approve bool) error {
	group, err := s.Groups.FindByID(ctx, gid)
	if err != nil {
		return err
	}
	if group == nil {
		return ErrGroupNotFound
	}

	leader, err := s.Members.IsLeader(ctx, gid, responderID)
	if err != nil {
		return err
	}
	if !leader {
		return ErrUnauthorized
	}

	req, err := s.Requests.FindPendingByID(ctx, requestID, models.RequestTargetGroup, gid)
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
		return s.Members.AddMember(ctx, gid, req.UserID, models.GroupRoleMember)
	})
	if err != nil {
		return err
	}

	s.Emitter.Emit(ctx, EventJoinApproved, map[string]any{
		"user_id":  req.UserID,
		"group_id": gid,
	})
	return nil
}

// ChangeRole 仅群主可调，群主自身的角色不可经此变更
func (s *GroupMemberService) ChangeRole(ctx context.Context, actorID, gid, targetUserID uint64, newRole string) error {
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
	if targetUserID == group.OwnerID {
		return ErrInvalidTarget
	}
	if newRole != models.GroupRoleAdmin && newRole != models.GroupRoleMember {
		return ErrInvalidTarget
	}

	member, err := s.Members.FindMember(ctx, gid, targetUserID)
	if err != nil {
		return err
	}
	if member == nil {
		return ErrNotMember
	}
	if member.Role == newRole {
		return nil
	}
	return s.Members.UpdateRole(ctx, gid, targetUserID, newRole)
}

// KickMember 群主/管理员踢人；不能踢群主，管理员不能踢管理员
func (s *GroupMemberService) KickMember(ctx context.Context, actorID, gid, targetUserID uint64) error {
	group, err := s.Groups.FindByID(ctx, gid)
	if err != nil {
		return err
	}
	if group == nil {
		return ErrGroupNotFound
	}
	if targetUserID == group.OwnerID {
		return ErrInvalidTarget
	}
	if actorID == targetUserID {
		return ErrSelfReference
	}

	actor, err := s.Members.FindMember(ctx, gid, actorID)
	if err != nil {
		return err
	}
	if actor == nil || actor.Role == models.GroupRoleMember {
		return ErrUnauthorized
	}

	target, err := s.Members.FindMember(ctx, gid, targetUserID)
	if err != nil {
		return err
	}
	if target == nil {
		return ErrNotMember
	}
	if actor.Role == models.GroupRoleAdmin && target.Role == models.GroupRoleAdmin {
		return ErrUnauthorized
	}

	_, err = s.Members.RemoveMember(ctx, gid, targetUserID)
	return err
}

// ListMembers 成员列表。私密群仅成员可见，公开群放开
func (s *GroupMemberService) ListMembers(ctx context.Context, viewerID, gid uint64) ([]*models.GroupMemberItem, error) {
	group, err := s.Groups.FindByID(ctx, gid)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, ErrGroupNotFound
	}

	if group.Privacy == models.GroupPrivacyPrivate && group.OwnerID != viewerID {
		member, err := s.Members.IsMember(ctx, gid, viewerID)
		if err != nil {
			return nil, err
		}
		if !member {
			return nil, ErrUnauthorized
		}
	}

	items, err := s.Members.GetMembers(ctx, gid)
	if err != nil {
		return nil, err
	}

	ids := make([]uint64, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.UserID)
	}
	followingSet, err := toSet(s.Follows.FilterFollowing(ctx, viewerID, ids))
	if err != nil {
		return nil, err
	}
	requestedSet, err := toSet(s.Requests.FilterRequested(ctx, viewerID, models.RequestTargetUser, ids))
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		it.IsFollowing = followingSet[it.UserID]
		it.IsRequested = requestedSet[it.UserID]
	}
	return items, nil
}

// ListJoinRequests 单个群的待处理入群请求，群主/管理员可见
func (s *GroupMemberService) ListJoinRequests(ctx context.Context, actorID, gid uint64) ([]*types.JoinRequestItem, error) {
	group, err := s.Groups.FindByID(ctx, gid)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, ErrGroupNotFound
	}

	leader, err := s.Members.IsLeader(ctx, gid, actorID)
	if err != nil {
		return nil, err
	}
	if !leader {
		return nil, ErrUnauthorized
	}

	reqs, err := s.Requests.ListPendingForTarget(ctx, models.RequestTargetGroup, gid)
	if err != nil {
		return nil, err
	}
	return s.buildRequestItems(ctx, reqs)
}

// ListAllMyJoinRequests 我管理的所有群的待处理入群请求
func (s *GroupMemberService) ListAllMyJoinRequests(ctx context.Context, actorID uint64) ([]*types.JoinRequestItem, error) {
	gids, err := s.Members.GetLeaderGroupIDs(ctx, actorID)
	if err != nil {
		return nil, err
	}
	reqs, err := s.Requests.ListPendingForTargets(ctx, models.RequestTargetGroup, gids)
	if err != nil {
		return nil, err
	}
	return s.buildRequestItems(ctx, reqs)
}

func (s *GroupMemberService) buildRequestItems(ctx context.Context, reqs []*models.Request) ([]*types.JoinRequestItem, error) {
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

	items := make([]*types.JoinRequestItem, 0, len(reqs))
	for _, r := range reqs {
		u, ok := byID[r.UserID]
		if !ok {
			continue
		}
		items = append(items, &types.JoinRequestItem{
			RequestID:   r.ID,
			GroupID:     r.TargetID,
			UserID:      u.ID,
			Name:        u.Name,
			Username:    u.Username,
			RequestedAt: r.RequestedAt,
		})
	}
	return items, nil
}
