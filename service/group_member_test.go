package service

import (
	"Prism/models"
	"Prism/pkg/response"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMemberFixture(group *models.Group, users ...*models.User) (*GroupMemberService, *fakeMembers, *fakeRequests) {
	members := newFakeMembers()
	requests := newFakeRequests()
	svc := &GroupMemberService{
		Groups:   newFakeGroups(group),
		Members:  members,
		Requests: requests,
		Users:    newFakeUsers(users...),
		Follows:  newFakeFollows(),
		Tx:       fakeTx{},
		Emitter:  NopEmitter{},
	}
	_ = members.AddMember(context.Background(), group.ID, group.OwnerID, models.GroupRoleOwner)
	return svc, members, requests
}

func TestJoinPublicGroup(t *testing.T) {
	svc, members, _ := newMemberFixture(&models.Group{ID: 1, OwnerID: 9, Privacy: models.GroupPrivacyPublic})
	ctx := context.Background()

	outcome, err := svc.Join(ctx, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, JoinOutcomeJoined, outcome)
	ok, _ := members.IsMember(ctx, 1, 2)
	assert.True(t, ok)

	outcome, err = svc.Join(ctx, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, JoinOutcomeAlreadyMember, outcome)

	outcome, err = svc.Join(ctx, 9, 1)
	require.NoError(t, err)
	assert.Equal(t, JoinOutcomeAlreadyMember, outcome, "群主视同成员")
}

func TestJoinPrivateGroupToggle(t *testing.T) {
	svc, members, requests := newMemberFixture(&models.Group{ID: 1, OwnerID: 9, Privacy: models.GroupPrivacyPrivate})
	ctx := context.Background()

	outcome, err := svc.Join(ctx, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, JoinOutcomeRequestSent, outcome)
	ok, _ := members.IsMember(ctx, 1, 2)
	assert.False(t, ok, "私密群不直接入群")

	outcome, err = svc.Join(ctx, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, JoinOutcomeRequestWithdrawn, outcome)
	pending, err := requests.FindPending(ctx, 2, models.RequestTargetGroup, 1)
	require.NoError(t, err)
	assert.Nil(t, pending)

	outcome, err = svc.Join(ctx, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, JoinOutcomeRequestSent, outcome)
}

func TestJoinMissingGroup(t *testing.T) {
	svc, _, _ := newMemberFixture(&models.Group{ID: 1, OwnerID: 9, Privacy: models.GroupPrivacyPublic})

	_, err := svc.Join(context.Background(), 2, 404)
	assert.ErrorIs(t, err, ErrGroupNotFound)
}

func TestLeave(t *testing.T) {
	svc, members, _ := newMemberFixture(&models.Group{ID: 1, OwnerID: 9, Privacy: models.GroupPrivacyPublic})
	ctx := context.Background()
	require.NoError(t, members.AddMember(ctx, 1, 2, models.GroupRoleMember))

	outcome, err := svc.Leave(ctx, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, JoinOutcomeLeft, outcome)

	outcome, err = svc.Leave(ctx, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, JoinOutcomeNotMember, outcome)

	_, err = svc.Leave(ctx, 9, 1)
	assert.ErrorIs(t, err, ErrOwnerCannotLeave, "群主必须先转让")
	var bizErr *response.BizError
	require.ErrorAs(t, err, &bizErr)
	assert.Equal(t, 409, bizErr.Code, "群主退群按冲突处理")
}

func TestRespondToJoinRequest(t *testing.T) {
	svc, members, requests := newMemberFixture(
		&models.Group{ID: 1, OwnerID: 9, Privacy: models.GroupPrivacyPrivate},
		&models.User{ID: 2, Name: "b", Username: "b"},
	)
	ctx := context.Background()

	_, err := svc.Join(ctx, 2, 1)
	require.NoError(t, err)
	pending, _ := requests.FindPending(ctx, 2, models.RequestTargetGroup, 1)
	require.NotNil(t, pending)

	// 普通成员无权响应
	require.NoError(t, members.AddMember(ctx, 1, 3, models.GroupRoleMember))
	err = svc.RespondToJoinRequest(ctx, 3, 1, pending.ID, true)
	assert.ErrorIs(t, err, ErrUnauthorized)

	require.NoError(t, svc.RespondToJoinRequest(ctx, 9, 1, pending.ID, true))
	ok, _ := members.IsMember(ctx, 1, 2)
	assert.True(t, ok)

	// 终态请求二次响应是 404
	err = svc.RespondToJoinRequest(ctx, 9, 1, pending.ID, false)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestChangeRole(t *testing.T) {
	svc, members, _ := newMemberFixture(&models.Group{ID: 1, OwnerID: 9, Privacy: models.GroupPrivacyPublic})
	ctx := context.Background()
	require.NoError(t, members.AddMember(ctx, 1, 2, models.GroupRoleMember))
	require.NoError(t, members.AddMember(ctx, 1, 3, models.GroupRoleAdmin))

	// 管理员也无权调整角色，只有群主可以
	err := svc.ChangeRole(ctx, 3, 1, 2, models.GroupRoleAdmin)
	assert.ErrorIs(t, err, ErrUnauthorized)

	require.NoError(t, svc.ChangeRole(ctx, 9, 1, 2, models.GroupRoleAdmin))
	m, _ := members.FindMember(ctx, 1, 2)
	assert.Equal(t, models.GroupRoleAdmin, m.Role)

	// 群主自身的角色不可经此变更
	err = svc.ChangeRole(ctx, 9, 1, 9, models.GroupRoleMember)
	assert.ErrorIs(t, err, ErrInvalidTarget)

	// owner 不是可授予的角色
	err = svc.ChangeRole(ctx, 9, 1, 2, models.GroupRoleOwner)
	assert.ErrorIs(t, err, ErrInvalidTarget)

	err = svc.ChangeRole(ctx, 9, 1, 5, models.GroupRoleAdmin)
	assert.ErrorIs(t, err, ErrNotMember)
}

func TestKickMember(t *testing.T) {
	svc, members, _ := newMemberFixture(&models.Group{ID: 1, OwnerID: 9, Privacy: models.GroupPrivacyPublic})
	ctx := context.Background()
	require.NoError(t, members.AddMember(ctx, 1, 2, models.GroupRoleMember))
	require.NoError(t, members.AddMember(ctx, 1, 3, models.GroupRoleAdmin))
	require.NoError(t, members.AddMember(ctx, 1, 4, models.GroupRoleAdmin))

	// 普通成员不能踢人
	assert.ErrorIs(t, svc.KickMember(ctx, 2, 1, 3), ErrUnauthorized)
	// 管理员不能踢管理员
	assert.ErrorIs(t, svc.KickMember(ctx, 3, 1, 4), ErrUnauthorized)
	// 没人能踢群主
	assert.ErrorIs(t, svc.KickMember(ctx, 3, 1, 9), ErrInvalidTarget)
	assert.ErrorIs(t, svc.KickMember(ctx, 3, 1, 3), ErrSelfReference)

	require.NoError(t, svc.KickMember(ctx, 3, 1, 2))
	ok, _ := members.IsMember(ctx, 1, 2)
	assert.False(t, ok)

	require.NoError(t, svc.KickMember(ctx, 9, 1, 4), "群主可以踢管理员")
}

func TestListMembersPrivateGroup(t *testing.T) {
	svc, members, _ := newMemberFixture(&models.Group{ID: 1, OwnerID: 9, Privacy: models.GroupPrivacyPrivate})
	ctx := context.Background()
	require.NoError(t, members.AddMember(ctx, 1, 2, models.GroupRoleMember))

	_, err := svc.ListMembers(ctx, 5, 1)
	assert.ErrorIs(t, err, ErrUnauthorized, "私密群成员列表仅成员可见")

	items, err := svc.ListMembers(ctx, 2, 1)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestListJoinRequests(t *testing.T) {
	svc, members, _ := newMemberFixture(
		&models.Group{ID: 1, OwnerID: 9, Privacy: models.GroupPrivacyPrivate},
		&models.User{ID: 2, Name: "b", Username: "b"},
		&models.User{ID: 5, Name: "e", Username: "e"},
	)
	ctx := context.Background()
	require.NoError(t, members.AddMember(ctx, 1, 3, models.GroupRoleAdmin))

	_, err := svc.Join(ctx, 2, 1)
	require.NoError(t, err)
	_, err = svc.Join(ctx, 5, 1)
	require.NoError(t, err)

	_, err = svc.ListJoinRequests(ctx, 2, 1)
	assert.ErrorIs(t, err, ErrUnauthorized)

	items, err := svc.ListJoinRequests(ctx, 3, 1)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, uint64(1), items[0].GroupID)

	mine, err := svc.ListAllMyJoinRequests(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, mine, 2)
}
