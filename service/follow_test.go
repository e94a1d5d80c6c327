package service

import (
	"Prism/models"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFollowFixture(users ...*models.User) (*FollowService, *fakeFollows, *fakeBlocks, *fakeRequests) {
	follows := newFakeFollows()
	blocks := newFakeBlocks()
	requests := newFakeRequests()
	userStore := newFakeUsers(users...)
	svc := &FollowService{
		Users:    userStore,
		Follows:  follows,
		Blocks:   blocks,
		Requests: requests,
		Visibility: &VisibilityService{
			Users:   userStore,
			Follows: follows,
			Blocks:  blocks,
		},
		Tx:      fakeTx{},
		Emitter: NopEmitter{},
	}
	return svc, follows, blocks, requests
}

func TestFollowPublicTarget(t *testing.T) {
	svc, follows, _, _ := newFollowFixture(&models.User{ID: 2, IsPrivate: false})
	ctx := context.Background()

	outcome, err := svc.Follow(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, OutcomeFollowed, outcome)
	assert.True(t, follows.edges[edge{1, 2}])

	outcome, err = svc.Follow(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, OutcomeAlreadyFollowing, outcome)
}

func TestFollowPrivateTargetToggle(t *testing.T) {
	svc, follows, _, requests := newFollowFixture(&models.User{ID: 2, IsPrivate: true})
	ctx := context.Background()

	// 创建 → 撤回 → 再创建，连续调用互为逆操作
	outcome, err := svc.Follow(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, OutcomeRequestSent, outcome)
	assert.False(t, follows.edges[edge{1, 2}], "私密目标不直接建边")

	outcome, err = svc.Follow(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, OutcomeRequestWithdrawn, outcome)
	pending, err := requests.FindPending(ctx, 1, models.RequestTargetUser, 2)
	require.NoError(t, err)
	assert.Nil(t, pending)

	outcome, err = svc.Follow(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, OutcomeRequestSent, outcome)
}

func TestFollowSelf(t *testing.T) {
	svc, _, _, _ := newFollowFixture(&models.User{ID: 1})

	_, err := svc.Follow(context.Background(), 1, 1)
	assert.ErrorIs(t, err, ErrSelfReference)
}

func TestFollowMissingOrBlockedTarget(t *testing.T) {
	svc, _, blocks, _ := newFollowFixture(&models.User{ID: 2})
	ctx := context.Background()

	_, err := svc.Follow(ctx, 1, 99)
	assert.ErrorIs(t, err, ErrUserNotFound)

	// 任一方向的拉黑都伪装成 404
	blocks.edges[edge{2, 1}] = true
	_, err = svc.Follow(ctx, 1, 2)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUnfollow(t *testing.T) {
	svc, follows, _, _ := newFollowFixture(&models.User{ID: 2})
	ctx := context.Background()
	follows.edges[edge{1, 2}] = true

	outcome, err := svc.Unfollow(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, OutcomeUnfollowed, outcome)

	outcome, err = svc.Unfollow(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, OutcomeNotFollowing, outcome)
}

func TestRespondToFollowRequestApprove(t *testing.T) {
	svc, follows, _, requests := newFollowFixture(
		&models.User{ID: 1, Name: "a", Username: "a"},
		&models.User{ID: 2, IsPrivate: true},
	)
	ctx := context.Background()

	_, err := svc.Follow(ctx, 1, 2)
	require.NoError(t, err)
	pending, err := requests.FindPending(ctx, 1, models.RequestTargetUser, 2)
	require.NoError(t, err)
	require.NotNil(t, pending)

	require.NoError(t, svc.RespondToFollowRequest(ctx, 2, pending.ID, true))
	assert.True(t, follows.edges[edge{1, 2}], "批准后建立请求者到响应者的关注边")

	// 请求已进入终态，二次响应查不到
	err = svc.RespondToFollowRequest(ctx, 2, pending.ID, false)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRespondToFollowRequestReject(t *testing.T) {
	svc, follows, _, requests := newFollowFixture(
		&models.User{ID: 1},
		&models.User{ID: 2, IsPrivate: true},
	)
	ctx := context.Background()

	_, err := svc.Follow(ctx, 1, 2)
	require.NoError(t, err)
	pending, _ := requests.FindPending(ctx, 1, models.RequestTargetUser, 2)
	require.NotNil(t, pending)

	require.NoError(t, svc.RespondToFollowRequest(ctx, 2, pending.ID, false))
	assert.False(t, follows.edges[edge{1, 2}])
	assert.Equal(t, models.RequestStateRejected, pending.State)
}

func TestRespondToFollowRequestWrongResponder(t *testing.T) {
	svc, _, _, requests := newFollowFixture(
		&models.User{ID: 1},
		&models.User{ID: 2, IsPrivate: true},
	)
	ctx := context.Background()

	_, err := svc.Follow(ctx, 1, 2)
	require.NoError(t, err)
	pending, _ := requests.FindPending(ctx, 1, models.RequestTargetUser, 2)
	require.NotNil(t, pending)

	// 只有请求的目标能响应，别人看到的是 404
	err = svc.RespondToFollowRequest(ctx, 3, pending.ID, true)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListFollowersVisibility(t *testing.T) {
	svc, follows, _, _ := newFollowFixture(
		&models.User{ID: 1, Name: "a", Username: "a"},
		&models.User{ID: 2, IsPrivate: true},
		&models.User{ID: 3, Name: "c", Username: "c"},
	)
	ctx := context.Background()
	follows.edges[edge{3, 2}] = true

	// 私密账号未关注，列表不可见
	_, err := svc.ListFollowers(ctx, 1, 2)
	assert.ErrorIs(t, err, ErrUnauthorized)

	follows.edges[edge{1, 2}] = true
	items, err := svc.ListFollowers(ctx, 1, 2)
	require.NoError(t, err)
	require.Len(t, items, 2)
}

func TestListPendingFollowRequests(t *testing.T) {
	svc, _, _, _ := newFollowFixture(
		&models.User{ID: 1, Name: "a", Username: "a"},
		&models.User{ID: 2, IsPrivate: true},
		&models.User{ID: 3, Name: "c", Username: "c"},
	)
	ctx := context.Background()

	_, err := svc.Follow(ctx, 1, 2)
	require.NoError(t, err)
	_, err = svc.Follow(ctx, 3, 2)
	require.NoError(t, err)

	items, err := svc.ListPendingFollowRequests(ctx, 2)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, uint64(1), items[0].UserID)
	assert.Equal(t, uint64(3), items[1].UserID)
}
