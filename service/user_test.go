package service

import (
	"Prism/models"
	"Prism/types"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type userFixture struct {
	svc      *UserService
	users    *fakeUsers
	follows  *fakeFollows
	blocks   *fakeBlocks
	requests *fakeRequests
	groups   *fakeGroups
	members  *fakeMembers
	posts    *fakePosts
	statuses *fakeStatuses
	media    *fakeMedia
	remover  *fakeRemover
}

func newUserFixture(users ...*models.User) *userFixture {
	f := &userFixture{
		users:    newFakeUsers(users...),
		follows:  newFakeFollows(),
		blocks:   newFakeBlocks(),
		requests: newFakeRequests(),
		groups:   newFakeGroups(),
		members:  newFakeMembers(),
		posts:    newFakePosts(),
		statuses: newFakeStatuses(),
		media:    &fakeMedia{},
		remover:  &fakeRemover{},
	}
	comments := &fakeComments{}
	likes := newFakeLikes()
	saved := &fakeSaved{}
	highlights := &fakeHighlights{}

	groupSvc := &GroupService{
		Groups:   f.groups,
		Members:  f.members,
		Requests: f.requests,
		Posts:    f.posts,
		Comments: comments,
		Likes:    likes,
		Media:    f.media,
		Saved:    saved,
		Tx:       fakeTx{},
	}
	f.svc = &UserService{
		Users:      f.users,
		Follows:    f.follows,
		Blocks:     f.blocks,
		Requests:   f.requests,
		Posts:      f.posts,
		Statuses:   f.statuses,
		Comments:   comments,
		Likes:      likes,
		Media:      f.media,
		Saved:      saved,
		Highlights: highlights,
		Members:    f.members,
		Groups:     groupSvc,
		Visibility: &VisibilityService{
			Users:    f.users,
			Follows:  f.follows,
			Blocks:   f.blocks,
			Statuses: f.statuses,
			Members:  f.members,
			Groups:   f.groups,
		},
		Tx:      fakeTx{},
		Emitter: NopEmitter{},
		Storage: f.remover,
	}
	return f
}

func TestShowPartialProfile(t *testing.T) {
	f := newUserFixture(&models.User{
		ID: 2, Name: "b", Username: "b", Email: "b@example.com",
		Bio: "secret bio", IsPrivate: true,
	})
	ctx := context.Background()

	profile, err := f.svc.Show(ctx, 1, 2)
	require.NoError(t, err)
	assert.True(t, profile.Partial)
	assert.Empty(t, profile.Bio, "部分视图不下发简介")
	assert.Empty(t, profile.Email)
	assert.Equal(t, "b", profile.Username)

	f.follows.edges[edge{1, 2}] = true
	profile, err = f.svc.Show(ctx, 1, 2)
	require.NoError(t, err)
	assert.False(t, profile.Partial)
	assert.Equal(t, "secret bio", profile.Bio)
	assert.Empty(t, profile.Email, "邮箱只对本人可见")
	assert.True(t, profile.IsFollowing)
}

func TestShowSelfIncludesEmail(t *testing.T) {
	f := newUserFixture(&models.User{ID: 1, Username: "a", Email: "a@example.com", IsPrivate: true})

	profile, err := f.svc.Show(context.Background(), 1, 1)
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", profile.Email)
	assert.False(t, profile.Partial)
}

func TestShowBlockedPair(t *testing.T) {
	f := newUserFixture(&models.User{ID: 2, Username: "b"})
	f.blocks.edges[edge{2, 1}] = true

	_, err := f.svc.Show(context.Background(), 1, 2)
	assert.ErrorIs(t, err, ErrUserNotFound, "拉黑对之间互相 404")
}

func TestShowMissingUser(t *testing.T) {
	f := newUserFixture()

	_, err := f.svc.Show(context.Background(), 1, 99)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdateUsernameTaken(t *testing.T) {
	f := newUserFixture(
		&models.User{ID: 1, Username: "a"},
		&models.User{ID: 2, Username: "b"},
	)
	ctx := context.Background()

	name := "b"
	err := f.svc.Update(ctx, 1, &types.UpdateUserRequest{Username: &name})
	assert.ErrorIs(t, err, ErrUsernameTaken)

	// 自己改回自己的用户名不算占用
	own := "a"
	bio := "hello"
	require.NoError(t, f.svc.Update(ctx, 1, &types.UpdateUserRequest{Username: &own, Bio: &bio}))
	u, err := f.users.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "hello", u.Bio)
}

func TestDestroyTransfersGroupWithAdmin(t *testing.T) {
	f := newUserFixture(&models.User{ID: 1, Username: "a"})
	ctx := context.Background()

	g := &models.Group{Name: "g", Privacy: models.GroupPrivacyPublic, OwnerID: 1}
	require.NoError(t, f.groups.Create(ctx, g))
	require.NoError(t, f.members.AddMember(ctx, g.ID, 1, models.GroupRoleOwner))
	require.NoError(t, f.members.AddMember(ctx, g.ID, 2, models.GroupRoleAdmin))
	require.NoError(t, f.members.AddMember(ctx, g.ID, 3, models.GroupRoleAdmin))

	require.NoError(t, f.svc.Destroy(ctx, 1))

	got, err := f.groups.FindByID(ctx, g.ID)
	require.NoError(t, err)
	require.NotNil(t, got, "有管理员的群不删除")
	assert.Equal(t, uint64(2), got.OwnerID, "最早晋升的管理员接任群主")
	m, _ := f.members.FindMember(ctx, g.ID, 2)
	require.NotNil(t, m)
	assert.Equal(t, models.GroupRoleOwner, m.Role)
	ok, _ := f.members.IsMember(ctx, g.ID, 1)
	assert.False(t, ok)

	_, err = f.users.FindByID(ctx, 1)
	assert.Error(t, err, "用户行已删除")
}

func TestDestroyDeletesGroupWithoutAdmin(t *testing.T) {
	f := newUserFixture(&models.User{ID: 1, Username: "a"})
	ctx := context.Background()

	g := &models.Group{Name: "g", Privacy: models.GroupPrivacyPublic, OwnerID: 1}
	require.NoError(t, f.groups.Create(ctx, g))
	require.NoError(t, f.members.AddMember(ctx, g.ID, 1, models.GroupRoleOwner))
	require.NoError(t, f.members.AddMember(ctx, g.ID, 2, models.GroupRoleMember))
	f.posts.byGroup[g.ID] = []uint64{100}
	f.media.items = append(f.media.items,
		&models.Media{OwnerType: models.MediaOwnerGroup, OwnerID: g.ID, Path: "media/g.png"},
		&models.Media{OwnerType: models.MediaOwnerPost, OwnerID: 100, Path: "media/p.png"},
	)

	require.NoError(t, f.svc.Destroy(ctx, 1))

	got, err := f.groups.FindByID(ctx, g.ID)
	require.NoError(t, err)
	assert.Nil(t, got, "没有管理员可接任，整群删除")
	assert.Contains(t, f.posts.deleted, uint64(100))
	assert.Contains(t, f.remover.keys, "media/g.png")
	assert.Contains(t, f.remover.keys, "media/p.png")
}

func TestDestroyPurgesRelationsAndMedia(t *testing.T) {
	f := newUserFixture(
		&models.User{ID: 1, Username: "a"},
		&models.User{ID: 2, Username: "b"},
	)
	ctx := context.Background()

	f.follows.edges[edge{1, 2}] = true
	f.follows.edges[edge{2, 1}] = true
	f.blocks.edges[edge{1, 3}] = true
	_, err := f.requests.CreatePending(ctx, 1, models.RequestTargetUser, 5)
	require.NoError(t, err)
	f.media.items = append(f.media.items,
		&models.Media{OwnerType: models.MediaOwnerUser, OwnerID: 1, Path: "media/avatar.png"},
	)

	require.NoError(t, f.svc.Destroy(ctx, 1))

	assert.Empty(t, f.follows.edges)
	assert.Empty(t, f.blocks.edges)
	assert.Empty(t, f.requests.items)
	assert.Contains(t, f.remover.keys, "media/avatar.png")
}

func TestDestroyMissingUser(t *testing.T) {
	f := newUserFixture()

	assert.ErrorIs(t, f.svc.Destroy(context.Background(), 1), ErrUserNotFound)
}
