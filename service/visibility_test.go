package service

import (
	"Prism/models"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newVisibilityFixture(users ...*models.User) (*VisibilityService, *fakeFollows, *fakeBlocks, *fakeStatuses, *fakeMembers, *fakeGroups) {
	follows := newFakeFollows()
	blocks := newFakeBlocks()
	statuses := newFakeStatuses()
	members := newFakeMembers()
	groups := newFakeGroups()
	svc := &VisibilityService{
		Users:    newFakeUsers(users...),
		Follows:  follows,
		Blocks:   blocks,
		Statuses: statuses,
		Members:  members,
		Groups:   groups,
	}
	return svc, follows, blocks, statuses, members, groups
}

func TestCanViewContentSelf(t *testing.T) {
	svc, _, blocks, _, _, _ := newVisibilityFixture()
	// 本人短路在拉黑检查之前，即使自己拉黑了自己也放行
	blocks.edges[edge{1, 1}] = true

	verdict, err := svc.CanViewContent(context.Background(), 1, 1, models.PostPrivacyPrivate)
	require.NoError(t, err)
	assert.Equal(t, VerdictAllowed, verdict)
}

func TestCanViewContentBlockBeatsPrivacy(t *testing.T) {
	owner := &models.User{ID: 2, IsPrivate: false}
	svc, follows, blocks, _, _, _ := newVisibilityFixture(owner)
	follows.edges[edge{1, 2}] = true
	blocks.edges[edge{2, 1}] = true

	verdict, err := svc.CanViewContent(context.Background(), 1, 2, models.PostPrivacyPublic)
	require.NoError(t, err)
	assert.Equal(t, VerdictDenied, verdict, "被拉黑后即使公开内容也不可见")
}

func TestCanViewContentPublicOwnerPublicSubject(t *testing.T) {
	owner := &models.User{ID: 2, IsPrivate: false}
	svc, _, _, _, _, _ := newVisibilityFixture(owner)

	verdict, err := svc.CanViewContent(context.Background(), 1, 2, models.PostPrivacyPublic)
	require.NoError(t, err)
	assert.Equal(t, VerdictAllowed, verdict)
}

func TestCanViewContentPrivateOwnerNeedsFollow(t *testing.T) {
	owner := &models.User{ID: 2, IsPrivate: true}
	svc, follows, _, _, _, _ := newVisibilityFixture(owner)

	verdict, err := svc.CanViewContent(context.Background(), 1, 2, models.PostPrivacyPublic)
	require.NoError(t, err)
	assert.Equal(t, VerdictDenied, verdict)

	follows.edges[edge{1, 2}] = true
	verdict, err = svc.CanViewContent(context.Background(), 1, 2, models.PostPrivacyPublic)
	require.NoError(t, err)
	assert.Equal(t, VerdictAllowed, verdict)
}

func TestCanViewContentPrivateSubjectOfPublicOwner(t *testing.T) {
	owner := &models.User{ID: 2, IsPrivate: false}
	svc, follows, _, _, _, _ := newVisibilityFixture(owner)

	verdict, err := svc.CanViewContent(context.Background(), 1, 2, models.PostPrivacyPrivate)
	require.NoError(t, err)
	assert.Equal(t, VerdictDenied, verdict, "公开账号的私密内容仍要求关注")

	follows.edges[edge{1, 2}] = true
	verdict, err = svc.CanViewContent(context.Background(), 1, 2, models.PostPrivacyPrivate)
	require.NoError(t, err)
	assert.Equal(t, VerdictAllowed, verdict)
}

func TestCanViewContentOwnerGone(t *testing.T) {
	svc, _, _, _, _, _ := newVisibilityFixture()

	verdict, err := svc.CanViewContent(context.Background(), 1, 99, models.PostPrivacyPublic)
	require.NoError(t, err)
	assert.Equal(t, VerdictDenied, verdict)
}

func TestCanViewProfilePartialForPrivateUnfollowed(t *testing.T) {
	owner := &models.User{ID: 2, IsPrivate: true}
	svc, follows, _, _, _, _ := newVisibilityFixture(owner)

	verdict, err := svc.CanViewProfile(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, VerdictAllowedPartial, verdict)

	follows.edges[edge{1, 2}] = true
	verdict, err = svc.CanViewProfile(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, VerdictAllowed, verdict)
}

func TestCanViewStatusExpiredBeforePrivacy(t *testing.T) {
	owner := &models.User{ID: 2, IsPrivate: false}
	svc, _, _, _, _, _ := newVisibilityFixture(owner)
	now := time.Now()

	expired := &models.Status{ID: 10, UserID: 2, Privacy: models.StatusPrivacyPublic, ExpirationDate: now.Add(-time.Minute)}
	verdict, err := svc.CanViewStatus(context.Background(), 2, expired, now)
	require.NoError(t, err)
	assert.Equal(t, VerdictDenied, verdict, "过期动态对所有者也按不可见裁决")

	active := &models.Status{ID: 11, UserID: 2, Privacy: models.StatusPrivacyPublic, ExpirationDate: now.Add(time.Hour)}
	verdict, err = svc.CanViewStatus(context.Background(), 1, active, now)
	require.NoError(t, err)
	assert.Equal(t, VerdictAllowed, verdict)
}

func TestCanViewPostGroupPost(t *testing.T) {
	author := &models.User{ID: 2}
	svc, _, _, _, members, groups := newVisibilityFixture(author)
	gid := uint64(7)
	groups.groups[gid] = &models.Group{ID: gid, OwnerID: 9, Privacy: models.GroupPrivacyPrivate}
	post := &models.Post{ID: 100, UserID: 2, GroupID: &gid, Privacy: models.PostPrivacyPublic}

	verdict, err := svc.CanViewPost(context.Background(), 3, post)
	require.NoError(t, err)
	assert.Equal(t, VerdictDenied, verdict, "私密群的帖子对非成员不可见")

	require.NoError(t, members.AddMember(context.Background(), gid, 3, models.GroupRoleMember))
	verdict, err = svc.CanViewPost(context.Background(), 3, post)
	require.NoError(t, err)
	assert.Equal(t, VerdictAllowed, verdict)

	// 作者即使退群也能看到自己的帖子
	verdict, err = svc.CanViewPost(context.Background(), 2, post)
	require.NoError(t, err)
	assert.Equal(t, VerdictAllowed, verdict)
}

func TestCanViewPostGroupGone(t *testing.T) {
	svc, _, _, _, _, _ := newVisibilityFixture()
	gid := uint64(404)
	post := &models.Post{ID: 100, UserID: 2, GroupID: &gid}

	verdict, err := svc.CanViewPost(context.Background(), 3, post)
	require.NoError(t, err)
	assert.Equal(t, VerdictDenied, verdict)
}

func TestHasVisibleStatus(t *testing.T) {
	owner := &models.User{ID: 2, IsPrivate: false}
	svc, follows, blocks, statuses, _, _ := newVisibilityFixture(owner)
	now := time.Now()

	ok, err := svc.HasVisibleStatus(context.Background(), 1, 2, now)
	require.NoError(t, err)
	assert.False(t, ok, "无活跃动态时指示灯熄灭")

	// 仅有一条私密的活跃动态
	statuses.statuses[10] = &models.Status{ID: 10, UserID: 2, Privacy: models.StatusPrivacyPrivate, ExpirationDate: now.Add(time.Hour)}

	ok, err = svc.HasVisibleStatus(context.Background(), 2, 2, now)
	require.NoError(t, err)
	assert.True(t, ok, "本人总能看到自己的指示灯")

	ok, err = svc.HasVisibleStatus(context.Background(), 1, 2, now)
	require.NoError(t, err)
	assert.False(t, ok, "陌生人看不到仅私密动态的指示灯")

	follows.edges[edge{1, 2}] = true
	ok, err = svc.HasVisibleStatus(context.Background(), 1, 2, now)
	require.NoError(t, err)
	assert.True(t, ok, "关注者能看到")

	delete(follows.edges, edge{1, 2})
	statuses.statuses[11] = &models.Status{ID: 11, UserID: 2, Privacy: models.StatusPrivacyPublic, ExpirationDate: now.Add(time.Hour)}
	ok, err = svc.HasVisibleStatus(context.Background(), 1, 2, now)
	require.NoError(t, err)
	assert.True(t, ok, "公开账号的公开活跃动态对陌生人可见")

	blocks.edges[edge{1, 2}] = true
	ok, err = svc.HasVisibleStatus(context.Background(), 1, 2, now)
	require.NoError(t, err)
	assert.False(t, ok, "拉黑对之间指示灯熄灭")
}
