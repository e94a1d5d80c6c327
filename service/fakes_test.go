package service

import (
	"Prism/models"
	"context"
	"sort"
	"time"

	"gorm.io/gorm"
)

// 内存假实现，覆盖 store.go 的各接口，单测不碰数据库

type fakeUsers struct {
	users map[uint64]*models.User
}

func newFakeUsers(users ...*models.User) *fakeUsers {
	m := make(map[uint64]*models.User, len(users))
	for _, u := range users {
		m[u.ID] = u
	}
	return &fakeUsers{users: m}
}

func (f *fakeUsers) Create(ctx context.Context, user *models.User) error {
	if user.ID == 0 {
		user.ID = uint64(len(f.users) + 1)
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUsers) FindByID(ctx context.Context, id uint64) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (f *fakeUsers) FindByIDs(ctx context.Context, ids []uint64) ([]*models.User, error) {
	out := make([]*models.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUsers) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUsers) IsUsernameTaken(ctx context.Context, username string, excludeID uint64) (bool, error) {
	for _, u := range f.users {
		if u.Username == username && u.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUsers) IsEmailExist(ctx context.Context, email string) bool {
	_, err := f.FindByEmail(ctx, email)
	return err == nil
}

func (f *fakeUsers) IsExistByID(ctx context.Context, id uint64) (bool, error) {
	_, ok := f.users[id]
	return ok, nil
}

func (f *fakeUsers) UpdateByID(ctx context.Context, id uint64, data map[string]any) error {
	u, ok := f.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if v, ok := data["name"]; ok {
		u.Name = v.(string)
	}
	if v, ok := data["username"]; ok {
		u.Username = v.(string)
	}
	if v, ok := data["bio"]; ok {
		u.Bio = v.(string)
	}
	if v, ok := data["is_private"]; ok {
		u.IsPrivate = v.(bool)
	}
	if v, ok := data["password"]; ok {
		u.Password = v.(string)
	}
	return nil
}

func (f *fakeUsers) DeleteByID(ctx context.Context, id uint64) error {
	delete(f.users, id)
	return nil
}

type edge struct{ from, to uint64 }

type fakeFollows struct {
	edges map[edge]bool
}

func newFakeFollows() *fakeFollows {
	return &fakeFollows{edges: map[edge]bool{}}
}

func (f *fakeFollows) IsFollowing(ctx context.Context, followerID, followeeID uint64) (bool, error) {
	return f.edges[edge{followerID, followeeID}], nil
}

func (f *fakeFollows) CreateEdge(ctx context.Context, followerID, followeeID uint64) error {
	f.edges[edge{followerID, followeeID}] = true
	return nil
}

func (f *fakeFollows) DeleteEdge(ctx context.Context, followerID, followeeID uint64) (bool, error) {
	e := edge{followerID, followeeID}
	existed := f.edges[e]
	delete(f.edges, e)
	return existed, nil
}

func (f *fakeFollows) DeletePair(ctx context.Context, a, b uint64) error {
	delete(f.edges, edge{a, b})
	delete(f.edges, edge{b, a})
	return nil
}

func (f *fakeFollows) DeleteAllOf(ctx context.Context, userID uint64) error {
	for e := range f.edges {
		if e.from == userID || e.to == userID {
			delete(f.edges, e)
		}
	}
	return nil
}

func (f *fakeFollows) GetFollowerCount(ctx context.Context, userID uint64) (int64, error) {
	var n int64
	for e := range f.edges {
		if e.to == userID {
			n++
		}
	}
	return n, nil
}

func (f *fakeFollows) GetFollowingCount(ctx context.Context, userID uint64) (int64, error) {
	var n int64
	for e := range f.edges {
		if e.from == userID {
			n++
		}
	}
	return n, nil
}

func (f *fakeFollows) GetFollowerIDs(ctx context.Context, userID uint64, excluded []uint64) ([]uint64, error) {
	skip := map[uint64]bool{}
	for _, id := range excluded {
		skip[id] = true
	}
	var ids []uint64
	for e := range f.edges {
		if e.to == userID && !skip[e.from] {
			ids = append(ids, e.from)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (f *fakeFollows) GetFollowingIDs(ctx context.Context, userID uint64, excluded []uint64) ([]uint64, error) {
	skip := map[uint64]bool{}
	for _, id := range excluded {
		skip[id] = true
	}
	var ids []uint64
	for e := range f.edges {
		if e.from == userID && !skip[e.to] {
			ids = append(ids, e.to)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (f *fakeFollows) FilterFollowing(ctx context.Context, followerID uint64, candidateIDs []uint64) ([]uint64, error) {
	var ids []uint64
	for _, id := range candidateIDs {
		if f.edges[edge{followerID, id}] {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (f *fakeFollows) GetFollowingWithActiveStatus(ctx context.Context, userID uint64, now time.Time) ([]uint64, error) {
	return nil, nil
}

type fakeBlocks struct {
	edges map[edge]bool
}

func newFakeBlocks() *fakeBlocks {
	return &fakeBlocks{edges: map[edge]bool{}}
}

func (f *fakeBlocks) HasBlocked(ctx context.Context, blockerID, blockedID uint64) (bool, error) {
	return f.edges[edge{blockerID, blockedID}], nil
}

func (f *fakeBlocks) IsBlockedEither(ctx context.Context, a, b uint64) (bool, error) {
	return f.edges[edge{a, b}] || f.edges[edge{b, a}], nil
}

func (f *fakeBlocks) CreateEdge(ctx context.Context, blockerID, blockedID uint64) error {
	f.edges[edge{blockerID, blockedID}] = true
	return nil
}

func (f *fakeBlocks) DeleteEdge(ctx context.Context, blockerID, blockedID uint64) (bool, error) {
	e := edge{blockerID, blockedID}
	existed := f.edges[e]
	delete(f.edges, e)
	return existed, nil
}

func (f *fakeBlocks) DeleteAllOf(ctx context.Context, userID uint64) error {
	for e := range f.edges {
		if e.from == userID || e.to == userID {
			delete(f.edges, e)
		}
	}
	return nil
}

func (f *fakeBlocks) GetBlockedIDs(ctx context.Context, blockerID uint64) ([]uint64, error) {
	var ids []uint64
	for e := range f.edges {
		if e.from == blockerID {
			ids = append(ids, e.to)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (f *fakeBlocks) GetRelatedIDs(ctx context.Context, userID uint64) ([]uint64, error) {
	var ids []uint64
	for e := range f.edges {
		if e.from == userID {
			ids = append(ids, e.to)
		}
		if e.to == userID {
			ids = append(ids, e.from)
		}
	}
	return ids, nil
}

type fakeRequests struct {
	nextID uint64
	items  []*models.Request
}

func newFakeRequests() *fakeRequests {
	return &fakeRequests{}
}

func (f *fakeRequests) FindPending(ctx context.Context, requesterID uint64, targetType string, targetID uint64) (*models.Request, error) {
	for _, r := range f.items {
		if r.UserID == requesterID && r.TargetType == targetType && r.TargetID == targetID && r.State == models.RequestStatePending {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeRequests) IsRequested(ctx context.Context, requesterID uint64, targetType string, targetID uint64) (bool, error) {
	r, _ := f.FindPending(ctx, requesterID, targetType, targetID)
	return r != nil, nil
}

func (f *fakeRequests) CreatePending(ctx context.Context, requesterID uint64, targetType string, targetID uint64) (*models.Request, error) {
	f.nextID++
	flag := int8(1)
	r := &models.Request{
		ID:          f.nextID,
		UserID:      requesterID,
		TargetType:  targetType,
		TargetID:    targetID,
		State:       models.RequestStatePending,
		PendingFlag: &flag,
		RequestedAt: time.Now(),
	}
	f.items = append(f.items, r)
	return r, nil
}

func (f *fakeRequests) DeleteByID(ctx context.Context, id uint64) error {
	for i, r := range f.items {
		if r.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeRequests) FindPendingByID(ctx context.Context, id uint64, targetType string, targetID uint64) (*models.Request, error) {
	for _, r := range f.items {
		if r.ID == id && r.TargetType == targetType && r.TargetID == targetID && r.State == models.RequestStatePending {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeRequests) MarkResponded(ctx context.Context, id uint64, state string, at time.Time) error {
	for _, r := range f.items {
		if r.ID == id {
			r.State = state
			r.PendingFlag = nil
			r.RespondedAt = &at
		}
	}
	return nil
}

func (f *fakeRequests) ListPendingForTarget(ctx context.Context, targetType string, targetID uint64) ([]*models.Request, error) {
	var out []*models.Request
	for _, r := range f.items {
		if r.TargetType == targetType && r.TargetID == targetID && r.State == models.RequestStatePending {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRequests) ListPendingForTargets(ctx context.Context, targetType string, targetIDs []uint64) ([]*models.Request, error) {
	var out []*models.Request
	for _, id := range targetIDs {
		part, _ := f.ListPendingForTarget(ctx, targetType, id)
		out = append(out, part...)
	}
	return out, nil
}

func (f *fakeRequests) FilterRequested(ctx context.Context, userID uint64, targetType string, candidateIDs []uint64) ([]uint64, error) {
	var ids []uint64
	for _, id := range candidateIDs {
		if ok, _ := f.IsRequested(ctx, userID, targetType, id); ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (f *fakeRequests) DeletePendingBetween(ctx context.Context, a, b uint64) error {
	kept := f.items[:0]
	for _, r := range f.items {
		between := r.TargetType == models.RequestTargetUser && r.State == models.RequestStatePending &&
			((r.UserID == a && r.TargetID == b) || (r.UserID == b && r.TargetID == a))
		if !between {
			kept = append(kept, r)
		}
	}
	f.items = kept
	return nil
}

func (f *fakeRequests) DeleteAllOfTarget(ctx context.Context, targetType string, targetID uint64) error {
	kept := f.items[:0]
	for _, r := range f.items {
		if !(r.TargetType == targetType && r.TargetID == targetID) {
			kept = append(kept, r)
		}
	}
	f.items = kept
	return nil
}

func (f *fakeRequests) DeleteAllOfUser(ctx context.Context, userID uint64) error {
	kept := f.items[:0]
	for _, r := range f.items {
		own := r.UserID == userID || (r.TargetType == models.RequestTargetUser && r.TargetID == userID)
		if !own {
			kept = append(kept, r)
		}
	}
	f.items = kept
	return nil
}

type fakeGroups struct {
	nextID uint64
	groups map[uint64]*models.Group
}

func newFakeGroups(groups ...*models.Group) *fakeGroups {
	f := &fakeGroups{groups: map[uint64]*models.Group{}}
	for _, g := range groups {
		f.groups[g.ID] = g
		if g.ID > f.nextID {
			f.nextID = g.ID
		}
	}
	return f
}

func (f *fakeGroups) Create(ctx context.Context, group *models.Group) error {
	f.nextID++
	group.ID = f.nextID
	f.groups[group.ID] = group
	return nil
}

func (f *fakeGroups) FindByID(ctx context.Context, gid uint64) (*models.Group, error) {
	return f.groups[gid], nil
}

func (f *fakeGroups) UpdateByID(ctx context.Context, gid uint64, data map[string]any) error {
	g, ok := f.groups[gid]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if v, ok := data["name"]; ok {
		g.Name = v.(string)
	}
	if v, ok := data["bio"]; ok {
		g.Bio = v.(string)
	}
	if v, ok := data["privacy"]; ok {
		g.Privacy = v.(string)
	}
	return nil
}

func (f *fakeGroups) UpdateOwner(ctx context.Context, gid, newOwnerID uint64) error {
	if g, ok := f.groups[gid]; ok {
		g.OwnerID = newOwnerID
	}
	return nil
}

func (f *fakeGroups) DeleteByID(ctx context.Context, gid uint64) error {
	delete(f.groups, gid)
	return nil
}

func (f *fakeGroups) ListOwnedBy(ctx context.Context, ownerID uint64) ([]*models.Group, error) {
	var out []*models.Group
	for _, g := range f.groups {
		if g.OwnerID == ownerID {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeGroups) ListNotJoined(ctx context.Context, userID uint64, limit, offset int) ([]*models.Group, int64, error) {
	var out []*models.Group
	for _, g := range f.groups {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

type fakeMembers struct {
	seq     int
	members map[uint64]map[uint64]*models.GroupMember
	order   map[uint64]int
}

func newFakeMembers() *fakeMembers {
	return &fakeMembers{members: map[uint64]map[uint64]*models.GroupMember{}, order: map[uint64]int{}}
}

func (f *fakeMembers) IsMember(ctx context.Context, gid, uid uint64) (bool, error) {
	_, ok := f.members[gid][uid]
	return ok, nil
}

func (f *fakeMembers) IsLeader(ctx context.Context, gid, uid uint64) (bool, error) {
	m := f.members[gid][uid]
	if m == nil {
		return false, nil
	}
	return m.Role == models.GroupRoleOwner || m.Role == models.GroupRoleAdmin, nil
}

func (f *fakeMembers) FindMember(ctx context.Context, gid, uid uint64) (*models.GroupMember, error) {
	return f.members[gid][uid], nil
}

func (f *fakeMembers) AddMember(ctx context.Context, gid, uid uint64, role string) error {
	if f.members[gid] == nil {
		f.members[gid] = map[uint64]*models.GroupMember{}
	}
	f.seq++
	m := &models.GroupMember{ID: uint64(f.seq), GroupID: gid, UserID: uid, Role: role, CreatedAt: time.Now()}
	f.members[gid][uid] = m
	f.order[m.ID] = f.seq
	return nil
}

func (f *fakeMembers) RemoveMember(ctx context.Context, gid, uid uint64) (bool, error) {
	_, ok := f.members[gid][uid]
	delete(f.members[gid], uid)
	return ok, nil
}

func (f *fakeMembers) UpdateRole(ctx context.Context, gid, uid uint64, role string) error {
	if m := f.members[gid][uid]; m != nil {
		m.Role = role
	}
	return nil
}

func (f *fakeMembers) FindFirstAdmin(ctx context.Context, gid uint64) (*models.GroupMember, error) {
	var first *models.GroupMember
	for _, m := range f.members[gid] {
		if m.Role != models.GroupRoleAdmin {
			continue
		}
		if first == nil || f.order[m.ID] < f.order[first.ID] {
			first = m
		}
	}
	return first, nil
}

func (f *fakeMembers) CountMembers(ctx context.Context, gid uint64) (int64, error) {
	return int64(len(f.members[gid])), nil
}

func (f *fakeMembers) GetMembers(ctx context.Context, gid uint64) ([]*models.GroupMemberItem, error) {
	var out []*models.GroupMemberItem
	for _, m := range f.members[gid] {
		out = append(out, &models.GroupMemberItem{UserID: m.UserID, Role: m.Role})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

func (f *fakeMembers) GetUserGroupIDs(ctx context.Context, uid uint64) ([]uint64, error) {
	var ids []uint64
	for gid, ms := range f.members {
		if _, ok := ms[uid]; ok {
			ids = append(ids, gid)
		}
	}
	return ids, nil
}

func (f *fakeMembers) GetLeaderGroupIDs(ctx context.Context, uid uint64) ([]uint64, error) {
	var ids []uint64
	for gid, ms := range f.members {
		if m, ok := ms[uid]; ok && (m.Role == models.GroupRoleOwner || m.Role == models.GroupRoleAdmin) {
			ids = append(ids, gid)
		}
	}
	return ids, nil
}

func (f *fakeMembers) ListJoined(ctx context.Context, uid uint64, excludeOwned bool) ([]*models.GroupMember, error) {
	var out []*models.GroupMember
	for _, ms := range f.members {
		if m, ok := ms[uid]; ok {
			if excludeOwned && m.Role == models.GroupRoleOwner {
				continue
			}
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMembers) RemoveAllOf(ctx context.Context, uid uint64) error {
	for _, ms := range f.members {
		delete(ms, uid)
	}
	return nil
}

func (f *fakeMembers) RemoveAllOfGroup(ctx context.Context, gid uint64) error {
	delete(f.members, gid)
	return nil
}

type fakePosts struct {
	byUser  map[uint64][]uint64
	byGroup map[uint64][]uint64
	deleted []uint64
}

func newFakePosts() *fakePosts {
	return &fakePosts{byUser: map[uint64][]uint64{}, byGroup: map[uint64][]uint64{}}
}

func (f *fakePosts) FindByID(ctx context.Context, id uint64) (*models.Post, error) {
	return nil, nil
}

func (f *fakePosts) CountByUser(ctx context.Context, userID uint64) (int64, error) {
	return int64(len(f.byUser[userID])), nil
}

func (f *fakePosts) ListIDsByUser(ctx context.Context, userID uint64) ([]uint64, error) {
	return f.byUser[userID], nil
}

func (f *fakePosts) ListIDsByGroup(ctx context.Context, groupID uint64) ([]uint64, error) {
	return f.byGroup[groupID], nil
}

func (f *fakePosts) DeleteByIDs(ctx context.Context, ids []uint64) error {
	f.deleted = append(f.deleted, ids...)
	return nil
}

type fakeStatuses struct {
	statuses map[uint64]*models.Status
	deleted  []uint64
}

func newFakeStatuses(statuses ...*models.Status) *fakeStatuses {
	m := make(map[uint64]*models.Status, len(statuses))
	for _, st := range statuses {
		m[st.ID] = st
	}
	return &fakeStatuses{statuses: m}
}

func (f *fakeStatuses) FindByID(ctx context.Context, id uint64) (*models.Status, error) {
	return f.statuses[id], nil
}

func (f *fakeStatuses) HasActive(ctx context.Context, userID uint64, now time.Time) (bool, error) {
	for _, st := range f.statuses {
		if st.UserID == userID && st.ExpirationDate.After(now) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStatuses) HasActivePublic(ctx context.Context, userID uint64, now time.Time) (bool, error) {
	for _, st := range f.statuses {
		if st.UserID == userID && st.ExpirationDate.After(now) && st.Privacy == models.StatusPrivacyPublic {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStatuses) ListIDsByUser(ctx context.Context, userID uint64) ([]uint64, error) {
	var ids []uint64
	for id, st := range f.statuses {
		if st.UserID == userID {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (f *fakeStatuses) DeleteByIDs(ctx context.Context, ids []uint64) error {
	for _, id := range ids {
		delete(f.statuses, id)
	}
	f.deleted = append(f.deleted, ids...)
	return nil
}

type fakeComments struct {
	deletedUsers []uint64
	deletedPosts []uint64
}

func (f *fakeComments) DeleteByUser(ctx context.Context, userID uint64) error {
	f.deletedUsers = append(f.deletedUsers, userID)
	return nil
}

func (f *fakeComments) DeleteByPostIDs(ctx context.Context, postIDs []uint64) error {
	f.deletedPosts = append(f.deletedPosts, postIDs...)
	return nil
}

type fakeLikes struct {
	deletedUsers   []uint64
	deletedTargets map[string][]uint64
}

func newFakeLikes() *fakeLikes {
	return &fakeLikes{deletedTargets: map[string][]uint64{}}
}

func (f *fakeLikes) DeleteByUser(ctx context.Context, userID uint64) error {
	f.deletedUsers = append(f.deletedUsers, userID)
	return nil
}

func (f *fakeLikes) DeleteByTargets(ctx context.Context, targetType string, targetIDs []uint64) error {
	f.deletedTargets[targetType] = append(f.deletedTargets[targetType], targetIDs...)
	return nil
}

type fakeMedia struct {
	items   []*models.Media
	deleted []string
}

func (f *fakeMedia) FindByOwner(ctx context.Context, ownerType string, ownerID uint64) (*models.Media, error) {
	for _, m := range f.items {
		if m.OwnerType == ownerType && m.OwnerID == ownerID {
			return m, nil
		}
	}
	return nil, nil
}

func (f *fakeMedia) ListByOwners(ctx context.Context, ownerType string, ownerIDs []uint64) ([]*models.Media, error) {
	var out []*models.Media
	for _, m := range f.items {
		for _, id := range ownerIDs {
			if m.OwnerType == ownerType && m.OwnerID == id {
				out = append(out, m)
			}
		}
	}
	return out, nil
}

func (f *fakeMedia) DeleteByOwner(ctx context.Context, ownerType string, ownerID uint64) error {
	kept := f.items[:0]
	for _, m := range f.items {
		if m.OwnerType == ownerType && m.OwnerID == ownerID {
			f.deleted = append(f.deleted, m.Path)
			continue
		}
		kept = append(kept, m)
	}
	f.items = kept
	return nil
}

func (f *fakeMedia) DeleteByOwners(ctx context.Context, ownerType string, ownerIDs []uint64) error {
	for _, id := range ownerIDs {
		if err := f.DeleteByOwner(ctx, ownerType, id); err != nil {
			return err
		}
	}
	return nil
}

type fakeSaved struct {
	deletedUsers []uint64
	deletedPosts []uint64
}

func (f *fakeSaved) DeleteByUser(ctx context.Context, userID uint64) error {
	f.deletedUsers = append(f.deletedUsers, userID)
	return nil
}

func (f *fakeSaved) DeleteByPostIDs(ctx context.Context, postIDs []uint64) error {
	f.deletedPosts = append(f.deletedPosts, postIDs...)
	return nil
}

type fakeHighlights struct {
	detached     []uint64
	deletedUsers []uint64
}

func (f *fakeHighlights) DetachStatus(ctx context.Context, statusIDs []uint64) error {
	f.detached = append(f.detached, statusIDs...)
	return nil
}

func (f *fakeHighlights) DeleteAllOfUser(ctx context.Context, userID uint64) error {
	f.deletedUsers = append(f.deletedUsers, userID)
	return nil
}

// fakeTx 直接执行回调，不提供回滚语义
type fakeTx struct{}

func (fakeTx) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeRemover struct {
	keys []string
}

func (f *fakeRemover) RemoveObjects(ctx context.Context, keys []string) {
	f.keys = append(f.keys, keys...)
}
