package service

import (
	"Prism/dao"
	"Prism/models"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// Verdict 可见性裁决结果
type Verdict int

const (
	VerdictDenied Verdict = iota
	VerdictAllowed
	VerdictAllowedPartial
)

var _ IVisibilityService = (*VisibilityService)(nil)

// IVisibilityService 可见性裁决：给定浏览者和主体，判定能看什么。
// 所有入口只接收已认证的 viewerID，认证本身在中间件完成
type IVisibilityService interface {
	// CanViewProfile 主页级裁决，私密账号未关注时给部分视图
	CanViewProfile(ctx context.Context, viewerID, ownerID uint64) (Verdict, error)
	// CanViewContent 内容级裁决（帖子/动态），subjectPrivacy 为主体自身的隐私设置
	CanViewContent(ctx context.Context, viewerID, ownerID uint64, subjectPrivacy string) (Verdict, error)
	// CanViewStatus 动态裁决，过期过滤先于隐私过滤
	CanViewStatus(ctx context.Context, viewerID uint64, status *models.Status, now time.Time) (Verdict, error)
	// CanViewPost 帖子裁决，群帖按群可见性，普通帖按内容裁决
	CanViewPost(ctx context.Context, viewerID uint64, post *models.Post) (Verdict, error)
	// CanViewGroupContent 群内容：公开群或本群成员
	CanViewGroupContent(ctx context.Context, viewerID uint64, group *models.Group) (bool, error)
	// HasVisibleStatus 主页摘要里的"有动态"指示灯
	HasVisibleStatus(ctx context.Context, viewerID, ownerID uint64, now time.Time) (bool, error)
}

type VisibilityService struct {
	Users    UserStore
	Follows  FollowStore
	Blocks   BlockStore
	Statuses StatusStore
	Members  MemberStore
	Groups   GroupStore
}

func NewVisibilityService(
	users *dao.Users, follows *dao.UserFollowDAO, blocks *dao.UserBlockDAO,
	statuses *dao.StatusDAO, members *dao.GroupMemberDAO, groups *dao.GroupDAO,
) *VisibilityService {
	return &VisibilityService{
		Users:    users,
		Follows:  follows,
		Blocks:   blocks,
		Statuses: statuses,
		Members:  members,
		Groups:   groups,
	}
}

// CanViewContent 逐条短路，首个命中即返回：
// 1. 本人 → 放行
// 2. 任一方向拉黑 → 拒绝（拉黑绝对优先，无视隐私设置）
// 3. 主体公开且所有者公开 → 放行
// 4. 所有者私密或主体私密 → 已关注才放行
// 5. 兜底（公开所有者 + 公开主体）→ 放行
func (s *VisibilityService) CanViewContent(ctx context.Context, viewerID, ownerID uint64, subjectPrivacy string) (Verdict, error) {
	if viewerID == ownerID {
		return VerdictAllowed, nil
	}

	blocked, err := s.Blocks.IsBlockedEither(ctx, viewerID, ownerID)
	if err != nil {
		return VerdictDenied, err
	}
	if blocked {
		return VerdictDenied, nil
	}

	owner, err := s.Users.FindByID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return VerdictDenied, nil
		}
		return VerdictDenied, err
	}

	if subjectPrivacy == models.PostPrivacyPublic && !owner.IsPrivate {
		return VerdictAllowed, nil
	}

	if owner.IsPrivate || subjectPrivacy == models.PostPrivacyPrivate {
		following, err := s.Follows.IsFollowing(ctx, viewerID, ownerID)
		if err != nil {
			return VerdictDenied, err
		}
		if following {
			return VerdictAllowed, nil
		}
		return VerdictDenied, nil
	}

	return VerdictAllowed, nil
}

// CanViewProfile 只走前两条规则，之后私密账号未关注降级为部分视图
func (s *VisibilityService) CanViewProfile(ctx context.Context, viewerID, ownerID uint64) (Verdict, error) {
	if viewerID == ownerID {
		return VerdictAllowed, nil
	}

	blocked, err := s.Blocks.IsBlockedEither(ctx, viewerID, ownerID)
	if err != nil {
		return VerdictDenied, err
	}
	if blocked {
		return VerdictDenied, nil
	}

	owner, err := s.Users.FindByID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return VerdictDenied, nil
		}
		return VerdictDenied, err
	}

	if owner.IsPrivate {
		following, err := s.Follows.IsFollowing(ctx, viewerID, ownerID)
		if err != nil {
			return VerdictDenied, err
		}
		if !following {
			return VerdictAllowedPartial, nil
		}
	}

	return VerdictAllowed, nil
}

// CanViewStatus 过期动态对所有人不可见，所有者走独立的归档通道
func (s *VisibilityService) CanViewStatus(ctx context.Context, viewerID uint64, status *models.Status, now time.Time) (Verdict, error) {
	if !status.ExpirationDate.After(now) {
		return VerdictDenied, nil
	}
	return s.CanViewContent(ctx, viewerID, status.UserID, status.Privacy)
}

// CanViewPost 群帖对能看群内容的人可见，普通帖走内容裁决
func (s *VisibilityService) CanViewPost(ctx context.Context, viewerID uint64, post *models.Post) (Verdict, error) {
	if post.GroupID != nil {
		if viewerID == post.UserID {
			return VerdictAllowed, nil
		}
		group, err := s.Groups.FindByID(ctx, *post.GroupID)
		if err != nil {
			return VerdictDenied, err
		}
		if group == nil {
			return VerdictDenied, nil
		}
		ok, err := s.CanViewGroupContent(ctx, viewerID, group)
		if err != nil {
			return VerdictDenied, err
		}
		if !ok {
			return VerdictDenied, nil
		}
		return VerdictAllowed, nil
	}
	return s.CanViewContent(ctx, viewerID, post.UserID, post.Privacy)
}

func (s *VisibilityService) CanViewGroupContent(ctx context.Context, viewerID uint64, group *models.Group) (bool, error) {
	if group.Privacy == models.GroupPrivacyPublic {
		return true, nil
	}
	if group.OwnerID == viewerID {
		return true, nil
	}
	return s.Members.IsMember(ctx, group.ID, viewerID)
}

// HasVisibleStatus 为真当且仅当所有者有活跃动态，且
// 本人 / 已关注 / （所有者公开且存在活跃的公开动态）三者之一成立
func (s *VisibilityService) HasVisibleStatus(ctx context.Context, viewerID, ownerID uint64, now time.Time) (bool, error) {
	active, err := s.Statuses.HasActive(ctx, ownerID, now)
	if err != nil {
		return false, err
	}
	if !active {
		return false, nil
	}

	if viewerID == ownerID {
		return true, nil
	}

	blocked, err := s.Blocks.IsBlockedEither(ctx, viewerID, ownerID)
	if err != nil {
		return false, err
	}
	if blocked {
		return false, nil
	}

	following, err := s.Follows.IsFollowing(ctx, viewerID, ownerID)
	if err != nil {
		return false, err
	}
	if following {
		return true, nil
	}

	owner, err := s.Users.FindByID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	if owner.IsPrivate {
		return false, nil
	}
	return s.Statuses.HasActivePublic(ctx, ownerID, now)
}
