package service

import (
	"Prism/dao"
	"Prism/models"
	"context"
	"errors"

	"gorm.io/gorm"
)

var _ IBlockService = (*BlockService)(nil)

type IBlockService interface {
	Block(ctx context.Context, viewerID, targetID uint64) error
	Unblock(ctx context.Context, viewerID, targetID uint64) error
	ListBlocked(ctx context.Context, viewerID uint64) ([]*models.FollowUserItem, error)
}

type BlockService struct {
	Users    UserStore
	Follows  FollowStore
	Blocks   BlockStore
	Requests RequestStore
	Tx       TxRunner
	Emitter  Emitter
}

func NewBlockService(
	users *dao.Users, follows *dao.UserFollowDAO, blocks *dao.UserBlockDAO,
	requests *dao.RequestDAO, tx *dao.TxManager, emitter Emitter,
) *BlockService {
	return &BlockService{
		Users:    users,
		Follows:  follows,
		Blocks:   blocks,
		Requests: requests,
		Tx:       tx,
		Emitter:  emitter,
	}
}

// Block 拉黑。拉黑优先于关注：同一事务内删除双向关注边、
// 双向待处理关注请求，再建块边。并发的 follow 要么在块边落库前
// 提交（边随即被删），要么在之后（可见性已被拉黑裁决拦下）
func (s *BlockService) Block(ctx context.Context, viewerID, targetID uint64) error {
	if viewerID == targetID {
		return ErrSelfReference
	}

	if _, err := s.Users.FindByID(ctx, targetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	blocked, err := s.Blocks.HasBlocked(ctx, viewerID, targetID)
	if err != nil {
		return err
	}
	if blocked {
		return ErrAlreadyBlocked
	}

	err = s.Tx.Transaction(ctx, func(ctx context.Context) error {
		if err := s.Follows.DeletePair(ctx, viewerID, targetID); err != nil {
			return err
		}
		if err := s.Requests.DeletePendingBetween(ctx, viewerID, targetID); err != nil {
			return err
		}
		return s.Blocks.CreateEdge(ctx, viewerID, targetID)
	})
	if err != nil {
		return err
	}

	s.Emitter.Emit(ctx, EventBlocked, map[string]any{
		"blocker_id": viewerID,
		"blocked_id": targetID,
	})
	return nil
}

// Unblock 解除拉黑。不恢复拉黑前的关注关系
func (s *BlockService) Unblock(ctx context.Context, viewerID, targetID uint64) error {
	if viewerID == targetID {
		return ErrSelfReference
	}

	existed, err := s.Blocks.DeleteEdge(ctx, viewerID, targetID)
	if err != nil {
		return err
	}
	if !existed {
		return ErrNotBlocked
	}
	return nil
}

func (s *BlockService) ListBlocked(ctx context.Context, viewerID uint64) ([]*models.FollowUserItem, error) {
	ids, err := s.Blocks.GetBlockedIDs(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	users, err := s.Users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	items := make([]*models.FollowUserItem, 0, len(users))
	for _, u := range users {
		items = append(items, &models.FollowUserItem{
			ID:        u.ID,
			Name:      u.Name,
			Username:  u.Username,
			IsPrivate: u.IsPrivate,
		})
	}
	return items, nil
}
