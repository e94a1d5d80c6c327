package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// 动态浏览记录过期时间 - 48小时，和动态24小时生命周期留足余量
const statusViewExpireAt = 48 * time.Hour

type StatusViewStorage struct {
	redis *redis.Client
}

func NewStatusViewStorage(rds *redis.Client) *StatusViewStorage {
	return &StatusViewStorage{rds}
}

// MarkViewed 记录用户浏览过某条动态
// @params uid       浏览者ID
// @params statusId  动态ID
func (s *StatusViewStorage) MarkViewed(ctx context.Context, uid, statusId uint64) {
	pipe := s.redis.Pipeline()
	name := s.name(statusId)
	pipe.SAdd(ctx, name, uid)
	pipe.Expire(ctx, name, statusViewExpireAt)
	_, _ = pipe.Exec(ctx)
}

// IsViewed 判断用户是否浏览过某条动态
func (s *StatusViewStorage) IsViewed(ctx context.Context, uid, statusId uint64) bool {
	ok, err := s.redis.SIsMember(ctx, s.name(statusId), uid).Result()
	return err == nil && ok
}

// BatchViewed 批量判断一组动态是否已浏览
// @params uid        浏览者ID
// @params statusIds  动态ID列表
func (s *StatusViewStorage) BatchViewed(ctx context.Context, uid uint64, statusIds []uint64) map[uint64]bool {
	resMap := make(map[uint64]bool, len(statusIds))
	if len(statusIds) == 0 {
		return resMap
	}

	pipe := s.redis.Pipeline()
	for _, id := range statusIds {
		pipe.SIsMember(ctx, s.name(id), uid)
	}

	cmds, _ := pipe.Exec(ctx)
	for i, cmd := range cmds {
		if b, err := cmd.(*redis.BoolCmd).Result(); err == nil {
			resMap[statusIds[i]] = b
		}
	}
	return resMap
}

// ViewerIds 动态的浏览者ID列表
func (s *StatusViewStorage) ViewerIds(ctx context.Context, statusId uint64) []uint64 {
	uids := make([]uint64, 0)

	items, err := s.redis.SMembers(ctx, s.name(statusId)).Result()
	if err != nil {
		return uids
	}

	for _, item := range items {
		if uid, err := strconv.ParseUint(item, 10, 64); err == nil {
			uids = append(uids, uid)
		}
	}

	return uids
}

// Del 动态删除时清理浏览记录
func (s *StatusViewStorage) Del(ctx context.Context, statusIds ...uint64) {
	if len(statusIds) == 0 {
		return
	}
	keys := make([]string, 0, len(statusIds))
	for _, id := range statusIds {
		keys = append(keys, s.name(id))
	}
	s.redis.Del(ctx, keys...)
}

// 浏览记录缓存
// status:viewers:statusId
func (s *StatusViewStorage) name(statusId uint64) string {
	return fmt.Sprintf("status:viewers:%d", statusId)
}
