package service

import (
	"Prism/pkg/log"
	pkgrocketmq "Prism/pkg/rocketmq"
	"context"
	"encoding/json"

	"github.com/apache/rocketmq-client-go/v2"
	"go.uber.org/zap"
)

// 语义事件，下游通知/推送消费
const (
	EventFollowRequested = "follow_requested"
	EventFollowed        = "followed"
	EventUnfollowed      = "unfollowed"
	EventFollowApproved  = "follow_approved"
	EventBlocked         = "blocked"
	EventJoinRequested   = "join_requested"
	EventJoinApproved    = "join_approved"
	EventUserDeleted     = "user_deleted"
)

const eventTopic = "app_events"

// Emitter 事件发布。发布是尽力而为的：
// 失败只记日志，绝不影响主操作结果
type Emitter interface {
	Emit(ctx context.Context, eventType string, data any)
}

type MQEmitter struct {
	Producer rocketmq.Producer
}

func NewEmitter(producer rocketmq.Producer) Emitter {
	return &MQEmitter{Producer: producer}
}

func (e *MQEmitter) Emit(ctx context.Context, eventType string, data any) {
	body, err := json.Marshal(map[string]any{
		"event_type": eventType,
		"data":       data,
	})
	if err != nil {
		log.L.Warn("事件序列化失败", zap.String("event", eventType), zap.Error(err))
		return
	}
	if err := pkgrocketmq.SendMsg(e.Producer, eventTopic, body); err != nil {
		log.L.Warn("事件发送失败", zap.String("event", eventType), zap.Error(err))
	}
}

// NopEmitter 未接入消息队列时的空实现
type NopEmitter struct{}

func (NopEmitter) Emit(ctx context.Context, eventType string, data any) {}
