package rocketmq

import (
	"Prism/config"
	"Prism/pkg/log"
	"context"

	"github.com/apache/rocketmq-client-go/v2"
	"github.com/apache/rocketmq-client-go/v2/primitive"
	"github.com/apache/rocketmq-client-go/v2/producer"
	"github.com/apache/rocketmq-client-go/v2/rlog"
	"go.uber.org/zap"
)

func init() {
	rlog.SetLogLevel("error")
}

func InitProducer(cfg *config.RocketMQConfig) rocketmq.Producer {
	p, err := rocketmq.NewProducer(
		producer.WithNameServer(cfg.NameServer),
		producer.WithGroupName(cfg.Producer.Group),
		producer.WithRetry(cfg.Producer.Retry),
	)
	if err != nil {
		log.L.Fatal("init producer error", zap.Error(err))
	}
	if err = p.Start(); err != nil {
		log.L.Fatal("start producer error", zap.Error(err))
	}
	log.L.Info("init producer success")

	return p
}

// SendMsg 发送同步消息
func SendMsg(p rocketmq.Producer, topic string, body []byte) error {
	msg := &primitive.Message{
		Topic: topic,
		Body:  body,
	}

	res, err := p.SendSync(context.Background(), msg)
	if err != nil {
		return err
	}
	log.L.Info("send message success", zap.Any("msg", res.MsgID))
	return nil
}
