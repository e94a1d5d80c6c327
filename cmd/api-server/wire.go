//go:build wireinject
// +build wireinject

package main

import (
	"Prism/config"
	"Prism/dao"
	"Prism/dao/cache"
	"Prism/handler"
	"Prism/pkg/client"
	"Prism/pkg/database"
	"Prism/pkg/oss"
	"Prism/pkg/rocketmq"
	"Prism/server"
	"Prism/service"

	"github.com/google/wire"
)

func InitServer(cfg *config.Config) (*server.AppProvider, error) {
	wire.Build(

		client.NewRedisClient,
		config.ProvideRocketMQConfig,
		rocketmq.InitProducer,
		oss.GetOssClient,
		server.NewGinEngine,
		cache.ProviderSet,
		wire.Struct(new(handler.Auth), "*"),
		wire.Struct(new(handler.User), "*"),
		wire.Struct(new(handler.Follow), "*"),
		wire.Struct(new(handler.Block), "*"),
		wire.Struct(new(handler.GroupHandler), "*"),
		wire.Struct(new(handler.GroupMemberHandler), "*"),
		wire.Struct(new(handler.Post), "*"),
		wire.Struct(new(handler.Status), "*"),
		wire.Struct(new(handler.CommentsHandler), "*"),
		wire.Struct(new(handler.Like), "*"),
		wire.Struct(new(handler.Media), "*"),

		wire.Struct(new(server.AppProvider), "*"),
		wire.Struct(new(server.Handlers), "*"),

		dao.ProviderSet,

		service.ProviderSet,
		database.NewDB,
	)
	return nil, nil
}
