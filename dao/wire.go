//go:build wireinject

package dao

import (
	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	NewUsers,
	NewUserFollowDAO,
	NewUserBlockDAO,
	NewRequestDAO,
	NewGroupDAO,
	NewGroupMemberDAO,
	NewPostDAO,
	NewStatusDAO,
	NewCommentDAO,
	NewLikeDAO,
	NewMediaDAO,
	NewHighlightDAO,
	NewSavedPostDAO,
	NewTxManager,
)
