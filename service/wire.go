//go:build wireinject
// +build wireinject

package service

import (
	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	NewVisibilityService,
	wire.Bind(new(IVisibilityService), new(*VisibilityService)),

	NewAuthService,
	wire.Bind(new(IAuthService), new(*AuthService)),

	NewUserService,
	wire.Bind(new(IUserService), new(*UserService)),

	NewFollowService,
	wire.Bind(new(IFollowService), new(*FollowService)),

	NewBlockService,
	wire.Bind(new(IBlockService), new(*BlockService)),

	NewGroupService,
	wire.Bind(new(IGroupService), new(*GroupService)),

	NewGroupMemberService,
	wire.Bind(new(IGroupMemberService), new(*GroupMemberService)),

	NewPostService,
	wire.Bind(new(IPostService), new(*PostService)),

	NewStatusService,
	wire.Bind(new(IStatusService), new(*StatusService)),

	NewCommentService,
	wire.Bind(new(ICommentService), new(*CommentService)),

	NewLikeService,
	wire.Bind(new(ILikeService), new(*LikeService)),

	NewMediaService,
	wire.Bind(new(IMediaService), new(*MediaService)),
	wire.Bind(new(ObjectRemover), new(*MediaService)),

	NewEmitter,
)
