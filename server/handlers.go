package server

import (
	"Prism/handler"
)

type Handlers struct {
	Auth        *handler.Auth
	User        *handler.User
	Follow      *handler.Follow
	Block       *handler.Block
	Group       *handler.GroupHandler
	GroupMember *handler.GroupMemberHandler
	Post        *handler.Post
	Status      *handler.Status
	Comments    *handler.CommentsHandler
	Like        *handler.Like
	Media       *handler.Media
}
