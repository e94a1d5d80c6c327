package handler

import (
	"Prism/config"
	"Prism/middleware"
	"Prism/pkg/context"
	"Prism/pkg/response"
	"Prism/service"
	"Prism/types"
	"net/http"

	"github.com/gin-gonic/gin"
)

type CommentsHandler struct {
	Config         *config.Config
	CommentService service.ICommentService
}

func (h *CommentsHandler) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(h.Config.Jwt.Secret))
	r.POST("/v1/posts/:post_id/comments", authorize, context.Wrap(h.Create))
	r.GET("/v1/posts/:post_id/comments", authorize, context.Wrap(h.List))
	r.DELETE("/v1/comments/:comment_id", authorize, context.Wrap(h.Delete))
}

// Create 评论自己可见的帖子
func (h *CommentsHandler) Create(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}
	postID, err := parseIDParam(c, "post_id")
	if err != nil {
		return err
	}

	var req types.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, err.Error())
	}

	comment, err := h.CommentService.Create(c.Request.Context(), userID, postID, &req)
	if err != nil {
		return err
	}
	response.Success(c, comment)
	return nil
}

func (h *CommentsHandler) List(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}
	postID, err := parseIDParam(c, "post_id")
	if err != nil {
		return err
	}
	limit, offset := pageParams(c)

	items, err := h.CommentService.ListByPost(c.Request.Context(), userID, postID, limit, offset)
	if err != nil {
		return err
	}
	response.Success(c, gin.H{"comments": items})
	return nil
}

// Delete 评论作者或帖子作者可删
func (h *CommentsHandler) Delete(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}
	commentID, err := parseIDParam(c, "comment_id")
	if err != nil {
		return err
	}

	if err := h.CommentService.Delete(c.Request.Context(), userID, commentID); err != nil {
		return err
	}
	response.Success(c, gin.H{"deleted": true})
	return nil
}
