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

type Post struct {
	Config      *config.Config
	PostService service.IPostService
}

func (h *Post) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(h.Config.Jwt.Secret))
	g := r.Group("/v1/posts")
	g.POST("", authorize, context.Wrap(h.Create))
	g.GET("/saved", authorize, context.Wrap(h.ListSaved))
	g.GET("/:post_id", authorize, context.Wrap(h.Show))
	g.DELETE("/:post_id", authorize, context.Wrap(h.Delete))
	g.POST("/:post_id/save", authorize, context.Wrap(h.Save))
	g.DELETE("/:post_id/save", authorize, context.Wrap(h.Unsave))

	r.GET("/v1/users/:user_id/posts", authorize, context.Wrap(h.ListByUser))
	r.GET("/v1/groups/:group_id/posts", authorize, context.Wrap(h.ListByGroup))
}

func (h *Post) Create(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}

	var req types.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, err.Error())
	}

	post, err := h.PostService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		return err
	}
	response.Success(c, post)
	return nil
}

func (h *Post) Show(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}
	postID, err := parseIDParam(c, "post_id")
	if err != nil {
		return err
	}

	item, err := h.PostService.Show(c.Request.Context(), userID, postID)
	if err != nil {
		return err
	}
	response.Success(c, item)
	return nil
}

func (h *Post) ListByUser(c *gin.Context) error {
	viewerID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}
	userID, err := parseIDParam(c, "user_id")
	if err != nil {
		return err
	}
	limit, offset := pageParams(c)

	items, err := h.PostService.ListByUser(c.Request.Context(), viewerID, userID, limit, offset)
	if err != nil {
		return err
	}
	response.Success(c, gin.H{"posts": items})
	return nil
}

func (h *Post) ListByGroup(c *gin.Context) error {
	viewerID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}
	gid, err := parseIDParam(c, "group_id")
	if err != nil {
		return err
	}
	limit, offset := pageParams(c)

	items, err := h.PostService.ListByGroup(c.Request.Context(), viewerID, gid, limit, offset)
	if err != nil {
		return err
	}
	response.Success(c, gin.H{"posts": items})
	return nil
}

func (h *Post) Delete(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}
	postID, err := parseIDParam(c, "post_id")
	if err != nil {
		return err
	}

	if err := h.PostService.Delete(c.Request.Context(), userID, postID); err != nil {
		return err
	}
	response.Success(c, gin.H{"deleted": true})
	return nil
}

func (h *Post) Save(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}
	postID, err := parseIDParam(c, "post_id")
	if err != nil {
		return err
	}

	if err := h.PostService.Save(c.Request.Context(), userID, postID); err != nil {
		return err
	}
	response.Success(c, gin.H{"saved": true})
	return nil
}

func (h *Post) Unsave(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}
	postID, err := parseIDParam(c, "post_id")
	if err != nil {
		return err
	}

	if err := h.PostService.Unsave(c.Request.Context(), userID, postID); err != nil {
		return err
	}
	response.Success(c, gin.H{"saved": false})
	return nil
}

func (h *Post) ListSaved(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}

	items, err := h.PostService.ListSaved(c.Request.Context(), userID)
	if err != nil {
		return err
	}
	response.Success(c, gin.H{"posts": items})
	return nil
}
