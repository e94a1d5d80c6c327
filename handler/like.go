package handler

import (
	"Prism/config"
	"Prism/middleware"
	"Prism/pkg/context"
	"Prism/pkg/response"
	"Prism/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Like struct {
	Config      *config.Config
	LikeService service.ILikeService
}

func (h *Like) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(h.Config.Jwt.Secret))
	g := r.Group("/v1/likes")
	g.POST("/:target_type/:target_id", authorize, context.Wrap(h.Like))
	g.DELETE("/:target_type/:target_id", authorize, context.Wrap(h.Unlike))
	g.GET("/:target_type/:target_id/count", authorize, context.Wrap(h.Count))
}

// Like 点赞帖子或动态，幂等
func (h *Like) Like(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}
	targetID, err := parseIDParam(c, "target_id")
	if err != nil {
		return err
	}

	if err := h.LikeService.Like(c.Request.Context(), userID, c.Param("target_type"), targetID); err != nil {
		return err
	}
	response.Success(c, gin.H{"liked": true})
	return nil
}

func (h *Like) Unlike(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}
	targetID, err := parseIDParam(c, "target_id")
	if err != nil {
		return err
	}

	if err := h.LikeService.Unlike(c.Request.Context(), userID, c.Param("target_type"), targetID); err != nil {
		return err
	}
	response.Success(c, gin.H{"liked": false})
	return nil
}

func (h *Like) Count(c *gin.Context) error {
	targetID, err := parseIDParam(c, "target_id")
	if err != nil {
		return err
	}

	count, err := h.LikeService.Count(c.Request.Context(), c.Param("target_type"), targetID)
	if err != nil {
		return err
	}
	response.Success(c, gin.H{"count": count})
	return nil
}
