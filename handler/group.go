package handler

import (
	"Prism/config"
	"Prism/middleware"
	"Prism/models"
	"Prism/pkg/context"
	"Prism/pkg/response"
	"Prism/service"
	"Prism/types"
	"net/http"

	"github.com/gin-gonic/gin"
)

type GroupHandler struct {
	Config       *config.Config
	GroupService service.IGroupService
	MediaService service.IMediaService
}

func (h *GroupHandler) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(h.Config.Jwt.Secret))
	g := r.Group("/v1/groups")
	g.POST("", authorize, context.Wrap(h.Create))
	g.GET("/joined", authorize, context.Wrap(h.ListJoined))
	g.GET("/owned", authorize, context.Wrap(h.ListOwned))
	g.GET("/explore", authorize, context.Wrap(h.Explore))
	g.GET("/:group_id", authorize, context.Wrap(h.Show))
	g.PATCH("/:group_id", authorize, context.Wrap(h.Update))
	g.DELETE("/:group_id", authorize, context.Wrap(h.Delete))
	g.POST("/:group_id/avatar", authorize, context.Wrap(h.SetAvatar))
}

// Create 创建群，创建者自动成为 owner 成员
func (h *GroupHandler) Create(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}

	var req types.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, err.Error())
	}

	group, err := h.GroupService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		return err
	}
	response.Success(c, group)
	return nil
}

func (h *GroupHandler) Show(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}
	gid, err := parseIDParam(c, "group_id")
	if err != nil {
		return err
	}

	item, err := h.GroupService.Show(c.Request.Context(), userID, gid)
	if err != nil {
		return err
	}
	response.Success(c, item)
	return nil
}

// Update 群主/管理员可改名称、简介、隐私
func (h *GroupHandler) Update(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}
	gid, err := parseIDParam(c, "group_id")
	if err != nil {
		return err
	}

	var req types.UpdateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, err.Error())
	}

	if err := h.GroupService.Update(c.Request.Context(), userID, gid, &req); err != nil {
		return err
	}
	response.Success(c, gin.H{"updated": true})
	return nil
}

// Delete 仅群主可解散，级联删除群内全部内容
func (h *GroupHandler) Delete(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}
	gid, err := parseIDParam(c, "group_id")
	if err != nil {
		return err
	}

	if err := h.GroupService.Delete(c.Request.Context(), userID, gid); err != nil {
		return err
	}
	response.Success(c, gin.H{"deleted": true})
	return nil
}

func (h *GroupHandler) ListJoined(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}

	items, err := h.GroupService.ListJoined(c.Request.Context(), userID)
	if err != nil {
		return err
	}
	response.Success(c, gin.H{"groups": items})
	return nil
}

func (h *GroupHandler) ListOwned(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}

	items, err := h.GroupService.ListOwned(c.Request.Context(), userID)
	if err != nil {
		return err
	}
	response.Success(c, gin.H{"groups": items})
	return nil
}

// Explore 群发现页
func (h *GroupHandler) Explore(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}
	limit, offset := pageParams(c)

	items, total, err := h.GroupService.Explore(c.Request.Context(), userID, limit, offset)
	if err != nil {
		return err
	}
	response.Success(c, gin.H{"groups": items, "total": total})
	return nil
}

func (h *GroupHandler) SetAvatar(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}
	gid, err := parseIDParam(c, "group_id")
	if err != nil {
		return err
	}

	header, err := c.FormFile("file")
	if err != nil {
		return response.NewError(http.StatusBadRequest, "缺少 file")
	}

	key, err := h.MediaService.SetAvatar(c.Request.Context(), userID, models.MediaOwnerGroup, gid, header)
	if err != nil {
		return err
	}
	response.Success(c, gin.H{"avatar": key})
	return nil
}
