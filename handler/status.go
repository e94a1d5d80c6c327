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

type Status struct {
	Config        *config.Config
	StatusService service.IStatusService
}

func (h *Status) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(h.Config.Jwt.Secret))
	g := r.Group("/v1/statuses")
	g.POST("", authorize, context.Wrap(h.Create))
	g.GET("/archive", authorize, context.Wrap(h.ListArchived))
	g.GET("/ring", authorize, context.Wrap(h.StoryRing))
	g.GET("/:status_id", authorize, context.Wrap(h.Show))
	g.DELETE("/:status_id", authorize, context.Wrap(h.Delete))
	g.GET("/:status_id/viewers", authorize, context.Wrap(h.Viewers))

	r.GET("/v1/users/:user_id/statuses", authorize, context.Wrap(h.ListActive))

	hl := r.Group("/v1/highlights")
	hl.POST("", authorize, context.Wrap(h.CreateHighlight))
	hl.DELETE("/:highlight_id", authorize, context.Wrap(h.DeleteHighlight))
	r.GET("/v1/users/:user_id/highlights", authorize, context.Wrap(h.ListHighlights))
}

// Create 发动态，24 小时后过期进归档
func (h *Status) Create(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}

	var req types.CreateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, err.Error())
	}

	status, err := h.StatusService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		return err
	}
	response.Success(c, status)
	return nil
}

// Show 查看动态，非本人会记一次浏览
func (h *Status) Show(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}
	statusID, err := parseIDParam(c, "status_id")
	if err != nil {
		return err
	}

	item, err := h.StatusService.Show(c.Request.Context(), userID, statusID)
	if err != nil {
		return err
	}
	response.Success(c, item)
	return nil
}

func (h *Status) ListActive(c *gin.Context) error {
	viewerID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}
	userID, err := parseIDParam(c, "user_id")
	if err != nil {
		return err
	}

	items, err := h.StatusService.ListActive(c.Request.Context(), viewerID, userID)
	if err != nil {
		return err
	}
	response.Success(c, gin.H{"statuses": items})
	return nil
}

// ListArchived 我的归档，过期动态只有本人能看
func (h *Status) ListArchived(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}

	items, err := h.StatusService.ListArchived(c.Request.Context(), userID)
	if err != nil {
		return err
	}
	response.Success(c, gin.H{"statuses": items})
	return nil
}

// StoryRing 首页故事环
func (h *Status) StoryRing(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}

	items, err := h.StatusService.StoryRing(c.Request.Context(), userID)
	if err != nil {
		return err
	}
	response.Success(c, gin.H{"users": items})
	return nil
}

// Viewers 浏览者列表，仅动态所有者可见
func (h *Status) Viewers(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}
	statusID, err := parseIDParam(c, "status_id")
	if err != nil {
		return err
	}

	items, err := h.StatusService.Viewers(c.Request.Context(), userID, statusID)
	if err != nil {
		return err
	}
	response.Success(c, gin.H{"viewers": items})
	return nil
}

func (h *Status) Delete(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}
	statusID, err := parseIDParam(c, "status_id")
	if err != nil {
		return err
	}

	if err := h.StatusService.Delete(c.Request.Context(), userID, statusID); err != nil {
		return err
	}
	response.Success(c, gin.H{"deleted": true})
	return nil
}

func (h *Status) CreateHighlight(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}

	var req types.CreateHighlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, err.Error())
	}

	highlight, err := h.StatusService.CreateHighlight(c.Request.Context(), userID, &req)
	if err != nil {
		return err
	}
	response.Success(c, highlight)
	return nil
}

func (h *Status) ListHighlights(c *gin.Context) error {
	viewerID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}
	userID, err := parseIDParam(c, "user_id")
	if err != nil {
		return err
	}

	items, err := h.StatusService.ListHighlights(c.Request.Context(), viewerID, userID)
	if err != nil {
		return err
	}
	response.Success(c, gin.H{"highlights": items})
	return nil
}

func (h *Status) DeleteHighlight(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}
	highlightID, err := parseIDParam(c, "highlight_id")
	if err != nil {
		return err
	}

	if err := h.StatusService.DeleteHighlight(c.Request.Context(), userID, highlightID); err != nil {
		return err
	}
	response.Success(c, gin.H{"deleted": true})
	return nil
}
