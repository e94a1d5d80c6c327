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

type User struct {
	Config       *config.Config
	UserService  service.IUserService
	MediaService service.IMediaService
}

func (h *User) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(h.Config.Jwt.Secret))
	g := r.Group("/v1/users")
	g.GET("/:user_id", authorize, context.Wrap(h.Show))
	g.PATCH("/me", authorize, context.Wrap(h.Update))
	g.DELETE("/me", authorize, context.Wrap(h.Destroy))
	g.POST("/me/avatar", authorize, context.Wrap(h.SetAvatar))
}

// Show 用户主页，私密账号未关注时 data.partial 为 true
func (h *User) Show(c *gin.Context) error {
	viewerID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}
	userID, err := parseIDParam(c, "user_id")
	if err != nil {
		return err
	}

	profile, err := h.UserService.Show(c.Request.Context(), viewerID, userID)
	if err != nil {
		return err
	}
	response.Success(c, profile)
	return nil
}

func (h *User) Update(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}

	var req types.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, err.Error())
	}

	if err := h.UserService.Update(c.Request.Context(), userID, &req); err != nil {
		return err
	}
	response.Success(c, gin.H{"updated": true})
	return nil
}

// Destroy 注销账号，一次性级联清理全部归属数据
func (h *User) Destroy(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}

	if err := h.UserService.Destroy(c.Request.Context(), userID); err != nil {
		return err
	}
	response.Success(c, gin.H{"deleted": true})
	return nil
}

func (h *User) SetAvatar(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}

	header, err := c.FormFile("file")
	if err != nil {
		return response.NewError(http.StatusBadRequest, "缺少 file")
	}

	key, err := h.MediaService.SetAvatar(c.Request.Context(), userID, models.MediaOwnerUser, userID, header)
	if err != nil {
		return err
	}
	response.Success(c, gin.H{"avatar": key})
	return nil
}
