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

type Media struct {
	Config       *config.Config
	MediaService service.IMediaService
}

func (h *Media) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(h.Config.Jwt.Secret))
	r.POST("/v1/media", authorize, context.Wrap(h.Upload))
}

// Upload 上传媒体文件，返回对象键，发帖/发动态时引用
func (h *Media) Upload(c *gin.Context) error {
	if _, err := context.GetUserID(c); err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}

	header, err := c.FormFile("file")
	if err != nil {
		return response.NewError(http.StatusBadRequest, "缺少 file")
	}

	key, mediaType, err := h.MediaService.Upload(c.Request.Context(), header)
	if err != nil {
		return err
	}
	response.Success(c, gin.H{"path": key, "type": mediaType})
	return nil
}
