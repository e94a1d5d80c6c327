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

type Block struct {
	Config       *config.Config
	BlockService service.IBlockService
}

func (b *Block) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(b.Config.Jwt.Secret))
	users := r.Group("/v1/users")
	users.POST("/:user_id/block", authorize, context.Wrap(b.BlockUser))
	users.DELETE("/:user_id/block", authorize, context.Wrap(b.UnblockUser))

	r.GET("/v1/blocks", authorize, context.Wrap(b.ListBlocked))
}

// BlockUser 拉黑，同事务清掉双向关注和双向待处理请求
func (b *Block) BlockUser(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}
	targetID, err := parseIDParam(c, "user_id")
	if err != nil {
		return err
	}

	if err := b.BlockService.Block(c.Request.Context(), userID, targetID); err != nil {
		return err
	}
	response.Success(c, gin.H{"blocked": true})
	return nil
}

// UnblockUser 解除拉黑，不恢复关注关系
func (b *Block) UnblockUser(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}
	targetID, err := parseIDParam(c, "user_id")
	if err != nil {
		return err
	}

	if err := b.BlockService.Unblock(c.Request.Context(), userID, targetID); err != nil {
		return err
	}
	response.Success(c, gin.H{"blocked": false})
	return nil
}

func (b *Block) ListBlocked(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}

	items, err := b.BlockService.ListBlocked(c.Request.Context(), userID)
	if err != nil {
		return err
	}
	response.Success(c, gin.H{"blocked": items})
	return nil
}
