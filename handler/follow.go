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

type Follow struct {
	Config        *config.Config
	FollowService service.IFollowService
}

func (f *Follow) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(f.Config.Jwt.Secret))
	users := r.Group("/v1/users")
	users.POST("/:user_id/follow", authorize, context.Wrap(f.FollowUser))
	users.DELETE("/:user_id/follow", authorize, context.Wrap(f.UnfollowUser))
	users.GET("/:user_id/followers", authorize, context.Wrap(f.ListFollowers))
	users.GET("/:user_id/following", authorize, context.Wrap(f.ListFollowing))

	g := r.Group("/v1/follow-requests")
	g.GET("", authorize, context.Wrap(f.ListPendingRequests))
	g.POST("/:request_id", authorize, context.Wrap(f.RespondRequest))
}

// FollowUser 关注。对私密账号是请求开关：再点一次即撤回
func (f *Follow) FollowUser(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}
	targetID, err := parseIDParam(c, "user_id")
	if err != nil {
		return err
	}

	outcome, err := f.FollowService.Follow(c.Request.Context(), userID, targetID)
	if err != nil {
		return err
	}
	response.Success(c, gin.H{"outcome": outcome})
	return nil
}

func (f *Follow) UnfollowUser(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}
	targetID, err := parseIDParam(c, "user_id")
	if err != nil {
		return err
	}

	outcome, err := f.FollowService.Unfollow(c.Request.Context(), userID, targetID)
	if err != nil {
		return err
	}
	response.Success(c, gin.H{"outcome": outcome})
	return nil
}

func (f *Follow) ListFollowers(c *gin.Context) error {
	viewerID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}
	userID, err := parseIDParam(c, "user_id")
	if err != nil {
		return err
	}

	items, err := f.FollowService.ListFollowers(c.Request.Context(), viewerID, userID)
	if err != nil {
		return err
	}
	response.Success(c, gin.H{"followers": items})
	return nil
}

func (f *Follow) ListFollowing(c *gin.Context) error {
	viewerID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}
	userID, err := parseIDParam(c, "user_id")
	if err != nil {
		return err
	}

	items, err := f.FollowService.ListFollowing(c.Request.Context(), viewerID, userID)
	if err != nil {
		return err
	}
	response.Success(c, gin.H{"following": items})
	return nil
}

// ListPendingRequests 我收到的待处理关注请求
func (f *Follow) ListPendingRequests(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}

	items, err := f.FollowService.ListPendingFollowRequests(c.Request.Context(), userID)
	if err != nil {
		return err
	}
	response.Success(c, gin.H{"requests": items})
	return nil
}

// RespondRequest 批准/拒绝关注请求，每个请求只能裁决一次
func (f *Follow) RespondRequest(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}
	requestID, err := parseIDParam(c, "request_id")
	if err != nil {
		return err
	}

	var req types.RespondFollowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, err.Error())
	}

	approve := req.Decision == "approved"
	if err := f.FollowService.RespondToFollowRequest(c.Request.Context(), userID, requestID, approve); err != nil {
		return err
	}
	response.Success(c, gin.H{"decision": req.Decision})
	return nil
}
