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

type GroupMemberHandler struct {
	Config             *config.Config
	GroupMemberService service.IGroupMemberService
}

func (h *GroupMemberHandler) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(h.Config.Jwt.Secret))
	g := r.Group("/v1/groups")
	g.POST("/:group_id/join", authorize, context.Wrap(h.Join))
	g.DELETE("/:group_id/leave", authorize, context.Wrap(h.Leave))
	g.GET("/:group_id/members", authorize, context.Wrap(h.ListMembers))
	g.POST("/:group_id/members/role", authorize, context.Wrap(h.ChangeRole))
	g.DELETE("/:group_id/members/:user_id", authorize, context.Wrap(h.KickMember))
	g.GET("/:group_id/join-requests", authorize, context.Wrap(h.ListJoinRequests))
	g.POST("/:group_id/join-requests/:request_id", authorize, context.Wrap(h.RespondJoinRequest))

	r.GET("/v1/join-requests/mine", authorize, context.Wrap(h.ListMyJoinRequests))
}

// Join 入群。私密群是请求开关：再点一次即撤回
func (h *GroupMemberHandler) Join(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}
	gid, err := parseIDParam(c, "group_id")
	if err != nil {
		return err
	}

	outcome, err := h.GroupMemberService.Join(c.Request.Context(), userID, gid)
	if err != nil {
		return err
	}
	response.Success(c, gin.H{"outcome": outcome})
	return nil
}

// Leave 退群，群主不能退
func (h *GroupMemberHandler) Leave(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}
	gid, err := parseIDParam(c, "group_id")
	if err != nil {
		return err
	}

	outcome, err := h.GroupMemberService.Leave(c.Request.Context(), userID, gid)
	if err != nil {
		return err
	}
	response.Success(c, gin.H{"outcome": outcome})
	return nil
}

func (h *GroupMemberHandler) ListMembers(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}
	gid, err := parseIDParam(c, "group_id")
	if err != nil {
		return err
	}

	items, err := h.GroupMemberService.ListMembers(c.Request.Context(), userID, gid)
	if err != nil {
		return err
	}
	response.Success(c, gin.H{"members": items})
	return nil
}

// ChangeRole 仅群主可设 admin/member，不能动群主自己
func (h *GroupMemberHandler) ChangeRole(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}
	gid, err := parseIDParam(c, "group_id")
	if err != nil {
		return err
	}

	var req types.ChangeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, err.Error())
	}

	if err := h.GroupMemberService.ChangeRole(c.Request.Context(), userID, gid, req.UserID, req.Role); err != nil {
		return err
	}
	response.Success(c, gin.H{"changed": true})
	return nil
}

// KickMember 移出成员，权限规则在服务层裁决
func (h *GroupMemberHandler) KickMember(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}
	gid, err := parseIDParam(c, "group_id")
	if err != nil {
		return err
	}
	targetID, err := parseIDParam(c, "user_id")
	if err != nil {
		return err
	}

	if err := h.GroupMemberService.KickMember(c.Request.Context(), userID, gid, targetID); err != nil {
		return err
	}
	response.Success(c, gin.H{"kicked": true})
	return nil
}

// ListJoinRequests 群的待处理入群请求，群主/管理员可见
func (h *GroupMemberHandler) ListJoinRequests(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}
	gid, err := parseIDParam(c, "group_id")
	if err != nil {
		return err
	}

	items, err := h.GroupMemberService.ListJoinRequests(c.Request.Context(), userID, gid)
	if err != nil {
		return err
	}
	response.Success(c, gin.H{"requests": items})
	return nil
}

// ListMyJoinRequests 我管理的所有群的待处理入群请求
func (h *GroupMemberHandler) ListMyJoinRequests(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}

	items, err := h.GroupMemberService.ListAllMyJoinRequests(c.Request.Context(), userID)
	if err != nil {
		return err
	}
	response.Success(c, gin.H{"requests": items})
	return nil
}

// RespondJoinRequest 批准/拒绝入群请求，每个请求只能裁决一次
func (h *GroupMemberHandler) RespondJoinRequest(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}
	gid, err := parseIDParam(c, "group_id")
	if err != nil {
		return err
	}
	requestID, err := parseIDParam(c, "request_id")
	if err != nil {
		return err
	}

	var req types.RespondJoinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, err.Error())
	}

	approve := req.Decision == "approved"
	if err := h.GroupMemberService.RespondToJoinRequest(c.Request.Context(), userID, gid, requestID, approve); err != nil {
		return err
	}
	response.Success(c, gin.H{"decision": req.Decision})
	return nil
}
