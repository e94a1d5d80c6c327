package service

import "Prism/pkg/response"

// 业务错误统一用 BizError 承载，Code 即响应码，
// handler 层经 context.Wrap 直接映射，不再二次翻译
var (
	ErrSelfReference = response.NewError(400, "不能对自己执行该操作")
	ErrInvalidTarget = response.NewError(400, "目标不合法")

	ErrAlreadyBlocked = response.NewError(409, "已拉黑该用户")
	ErrNotBlocked     = response.NewError(400, "未拉黑该用户")

	ErrUnauthorized = response.NewError(403, "无权限操作")
	ErrNotFound     = response.NewError(404, "记录不存在")

	ErrUserNotFound   = response.NewError(404, "用户不存在")
	ErrGroupNotFound  = response.NewError(404, "群组不存在")
	ErrPostNotFound   = response.NewError(404, "帖子不存在")
	ErrStatusNotFound = response.NewError(404, "动态不存在")

	ErrNotMember        = response.NewError(400, "对方不是群组成员")
	ErrOwnerCannotLeave = response.NewError(409, "群主需先转让群组才能退出")

	ErrEmailTaken    = response.NewError(409, "邮箱已被注册")
	ErrUsernameTaken = response.NewError(409, "用户名已被占用")
	ErrBadCredential = response.NewError(400, "账号或密码错误")
)
