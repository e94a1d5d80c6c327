package handler

import (
	"net/http"
	"strconv"

	"Prism/pkg/response"

	"github.com/gin-gonic/gin"
)

const defaultPageSize = 20

// parseIDParam 解析路径中的数字 ID
func parseIDParam(c *gin.Context, name string) (uint64, error) {
	raw := c.Param(name)
	if raw == "" {
		return 0, response.NewError(http.StatusBadRequest, "缺少 "+name)
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, response.NewError(http.StatusBadRequest, name+" 格式错误")
	}
	return id, nil
}

// pageParams 解析 limit/offset 分页参数
func pageParams(c *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", ""))
	if limit <= 0 || limit > 100 {
		limit = defaultPageSize
	}
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
