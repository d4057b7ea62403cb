package handler

import (
	"errors"
	"log"
	"strconv"

	"filmgraph/utils"

	"github.com/gin-gonic/gin"
)

// parseIDParam 解析路径里的数字 id；失败时直接写 400 响应
func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		utils.BadRequest(c, "invalid "+name)
		return 0, false
	}
	return id, true
}

// answerError 把业务错误映射到 HTTP 状态码
// NotFound→404，InvalidArgument→400，其余一律 500 并记日志（不吞错误）
func answerError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, utils.ErrNotFound):
		utils.NotFound(c, err.Error())
	case errors.Is(err, utils.ErrInvalidArgument):
		utils.BadRequest(c, err.Error())
	default:
		log.Printf("[ERROR] %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		utils.InternalServerError(c, "internal server error")
	}
}
