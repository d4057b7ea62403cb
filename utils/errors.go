package utils

import (
	"errors"
	"fmt"
)

// 业务错误分类。服务层通过 %w 包装这些哨兵错误，
// handler/中间件用 errors.Is 映射到对应的 HTTP 状态码。
var (
	// ErrNotFound 引用的用户/电影/评论不存在
	ErrNotFound = errors.New("not found")

	// ErrInvalidArgument 参数非法（count <= 0、不支持的搜索字段等）
	ErrInvalidArgument = errors.New("invalid argument")
)

// NotFoundf 构造带上下文的 ErrNotFound
func NotFoundf(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrNotFound)...)
}

// InvalidArgumentf 构造带上下文的 ErrInvalidArgument
func InvalidArgumentf(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrInvalidArgument)...)
}
