package service

import "errors"

// 业务错误。handler 层据此映射 HTTP 状态码：
// ErrNotFound -> 404，ErrInvalidCredentials -> 401，其余校验类错误 -> 400/409。
var (
	ErrNotFound           = errors.New("记录不存在")
	ErrInvalidCredentials = errors.New("无效的凭证")
	ErrUsernameTaken      = errors.New("用户名已存在")
	ErrInvalidRole        = errors.New("无效的角色，必须为 admin 或 readonly")
	ErrInvalidTheme       = errors.New("无效的主题，必须为 light 或 dark")
	ErrParentNotFound     = errors.New("指定的父级 tracker 不存在")
	ErrHeaderNotFound     = errors.New("指定的列定义不存在或不属于该 tracker")
	ErrSelfDelete         = errors.New("不能删除当前登录的账号")
)
