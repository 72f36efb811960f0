package domain

import (
	"errors"
	"fmt"
)

var (
	ErrForbidden    = errors.New("权限不足")
	ErrUserNotFound = errors.New("用户不存在")
	ErrPostNotFound = errors.New("活动不存在")
	ErrInvalidView  = errors.New("无效的视图")
)

// ValidationError 表示请求字段不合法，操作被拒绝且没有任何修改
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

type GatingReason string

const (
	ReasonPlatformNotTargeted GatingReason = "PlatformNotTargeted"
	ReasonAccountNotConnected GatingReason = "AccountNotConnected"
)

// GatingError 表示分享因平台或账号绑定状态不匹配被拒绝
type GatingError struct {
	Reason   GatingReason
	Platform Platform
}

func (e *GatingError) Error() string {
	switch e.Reason {
	case ReasonAccountNotConnected:
		return fmt.Sprintf("请先在集成设置中绑定 %s 账号", e.Platform)
	case ReasonPlatformNotTargeted:
		return fmt.Sprintf("该活动不支持分享到 %s", e.Platform)
	default:
		return fmt.Sprintf("无法分享到 %s", e.Platform)
	}
}

func IsGatingReason(err error, reason GatingReason) bool {
	var gErr *GatingError
	return errors.As(err, &gErr) && gErr.Reason == reason
}
