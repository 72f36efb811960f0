package generator

import (
	"context"

	"github.com/sysu-ecnc-dev/campaign-share/backend/internal/domain"
)

// 生成失败时返回给用户的占位内容
const (
	MissingKeyContent = "错误：未配置 API Key，请检查环境变量配置。"
	FailedContent     = "内容生成失败，请稍后重试。"
)

type Content struct {
	Content  string   `json:"content"`
	Hashtags []string `json:"hashtags"`
	Fallback bool     `json:"fallback"` // 为 true 表示生成失败，Content 是占位内容
}

// Generator 根据主题和平台生成文案和话题标签
// 实现不能返回错误，任何失败都要降级为占位内容
type Generator interface {
	Generate(ctx context.Context, topic string, platform domain.Platform) Content
}

func fallback(content string) Content {
	return Content{
		Content:  content,
		Hashtags: []string{},
		Fallback: true,
	}
}
