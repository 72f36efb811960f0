package session

import (
	"context"
	"slices"
	"strings"

	"github.com/sysu-ecnc-dev/campaign-share/backend/internal/campaign"
	"github.com/sysu-ecnc-dev/campaign-share/backend/internal/domain"
)

// Draft 是创建页面上尚未提交的活动
type Draft struct {
	Topic      string            `json:"topic"`
	Title      string            `json:"title"`
	Content    string            `json:"content"`
	Platforms  []domain.Platform `json:"platforms"`
	Hashtags   []string          `json:"hashtags"`
	ImageURL   string            `json:"imageUrl"`
	Generating bool              `json:"generating"`
}

func emptyDraft() Draft {
	return Draft{
		Platforms: []domain.Platform{},
		Hashtags:  []string{},
	}
}

func (d Draft) clone() Draft {
	d.Platforms = slices.Clone(d.Platforms)
	d.Hashtags = slices.Clone(d.Hashtags)
	return d
}

// DraftPatch 中为 nil 的字段保持不变
type DraftPatch struct {
	Topic     *string
	Title     *string
	Content   *string
	Platforms []domain.Platform
	Hashtags  []string
	ImageURL  *string
}

func (c *Controller) Draft() (Draft, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.authorize(domain.CapViewCreate); err != nil {
		return Draft{}, err
	}

	return c.draft.clone(), nil
}

// UpdateDraft 修改草稿字段
// 修改内容或标签时丢弃正在进行的生成请求，迟到的结果不能覆盖用户的修改
func (c *Controller) UpdateDraft(patch DraftPatch) (Draft, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.authorize(domain.CapViewCreate); err != nil {
		return Draft{}, err
	}

	for _, p := range patch.Platforms {
		if !p.Valid() {
			return Draft{}, &domain.ValidationError{Field: "platforms", Message: "不支持的平台"}
		}
	}

	if patch.Content != nil || patch.Hashtags != nil {
		c.invalidateGeneration()
	}

	if patch.Topic != nil {
		c.draft.Topic = *patch.Topic
	}
	if patch.Title != nil {
		c.draft.Title = *patch.Title
	}
	if patch.Content != nil {
		c.draft.Content = *patch.Content
	}
	if patch.Platforms != nil {
		c.draft.Platforms = dedup(patch.Platforms)
	}
	if patch.Hashtags != nil {
		c.draft.Hashtags = slices.Clone(patch.Hashtags)
	}
	if patch.ImageURL != nil {
		c.draft.ImageURL = *patch.ImageURL
	}

	return c.draft.clone(), nil
}

// TogglePlatform 在草稿中选中或取消选中平台
func (c *Controller) TogglePlatform(platform domain.Platform) (Draft, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.authorize(domain.CapViewCreate); err != nil {
		return Draft{}, err
	}
	if !platform.Valid() {
		return Draft{}, &domain.ValidationError{Field: "platform", Message: "不支持的平台"}
	}

	if slices.Contains(c.draft.Platforms, platform) {
		c.draft.Platforms = slices.DeleteFunc(c.draft.Platforms, func(p domain.Platform) bool {
			return p == platform
		})
	} else {
		c.draft.Platforms = append(c.draft.Platforms, platform)
	}

	return c.draft.clone(), nil
}

// Generate 根据草稿的主题为第一个选中的平台生成内容
// 每次调用都会使之前尚未返回的请求失效，只有最新一次请求的结果会写入草稿
// 返回值 applied 表示结果是否写入了草稿
func (c *Controller) Generate(ctx context.Context) (draft Draft, applied bool, err error) {
	c.mu.Lock()

	if _, err := c.authorize(domain.CapGenerateContent); err != nil {
		c.mu.Unlock()
		return Draft{}, false, err
	}

	if strings.TrimSpace(c.draft.Topic) == "" {
		c.mu.Unlock()
		return Draft{}, false, &domain.ValidationError{Field: "topic", Message: "请先填写主题"}
	}
	if len(c.draft.Platforms) == 0 {
		c.mu.Unlock()
		return Draft{}, false, &domain.ValidationError{Field: "platforms", Message: "至少需要选择一个平台"}
	}

	c.invalidateGeneration()
	c.genSeq++
	seq := c.genSeq

	genCtx, cancel := context.WithCancel(ctx)
	c.genCancel = cancel
	c.draft.Generating = true

	topic := c.draft.Topic
	platform := c.draft.Platforms[0]

	c.mu.Unlock()

	// 生成调用不持锁，期间可以继续处理其他操作
	content := c.generator.Generate(genCtx, topic, platform)

	c.mu.Lock()
	defer c.mu.Unlock()

	defer cancel()

	if seq != c.genSeq {
		// 已经有更新的请求或者用户已经离开，丢弃过期的结果
		return c.draft.clone(), false, nil
	}

	c.genCancel = nil
	c.draft.Generating = false

	if genCtx.Err() != nil {
		// 调用方放弃了这次请求
		return c.draft.clone(), false, nil
	}

	c.draft.Content = content.Content
	c.draft.Hashtags = slices.Clone(content.Hashtags)
	if c.draft.Hashtags == nil {
		c.draft.Hashtags = []string{}
	}

	return c.draft.clone(), true, nil
}

// SubmitDraft 用草稿创建活动，成功后清空草稿
func (c *Controller) SubmitDraft() (*domain.Post, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	post, err := c.createPost(campaign.PostFields{
		Title:             c.draft.Title,
		Content:           c.draft.Content,
		Platforms:         c.draft.Platforms,
		ImageURL:          c.draft.ImageURL,
		SuggestedHashtags: c.draft.Hashtags,
	})
	if err != nil {
		return nil, err
	}

	c.invalidateGeneration()
	c.draft = emptyDraft()

	return post, nil
}

func (c *Controller) ResetDraft() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.authorize(domain.CapViewCreate); err != nil {
		return err
	}

	c.invalidateGeneration()
	c.draft = emptyDraft()

	return nil
}

// invalidateGeneration 使正在进行的生成请求失效，必须在持锁状态下调用
func (c *Controller) invalidateGeneration() {
	c.genSeq++
	if c.genCancel != nil {
		c.genCancel()
		c.genCancel = nil
	}
	c.draft.Generating = false
}

func dedup(platforms []domain.Platform) []domain.Platform {
	result := make([]domain.Platform, 0, len(platforms))
	for _, p := range platforms {
		if !slices.Contains(result, p) {
			result = append(result, p)
		}
	}
	return result
}
