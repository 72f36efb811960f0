package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/campaign-share/backend/internal/domain"
	"github.com/sysu-ecnc-dev/campaign-share/backend/internal/generator"
)

func ptr[T any](v T) *T {
	return &v
}

type generateResult struct {
	draft   Draft
	applied bool
	err     error
}

func startGenerate(c *Controller) <-chan generateResult {
	done := make(chan generateResult, 1)
	go func() {
		d, applied, err := c.Generate(context.Background())
		done <- generateResult{d, applied, err}
	}()
	return done
}

func prepareDraft(t *testing.T, c *Controller) {
	t.Helper()

	_, err := c.SetView(domain.ViewCreate)
	require.NoError(t, err)
	_, err = c.UpdateDraft(DraftPatch{
		Topic:     ptr("新品发布"),
		Title:     ptr("新品发布会"),
		Platforms: []domain.Platform{domain.PlatformTikTok, domain.PlatformLinkedIn, domain.PlatformTikTok},
	})
	require.NoError(t, err)
}

func TestGenerateAppliesContent(t *testing.T) {
	gen := &staticGenerator{}
	c, repo := newController(t, gen)
	prepareDraft(t, c)

	draft, applied, err := c.Generate(context.Background())
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, "关于新品发布的文案", draft.Content)
	assert.Equal(t, []string{"#AI"}, draft.Hashtags)
	assert.False(t, draft.Generating)

	// 使用第一个选中的平台，平台列表已去重
	assert.Equal(t, []domain.Platform{domain.PlatformTikTok}, gen.calls)
	assert.Equal(t, []domain.Platform{domain.PlatformTikTok, domain.PlatformLinkedIn}, draft.Platforms)

	// 生成不会创建活动
	assert.Equal(t, 2, repo.CountPosts())
}

func TestGenerateRequiresTopicAndPlatform(t *testing.T) {
	c, _ := newController(t, &staticGenerator{})

	_, _, err := c.Generate(context.Background())
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "topic", vErr.Field)

	_, err = c.UpdateDraft(DraftPatch{Topic: ptr("主题")})
	require.NoError(t, err)

	_, _, err = c.Generate(context.Background())
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "platforms", vErr.Field)
}

func TestStaleGenerationIsDiscarded(t *testing.T) {
	gen := newBlockingGenerator()
	c, _ := newController(t, gen)
	prepareDraft(t, c)

	first := startGenerate(c)
	<-gen.started

	draft, err := c.Draft()
	require.NoError(t, err)
	assert.True(t, draft.Generating)

	second := startGenerate(c)
	<-gen.started

	// 第二次请求使第一次请求被取消
	r1 := <-first
	require.NoError(t, r1.err)
	assert.False(t, r1.applied)

	gen.release <- generator.Content{Content: "最新的文案", Hashtags: []string{"#New"}}
	r2 := <-second
	require.NoError(t, r2.err)
	assert.True(t, r2.applied)

	draft, err = c.Draft()
	require.NoError(t, err)
	assert.Equal(t, "最新的文案", draft.Content)
	assert.Equal(t, []string{"#New"}, draft.Hashtags)
	assert.False(t, draft.Generating)
}

func TestLeavingCreateDiscardsGeneration(t *testing.T) {
	gen := newBlockingGenerator()
	c, _ := newController(t, gen)
	prepareDraft(t, c)

	_, err := c.UpdateDraft(DraftPatch{Content: ptr("手写的内容")})
	require.NoError(t, err)

	pending := startGenerate(c)
	<-gen.started

	_, err = c.SetView(domain.ViewFeed)
	require.NoError(t, err)

	r := <-pending
	require.NoError(t, r.err)
	assert.False(t, r.applied)

	draft, err := c.Draft()
	require.NoError(t, err)
	assert.Equal(t, "手写的内容", draft.Content)
	assert.False(t, draft.Generating)
}

func TestSwitchingUserClearsDraft(t *testing.T) {
	gen := newBlockingGenerator()
	c, _ := newController(t, gen)
	prepareDraft(t, c)

	pending := startGenerate(c)
	<-gen.started

	_, err := c.ToggleRole()
	require.NoError(t, err)

	r := <-pending
	assert.False(t, r.applied)

	_, err = c.SwitchUser("u1")
	require.NoError(t, err)

	draft, err := c.Draft()
	require.NoError(t, err)
	assert.Empty(t, draft.Topic)
	assert.Empty(t, draft.Content)
	assert.Empty(t, draft.Platforms)
}

func TestSubmitDraft(t *testing.T) {
	c, repo := newController(t, &staticGenerator{})
	prepareDraft(t, c)

	// 缺少内容时提交失败，草稿保留
	_, err := c.SubmitDraft()
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "content", vErr.Field)

	_, _, err = c.Generate(context.Background())
	require.NoError(t, err)

	post, err := c.SubmitDraft()
	require.NoError(t, err)
	assert.Equal(t, "新品发布会", post.Title)
	assert.Equal(t, "关于新品发布的文案", post.Content)
	assert.Equal(t, []string{"#AI"}, post.SuggestedHashtags)
	assert.Equal(t, []domain.Platform{domain.PlatformTikTok, domain.PlatformLinkedIn}, post.Platforms)
	assert.Equal(t, 3, repo.CountPosts())

	draft, err := c.Draft()
	require.NoError(t, err)
	assert.Equal(t, emptyDraft(), draft)

	snap, err := c.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, domain.ViewFeed, snap.View)
}

func TestTogglePlatformAndReset(t *testing.T) {
	c, _ := newController(t, &staticGenerator{})

	draft, err := c.TogglePlatform(domain.PlatformInstagram)
	require.NoError(t, err)
	assert.Equal(t, []domain.Platform{domain.PlatformInstagram}, draft.Platforms)

	draft, err = c.TogglePlatform(domain.PlatformInstagram)
	require.NoError(t, err)
	assert.Empty(t, draft.Platforms)

	_, err = c.TogglePlatform(domain.Platform("Facebook"))
	assert.Error(t, err)
	_, err = c.UpdateDraft(DraftPatch{Platforms: []domain.Platform{"Facebook"}})
	assert.Error(t, err)

	_, err = c.UpdateDraft(DraftPatch{Title: ptr("标题"), ImageURL: ptr("blob:1")})
	require.NoError(t, err)
	require.NoError(t, c.ResetDraft())

	draft, err = c.Draft()
	require.NoError(t, err)
	assert.Equal(t, emptyDraft(), draft)
}

func TestEditingContentDiscardsPendingGeneration(t *testing.T) {
	for name, patch := range map[string]DraftPatch{
		"content":  {Content: ptr("用户后来手写的内容")},
		"hashtags": {Hashtags: []string{"#手写"}},
	} {
		t.Run(name, func(t *testing.T) {
			gen := newBlockingGenerator()
			c, _ := newController(t, gen)
			prepareDraft(t, c)

			_, err := c.UpdateDraft(DraftPatch{Content: ptr("用户后来手写的内容"), Hashtags: []string{"#手写"}})
			require.NoError(t, err)

			pending := startGenerate(c)
			<-gen.started

			_, err = c.UpdateDraft(patch)
			require.NoError(t, err)

			r := <-pending
			require.NoError(t, r.err)
			assert.False(t, r.applied)

			draft, err := c.Draft()
			require.NoError(t, err)
			assert.Equal(t, "用户后来手写的内容", draft.Content)
			assert.Equal(t, []string{"#手写"}, draft.Hashtags)
			assert.False(t, draft.Generating)
		})
	}
}

func TestEditingTitleKeepsPendingGeneration(t *testing.T) {
	gen := newBlockingGenerator()
	c, _ := newController(t, gen)
	prepareDraft(t, c)

	pending := startGenerate(c)
	<-gen.started

	_, err := c.UpdateDraft(DraftPatch{Title: ptr("改过的标题")})
	require.NoError(t, err)

	gen.release <- generator.Content{Content: "生成的文案", Hashtags: []string{"#AI"}}
	r := <-pending
	require.NoError(t, r.err)
	assert.True(t, r.applied)
	assert.Equal(t, "改过的标题", r.draft.Title)
	assert.Equal(t, "生成的文案", r.draft.Content)
}
