package notify

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/campaign-share/backend/internal/domain"
	"github.com/wneessen/go-mail"
)

type recordingPublisher struct {
	messages []domain.MailMessage
	failFor  string
}

func (p *recordingPublisher) Publish(ctx context.Context, msg domain.MailMessage) error {
	if _, ok := ctx.Deadline(); !ok {
		return errors.New("缺少超时")
	}
	if msg.To == p.failFor {
		return errors.New("队列不可用")
	}
	p.messages = append(p.messages, msg)
	return nil
}

func TestNewCampaign(t *testing.T) {
	post := &domain.Post{
		ID:        "p9",
		Title:     "Spring Hiring",
		Content:   "加入我们",
		Platforms: []domain.Platform{domain.PlatformLinkedIn},
		ImageURL:  "https://picsum.photos/id/1/600/400",
	}
	users := []*domain.User{
		{ID: "u1", Name: "王芳", Email: "admin@example.com", Role: domain.RoleAdmin},
		{ID: "u2", Name: "李强", Email: "liqiang@example.com", Role: domain.RoleEmployee},
		{ID: "u3", Name: "张敏", Role: domain.RoleEmployee},
		{ID: "u4", Name: "陈静", Email: "chenjing@example.com", Role: domain.RoleEmployee},
	}

	p := &recordingPublisher{failFor: "chenjing@example.com"}
	n := NewNotifier(p, time.Second)

	// 管理员和没有邮箱的员工不会收到通知，投递失败的不计入
	assert.Equal(t, 1, n.NewCampaign(post, users))
	require.Len(t, p.messages, 1)

	msg := p.messages[0]
	assert.Equal(t, domain.MailTypeNewCampaign, msg.Type)
	assert.Equal(t, "liqiang@example.com", msg.To)
	assert.Equal(t, domain.NewCampaignMailData{
		FullName:  "李强",
		Title:     "Spring Hiring",
		Content:   "加入我们",
		Platforms: []domain.Platform{domain.PlatformLinkedIn},
		ImageURL:  "https://picsum.photos/id/1/600/400",
	}, msg.Data)
}

func TestLogPublisher(t *testing.T) {
	n := NewNotifier(LogPublisher{}, time.Second)
	users := []*domain.User{{ID: "u2", Email: "liqiang@example.com", Role: domain.RoleEmployee}}

	assert.Equal(t, 1, n.NewCampaign(&domain.Post{ID: "p1"}, users))
}

func TestMailBuilder(t *testing.T) {
	b, err := NewMailBuilder("noreply@example.com", filepath.Join("..", "..", "templates"))
	require.NoError(t, err)

	body, err := json.Marshal(domain.MailMessage{
		Type: domain.MailTypeNewCampaign,
		To:   "liqiang@example.com",
		Data: domain.NewCampaignMailData{
			FullName:  "李强",
			Title:     "Spring Hiring",
			Content:   "加入我们",
			Platforms: []domain.Platform{domain.PlatformLinkedIn, domain.PlatformTikTok},
		},
	})
	require.NoError(t, err)

	msg, err := b.Build(body)
	require.NoError(t, err)

	to := msg.GetToString()
	assert.Equal(t, []string{"<liqiang@example.com>"}, to)
	assert.Equal(t, []string{"新的推广活动等你分享"}, msg.GetGenHeader(mail.HeaderSubject))
}

func TestMailBuilderRejectsBadMessages(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "new_campaign_email.html"), []byte("<p>{{.title}}</p>"), 0o644))

	b, err := NewMailBuilder("noreply@example.com", dir)
	require.NoError(t, err)

	_, err = b.Build([]byte("not json"))
	assert.Error(t, err)

	_, err = b.Build([]byte(`{"type":"weekly_report","to":"a@example.com","data":{}}`))
	assert.ErrorIs(t, err, ErrUnsupportedMailType)

	_, err = b.Build([]byte(`{"type":"new_campaign","to":"not an address","data":{}}`))
	assert.Error(t, err)

	_, err = NewMailBuilder("noreply@example.com", t.TempDir())
	assert.Error(t, err)
}
