package notify

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sysu-ecnc-dev/campaign-share/backend/internal/domain"
)

// Publisher 将邮件消息投递到消息队列，由 mail worker 负责发送
type Publisher interface {
	Publish(ctx context.Context, msg domain.MailMessage) error
}

type AMQPPublisher struct {
	channel *amqp.Channel
	queue   string
}

func NewAMQPPublisher(ch *amqp.Channel, queue string) *AMQPPublisher {
	return &AMQPPublisher{
		channel: ch,
		queue:   queue,
	}
}

func (p *AMQPPublisher) Publish(ctx context.Context, msg domain.MailMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	return p.channel.PublishWithContext(
		ctx,
		"",
		p.queue,
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        data,
		},
	)
}

// 未配置 RabbitMQ 时使用，只记录日志
type LogPublisher struct{}

func (LogPublisher) Publish(_ context.Context, msg domain.MailMessage) error {
	slog.Info("未配置消息队列，跳过邮件投递", "type", msg.Type, "to", msg.To)
	return nil
}

type Notifier struct {
	publisher Publisher
	timeout   time.Duration
}

func NewNotifier(p Publisher, timeout time.Duration) *Notifier {
	return &Notifier{
		publisher: p,
		timeout:   timeout,
	}
}

// NewCampaign 通知所有有邮箱的员工有新活动可以分享
// 通知是尽力而为的，投递失败只记录日志，返回成功投递的数量
func (n *Notifier) NewCampaign(post *domain.Post, users []*domain.User) int {
	ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
	defer cancel()

	cnt := 0
	for _, u := range users {
		if u.Role != domain.RoleEmployee || u.Email == "" {
			continue
		}

		msg := domain.MailMessage{
			Type: domain.MailTypeNewCampaign,
			To:   u.Email,
			Data: domain.NewCampaignMailData{
				FullName:  u.Name,
				Title:     post.Title,
				Content:   post.Content,
				Platforms: post.Platforms,
				ImageURL:  post.ImageURL,
			},
		}

		if err := n.publisher.Publish(ctx, msg); err != nil {
			slog.Error("无法投递新活动通知", "to", u.Email, "post", post.ID, "error", err)
			continue
		}
		cnt++
	}

	return cnt
}
