package notify

import (
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"path/filepath"

	"github.com/sysu-ecnc-dev/campaign-share/backend/internal/domain"
	"github.com/wneessen/go-mail"
)

var ErrUnsupportedMailType = errors.New("不支持的邮件类型")

type mailTemplate struct {
	subject string
	file    string
}

var mailTemplates = map[string]mailTemplate{
	domain.MailTypeNewCampaign: {
		subject: "新的推广活动等你分享",
		file:    "new_campaign_email.html",
	},
}

// MailBuilder 根据队列中的消息构建邮件
type MailBuilder struct {
	from      string
	templates map[string]*template.Template
}

// NewMailBuilder 从 dir 中解析所有邮件模板
func NewMailBuilder(from string, dir string) (*MailBuilder, error) {
	b := &MailBuilder{
		from:      from,
		templates: make(map[string]*template.Template),
	}

	for typ, mt := range mailTemplates {
		tmpl, err := template.ParseFiles(filepath.Join(dir, mt.file))
		if err != nil {
			return nil, fmt.Errorf("无法解析邮件模板 %s: %w", mt.file, err)
		}
		b.templates[typ] = tmpl
	}

	return b, nil
}

// Build 反序列化消息并生成邮件，返回的错误说明消息本身有问题，重试也不会成功
func (b *MailBuilder) Build(body []byte) (*mail.Msg, error) {
	mailMessage := domain.MailMessage{}
	if err := json.Unmarshal(body, &mailMessage); err != nil {
		return nil, fmt.Errorf("邮件信息反序列化失败: %w", err)
	}

	mt, ok := mailTemplates[mailMessage.Type]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMailType, mailMessage.Type)
	}

	msg := mail.NewMsg()
	if err := msg.From(b.from); err != nil {
		return nil, fmt.Errorf("无法设置邮件发件人: %w", err)
	}
	if err := msg.To(mailMessage.To); err != nil {
		return nil, fmt.Errorf("无法设置邮件收件人: %w", err)
	}
	if err := msg.SetBodyHTMLTemplate(b.templates[mailMessage.Type], mailMessage.Data); err != nil {
		return nil, fmt.Errorf("无法设置邮件正文: %w", err)
	}
	msg.Subject(mt.subject)

	return msg, nil
}
