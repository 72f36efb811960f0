package share

import (
	"time"

	"github.com/google/uuid"
	"github.com/sysu-ecnc-dev/campaign-share/backend/internal/domain"
	"github.com/sysu-ecnc-dev/campaign-share/backend/internal/ledger"
	"github.com/sysu-ecnc-dev/campaign-share/backend/internal/metrics"
	"github.com/sysu-ecnc-dev/campaign-share/backend/internal/registry"
	"github.com/sysu-ecnc-dev/campaign-share/backend/internal/repository"
)

// Result 是一次成功分享的结果
// ShareURL 和 ClipboardText 供调用方打开平台发布页、复制文案，这些操作失败不影响已发放的积分
type Result struct {
	Log           *domain.ShareLog `json:"log"`
	User          *domain.User     `json:"user"`
	ShareURL      string           `json:"shareUrl"`
	ClipboardText string           `json:"clipboardText"`
}

type Protocol struct {
	repository *repository.Repository
	registry   *registry.Registry
	ledger     *ledger.Ledger
	metrics    *metrics.Metrics

	now   func() time.Time
	newID func() string
}

func New(repo *repository.Repository, reg *registry.Registry, l *ledger.Ledger, m *metrics.Metrics) *Protocol {
	return &Protocol{
		repository: repo,
		registry:   reg,
		ledger:     l,
		metrics:    m,
		now:        time.Now,
		newID:      uuid.NewString,
	}
}

// Share 判断用户能否将活动分享到指定平台，可以则记录分享并发放积分
// 被拒绝时不做任何修改，用户绑定账号后可以直接重试
func (p *Protocol) Share(userID, postID string, platform domain.Platform) (*Result, error) {
	post, err := p.repository.GetPostByID(postID)
	if err != nil {
		return nil, err
	}

	if !post.Targets(platform) {
		return nil, p.reject(domain.ReasonPlatformNotTargeted, platform)
	}

	connected, err := p.registry.IsConnected(userID, platform)
	if err != nil {
		return nil, err
	}
	if !connected {
		return nil, p.reject(domain.ReasonAccountNotConnected, platform)
	}

	// 先发放积分再写分享记录，发放失败时不会留下没有奖励的记录
	user, err := p.ledger.Award(userID, ledger.SharePoints)
	if err != nil {
		return nil, err
	}

	log := &domain.ShareLog{
		ID:        p.newID(),
		UserID:    userID,
		PostID:    post.ID,
		Platform:  platform,
		Timestamp: p.now(),
	}
	p.repository.InsertShareLog(log)

	p.metrics.SharesCommitted.WithLabelValues(string(platform)).Inc()

	return &Result{
		Log:           log,
		User:          user,
		ShareURL:      platform.ShareURL(),
		ClipboardText: domain.ShareText(post),
	}, nil
}

func (p *Protocol) reject(reason domain.GatingReason, platform domain.Platform) error {
	p.metrics.SharesRejected.WithLabelValues(string(reason)).Inc()
	return &domain.GatingError{Reason: reason, Platform: platform}
}
