package registry

import (
	"slices"

	"github.com/sysu-ecnc-dev/campaign-share/backend/internal/domain"
	"github.com/sysu-ecnc-dev/campaign-share/backend/internal/metrics"
	"github.com/sysu-ecnc-dev/campaign-share/backend/internal/repository"
)

type Outcome string

const (
	OutcomeConnected    Outcome = "connected"
	OutcomeDisconnected Outcome = "disconnected"
)

// Registry 是唯一允许修改用户 ConnectedAccounts 的地方
type Registry struct {
	repository *repository.Repository
	metrics    *metrics.Metrics
}

func New(repo *repository.Repository, m *metrics.Metrics) *Registry {
	return &Registry{
		repository: repo,
		metrics:    m,
	}
}

func (r *Registry) IsConnected(userID string, platform domain.Platform) (bool, error) {
	user, err := r.repository.GetUserByID(userID)
	if err != nil {
		return false, err
	}

	return user.IsConnected(platform), nil
}

// Toggle 已绑定则解绑，未绑定则绑定，结果直接写回用户集合
func (r *Registry) Toggle(userID string, platform domain.Platform) (*domain.User, Outcome, error) {
	if !platform.Valid() {
		return nil, "", &domain.ValidationError{Field: "platform", Message: "不支持的平台"}
	}

	var outcome Outcome
	user, err := r.repository.UpdateUser(userID, func(u *domain.User) error {
		if u.IsConnected(platform) {
			u.ConnectedAccounts = slices.DeleteFunc(u.ConnectedAccounts, func(p domain.Platform) bool {
				return p == platform
			})
			outcome = OutcomeDisconnected
		} else {
			u.ConnectedAccounts = append(u.ConnectedAccounts, platform)
			outcome = OutcomeConnected
		}
		return nil
	})
	if err != nil {
		return nil, "", err
	}

	r.metrics.ConnectionToggles.WithLabelValues(string(platform), string(outcome)).Inc()

	return user, outcome, nil
}

// Status 返回每个平台对该用户的绑定状态，顺序与 domain.AllPlatforms 一致
func (r *Registry) Status(userID string) ([]PlatformStatus, error) {
	user, err := r.repository.GetUserByID(userID)
	if err != nil {
		return nil, err
	}

	statuses := make([]PlatformStatus, 0, len(domain.AllPlatforms))
	for _, p := range domain.AllPlatforms {
		statuses = append(statuses, PlatformStatus{
			Platform:  p,
			Connected: user.IsConnected(p),
		})
	}

	return statuses, nil
}

type PlatformStatus struct {
	Platform  domain.Platform `json:"platform"`
	Connected bool            `json:"connected"`
}
