package session

import (
	"github.com/sysu-ecnc-dev/campaign-share/backend/internal/domain"
	"github.com/sysu-ecnc-dev/campaign-share/backend/internal/ledger"
	"github.com/sysu-ecnc-dev/campaign-share/backend/internal/registry"
)

// 仪表盘中展示的最近活动数量
const dashboardRecentPosts = 3

type Dashboard struct {
	User           *domain.User   `json:"user"`
	TotalShares    int64          `json:"totalShares"`
	TotalPoints    int64          `json:"totalPoints"`
	ConnectedCount int            `json:"connectedCount"`
	RecentPosts    []*domain.Post `json:"recentPosts"`
}

func (c *Controller) Dashboard() (*Dashboard, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	user, err := c.authorize(domain.CapViewDashboard)
	if err != nil {
		return nil, err
	}

	totals := c.ledger.Totals()

	return &Dashboard{
		User:           user,
		TotalShares:    totals.Shares,
		TotalPoints:    totals.Points,
		ConnectedCount: len(user.ConnectedAccounts),
		RecentPosts:    c.campaigns.Recent(dashboardRecentPosts),
	}, nil
}

func (c *Controller) Feed() ([]*domain.Post, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.authorize(domain.CapViewFeed); err != nil {
		return nil, err
	}

	return c.campaigns.List(), nil
}

func (c *Controller) Post(id string) (*domain.Post, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.authorize(domain.CapViewFeed); err != nil {
		return nil, err
	}

	return c.campaigns.Get(id)
}

func (c *Controller) Leaderboard() ([]ledger.LeaderboardEntry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.authorize(domain.CapViewLeaderboard); err != nil {
		return nil, err
	}

	return c.ledger.Leaderboard(), nil
}

func (c *Controller) Integrations() ([]registry.PlatformStatus, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	user, err := c.authorize(domain.CapViewIntegrations)
	if err != nil {
		return nil, err
	}

	return c.registry.Status(user.ID)
}

// ShareLogs 管理员可以看到所有分享记录，员工只能看到自己的
func (c *Controller) ShareLogs() ([]*domain.ShareLog, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	user, err := c.authorize(domain.CapViewDashboard)
	if err != nil {
		return nil, err
	}

	if user.Role == domain.RoleAdmin {
		return c.repository.GetAllShareLogs(), nil
	}
	return c.repository.GetShareLogsByUserID(user.ID), nil
}

// Users 返回所有用户，用于切换用户
func (c *Controller) Users() []*domain.User {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.repository.GetAllUsers()
}
