package ledger

import (
	"errors"
	"slices"

	"github.com/sysu-ecnc-dev/campaign-share/backend/internal/domain"
	"github.com/sysu-ecnc-dev/campaign-share/backend/internal/metrics"
	"github.com/sysu-ecnc-dev/campaign-share/backend/internal/repository"
)

// 每次成功分享固定奖励的积分
const SharePoints = 10

var ErrNegativePoints = errors.New("奖励积分不能为负数")

// Ledger 是唯一允许修改用户 Shares 和 Points 的地方
type Ledger struct {
	repository *repository.Repository
	metrics    *metrics.Metrics
}

func New(repo *repository.Repository, m *metrics.Metrics) *Ledger {
	return &Ledger{
		repository: repo,
		metrics:    m,
	}
}

// Award 分享次数加一，积分加 points，两者在同一次写入中完成
func (l *Ledger) Award(userID string, points int64) (*domain.User, error) {
	if points < 0 {
		return nil, ErrNegativePoints
	}

	user, err := l.repository.UpdateUser(userID, func(u *domain.User) error {
		u.Shares++
		u.Points += points
		return nil
	})
	if err != nil {
		return nil, err
	}

	l.metrics.PointsAwarded.Add(float64(points))

	return user, nil
}

type LeaderboardEntry struct {
	Rank int          `json:"rank"`
	User *domain.User `json:"user"`
}

// Leaderboard 按积分从高到低排序，积分相同时保持用户创建顺序
func (l *Ledger) Leaderboard() []LeaderboardEntry {
	users := l.repository.GetAllUsers()
	slices.SortStableFunc(users, func(a, b *domain.User) int {
		switch {
		case a.Points > b.Points:
			return -1
		case a.Points < b.Points:
			return 1
		default:
			return 0
		}
	})

	entries := make([]LeaderboardEntry, 0, len(users))
	for i, u := range users {
		entries = append(entries, LeaderboardEntry{Rank: i + 1, User: u})
	}

	return entries
}

type Totals struct {
	Shares int64 `json:"shares"`
	Points int64 `json:"points"`
}

func (l *Ledger) Totals() Totals {
	t := Totals{}
	for _, u := range l.repository.GetAllUsers() {
		t.Shares += u.Shares
		t.Points += u.Points
	}
	return t
}
