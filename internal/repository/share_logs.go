package repository

import (
	"github.com/sysu-ecnc-dev/campaign-share/backend/internal/domain"
)

func (r *Repository) InsertShareLog(log *domain.ShareLog) {
	r.mu.Lock()
	defer r.mu.Unlock()

	l := *log
	r.shareLogs = append(r.shareLogs, &l)
}

// GetAllShareLogs 按写入顺序返回分享记录
func (r *Repository) GetAllShareLogs() []*domain.ShareLog {
	r.mu.RLock()
	defer r.mu.RUnlock()

	logs := make([]*domain.ShareLog, 0, len(r.shareLogs))
	for _, l := range r.shareLogs {
		c := *l
		logs = append(logs, &c)
	}

	return logs
}

func (r *Repository) GetShareLogsByUserID(userID string) []*domain.ShareLog {
	r.mu.RLock()
	defer r.mu.RUnlock()

	logs := make([]*domain.ShareLog, 0)
	for _, l := range r.shareLogs {
		if l.UserID == userID {
			c := *l
			logs = append(logs, &c)
		}
	}

	return logs
}
