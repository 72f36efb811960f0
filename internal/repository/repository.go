package repository

import (
	"sync"

	"github.com/sysu-ecnc-dev/campaign-share/backend/internal/domain"
)

// Repository 是进程内的数据存储，重启即清空
// 用户以 arena + 索引的方式保存，外部只拿到拷贝，修改必须通过 UpdateUser 回写
type Repository struct {
	mu sync.RWMutex

	users     []*domain.User
	userIndex map[string]int
	posts     []*domain.Post // 按创建时间倒序
	shareLogs []*domain.ShareLog
}

func NewRepository() *Repository {
	return &Repository{
		users:     make([]*domain.User, 0),
		userIndex: make(map[string]int),
		posts:     make([]*domain.Post, 0),
		shareLogs: make([]*domain.ShareLog, 0),
	}
}
