package repository

import (
	"fmt"

	"github.com/sysu-ecnc-dev/campaign-share/backend/internal/domain"
)

func (r *Repository) CreateUser(user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.userIndex[user.ID]; exists {
		return fmt.Errorf("用户 %s 已存在", user.ID)
	}

	r.userIndex[user.ID] = len(r.users)
	r.users = append(r.users, user.Clone())

	return nil
}

func (r *Repository) GetUserByID(id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.userIndex[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}

	return r.users[i].Clone(), nil
}

// GetAllUsers 按创建顺序返回所有用户
func (r *Repository) GetAllUsers() []*domain.User {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, u.Clone())
	}

	return users
}

// FindFirstUserByRole 按创建顺序返回第一个指定角色的用户
func (r *Repository) FindFirstUserByRole(role domain.Role) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Role == role {
			return u.Clone(), nil
		}
	}

	return nil, domain.ErrUserNotFound
}

// UpdateUser 在写锁内对用户执行 fn，fn 返回错误时不做任何修改
// fn 中的所有修改作为一个整体写回，外部不会观察到中间状态
func (r *Repository) UpdateUser(id string, fn func(u *domain.User) error) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.userIndex[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}

	updated := r.users[i].Clone()
	if err := fn(updated); err != nil {
		return nil, err
	}
	r.users[i] = updated

	return updated.Clone(), nil
}
