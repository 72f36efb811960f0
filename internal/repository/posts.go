package repository

import (
	"fmt"

	"github.com/sysu-ecnc-dev/campaign-share/backend/internal/domain"
)

// CreatePost 将活动插入到列表最前面
func (r *Repository) CreatePost(post *domain.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.posts {
		if p.ID == post.ID {
			return fmt.Errorf("活动 %s 已存在", post.ID)
		}
	}

	r.posts = append([]*domain.Post{post.Clone()}, r.posts...)

	return nil
}

// AppendPost 将活动追加到列表末尾，仅用于按顺序导入初始数据
func (r *Repository) AppendPost(post *domain.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.posts {
		if p.ID == post.ID {
			return fmt.Errorf("活动 %s 已存在", post.ID)
		}
	}

	r.posts = append(r.posts, post.Clone())

	return nil
}

func (r *Repository) GetAllPosts() []*domain.Post {
	r.mu.RLock()
	defer r.mu.RUnlock()

	posts := make([]*domain.Post, 0, len(r.posts))
	for _, p := range r.posts {
		posts = append(posts, p.Clone())
	}

	return posts
}

func (r *Repository) GetPostByID(id string) (*domain.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.posts {
		if p.ID == id {
			return p.Clone(), nil
		}
	}

	return nil, domain.ErrPostNotFound
}

func (r *Repository) CountPosts() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.posts)
}
