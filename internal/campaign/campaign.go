package campaign

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sysu-ecnc-dev/campaign-share/backend/internal/domain"
	"github.com/sysu-ecnc-dev/campaign-share/backend/internal/metrics"
	"github.com/sysu-ecnc-dev/campaign-share/backend/internal/repository"
)

// 未上传图片时使用的占位图，以创建时间作为种子
const placeholderImageFormat = "https://picsum.photos/seed/%d/800/600"

type PostFields struct {
	Title             string
	Content           string
	Platforms         []domain.Platform
	ImageURL          string
	SuggestedHashtags []string
}

type Store struct {
	repository *repository.Repository
	metrics    *metrics.Metrics

	now   func() time.Time
	newID func() string
}

func New(repo *repository.Repository, m *metrics.Metrics) *Store {
	return &Store{
		repository: repo,
		metrics:    m,
		now:        time.Now,
		newID:      uuid.NewString,
	}
}

// Validate 检查必填字段，失败时返回 *domain.ValidationError
func Validate(f PostFields) error {
	if strings.TrimSpace(f.Title) == "" {
		return &domain.ValidationError{Field: "title", Message: "活动标题不能为空"}
	}
	if strings.TrimSpace(f.Content) == "" {
		return &domain.ValidationError{Field: "content", Message: "活动内容不能为空"}
	}
	if len(f.Platforms) == 0 {
		return &domain.ValidationError{Field: "platforms", Message: "至少需要选择一个平台"}
	}
	for _, p := range f.Platforms {
		if !p.Valid() {
			return &domain.ValidationError{Field: "platforms", Message: fmt.Sprintf("不支持的平台: %s", p)}
		}
	}
	return nil
}

// Create 创建活动并放到列表最前面，新活动总是直接发布
// 调用方需要保证作者有创建权限，这里只校验作者确实是管理员
func (s *Store) Create(authorID string, f PostFields) (*domain.Post, error) {
	if err := Validate(f); err != nil {
		s.metrics.PostsRefused.Inc()
		return nil, err
	}

	author, err := s.repository.GetUserByID(authorID)
	if err != nil {
		return nil, err
	}
	if author.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}

	createdAt := s.now()

	imageURL := strings.TrimSpace(f.ImageURL)
	if imageURL == "" {
		imageURL = fmt.Sprintf(placeholderImageFormat, createdAt.UnixMilli())
	}

	hashtags := slices.Clone(f.SuggestedHashtags)
	if hashtags == nil {
		hashtags = []string{}
	}

	post := &domain.Post{
		ID:                s.newID(),
		Title:             f.Title,
		Content:           f.Content,
		Platforms:         dedupPlatforms(f.Platforms),
		ImageURL:          imageURL,
		CreatedAt:         createdAt,
		AuthorID:          author.ID,
		Status:            domain.PostStatusPublished,
		SuggestedHashtags: hashtags,
	}

	if err := s.repository.CreatePost(post); err != nil {
		return nil, err
	}

	s.metrics.PostsCreated.Inc()

	return post, nil
}

func (s *Store) List() []*domain.Post {
	return s.repository.GetAllPosts()
}

func (s *Store) Get(id string) (*domain.Post, error) {
	return s.repository.GetPostByID(id)
}

// Recent 返回最新的 n 个活动
func (s *Store) Recent(n int) []*domain.Post {
	if n < 0 {
		n = 0
	}

	posts := s.repository.GetAllPosts()
	if len(posts) > n {
		posts = posts[:n]
	}
	return posts
}

func dedupPlatforms(platforms []domain.Platform) []domain.Platform {
	result := make([]domain.Platform, 0, len(platforms))
	for _, p := range platforms {
		if !slices.Contains(result, p) {
			result = append(result, p)
		}
	}
	return result
}
