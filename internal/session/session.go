package session

import (
	"sync"

	"github.com/sysu-ecnc-dev/campaign-share/backend/internal/campaign"
	"github.com/sysu-ecnc-dev/campaign-share/backend/internal/domain"
	"github.com/sysu-ecnc-dev/campaign-share/backend/internal/generator"
	"github.com/sysu-ecnc-dev/campaign-share/backend/internal/ledger"
	"github.com/sysu-ecnc-dev/campaign-share/backend/internal/registry"
	"github.com/sysu-ecnc-dev/campaign-share/backend/internal/repository"
	"github.com/sysu-ecnc-dev/campaign-share/backend/internal/share"
)

// Controller 持有唯一的活跃用户和当前视图，所有修改操作都经过这里
// 每个操作在持锁状态下执行完毕后才处理下一个，内容生成调用除外
type Controller struct {
	mu sync.Mutex

	repository *repository.Repository
	campaigns  *campaign.Store
	registry   *registry.Registry
	ledger     *ledger.Ledger
	share      *share.Protocol
	generator  generator.Generator

	// 只保存用户 ID，每次使用时从用户集合中重新读取
	activeUserID string
	activeView   domain.View

	draft     Draft
	genSeq    uint64
	genCancel func()
}

type Deps struct {
	Repository *repository.Repository
	Campaigns  *campaign.Store
	Registry   *registry.Registry
	Ledger     *ledger.Ledger
	Share      *share.Protocol
	Generator  generator.Generator
}

func New(deps Deps, initialUserID string) (*Controller, error) {
	if _, err := deps.Repository.GetUserByID(initialUserID); err != nil {
		return nil, err
	}

	return &Controller{
		repository:   deps.Repository,
		campaigns:    deps.Campaigns,
		registry:     deps.Registry,
		ledger:       deps.Ledger,
		share:        deps.Share,
		generator:    deps.Generator,
		activeUserID: initialUserID,
		activeView:   domain.ViewDashboard,
		draft:        emptyDraft(),
	}, nil
}

type Snapshot struct {
	User         *domain.User        `json:"user"`
	View         domain.View         `json:"view"`
	Capabilities []domain.Capability `json:"capabilities"`
}

func (c *Controller) Snapshot() (*Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.snapshot()
}

func (c *Controller) snapshot() (*Snapshot, error) {
	user, err := c.repository.GetUserByID(c.activeUserID)
	if err != nil {
		return nil, err
	}

	return &Snapshot{
		User:         user,
		View:         c.activeView,
		Capabilities: domain.Capabilities(user.Role),
	}, nil
}

func (c *Controller) ActiveUser() (*domain.User, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.repository.GetUserByID(c.activeUserID)
}

// authorize 读取最新的活跃用户并检查其角色是否拥有 capability
// 必须在持锁状态下调用
func (c *Controller) authorize(capability domain.Capability) (*domain.User, error) {
	user, err := c.repository.GetUserByID(c.activeUserID)
	if err != nil {
		return nil, err
	}

	if !user.Role.Can(capability) {
		return nil, domain.ErrForbidden
	}

	return user, nil
}

func (c *Controller) SetView(view domain.View) (*Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !view.Valid() {
		return nil, domain.ErrInvalidView
	}

	if _, err := c.authorize(view.Capability()); err != nil {
		return nil, err
	}

	if c.activeView == domain.ViewCreate && view != domain.ViewCreate {
		// 离开创建页面时丢弃尚未返回的生成结果
		c.invalidateGeneration()
	}
	c.activeView = view

	return c.snapshot()
}

// SwitchUser 切换活跃用户，新角色无权访问当前视图时回退到分享广场
func (c *Controller) SwitchUser(userID string) (*Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	user, err := c.repository.GetUserByID(userID)
	if err != nil {
		return nil, err
	}

	c.switchTo(user)

	return c.snapshot()
}

// ToggleRole 管理员切换到第一个员工，员工切换到第一个管理员
func (c *Controller) ToggleRole() (*Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	current, err := c.repository.GetUserByID(c.activeUserID)
	if err != nil {
		return nil, err
	}

	target := domain.RoleAdmin
	if current.Role == domain.RoleAdmin {
		target = domain.RoleEmployee
	}

	next, err := c.repository.FindFirstUserByRole(target)
	if err != nil {
		return nil, err
	}

	c.switchTo(next)

	return c.snapshot()
}

func (c *Controller) switchTo(user *domain.User) {
	if user.ID != c.activeUserID {
		// 草稿属于切换前的用户
		c.invalidateGeneration()
		c.draft = emptyDraft()
	}

	c.activeUserID = user.ID
	if !user.Role.Can(c.activeView.Capability()) {
		c.activeView = domain.DefaultView
	}
}

// CreatePost 创建活动，成功后切换到分享广场
func (c *Controller) CreatePost(fields campaign.PostFields) (*domain.Post, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.createPost(fields)
}

func (c *Controller) createPost(fields campaign.PostFields) (*domain.Post, error) {
	user, err := c.authorize(domain.CapCreatePost)
	if err != nil {
		return nil, err
	}

	post, err := c.campaigns.Create(user.ID, fields)
	if err != nil {
		return nil, err
	}

	c.activeView = domain.ViewFeed

	return post, nil
}

func (c *Controller) ToggleConnection(platform domain.Platform) (*domain.User, registry.Outcome, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	user, err := c.authorize(domain.CapToggleConnection)
	if err != nil {
		return nil, "", err
	}

	return c.registry.Toggle(user.ID, platform)
}

func (c *Controller) Share(postID string, platform domain.Platform) (*share.Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	user, err := c.authorize(domain.CapSharePost)
	if err != nil {
		return nil, err
	}

	return c.share.Share(user.ID, postID, platform)
}
