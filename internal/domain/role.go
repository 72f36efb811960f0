package domain

type Capability string

const (
	CapViewDashboard    Capability = "view:dashboard"
	CapViewCreate       Capability = "view:create"
	CapViewFeed         Capability = "view:feed"
	CapViewLeaderboard  Capability = "view:leaderboard"
	CapViewIntegrations Capability = "view:integrations"
	CapCreatePost       Capability = "post:create"
	CapSharePost        Capability = "post:share"
	CapToggleConnection Capability = "connection:toggle"
	CapGenerateContent  Capability = "draft:generate"
)

type View string

const (
	ViewDashboard    View = "dashboard"
	ViewCreate       View = "create"
	ViewFeed         View = "feed"
	ViewLeaderboard  View = "leaderboard"
	ViewIntegrations View = "integrations"
)

// 角色切换后无权访问当前视图时回退到的视图
const DefaultView = ViewFeed

var AllViews = []View{ViewDashboard, ViewCreate, ViewFeed, ViewLeaderboard, ViewIntegrations}

var viewCapabilities = map[View]Capability{
	ViewDashboard:    CapViewDashboard,
	ViewCreate:       CapViewCreate,
	ViewFeed:         CapViewFeed,
	ViewLeaderboard:  CapViewLeaderboard,
	ViewIntegrations: CapViewIntegrations,
}

var roleCapabilities = map[Role]map[Capability]bool{
	RoleAdmin: {
		CapViewDashboard:    true,
		CapViewCreate:       true,
		CapViewFeed:         true,
		CapViewLeaderboard:  true,
		CapViewIntegrations: true,
		CapCreatePost:       true,
		CapSharePost:        true,
		CapToggleConnection: true,
		CapGenerateContent:  true,
	},
	RoleEmployee: {
		CapViewDashboard:    true,
		CapViewFeed:         true,
		CapViewLeaderboard:  true,
		CapViewIntegrations: true,
		CapSharePost:        true,
		CapToggleConnection: true,
	},
}

// Capabilities 返回角色允许的所有视图和操作，未知角色没有任何权限
func Capabilities(role Role) []Capability {
	caps := make([]Capability, 0, len(roleCapabilities[role]))
	for _, c := range allCapabilities {
		if roleCapabilities[role][c] {
			caps = append(caps, c)
		}
	}
	return caps
}

var allCapabilities = []Capability{
	CapViewDashboard, CapViewCreate, CapViewFeed, CapViewLeaderboard, CapViewIntegrations,
	CapCreatePost, CapSharePost, CapToggleConnection, CapGenerateContent,
}

func (r Role) Can(c Capability) bool {
	return roleCapabilities[r][c]
}

func (r Role) Valid() bool {
	_, ok := roleCapabilities[r]
	return ok
}

func (v View) Valid() bool {
	_, ok := viewCapabilities[v]
	return ok
}

func (v View) Capability() Capability {
	return viewCapabilities[v]
}
