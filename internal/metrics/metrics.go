package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	SharesCommitted   *prometheus.CounterVec
	SharesRejected    *prometheus.CounterVec
	PointsAwarded     prometheus.Counter
	PostsCreated      prometheus.Counter
	PostsRefused      prometheus.Counter
	ConnectionToggles *prometheus.CounterVec
	Generations       *prometheus.CounterVec
}

// New 创建并注册所有指标，测试中传入独立的 registry 避免重复注册
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		SharesCommitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "campaign_shares_committed_total",
			Help: "成功提交的分享次数",
		}, []string{"platform"}),
		SharesRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "campaign_shares_rejected_total",
			Help: "被拒绝的分享次数",
		}, []string{"reason"}),
		PointsAwarded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "campaign_points_awarded_total",
			Help: "发放的积分总数",
		}),
		PostsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "campaign_posts_created_total",
			Help: "创建的活动数",
		}),
		PostsRefused: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "campaign_posts_refused_total",
			Help: "因字段校验失败被拒绝的活动数",
		}),
		ConnectionToggles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "campaign_connection_toggles_total",
			Help: "账号绑定状态切换次数",
		}, []string{"platform", "outcome"}),
		Generations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "campaign_generations_total",
			Help: "内容生成请求次数",
		}, []string{"outcome"}),
	}

	reg.MustRegister(
		m.SharesCommitted,
		m.SharesRejected,
		m.PointsAwarded,
		m.PostsCreated,
		m.PostsRefused,
		m.ConnectionToggles,
		m.Generations,
	)

	return m
}
