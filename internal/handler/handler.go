package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
	"github.com/sysu-ecnc-dev/campaign-share/backend/internal/config"
	"github.com/sysu-ecnc-dev/campaign-share/backend/internal/notify"
	"github.com/sysu-ecnc-dev/campaign-share/backend/internal/session"
)

type Handler struct {
	validate   *validator.Validate
	config     *config.Config
	controller *session.Controller
	notifier   *notify.Notifier
	translator ut.Translator
	metrics    http.Handler

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, controller *session.Controller, notifier *notify.Notifier, metrics http.Handler) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	zh := zh.New()
	uni := ut.New(zh, zh)
	trans, _ := uni.GetTranslator("zh")
	if err := zh_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:   validate,
		config:     cfg,
		controller: controller,
		notifier:   notifier,
		translator: trans,
		metrics:    metrics,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	h.Mux.Handle("/metrics", h.metrics)

	// 会话相关
	h.Mux.Route("/session", func(r chi.Router) {
		r.Get("/", h.GetSession)
		r.Post("/switch-role", h.SwitchRole)
		r.Post("/switch-user", h.SwitchUser)
		r.Put("/view", h.SetView)
	})

	h.Mux.Get("/users", h.GetAllUsers)
	h.Mux.Get("/dashboard", h.GetDashboard)
	h.Mux.Get("/leaderboard", h.GetLeaderboard)
	h.Mux.Get("/share-logs", h.GetShareLogs)

	h.Mux.Route("/posts", func(r chi.Router) {
		r.Get("/", h.GetFeed)
		r.Post("/", h.CreatePost)
		r.Route("/{id}", func(r chi.Router) {
			r.Use(h.postInfo)
			r.Get("/", h.GetPost)
			r.Post("/share", h.SharePost)
		})
	})

	h.Mux.Route("/integrations", func(r chi.Router) {
		r.Get("/", h.GetIntegrations)
		r.With(h.platformParam).Post("/{platform}/toggle", h.ToggleConnection)
	})

	// 创建页面的草稿
	h.Mux.Route("/draft", func(r chi.Router) {
		r.Get("/", h.GetDraft)
		r.Patch("/", h.UpdateDraft)
		r.Delete("/", h.ResetDraft)
		r.With(h.platformParam).Post("/platforms/{platform}/toggle", h.ToggleDraftPlatform)
		r.Post("/generate", h.GenerateDraft)
		r.Post("/submit", h.SubmitDraft)
	})
}
