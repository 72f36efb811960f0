package handler

import (
	"net/http"

	"github.com/sysu-ecnc-dev/campaign-share/backend/internal/domain"
	"github.com/sysu-ecnc-dev/campaign-share/backend/internal/session"
)

func (h *Handler) GetDraft(w http.ResponseWriter, r *http.Request) {
	draft, err := h.controller.Draft()
	if err != nil {
		h.actionError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取草稿成功", draft)
}

func (h *Handler) UpdateDraft(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Topic     *string  `json:"topic"`
		Title     *string  `json:"title"`
		Content   *string  `json:"content"`
		Platforms []string `json:"platforms" validate:"omitempty,dive,oneof=Instagram TikTok LinkedIn"`
		Hashtags  []string `json:"hashtags"`
		ImageURL  *string  `json:"imageUrl" validate:"omitempty,max=2048"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	patch := session.DraftPatch{
		Topic:    req.Topic,
		Title:    req.Title,
		Content:  req.Content,
		Hashtags: req.Hashtags,
		ImageURL: req.ImageURL,
	}
	if req.Platforms != nil {
		patch.Platforms = make([]domain.Platform, 0, len(req.Platforms))
		for _, p := range req.Platforms {
			patch.Platforms = append(patch.Platforms, domain.Platform(p))
		}
	}

	draft, err := h.controller.UpdateDraft(patch)
	if err != nil {
		h.actionError(w, r, err)
		return
	}

	h.successResponse(w, r, "更新草稿成功", draft)
}

func (h *Handler) ToggleDraftPlatform(w http.ResponseWriter, r *http.Request) {
	platform := r.Context().Value(PlatformCtx).(domain.Platform)

	draft, err := h.controller.TogglePlatform(platform)
	if err != nil {
		h.actionError(w, r, err)
		return
	}

	h.successResponse(w, r, "更新草稿成功", draft)
}

func (h *Handler) GenerateDraft(w http.ResponseWriter, r *http.Request) {
	draft, applied, err := h.controller.Generate(r.Context())
	if err != nil {
		h.actionError(w, r, err)
		return
	}

	if !applied {
		// 有更新的生成请求，本次结果已被丢弃
		h.errorResponse(w, r, "生成请求已被新的请求取代")
		return
	}

	h.successResponse(w, r, "内容生成完成", draft)
}

func (h *Handler) SubmitDraft(w http.ResponseWriter, r *http.Request) {
	post, err := h.controller.SubmitDraft()
	if err != nil {
		h.actionError(w, r, err)
		return
	}

	h.notifier.NewCampaign(post, h.controller.Users())

	h.successResponse(w, r, "活动创建成功！", post)
}

func (h *Handler) ResetDraft(w http.ResponseWriter, r *http.Request) {
	if err := h.controller.ResetDraft(); err != nil {
		h.actionError(w, r, err)
		return
	}

	h.successResponse(w, r, "草稿已清空", nil)
}
