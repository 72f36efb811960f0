package handler

import (
	"fmt"
	"net/http"

	"github.com/sysu-ecnc-dev/campaign-share/backend/internal/campaign"
	"github.com/sysu-ecnc-dev/campaign-share/backend/internal/domain"
	"github.com/sysu-ecnc-dev/campaign-share/backend/internal/ledger"
)

func (h *Handler) GetFeed(w http.ResponseWriter, r *http.Request) {
	posts, err := h.controller.Feed()
	if err != nil {
		h.actionError(w, r, err)
		return
	}

	h.successResponse(w, r, fmt.Sprintf("共有 %d 个进行中的活动", len(posts)), posts)
}

func (h *Handler) GetPost(w http.ResponseWriter, r *http.Request) {
	post := r.Context().Value(PostCtx).(*domain.Post)
	h.successResponse(w, r, "获取活动成功", post)
}

// 必填字段由控制器在权限检查之后校验，这里只做格式上的检查
func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title             string   `json:"title"`
		Content           string   `json:"content"`
		Platforms         []string `json:"platforms"`
		ImageURL          string   `json:"imageUrl" validate:"omitempty,max=2048"`
		SuggestedHashtags []string `json:"suggestedHashtags"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	platforms := make([]domain.Platform, 0, len(req.Platforms))
	for _, p := range req.Platforms {
		platforms = append(platforms, domain.Platform(p))
	}

	post, err := h.controller.CreatePost(campaign.PostFields{
		Title:             req.Title,
		Content:           req.Content,
		Platforms:         platforms,
		ImageURL:          req.ImageURL,
		SuggestedHashtags: req.SuggestedHashtags,
	})
	if err != nil {
		h.actionError(w, r, err)
		return
	}

	h.notifier.NewCampaign(post, h.controller.Users())

	h.successResponse(w, r, "活动创建成功！", post)
}

func (h *Handler) SharePost(w http.ResponseWriter, r *http.Request) {
	post := r.Context().Value(PostCtx).(*domain.Post)

	var req struct {
		Platform string `json:"platform" validate:"required,oneof=Instagram TikTok LinkedIn"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	result, err := h.controller.Share(post.ID, domain.Platform(req.Platform))
	if err != nil {
		h.actionError(w, r, err)
		return
	}

	h.successResponse(w, r, fmt.Sprintf("已分享到 %s！+%d 积分", req.Platform, ledger.SharePoints), result)
}
