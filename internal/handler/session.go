package handler

import (
	"net/http"

	"github.com/sysu-ecnc-dev/campaign-share/backend/internal/domain"
)

func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.controller.Snapshot()
	if err != nil {
		h.actionError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取会话信息成功", snapshot)
}

func (h *Handler) SwitchRole(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.controller.ToggleRole()
	if err != nil {
		h.actionError(w, r, err)
		return
	}

	h.successResponse(w, r, "切换角色成功", snapshot)
}

func (h *Handler) SwitchUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID string `json:"userId" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	snapshot, err := h.controller.SwitchUser(req.UserID)
	if err != nil {
		h.actionError(w, r, err)
		return
	}

	h.successResponse(w, r, "切换用户成功", snapshot)
}

func (h *Handler) SetView(w http.ResponseWriter, r *http.Request) {
	var req struct {
		View string `json:"view" validate:"required,oneof=dashboard create feed leaderboard integrations"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	snapshot, err := h.controller.SetView(domain.View(req.View))
	if err != nil {
		h.actionError(w, r, err)
		return
	}

	h.successResponse(w, r, "切换视图成功", snapshot)
}

func (h *Handler) GetAllUsers(w http.ResponseWriter, r *http.Request) {
	h.successResponse(w, r, "获取用户列表成功", h.controller.Users())
}

func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.controller.Dashboard()
	if err != nil {
		h.actionError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取仪表盘成功", dashboard)
}

func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	entries, err := h.controller.Leaderboard()
	if err != nil {
		h.actionError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取排行榜成功", entries)
}

func (h *Handler) GetShareLogs(w http.ResponseWriter, r *http.Request) {
	logs, err := h.controller.ShareLogs()
	if err != nil {
		h.actionError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取分享记录成功", logs)
}
