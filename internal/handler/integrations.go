package handler

import (
	"fmt"
	"net/http"

	"github.com/sysu-ecnc-dev/campaign-share/backend/internal/domain"
	"github.com/sysu-ecnc-dev/campaign-share/backend/internal/registry"
)

func (h *Handler) GetIntegrations(w http.ResponseWriter, r *http.Request) {
	statuses, err := h.controller.Integrations()
	if err != nil {
		h.actionError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取平台绑定状态成功", statuses)
}

func (h *Handler) ToggleConnection(w http.ResponseWriter, r *http.Request) {
	platform := r.Context().Value(PlatformCtx).(domain.Platform)

	user, outcome, err := h.controller.ToggleConnection(platform)
	if err != nil {
		h.actionError(w, r, err)
		return
	}

	msg := fmt.Sprintf("已解绑 %s", platform)
	if outcome == registry.OutcomeConnected {
		msg = fmt.Sprintf("成功绑定 %s！", platform)
	}

	h.successResponse(w, r, msg, user)
}
