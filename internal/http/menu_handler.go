package http

import (
	"context"
	"net/http"
	"time"

	"github.com/NandakishoreN09/Grabit/internal/menu"
)

type MenuHandler struct {
	repo menu.Repository
}

func NewMenuHandler(repo menu.Repository) *MenuHandler {
	return &MenuHandler{repo: repo}
}

func (h *MenuHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	items, err := h.repo.List(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load menu")
		return
	}
	if items == nil {
		items = []menu.Item{}
	}

	writeJSON(w, http.StatusOK, items)
}
