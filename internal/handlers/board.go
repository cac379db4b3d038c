package handlers

import (
	"net/http"

	"taskboard/internal/models"
)

// GetBoard returns the whole board in display order.
func (h *Handlers) GetBoard(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	snap := h.board.Snapshot()
	h.mu.Unlock()

	respondJSON(w, http.StatusOK, snap)
}

// GetPalette lists the preset colors a column can use.
func (h *Handlers) GetPalette(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"presets": models.Palette,
		"default": models.DefaultColor,
	})
}
