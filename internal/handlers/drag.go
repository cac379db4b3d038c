package handlers

import (
	"net/http"

	"taskboard/internal/drag"
)

type dragPayload struct {
	Active drag.Item  `json:"active"`
	Over   *drag.Item `json:"over"`
}

func (p dragPayload) valid() bool {
	if p.Active.ID == "" || !p.Active.Kind.Valid() {
		return false
	}
	return p.Over == nil || (p.Over.ID != "" && p.Over.Kind.Valid())
}

func (h *Handlers) decodeDrag(w http.ResponseWriter, r *http.Request) (dragPayload, bool) {
	var p dragPayload
	if err := decodeJSON(r, &p); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json")
		return p, false
	}
	if !p.valid() {
		respondError(w, http.StatusBadRequest, "drag items need an id and a type of task or column")
		return p, false
	}
	return p, true
}

// respondOverlay must be called with mu held.
func (h *Handlers) respondOverlay(w http.ResponseWriter) {
	respondJSON(w, http.StatusOK, h.drag.Overlay())
}

// DragOverlay reports what is being dragged, if anything.
func (h *Handlers) DragOverlay(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.respondOverlay(w)
}

// DragStart begins a gesture.
func (h *Handlers) DragStart(w http.ResponseWriter, r *http.Request) {
	p, ok := h.decodeDrag(w, r)
	if !ok {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.drag.OnDragStart(p.Active)
	h.respondOverlay(w)
}

// DragOver reports the item under the pointer.
func (h *Handlers) DragOver(w http.ResponseWriter, r *http.Request) {
	p, ok := h.decodeDrag(w, r)
	if !ok {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.drag.OnDragOver(p.Active, p.Over)
	h.respondOverlay(w)
}

// DragEnd finishes a gesture.
func (h *Handlers) DragEnd(w http.ResponseWriter, r *http.Request) {
	p, ok := h.decodeDrag(w, r)
	if !ok {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.drag.OnDragEnd(p.Active, p.Over)
	h.respondOverlay(w)
}

// DragCancel abandons a gesture without touching the board.
func (h *Handlers) DragCancel(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.drag.Cancel()
	h.respondOverlay(w)
}
