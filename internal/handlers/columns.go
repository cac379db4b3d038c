package handlers

import (
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"

	"taskboard/internal/models"
)

// CreateColumn appends a column to the board.
func (h *Handlers) CreateColumn(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Title string `json:"title"`
		Color string `json:"color"`
	}
	if err := decodeJSON(r, &payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json")
		return
	}

	h.mu.Lock()
	col, err := h.board.AddColumn(payload.Title, payload.Color)
	h.mu.Unlock()
	if err != nil {
		h.respondBoardError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, col)
}

// UpdateColumn renames or recolors a column.
func (h *Handlers) UpdateColumn(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var u models.ColumnUpdate
	if err := decodeJSON(r, &u); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.board.UpdateColumn(id, u); err != nil {
		h.respondBoardError(w, err)
		return
	}
	col, err := h.board.Column(id)
	if err != nil {
		h.respondBoardError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, col)
}

// DeleteColumn removes a column and every task in it.
func (h *Handlers) DeleteColumn(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	err := h.board.DeleteColumn(chi.URLParam(r, "id"))
	h.mu.Unlock()
	if err != nil {
		h.respondBoardError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ReorderColumns moves active_id to over_id's position.
func (h *Handlers) ReorderColumns(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		ActiveID string `json:"active_id"`
		OverID   string `json:"over_id"`
	}
	if err := decodeJSON(r, &payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json")
		return
	}

	h.mu.Lock()
	changed := h.board.ReorderColumns(payload.ActiveID, payload.OverID)
	cols := h.board.Columns()
	h.mu.Unlock()

	respondJSON(w, http.StatusOK, map[string]any{
		"changed": changed,
		"columns": cols,
	})
}

// ListColumnTasks returns a column's tasks in order. With ?sort=priority
// the tasks are listed highest priority first; the stored order is kept.
func (h *Handlers) ListColumnTasks(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	sortBy := r.URL.Query().Get("sort")
	if sortBy != "" && sortBy != "priority" {
		respondError(w, http.StatusBadRequest, "sort must be 'priority'")
		return
	}

	h.mu.Lock()
	_, err := h.board.Column(id)
	tasks := h.board.TasksByColumn(id)
	h.mu.Unlock()
	if err != nil {
		h.respondBoardError(w, err)
		return
	}

	if sortBy == "priority" {
		slices.SortStableFunc(tasks, func(a, b models.Task) int {
			return a.Priority.Order() - b.Priority.Order()
		})
	}

	respondJSON(w, http.StatusOK, tasks)
}
