package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"taskboard/internal/board"
	"taskboard/internal/models"
)

// CreateTask appends a task to a column.
func (h *Handlers) CreateTask(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Title string `json:"title"`
	}
	if err := decodeJSON(r, &payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json")
		return
	}

	h.mu.Lock()
	task, err := h.board.AddTask(payload.Title, chi.URLParam(r, "id"))
	h.mu.Unlock()
	if err != nil {
		h.respondBoardError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, task)
}

// GetTask returns a single task.
func (h *Handlers) GetTask(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	task, err := h.board.Task(chi.URLParam(r, "id"))
	h.mu.Unlock()
	if err != nil {
		h.respondBoardError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, task)
}

// UpdateTask applies a partial update to a task.
func (h *Handlers) UpdateTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var u models.TaskUpdate
	if err := decodeJSON(r, &u); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.board.UpdateTask(id, u); err != nil {
		h.respondBoardError(w, err)
		return
	}
	task, err := h.board.Task(id)
	if err != nil {
		h.respondBoardError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, task)
}

// DeleteTask deletes a task.
func (h *Handlers) DeleteTask(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	err := h.board.DeleteTask(chi.URLParam(r, "id"))
	h.mu.Unlock()
	if err != nil {
		h.respondBoardError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// MoveTask places a task in a column. Without an index the task goes last.
func (h *Handlers) MoveTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var payload struct {
		ColumnID string `json:"column_id"`
		Index    *int   `json:"index"`
	}
	if err := decodeJSON(r, &payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if payload.ColumnID == "" {
		respondError(w, http.StatusBadRequest, "column_id is required")
		return
	}
	index := board.End
	if payload.Index != nil {
		index = *payload.Index
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.board.MoveTask(id, payload.ColumnID, index); err != nil {
		h.respondBoardError(w, err)
		return
	}
	task, err := h.board.Task(id)
	if err != nil {
		h.respondBoardError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, task)
}
