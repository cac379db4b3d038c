package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"taskboard/internal/board"
	"taskboard/internal/drag"
	"taskboard/internal/events"
	"taskboard/internal/models"
)

// Handlers holds the HTTP handlers and their dependencies. The board and
// the drag coordinator are single writers, so every request that touches
// them holds mu.
type Handlers struct {
	mu    sync.Mutex
	board *board.Board
	drag  *drag.Coordinator
	bus   *events.Bus
	log   logrus.FieldLogger
}

// New creates a new Handlers instance. bus may be nil, which disables the
// event stream.
func New(b *board.Board, d *drag.Coordinator, bus *events.Bus, log logrus.FieldLogger) *Handlers {
	return &Handlers{
		board: b,
		drag:  d,
		bus:   bus,
		log:   log,
	}
}

// Routes mounts every endpoint on a new router.
func (h *Handlers) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(h.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))

	r.Get("/healthz", h.Health)

	r.Route("/api", func(r chi.Router) {
		r.Get("/board", h.GetBoard)
		r.Get("/palette", h.GetPalette)

		r.Post("/columns", h.CreateColumn)
		r.Post("/columns/reorder", h.ReorderColumns)
		r.Patch("/columns/{id}", h.UpdateColumn)
		r.Delete("/columns/{id}", h.DeleteColumn)
		r.Get("/columns/{id}/tasks", h.ListColumnTasks)
		r.Post("/columns/{id}/tasks", h.CreateTask)

		r.Get("/tasks/{id}", h.GetTask)
		r.Patch("/tasks/{id}", h.UpdateTask)
		r.Delete("/tasks/{id}", h.DeleteTask)
		r.Post("/tasks/{id}/move", h.MoveTask)

		r.Get("/drag", h.DragOverlay)
		r.Post("/drag/start", h.DragStart)
		r.Post("/drag/over", h.DragOver)
		r.Post("/drag/end", h.DragEnd)
		r.Post("/drag/cancel", h.DragCancel)

		if h.bus != nil {
			r.Get("/events", h.bus.ServeSSE)
		}
	})

	return r
}

// Health reports liveness.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handlers) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		h.log.WithFields(logrus.Fields{
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     ww.Status(),
			"bytes":      ww.BytesWritten(),
			"total_ms":   float64(time.Since(start)) / float64(time.Millisecond),
			"request_id": middleware.GetReqID(r.Context()),
		}).Info("http.request")
	})
}

// decodeJSON reads the request body into v, rejecting unknown fields.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func respondJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// respondError sends an error response.
func respondError(w http.ResponseWriter, code int, message string) {
	respondJSON(w, code, map[string]string{"error": message})
}

// respondBoardError maps a board error kind to its status code.
func (h *Handlers) respondBoardError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrValidation):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, models.ErrNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, models.ErrInvalidReference):
		respondError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		h.respondServerError(w, err)
	}
}

func (h *Handlers) respondServerError(w http.ResponseWriter, err error) {
	h.log.WithError(err).Error("internal server error")
	respondError(w, http.StatusInternalServerError, "internal server error")
}
