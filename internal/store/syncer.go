package store

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"taskboard/internal/board"
	"taskboard/internal/models"
)

// Syncer saves the board after every mutation. Use Hook as a board.Hook.
type Syncer struct {
	store   Store
	timeout time.Duration
	log     logrus.FieldLogger
}

// NewSyncer returns a Syncer writing to s. A non-positive timeout means
// saves are not bounded.
func NewSyncer(s Store, timeout time.Duration, log logrus.FieldLogger) *Syncer {
	return &Syncer{store: s, timeout: timeout, log: log}
}

// Hook saves snap. The in-memory mutation has already happened, so a
// failed save is logged and the next mutation tries again with a newer
// snapshot.
func (s *Syncer) Hook(op board.Op, snap models.Board) {
	ctx := context.Background()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	if err := s.store.SaveBoard(ctx, snap); err != nil {
		s.log.WithError(err).WithField("op", op).Error("save board")
		return
	}
	s.log.WithFields(logrus.Fields{
		"op":      op,
		"columns": len(snap.Columns),
		"tasks":   len(snap.Tasks),
		"dur_ms":  time.Since(start).Milliseconds(),
	}).Debug("board saved")
}
