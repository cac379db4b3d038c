package store

import (
	"context"
	"errors"

	"taskboard/internal/models"
)

// ErrEmpty is returned by LoadBoard when no board has been saved yet.
var ErrEmpty = errors.New("no saved board")

// Store defines the interface for board persistence. Implementations save
// and load whole snapshots; the in-memory board stays the single source of
// truth while the process runs.
type Store interface {
	// LoadBoard returns the last saved snapshot or ErrEmpty.
	LoadBoard(ctx context.Context) (*models.Board, error)
	// SaveBoard replaces the saved snapshot atomically.
	SaveBoard(ctx context.Context, b models.Board) error

	// Lifecycle
	Close() error
}
