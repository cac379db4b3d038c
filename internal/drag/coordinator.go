// Package drag turns drag-and-drop gestures into board mutations.
//
// A Coordinator is fed three signals per gesture (start, zero or more
// overs, end) and decides which task or column moved where. It never
// touches entities directly; every change goes through the Board's
// operations. Like the board, it is meant to be driven by one goroutine.
package drag

import (
	"fmt"
	"slices"

	"github.com/sirupsen/logrus"

	"taskboard/internal/models"
)

// Kind tags the entity carried by a drag payload. Task and column ids are
// opaque strings from separate spaces, so the tag is the only classifier.
type Kind string

const (
	KindTask   Kind = "task"
	KindColumn Kind = "column"
)

// Valid reports whether k is a known tag.
func (k Kind) Valid() bool { return k == KindTask || k == KindColumn }

// Item is the {id, type} payload carried by drag signals.
type Item struct {
	ID   string `json:"id"`
	Kind Kind   `json:"type"`
}

// State is the coordinator's gesture state.
type State int

const (
	Idle State = iota
	DraggingTask
	DraggingColumn
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case DraggingTask:
		return "dragging_task"
	case DraggingColumn:
		return "dragging_column"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Policy decides when a task dragged over another task of its own column
// is spliced into that task's slot.
type Policy string

const (
	ReorderOnHover Policy = "hover"
	ReorderOnDrop  Policy = "drop"
)

// ParsePolicy parses a policy name.
func ParsePolicy(s string) (Policy, error) {
	switch p := Policy(s); p {
	case ReorderOnHover, ReorderOnDrop:
		return p, nil
	default:
		return "", fmt.Errorf("unknown same-column policy %q", s)
	}
}

// appendIndex asks Board.MoveTask to append.
const appendIndex = -1

// Board is the slice of the board store the coordinator reads and drives.
type Board interface {
	Task(id string) (models.Task, error)
	Column(id string) (models.Column, error)
	TasksByColumn(columnID string) []models.Task
	MoveTask(id, columnID string, index int) error
	ReorderColumns(activeID, overID string) bool
}

// Overlay is what the renderer draws under the pointer while dragging.
type Overlay struct {
	State  State          `json:"state"`
	Task   *models.Task   `json:"task,omitempty"`
	Column *models.Column `json:"column,omitempty"`
	Over   *Item          `json:"over,omitempty"`
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithPolicy sets the same-column reorder policy. The default is ReorderOnDrop.
func WithPolicy(p Policy) Option {
	return func(c *Coordinator) { c.policy = p }
}

// WithLogger sets the logger used for swallowed board failures.
func WithLogger(log logrus.FieldLogger) Option {
	return func(c *Coordinator) { c.log = log }
}

// Coordinator is the per-gesture state machine.
type Coordinator struct {
	board  Board
	policy Policy
	log    logrus.FieldLogger

	state  State
	task   *models.Task
	column *models.Column
	over   *Item
}

// New returns an idle coordinator driving b.
func New(b Board, opts ...Option) *Coordinator {
	c := &Coordinator{
		board:  b,
		policy: ReorderOnDrop,
		log:    logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the current gesture state.
func (c *Coordinator) State() State { return c.state }

// Overlay returns the entity captured at drag start and the last hover target.
func (c *Coordinator) Overlay() Overlay {
	o := Overlay{State: c.state}
	if c.task != nil {
		t := *c.task
		o.Task = &t
	}
	if c.column != nil {
		col := *c.column
		o.Column = &col
	}
	if c.over != nil {
		over := *c.over
		o.Over = &over
	}
	return o
}

func (c *Coordinator) reset() {
	c.state = Idle
	c.task = nil
	c.column = nil
	c.over = nil
}

func (c *Coordinator) draggedID() string {
	switch c.state {
	case DraggingTask:
		return c.task.ID
	case DraggingColumn:
		return c.column.ID
	default:
		return ""
	}
}

// OnDragStart picks up active. Payloads that do not resolve to a live
// entity of the tagged kind leave the coordinator idle. A start that
// arrives mid-gesture cancels the stale gesture first.
func (c *Coordinator) OnDragStart(active Item) {
	if c.state != Idle {
		c.log.WithFields(logrus.Fields{"dragged": c.draggedID(), "state": c.state}).
			Debug("drag start during active gesture, cancelling it")
		c.reset()
	}

	switch active.Kind {
	case KindTask:
		t, err := c.board.Task(active.ID)
		if err != nil {
			c.log.WithError(err).WithField("task", active.ID).Debug("drag start ignored")
			return
		}
		c.state, c.task = DraggingTask, &t
	case KindColumn:
		col, err := c.board.Column(active.ID)
		if err != nil {
			c.log.WithError(err).WithField("column", active.ID).Debug("drag start ignored")
			return
		}
		c.state, c.column = DraggingColumn, &col
	default:
		c.log.WithField("kind", active.Kind).Debug("drag start with unknown kind ignored")
	}
}

// OnDragOver reports the entity under the pointer; over is nil when the
// pointer is over nothing droppable. A dragged task is reassigned to the
// hovered column as soon as it crosses into it.
func (c *Coordinator) OnDragOver(active Item, over *Item) {
	if c.state == Idle || active.ID != c.draggedID() {
		return
	}
	if over == nil {
		c.over = nil
		return
	}
	if c.over != nil && *c.over == *over {
		return
	}
	target := *over
	c.over = &target

	if c.state == DraggingTask {
		c.reconcileTask(target, c.policy == ReorderOnHover)
	}
}

// OnDragEnd releases the gesture over target (nil when dropped on nothing)
// and returns to Idle. A column dropped on another live column takes that
// column's slot. A task has normally been placed during hover already; the
// drop only completes what hover deferred or never saw: with ReorderOnDrop
// a task still in its origin column takes the dropped-on task's slot.
func (c *Coordinator) OnDragEnd(active Item, over *Item) {
	defer c.reset()

	if c.state == Idle || active.ID != c.draggedID() || over == nil {
		return
	}

	switch c.state {
	case DraggingColumn:
		if over.Kind != KindColumn || over.ID == c.column.ID {
			return
		}
		if _, err := c.board.Column(over.ID); err != nil {
			c.log.WithError(err).WithField("column", c.column.ID).Debug("column drop ignored")
			return
		}
		c.board.ReorderColumns(c.column.ID, over.ID)
	case DraggingTask:
		deferred := c.policy == ReorderOnDrop && c.inOriginColumn()
		if deferred || c.over == nil || *c.over != *over {
			c.reconcileTask(*over, true)
		}
	}
}

// inOriginColumn reports whether the dragged task is still in the column
// it was picked up from.
func (c *Coordinator) inOriginColumn() bool {
	current, err := c.board.Task(c.task.ID)
	return err == nil && current.ColumnID == c.task.ColumnID
}

// Cancel abandons the current gesture without touching the board.
func (c *Coordinator) Cancel() {
	c.reset()
}

// reconcileTask places the dragged task relative to target. sameColumn
// enables the splice into a hovered task's slot within the task's own column.
func (c *Coordinator) reconcileTask(target Item, sameColumn bool) {
	current, err := c.board.Task(c.task.ID)
	if err != nil {
		c.log.WithError(err).WithField("task", c.task.ID).Debug("dragged task vanished")
		return
	}

	switch target.Kind {
	case KindColumn:
		if target.ID != current.ColumnID {
			c.move(current.ID, target.ID, appendIndex)
		}
	case KindTask:
		if target.ID == current.ID {
			return
		}
		hovered, err := c.board.Task(target.ID)
		if err != nil {
			c.log.WithError(err).WithField("task", target.ID).Debug("hover target vanished")
			return
		}
		if hovered.ColumnID != current.ColumnID {
			c.move(current.ID, hovered.ColumnID, appendIndex)
			return
		}
		if !sameColumn {
			return
		}
		idx := slices.IndexFunc(c.board.TasksByColumn(hovered.ColumnID), func(t models.Task) bool {
			return t.ID == hovered.ID
		})
		if idx >= 0 {
			c.move(current.ID, hovered.ColumnID, idx)
		}
	}
}

// move forwards to the board. Failures are logged and dropped: a failed
// speculative move must not abort the gesture.
func (c *Coordinator) move(taskID, columnID string, index int) {
	if err := c.board.MoveTask(taskID, columnID, index); err != nil {
		c.log.WithError(err).WithFields(logrus.Fields{
			"task":   taskID,
			"column": columnID,
			"index":  index,
		}).Debug("drag move rejected")
	}
}
