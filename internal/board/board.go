// Package board holds the in-memory task board: the ordered column
// sequence, the tasks and their per-column order.
//
// A Board is not safe for concurrent use. It expects a single writer, the
// way a UI thread drives it; callers that serve several goroutines must
// serialize access themselves.
package board

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"taskboard/internal/models"
)

// End, passed as an index to MoveTask, appends the task to the column.
const End = -1

// Op names a mutation for hooks.
type Op string

const (
	OpTaskAdded        Op = "task.added"
	OpTaskUpdated      Op = "task.updated"
	OpTaskDeleted      Op = "task.deleted"
	OpTaskMoved        Op = "task.moved"
	OpColumnAdded      Op = "column.added"
	OpColumnUpdated    Op = "column.updated"
	OpColumnDeleted    Op = "column.deleted"
	OpColumnsReordered Op = "columns.reordered"
)

// Hook runs after every successful mutation with a snapshot of the
// resulting board.
type Hook func(op Op, snap models.Board)

// Option configures a Board.
type Option func(*Board)

// WithIDFunc replaces the id generator. Generated ids must not collide
// with live ids; collisions are retried.
func WithIDFunc(fn func() string) Option {
	return func(b *Board) { b.newID = fn }
}

// WithClock replaces time.Now for task creation timestamps.
func WithClock(fn func() time.Time) Option {
	return func(b *Board) { b.now = fn }
}

// WithHook registers a mutation hook. Hooks run in registration order.
func WithHook(h Hook) Option {
	return func(b *Board) { b.hooks = append(b.hooks, h) }
}

// Board owns every column and task.
type Board struct {
	columns []models.Column
	tasks   map[string]*models.Task
	order   map[string][]string

	newID func() string
	now   func() time.Time
	hooks []Hook
}

// New returns an empty board.
func New(opts ...Option) *Board {
	b := &Board{
		tasks: make(map[string]*models.Task),
		order: make(map[string][]string),
		newID: uuid.NewString,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// FromSnapshot rebuilds a board from a previously taken snapshot.
func FromSnapshot(snap models.Board, opts ...Option) (*Board, error) {
	if err := snap.Validate(); err != nil {
		return nil, err
	}
	b := New(opts...)
	for _, c := range snap.Columns {
		b.columns = append(b.columns, c)
		b.order[c.ID] = nil
	}
	for _, t := range snap.Tasks {
		task := t
		b.tasks[t.ID] = &task
		b.order[t.ColumnID] = append(b.order[t.ColumnID], t.ID)
	}
	return b, nil
}

// AddHook registers a hook after construction.
func (b *Board) AddHook(h Hook) {
	b.hooks = append(b.hooks, h)
}

func (b *Board) notify(op Op) {
	if len(b.hooks) == 0 {
		return
	}
	snap := b.Snapshot()
	for _, h := range b.hooks {
		h(op, snap)
	}
}

func (b *Board) nextID(taken func(string) bool) string {
	for {
		id := b.newID()
		if id != "" && !taken(id) {
			return id
		}
	}
}

func (b *Board) columnIndex(id string) int {
	return slices.IndexFunc(b.columns, func(c models.Column) bool { return c.ID == id })
}

// Snapshot returns a copy of the whole board.
func (b *Board) Snapshot() models.Board {
	snap := models.Board{
		Columns: slices.Clone(b.columns),
		Tasks:   make([]models.Task, 0, len(b.tasks)),
	}
	if snap.Columns == nil {
		snap.Columns = []models.Column{}
	}
	for _, c := range b.columns {
		for _, id := range b.order[c.ID] {
			snap.Tasks = append(snap.Tasks, *b.tasks[id])
		}
	}
	return snap
}

// Task returns a copy of the task with the given id.
func (b *Board) Task(id string) (models.Task, error) {
	t, ok := b.tasks[id]
	if !ok {
		return models.Task{}, models.NotFoundf("task %q not found", id)
	}
	return *t, nil
}

// TaskCount returns the number of live tasks.
func (b *Board) TaskCount() int { return len(b.tasks) }

// TasksByColumn returns the tasks of a column in display order. An unknown
// column has no tasks.
func (b *Board) TasksByColumn(columnID string) []models.Task {
	ids := b.order[columnID]
	out := make([]models.Task, 0, len(ids))
	for _, id := range ids {
		out = append(out, *b.tasks[id])
	}
	return out
}

// AddTask creates a task at the end of columnID.
func (b *Board) AddTask(title, columnID string) (models.Task, error) {
	if _, ok := b.order[columnID]; !ok {
		return models.Task{}, models.InvalidReferencef("column %q does not exist", columnID)
	}
	t := models.Task{
		Title:    strings.TrimSpace(title),
		ColumnID: columnID,
	}
	if err := t.Validate(); err != nil {
		return models.Task{}, err
	}

	t.ID = b.nextID(func(id string) bool { _, ok := b.tasks[id]; return ok })
	t.CreatedAt = b.now()
	b.tasks[t.ID] = &t
	b.order[columnID] = append(b.order[columnID], t.ID)

	b.notify(OpTaskAdded)
	return t, nil
}

// UpdateTask applies a partial update to a task.
func (b *Board) UpdateTask(id string, u models.TaskUpdate) error {
	t, ok := b.tasks[id]
	if !ok {
		return models.NotFoundf("task %q not found", id)
	}
	if err := u.Validate(); err != nil {
		return err
	}
	u.Apply(t)
	b.notify(OpTaskUpdated)
	return nil
}

// DeleteTask removes a task.
func (b *Board) DeleteTask(id string) error {
	t, ok := b.tasks[id]
	if !ok {
		return models.NotFoundf("task %q not found", id)
	}
	col := t.ColumnID
	b.order[col] = slices.DeleteFunc(b.order[col], func(v string) bool { return v == id })
	delete(b.tasks, id)
	b.notify(OpTaskDeleted)
	return nil
}

// MoveTask places a task in columnID at index, counted among the column's
// other tasks. A negative index (End) appends; an index past the end is
// clamped. Moving within the task's own column is a pure reorder.
func (b *Board) MoveTask(id, columnID string, index int) error {
	t, ok := b.tasks[id]
	if !ok {
		return models.NotFoundf("task %q not found", id)
	}
	if _, ok := b.order[columnID]; !ok {
		return models.InvalidReferencef("column %q does not exist", columnID)
	}

	src := t.ColumnID
	from := slices.Index(b.order[src], id)
	b.order[src] = slices.Delete(b.order[src], from, from+1)

	dst := b.order[columnID]
	if index < 0 || index > len(dst) {
		index = len(dst)
	}
	b.order[columnID] = slices.Insert(dst, index, id)
	t.ColumnID = columnID

	if src == columnID && from == index {
		return nil
	}
	b.notify(OpTaskMoved)
	return nil
}

// Column returns a copy of the column with the given id.
func (b *Board) Column(id string) (models.Column, error) {
	i := b.columnIndex(id)
	if i < 0 {
		return models.Column{}, models.NotFoundf("column %q not found", id)
	}
	return b.columns[i], nil
}

// Columns returns the columns in display order.
func (b *Board) Columns() []models.Column {
	return slices.Clone(b.columns)
}

// AddColumn appends a column. An empty color selects models.DefaultColor.
func (b *Board) AddColumn(title, color string) (models.Column, error) {
	c := models.Column{Title: strings.TrimSpace(title), Color: models.DefaultColor}
	if color != "" {
		parsed, err := models.ParseColor(color)
		if err != nil {
			return models.Column{}, err
		}
		c.Color = parsed
	}
	if err := c.Validate(); err != nil {
		return models.Column{}, err
	}

	c.ID = b.nextID(func(id string) bool { _, ok := b.order[id]; return ok })
	b.columns = append(b.columns, c)
	b.order[c.ID] = nil

	b.notify(OpColumnAdded)
	return c, nil
}

// UpdateColumn applies a partial update to a column. A malformed color
// fails validation and leaves the stored value unchanged.
func (b *Board) UpdateColumn(id string, u models.ColumnUpdate) error {
	i := b.columnIndex(id)
	if i < 0 {
		return models.NotFoundf("column %q not found", id)
	}
	color, err := u.Resolve()
	if err != nil {
		return err
	}
	u.Apply(&b.columns[i], color)
	b.notify(OpColumnUpdated)
	return nil
}

// DeleteColumn removes a column together with every task in it.
func (b *Board) DeleteColumn(id string) error {
	i := b.columnIndex(id)
	if i < 0 {
		return models.NotFoundf("column %q not found", id)
	}

	b.columns = slices.Delete(b.columns, i, i+1)
	for _, taskID := range b.order[id] {
		delete(b.tasks, taskID)
	}
	delete(b.order, id)

	b.notify(OpColumnDeleted)
	return nil
}

// ReorderColumns takes activeID out of the column order and reinserts it
// at overID's position; the columns in between shift by one. It reports
// whether the order changed. Unknown ids and activeID == overID are no-ops.
func (b *Board) ReorderColumns(activeID, overID string) bool {
	if activeID == overID {
		return false
	}
	from, to := b.columnIndex(activeID), b.columnIndex(overID)
	if from < 0 || to < 0 {
		return false
	}

	c := b.columns[from]
	b.columns = slices.Delete(b.columns, from, from+1)
	b.columns = slices.Insert(b.columns, to, c)

	b.notify(OpColumnsReordered)
	return true
}
