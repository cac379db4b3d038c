package models

// Board is a read-only snapshot of every column and task. Columns are in
// display order and Tasks are grouped by column in column order, each group
// in its own display order.
type Board struct {
	Columns []Column `json:"columns"`
	Tasks   []Task   `json:"tasks"`
}

// TasksIn returns the tasks of columnID in display order.
func (b *Board) TasksIn(columnID string) []Task {
	var out []Task
	for _, t := range b.Tasks {
		if t.ColumnID == columnID {
			out = append(out, t)
		}
	}
	return out
}

// Validate checks the snapshot invariants: unique ids, valid entities and
// no task referencing a missing column. It is used on snapshots loaded
// from outside the process.
func (b *Board) Validate() error {
	columns := make(map[string]struct{}, len(b.Columns))
	for i := range b.Columns {
		c := &b.Columns[i]
		if c.ID == "" {
			return validationf("column %d has no id", i)
		}
		if _, dup := columns[c.ID]; dup {
			return validationf("duplicate column id %q", c.ID)
		}
		if err := c.Validate(); err != nil {
			return err
		}
		columns[c.ID] = struct{}{}
	}

	tasks := make(map[string]struct{}, len(b.Tasks))
	for i := range b.Tasks {
		t := &b.Tasks[i]
		if t.ID == "" {
			return validationf("task %d has no id", i)
		}
		if _, dup := tasks[t.ID]; dup {
			return validationf("duplicate task id %q", t.ID)
		}
		if err := t.Validate(); err != nil {
			return err
		}
		if _, ok := columns[t.ColumnID]; !ok {
			return InvalidReferencef("task %q references unknown column %q", t.ID, t.ColumnID)
		}
		tasks[t.ID] = struct{}{}
	}
	return nil
}
