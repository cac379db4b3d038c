package models

import (
	"errors"
	"testing"
)

func TestBoardValidate(t *testing.T) {
	todo := Column{ID: "todo", Title: "To Do", Color: DefaultColor}
	done := Column{ID: "done", Title: "Done", Color: DefaultColor}

	tests := []struct {
		name  string
		board Board
		kind  error
	}{
		{
			name:  "valid board",
			board: Board{Columns: []Column{todo, done}, Tasks: []Task{{ID: "1", Title: "a", ColumnID: "todo"}}},
		},
		{
			name:  "duplicate column id",
			board: Board{Columns: []Column{todo, todo}},
			kind:  ErrValidation,
		},
		{
			name:  "duplicate task id",
			board: Board{Columns: []Column{todo}, Tasks: []Task{{ID: "1", Title: "a", ColumnID: "todo"}, {ID: "1", Title: "b", ColumnID: "todo"}}},
			kind:  ErrValidation,
		},
		{
			name:  "dangling column reference",
			board: Board{Columns: []Column{todo}, Tasks: []Task{{ID: "1", Title: "a", ColumnID: "gone"}}},
			kind:  ErrInvalidReference,
		},
		{
			name:  "column without color",
			board: Board{Columns: []Column{{ID: "x", Title: "X"}}},
			kind:  ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.board.Validate()
			if tt.kind == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.kind) {
				t.Fatalf("expected %v, got %v", tt.kind, err)
			}
		})
	}
}

func TestBoardTasksIn(t *testing.T) {
	b := Board{Tasks: []Task{
		{ID: "1", ColumnID: "a"},
		{ID: "2", ColumnID: "b"},
		{ID: "3", ColumnID: "a"},
	}}
	got := b.TasksIn("a")
	if len(got) != 2 || got[0].ID != "1" || got[1].ID != "3" {
		t.Fatalf("unexpected tasks %+v", got)
	}
}
