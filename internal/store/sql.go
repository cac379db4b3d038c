package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"taskboard/internal/models"
)

// sqlStore is the database/sql implementation shared by the SQLite and
// Postgres stores. Queries are written with ? placeholders and rebound
// for drivers that number them.
type sqlStore struct {
	db       *sql.DB
	numbered bool
}

func (s *sqlStore) bind(query string) string {
	if !s.numbered {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (s *sqlStore) migrate() error {
	return runMigrations(s.db, s.bind)
}

// Close closes the database connection.
func (s *sqlStore) Close() error {
	return s.db.Close()
}

// LoadBoard reads the saved board in display order.
func (s *sqlStore) LoadBoard(ctx context.Context) (*models.Board, error) {
	var savedAt time.Time
	err := s.db.QueryRowContext(ctx, `SELECT saved_at FROM board_meta WHERE id = 1`).Scan(&savedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read board meta: %w", err)
	}

	columns, err := s.loadColumns(ctx)
	if err != nil {
		return nil, err
	}
	tasks, err := s.loadTasks(ctx)
	if err != nil {
		return nil, err
	}

	return &models.Board{Columns: columns, Tasks: tasks}, nil
}

func (s *sqlStore) loadColumns(ctx context.Context) ([]models.Column, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, color
		FROM board_columns
		ORDER BY sort_order
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list columns: %w", err)
	}
	defer rows.Close()

	columns := []models.Column{}
	for rows.Next() {
		var c models.Column
		var color string
		if err := rows.Scan(&c.ID, &c.Title, &color); err != nil {
			return nil, fmt.Errorf("failed to scan column: %w", err)
		}
		if c.Color, err = models.ParseColor(color); err != nil {
			return nil, fmt.Errorf("column %s: %w", c.ID, err)
		}
		columns = append(columns, c)
	}

	return columns, rows.Err()
}

func (s *sqlStore) loadTasks(ctx context.Context) ([]models.Task, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT t.id, t.column_id, t.title, t.description, t.priority, t.created_at
		FROM board_tasks t
		JOIN board_columns c ON c.id = t.column_id
		ORDER BY c.sort_order, t.sort_order
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		var t models.Task
		var priority string
		if err := rows.Scan(&t.ID, &t.ColumnID, &t.Title, &t.Description, &priority, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		t.Priority = models.Priority(priority)
		tasks = append(tasks, t)
	}

	return tasks, rows.Err()
}

// SaveBoard replaces every saved row with the snapshot in one transaction.
func (s *sqlStore) SaveBoard(ctx context.Context, b models.Board) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"board_tasks", "board_columns", "board_meta"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	colStmt, err := tx.PrepareContext(ctx, s.bind(`
		INSERT INTO board_columns (id, title, color, sort_order)
		VALUES (?, ?, ?, ?)
	`))
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer colStmt.Close()

	for i, c := range b.Columns {
		if _, err := colStmt.ExecContext(ctx, c.ID, c.Title, c.Color.String(), i+1); err != nil {
			return fmt.Errorf("failed to save column %s: %w", c.ID, err)
		}
	}

	taskStmt, err := tx.PrepareContext(ctx, s.bind(`
		INSERT INTO board_tasks (id, column_id, title, description, priority, sort_order, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`))
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer taskStmt.Close()

	positions := make(map[string]int, len(b.Columns))
	for _, t := range b.Tasks {
		positions[t.ColumnID]++
		_, err := taskStmt.ExecContext(ctx,
			t.ID, t.ColumnID, t.Title, t.Description, string(t.Priority), positions[t.ColumnID], t.CreatedAt.UTC())
		if err != nil {
			return fmt.Errorf("failed to save task %s: %w", t.ID, err)
		}
	}

	if _, err := tx.ExecContext(ctx, s.bind(`INSERT INTO board_meta (id, saved_at) VALUES (1, ?)`), time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to save board meta: %w", err)
	}

	return tx.Commit()
}
