package main

import (
	"context"
	"path/filepath"
	"testing"

	"taskboard/internal/config"
	"taskboard/internal/store"
)

func TestLoadBoard_MemorySeeds(t *testing.T) {
	b, err := loadBoard(context.Background(), nil, true)
	if err != nil {
		t.Fatalf("loadBoard failed: %v", err)
	}
	if len(b.Columns()) != 3 || b.TaskCount() != 5 {
		t.Errorf("expected seed board, got %d columns %d tasks", len(b.Columns()), b.TaskCount())
	}

	b, err = loadBoard(context.Background(), nil, false)
	if err != nil {
		t.Fatalf("loadBoard failed: %v", err)
	}
	if len(b.Columns()) != 0 {
		t.Errorf("expected empty board, got %d columns", len(b.Columns()))
	}
}

func TestLoadBoard_RestoresSaved(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "board.db")

	s, err := openStore(ctx, config.StoreConfig{Driver: config.DriverSQLite, SQLitePath: path})
	if err != nil {
		t.Fatalf("openStore failed: %v", err)
	}
	defer s.Close()

	first, err := loadBoard(ctx, s, true)
	if err != nil {
		t.Fatalf("loadBoard failed: %v", err)
	}
	first.AddHook(store.NewSyncer(s, 0, newLogger(config.LogConfig{Level: "error"})).Hook)
	if err := first.DeleteColumn("done"); err != nil {
		t.Fatalf("DeleteColumn failed: %v", err)
	}

	second, err := loadBoard(ctx, s, true)
	if err != nil {
		t.Fatalf("loadBoard failed: %v", err)
	}
	if len(second.Columns()) != 2 || second.TaskCount() != 4 {
		t.Errorf("expected saved board, got %d columns %d tasks", len(second.Columns()), second.TaskCount())
	}
}

func TestOpenStore_Memory(t *testing.T) {
	s, err := openStore(context.Background(), config.StoreConfig{Driver: config.DriverMemory})
	if err != nil || s != nil {
		t.Fatalf("expected no store for memory driver, got %v %v", s, err)
	}
}
