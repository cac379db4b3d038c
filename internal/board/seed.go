package board

import (
	"time"

	"taskboard/internal/models"
)

func mustPreset(token string) models.Color {
	c, err := models.Preset(token)
	if err != nil {
		panic(err)
	}
	return c
}

// SeedColumns are the starter columns of a fresh board.
var SeedColumns = []models.Column{
	{ID: "todo", Title: "To Do", Color: mustPreset("todo")},
	{ID: "in-progress", Title: "In Progress", Color: mustPreset("progress")},
	{ID: "done", Title: "Done", Color: mustPreset("done")},
}

var seedTasks = []models.Task{
	{ID: "1", Title: "Design system updates", Description: "Update color palette and typography", ColumnID: "todo", Priority: models.PriorityHigh},
	{ID: "2", Title: "User authentication flow", Description: "Implement login and registration", ColumnID: "todo", Priority: models.PriorityMedium},
	{ID: "3", Title: "API integration", Description: "Connect to backend services", ColumnID: "in-progress", Priority: models.PriorityHigh},
	{ID: "4", Title: "Dashboard layout", Description: "Create responsive grid layout", ColumnID: "in-progress", Priority: models.PriorityLow},
	{ID: "5", Title: "Project setup", Description: "Initial repository configuration", ColumnID: "done", Priority: models.PriorityMedium},
}

// Seed returns the starter board snapshot with every task created at now.
func Seed(now time.Time) models.Board {
	snap := models.Board{
		Columns: append([]models.Column(nil), SeedColumns...),
		Tasks:   make([]models.Task, len(seedTasks)),
	}
	for i, t := range seedTasks {
		t.CreatedAt = now
		snap.Tasks[i] = t
	}
	return snap
}

// Seeded returns a board holding the starter columns and tasks.
func Seeded(opts ...Option) *Board {
	b, err := FromSnapshot(Seed(New(opts...).now()), opts...)
	if err != nil {
		panic(err)
	}
	return b
}
