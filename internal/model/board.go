package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Board is the root aggregate persisted as one document.
type Board struct {
	Columns     []Column  `json:"columns"`
	LastUpdated time.Time `json:"lastUpdated"`
}

func (b Board) Clone() Board {
	out := Board{Columns: make([]Column, len(b.Columns)), LastUpdated: b.LastUpdated}
	for i, c := range b.Columns {
		out.Columns[i] = c.Clone()
	}
	return out
}

// Column returns the column with the given id, or nil.
func (b *Board) Column(columnID string) *Column {
	for i := range b.Columns {
		if b.Columns[i].ID == columnID {
			return &b.Columns[i]
		}
	}
	return nil
}

// FindTask returns the task with the given id and its column id.
func (b *Board) FindTask(taskID string) (*Task, string) {
	for i := range b.Columns {
		for j := range b.Columns[i].Tasks {
			if b.Columns[i].Tasks[j].ID == taskID {
				return &b.Columns[i].Tasks[j], b.Columns[i].ID
			}
		}
	}
	return nil, ""
}

// ColumnOf returns the column containing the task, or nil.
func (b *Board) ColumnOf(taskID string) *Column {
	for i := range b.Columns {
		if b.Columns[i].IndexOf(taskID) >= 0 {
			return &b.Columns[i]
		}
	}
	return nil
}

func (b Board) TaskCount() int {
	n := 0
	for _, c := range b.Columns {
		n += len(c.Tasks)
	}
	return n
}

// CheckIntegrity verifies that every task id appears in exactly one column
// at exactly one position and that column ids are unique.
func (b Board) CheckIntegrity() error {
	columns := make(map[string]struct{}, len(b.Columns))
	tasks := make(map[string]string)
	for _, c := range b.Columns {
		if _, dup := columns[c.ID]; dup {
			return fmt.Errorf("duplicate column id %q", c.ID)
		}
		columns[c.ID] = struct{}{}
		for _, t := range c.Tasks {
			if owner, dup := tasks[t.ID]; dup {
				return fmt.Errorf("task %q appears in columns %q and %q", t.ID, owner, c.ID)
			}
			tasks[t.ID] = c.ID
		}
	}
	return nil
}

// Normalize coerces invalid enum and range values across the board.
// It is applied at the persistence boundary on load.
func (b *Board) Normalize() int {
	coerced := 0
	for i := range b.Columns {
		for j := range b.Columns[i].Tasks {
			if b.Columns[i].Tasks[j].normalize() {
				coerced++
			}
		}
	}
	return coerced
}

// NewTaskID returns a fresh opaque task identifier, unique for the process
// lifetime and never reused after deletion.
func NewTaskID() string {
	return "task-" + uuid.NewString()
}

// DefaultBoard synthesizes the seed board used when no document can be
// loaded from any backend.
func DefaultBoard(now time.Time) Board {
	seed := func(title string, assignee Assignee, priority Priority, tags ...string) Task {
		return Task{
			ID:        NewTaskID(),
			Title:     title,
			Assignee:  assignee,
			Priority:  priority,
			Tags:      tags,
			CreatedAt: now,
			UpdatedAt: now,
		}
	}
	return Board{
		Columns: []Column{
			{
				ID:    "backlog",
				Title: "📥 Backlog",
				Tasks: []Task{
					seed("Set up authentication", AssigneeRed, PriorityHigh, "auth", "mvp"),
				},
			},
			{
				ID:    "priority",
				Title: "🎯 Priority",
				Tasks: []Task{},
			},
			{
				ID:    "active",
				Title: "⚡ Active",
				Tasks: []Task{
					seed("Build board UI", AssigneeRed, PriorityHigh, "ui", "mvp"),
				},
			},
			{
				ID:    "done",
				Title: "✅ Done",
				Tasks: []Task{},
			},
		},
		LastUpdated: now,
	}
}
