package board_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"taskboard/internal/board"
	"taskboard/internal/model"
)

func testBoard() model.Board {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	task := func(id string) model.Task {
		return model.Task{ID: id, Title: id, CreatedAt: now, UpdatedAt: now}
	}
	return model.Board{
		Columns: []model.Column{
			{ID: "todo", Title: "To Do", Tasks: []model.Task{task("A"), task("B"), task("C"), task("D")}},
			{ID: "doing", Title: "Doing", Tasks: []model.Task{task("E")}},
			{ID: "done", Title: "Done", Tasks: []model.Task{}},
		},
		LastUpdated: now,
	}
}

func titles(c *model.Column) []string {
	out := make([]string, len(c.Tasks))
	for i, t := range c.Tasks {
		out[i] = t.ID
	}
	return out
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestAddTask(t *testing.T) {
	now := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	s := board.NewStore(testBoard(), fixedClock(now))

	task, err := s.AddTask("done", model.TaskDraft{
		Title:    "ship it",
		Assignee: model.AssigneeRed,
		Tags:     []string{"release", "release"},
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, task.ID)
	assert.Equal(t, now, task.CreatedAt)
	assert.Equal(t, now, task.UpdatedAt)
	// duplicate tags are kept, insertion order is display order
	assert.Equal(t, []string{"release", "release"}, task.Tags)

	b := s.Board()
	assert.Equal(t, []string{task.ID}, titles(b.Column("done")))
	assert.Equal(t, now, b.LastUpdated)
	assert.NoError(t, b.CheckIntegrity())
}

func TestAddTaskDefaultTitle(t *testing.T) {
	s := board.NewStore(testBoard(), nil)

	task, err := s.AddTask("todo", model.TaskDraft{Title: "   "})

	assert.NoError(t, err)
	assert.Equal(t, board.DefaultTitle, task.Title)
}

func TestAddTaskUnknownColumn(t *testing.T) {
	s := board.NewStore(testBoard(), nil)
	before := s.Board()

	_, err := s.AddTask("nope", model.TaskDraft{Title: "x"})

	assert.ErrorIs(t, err, board.ErrColumnNotFound)
	assert.Equal(t, before, s.Board())
}

func TestEditTask(t *testing.T) {
	now := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	s := board.NewStore(testBoard(), fixedClock(now))

	title := "  renamed  "
	priority := model.PriorityHigh
	err := s.EditTask("B", model.TaskPatch{Title: &title, Priority: &priority})

	assert.NoError(t, err)
	b := s.Board()
	task, columnID := b.FindTask("B")
	assert.Equal(t, "todo", columnID)
	assert.Equal(t, "renamed", task.Title)
	assert.Equal(t, model.PriorityHigh, task.Priority)
	assert.Equal(t, now, task.UpdatedAt)
}

func TestEditTaskEmptyTitleRejected(t *testing.T) {
	s := board.NewStore(testBoard(), nil)
	before := s.Board()

	title := "   "
	err := s.EditTask("B", model.TaskPatch{Title: &title})

	assert.ErrorIs(t, err, board.ErrEmptyTitle)
	assert.Equal(t, before, s.Board())
}

func TestDeleteTask(t *testing.T) {
	s := board.NewStore(testBoard(), nil)

	assert.NoError(t, s.DeleteTask("C"))

	b := s.Board()
	assert.Equal(t, []string{"A", "B", "D"}, titles(b.Column("todo")))
	task, _ := b.FindTask("C")
	assert.Nil(t, task)
	assert.NoError(t, b.CheckIntegrity())
}

func TestDeleteTaskNotFound(t *testing.T) {
	s := board.NewStore(testBoard(), nil)
	before := s.Board()

	assert.ErrorIs(t, s.DeleteTask("nope"), board.ErrTaskNotFound)
	assert.Equal(t, before, s.Board())
}

func TestReorderWithinColumn(t *testing.T) {
	s := board.NewStore(testBoard(), nil)

	moved, err := s.ReorderWithinColumn("todo", 0, 2)

	assert.NoError(t, err)
	assert.True(t, moved)
	// array-move semantics, not a swap
	b := s.Board()
	assert.Equal(t, []string{"B", "C", "A", "D"}, titles(b.Column("todo")))
}

func TestReorderWithinColumnSameIndexNoop(t *testing.T) {
	s := board.NewStore(testBoard(), nil)
	before := s.Board()

	moved, err := s.ReorderWithinColumn("todo", 1, 1)

	assert.NoError(t, err)
	assert.False(t, moved)
	assert.Equal(t, before, s.Board())
}

func TestReorderPreservesMultiset(t *testing.T) {
	for from := 0; from < 4; from++ {
		for to := 0; to < 4; to++ {
			s := board.NewStore(testBoard(), nil)
			_, err := s.ReorderWithinColumn("todo", from, to)
			assert.NoError(t, err)
			b := s.Board()
			got := titles(b.Column("todo"))
			assert.ElementsMatch(t, []string{"A", "B", "C", "D"}, got, "move %d->%d", from, to)
		}
	}
}

func TestMoveTaskCrossColumn(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	later := start.Add(time.Hour)
	s := board.NewStore(testBoard(), fixedClock(later))

	moved, err := s.MoveTask("B", "todo", "doing", 0)

	assert.NoError(t, err)
	assert.True(t, moved)

	b := s.Board()
	assert.Equal(t, []string{"A", "C", "D"}, titles(b.Column("todo")))
	assert.Equal(t, []string{"B", "E"}, titles(b.Column("doing")))

	task, _ := b.FindTask("B")
	assert.True(t, task.UpdatedAt.After(start))
	// identity is independent of placement
	assert.Equal(t, "B", task.ID)
	assert.NoError(t, b.CheckIntegrity())
}

func TestMoveTaskIndexClamped(t *testing.T) {
	s := board.NewStore(testBoard(), nil)

	moved, err := s.MoveTask("A", "todo", "doing", 99)
	assert.NoError(t, err)
	assert.True(t, moved)
	b := s.Board()
	assert.Equal(t, []string{"E", "A"}, titles(b.Column("doing")))

	moved, err = s.MoveTask("B", "todo", "done", -3)
	assert.NoError(t, err)
	assert.True(t, moved)
	b = s.Board()
	assert.Equal(t, []string{"B"}, titles(b.Column("done")))
}

func TestMoveTaskSameColumnDegeneratesToReorder(t *testing.T) {
	s := board.NewStore(testBoard(), nil)

	moved, err := s.MoveTask("A", "todo", "todo", 2)

	assert.NoError(t, err)
	assert.True(t, moved)
	b := s.Board()
	assert.Equal(t, []string{"B", "C", "A", "D"}, titles(b.Column("todo")))
}

func TestMoveTaskSamePositionNoop(t *testing.T) {
	s := board.NewStore(testBoard(), nil)
	before := s.Board()

	moved, err := s.MoveTask("B", "todo", "todo", 1)

	assert.NoError(t, err)
	assert.False(t, moved)
	assert.Equal(t, before, s.Board())
}

func TestMoveTaskUnknownColumn(t *testing.T) {
	s := board.NewStore(testBoard(), nil)
	before := s.Board()

	_, err := s.MoveTask("B", "todo", "nope", 0)

	assert.ErrorIs(t, err, board.ErrColumnNotFound)
	assert.Equal(t, before, s.Board())
}

func TestLastUpdatedMonotone(t *testing.T) {
	now := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	current := now
	s := board.NewStore(testBoard(), func() time.Time { return current })

	assert.NoError(t, s.DeleteTask("A"))
	assert.Equal(t, now, s.Board().LastUpdated)

	// Clock stepping backwards must not move lastUpdated back.
	current = now.Add(-time.Hour)
	assert.NoError(t, s.DeleteTask("B"))
	assert.Equal(t, now, s.Board().LastUpdated)
}

func TestOperationsDoNotMutateInput(t *testing.T) {
	b := testBoard()
	snapshot := b.Clone()
	now := time.Now()

	_, _, _ = board.AddTask(b, now, "todo", model.TaskDraft{Title: "x"})
	_, _ = board.DeleteTask(b, now, "A")
	_, _, _ = board.MoveTask(b, now, "A", "todo", "doing", 0)
	_, _, _ = board.ReorderWithinColumn(b, now, "todo", 0, 3)

	assert.Equal(t, snapshot, b)
}
