package drag_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"taskboard/internal/drag"
	"taskboard/internal/model"
)

func testBoard() model.Board {
	task := func(id string) model.Task { return model.Task{ID: id, Title: id} }
	return model.Board{
		Columns: []model.Column{
			{ID: "todo", Title: "To Do", Tasks: []model.Task{task("A"), task("B"), task("C")}},
			{ID: "done", Title: "Done", Tasks: []model.Task{task("X")}},
			{ID: "empty", Title: "Empty", Tasks: []model.Task{}},
		},
		LastUpdated: time.Now(),
	}
}

func TestResolveDropOverTask(t *testing.T) {
	drop, ok := drag.ResolveDrop(testBoard(), "A", "X")

	assert.True(t, ok)
	assert.Equal(t, "todo", drop.SourceColumnID)
	assert.Equal(t, "done", drop.DestColumnID)
	// the drop takes the over-task's current position
	assert.Equal(t, 0, drop.Index)
}

func TestResolveDropOverColumnAppends(t *testing.T) {
	drop, ok := drag.ResolveDrop(testBoard(), "A", "done")

	assert.True(t, ok)
	assert.Equal(t, "done", drop.DestColumnID)
	assert.Equal(t, 1, drop.Index)
}

func TestResolveDropOverEmptyColumn(t *testing.T) {
	drop, ok := drag.ResolveDrop(testBoard(), "A", "empty")

	assert.True(t, ok)
	assert.Equal(t, "empty", drop.DestColumnID)
	assert.Equal(t, 0, drop.Index)
}

func TestResolveDropColumnIDTakesPrecedence(t *testing.T) {
	// A board where a task id collides with a column id; the column wins.
	b := testBoard()
	b.Columns[0].Tasks[1].ID = "done"

	drop, ok := drag.ResolveDrop(b, "A", "done")

	assert.True(t, ok)
	assert.Equal(t, "done", drop.DestColumnID)
	assert.Equal(t, 1, drop.Index)
}

func TestResolveDropNothingUnderPointer(t *testing.T) {
	_, ok := drag.ResolveDrop(testBoard(), "A", "")
	assert.False(t, ok)

	_, ok = drag.ResolveDrop(testBoard(), "A", "nonexistent")
	assert.False(t, ok)
}

func TestResolveDropUnknownActiveTask(t *testing.T) {
	_, ok := drag.ResolveDrop(testBoard(), "ghost", "done")
	assert.False(t, ok)
}

func TestGestureActivationThreshold(t *testing.T) {
	g := drag.NewGesture(5)

	assert.NoError(t, g.Start("A"))
	assert.Equal(t, drag.StatePressed, g.State())

	// 3px of travel is a click in the making, not a drag
	assert.Equal(t, drag.StatePressed, g.Move(3, 0))

	// cumulative travel past the threshold activates the drag
	assert.Equal(t, drag.StateDragging, g.Move(0, 4))

	taskID, dragging := g.End()
	assert.Equal(t, "A", taskID)
	assert.True(t, dragging)
	assert.Equal(t, drag.StateIdle, g.State())
}

func TestGestureClickDoesNotDrag(t *testing.T) {
	g := drag.NewGesture(5)

	assert.NoError(t, g.Start("A"))
	g.Move(1, 1)

	_, dragging := g.End()
	assert.False(t, dragging)
}

func TestGestureStartWhileActive(t *testing.T) {
	g := drag.NewGesture(5)

	assert.NoError(t, g.Start("A"))
	assert.Error(t, g.Start("B"))
}

func TestGestureMoveWhileIdle(t *testing.T) {
	g := drag.NewGesture(5)
	assert.Equal(t, drag.StateIdle, g.Move(100, 100))
}
