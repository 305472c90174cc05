// Package drag translates pointer drag gestures into board moves.
package drag

import (
	"fmt"
	"math"

	"taskboard/internal/model"
)

// State of a single drag gesture.
type State int

const (
	// StateIdle means no gesture is in progress.
	StateIdle State = iota
	// StatePressed means the pointer is down on a task but has not yet
	// travelled past the activation distance. A release in this state is
	// a click, not a drag.
	StatePressed
	// StateDragging means the activation distance has been exceeded.
	StateDragging
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePressed:
		return "pressed"
	case StateDragging:
		return "dragging"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Outcome of a finished gesture.
type Outcome string

const (
	OutcomeCommitted Outcome = "committed"
	OutcomeReverted  Outcome = "reverted"
)

// DefaultActivationDistance is the minimum pointer travel, in
// device-independent pixels, before a press becomes a drag.
const DefaultActivationDistance = 5.0

// Gesture tracks one press-move-release cycle.
type Gesture struct {
	threshold float64
	state     State
	taskID    string
	dx, dy    float64
}

func NewGesture(threshold float64) *Gesture {
	if threshold <= 0 {
		threshold = DefaultActivationDistance
	}
	return &Gesture{threshold: threshold}
}

func (g *Gesture) State() State { return g.state }

// ActiveTask returns the task the gesture was started on, or "".
func (g *Gesture) ActiveTask() string { return g.taskID }

// Start begins a gesture on the given task. Starting over an unfinished
// gesture is an invalid transition.
func (g *Gesture) Start(taskID string) error {
	if g.state != StateIdle {
		return fmt.Errorf("invalid transition: %s -> pressed", g.state)
	}
	if taskID == "" {
		return fmt.Errorf("gesture needs a task id")
	}
	g.state = StatePressed
	g.taskID = taskID
	g.dx, g.dy = 0, 0
	return nil
}

// Move accumulates pointer travel and promotes the press to a drag once
// the total displacement exceeds the activation threshold.
func (g *Gesture) Move(dx, dy float64) State {
	if g.state == StateIdle {
		return g.state
	}
	g.dx += dx
	g.dy += dy
	if g.state == StatePressed && math.Hypot(g.dx, g.dy) >= g.threshold {
		g.state = StateDragging
	}
	return g.state
}

// End finishes the gesture and resets to idle. It reports the task the
// gesture was on and whether the drag activated; a release while still
// pressed is a click and must not move anything.
func (g *Gesture) End() (taskID string, dragging bool) {
	taskID = g.taskID
	dragging = g.state == StateDragging
	g.state = StateIdle
	g.taskID = ""
	g.dx, g.dy = 0, 0
	return taskID, dragging
}

// Drop is a resolved drop target.
type Drop struct {
	SourceColumnID string
	DestColumnID   string
	// Index is the insertion position inside the destination column.
	Index int
}

// ResolveDrop maps the raw drop target onto a destination column and
// index. overID is either a column id (drop on empty column space, which
// appends) or another task's id (drop takes that task's position). A
// column id takes precedence over a task id. The second return value is
// false when the gesture resolves to nothing and must revert.
func ResolveDrop(b model.Board, activeID, overID string) (Drop, bool) {
	if overID == "" {
		return Drop{}, false
	}
	source := b.ColumnOf(activeID)
	if source == nil {
		return Drop{}, false
	}
	if col := b.Column(overID); col != nil {
		return Drop{
			SourceColumnID: source.ID,
			DestColumnID:   col.ID,
			Index:          len(col.Tasks),
		}, true
	}
	if _, destID := b.FindTask(overID); destID != "" {
		dest := b.Column(destID)
		return Drop{
			SourceColumnID: source.ID,
			DestColumnID:   dest.ID,
			Index:          dest.IndexOf(overID),
		}, true
	}
	return Drop{}, false
}
