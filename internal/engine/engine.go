// Package engine exposes the board operations consumed by the
// presentation layer and commits every mutation through the persistence
// pipeline.
package engine

import (
	"sync"

	log "github.com/sirupsen/logrus"

	"taskboard/internal/board"
	"taskboard/internal/drag"
	"taskboard/internal/model"
	"taskboard/internal/persist"
)

// Engine serializes all board mutations: the UI event loop of the
// original is rendered as a single mutex so no two mutations interleave
// mid-computation. Storage I/O stays off this lock inside the pipeline.
type Engine struct {
	mu      sync.Mutex
	store   *board.Store
	gesture *drag.Gesture
	pipe    *persist.Pipeline
	logger  *log.Logger
}

func New(store *board.Store, pipe *persist.Pipeline, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &Engine{
		store:   store,
		gesture: drag.NewGesture(drag.DefaultActivationDistance),
		pipe:    pipe,
		logger:  logger,
	}
}

// GetBoard returns a deep copy of the current board.
func (e *Engine) GetBoard() model.Board {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.Board()
}

// SaveStatus returns the persistence pipeline's current status.
func (e *Engine) SaveStatus() persist.Status {
	return e.pipe.Status()
}

func (e *Engine) AddTask(columnID string, draft model.TaskDraft) (model.Task, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	task, err := e.store.AddTask(columnID, draft)
	if err != nil {
		return model.Task{}, err
	}
	e.commit()
	return task, nil
}

func (e *Engine) EditTask(taskID string, patch model.TaskPatch) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.store.EditTask(taskID, patch); err != nil {
		return err
	}
	e.commit()
	return nil
}

func (e *Engine) DeleteTask(taskID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.store.DeleteTask(taskID); err != nil {
		return err
	}
	e.commit()
	return nil
}

// HandleDragStart begins a gesture on the task and returns a snapshot of
// it for the caller to render as the drag overlay.
func (e *Engine) HandleDragStart(taskID string) (model.Task, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	b := e.store.Board()
	task, _ := b.FindTask(taskID)
	if task == nil {
		return model.Task{}, board.ErrTaskNotFound
	}
	if err := e.gesture.Start(taskID); err != nil {
		// A new press while a gesture is unfinished supersedes it.
		e.gesture.End()
		if err := e.gesture.Start(taskID); err != nil {
			return model.Task{}, err
		}
	}
	return task.Clone(), nil
}

// HandleDragMove feeds pointer travel into the gesture. Movement below
// the activation distance keeps the gesture a click.
func (e *Engine) HandleDragMove(dx, dy float64) drag.State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.gesture.Move(dx, dy)
}

// HandleDragEnd resolves the drop and commits the resulting move. Any
// gesture that does not resolve to a changed board reverts: release over
// empty space, release before the activation distance, or a drop on the
// task's own position.
func (e *Engine) HandleDragEnd(activeID, overID string) (drag.Outcome, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	startedOn, dragging := e.gesture.End()
	if !dragging || startedOn != activeID {
		return drag.OutcomeReverted, nil
	}

	b := e.store.Board()
	drop, ok := drag.ResolveDrop(b, activeID, overID)
	if !ok {
		return drag.OutcomeReverted, nil
	}

	var (
		moved bool
		err   error
	)
	if drop.SourceColumnID == drop.DestColumnID {
		from := b.Column(drop.SourceColumnID).IndexOf(activeID)
		moved, err = e.store.ReorderWithinColumn(drop.SourceColumnID, from, drop.Index)
	} else {
		moved, err = e.store.MoveTask(activeID, drop.SourceColumnID, drop.DestColumnID, drop.Index)
	}
	if err != nil {
		return drag.OutcomeReverted, err
	}
	if !moved {
		return drag.OutcomeReverted, nil
	}
	e.logger.WithFields(log.Fields{
		"task": activeID,
		"from": drop.SourceColumnID,
		"to":   drop.DestColumnID,
		"at":   drop.Index,
	}).Debug("drag committed")
	e.commit()
	return drag.OutcomeCommitted, nil
}

// Close flushes any pending save.
func (e *Engine) Close() {
	e.pipe.Close()
}

// commit schedules a debounced save of the current board. Callers hold
// the mutation lock.
func (e *Engine) commit() {
	e.pipe.Schedule(e.store.Board())
}
