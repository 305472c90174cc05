package board

import (
	"errors"
	"strings"
	"time"

	"taskboard/internal/model"
)

var (
	ErrColumnNotFound = errors.New("column not found")
	ErrTaskNotFound   = errors.New("task not found")
	ErrEmptyTitle     = errors.New("task title is empty")
)

// DefaultTitle is given to tasks added without a usable title.
const DefaultTitle = "New Task"

// The operations below are pure: they never mutate the input board and
// return a new board value. On invalid input they return the input board
// unchanged together with a sentinel error.

// AddTask constructs a task from the draft and appends it to the target
// column. The store assigns the id and stamps both timestamps.
func AddTask(b model.Board, now time.Time, columnID string, draft model.TaskDraft) (model.Board, model.Task, error) {
	nb := b.Clone()
	col := nb.Column(columnID)
	if col == nil {
		return b, model.Task{}, ErrColumnNotFound
	}
	title := strings.TrimSpace(draft.Title)
	if title == "" {
		title = DefaultTitle
	}
	task := model.Task{
		ID:          model.NewTaskID(),
		Title:       title,
		Description: draft.Description,
		Assignee:    draft.Assignee,
		Priority:    draft.Priority,
		DueDate:     draft.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if draft.Tags != nil {
		task.Tags = append([]string(nil), draft.Tags...)
	}
	if draft.Progress != nil {
		v := clampProgress(*draft.Progress)
		task.Progress = &v
	}
	col.Tasks = append(col.Tasks, task)
	stamp(&nb, now)
	return nb, task.Clone(), nil
}

// EditTask applies the patch to the task wherever it lives. A patch that
// would leave the title empty after trimming rejects the whole edit.
func EditTask(b model.Board, now time.Time, taskID string, patch model.TaskPatch) (model.Board, error) {
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return b, ErrEmptyTitle
	}
	nb := b.Clone()
	task, _ := nb.FindTask(taskID)
	if task == nil {
		return b, ErrTaskNotFound
	}
	if patch.Title != nil {
		task.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.Assignee != nil {
		task.Assignee = *patch.Assignee
	}
	if patch.Priority != nil {
		task.Priority = *patch.Priority
	}
	if patch.Tags != nil {
		task.Tags = append([]string(nil), (*patch.Tags)...)
	}
	if patch.DueDate != nil {
		task.DueDate = *patch.DueDate
	}
	if patch.Progress != nil {
		v := clampProgress(*patch.Progress)
		task.Progress = &v
	}
	task.UpdatedAt = now
	stamp(&nb, now)
	return nb, nil
}

// DeleteTask removes the task from whichever column contains it.
func DeleteTask(b model.Board, now time.Time, taskID string) (model.Board, error) {
	nb := b.Clone()
	for i := range nb.Columns {
		idx := nb.Columns[i].IndexOf(taskID)
		if idx < 0 {
			continue
		}
		nb.Columns[i].Tasks = append(nb.Columns[i].Tasks[:idx], nb.Columns[i].Tasks[idx+1:]...)
		stamp(&nb, now)
		return nb, nil
	}
	return b, ErrTaskNotFound
}

// MoveTask removes the task from fromColumnID and inserts it into
// toColumnID at targetIndex, clamped to [0, len]. The second return value
// reports whether the board actually changed; moving a task onto its own
// current position is a no-op.
func MoveTask(b model.Board, now time.Time, taskID, fromColumnID, toColumnID string, targetIndex int) (model.Board, bool, error) {
	nb := b.Clone()
	from := nb.Column(fromColumnID)
	to := nb.Column(toColumnID)
	if from == nil || to == nil {
		return b, false, ErrColumnNotFound
	}
	idx := from.IndexOf(taskID)
	if idx < 0 {
		return b, false, ErrTaskNotFound
	}
	if fromColumnID == toColumnID {
		target := clamp(targetIndex, 0, len(from.Tasks)-1)
		if target == idx {
			return b, false, nil
		}
		from.Tasks = arrayMove(from.Tasks, idx, target)
		from.Tasks[target].UpdatedAt = now
		stamp(&nb, now)
		return nb, true, nil
	}
	task := from.Tasks[idx]
	from.Tasks = append(from.Tasks[:idx], from.Tasks[idx+1:]...)
	target := clamp(targetIndex, 0, len(to.Tasks))
	task.UpdatedAt = now
	to.Tasks = append(to.Tasks, model.Task{})
	copy(to.Tasks[target+1:], to.Tasks[target:])
	to.Tasks[target] = task
	stamp(&nb, now)
	return nb, true, nil
}

// ReorderWithinColumn extracts the element at fromIndex and reinserts it at
// toIndex, shifting the elements in between by one position.
func ReorderWithinColumn(b model.Board, now time.Time, columnID string, fromIndex, toIndex int) (model.Board, bool, error) {
	nb := b.Clone()
	col := nb.Column(columnID)
	if col == nil {
		return b, false, ErrColumnNotFound
	}
	if fromIndex < 0 || fromIndex >= len(col.Tasks) {
		return b, false, ErrTaskNotFound
	}
	toIndex = clamp(toIndex, 0, len(col.Tasks)-1)
	if fromIndex == toIndex {
		return b, false, nil
	}
	col.Tasks = arrayMove(col.Tasks, fromIndex, toIndex)
	col.Tasks[toIndex].UpdatedAt = now
	stamp(&nb, now)
	return nb, true, nil
}

// stamp bumps lastUpdated, keeping it monotonically non-decreasing even if
// the clock steps backwards.
func stamp(b *model.Board, now time.Time) {
	if now.Before(b.LastUpdated) {
		return
	}
	b.LastUpdated = now
}

// arrayMove is the standard remove-then-reinsert move, not a swap:
// [A B C D] moved 0 -> 2 yields [B C A D].
func arrayMove(tasks []model.Task, from, to int) []model.Task {
	task := tasks[from]
	tasks = append(tasks[:from], tasks[from+1:]...)
	tasks = append(tasks, model.Task{})
	copy(tasks[to+1:], tasks[to:])
	tasks[to] = task
	return tasks
}

func clampProgress(v int) int {
	return clamp(v, 0, 100)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Store is the single-writer cell that owns the canonical in-memory board.
// Callers receive clones; every committed mutation replaces the held value.
type Store struct {
	now   func() time.Time
	board model.Board
}

func NewStore(b model.Board, now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{now: now, board: b.Clone()}
}

// Board returns a deep copy of the current board.
func (s *Store) Board() model.Board {
	return s.board.Clone()
}

func (s *Store) AddTask(columnID string, draft model.TaskDraft) (model.Task, error) {
	nb, task, err := AddTask(s.board, s.now(), columnID, draft)
	if err != nil {
		return model.Task{}, err
	}
	s.board = nb
	return task, nil
}

func (s *Store) EditTask(taskID string, patch model.TaskPatch) error {
	nb, err := EditTask(s.board, s.now(), taskID, patch)
	if err != nil {
		return err
	}
	s.board = nb
	return nil
}

func (s *Store) DeleteTask(taskID string) error {
	nb, err := DeleteTask(s.board, s.now(), taskID)
	if err != nil {
		return err
	}
	s.board = nb
	return nil
}

func (s *Store) MoveTask(taskID, fromColumnID, toColumnID string, targetIndex int) (bool, error) {
	nb, moved, err := MoveTask(s.board, s.now(), taskID, fromColumnID, toColumnID, targetIndex)
	if err != nil {
		return false, err
	}
	s.board = nb
	return moved, nil
}

func (s *Store) ReorderWithinColumn(columnID string, fromIndex, toIndex int) (bool, error) {
	nb, moved, err := ReorderWithinColumn(s.board, s.now(), columnID, fromIndex, toIndex)
	if err != nil {
		return false, err
	}
	s.board = nb
	return moved, nil
}
