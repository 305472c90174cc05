package model

import (
	"strings"
	"time"
)

// Assignee is a closed set of values. It is purely informational and
// carries no authorization meaning.
type Assignee string

const (
	AssigneeNone       Assignee = ""
	AssigneeRed        Assignee = "red"
	AssigneeBlue       Assignee = "blue"
	AssigneeUser       Assignee = "user"
	AssigneeThirdParty Assignee = "third-party"
)

// Priority is a closed set of values.
type Priority string

const (
	PriorityNone   Priority = ""
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Due-date display classes.
const (
	DueOverdue  = "overdue"
	DueToday    = "today"
	DueUpcoming = "upcoming"
)

type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Assignee    Assignee  `json:"assignee,omitempty"`
	Priority    Priority  `json:"priority,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	DueDate     string    `json:"dueDate,omitempty"`
	Progress    *int      `json:"progress,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TaskDraft carries the user-supplied fields for a new task. The store
// assigns the identity and timestamps.
type TaskDraft struct {
	Title       string
	Description string
	Assignee    Assignee
	Priority    Priority
	Tags        []string
	DueDate     string
	Progress    *int
}

// TaskPatch is a partial update; nil fields are left untouched.
type TaskPatch struct {
	Title       *string
	Description *string
	Assignee    *Assignee
	Priority    *Priority
	Tags        *[]string
	DueDate     *string
	Progress    *int
}

func (a Assignee) Valid() bool {
	switch a {
	case AssigneeNone, AssigneeRed, AssigneeBlue, AssigneeUser, AssigneeThirdParty:
		return true
	}
	return false
}

func (p Priority) Valid() bool {
	switch p {
	case PriorityNone, PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

func (t Task) Clone() Task {
	c := t
	if t.Tags != nil {
		c.Tags = append([]string(nil), t.Tags...)
	}
	if t.Progress != nil {
		v := *t.Progress
		c.Progress = &v
	}
	return c
}

// HasTitle reports whether the title is non-empty after trimming.
func (t Task) HasTitle() bool {
	return strings.TrimSpace(t.Title) != ""
}

// DueClass classifies the due date relative to now for display purposes.
// It returns an empty string when no due date is set or it cannot be parsed.
func (t Task) DueClass(now time.Time) string {
	if t.DueDate == "" {
		return ""
	}
	if _, err := time.Parse("2006-01-02", t.DueDate); err != nil {
		return ""
	}
	// Calendar dates compare lexicographically in this layout.
	today := now.Format("2006-01-02")
	switch {
	case t.DueDate < today:
		return DueOverdue
	case t.DueDate == today:
		return DueToday
	default:
		return DueUpcoming
	}
}

// normalize coerces out-of-range values loaded from storage. Unknown enum
// values are cleared rather than rejected so documents written by newer
// clients still load. It reports whether anything was changed.
func (t *Task) normalize() bool {
	changed := false
	if !t.Assignee.Valid() {
		t.Assignee = AssigneeNone
		changed = true
	}
	if !t.Priority.Valid() {
		t.Priority = PriorityNone
		changed = true
	}
	if t.Progress != nil {
		switch {
		case *t.Progress < 0:
			*t.Progress = 0
			changed = true
		case *t.Progress > 100:
			*t.Progress = 100
			changed = true
		}
	}
	return changed
}
