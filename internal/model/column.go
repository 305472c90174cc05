package model

type Column struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Tasks []Task `json:"tasks"`
}

func (c Column) Clone() Column {
	out := Column{ID: c.ID, Title: c.Title, Tasks: make([]Task, len(c.Tasks))}
	for i, t := range c.Tasks {
		out.Tasks[i] = t.Clone()
	}
	return out
}

// IndexOf returns the position of the task in this column, or -1.
func (c Column) IndexOf(taskID string) int {
	for i, t := range c.Tasks {
		if t.ID == taskID {
			return i
		}
	}
	return -1
}
