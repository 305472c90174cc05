package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"taskboard/internal/board"
	"taskboard/internal/engine"
	"taskboard/internal/model"
)

type BoardHandler struct {
	engine *engine.Engine
}

func NewBoardHandler(e *engine.Engine) *BoardHandler {
	return &BoardHandler{engine: e}
}

// TaskRequest is the body for creating a task.
type TaskRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Assignee    string   `json:"assignee"`
	Priority    string   `json:"priority"`
	Tags        []string `json:"tags"`
	DueDate     string   `json:"due_date"`
	Progress    *int     `json:"progress" binding:"omitempty,min=0,max=100"`
}

// TaskPatchRequest is the body for updating a task; absent fields are
// left untouched.
type TaskPatchRequest struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Assignee    *string   `json:"assignee"`
	Priority    *string   `json:"priority"`
	Tags        *[]string `json:"tags"`
	DueDate     *string   `json:"due_date"`
	Progress    *int      `json:"progress" binding:"omitempty,min=0,max=100"`
}

type DragStartRequest struct {
	TaskID string `json:"task_id" binding:"required"`
}

type DragMoveRequest struct {
	DX float64 `json:"dx"`
	DY float64 `json:"dy"`
}

type DragEndRequest struct {
	ActiveID string `json:"active_id" binding:"required"`
	OverID   string `json:"over_id"`
}

// BoardResponse wraps the board document with the derived figures the
// status bar shows.
type BoardResponse struct {
	Board      model.Board    `json:"board"`
	TaskCount  int            `json:"task_count"`
	DueSummary map[string]int `json:"due_summary"`
	SaveStatus string         `json:"save_status"`
}

// GetBoard returns the full board document
func (h *BoardHandler) GetBoard(c *gin.Context) {
	b := h.engine.GetBoard()
	c.JSON(http.StatusOK, BoardResponse{
		Board:      b,
		TaskCount:  b.TaskCount(),
		DueSummary: dueSummary(b, time.Now()),
		SaveStatus: string(h.engine.SaveStatus()),
	})
}

// AddTask creates a task in the column from the path
func (h *BoardHandler) AddTask(c *gin.Context) {
	columnID := c.Param("id")

	var req TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	assignee := model.Assignee(req.Assignee)
	priority := model.Priority(req.Priority)
	if !assignee.Valid() || !priority.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown assignee or priority"})
		return
	}

	task, err := h.engine.AddTask(columnID, model.TaskDraft{
		Title:       req.Title,
		Description: req.Description,
		Assignee:    assignee,
		Priority:    priority,
		Tags:        req.Tags,
		DueDate:     req.DueDate,
		Progress:    req.Progress,
	})
	if err != nil {
		if errors.Is(err, board.ErrColumnNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Column not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create task"})
		return
	}

	c.JSON(http.StatusCreated, task)
}

// EditTask applies a partial update to a task
func (h *BoardHandler) EditTask(c *gin.Context) {
	taskID := c.Param("id")

	var req TaskPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	patch := model.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		Tags:        req.Tags,
		DueDate:     req.DueDate,
		Progress:    req.Progress,
	}
	if req.Assignee != nil {
		assignee := model.Assignee(*req.Assignee)
		if !assignee.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown assignee"})
			return
		}
		patch.Assignee = &assignee
	}
	if req.Priority != nil {
		priority := model.Priority(*req.Priority)
		if !priority.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown priority"})
			return
		}
		patch.Priority = &priority
	}

	if err := h.engine.EditTask(taskID, patch); err != nil {
		switch {
		case errors.Is(err, board.ErrEmptyTitle):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Title cannot be empty"})
		case errors.Is(err, board.ErrTaskNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update task"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// DeleteTask removes a task
func (h *BoardHandler) DeleteTask(c *gin.Context) {
	taskID := c.Param("id")

	if err := h.engine.DeleteTask(taskID); err != nil {
		if errors.Is(err, board.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete task"})
		return
	}

	c.Status(http.StatusNoContent)
}

// DragStart begins a drag gesture and returns the dragged task snapshot
// for the overlay
func (h *BoardHandler) DragStart(c *gin.Context) {
	var req DragStartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	task, err := h.engine.HandleDragStart(req.TaskID)
	if err != nil {
		if errors.Is(err, board.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start drag"})
		return
	}

	c.JSON(http.StatusOK, task)
}

// DragMove feeds pointer travel into the active gesture
func (h *BoardHandler) DragMove(c *gin.Context) {
	var req DragMoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	state := h.engine.HandleDragMove(req.DX, req.DY)
	c.JSON(http.StatusOK, gin.H{"state": state.String()})
}

// DragEnd finishes the gesture and commits or reverts the move
func (h *BoardHandler) DragEnd(c *gin.Context) {
	var req DragEndRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	outcome, err := h.engine.HandleDragEnd(req.ActiveID, req.OverID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to finish drag"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"outcome": string(outcome)})
}

// SaveStatus reports the persistence state machine's current state
func (h *BoardHandler) SaveStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": string(h.engine.SaveStatus())})
}

func dueSummary(b model.Board, now time.Time) map[string]int {
	summary := map[string]int{}
	for _, col := range b.Columns {
		for _, t := range col.Tasks {
			if class := t.DueClass(now); class != "" {
				summary[class]++
			}
		}
	}
	return summary
}
