package storage

import (
	"context"
	"sync"

	"taskboard/internal/model"
)

// MemoryBackend keeps the board document in process memory. It backs
// ephemeral runs and, with scripted failures, the pipeline tests.
type MemoryBackend struct {
	mu    sync.Mutex
	board *model.Board

	// LoadErr and SaveErr, when set, are returned by every call.
	LoadErr error
	SaveErr error

	saves int
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{}
}

func (m *MemoryBackend) Name() string { return "memory" }

func (m *MemoryBackend) Load(ctx context.Context) (*model.Board, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	if m.board == nil {
		return nil, ErrNotFound
	}
	b := m.board.Clone()
	return &b, nil
}

func (m *MemoryBackend) Save(ctx context.Context, board *model.Board) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	b := board.Clone()
	m.board = &b
	m.saves++
	return nil
}

// Stored returns a copy of the last saved document, or nil.
func (m *MemoryBackend) Stored() *model.Board {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.board == nil {
		return nil
	}
	b := m.board.Clone()
	return &b
}

// SaveCount reports how many saves have been accepted.
func (m *MemoryBackend) SaveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

// Seed replaces the stored document, for tests and pre-provisioned runs.
func (m *MemoryBackend) Seed(board model.Board) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b := board.Clone()
	m.board = &b
}
