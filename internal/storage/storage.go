// Package storage defines the whole-document board persistence contract
// and its backends.
package storage

import (
	"context"
	"errors"

	"taskboard/internal/model"
)

// ErrNotFound is returned by Load when a backend is reachable but holds no
// board document yet. It is not a failure; the fallback chain moves on.
var ErrNotFound = errors.New("board document not found")

// Backend persists the board as one document. Save must be atomic: either
// the whole new document is stored or the previous one is left intact.
type Backend interface {
	Name() string
	Load(ctx context.Context) (*model.Board, error)
	Save(ctx context.Context, board *model.Board) error
}
