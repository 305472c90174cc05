package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"taskboard/internal/model"
)

// The board is stored as a single JSONB row; id is always 1.
const boardRowID = 1

type boardRecord struct {
	ID        int    `gorm:"primaryKey"`
	Document  []byte `gorm:"type:jsonb;not null"`
	UpdatedAt time.Time
}

func (boardRecord) TableName() string { return "board_documents" }

// PostgresBackend stores the board document in a one-row table.
type PostgresBackend struct {
	db *gorm.DB
}

func NewPostgresBackend(db *gorm.DB) *PostgresBackend {
	return &PostgresBackend{db: db}
}

// Migrate creates the board_documents table if needed.
func (p *PostgresBackend) Migrate() error {
	if err := p.db.AutoMigrate(&boardRecord{}); err != nil {
		return fmt.Errorf("migrate board_documents: %w", err)
	}
	return nil
}

func (p *PostgresBackend) Name() string { return "postgres" }

func (p *PostgresBackend) Load(ctx context.Context) (*model.Board, error) {
	var rec boardRecord
	result := p.db.WithContext(ctx).First(&rec, "id = ?", boardRowID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, result.Error
	}
	var board model.Board
	if err := json.Unmarshal(rec.Document, &board); err != nil {
		return nil, fmt.Errorf("decode board document: %w", err)
	}
	return &board, nil
}

func (p *PostgresBackend) Save(ctx context.Context, board *model.Board) error {
	data, err := json.Marshal(board)
	if err != nil {
		return fmt.Errorf("encode board document: %w", err)
	}
	return p.db.WithContext(ctx).Exec(
		"INSERT INTO board_documents (id, document, updated_at) VALUES (?, ?, ?) ON CONFLICT (id) DO UPDATE SET document = EXCLUDED.document, updated_at = EXCLUDED.updated_at",
		boardRowID, data, time.Now().UTC(),
	).Error
}
