// Package db provides the gorm-backed round history repository.
package db

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/frankieli/casino_engine/internal/modules/lottery/domain"
)

// GameRoundRepository implements domain.GameRoundRepository using gorm
type GameRoundRepository struct {
	db *gorm.DB
}

// NewGameRoundRepository creates a new DB game round repository
func NewGameRoundRepository(db *gorm.DB) *GameRoundRepository {
	return &GameRoundRepository{db: db}
}

// Create persists a round history record
func (r *GameRoundRepository) Create(ctx context.Context, round *domain.GameRound) error {
	if err := r.db.WithContext(ctx).Create(round).Error; err != nil {
		return fmt.Errorf("failed to create game round: %w", err)
	}
	return nil
}

// ListRecent returns the most recent rounds, newest first
func (r *GameRoundRepository) ListRecent(ctx context.Context, limit int) ([]*domain.GameRound, error) {
	var rounds []*domain.GameRound
	err := r.db.WithContext(ctx).
		Order("settled_at DESC").
		Limit(limit).
		Find(&rounds).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list game rounds: %w", err)
	}
	return rounds, nil
}
