package db

import (
	"context"

	"github.com/frankieli/casino_engine/internal/modules/engine/domain"
	"gorm.io/gorm"
)

type BetOrderRepository struct {
	db *gorm.DB
}

func NewBetOrderRepository(db *gorm.DB) *BetOrderRepository {
	return &BetOrderRepository{db: db}
}

func (r *BetOrderRepository) BatchCreate(ctx context.Context, orders []*domain.BetOrder) error {
	if len(orders) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&orders).Error
}
