package domain

import (
	"context"
	"sync"
	"time"

	"github.com/bwmarrin/snowflake"
)

// BetOrderStatus defines the status of a bet order
type BetOrderStatus int

const (
	BetOrderStatusPending BetOrderStatus = 0
	BetOrderStatusSettled BetOrderStatus = 1
)

// BetOrder is the audit record written for every settlement.
type BetOrder struct {
	OrderID   string         `gorm:"primaryKey;type:varchar(64)" json:"order_id"`
	UserID    int64          `gorm:"not null;index:idx_bet_orders_user_id" json:"user_id"`
	RoundID   string         `gorm:"type:varchar(64);index:idx_bet_orders_round_id" json:"round_id"`
	GameCode  string         `gorm:"type:varchar(32);not null;index:idx_bet_orders_game_code" json:"game_code"`
	BetArea   string         `gorm:"type:varchar(512);not null" json:"bet_area"` // selection summary, e.g. "target>50" or "red"
	Amount    float64        `gorm:"type:decimal(18,2);not null" json:"amount"`
	Payout    float64        `gorm:"type:decimal(18,2);not null;default:0" json:"payout"`
	Status    BetOrderStatus `gorm:"type:int;not null;default:0;index:idx_bet_orders_status" json:"status"`
	CreatedAt time.Time      `gorm:"not null;index:idx_bet_orders_created_at" json:"created_at"`
	SettledAt *time.Time     `json:"settled_at"`
}

// TableName overrides the table name
func (BetOrder) TableName() string {
	return "bet_orders"
}

// BetOrderRepository persists settlement audit records.
type BetOrderRepository interface {
	BatchCreate(ctx context.Context, orders []*BetOrder) error
}

var (
	node *snowflake.Node
	once sync.Once
)

func initSnowflake() {
	var err error
	// NodeID 1 by default; a multi-instance deployment must assign unique IDs.
	node, err = snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
}

// NewOrderID generates a unique, time-sortable order ID.
func NewOrderID() string {
	once.Do(initSnowflake)
	return node.Generate().String()
}

// NewSettledOrder builds a settled audit record for a one-shot game.
func NewSettledOrder(userID int64, game GameKind, roundID, betArea string, amount, payout float64) *BetOrder {
	now := time.Now()
	return &BetOrder{
		OrderID:   NewOrderID(),
		UserID:    userID,
		RoundID:   roundID,
		GameCode:  string(game),
		BetArea:   betArea,
		Amount:    amount,
		Payout:    payout,
		Status:    BetOrderStatusSettled,
		CreatedAt: now,
		SettledAt: &now,
	}
}
